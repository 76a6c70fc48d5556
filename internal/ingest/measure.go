package ingest

import (
	"strings"

	"github.com/healthforge/gbdkit/internal/model"
)

// measureKeywords maps substrings of a raw measure_name to the standard label.
// Evaluated in order, first match wins: some raw labels satisfy more than one
// keyword, so the more specific checks come first.
var measureKeywords = []struct {
	keyword string
	label   string
}{
	{"dalys", model.MeasureDALYs},
	{"yll", model.MeasureYLLs},
	{"death", model.MeasureDeath},
	{"incidence", model.MeasureIncidence},
	{"prevalence", model.MeasurePrevalence},
	{"injur", model.MeasureInjury},
}

// filenameKeywords is the fallback table applied to the source file name when
// a file carries no measure_name column. It tolerates the misspelled
// "Prevelance" extract name.
var filenameKeywords = []struct {
	keyword string
	label   string
}{
	{"daly", model.MeasureDALYs},
	{"death", model.MeasureDeath},
	{"incidence", model.MeasureIncidence},
	{"prevelance", model.MeasurePrevalence},
	{"prevalence", model.MeasurePrevalence},
	{"yll", model.MeasureYLLs},
	{"injur", model.MeasureInjury},
}

// StandardizeMeasureName turns a raw measure_name into the short standard
// label. Unrecognized text is passed through unchanged.
func StandardizeMeasureName(raw string) string {
	s := strings.ToLower(raw)
	for _, kw := range measureKeywords {
		if strings.Contains(s, kw.keyword) {
			return kw.label
		}
	}
	return raw
}

// MeasureFromFilename derives the standard label from a source file name.
// Defaults to "NCD Rate" when nothing matches.
func MeasureFromFilename(filename string) string {
	name := strings.ToLower(filename)
	for _, kw := range filenameKeywords {
		if strings.Contains(name, kw.keyword) {
			return kw.label
		}
	}
	return model.MeasureNCD
}

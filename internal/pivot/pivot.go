// Package pivot reshapes the long fact table into the wide burden table.
package pivot

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/healthforge/gbdkit/internal/classify"
	"github.com/healthforge/gbdkit/internal/model"
)

// ErrNoMeasureRows is the schema error raised when the fact table contains no
// rows for the two pivoted measures. That points at a column-name or taxonomy
// mismatch upstream, not at a legitimately empty result.
var ErrNoMeasureRows = errors.New(`no rows found for measures "DALYs Rate" and "YLLs Rate"`)

type wideKey struct {
	year     int
	sex      string
	ageGroup string
	location string
	category model.Category
	disease  string
}

type wideAcc struct {
	daly float64
	yll  float64
}

// Build pivots the fact table restricted to the DALYs and YLLs measures into
// one WideRecord per distinct (year, sex, age_group, location, category,
// disease) key.
//
// Values are summed per key and measure: multiple rows per cell are expected
// and additive. Missing or unparseable values contribute 0, and a measure
// absent from the whole slice yields an all-zero column, so DALY, YLL and the
// derived YLD = DALY − YLL are always concrete numbers and the identity
// DALY = YLL + YLD holds for every output row.
func Build(t *model.FactTable) ([]model.WideRecord, error) {
	if t == nil {
		return nil, fmt.Errorf("pivot: %w", ErrNoMeasureRows)
	}

	acc := make(map[wideKey]*wideAcc)
	order := make([]wideKey, 0)

	for _, rec := range t.Records {
		measure := rec.Get(model.ColMeasureStandard)
		if measure != model.MeasureDALYs && measure != model.MeasureYLLs {
			continue
		}

		key := wideKey{
			year:     rec.Year(),
			sex:      rec.Get(model.ColSex),
			ageGroup: rec.Get(model.ColAge),
			location: rec.Get(model.ColLocation),
			category: classify.Classify(rec.Get(model.ColCause)),
			disease:  rec.Get(model.ColCause),
		}

		a, ok := acc[key]
		if !ok {
			a = &wideAcc{}
			acc[key] = a
			order = append(order, key)
		}

		v := rec.Val()
		if math.IsNaN(v) {
			v = 0
		}
		switch measure {
		case model.MeasureDALYs:
			a.daly += v
		case model.MeasureYLLs:
			a.yll += v
		}
	}

	if len(acc) == 0 {
		return nil, fmt.Errorf("pivot: %w", ErrNoMeasureRows)
	}

	sort.Slice(order, func(i, j int) bool { return lessKey(order[i], order[j]) })

	out := make([]model.WideRecord, 0, len(order))
	for _, key := range order {
		a := acc[key]
		out = append(out, model.WideRecord{
			Year:     key.year,
			Sex:      key.sex,
			AgeGroup: key.ageGroup,
			Location: key.location,
			Category: key.category,
			Disease:  key.disease,
			DALY:     a.daly,
			YLL:      a.yll,
			YLD:      a.daly - a.yll,
		})
	}
	return out, nil
}

func lessKey(a, b wideKey) bool {
	if a.year != b.year {
		return a.year < b.year
	}
	if a.sex != b.sex {
		return a.sex < b.sex
	}
	if a.ageGroup != b.ageGroup {
		return a.ageGroup < b.ageGroup
	}
	if a.location != b.location {
		return a.location < b.location
	}
	if a.category != b.category {
		return a.category < b.category
	}
	return a.disease < b.disease
}

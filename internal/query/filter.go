// Package query is the filtering and aggregation engine over the unified
// tables. All operations are purely functional: input slices are never
// mutated, and an empty result is a valid output, not an error.
package query

// All is the sentinel filter value meaning "no constraint".
const All = "All"

// Row is any record exposing named string dimensions. Both the long fact
// table and the wide burden table satisfy it.
type Row interface {
	Dimension(name string) string
}

// Spec is an immutable set of equality constraints keyed by dimension name.
// A dimension can accept one value or a set of values; values within a
// dimension are OR-combined, dimensions are AND-combined. Dimensions not
// mentioned, or constrained with the All sentinel, pass through unfiltered.
type Spec struct {
	dims map[string][]string
}

// NewSpec returns an empty (all-pass) spec.
func NewSpec() Spec {
	return Spec{}
}

// Where returns a copy of the spec with an added constraint. Empty value
// lists and lists containing the All sentinel leave the dimension
// unconstrained.
func (s Spec) Where(dim string, values ...string) Spec {
	concrete := make([]string, 0, len(values))
	for _, v := range values {
		if v == All {
			return s.without(dim)
		}
		if v != "" {
			concrete = append(concrete, v)
		}
	}
	if len(concrete) == 0 {
		return s.without(dim)
	}

	dims := make(map[string][]string, len(s.dims)+1)
	for k, v := range s.dims {
		dims[k] = v
	}
	dims[dim] = concrete
	return Spec{dims: dims}
}

func (s Spec) without(dim string) Spec {
	if _, ok := s.dims[dim]; !ok {
		return s
	}
	dims := make(map[string][]string, len(s.dims))
	for k, v := range s.dims {
		if k != dim {
			dims[k] = v
		}
	}
	return Spec{dims: dims}
}

// IsEmpty reports whether the spec constrains nothing.
func (s Spec) IsEmpty() bool {
	return len(s.dims) == 0
}

// Constraints returns the concrete constraints for reporting. The returned
// map is a copy.
func (s Spec) Constraints() map[string][]string {
	if len(s.dims) == 0 {
		return nil
	}
	out := make(map[string][]string, len(s.dims))
	for k, v := range s.dims {
		vals := make([]string, len(v))
		copy(vals, v)
		out[k] = vals
	}
	return out
}

// Matches reports whether a row satisfies every constraint in the spec.
func (s Spec) Matches(r Row) bool {
	for dim, allowed := range s.dims {
		val := r.Dimension(dim)
		ok := false
		for _, a := range allowed {
			if val == a {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Apply returns a new slice holding the rows that satisfy the spec. The
// input slice is left untouched; an all-pass spec returns a copy equal to
// the input.
func Apply[T Row](rows []T, spec Spec) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if spec.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

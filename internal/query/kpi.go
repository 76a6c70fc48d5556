package query

import "github.com/healthforge/gbdkit/internal/model"

// KPIs are the headline figures for a filtered view of the wide table.
type KPIs struct {
	TotalDALY float64
	TotalYLL  float64
	TotalYLD  float64

	// DominantCategory is the category with the largest DALY sum, "N/A" when
	// the view is empty or its DALY total is not positive.
	DominantCategory string
	DominantShare    float64
}

// ComputeKPIs reduces a filtered wide view to its headline figures.
func ComputeKPIs(rows []model.WideRecord) KPIs {
	k := KPIs{DominantCategory: "N/A"}
	for _, r := range rows {
		k.TotalDALY += r.DALY
		k.TotalYLL += r.YLL
		k.TotalYLD += r.YLD
	}

	keys := []string{model.DimCategory}
	groups := GroupSum(rows, keys, MetricOf(model.MetricDALY))
	if top, share, ok := Dominant(groups, keys); ok && k.TotalDALY > 0 {
		k.DominantCategory = top.Key[model.DimCategory]
		k.DominantShare = share
	}
	return k
}

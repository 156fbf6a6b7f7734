package model

// ResourceCap is the ceiling for compute power and data quality.
const ResourceCap = 1_000_000

// Resources holds the four spendable scalars.
type Resources struct {
	Money        float64 `json:"money"`
	ComputePower float64 `json:"computePower"`
	DataQuality  float64 `json:"dataQuality"`
	Reputation   float64 `json:"reputation"`
}

// Cost is the price of one purchase across the three spendable resources.
type Cost struct {
	Money   float64 `json:"money"`
	Compute float64 `json:"compute"`
	Data    float64 `json:"data"`
}

// CanAfford reports whether every component of c is covered.
func (r Resources) CanAfford(c Cost) bool {
	return r.Money >= c.Money && r.ComputePower >= c.Compute && r.DataQuality >= c.Data
}

// Clamp limits compute power and data quality to ResourceCap.
func (r *Resources) Clamp() {
	if r.ComputePower > ResourceCap {
		r.ComputePower = ResourceCap
	}
	if r.DataQuality > ResourceCap {
		r.DataQuality = ResourceCap
	}
}

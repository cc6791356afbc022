package offer

// Constraints is the admission rule set for one run. All bounds are
// inclusive.
type Constraints struct {
	MaxStops          int `json:"max_stops" yaml:"max_stops"`
	MaxTotalMinutes   int `json:"max_total_minutes" yaml:"max_total_minutes"`
	MaxLayoverMinutes int `json:"max_layover_minutes" yaml:"max_layover_minutes"`
}

// Admit decides whether an offer passes the constraint set. An offer with
// an unparseable price is always rejected. An empty layover sequence
// vacuously passes the per-layover check regardless of stop count: only
// data actually present is evaluated.
func (c Constraints) Admit(o Offer) bool {
	if !o.ValidPrice() {
		return false
	}
	if o.Stops > c.MaxStops {
		return false
	}
	if o.TotalMinutes > c.MaxTotalMinutes {
		return false
	}
	for _, m := range o.LayoverMinutes {
		if m > c.MaxLayoverMinutes {
			return false
		}
	}
	return true
}

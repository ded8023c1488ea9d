package domain

// HourlyPlan is a fixed duration tier offered to owners. BaseRate is the
// indicative price shown before a driver has been picked.
type HourlyPlan struct {
	Hours       int
	BaseRate    float64
	Description string
}

var plans = []HourlyPlan{
	{Hours: 1, BaseRate: 150, Description: "Quick errands or short trips"},
	{Hours: 2, BaseRate: 260, Description: "Shopping or appointments"},
	{Hours: 3, BaseRate: 390, Description: "Half-day trips"},
	{Hours: 4, BaseRate: 520, Description: "Extended travel"},
	{Hours: 6, BaseRate: 750, Description: "Full day service"},
	{Hours: 8, BaseRate: 960, Description: "All-day availability"},
}

// Plans returns a copy of the plan catalog ordered by duration.
func Plans() []HourlyPlan {
	out := make([]HourlyPlan, len(plans))
	copy(out, plans)
	return out
}

// PlanByHours looks up the catalog entry for the given duration.
func PlanByHours(hours int) (HourlyPlan, bool) {
	for _, p := range plans {
		if p.Hours == hours {
			return p, true
		}
	}
	return HourlyPlan{}, false
}

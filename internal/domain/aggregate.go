package domain

// ServiceTotals is the aggregate of a selected service set
type ServiceTotals struct {
	DurationMinutes int
	TotalPrice      float64
}

// AggregateServices sums durations and base prices across the selected
// services. An empty selection, or a service without a duration, falls
// back to the default duration so an appointment never has zero length.
func AggregateServices(services []*Service) ServiceTotals {
	if len(services) == 0 {
		return ServiceTotals{DurationMinutes: DefaultServiceDurationMinutes}
	}

	var totals ServiceTotals
	for _, s := range services {
		duration := s.DurationMinutes
		if duration <= 0 {
			duration = DefaultServiceDurationMinutes
		}
		totals.DurationMinutes += duration
		totals.TotalPrice += s.BasePrice
	}
	return totals
}

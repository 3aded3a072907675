package component

type Health struct {
	Current int
	Max     int
}

func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

var HealthComponent = NewComponent[Health]()

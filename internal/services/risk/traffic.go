package risk

// TrafficScore computes the traffic sub-score from the active incident
// count: min(count*0.5, 3).
func TrafficScore(incidentCount int) float64 {
	r := float64(incidentCount) * 0.5
	if r > 3 {
		return 3
	}
	return r
}

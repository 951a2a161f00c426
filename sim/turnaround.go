// Turnaround accounting (§4.6), grounded on sim/metrics.go's
// aggregate-then-report idiom and the original's unweighted_turnaround/
// weighted_turnaround free functions.

package sim

// TurnaroundSummary holds the system-wide turnaround averages emitted only
// on the terminal snapshot (§4.6, §4.3 Display contract).
type TurnaroundSummary struct {
	AverageUnweighted float64
	AverageWeighted   float64
}

// SystemTurnaround computes the arithmetic mean of unweighted and weighted
// turnaround across every Complete job. Returns the zero value if no job
// has completed yet.
func (s *SimulationState) SystemTurnaround() TurnaroundSummary {
	var sumUnweighted int64
	var sumWeighted float64
	n := 0
	for _, jobID := range s.complete.items {
		j := s.jobs[jobID]
		sumUnweighted += j.UnweightedTurnaround()
		sumWeighted += j.WeightedTurnaround()
		n++
	}
	if n == 0 {
		return TurnaroundSummary{}
	}
	return TurnaroundSummary{
		AverageUnweighted: float64(sumUnweighted) / float64(n),
		AverageWeighted:   sumWeighted / float64(n),
	}
}

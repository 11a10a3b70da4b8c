package quiz

import "time"

// Scoring constants. Tunable, but the floor/ceiling bounds and the
// monotonic decay in response time must hold.
const (
	scoreBase     = 100
	scoreFloor    = 50
	scoreDecayPer = 100 * time.Millisecond
)

// scorePoints maps an answer outcome to a point delta. An incorrect
// answer is worth nothing; a correct one decays linearly with response
// time from scoreBase down to scoreFloor.
func scorePoints(correct bool, responseTime time.Duration) int {
	if !correct {
		return 0
	}
	points := scoreBase - int(responseTime/scoreDecayPer)
	if points < scoreFloor {
		return scoreFloor
	}
	return points
}

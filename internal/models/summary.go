package models

import "math"

// PercentReached reports how much of the target the net amount covers,
// rounded to two decimal places. A zero or negative target always yields 0.
func PercentReached(net, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(net/target*10000) / 100
}

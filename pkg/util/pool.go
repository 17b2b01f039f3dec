package util

import "runtime"

// Worker bounds for parser pools and scan workers.
const (
	MinWorkers = 4
	MaxWorkers = 32
)

// Workers returns override when positive, otherwise twice the CPU count
// clamped to [MinWorkers, MaxWorkers].
func Workers(override int) int {
	if override > 0 {
		return override
	}
	return min(max(runtime.NumCPU()*2, MinWorkers), MaxWorkers)
}

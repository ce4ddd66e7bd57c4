package multisource

import "time"

// Config carries the multi-source validator's tunable budgets (spec
// section 4.9). Values are clamped to their documented bounds by
// NewConfig rather than rejected — the same "clamp, don't reject"
// tolerance the teacher's connection pool sizing shows for out-of-range
// operator input.
type Config struct {
	MaxConcurrentValidations int
	MemoryBudgetMB           int
	ValidationTimeoutSeconds int
	EnableQueryOptimization  bool
}

// DefaultConfig matches the defaults named in spec section 4.9.
func DefaultConfig() Config {
	return Config{
		MaxConcurrentValidations: 4,
		MemoryBudgetMB:           512,
		ValidationTimeoutSeconds: 300,
		EnableQueryOptimization:  false,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NewConfig clamps each field to its documented bound:
// max_concurrent_validations [1,32], memory_budget_mb [64,4096],
// validation_timeout_seconds [30,3600].
func NewConfig(maxConcurrent, memoryBudgetMB, timeoutSeconds int, enableQueryOptimization bool) Config {
	return Config{
		MaxConcurrentValidations: clamp(maxConcurrent, 1, 32),
		MemoryBudgetMB:           clamp(memoryBudgetMB, 64, 4096),
		ValidationTimeoutSeconds: clamp(timeoutSeconds, 30, 3600),
		EnableQueryOptimization:  enableQueryOptimization,
	}
}

// PerConstraintTimeout is the default per-constraint wall-clock budget
// (spec section 4.9), independent of the overall validation timeout.
const PerConstraintTimeout = 300 * time.Second

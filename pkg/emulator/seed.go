package emulator

import "github.com/qompute/qschemas/pkg/variant"

// Seed returns the simulation seed carried by a runtime, error-model or
// simulator variant, or nil when the variant has no seed set.
func Seed(r variant.Record) *int64 {
	switch v := r.(type) {
	case *SimpleRuntime:
		return v.Seed
	case *HeliosRuntime:
		return v.Seed
	case *NoErrorModel:
		return v.Seed
	case *DepolarizingErrorModel:
		return v.Seed
	case *QSystemErrorModel:
		return v.Seed
	case *StatevectorSimulator:
		return v.Seed
	case *StabilizerSimulator:
		return v.Seed
	case *MatrixProductStateSimulator:
		return v.Seed
	case *CoinflipSimulator:
		return v.Seed
	case *ClassicalReplaySimulator:
		return v.Seed
	default:
		return nil
	}
}

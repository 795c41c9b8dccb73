package planner

import "fmt"

// JoinAlgorithm names the fallback used when the right table of a join has
// no live index on its join column
type JoinAlgorithm string

const (
	JoinAlgorithmHash       JoinAlgorithm = "hash"        // temporary hash index over the right table
	JoinAlgorithmNestedLoop JoinAlgorithm = "nested_loop" // compare every pair
)

// ParseJoinAlgorithm validates a configured algorithm name
func ParseJoinAlgorithm(s string) (JoinAlgorithm, error) {
	switch JoinAlgorithm(s) {
	case JoinAlgorithmHash, JoinAlgorithmNestedLoop:
		return JoinAlgorithm(s), nil
	}
	return "", fmt.Errorf("unknown join algorithm %q (want hash or nested_loop)", s)
}

// ExecutionConfig holds execution parameters
type ExecutionConfig struct {
	// UseIndexes lets scans and joins consult live indexes. When false every
	// scan is a full scan and every join uses the fallback algorithm.
	UseIndexes    bool
	JoinAlgorithm JoinAlgorithm
}

// DefaultExecutionConfig returns default configuration
func DefaultExecutionConfig() *ExecutionConfig {
	return &ExecutionConfig{
		UseIndexes:    true,
		JoinAlgorithm: JoinAlgorithmHash,
	}
}

func orDefault(cfg *ExecutionConfig) *ExecutionConfig {
	if cfg == nil {
		return DefaultExecutionConfig()
	}
	return cfg
}

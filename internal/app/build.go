package app

import (
	"time"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// BuildRequest is one build. Seed 0 in Config asks for a time-derived seed.
type BuildRequest struct {
	Command string
	Items   []domain.Item
	Config  domain.BuildConfig

	// InputPath and OutputPath are recorded in history only.
	InputPath  string
	OutputPath string
}

// BuildResponse carries the engine result plus what the service decided.
type BuildResponse struct {
	Result *domain.BuildResult
	Seed   int64
	// RunID is empty when history is disabled or recording failed.
	RunID string
}

// CompareRequest runs every offline strategy over the same items and seed.
type CompareRequest struct {
	Items  []domain.Item
	Config domain.BuildConfig
}

// StrategyStats summarizes one strategy's tree.
type StrategyStats struct {
	Command        string
	Success        bool
	Error          string
	Schools        int
	TotalNodes     int
	ReachableNodes int
	AllValid       bool
	MaxDepth       int
	WidestNode     int
	Elapsed        time.Duration
}

type CompareResponse struct {
	Seed int64
	// Rows follow the order of the strategies compared.
	Rows []StrategyStats
}

// ValidateTreeRequest re-checks a tree read from disk.
type ValidateTreeRequest struct {
	Tree        *domain.TreeData
	Fix         bool
	MaxChildren int
}

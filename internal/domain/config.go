package domain

// LLMAPIConfig holds credentials for chain grouping.
type LLMAPIConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Provider string `json:"provider" yaml:"provider"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
}

// GridHint describes the target layout. When present it nudges the
// branching width each builder uses.
type GridHint struct {
	Mode               string  `json:"mode" yaml:"mode"`
	SchoolCount        int     `json:"schoolCount" yaml:"schoolCount"`
	AvgPointsPerSchool float64 `json:"avgPointsPerSchool" yaml:"avgPointsPerSchool"`
}

// BuildConfig holds per-request build parameters.
type BuildConfig struct {
	Seed               int64             `json:"seed" yaml:"seed"`
	MaxChildrenPerNode int               `json:"max_children_per_node" yaml:"max_children_per_node"`
	TopThemesPerSchool int               `json:"top_themes_per_school" yaml:"top_themes_per_school"`
	AutoFixUnreachable bool              `json:"auto_fix_unreachable" yaml:"auto_fix_unreachable"`
	PreferVanillaRoots bool              `json:"prefer_vanilla_roots" yaml:"prefer_vanilla_roots"`
	Density            float64           `json:"density" yaml:"density"`
	Symmetry           float64           `json:"symmetry" yaml:"symmetry"`
	Chaos              float64           `json:"chaos" yaml:"chaos"`
	ConvergenceChance  float64           `json:"convergence_chance" yaml:"convergence_chance"`
	ForceBalance       float64           `json:"force_balance" yaml:"force_balance"`
	BranchStyle        string            `json:"branch_style" yaml:"branch_style"`
	ChainStyle         string            `json:"chain_style" yaml:"chain_style"`
	BatchSize          int               `json:"batch_size" yaml:"batch_size"`
	SelectedRoots      map[string]string `json:"selected_roots,omitempty" yaml:"selected_roots,omitempty"`
	LLMAPI             LLMAPIConfig      `json:"llm_api" yaml:"llm_api"`
	GridHint           *GridHint         `json:"grid_hint,omitempty" yaml:"grid_hint,omitempty"`
}

// DefaultGridHint is used for any field missing from a grid_hint block.
func DefaultGridHint() GridHint {
	return GridHint{Mode: "sun", SchoolCount: 5}
}

// DefaultBuildConfig returns the documented defaults.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MaxChildrenPerNode: 3,
		TopThemesPerSchool: 8,
		AutoFixUnreachable: true,
		PreferVanillaRoots: true,
		Density:            0.6,
		Symmetry:           0.3,
		Chaos:              0,
		ConvergenceChance:  0.4,
		ForceBalance:       0.5,
		BranchStyle:        "chain",
		ChainStyle:         "linear",
		BatchSize:          20,
		SelectedRoots:      map[string]string{},
		LLMAPI:             LLMAPIConfig{Provider: "openrouter"},
	}
}

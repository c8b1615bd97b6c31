package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/spelltree/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format is a BuildConfig file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// LoadBuildConfig reads a BuildConfig file. An empty path yields the
// defaults.
func LoadBuildConfig(path string) (domain.BuildConfig, error) {
	if path == "" {
		return domain.DefaultBuildConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.BuildConfig{}, fmt.Errorf("reading build config: %w", err)
	}
	cfg, err := ParseBuildConfig(data, FormatFromPath(path))
	if err != nil {
		return domain.BuildConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ParseBuildConfig decodes a BuildConfig leniently. Keys may be snake_case
// or camelCase. A missing or mistyped field keeps its default; only a
// syntactically broken document is an error. Range clamping is left to
// the engine.
func ParseBuildConfig(data []byte, format Format) (domain.BuildConfig, error) {
	raw := map[string]any{}
	if len(strings.TrimSpace(string(data))) > 0 {
		var err error
		switch format {
		case FormatYAML:
			err = yaml.Unmarshal(data, &raw)
		default:
			err = json.Unmarshal(data, &raw)
		}
		if err != nil {
			return domain.BuildConfig{}, err
		}
	}
	return fromMap(raw), nil
}

func fromMap(m map[string]any) domain.BuildConfig {
	cfg := domain.DefaultBuildConfig()
	f := fields(m)

	cfg.Seed = f.getInt64("seed", cfg.Seed)
	cfg.MaxChildrenPerNode = f.getInt("max_children_per_node", cfg.MaxChildrenPerNode)
	cfg.TopThemesPerSchool = f.getInt("top_themes_per_school", cfg.TopThemesPerSchool)
	cfg.AutoFixUnreachable = f.getBool("auto_fix_unreachable", cfg.AutoFixUnreachable)
	cfg.PreferVanillaRoots = f.getBool("prefer_vanilla_roots", cfg.PreferVanillaRoots)
	cfg.Density = f.getFloat("density", cfg.Density)
	cfg.Symmetry = f.getFloat("symmetry", cfg.Symmetry)
	cfg.Chaos = f.getFloat("chaos", cfg.Chaos)
	cfg.ConvergenceChance = f.getFloat("convergence_chance", cfg.ConvergenceChance)
	cfg.ForceBalance = f.getFloat("force_balance", cfg.ForceBalance)
	cfg.BranchStyle = f.getString("branch_style", cfg.BranchStyle)
	cfg.ChainStyle = f.getString("chain_style", cfg.ChainStyle)
	cfg.BatchSize = f.getInt("batch_size", cfg.BatchSize)

	if roots, ok := f.get("selected_roots").(map[string]any); ok {
		for school, v := range roots {
			if id := rootID(v); id != "" {
				cfg.SelectedRoots[school] = id
			}
		}
	}

	if api, ok := f.get("llm_api").(map[string]any); ok {
		a := fields(api)
		cfg.LLMAPI.Enabled = a.getBool("enabled", cfg.LLMAPI.Enabled)
		cfg.LLMAPI.Provider = a.getString("provider", cfg.LLMAPI.Provider)
		cfg.LLMAPI.APIKey = a.getString("api_key", cfg.LLMAPI.APIKey)
		cfg.LLMAPI.Model = a.getString("model", cfg.LLMAPI.Model)
		cfg.LLMAPI.URL = a.getString("url", cfg.LLMAPI.URL)
	}

	if hint, ok := f.get("grid_hint").(map[string]any); ok {
		g := domain.DefaultGridHint()
		h := fields(hint)
		g.Mode = h.getString("mode", g.Mode)
		g.SchoolCount = h.getInt("school_count", g.SchoolCount)
		g.AvgPointsPerSchool = h.getFloat("avg_points_per_school", g.AvgPointsPerSchool)
		cfg.GridHint = &g
	}
	return cfg
}

// rootID accepts either a bare form id or an object carrying formId.
func rootID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		if id, ok := t["formId"].(string); ok {
			return strings.TrimSpace(id)
		}
		if id, ok := t["form_id"].(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

// fields looks keys up by their snake_case name or its camelCase alias.
type fields map[string]any

func (f fields) get(key string) any {
	if v, ok := f[key]; ok {
		return v
	}
	return f[camel(key)]
}

func (f fields) getInt(key string, def int) int {
	n, ok := toFloat(f.get(key))
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return def
	}
	return int(n)
}

func (f fields) getInt64(key string, def int64) int64 {
	switch v := f.get(key).(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case uint64:
		return int64(v)
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= 1<<63 {
			return def
		}
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}

func (f fields) getFloat(key string, def float64) float64 {
	n, ok := toFloat(f.get(key))
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return def
	}
	return n
}

func (f fields) getBool(key string, def bool) bool {
	switch v := f.get(key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

func (f fields) getString(key, def string) string {
	if s, ok := f.get(key).(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil
	}
	return 0, false
}

// camel turns max_children_per_node into maxChildrenPerNode.
func camel(key string) string {
	parts := strings.Split(key, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// WriteBuildConfig serializes cfg in the given format.
func WriteBuildConfig(path string, cfg domain.BuildConfig, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding build config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing build config: %w", err)
	}
	return nil
}

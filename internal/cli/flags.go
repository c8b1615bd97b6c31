package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/spelltree/internal/builder"
	"github.com/alexanderramin/spelltree/internal/config"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/importer"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// strategies maps the -t values accepted on the command line to engine
// commands.
var strategies = map[string]string{
	"classic":  builder.CommandClassic,
	"tree":     builder.CommandTree,
	"thematic": builder.CommandThematic,
	"graph":    builder.CommandGraph,
	"oracle":   builder.CommandOracle,
}

func strategyNames() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// resolveStrategy accepts a short name or a full engine command.
func resolveStrategy(name string) (string, error) {
	if cmd, ok := strategies[strings.ToLower(name)]; ok {
		return cmd, nil
	}
	if builder.CheckCommand(name) == nil {
		return name, nil
	}
	return "", fmt.Errorf("unknown tree type %q (want one of %s)", name, strings.Join(strategyNames(), ", "))
}

// buildInputs are the flags shared by build and compare.
type buildInputs struct {
	input      string
	configPath string
	seed       int64
}

func addBuildInputFlags(fs *pflag.FlagSet, in *buildInputs) {
	fs.StringVarP(&in.input, "input", "i", "", "Spell list JSON (array or {\"spells\": [...]})")
	fs.StringVarP(&in.configPath, "config", "c", "", "Build config file (.json, .yaml)")
	fs.Int64VarP(&in.seed, "seed", "s", 0, "Random seed; 0 derives one from the clock")
}

// load reads the items and build config. An explicit --seed overrides the
// config file's seed.
func (in buildInputs) load(fs *pflag.FlagSet, log *zap.Logger) ([]domain.Item, domain.BuildConfig, error) {
	if in.input == "" {
		return nil, domain.BuildConfig{}, errors.New("--input is required")
	}
	cfg, err := config.LoadBuildConfig(in.configPath)
	if err != nil {
		return nil, domain.BuildConfig{}, err
	}
	if fs.Changed("seed") {
		cfg.Seed = in.seed
	}

	items, err := importer.LoadItems(in.input)
	if err != nil {
		return nil, domain.BuildConfig{}, err
	}
	if problems := importer.ValidateItems(items); len(problems) > 0 {
		log.Warn("input has problems; affected records are skipped or placed as Novice",
			zap.Int("count", len(problems)),
			zap.Error(errors.Join(problems...)))
	}
	return items, cfg, nil
}

func seedLabel(seed int64) string {
	if seed == 0 {
		return "auto"
	}
	return fmt.Sprint(seed)
}

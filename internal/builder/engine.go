// Package builder turns a flat item list into one prerequisite tree per
// category. Five strategies share the text model, the similarity matrix,
// theme discovery and the validator:
//
//	build_tree_classic   tier-first baseline
//	build_tree           theme round-robin with convergence gates
//	build_tree_thematic  theme-first breadth-first branches
//	build_tree_graph     greedy scored arborescence with repair passes
//	build_tree_oracle    LLM chain grouping with a Cluster Lane fallback
//
// Build is synchronous and single-threaded. All randomness comes from one
// generator seeded from the request, so identical input and seed give
// identical output.
package builder

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/similarity"
	"github.com/alexanderramin/spelltree/internal/themes"
	"github.com/alexanderramin/spelltree/internal/validate"
	"go.uber.org/zap"
)

const (
	CommandClassic  = "build_tree_classic"
	CommandTree     = "build_tree"
	CommandThematic = "build_tree_thematic"
	CommandGraph    = "build_tree_graph"
	CommandOracle   = "build_tree_oracle"

	Version = "1.0"

	// seedStream is the fixed second PCG word; only the request seed varies.
	seedStream = 0x5eed_7ee5
)

var ErrUnknownCommand = errors.New("unknown build command")

// ChainGrouper asks an external service to split one batch of a
// category's items into named learning chains.
type ChainGrouper interface {
	GroupChains(ctx context.Context, school string, batch []domain.Item) ([]domain.Chain, error)
}

// Options carries the collaborators of a build.
type Options struct {
	// Grouper is only consulted by the oracle strategy when the request
	// enables llm_api.
	Grouper ChainGrouper
	// LLMTimeout bounds each grouping call. Zero leaves the caller's
	// context in charge.
	LLMTimeout time.Duration
	Logger     *zap.Logger
}

type strategy struct {
	generator string
	width     func(domain.BuildConfig) int
	build     func(ctx context.Context, s *school) *domain.SchoolTree
}

var strategies = map[string]strategy{
	CommandClassic:  {generator: "ClassicTreeBuilder (tier-first)", width: treeWidth, build: buildClassic},
	CommandTree:     {generator: "TreeBuilder (theme round-robin)", width: treeWidth, build: buildTree},
	CommandThematic: {generator: "ThematicTreeBuilder (theme-first BFS)", width: treeWidth, build: buildThematic},
	CommandGraph:    {generator: "GraphTreeBuilder (scored arborescence)", width: graphWidth, build: buildGraph},
	CommandOracle:   {generator: "OracleTreeBuilder (LLM-guided)", width: oracleWidth, build: buildOracle},
}

// Commands lists the supported build commands.
func Commands() []string {
	return []string{CommandClassic, CommandTree, CommandThematic, CommandGraph, CommandOracle}
}

// CheckCommand returns ErrUnknownCommand for anything Build would reject.
func CheckCommand(command string) error {
	if _, ok := strategies[command]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
	return nil
}

// buildState is shared by every category of one Build call.
type buildState struct {
	opts       Options
	log        *zap.Logger
	llmEnabled bool
	llmMode    string
}

func (st *buildState) fellBack() {
	if st.llmEnabled {
		st.llmMode = "mixed"
	}
}

// Build runs command over items. Unknown commands yield Success=false;
// every other problem degrades inside the strategy.
func Build(ctx context.Context, command string, items []domain.Item, cfg domain.BuildConfig, opts Options) *domain.BuildResult {
	start := time.Now()
	st, ok := strategies[command]
	if !ok {
		return &domain.BuildResult{
			Success: false,
			Error:   fmt.Sprintf("Unknown build command: %s", command),
		}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg = Normalize(cfg)

	bySchool, schoolNames := partition(items)
	discovered := themes.DiscoverThemesPerSchool(bySchool, cfg.TopThemesPerSchool)
	themeMap := themes.MergeWithHints(discovered, themes.VanillaHints, cfg.TopThemesPerSchool+themes.HintMargin)

	state := &buildState{
		opts:       opts,
		log:        log,
		llmEnabled: cfg.LLMAPI.Enabled && opts.Grouper != nil,
	}
	state.llmMode = "fallback"
	if state.llmEnabled {
		state.llmMode = "llm"
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), seedStream))
	width := st.width(cfg)

	out := &domain.TreeData{
		Version:   Version,
		Generator: st.generator,
		Command:   command,
		Seed:      cfg.Seed,
		Schools:   make(map[string]*domain.SchoolTree),
	}
	var checked []*validate.Tree
	built := make(map[string]*school)

	for _, name := range schoolNames {
		s := &school{
			name:        name,
			items:       bySchool[name],
			themes:      themeMap[name],
			matrix:      similarity.BuildMatrix(bySchool[name]),
			cfg:         cfg,
			maxChildren: width,
			rng:         rng,
			log:         log.With(zap.String("school", name)),
			state:       state,
		}
		tree := st.build(ctx, s)
		if tree == nil {
			log.Debug("school skipped", zap.String("school", name), zap.Int("items", len(s.items)))
			continue
		}
		tree.Root = s.root
		out.Schools[name] = tree
		built[name] = s
		checked = append(checked, &validate.Tree{
			School:           name,
			Root:             s.root,
			Nodes:            s.nodes,
			Matrix:           s.matrix,
			MaxChildren:      width,
			RepairIncomplete: s.repairIncomplete,
		})
	}

	out.Validation = validate.ValidateAndFix(checked, cfg.AutoFixUnreachable)
	for name, s := range built {
		out.Schools[name].Nodes = s.nodes.Dicts()
	}
	if command == CommandOracle {
		out.LLMMode = state.llmMode
	}

	log.Debug("build finished",
		zap.String("command", command),
		zap.Int("schools", len(out.Schools)),
		zap.Int("nodes", out.Validation.TotalNodes),
		zap.Bool("all_valid", out.Validation.AllValid))

	return &domain.BuildResult{
		Success:   true,
		Tree:      out,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
}

// partition groups items by category in input order. Items without an id
// or category are dropped, as are repeated ids.
func partition(items []domain.Item) (map[string][]domain.Item, []string) {
	bySchool := make(map[string][]domain.Item)
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.FormID == "" || it.School == "" || seen[it.FormID] {
			continue
		}
		seen[it.FormID] = true
		bySchool[it.School] = append(bySchool[it.School], it)
	}
	names := make([]string, 0, len(bySchool))
	for name := range bySchool {
		names = append(names, name)
	}
	sort.Strings(names)
	return bySchool, names
}

// Normalize clamps every numeric knob into its documented range.
func Normalize(cfg domain.BuildConfig) domain.BuildConfig {
	def := domain.DefaultBuildConfig()
	if cfg.MaxChildrenPerNode == 0 {
		cfg.MaxChildrenPerNode = def.MaxChildrenPerNode
	}
	cfg.MaxChildrenPerNode = min(max(cfg.MaxChildrenPerNode, 1), 8)
	if cfg.TopThemesPerSchool <= 0 {
		cfg.TopThemesPerSchool = def.TopThemesPerSchool
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = def.BatchSize
	}
	cfg.BatchSize = max(cfg.BatchSize, 5)
	cfg.Density = clamp01(cfg.Density)
	cfg.Symmetry = clamp01(cfg.Symmetry)
	cfg.Chaos = clamp01(cfg.Chaos)
	cfg.ConvergenceChance = clamp01(cfg.ConvergenceChance)
	cfg.ForceBalance = clamp01(cfg.ForceBalance)
	return cfg
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

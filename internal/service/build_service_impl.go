package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/alexanderramin/spelltree/internal/builder"
	"github.com/alexanderramin/spelltree/internal/db"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/repository"
	"github.com/alexanderramin/spelltree/internal/validate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrBuildFailed wraps the engine's own error string.
var ErrBuildFailed = errors.New("build failed")

// GrouperFactory builds a chain grouper for one request's llm_api block.
type GrouperFactory func(api domain.LLMAPIConfig) (builder.ChainGrouper, error)

// CompareCommands are the strategies `compare` runs. Oracle is left out
// because it would spend external calls.
var CompareCommands = []string{
	builder.CommandClassic,
	builder.CommandTree,
	builder.CommandThematic,
	builder.CommandGraph,
}

type buildService struct {
	uow        db.UnitOfWork
	grouper    GrouperFactory
	logger     *zap.Logger
	llmTimeout time.Duration
	now        func() time.Time
	observer   UseCaseObserver
}

// BuildServiceConfig wires a build service. History is skipped when UoW is
// nil, and oracle builds use the Cluster Lane fallback when Grouper is nil.
type BuildServiceConfig struct {
	UoW        db.UnitOfWork
	Grouper    GrouperFactory
	Logger     *zap.Logger
	LLMTimeout time.Duration
	// Now defaults to time.Now; tests pin it to fix time-derived seeds.
	Now func() time.Time
}

func NewBuildService(cfg BuildServiceConfig, observers ...UseCaseObserver) BuildService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &buildService{
		uow:        cfg.UoW,
		grouper:    cfg.Grouper,
		logger:     logger,
		llmTimeout: cfg.LLMTimeout,
		now:        now,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *buildService) Build(ctx context.Context, req app.BuildRequest) (resp *app.BuildResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"command": req.Command, "items": len(req.Items)}
	defer observe(ctx, s.observer, "build", startedAt, fields, &err)

	if err = builder.CheckCommand(req.Command); err != nil {
		return nil, err
	}

	cfg := req.Config
	cfg.Seed = resolveSeed(cfg.Seed, s.now())
	fields["seed"] = cfg.Seed

	opts := builder.Options{Logger: s.logger, LLMTimeout: s.llmTimeout}
	if req.Command == builder.CommandOracle && cfg.LLMAPI.Enabled && s.grouper != nil {
		g, gerr := s.grouper(cfg.LLMAPI)
		if gerr != nil {
			s.logger.Warn("chain grouper unavailable, using cluster lanes",
				zap.String("provider", cfg.LLMAPI.Provider), zap.Error(gerr))
		} else {
			opts.Grouper = g
		}
	}

	result := builder.Build(ctx, req.Command, req.Items, cfg, opts)
	resp = &app.BuildResponse{Result: result, Seed: cfg.Seed}
	if !result.Success {
		return resp, fmt.Errorf("%w: %s", ErrBuildFailed, result.Error)
	}
	fields["all_valid"] = result.Tree.Validation.AllValid
	fields["llm_mode"] = result.Tree.LLMMode

	resp.RunID = s.record(ctx, req, result)
	return resp, nil
}

// record stores the run. History is best effort: a failed write is logged
// and never fails the build.
func (s *buildService) record(ctx context.Context, req app.BuildRequest, result *domain.BuildResult) string {
	if s.uow == nil {
		return ""
	}
	run := domain.NewBuildRun(result.Tree, len(req.Items), result.ElapsedMs)
	run.InputPath = req.InputPath
	run.OutputPath = req.OutputPath
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRunRepo(tx).Create(ctx, run)
	})
	if err != nil {
		s.logger.Warn("recording build run", zap.Error(err))
		return ""
	}
	return run.ID
}

func (s *buildService) Compare(ctx context.Context, req app.CompareRequest) (resp *app.CompareResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"items": len(req.Items)}
	defer observe(ctx, s.observer, "compare", startedAt, fields, &err)

	cfg := req.Config
	cfg.Seed = resolveSeed(cfg.Seed, s.now())
	fields["seed"] = cfg.Seed

	rows := make([]app.StrategyStats, len(CompareCommands))
	g, gctx := errgroup.WithContext(ctx)
	for i, command := range CompareCommands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			result := builder.Build(gctx, command, req.Items, cfg, builder.Options{Logger: s.logger})
			rows[i] = strategyStats(command, result, time.Since(start))
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("comparing strategies: %w", err)
	}
	return &app.CompareResponse{Seed: cfg.Seed, Rows: rows}, nil
}

func strategyStats(command string, result *domain.BuildResult, elapsed time.Duration) app.StrategyStats {
	row := app.StrategyStats{Command: command, Success: result.Success, Error: result.Error, Elapsed: elapsed}
	if !result.Success || result.Tree == nil {
		return row
	}
	row.Schools = len(result.Tree.Schools)
	row.TotalNodes = result.Tree.Validation.TotalNodes
	row.ReachableNodes = result.Tree.Validation.ReachableNodes
	row.AllValid = result.Tree.Validation.AllValid
	for _, st := range result.Tree.Schools {
		depth, widest := st.Shape()
		row.MaxDepth = max(row.MaxDepth, depth)
		row.WidestNode = max(row.WidestNode, widest)
	}
	return row
}

func (s *buildService) ValidateTree(ctx context.Context, req app.ValidateTreeRequest) (tree *domain.TreeData, err error) {
	startedAt := time.Now()
	fields := map[string]any{"fix": req.Fix}
	defer observe(ctx, s.observer, "validate-tree", startedAt, fields, &err)

	if req.Tree == nil || len(req.Tree.Schools) == 0 {
		return nil, fmt.Errorf("validating tree: no schools")
	}
	sum := validate.Revalidate(req.Tree, req.Fix, req.MaxChildren)
	fields["all_valid"] = sum.AllValid
	fields["reachable_nodes"] = sum.ReachableNodes
	return req.Tree, nil
}

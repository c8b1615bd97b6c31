package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/spelltree/internal/builder"
	"github.com/alexanderramin/spelltree/internal/cli"
	"github.com/alexanderramin/spelltree/internal/config"
	"github.com/alexanderramin/spelltree/internal/db"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/intelligence"
	"github.com/alexanderramin/spelltree/internal/llm"
	"github.com/alexanderramin/spelltree/internal/logger"
	"github.com/alexanderramin/spelltree/internal/repository"
	"github.com/alexanderramin/spelltree/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	appCfg, err := config.Load()
	if err != nil {
		return err
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	log, err := logger.NewLeveled(appCfg.Env, level)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync(log)

	// LLM clients are built per request from the request's llm_api block;
	// the environment supplies defaults and credentials.
	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NewZapObserver(log)
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	grouper := func(api domain.LLMAPIConfig) (builder.ChainGrouper, error) {
		g, err := intelligence.NewChainGrouper(api, llmCfg, observer)
		if err != nil {
			return nil, err
		}
		return g, nil
	}

	useCases := service.NewZapUseCaseObserver(log)
	buildCfg := service.BuildServiceConfig{
		Grouper:    grouper,
		Logger:     log,
		LLMTimeout: time.Duration(llmCfg.TaskTimeout(llm.TaskChainGrouping)) * time.Millisecond,
	}

	app := &cli.App{
		Prereqs: service.NewPrereqService(useCases),
		Logger:  log,
		SetVerbose: func(verbose bool) {
			if verbose {
				level.SetLevel(zap.DebugLevel)
			}
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}

	if appCfg.History {
		database, err := db.OpenDB(appCfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()

		buildCfg.UoW = db.NewSQLiteUnitOfWork(database)
		app.History = service.NewHistoryService(repository.NewSQLiteRunRepo(database))
	}

	builds := service.NewBuildService(buildCfg, useCases)
	app.Build = builds
	app.Compare = builds
	app.ValidateTree = builds

	return cli.NewRootCmd(app).Execute()
}

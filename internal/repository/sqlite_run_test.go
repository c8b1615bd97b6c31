package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/spelltree/internal/db"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	run := testutil.NewTestRun("build_tree_graph", testutil.WithRunSchools(
		domain.RunSchool{School: "Restoration", Root: "0x1", LayoutStyle: "graph_arborescence", TotalNodes: 4, ReachableNodes: 3, RepairIncomplete: true},
		domain.RunSchool{School: "Destruction", Root: "0x2", LayoutStyle: "graph_arborescence", TotalNodes: 5, ReachableNodes: 5, Valid: true},
	))
	require.NoError(t, repo.Create(ctx, run))
	require.NotEmpty(t, run.ID)

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "build_tree_graph", got.Command)
	assert.Equal(t, int64(42), got.Seed)
	assert.True(t, got.AllValid)
	assert.Equal(t, "tree.json", got.OutputPath)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Schools, 2)
	assert.Equal(t, "Destruction", got.Schools[0].School)
	assert.True(t, got.Schools[0].Valid)
	assert.Equal(t, "Restoration", got.Schools[1].School)
	assert.True(t, got.Schools[1].RepairIncomplete)
}

func TestRunRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_GetByPrefix(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestRun("build_tree")
	a.ID = "abc12345-0000-0000-0000-000000000001"
	b := testutil.NewTestRun("build_tree")
	b.ID = "abc99999-0000-0000-0000-000000000002"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByPrefix(ctx, "ABC12")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.GetByPrefix(ctx, "abc")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = repo.GetByPrefix(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	// LIKE wildcards in user input are matched literally.
	_, err = repo.GetByPrefix(ctx, "%")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		run := testutil.NewTestRun("build_tree_classic",
			testutil.WithRunSeed(int64(i)),
			testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Hour)),
		)
		require.NoError(t, repo.Create(ctx, run))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, int64(3), all[0].Seed)
	assert.Equal(t, int64(0), all[3].Seed)
	assert.Empty(t, all[0].Schools, "list does not load school lines")

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, int64(2), limited[1].Seed)
}

func TestRunRepo_DeleteCascades(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	ctx := context.Background()

	run := testutil.NewTestRun("build_tree_thematic")
	require.NoError(t, repo.Create(ctx, run))
	require.NoError(t, repo.Delete(ctx, run.ID))

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM run_schools`).Scan(&n))
	assert.Equal(t, 0, n)

	assert.ErrorIs(t, repo.Delete(ctx, run.ID), ErrNotFound)
}

func TestRunRepo_CreateRollsBackOnSchoolFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("disk full")

	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	run := testutil.NewTestRun("build_tree_classic")
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteRunRepo(tx).Create(ctx, run)
	})
	require.ErrorIs(t, err, injected)

	_, err = NewSQLiteRunRepo(database).GetByID(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound, "run row must not survive a failed school insert")
}

// newFileTestDB creates a file-backed database. Unlike :memory:, a file
// shares state across every connection in the pool.
func newFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// TestRunRepo_ConcurrentRecording covers several CLI processes building
// into the same history file at once.
func TestRunRepo_ConcurrentRecording(t *testing.T) {
	database := newFileTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	commands := []string{"build_tree_classic", "build_tree", "build_tree_thematic", "build_tree_graph"}
	var wg sync.WaitGroup
	errs := make(chan error, len(commands))
	for _, cmd := range commands {
		wg.Add(1)
		go func(cmd string) {
			defer wg.Done()
			run := testutil.NewTestRun(cmd)
			errs <- uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLiteRunRepo(tx).Create(ctx, run)
			})
		}(cmd)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	runs, err := NewSQLiteRunRepo(database).List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, len(commands), fmt.Sprintf("expected one run per command, got %d", len(runs)))
}

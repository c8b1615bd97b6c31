package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/spelltree/internal/db"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/google/uuid"
)

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo. conn may be a *sql.DB or a
// *sql.Tx handed out by a UnitOfWork.
func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

const runColumns = `id, command, seed, item_count, school_count, total_nodes, reachable_nodes,
	all_valid, llm_mode, elapsed_ms, input_path, output_path, created_at`

// Create inserts the run and its per-school lines. An empty ID is filled
// with a new UUID and a zero CreatedAt with the current time. Callers
// wanting both inserts to be atomic pass a transaction-scoped DBTX.
func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.BuildRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Command,
		run.Seed,
		run.ItemCount,
		run.SchoolCount,
		run.TotalNodes,
		run.ReachableNodes,
		boolToInt(run.AllValid),
		run.LLMMode,
		run.ElapsedMs,
		run.InputPath,
		run.OutputPath,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, s := range run.Schools {
		_, err := r.db.ExecContext(ctx, `INSERT INTO run_schools
			(run_id, school, root, layout_style, total_nodes, reachable_nodes, valid, repair_incomplete)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, s.School, s.Root, s.LayoutStyle, s.TotalNodes, s.ReachableNodes,
			boolToInt(s.Valid), boolToInt(s.RepairIncomplete),
		)
		if err != nil {
			return fmt.Errorf("inserting run school %s: %w", s.School, err)
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.BuildRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadSchools(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// GetByPrefix resolves the short ids shown by the history listing.
func (r *SQLiteRunRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.BuildRun, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, fmt.Errorf("run: %w", ErrNotFound)
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY created_at DESC LIMIT 2`, escaped+"%")
	if err != nil {
		return nil, fmt.Errorf("resolving run prefix: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the connection before the follow-up lookup.
	rows.Close()

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("run %s: %w", prefix, ErrNotFound)
	case 1:
		return r.GetByID(ctx, ids[0])
	default:
		return nil, fmt.Errorf("run %s: %w", prefix, ErrAmbiguousID)
	}
}

// List returns the most recent runs first. A limit <= 0 returns all runs.
// School lines are not loaded.
func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]*domain.BuildRun, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.BuildRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRunRepo) loadSchools(ctx context.Context, run *domain.BuildRun) error {
	rows, err := r.db.QueryContext(ctx, `SELECT school, root, layout_style, total_nodes, reachable_nodes,
		valid, repair_incomplete FROM run_schools WHERE run_id = ? ORDER BY school`, run.ID)
	if err != nil {
		return fmt.Errorf("loading run schools: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.RunSchool
		var valid, incomplete int
		if err := rows.Scan(&s.School, &s.Root, &s.LayoutStyle, &s.TotalNodes, &s.ReachableNodes,
			&valid, &incomplete); err != nil {
			return fmt.Errorf("scanning run school: %w", err)
		}
		s.Valid = intToBool(valid)
		s.RepairIncomplete = intToBool(incomplete)
		run.Schools = append(run.Schools, s)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.BuildRun, error) {
	var run domain.BuildRun
	var allValid int
	var createdAt string
	err := row.Scan(
		&run.ID, &run.Command, &run.Seed, &run.ItemCount, &run.SchoolCount, &run.TotalNodes,
		&run.ReachableNodes, &allValid, &run.LLMMode, &run.ElapsedMs, &run.InputPath,
		&run.OutputPath, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	run.AllValid = intToBool(allValid)
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}

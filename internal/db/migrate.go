package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id              TEXT PRIMARY KEY,
		command         TEXT NOT NULL
		                CHECK(command IN ('build_tree_classic','build_tree','build_tree_thematic',
		                                  'build_tree_graph','build_tree_oracle')),
		seed            INTEGER NOT NULL,
		item_count      INTEGER NOT NULL DEFAULT 0,
		school_count    INTEGER NOT NULL DEFAULT 0,
		total_nodes     INTEGER NOT NULL DEFAULT 0,
		reachable_nodes INTEGER NOT NULL DEFAULT 0,
		all_valid       INTEGER NOT NULL DEFAULT 0,
		llm_mode        TEXT NOT NULL DEFAULT '',
		elapsed_ms      INTEGER NOT NULL DEFAULT 0,
		input_path      TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS run_schools (
		run_id            TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		school            TEXT NOT NULL,
		root              TEXT NOT NULL,
		layout_style      TEXT NOT NULL,
		total_nodes       INTEGER NOT NULL DEFAULT 0,
		reachable_nodes   INTEGER NOT NULL DEFAULT 0,
		valid             INTEGER NOT NULL DEFAULT 0,
		repair_incomplete INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, school)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_run_schools_run ON run_schools(run_id)`,

	// Added after the first release: where the tree was written.
	`ALTER TABLE runs ADD COLUMN output_path TEXT NOT NULL DEFAULT ''`,
}

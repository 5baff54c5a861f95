package registry

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteSource reads the published-name set from a judge database snapshot,
// a SQLite file with a problem table carrying a problem_name column.
type SQLiteSource struct {
	Path string
}

func (s *SQLiteSource) Describe() string { return "name database " + s.Path }

func (s *SQLiteSource) Names(ctx context.Context) (map[string]bool, error) {
	db, err := sql.Open("sqlite", s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open name database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT problem_name FROM problem")
	if err != nil {
		return nil, fmt.Errorf("query problem names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan problem name: %w", err)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			names[name] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read problem names: %w", err)
	}
	return names, nil
}

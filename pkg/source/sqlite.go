package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
)

// Row is one record of a SQLite adjacency list (id, parent_id, label).
type Row struct {
	ID       int64
	ParentID sql.NullInt64
	Label    string

	// hasChildren is fetched with the row so directories-of-records know
	// they are expandable before their children load.
	hasChildren bool
	children    []*Row
}

// SQLiteSource serves hierarchies stored as an adjacency list in a
// SQLite database. The expected schema is:
//
//	CREATE TABLE nodes (
//	    id        INTEGER PRIMARY KEY,
//	    parent_id INTEGER REFERENCES nodes(id),
//	    label     TEXT NOT NULL
//	);
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens the database at path.
func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &SQLiteSource{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error { return s.db.Close() }

// Adapter returns the treeview accessors for database rows.
func (s *SQLiteSource) Adapter() treeview.Adapter[*Row] {
	return treeview.Adapter[*Row]{
		KeyOf:         func(r *Row) string { return strconv.FormatInt(r.ID, 10) },
		ChildrenOf:    func(r *Row) []*Row { return r.children },
		DisplayOf:     func(r *Row) string { return r.Label },
		HasChildrenOf: func(r *Row) bool { return r.hasChildren },
	}
}

// Roots returns the rows with no parent.
func (s *SQLiteSource) Roots(ctx context.Context) ([]*Row, error) {
	return s.query(ctx, `
		SELECT n.id, n.parent_id, n.label,
		       EXISTS (SELECT 1 FROM nodes c WHERE c.parent_id = n.id)
		FROM nodes n WHERE n.parent_id IS NULL ORDER BY n.label`)
}

// Load populates row.children from the database. Call ReloadChildren on
// the tree afterwards to surface them.
func (s *SQLiteSource) Load(ctx context.Context, row *Row) error {
	children, err := s.query(ctx, `
		SELECT n.id, n.parent_id, n.label,
		       EXISTS (SELECT 1 FROM nodes c WHERE c.parent_id = n.id)
		FROM nodes n WHERE n.parent_id = ? ORDER BY n.label`, row.ID)
	if err != nil {
		return err
	}
	row.children = children
	return nil
}

func (s *SQLiteSource) query(ctx context.Context, q string, args ...any) ([]*Row, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		r := &Row{}
		if err := rows.Scan(&r.ID, &r.ParentID, &r.Label, &r.hasChildren); err != nil {
			return nil, fmt.Errorf("scan node row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate node rows: %w", err)
	}
	return out, nil
}

package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jward/arbor/internal/doc"
	"github.com/jward/arbor/internal/index"
)

// Save writes a snapshot of the index transactionally, replacing any
// previous snapshot. Entities are written as trees rooted at parentless
// entities; an entity reachable both from a category map and as a child is
// written exactly once. Pending resolution names are recorded for
// diagnosability.
func (s *Store) Save(ix *index.Index) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM entity_params",
		"DELETE FROM entity_types",
		"DELETE FROM pending_resolutions",
		"DELETE FROM entities",
	} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	w := &snapshotWriter{tx: tx, seen: make(map[*doc.Entity]bool)}
	for _, e := range rootsOf(ix) {
		if err := w.writeTree(e, nil, 0); err != nil {
			return err
		}
	}

	for _, name := range ix.Pending() {
		if _, err := tx.Exec("INSERT INTO pending_resolutions (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("insert pending resolution: %w", err)
		}
	}

	return tx.Commit()
}

// rootsOf collects every parentless entity reachable from the index, in a
// deterministic order: category by category, names sorted within each.
func rootsOf(ix *index.Index) []*doc.Entity {
	var roots []*doc.Entity
	seen := make(map[*doc.Entity]bool)

	appendRoots := func(m map[string]*doc.Entity) {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			e := m[name]
			if e.Parent() == nil && !seen[e] {
				seen[e] = true
				roots = append(roots, e)
			}
		}
	}

	appendRoots(ix.Classes)
	appendRoots(ix.Modules)
	appendRoots(ix.Functions)
	appendRoots(ix.Constants)
	for _, e := range ix.Misc {
		if e.Parent() == nil && !seen[e] {
			seen[e] = true
			roots = append(roots, e)
		}
	}
	return roots
}

type snapshotWriter struct {
	tx   *sql.Tx
	seen map[*doc.Entity]bool
}

func (w *snapshotWriter) writeTree(e *doc.Entity, parentID *int64, ordinal int) error {
	if w.seen[e] {
		return nil
	}
	w.seen[e] = true

	res, err := w.tx.Exec(
		`INSERT INTO entities
		   (name, qualified_name, kind, parent_entity_id, ordinal, is_private,
		    description, default_value, see_ref, source, file, line)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.QualifiedName(), e.Kind().String(), parentID, ordinal, e.IsPrivate,
		e.Description, e.Default, e.See, e.Source, e.File, e.Line,
	)
	if err != nil {
		return fmt.Errorf("insert entity %q: %w", e.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	for i, typeExpr := range e.Types {
		if _, err := w.tx.Exec(
			"INSERT INTO entity_types (entity_id, ordinal, type_expr) VALUES (?, ?, ?)",
			id, i, typeExpr,
		); err != nil {
			return fmt.Errorf("insert entity type: %w", err)
		}
	}

	for i, p := range e.Params {
		if _, err := w.tx.Exec(
			`INSERT INTO entity_params (entity_id, ordinal, name, type_expr, is_return, description)
			 VALUES (?, ?, ?, ?, FALSE, ?)`,
			id, i, p.Name, strings.Join(p.Types, "|"), p.Description,
		); err != nil {
			return fmt.Errorf("insert param: %w", err)
		}
	}
	if r := e.Return; r != nil {
		if _, err := w.tx.Exec(
			`INSERT INTO entity_params (entity_id, ordinal, name, type_expr, is_return, description)
			 VALUES (?, ?, '', ?, TRUE, ?)`,
			id, len(e.Params), strings.Join(r.Types, "|"), r.Description,
		); err != nil {
			return fmt.Errorf("insert return: %w", err)
		}
	}

	for i, child := range e.Children() {
		if err := w.writeTree(child, &id, i); err != nil {
			return err
		}
	}
	return nil
}

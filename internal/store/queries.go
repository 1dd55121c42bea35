package store

import (
	"database/sql"
	"fmt"
	"strings"
)

const entityCols = `id, name, qualified_name, kind, parent_entity_id, ordinal,
  is_private, description, default_value, see_ref, source, file, line`

func (s *Store) queryEntities(query string, args ...any) ([]*EntityRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entities []*EntityRecord
	for rows.Next() {
		e := &EntityRecord{}
		var parentID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Name, &e.QualifiedName, &e.Kind, &parentID,
			&e.Ordinal, &e.IsPrivate, &e.Description, &e.DefaultValue,
			&e.SeeRef, &e.Source, &e.File, &e.Line); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		if parentID.Valid {
			e.ParentEntityID = &parentID.Int64
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// EntityByQualifiedName returns the entity with the given dotted path, or
// nil if no such entity was stored. When duplicates share a qualified name
// the earliest-written row wins, mirroring the index's first-wins policy.
func (s *Store) EntityByQualifiedName(qualifiedName string) (*EntityRecord, error) {
	entities, err := s.queryEntities(
		"SELECT "+entityCols+" FROM entities WHERE qualified_name = ? ORDER BY id LIMIT 1",
		qualifiedName,
	)
	if err != nil {
		return nil, fmt.Errorf("entity by qualified name: %w", err)
	}
	if len(entities) == 0 {
		return nil, nil
	}
	return entities[0], nil
}

// ChildrenOf returns the children of the entity with the given ID in
// discovery order.
func (s *Store) ChildrenOf(entityID int64) ([]*EntityRecord, error) {
	entities, err := s.queryEntities(
		"SELECT "+entityCols+" FROM entities WHERE parent_entity_id = ? ORDER BY ordinal",
		entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("children of: %w", err)
	}
	return entities, nil
}

// EntitiesByKind returns all entities of the given kind ordered by
// qualified name.
func (s *Store) EntitiesByKind(kind string) ([]*EntityRecord, error) {
	entities, err := s.queryEntities(
		"SELECT "+entityCols+" FROM entities WHERE kind = ? ORDER BY qualified_name",
		kind,
	)
	if err != nil {
		return nil, fmt.Errorf("entities by kind: %w", err)
	}
	return entities, nil
}

// Roots returns all parentless entities ordered by kind then name.
func (s *Store) Roots() ([]*EntityRecord, error) {
	entities, err := s.queryEntities(
		"SELECT " + entityCols + " FROM entities WHERE parent_entity_id IS NULL ORDER BY kind, name",
	)
	if err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}
	return entities, nil
}

// TypesOf returns the declared type list for an entity, in order.
func (s *Store) TypesOf(entityID int64) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT type_expr FROM entity_types WHERE entity_id = ? ORDER BY ordinal", entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("types of: %w", err)
	}
	defer rows.Close()
	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// ParamsOf returns the parameter rows for an entity in order, with the
// return descriptor (if any) last.
func (s *Store) ParamsOf(entityID int64) ([]*ParamRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, entity_id, ordinal, name, type_expr, is_return, description
		 FROM entity_params WHERE entity_id = ? ORDER BY ordinal`, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("params of: %w", err)
	}
	defer rows.Close()
	var params []*ParamRecord
	for rows.Next() {
		p := &ParamRecord{}
		if err := rows.Scan(&p.ID, &p.EntityID, &p.Ordinal, &p.Name,
			&p.TypeExpr, &p.IsReturn, &p.Description); err != nil {
			return nil, fmt.Errorf("scan param: %w", err)
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

// PendingNames returns the names whose resolutions were still pending when
// the snapshot was written, sorted.
func (s *Store) PendingNames() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM pending_resolutions ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("pending names: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan pending name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Counts returns the number of stored entities per kind.
func (s *Store) Counts() (map[string]int, error) {
	rows, err := s.db.Query("SELECT kind, COUNT(*) FROM entities GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("counts: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// SplitTypeExpr splits a stored "A|B" type expression back into its parts.
func SplitTypeExpr(expr string) []string {
	if expr == "" {
		return nil
	}
	return strings.Split(expr, "|")
}

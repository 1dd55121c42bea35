package store

// EntityRecord is the persisted form of one documentation entity. The
// in-memory graph's pointer relationships become stable row identifiers:
// ParentEntityID is the non-owning back-reference, Ordinal is the child's
// position in its parent's discovery-ordered sequence.
type EntityRecord struct {
	ID             int64
	Name           string
	QualifiedName  string
	Kind           string
	ParentEntityID *int64
	Ordinal        int
	IsPrivate      bool
	Description    string
	DefaultValue   string
	SeeRef         string
	Source         string
	File           string
	Line           int
}

// ParamRecord is one documented parameter or, when IsReturn is set, the
// return descriptor. TypeExpr joins alternative types with "|".
type ParamRecord struct {
	ID          int64
	EntityID    int64
	Ordinal     int
	Name        string
	TypeExpr    string
	IsReturn    bool
	Description string
}

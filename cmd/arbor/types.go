package main

// CLIResult is the top-level JSON envelope for all query commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLIEntity is a JSON-friendly documentation entity.
type CLIEntity struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	QualifiedName string   `json:"qualified_name"`
	Kind          string   `json:"kind"`
	ParentID      *int64   `json:"parent_id,omitempty"`
	IsPrivate     bool     `json:"is_private,omitempty"`
	Types         []string `json:"types,omitempty"`
	Description   string   `json:"description,omitempty"`
	Default       string   `json:"default,omitempty"`
	See           string   `json:"see,omitempty"`
	File          string   `json:"file,omitempty"`
	Line          int      `json:"line,omitempty"`
}

// CLIParam is a JSON-friendly parameter or return descriptor.
type CLIParam struct {
	Name        string   `json:"name,omitempty"`
	Types       []string `json:"types,omitempty"`
	Description string   `json:"description,omitempty"`
	IsReturn    bool     `json:"is_return,omitempty"`
}

// CLIEntityDetail is an entity with its parameters and children.
type CLIEntityDetail struct {
	Entity   CLIEntity   `json:"entity"`
	Params   []CLIParam  `json:"params,omitempty"`
	Children []CLIEntity `json:"children,omitempty"`
}

// CLIPending wraps the unresolved reference names.
type CLIPending struct {
	Names []string `json:"names"`
}

// CLISummary is a JSON-friendly snapshot summary.
type CLISummary struct {
	Counts       map[string]int `json:"counts"`
	Total        int            `json:"total"`
	PendingNames []string       `json:"pending_names,omitempty"`
	BuiltAt      string         `json:"built_at,omitempty"`
	SourceDir    string         `json:"source_dir,omitempty"`
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/arbor/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a built documentation index",
	Long:  "Run queries against the SQLite snapshot written by 'arbor build'. Entities are addressed by dotted path (e.g. util.Text.split).",
}

func init() {
	queryCmd.AddCommand(entityCmd)
	queryCmd.AddCommand(childrenCmd)
	queryCmd.AddCommand(pendingCmd)
	queryCmd.AddCommand(summaryCmd)
}

// openStore opens the snapshot from the --db flag path (or default).
func openStore() (*store.Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}
	repoRoot := findRepoRoot(cwd)
	dbPath := resolveDBPath(repoRoot, "")

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s (run 'arbor build' first)", dbPath)
	}

	return store.NewStore(dbPath)
}

// cliEntity converts a stored entity row, loading its declared types.
func cliEntity(st *store.Store, e *store.EntityRecord) (CLIEntity, error) {
	types, err := st.TypesOf(e.ID)
	if err != nil {
		return CLIEntity{}, fmt.Errorf("loading types: %w", err)
	}
	return CLIEntity{
		ID:            e.ID,
		Name:          e.Name,
		QualifiedName: e.QualifiedName,
		Kind:          e.Kind,
		ParentID:      e.ParentEntityID,
		IsPrivate:     e.IsPrivate,
		Types:         types,
		Description:   e.Description,
		Default:       e.DefaultValue,
		See:           e.SeeRef,
		File:          e.File,
		Line:          e.Line,
	}, nil
}

func cliEntities(st *store.Store, records []*store.EntityRecord) ([]CLIEntity, error) {
	entities := make([]CLIEntity, 0, len(records))
	for _, r := range records {
		e, err := cliEntity(st, r)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

var entityCmd = &cobra.Command{
	Use:   "entity <path>",
	Short: "Show an entity by dotted path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return outputError("entity", err)
		}
		defer st.Close()

		record, err := st.EntityByQualifiedName(args[0])
		if err != nil {
			return outputError("entity", err)
		}
		if record == nil {
			return outputError("entity", fmt.Errorf("entity not found: %s", args[0]))
		}

		entity, err := cliEntity(st, record)
		if err != nil {
			return outputError("entity", err)
		}
		paramRecords, err := st.ParamsOf(record.ID)
		if err != nil {
			return outputError("entity", err)
		}
		params := make([]CLIParam, 0, len(paramRecords))
		for _, p := range paramRecords {
			params = append(params, CLIParam{
				Name:        p.Name,
				Types:       store.SplitTypeExpr(p.TypeExpr),
				Description: p.Description,
				IsReturn:    p.IsReturn,
			})
		}
		childRecords, err := st.ChildrenOf(record.ID)
		if err != nil {
			return outputError("entity", err)
		}
		children, err := cliEntities(st, childRecords)
		if err != nil {
			return outputError("entity", err)
		}

		return outputResult(CLIResult{
			Command: "entity",
			Results: CLIEntityDetail{Entity: entity, Params: params, Children: children},
		})
	},
}

var childrenCmd = &cobra.Command{
	Use:   "children <path> [name]",
	Short: "List the children of an entity, optionally filtered by name",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return outputError("children", err)
		}
		defer st.Close()

		record, err := st.EntityByQualifiedName(args[0])
		if err != nil {
			return outputError("children", err)
		}
		if record == nil {
			return outputError("children", fmt.Errorf("entity not found: %s", args[0]))
		}

		childRecords, err := st.ChildrenOf(record.ID)
		if err != nil {
			return outputError("children", err)
		}
		if len(args) == 2 {
			filtered := childRecords[:0]
			for _, c := range childRecords {
				if c.Name == args[1] {
					filtered = append(filtered, c)
				}
			}
			childRecords = filtered
		}
		children, err := cliEntities(st, childRecords)
		if err != nil {
			return outputError("children", err)
		}

		return outputResult(CLIResult{Command: "children", Results: children})
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List names whose references never resolved",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return outputError("pending", err)
		}
		defer st.Close()

		names, err := st.PendingNames()
		if err != nil {
			return outputError("pending", err)
		}
		return outputResult(CLIResult{Command: "pending", Results: CLIPending{Names: names}})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return outputError("summary", err)
		}
		defer st.Close()

		counts, err := st.Counts()
		if err != nil {
			return outputError("summary", err)
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		pending, err := st.PendingNames()
		if err != nil {
			return outputError("summary", err)
		}
		builtAt, err := st.GetMetadata("built_at")
		if err != nil {
			return outputError("summary", err)
		}
		sourceDir, err := st.GetMetadata("source_dir")
		if err != nil {
			return outputError("summary", err)
		}

		return outputResult(CLIResult{
			Command: "summary",
			Results: CLISummary{
				Counts:       counts,
				Total:        total,
				PendingNames: pending,
				BuiltAt:      builtAt,
				SourceDir:    sourceDir,
			},
		})
	},
}

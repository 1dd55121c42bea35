package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/arbor"
	"github.com/jward/arbor/internal/config"
	"github.com/jward/arbor/internal/diag"
	"github.com/jward/arbor/internal/store"
)

var (
	flagForce     bool
	flagLanguages string
	flagVerbose   bool
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Build the documentation index for a directory",
	Long:  "Extracts tagged comments from source files, links entities into a forest, and writes the SQLite snapshot. Reads arbor.toml from the repo root when present.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&flagForce, "force", false, "delete database and rebuild from scratch")
	buildCmd.Flags().StringVar(&flagLanguages, "languages", "", "comma-separated language filter (e.g. go,javascript)")
	buildCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "log dropped duplicates and misc-routed entities")
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	repoRoot := findRepoRoot(targetDir)
	cfg, err := config.LoadIfPresent(filepath.Join(repoRoot, "arbor.toml"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	dbPath := resolveDBPath(repoRoot, cfg.DB)

	// Ensure the snapshot directory exists.
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dbDir, err)
	}

	// Handle --force: delete the DB file entirely.
	if flagForce {
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing database for --force: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Cleared database: %s\n", dbPath)
	}

	// Build engine options; flags override the config file.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	opts := []arbor.Option{
		arbor.WithDiagnostics(diag.NewSlog(logger, "build")),
		arbor.WithVerbose(cfg.Verbose || flagVerbose),
	}
	languages := cfg.Languages
	if flagLanguages != "" {
		languages = strings.Split(flagLanguages, ",")
		for i := range languages {
			languages[i] = strings.TrimSpace(languages[i])
		}
	}
	if len(languages) > 0 {
		opts = append(opts, arbor.WithLanguages(languages...))
	}
	if len(cfg.Exclude.Files) > 0 {
		opts = append(opts, arbor.WithExcludes(cfg.Exclude.Files...))
	}
	if len(cfg.Exclude.Dirs) > 0 {
		opts = append(opts, arbor.WithExcludeDirs(cfg.Exclude.Dirs...))
	}

	engine, err := arbor.New(opts...)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	ctx := context.Background()

	buildStart := time.Now()
	if err := engine.BuildDirectory(ctx, targetDir); err != nil {
		return fmt.Errorf("building: %w", err)
	}
	buildDuration := time.Since(buildStart)

	saveStart := time.Now()
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	if err := st.Save(engine.Index()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	if err := st.SetMetadata("built_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("recording build time: %w", err)
	}
	if err := st.SetMetadata("source_dir", targetDir); err != nil {
		return fmt.Errorf("recording source dir: %w", err)
	}
	saveDuration := time.Since(saveStart)

	totalDuration := time.Since(start)
	stats := engine.Stats()

	// Print timing summary to stderr.
	fmt.Fprintf(os.Stderr, "Built %s in %s (extract: %s, save: %s)\n",
		targetDir,
		totalDuration.Round(time.Millisecond),
		buildDuration.Round(time.Millisecond),
		saveDuration.Round(time.Millisecond),
	)
	fmt.Fprintf(os.Stderr, "Files: %d, comments: %d (%d ignored)\n",
		stats.Files, stats.Comments, stats.Ignored)
	fmt.Fprintf(os.Stderr, "Entities: %d classes, %d modules, %d functions, %d constants, %d misc\n",
		stats.Classes, stats.Modules, stats.Functions, stats.Constants, stats.Misc)
	if stats.PendingResolutions > 0 {
		fmt.Fprintf(os.Stderr, "Unresolved references: %s\n",
			strings.Join(stats.PendingNames, ", "))
	}
	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)

	return nil
}

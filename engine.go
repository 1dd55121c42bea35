package arbor

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/jward/arbor/internal/comments"
	"github.com/jward/arbor/internal/diag"
	"github.com/jward/arbor/internal/doc"
	"github.com/jward/arbor/internal/index"
	"github.com/jward/arbor/internal/tags"
)

// Engine orchestrates the arbor pipeline: file discovery, comment
// extraction, tag interpretation, and ingestion into the document index.
type Engine struct {
	index     *index.Index
	interp    *tags.Interpreter
	extractor *comments.Extractor
	sink      diag.Sink
	verbose   bool

	languages       map[string]bool // nil means all languages
	excludes        []glob.Glob
	excludeDirs     map[string]bool
	pendingPatterns []string

	filesBuilt   int
	commentsSeen int
	ignoredCount int
}

// Option configures an Engine.
type Option func(*Engine)

// WithDiagnostics sets the sink receiving warn-and-continue diagnostics
// from the interpreter and index. The default discards them.
func WithDiagnostics(sink diag.Sink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithLanguages restricts which languages the Engine will process.
func WithLanguages(languages ...string) Option {
	return func(e *Engine) {
		e.languages = make(map[string]bool, len(languages))
		for _, lang := range languages {
			e.languages[lang] = true
		}
	}
}

// WithExcludes adds glob patterns matched against slash-separated file
// paths; matching files are skipped during builds.
func WithExcludes(patterns ...string) Option {
	return func(e *Engine) {
		e.pendingPatterns = append(e.pendingPatterns, patterns...)
	}
}

// WithExcludeDirs adds directory names skipped during discovery walks, in
// addition to the defaults (hidden dirs, node_modules, vendor).
func WithExcludeDirs(names ...string) Option {
	return func(e *Engine) {
		for _, name := range names {
			e.excludeDirs[name] = true
		}
	}
}

// WithVerbose enables informational diagnostics for dropped duplicates and
// misc-routed entities.
func WithVerbose(verbose bool) Option {
	return func(e *Engine) {
		e.verbose = verbose
	}
}

// New creates an Engine. Exclude patterns are compiled eagerly; an invalid
// pattern is the only way construction can fail.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		sink:        diag.Nop{},
		excludeDirs: make(map[string]bool),
		extractor:   comments.NewExtractor(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.index = index.New(index.WithDiagnostics(e.sink), index.WithVerbose(e.verbose))
	e.interp = tags.NewInterpreter(tags.ResolverFunc(func(name string, fn func(*doc.Entity)) {
		e.index.Resolve(name, fn)
	}), e.sink)

	for _, pattern := range e.pendingPatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("arbor: exclude pattern %q: %w", pattern, err)
		}
		e.excludes = append(e.excludes, g)
	}
	e.pendingPatterns = nil

	return e, nil
}

// Index returns the underlying document index for direct access.
func (e *Engine) Index() *index.Index {
	return e.index
}

// Query returns a QueryBuilder over the in-memory index.
func (e *Engine) Query() *QueryBuilder {
	return &QueryBuilder{index: e.index}
}

// Ingest runs the core loop over an ordered comment sequence: interpret
// each comment's tags into an entity and add it to the index. Nothing in
// this path fails; anomalies are absorbed per comment.
func (e *Engine) Ingest(cs []comments.Comment) {
	for _, c := range cs {
		e.commentsSeen++
		entity := e.interp.Interpret(c.Tags)
		entity.Description = c.Description
		entity.Body = c.Body
		entity.Source = c.Source
		entity.File = c.File
		entity.Line = c.Line
		if entity.IsIgnored {
			e.ignoredCount++
		}
		e.index.Add(entity)
	}
}

// BuildFiles extracts and ingests the given files in order. Errors on
// individual files are reported to the diagnostics sink and skipped;
// processing continues. The first error is returned after all files have
// been attempted.
func (e *Engine) BuildFiles(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := e.buildFile(ctx, path); err != nil {
			e.sink.Warnf("build %s: %v", path, err)
			errs = append(errs, fmt.Errorf("build %s: %w", path, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("build had %d error(s): %w", len(errs), errs[0])
	}
	return nil
}

func (e *Engine) buildFile(ctx context.Context, path string) error {
	lang, ok := comments.LanguageForFile(path)
	if !ok {
		return nil // unsupported extension
	}
	if e.languages != nil && !e.languages[lang] {
		return nil // filtered out
	}
	if e.excluded(path) {
		return nil
	}

	cs, err := e.extractor.ExtractFile(ctx, path)
	if err != nil {
		return err
	}
	e.filesBuilt++
	e.Ingest(cs)
	return nil
}

func (e *Engine) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range e.excludes {
		if g.Match(slashed) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}

// skipDirs are directories always excluded from discovery.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// BuildDirectory walks root and builds from all files with supported
// extensions. If root is inside a git repository, uses git ls-files to
// respect .gitignore; falls back to a filesystem walk otherwise.
func (e *Engine) BuildDirectory(ctx context.Context, root string) error {
	paths, err := e.gitListFiles(root)
	if err != nil {
		// Not a git repo or git not available.
		paths, err = e.walkListFiles(root)
		if err != nil {
			return err
		}
	}
	return e.BuildFiles(ctx, paths)
}

// gitListFiles uses git ls-files to discover tracked and untracked (but
// not ignored) files under root, filtered to supported languages.
func (e *Engine) gitListFiles(root string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		absPath := filepath.Join(root, line)
		if _, ok := comments.LanguageForFile(absPath); ok {
			paths = append(paths, absPath)
		}
	}
	return paths, nil
}

// walkListFiles discovers files by walking the filesystem, skipping hidden
// directories and the configured exclude dirs.
func (e *Engine) walkListFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name] || e.excludeDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := comments.LanguageForFile(path); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}

// BuildStats summarizes one build.
type BuildStats struct {
	Files              int
	Comments           int
	Ignored            int
	Classes            int
	Modules            int
	Functions          int
	Constants          int
	Misc               int
	DuplicatesDropped  int
	PendingResolutions int
	UnresolvedWalks    int
	PendingNames       []string
}

// Stats reports what the Engine has built so far. Pending resolutions may
// be non-zero after all files are built; that is a valid terminal state.
func (e *Engine) Stats() BuildStats {
	ix := e.index
	return BuildStats{
		Files:              e.filesBuilt,
		Comments:           e.commentsSeen,
		Ignored:            e.ignoredCount,
		Classes:            len(ix.Classes),
		Modules:            len(ix.Modules),
		Functions:          len(ix.Functions),
		Constants:          len(ix.Constants),
		Misc:               len(ix.Misc),
		DuplicatesDropped:  ix.DuplicatesDropped(),
		PendingResolutions: ix.PendingCount(),
		UnresolvedWalks:    ix.UnresolvedWalks(),
		PendingNames:       ix.Pending(),
	}
}

package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/perfreport/pkg/blob"
	"github.com/matzehuels/perfreport/pkg/errors"
	"github.com/matzehuels/perfreport/pkg/observability"
	"github.com/matzehuels/perfreport/pkg/render"
)

// Result is one stored raw result.
type Result struct {
	ID  string          // lhr-<digits>, empty for explicitly loaded files with other names
	Raw json.RawMessage // file contents, byte for byte
}

// Option configures a [Store].
type Option func(*Store)

// WithRenderer sets the renderer used by [Store.Save].
// The default is [render.NewHTMLRenderer].
func WithRenderer(r render.Renderer) Option { return func(s *Store) { s.renderer = r } }

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock overrides the time source used for identifiers.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// Store reads and writes artifacts in a single backend location.
// It is safe for concurrent use, but provides no coordination with other
// processes beyond what the backend itself offers.
type Store struct {
	backend  blob.Backend
	renderer render.Renderer
	logger   *log.Logger
	now      func() time.Time

	mu     sync.Mutex
	lastMS int64
}

// New creates a store on top of backend.
func New(backend blob.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = render.NewHTMLRenderer()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Open creates a store backed by the directory dir. The directory is
// created on first use.
func Open(dir string, opts ...Option) (*Store, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	return New(blob.NewFileBackend(dir), opts...), nil
}

// EnsureDirectory creates dir and any missing parents. It never fails
// because dir already exists.
func EnsureDirectory(dir string) error {
	return blob.EnsureDir(dir)
}

// Backend returns the underlying backend.
func (s *Store) Backend() blob.Backend { return s.backend }

// Close closes the backend.
func (s *Store) Close() error { return s.backend.Close() }

// Directory ensures the store location exists and returns it. Collaborators
// that write their own files alongside the results use this.
func (s *Store) Directory(ctx context.Context) (string, error) {
	if err := s.backend.Ensure(ctx); err != nil {
		return "", err
	}
	return s.backend.Location(), nil
}

// LoadSaved returns stored raw results.
//
// With an empty path the store's own location is ensured and scanned.
// Otherwise path is read directly: a file yields a single result, and a
// directory is scanned without being created. Results come back in
// enumeration order, which is not guaranteed to be chronological.
func (s *Store) LoadSaved(ctx context.Context, path string) ([]Result, error) {
	if path == "" {
		if err := s.backend.Ensure(ctx); err != nil {
			return nil, err
		}
		results, err := loadResults(ctx, s.backend)
		observability.Store().OnLoad(ctx, s.backend.Location(), len(results), err)
		return results, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		results, err := loadResults(ctx, blob.NewFileBackend(path))
		observability.Store().OnLoad(ctx, path, len(results), err)
		return results, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := Result{Raw: data}
	if name := filepath.Base(path); IsRawResultName(name) {
		r.ID, _ = IDFromName(name)
	}
	observability.Store().OnLoad(ctx, path, 1, nil)
	return []Result{r}, nil
}

func loadResults(ctx context.Context, b blob.Backend) ([]Result, error) {
	names, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, name := range names {
		if !IsRawResultName(name) {
			continue
		}
		data, err := b.Get(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		id, _ := IDFromName(name)
		results = append(results, Result{ID: id, Raw: data})
	}
	return results, nil
}

// ListSaved returns the IDs of stored raw results, oldest first.
func (s *Store) ListSaved(ctx context.Context) ([]string, error) {
	if err := s.backend.Ensure(ctx); err != nil {
		return nil, err
	}
	names, err := s.backend.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, name := range names {
		if !IsRawResultName(name) {
			continue
		}
		id, _ := IDFromName(name)
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CompareIDs)
	return ids, nil
}

// Save writes raw verbatim under a fresh ID, then renders it and writes
// the report under the same ID. If rendering fails the raw file stays in
// place and the renderer's error is returned.
func (s *Store) Save(ctx context.Context, raw []byte) (id string, err error) {
	start := time.Now()
	defer func() {
		observability.Store().OnSave(ctx, id, len(raw), time.Since(start), err)
	}()

	if err := s.backend.Ensure(ctx); err != nil {
		return "", err
	}
	id, err = s.nextID(ctx)
	if err != nil {
		return "", err
	}

	if err := s.backend.Put(ctx, RawResultName(id), raw); err != nil {
		return id, fmt.Errorf("write %s: %w", RawResultName(id), err)
	}
	s.logger.Debug("saved raw result", "id", id, "bytes", len(raw))

	if !json.Valid(raw) {
		return id, errors.New(errors.ErrCodeInvalidReport, "result %s is not valid JSON", id)
	}

	renderStart := time.Now()
	html, err := s.renderer.Render(ctx, json.RawMessage(raw))
	observability.Store().OnRender(ctx, id, time.Since(renderStart), err)
	if err != nil {
		return id, fmt.Errorf("render %s: %w", id, err)
	}

	if err := s.backend.Put(ctx, ReportName(id), []byte(html)); err != nil {
		return id, fmt.Errorf("write %s: %w", ReportName(id), err)
	}
	s.logger.Debug("saved report", "id", id, "bytes", len(html), "duration", time.Since(start))
	return id, nil
}

// nextID issues a timestamp ID that is strictly greater than any this
// store issued before and whose raw file does not exist yet.
func (s *Store) nextID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.lastMS {
		ms = s.lastMS + 1
	}
	for {
		exists, err := s.backend.Exists(ctx, RawResultName(FormatID(ms)))
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		s.logger.Debug("id in use, bumping", "id", FormatID(ms))
		ms++
	}
	s.lastMS = ms
	return FormatID(ms), nil
}

// LoadReport returns the rendered report for id.
func (s *Store) LoadReport(ctx context.Context, id string) (string, error) {
	if err := errors.ValidateReportID(id); err != nil {
		return "", err
	}
	if err := s.backend.Ensure(ctx); err != nil {
		return "", err
	}
	data, err := s.backend.Get(ctx, ReportName(id))
	if blob.IsNotFound(err) {
		return "", errors.Wrap(errors.ErrCodeNotFound, err, "no report for %s", id)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clear removes every raw result and rendered report. Other files in the
// location are left untouched.
func (s *Store) Clear(ctx context.Context) (removed int, err error) {
	defer func() {
		observability.Store().OnClear(ctx, s.backend.Location(), removed, err)
	}()

	if err := s.backend.Ensure(ctx); err != nil {
		return 0, err
	}
	names, err := s.backend.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		if !IsRawResultName(name) && !IsReportName(name) {
			continue
		}
		if err := s.backend.Delete(ctx, name); err != nil {
			return removed, fmt.Errorf("remove %s: %w", name, err)
		}
		removed++
	}
	s.logger.Debug("cleared saved results", "removed", removed, "location", s.backend.Location())
	return removed, nil
}

// LoadAssertionResults reads the stored assertion results. A missing file
// reads as an empty list; a malformed one is an error.
func (s *Store) LoadAssertionResults(ctx context.Context) ([]json.RawMessage, error) {
	if err := s.backend.Ensure(ctx); err != nil {
		return nil, err
	}
	data, err := s.backend.Get(ctx, AssertionResultsName)
	if blob.IsNotFound(err) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	var results []json.RawMessage
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse %s: %w", AssertionResultsName, err)
	}
	if results == nil {
		results = []json.RawMessage{}
	}
	return results, nil
}

// SaveAssertionResults replaces the stored assertion results.
func (s *Store) SaveAssertionResults(ctx context.Context, results []json.RawMessage) error {
	if results == nil {
		results = []json.RawMessage{}
	}
	return s.writeJSON(ctx, AssertionResultsName, results)
}

// WriteURLLinkMap replaces the stored link map. Keys are written in
// sorted order.
func (s *Store) WriteURLLinkMap(ctx context.Context, links map[string]string) error {
	if links == nil {
		links = map[string]string{}
	}
	return s.writeJSON(ctx, LinksName, links)
}

// LoadURLLinkMap reads the stored link map. A missing file reads as an
// empty map.
func (s *Store) LoadURLLinkMap(ctx context.Context) (map[string]string, error) {
	if err := s.backend.Ensure(ctx); err != nil {
		return nil, err
	}
	data, err := s.backend.Get(ctx, LinksName)
	if blob.IsNotFound(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	links := map[string]string{}
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, fmt.Errorf("parse %s: %w", LinksName, err)
	}
	return links, nil
}

func (s *Store) writeJSON(ctx context.Context, name string, v any) error {
	if err := s.backend.Ensure(ctx); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := s.backend.Put(ctx, name, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	s.logger.Debug("wrote "+name, "bytes", len(data))
	return nil
}

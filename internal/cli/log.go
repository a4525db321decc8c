package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/perfreport/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Saved lhr-1700000000000 (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks forwards store and rewrite events to the logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks { return &logHooks{logger: l} }

func (h *logHooks) OnSave(_ context.Context, id string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("save failed", "id", id, "err", err)
		return
	}
	h.logger.Debug("save", "id", id, "bytes", size, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnLoad(_ context.Context, location string, count int, err error) {
	h.logger.Debug("load", "location", location, "results", count, "err", err)
}

func (h *logHooks) OnClear(_ context.Context, location string, removed int, err error) {
	h.logger.Debug("clear", "location", location, "removed", removed, "err", err)
}

func (h *logHooks) OnRender(_ context.Context, id string, d time.Duration, err error) {
	h.logger.Debug("render", "id", id, "duration", d.Round(time.Microsecond), "err", err)
}

func (h *logHooks) OnRewrite(from, to string, rules int, err error) {
	h.logger.Debug("rewrite", "from", from, "to", to, "rules", rules, "err", err)
}

var (
	_ observability.StoreHooks   = (*logHooks)(nil)
	_ observability.RewriteHooks = (*logHooks)(nil)
)

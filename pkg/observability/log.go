package observability

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a structured logger. Failures are logged at
// error level, everything else at debug, so the logger's level decides how
// chatty it is.
type LogHooks struct {
	logger *log.Logger
}

var _ Hooks = (*LogHooks)(nil)

func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnTracksStart(_ context.Context, cols, rows int) {
	h.logger.Debug("tracks start", "cols", cols, "rows", rows)
}

func (h *LogHooks) OnTracksComplete(_ context.Context, d time.Duration, err error) {
	h.done("tracks", d, err)
}

func (h *LogHooks) OnGenerateStart(_ context.Context, formats []string, items int) {
	h.logger.Debug("generate start", "formats", strings.Join(formats, ","), "items", items)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("generate "+strings.Join(formats, ","), d, err)
}

func (h *LogHooks) done(what string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error(what+" failed", "duration", d, "err", err)
		return
	}
	h.logger.Debug(what+" done", "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *LogHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

// OnRequest is a no-op; the response event carries the same fields.
func (h *LogHooks) OnRequest(context.Context, string, string) {}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Error("response", "method", method, "route", route, "status", status, "duration", d)
		return
	}
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Error("handler error", "method", method, "route", route, "err", err)
}

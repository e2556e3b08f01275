package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/locallibrary/internal/metrics"
	"github.com/deppfellow/locallibrary/internal/middleware"
	"github.com/deppfellow/locallibrary/internal/pipeline"
	"github.com/deppfellow/locallibrary/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the dependencies shared by every handler.
type Handler struct {
	server  *server.Server
	metrics *metrics.Metrics
}

func NewHandler(s *server.Server, m *metrics.Metrics) Handler {
	return Handler{server: s, metrics: m}
}

// OutcomeFunc produces the outcome of one request.
type OutcomeFunc func(ctx context.Context) (pipeline.Outcome, error)

// Handle runs fn and writes its outcome with logging, tracing and metrics.
// kind and action label the request ("author", "create").
func (h Handler) Handle(c echo.Context, kind, action string, fn OutcomeFunc) error {
	start := time.Now()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.kind", kind)
		txn.AddAttribute("handler.action", action)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("kind", kind).
		Str("action", action).
		Logger()

	logger.Debug().Msg("handling request")

	out, err := fn(c.Request().Context())
	took := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Dur("handler_duration", took).Msg("handler execution failed")
		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", took.Milliseconds())
		}
		h.observe(kind, action, "error", took)
		return err
	}

	state := string(out.State)
	if txn != nil {
		txn.AddAttribute("handler.status", state)
		txn.AddAttribute("handler.duration_ms", took.Milliseconds())
		if out.Invalid() {
			txn.AddAttribute("validation.errors", len(out.Errors))
		}
	}
	h.observe(kind, action, state, took)

	event := logger.Info().Str("state", state).Dur("handler_duration", took)
	if out.Invalid() {
		event = event.Int("field_errors", len(out.Errors))
	}
	event.Msg("request completed successfully")

	return write(c, out)
}

func (h Handler) observe(kind, action, state string, took time.Duration) {
	if h.metrics != nil {
		h.metrics.ObserveOutcome(kind, action, state, took)
	}
}

// write renders the template or redirects with 302.
func write(c echo.Context, out pipeline.Outcome) error {
	if out.State == pipeline.StateRedirected {
		return c.Redirect(http.StatusFound, out.Location)
	}
	return c.Render(http.StatusOK, out.Template, out.Data)
}

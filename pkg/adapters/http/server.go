// Package http serves the site pages over HTTP.
//
// Every GET / creates a fresh page instance. The forms on the page post back
// to /p/{page}/..., and the response is the page rendered again, as HTML or,
// when the client asks for it, as JSON. Banner changes are pushed to
// /p/{page}/events as server-sent events.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nkinsurance/quoteflow"
	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/internal/presentation/graph"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/notify"
	"github.com/nkinsurance/quoteflow/pkg/session"
	"github.com/nkinsurance/quoteflow/pkg/validate"
)

// maxBodySize caps a posted form.
const maxBodySize = 1 << 20

var errUnknownAction = errors.New("unknown action")

// PageFactory creates page instances.
type PageFactory interface {
	NewPage(ctx context.Context, opts ...notify.Option) *session.Page
}

// Server routes page requests to the page instances it owns.
type Server struct {
	engine  PageFactory
	pages   *session.Manager
	streams *StreamManager
	tpl     *templates
	spec    *openapi3.T
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a Server. It fails when the embedded API description is
// broken.
func NewServer(engine PageFactory, pages *session.Manager, opts ...Option) (*Server, error) {
	s := &Server{
		engine: engine,
		pages:  pages,
		tpl:    &templates{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)

	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	s.spec = spec
	return s, nil
}

// NewHandler creates the HTTP handler of the site.
func NewHandler(engine PageFactory, pages *session.Manager, opts ...Option) (http.Handler, error) {
	s, err := NewServer(engine, pages, opts...)
	if err != nil {
		return nil, err
	}
	return s.Routes(), nil
}

// Streams returns the SSE stream manager.
func (s *Server) Streams() *StreamManager {
	return s.streams
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.newPage)
	r.Route("/p/{page}", func(r chi.Router) {
		r.Post("/quote/{action}", s.quote)
		r.Post("/banners/{banner}/dismiss", s.dismiss)
		r.Get("/view", s.view)
		r.Get("/graph", s.graph)
		r.Get("/events", s.events)
		r.Post("/{form}", s.form)
	})

	r.Get("/health", s.health)
	r.Get("/info", s.info)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(specYAML)
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

// newPage handles GET /.
func (s *Server) newPage(w http.ResponseWriter, r *http.Request) {
	page := s.engine.NewPage(r.Context())
	page.Notices.SetListener(s.streams.bannerListener(page.ID))
	s.pages.Add(page)
	s.logger.Debug("page loaded", "page_id", page.ID)
	s.respond(w, r, page, http.StatusOK)
}

// quote handles POST /p/{page}/quote/{action}.
func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	action := chi.URLParam(r, "action")

	values, ok := s.parseForm(w, r)
	if !ok {
		return
	}

	status := http.StatusOK
	var sub *quoteflow.Submission
	err := s.pages.WithPage(r.Context(), pageID, func(ctx context.Context, p *session.Page) error {
		wiz := p.Wizard
		if err := wiz.SetValues(ctx, values); err != nil {
			return err
		}
		switch action {
		case "next":
			if !wiz.Next(ctx) && len(wiz.View().Errors) > 0 {
				status = http.StatusUnprocessableEntity
			}
		case "previous":
			wiz.Previous(ctx)
		case "validate":
			if !wiz.ValidateField(ctx, r.PostForm.Get("_field")) {
				status = http.StatusUnprocessableEntity
			}
		case "submit":
			var err error
			sub, err = wiz.Submit(context.WithoutCancel(ctx))
			return err
		default:
			return errUnknownAction
		}
		return nil
	})
	s.finish(w, r, pageID, sub, status, err)
}

// form handles POST /p/{page}/{form} for the contact and newsletter forms.
func (s *Server) form(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	name := chi.URLParam(r, "form")

	values, ok := s.parseForm(w, r)
	if !ok {
		return
	}

	var sub *quoteflow.Submission
	err := s.pages.WithPage(r.Context(), pageID, func(ctx context.Context, p *session.Page) error {
		var f *quoteflow.Form
		switch name {
		case p.Contact.Name():
			f = p.Contact
		case p.Newsletter.Name():
			f = p.Newsletter
		default:
			return errUnknownAction
		}
		if err := f.SetValues(values); err != nil {
			return err
		}
		var err error
		sub, err = f.Submit(context.WithoutCancel(ctx))
		return err
	})
	s.finish(w, r, pageID, sub, http.StatusOK, err)
}

// dismiss handles POST /p/{page}/banners/{banner}/dismiss.
func (s *Server) dismiss(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	bannerID := chi.URLParam(r, "banner")

	err := s.pages.WithPage(r.Context(), pageID, func(_ context.Context, p *session.Page) error {
		p.Notices.Dismiss(bannerID)
		return nil
	})
	s.finish(w, r, pageID, nil, http.StatusOK, err)
}

// view handles GET /p/{page}/view.
func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.Get(chi.URLParam(r, "page"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(page))
}

// graph handles GET /p/{page}/graph.
func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.Get(chi.URLParam(r, "page"))
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	wiz := page.Wizard
	state := wiz.State()
	overlay := &graph.Overlay{CurrentStep: state.CurrentStep}
	for n := 1; n < state.CurrentStep; n++ {
		overlay.VisitedSteps = append(overlay.VisitedSteps, n)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(wiz.Definition(), overlay)))
}

// finish turns the outcome of an action into a response. A submission is
// awaited unless the client asked for an asynchronous answer.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, pageID string, sub *quoteflow.Submission, status int, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPageNotFound):
			s.expired(w, r)
			return
		case errors.Is(err, errUnknownAction):
			http.NotFound(w, r)
			return
		}
		status = statusOf(err)
		if status != http.StatusUnprocessableEntity && status != http.StatusConflict {
			s.logger.Warn("request rejected", "page_id", pageID, "status", status, "err", err)
			http.Error(w, err.Error(), status)
			return
		}
	}

	if sub != nil {
		if prefersAsync(r) {
			status = http.StatusAccepted
		} else {
			res, err := sub.Wait(r.Context())
			if err != nil {
				return
			}
			if res.Status == domain.SubmissionFailed {
				status = http.StatusBadGateway
			}
		}
	}

	page, err := s.pages.Get(pageID)
	if err != nil {
		s.expired(w, r)
		return
	}
	s.respond(w, r, page, status)
}

// expired sends browsers to a fresh page. API clients get a 404.
func (s *Server) expired(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, page *session.Page, status int) {
	v := viewOf(page)
	if wantsJSON(r) {
		writeJSON(w, status, v)
		return
	}

	var buf bytes.Buffer
	if err := s.tpl.render(&buf, v); err != nil {
		s.logger.Error("failed to render page", "page_id", page.ID, "err", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		s.logger.Warn("invalid form body", "err", err)
		return nil, false
	}

	values := make(map[string]string, len(r.PostForm))
	for name, vs := range r.PostForm {
		if strings.HasPrefix(name, "_") || len(vs) == 0 {
			continue
		}
		values[name] = vs[0]
	}
	return values, true
}

// health handles GET /health.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// info handles GET /info.
func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec != nil && s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "quoteflow-http",
		"version":     strings.TrimSpace(quoteflow.Version),
		"api_version": apiVersion,
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSubmissionInProgress), errors.Is(err, domain.ErrNotFinalStep):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSubmissionFailed):
		return http.StatusBadGateway
	case errors.Is(err, validate.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, validate.ErrInvalidUTF8), errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDisabled):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func prefersAsync(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Prefer"), "respond-async")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

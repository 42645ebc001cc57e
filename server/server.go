package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"eduforge/generator"
	"eduforge/publisher"
	"eduforge/studio"
)

//go:embed web
var embeddedStatic embed.FS

// Server exposes studio sessions over a JSON API and serves the web form.
type Server struct {
	handler  *studio.Handler
	store    *sessionStore
	staticFS http.Handler
	logger   logrus.FieldLogger
}

// New builds a Server around handler with an empty session store.
func New(handler *studio.Handler, logger logrus.FieldLogger) (*Server, error) {
	if handler == nil {
		return nil, errors.New("studio handler required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		handler:  handler,
		store:    newStore(),
		staticFS: http.FileServer(http.FS(sub)),
		logger:   logger,
	}, nil
}

// Routes returns the chi router for the API and the embedded static files.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Post("/sessions", s.handleSessionCreate)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleSessionGet)
			r.Delete("/", s.handleSessionDelete)
			r.Put("/category", s.handleSelectCategory)
			r.Post("/generate", s.handleGenerate)
			r.Get("/export", s.handleExport)
		})
	})
	r.Handle("/*", s.staticFS)
	return r
}

// --- Handlers ---

type categoryResp struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Param   string `json:"param,omitempty"`
	Min     int    `json:"min,omitempty"`
	Max     int    `json:"max,omitempty"`
	Default int    `json:"default,omitempty"`
	Age     [2]int `json:"audience_age"`
}

type categoryReq struct {
	Category string `json:"category"`
}

type errorResp struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, describeCategories())
}

func describeCategories() []categoryResp {
	out := make([]categoryResp, 0, len(generator.Categories))
	for _, c := range generator.Categories {
		item := categoryResp{
			Name: string(c),
			Slug: c.Slug(),
			Age:  [2]int{generator.MinAudienceAge, generator.MaxAudienceAge},
		}
		switch c {
		case generator.Story:
			item.Param, item.Min, item.Max, item.Default = "paragraph_count", generator.MinParagraphs, generator.MaxParagraphs, generator.DefaultParagraphs
		case generator.Quiz:
			item.Param, item.Min, item.Max, item.Default = "question_count", generator.MinQuestions, generator.MaxQuestions, generator.DefaultQuestions
		}
		out = append(out, item)
	}
	return out
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	sess := s.store.create()
	if req.Category != "" {
		if err := selectCategory(sess, req.Category); err != nil {
			s.store.delete(sess.ID)
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	s.logger.WithField("session_id", sess.ID).Info("[http] session created")
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if !s.store.delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := selectCategory(sess, req.Category); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var in studio.GenerateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := s.handler.HandleGenerate(r.Context(), sess, in); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	art, err := s.handler.Export(r.Context(), sess)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", art.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.SuggestedFilename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Bytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Bytes)
}

// --- Helpers ---

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*studio.Session, bool) {
	sess, ok := s.store.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("session not found"))
	}
	return sess, ok
}

func selectCategory(sess *studio.Session, raw string) error {
	c, err := generator.ParseCategory(raw)
	if err != nil {
		return &studio.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", raw)}
	}
	return sess.SelectCategory(c)
}

func statusFor(err error) int {
	var verr *studio.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, studio.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, publisher.ErrNoContent):
		return http.StatusConflict
	case errors.Is(err, generator.ErrServiceUnavailable), errors.Is(err, generator.ErrEmptyResponse):
		return http.StatusBadGateway
	case errors.Is(err, publisher.ErrEngineUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResp{Error: err.Error()}
	var verr *studio.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	writeJSON(w, status, resp)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"elapsed":    time.Since(start).Round(time.Millisecond).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("[http] request")
	})
}

package movie

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"MovieStore/pkg/kit"
)

const (
	maxBodyBytes = 2 << 20
	readyTimeout = 1 * time.Second

	greeting = "Hello, World!"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) handleHello(w http.ResponseWriter, _ *http.Request) {
	kit.WriteText(w, http.StatusOK, greeting)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.log().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when the client escaped the path, so the
	// param is still percent-encoded in that case.
	id := chi.URLParam(r, "id")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(id); err == nil {
			id = unescaped
		}
	}

	m, ok := s.Store.Get(id)
	if !ok {
		s.log().Debug("movie not found",
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.String("id", id),
		)
		kit.WriteStatus(w, http.StatusNotFound)
		return
	}
	kit.WriteJSON(w, http.StatusOK, m)
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	m, err := DecodeMovie(r.Body)
	if err != nil {
		s.log().Debug("bad movie payload",
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Error(err),
		)
		kit.WriteStatus(w, http.StatusBadRequest)
		return
	}

	s.Store.Put(m)
	kit.WriteStatus(w, http.StatusOK)
}

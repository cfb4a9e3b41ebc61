package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cryptocompare-client/internal/application"
	"cryptocompare-client/internal/domain"
)

// PollStatus is the read side of the poller exposed over HTTP.
type PollStatus interface {
	Ready(maxAge time.Duration) error
	Last() (domain.Candle, bool)
}

type Server struct {
	status PollStatus
	maxAge time.Duration
}

func NewServer(status PollStatus, maxAge time.Duration) *Server {
	return &Server{status: status, maxAge: maxAge}
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) ready(w http.ResponseWriter, _ *http.Request) {
	if err := s.status.Ready(s.maxAge); err != nil {
		if errors.Is(err, application.ErrNotReady) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		internalError(w)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

func (s *Server) lastCandle(w http.ResponseWriter, _ *http.Request) {
	c, ok := s.status.Last()
	if !ok {
		writeError(w, http.StatusNotFound, "no candle polled yet")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

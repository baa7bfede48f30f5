// Package http exposes the onboarding decision over HTTP, for clients that
// render their own tours (web or mobile front-ends) but share one marker store.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/waypoint/pkg/content"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/gate"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIVersion is reported by GET /info.
const APIVersion = "1"

// DefaultKeyPrefix namespaces per-client markers in the store.
const DefaultKeyPrefix = "waypoint.last_seen_version:"

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// Decision is the response of GET /decision.
type Decision struct {
	Client         string          `json:"client"`
	Flow           domain.FlowKind `json:"flow"`
	LastSeen       string          `json:"last_seen"`
	CurrentVersion string          `json:"current_version"`
}

// MarkRequest is the body of PUT /markers/{client}.
type MarkRequest struct {
	Version string `json:"version"`
}

// Event is pushed to /events subscribers when a client's marker changes.
type Event struct {
	Type     domain.EventType `json:"type"`
	Client   string           `json:"client"`
	Version  string           `json:"version,omitempty"`
	Occurred time.Time        `json:"occurred"`
}

// Server serves onboarding decisions.
type Server struct {
	Store   ports.MarkerStore
	Version string
	Content *content.Content
	Prefix  string
	Hooks   domain.LifecycleHooks
	Logger  *slog.Logger
	Streams *StreamManager

	gatherer prometheus.Gatherer
}

// Option configures a Server.
type Option func(*Server)

// WithContent serves the onboarding document on GET /content.
func WithContent(c *content.Content) Option {
	return func(s *Server) {
		s.Content = c
	}
}

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Server) {
		s.Prefix = prefix
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.Hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewServer creates a Server for the given current version.
func NewServer(store ports.MarkerStore, version string, opts ...Option) *Server {
	s := &Server{
		Store:   store,
		Version: version,
		Prefix:  DefaultKeyPrefix,
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// NewHandler creates the HTTP handler.
func NewHandler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/decision", s.GetDecision)
	r.Get("/content", s.GetContent)
	r.Get("/events", s.SubscribeEvents)
	r.Route("/markers/{client}", func(r chi.Router) {
		r.Get("/", s.GetMarker)
		r.Put("/", s.PutMarker)
		r.Delete("/", s.DeleteMarker)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "waypoint-http",
		"version":     s.Version,
		"api_version": APIVersion,
	})
}

// GetDecision handles GET /decision?client=ID[&version=V].
func (s *Server) GetDecision(w http.ResponseWriter, r *http.Request) {
	client := r.URL.Query().Get("client")
	if !clientIDPattern.MatchString(client) {
		http.Error(w, "invalid or missing client id", http.StatusBadRequest)
		return
	}
	version := r.URL.Query().Get("version")
	if version == "" {
		version = s.Version
	}

	lastSeen, err := s.lastSeen(r.Context(), client)
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("decision failed", "client", client, "err", err)
		return
	}

	d := Decision{
		Client:         client,
		Flow:           gate.Decide(lastSeen, version),
		LastSeen:       lastSeen,
		CurrentVersion: version,
	}
	s.Logger.Debug("decision", "client", client, "flow", d.Flow, "last_seen", lastSeen)
	if s.Hooks.OnPresent != nil {
		s.Hooks.OnPresent(r.Context(), &domain.PresentEvent{
			EventBase:      domain.EventBase{Timestamp: time.Now(), Type: domain.EventPresent, Flow: d.Flow},
			LastSeen:       lastSeen,
			CurrentVersion: version,
		})
	}
	writeJSON(w, http.StatusOK, d)
}

// GetContent handles GET /content.
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	if s.Content == nil {
		http.Error(w, "no content configured", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.Content)
}

// GetMarker handles GET /markers/{client}.
func (s *Server) GetMarker(w http.ResponseWriter, r *http.Request) {
	client, ok := s.client(w, r)
	if !ok {
		return
	}
	v, err := s.Store.Get(r.Context(), s.key(client))
	if errors.Is(err, domain.ErrMarkerNotFound) {
		http.Error(w, "marker not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("get marker failed", "client", client, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, MarkRequest{Version: v})
}

// PutMarker handles PUT /markers/{client}: the client finished its flow.
// An empty body marks the server's current version.
func (s *Server) PutMarker(w http.ResponseWriter, r *http.Request) {
	client, ok := s.client(w, r)
	if !ok {
		return
	}

	var body MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("put marker: invalid request body", "err", err)
		return
	}
	version := strings.TrimSpace(body.Version)
	if version == "" {
		version = s.Version
	}

	previous, err := s.lastSeen(r.Context(), client)
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}
	if err := s.Store.Set(r.Context(), s.key(client), version); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("put marker failed", "client", client, "err", err)
		return
	}

	flow := gate.Decide(previous, version)
	s.Logger.Info("marker written", "client", client, "version", version)
	if s.Hooks.OnFinish != nil {
		s.Hooks.OnFinish(r.Context(), &domain.FinishEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFinish, Flow: flow},
		})
	}
	s.broadcast(client, Event{Type: domain.EventFinish, Client: client, Version: version, Occurred: time.Now()})
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMarker handles DELETE /markers/{client}. Idempotent.
func (s *Server) DeleteMarker(w http.ResponseWriter, r *http.Request) {
	client, ok := s.client(w, r)
	if !ok {
		return
	}
	if err := s.Store.Delete(r.Context(), s.key(client)); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("delete marker failed", "client", client, "err", err)
		return
	}

	s.Logger.Info("marker reset", "client", client)
	if s.Hooks.OnReset != nil {
		s.Hooks.OnReset(r.Context(), &domain.ResetEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventReset, Flow: domain.FlowNone},
			Key:       s.key(client),
		})
	}
	s.broadcast(client, Event{Type: domain.EventReset, Client: client, Occurred: time.Now()})
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles GET /events?client=ID (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	client := r.URL.Query().Get("client")
	if !clientIDPattern.MatchString(client) {
		http.Error(w, "invalid or missing client id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(client)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) client(w http.ResponseWriter, r *http.Request) (string, bool) {
	client := chi.URLParam(r, "client")
	if !clientIDPattern.MatchString(client) {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return "", false
	}
	return client, true
}

func (s *Server) key(client string) string {
	return s.Prefix + client
}

func (s *Server) lastSeen(ctx context.Context, client string) (string, error) {
	v, err := s.Store.Get(ctx, s.key(client))
	if errors.Is(err, domain.ErrMarkerNotFound) {
		return "", nil
	}
	return v, err
}

func (s *Server) broadcast(client string, e Event) {
	if b, err := json.Marshal(e); err == nil {
		s.Streams.Broadcast(client, string(b))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

// StreamManager handles active SSE connections, keyed by client id.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
	closed      bool
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

func (sm *StreamManager) Subscribe(client string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if sm.closed {
		close(ch)
		return ch, func() {}
	}
	if _, ok := sm.subscribers[client]; !ok {
		sm.subscribers[client] = make(map[chan<- string]struct{})
	}
	sm.subscribers[client][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[client]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, client)
			}
		}
	}
}

// Close ends every open stream. Later subscribers get a closed channel.
func (sm *StreamManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.closed = true
	for client, subs := range sm.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(sm.subscribers, client)
	}
}

// Subscribers returns the number of open streams for client.
func (sm *StreamManager) Subscribers(client string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[client])
}

func (sm *StreamManager) Broadcast(client string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[client] {
		select {
		case ch <- msg:
		default:
			// Slow client: drop.
		}
	}
}

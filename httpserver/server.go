// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/storage"
)

// slugCreateAttempts bounds regeneration when a random slug collides.
const slugCreateAttempts = 3

// Ingester schedules content ingestion. Satisfied by ingest.Pipeline.
type Ingester interface {
	Ingest(ctx context.Context, url string, feedID core.ID, userID uint64) error
}

// Server exposes feed management and URL submission endpoints.
type Server struct {
	feeds      storage.FeedRepository
	posts      storage.PostRepository
	ingester   Ingester
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates a new HTTP server listening on addr.
func NewServer(addr string, feeds storage.FeedRepository, posts storage.PostRepository, ingester Ingester, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default().With("component", "httpserver")
	}

	s := &Server{
		feeds:    feeds,
		posts:    posts,
		ingester: ingester,
		logger:   logger,
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      withLogging(logger, s.Handler()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the route multiplexer without the logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /feeds", s.handleCreateFeed)
	mux.HandleFunc("POST /feeds/{slug}/posts", s.handleSubmitURL)
	mux.HandleFunc("GET /feeds/{slug}/posts", s.handleListPosts)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for HTTP requests. It blocks until the server is
// shut down or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createFeedRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleCreateFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req createFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "title is required")
		return
	}

	var feed *core.Feed
	for attempt := 0; attempt < slugCreateAttempts; attempt++ {
		slug, err := generateSlug()
		if err != nil {
			s.logger.Error("failed to generate slug", "error", err)
			writeError(w, http.StatusInternalServerError, "InternalError", "failed to create feed")
			return
		}

		added, err := s.feeds.AddFeeds(r.Context(), &core.Feed{
			Title:         req.Title,
			Slug:          slug,
			OwnerUserID:   userID,
			MemberUserIDs: []uint64{userID},
		})
		if errors.Is(err, storage.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			s.logger.Error("failed to create feed", "error", err)
			writeError(w, http.StatusInternalServerError, "InternalError", "failed to create feed")
			return
		}
		feed = added[0]
		break
	}

	if feed == nil {
		s.logger.Error("slug generation kept colliding", "attempts", slugCreateAttempts)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to create feed")
		return
	}

	s.logger.Info("feed created", "feedID", feed.Id, "slug", feed.Slug, "owner", userID)
	writeJSON(w, http.StatusCreated, map[string]string{"feedSlug": feed.Slug})
}

type submitURLRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleSubmitURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	feed, ok := s.requireFeedMembership(w, r, userID)
	if !ok {
		return
	}

	var req submitURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "url is required")
		return
	}

	if err := s.ingester.Ingest(r.Context(), req.URL, feed.Id, userID); err != nil {
		s.logger.Error("failed to schedule ingestion", "url", req.URL, "feedID", feed.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to schedule ingestion")
		return
	}

	// Scheduled, not done. The caller observes the outcome via a later list.
	writeJSON(w, http.StatusCreated, map[string]string{"message": "content submission accepted"})
}

type postResponse struct {
	ID         core.ID   `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	InsertedAt time.Time `json:"insertedAt"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	feed, ok := s.requireFeedMembership(w, r, userID)
	if !ok {
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	edges, err := s.feeds.GetFeedPosts(r.Context(), feed.Id, limit)
	if err != nil {
		s.logger.Error("failed to list feed posts", "feedID", feed.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to list posts")
		return
	}

	ids := make([]core.ID, len(edges))
	for i, edge := range edges {
		ids[i] = edge.PostId
	}

	posts, err := s.posts.GetPosts(r.Context(), ids...)
	if err != nil {
		s.logger.Error("failed to load posts", "feedID", feed.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to list posts")
		return
	}

	byID := make(map[core.ID]*core.Post, len(posts))
	for _, post := range posts {
		byID[post.Id] = post
	}

	// Preserve the newest-first edge order
	result := make([]postResponse, 0, len(edges))
	for _, edge := range edges {
		post, found := byID[edge.PostId]
		if !found {
			continue
		}
		result = append(result, postResponse{
			ID:         post.Id,
			URL:        post.OriginalURL,
			Title:      post.Title,
			Summary:    post.Summary,
			InsertedAt: post.InsertedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"posts": result})
}

// requireUser extracts the user identity from the X-User-ID header.
// Writes a 401 response and returns false when it is missing or malformed.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	header := r.Header.Get("X-User-ID")
	if header == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "X-User-ID header is required")
		return 0, false
	}

	userID, err := strconv.ParseUint(header, 10, 64)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "X-User-ID header is malformed")
		return 0, false
	}

	return userID, true
}

// requireFeedMembership resolves the {slug} path value and checks that the
// user owns or belongs to the feed. Writes the error response and returns
// false when it does not pass.
func (s *Server) requireFeedMembership(w http.ResponseWriter, r *http.Request, userID uint64) (*core.Feed, bool) {
	slug := r.PathValue("slug")

	feed, err := s.feeds.FindFeedBySlug(r.Context(), slug)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NotFound", "feed not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("failed to resolve feed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to resolve feed")
		return nil, false
	}

	if !feed.HasMember(userID) {
		writeError(w, http.StatusForbidden, "Forbidden", "only feed members can access this feed")
		return nil, false
	}

	return feed, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errType,
		"message": message,
	})
}

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

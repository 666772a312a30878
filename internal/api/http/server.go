package apihttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bonarr/internal/domain"
	"bonarr/internal/domain/ports"
	"bonarr/internal/metrics"
	"bonarr/internal/services/category"
	"bonarr/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Version literals reported to automation clients. Sonarr/Radarr gate
// features on these, so they must parse as plausible qBittorrent versions.
const (
	appVersion    = "4.6.0"
	webAPIVersion = "2.8.3"
)

type AddTorrentUseCase interface {
	Execute(ctx context.Context, input usecase.AddTorrentInput) (domain.TorrentRecord, error)
}

type Server struct {
	addTorrent     AddTorrentUseCase
	repo           ports.TorrentStore
	categories     *category.Registry
	authUser       string
	authPass       string
	savePath       string
	webUIPort      int
	allowedOrigins []string
	logger         *slog.Logger
	handler        http.Handler
	wsHub          *wsHub
}

type ServerOption func(*Server)

func WithRepository(repo ports.TorrentStore) ServerOption {
	return func(s *Server) {
		s.repo = repo
	}
}

func WithCategories(registry *category.Registry) ServerOption {
	return func(s *Server) {
		s.categories = registry
	}
}

// WithCredentials enables the login check. Both values must be non-empty;
// otherwise any login succeeds, matching the native client's lenient
// automation mode.
func WithCredentials(user, pass string) ServerOption {
	return func(s *Server) {
		s.authUser = user
		s.authPass = pass
	}
}

func WithSavePath(path string) ServerOption {
	return func(s *Server) {
		s.savePath = path
	}
}

func WithWebUIPort(port int) ServerOption {
	return func(s *Server) {
		s.webUIPort = port
	}
}

func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(add AddTorrentUseCase, opts ...ServerOption) *Server {
	s := &Server{
		addTorrent: add,
		savePath:   "/downloads",
		webUIPort:  8080,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.categories == nil {
		s.categories = category.NewRegistry()
	}

	s.wsHub = newWSHub(s.logger)
	go s.wsHub.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v2/auth/login", s.handleLogin)
	mux.HandleFunc("/api/v2/app/version", s.handleAppVersion)
	mux.HandleFunc("/api/v2/app/webapiVersion", s.handleWebAPIVersion)
	mux.HandleFunc("/api/v2/app/preferences", s.handlePreferences)
	mux.HandleFunc("/api/v2/app/defaultSavePath", s.handleDefaultSavePath)
	mux.HandleFunc("/api/v2/torrents/categories", s.handleCategories)
	mux.HandleFunc("/api/v2/torrents/createCategory", s.handleCreateCategory)
	mux.HandleFunc("/api/v2/torrents/removeCategories", s.handleRemoveCategories)
	mux.HandleFunc("/api/v2/transfer/info", s.handleTransferInfo)
	mux.HandleFunc("/api/v2/torrents/add", s.handleAddTorrent)
	mux.HandleFunc("/api/v2/torrents/info", s.handleTorrentsInfo)
	mux.HandleFunc("/api/v2/sync/maindata", s.handleMainData)
	mux.HandleFunc("/api/v2/torrents/properties", s.handleProperties)
	mux.HandleFunc("/api/v2/torrents/pause", s.handlePause)
	mux.HandleFunc("/api/v2/torrents/resume", s.handleResume)
	mux.HandleFunc("/api/v2/torrents/delete", s.handleDelete)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ws", s.handleWS)

	traced := otelhttp.NewHandler(loggingMiddleware(s.logger, mux), "bonarr",
		otelhttp.WithFilter(func(r *http.Request) bool {
			p := r.URL.Path
			return p != "/metrics" && p != "/health"
		}),
	)
	s.handler = recoveryMiddleware(s.logger, rateLimitMiddleware(100, 200, metricsMiddleware(corsMiddleware(s.allowedOrigins, traced))))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close shuts down the WebSocket hub, disconnecting all clients.
func (s *Server) Close() {
	if s.wsHub != nil {
		s.wsHub.Close()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("ws upgrade failed", slog.String("error", err.Error()))
		return
	}
	client := &wsClient{
		hub:  s.wsHub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	s.wsHub.register <- client
	go client.writePump()
	go client.readPump()
}

// BroadcastTorrents lists all records from the store and pushes them to
// connected WebSocket clients. Called from the periodic ticker in main.
func (s *Server) BroadcastTorrents() {
	if s.wsHub == nil || s.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	records, err := s.repo.List(ctx, "")
	if err != nil {
		s.logger.Debug("ws broadcast torrents failed", slog.String("error", err.Error()))
		return
	}
	metrics.TorrentsTracked.Set(float64(len(records)))
	s.wsHub.Broadcast("torrents", records)
}

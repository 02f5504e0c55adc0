package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/gridstash/internal/config"
	"github.com/gravitas-games/gridstash/internal/network"
	"github.com/gravitas-games/gridstash/internal/store"
	"github.com/gravitas-games/gridstash/pkg/inventory"
)

// Server is the inventory server
type Server struct {
	config       *config.Config
	session      *Session
	catalog      *inventory.Registry
	store        store.Store
	upgrader     websocket.Upgrader
	httpSrv      *http.Server
	jwtValidator *JWTValidator
	redis        *redis.Client
	log          *logrus.Logger

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex
	connWG      sync.WaitGroup

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a server backed by Redis when an address is configured, and by
// an in-memory store otherwise
func New(cfg *config.Config, catalog *inventory.Registry, log *logrus.Logger) (*Server, error) {
	log.Info("initializing server")

	ctx, cancel := context.WithCancel(context.Background())

	var (
		redisClient *redis.Client
		st          store.Store
	)
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.WithField("address", cfg.Redis.Address).Info("connected to Redis")

		var codec store.Codec = store.JSONCodec{}
		if cfg.Redis.CompactSaves {
			codec = store.CompactCodec{Registry: catalog}
		}
		st = store.NewRedisStore(redisClient, cfg.Redis.SavePrefix, codec)
	} else {
		log.Warn("no Redis address configured, saves are kept in memory")
		st = store.NewMemoryStore()
	}

	jwtValidator, err := NewJWTValidator(ctx, cfg, redisClient, log)
	if err != nil {
		cancel()
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, fmt.Errorf("failed to initialize JWT validator: %w", err)
	}

	srv := newServer(ctx, cancel, cfg, catalog, st, jwtValidator, log)
	srv.redis = redisClient

	log.Info("server initialized")
	return srv, nil
}

func newServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, catalog *inventory.Registry, st store.Store, v *JWTValidator, log *logrus.Logger) *Server {
	return &Server{
		config:       cfg,
		session:      NewSession("main", cfg, log),
		catalog:      catalog,
		store:        st,
		jwtValidator: v,
		log:          log,
		connections:  make(map[*Connection]bool),
		ctx:          ctx,
		cancel:       cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{"access_token"},
			CheckOrigin: func(r *http.Request) bool {
				// TODO: check origin against an allow-list from config
				return true
			},
		},
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.WithFields(logrus.Fields{
		"websocket": fmt.Sprintf("ws://%s/ws", addr),
		"health":    fmt.Sprintf("http://%s/health", addr),
	}).Info("starting WebSocket server")

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections, closes the open ones and waits for
// their stashes to be saved
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.log.WithError(err).Warn("HTTP server shutdown error")
		}
	}

	// Hijacked WebSocket connections are not closed by http.Server.Shutdown.
	notice := &network.ServerMessage{
		Type:    network.MsgTypeShutdown,
		Payload: network.ServerShutdownPayload{Reason: "server stopping"},
	}
	s.connMu.RLock()
	for conn := range s.connections {
		conn.SendMessage(notice)
		conn.closeSend()
	}
	s.connMu.RUnlock()

	done := make(chan struct{})
	go func() {
		s.connWG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("timed out waiting for connections to close")
	}

	s.cancel()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.WithError(err).Warn("Redis close error")
		}
	}

	s.log.Info("server shutdown complete")
	return nil
}

// handleWebSocket handles WebSocket connection requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithField("remote", r.RemoteAddr)

	tokenString := extractTokenFromHeader(r)
	if tokenString == "" {
		reqLog.Info("missing JWT token")
		http.Error(w, "Missing authentication token", http.StatusUnauthorized)
		return
	}

	player, err := s.jwtValidator.ValidateToken(r.Context(), tokenString)
	if err != nil {
		reqLog.WithError(err).Info("invalid JWT token")
		http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		reqLog.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	conn := NewConnection(ws, s)
	conn.player = player
	conn.authenticated = true
	conn.log = reqLog.WithFields(logrus.Fields{"player": player.ID, "username": player.Username})

	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()
	s.connWG.Add(1)
	defer s.connWG.Done()

	conn.log.Info("WebSocket connection established")

	// Handle connection (blocking)
	conn.Handle()

	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()

	conn.log.Info("WebSocket connection closed")
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/craftboard/signcast/internal/engine"
	"github.com/craftboard/signcast/internal/model"
	"github.com/gin-gonic/gin"
)

// EngineStats is the narrow engine contract required by the HTTP API.
type EngineStats interface {
	Stats() engine.Stats
	Status() model.ConnectionStatus
	CacheAges() map[string]engine.CacheAge
}

// Server provides the read-only HTTP API the monitor client polls.
type Server struct {
	addr      string
	eng       EngineStats
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, eng EngineStats) *Server {
	if addr == "" {
		addr = "127.0.0.1:7360"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		eng:    eng,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/stats", s.handleStats)
	r.GET("/api/cache", s.handleCache)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	st := s.eng.Stats()
	status := s.eng.Status()

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"uptime":          time.Since(s.startTime).String(),
		"fps":             st.FPS,
		"frame_count":     st.FrameCount,
		"connected":       status.IsConnected,
		"using_mock_data": status.UsingMockData,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.eng.Stats())
}

func (s *Server) handleCache(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  s.eng.Status(),
		"domains": s.eng.CacheAges(),
	})
}

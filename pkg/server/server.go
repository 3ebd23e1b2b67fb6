// Package server is a stub generation backend. It accepts the same requests a
// real backend would and answers them with a local generator, so the studio
// can be exercised end to end over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/generator"
	"github.com/andri/asteria/pkg/library"
	"github.com/andri/asteria/pkg/metrics"
	"github.com/andri/asteria/pkg/world"
)

const shutdownTimeout = 5 * time.Second

// Options configures the stub backend.
type Options struct {
	Listen      string
	Metrics     bool
	CORSOrigins []string
	Generator   generator.Generator
	Logger      *logger.Logger

	// Debug puts gin in debug mode, which prints routes as they register
	Debug bool

	// Games stores generated scripts for download. Nil keeps them in memory.
	Games Games
}

// Games is where generated scripts are kept for download.
type Games interface {
	Save(req world.GenerationRequest, result *world.GenerationResult) (library.Entry, error)
	Script(name string) ([]byte, error)
}

// Server serves the generation API.
type Server struct {
	opts   Options
	engine *gin.Engine
	log    *logger.Logger
}

// New builds the router. A nil generator falls back to the simulated one.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Generator == nil {
		opts.Generator = generator.Instrument("simulated", &generator.Simulated{}, opts.Logger)
	}
	if opts.Games == nil {
		opts.Games = library.NewMemory()
	}

	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		opts:   opts,
		engine: gin.New(),
		log:    opts.Logger.Component("server"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupMiddleware() {
	s.engine.Use(Recovery(s.log))
	s.engine.Use(RequestID())
	s.engine.Use(CORS(s.opts.CORSOrigins))
	if s.opts.Metrics {
		s.engine.Use(Metrics())
	}
	s.engine.Use(AccessLog(s.log))
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.health)
	s.engine.POST(generator.GeneratePath, s.generate)
	s.engine.GET("/api/game/:file", s.download)
	if s.opts.Metrics {
		s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) generate(c *gin.Context) {
	var req world.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.log.Info("generation requested",
		"request_id", c.GetString(requestIDKey),
		"game_mode", string(req.GameMode),
		"image_category", req.ImageCategory,
		"has_image", req.UploadedImage != "",
	)

	result, err := s.opts.Generator.Generate(c.Request.Context(), req)
	if err != nil {
		// Generation failures travel in the body with a 200.
		c.JSON(http.StatusOK, gin.H{"error": fmt.Sprintf("An error occurred during game generation: %v", err)})
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"error": "generator produced no result"})
		return
	}

	if result.ExecutableFile != "" {
		entry, err := s.opts.Games.Save(req, result)
		if err != nil {
			s.log.Error("failed to store generated game", "file", result.ExecutableFile, "error", err)
			c.JSON(http.StatusOK, gin.H{"error": fmt.Sprintf("An error occurred during game generation: %v", err)})
			return
		}
		s.log.Debug("generated game stored", "file", entry.File, "bytes", entry.Size)
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) download(c *gin.Context) {
	name, err := library.CleanName(c.Param("file"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found."})
		return
	}

	script, err := s.opts.Games.Script(name)
	if err != nil {
		if !errors.Is(err, library.ErrNotFound) {
			s.log.Error("failed to read game", "file", name, "error", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found."})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/octet-stream", script)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.opts.Listen }

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("stub backend listening", "addr", ln.Addr().String(), "metrics", s.opts.Metrics)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info("stub backend stopped")
		return nil
	})

	return g.Wait()
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/funfacts/internal/api/handler"
	"github.com/jon4hz/funfacts/internal/api/middleware"
	"github.com/jon4hz/funfacts/internal/config"
	"github.com/jon4hz/funfacts/internal/engine"
)

const sessionName = "funfacts_session"

type Server struct {
	cfg        *config.Config
	ginEngine  *gin.Engine
	engine     *engine.Engine
	httpServer *http.Server
}

// New creates the HTTP server and registers all routes.
func New(cfg *config.Config, e *engine.Engine) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if e == nil {
		return nil, fmt.Errorf("engine is required")
	}

	if log.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		engine:    e,
	}
	s.ginEngine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		gzip.Gzip(gzip.DefaultCompression),
	)
	s.setupSession()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   strings.HasPrefix(s.cfg.ServerURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(sessionName, store))
}

func (s *Server) setupRoutes() {
	h := handler.New(s.engine)

	s.ginEngine.GET("/", h.Health)
	s.ginEngine.GET("/stats/", h.Stats)

	auth := s.ginEngine.Group("/auth")
	auth.POST("/register/", h.Register)
	auth.POST("/login/", h.Login)
	auth.POST("/logout/", h.Logout)
	auth.GET("/me/", h.Me)

	users := s.ginEngine.Group("/users")
	users.POST("/", h.Register)
	users.GET("/", h.ListUsers)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	facts := s.ginEngine.Group("/facts")
	facts.POST("/", h.AddFact)
	facts.GET("/", h.ListFacts)
	facts.GET("/random/", h.RandomFact)
	facts.GET("/categories/", h.Categories)
	facts.PUT("/:id", h.UpdateFact)
	facts.DELETE("/:id", h.DeleteFact)

	favorites := s.ginEngine.Group("/favorites")
	favorites.POST("/", h.AddFavorite)
	favorites.POST("/add/", h.AddFavorite)
	favorites.GET("/:user_id", h.ListFavorites)
	favorites.DELETE("/:fav_id", h.RemoveFavorite)

	jobs := s.ginEngine.Group("/jobs")
	jobs.GET("/", h.ListJobs)
	jobs.GET("/:id", h.GetJob)
	jobs.POST("/:id/run/", h.RunJob)
}

// Handler returns the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run listens until the server is shut down.
func (s *Server) Run() error {
	log.Info("Starting server", "listen", s.cfg.Listen)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}

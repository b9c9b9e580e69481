package webui

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/armanrma7/rmbg/submission"
)

type Config struct {
	Port string
}

// Server hosts the single page and proxies its submissions to the remote
// background-removal backend. All state is process-memory scoped; nothing
// is written to durable storage.
type Server struct {
	e       *echo.Echo
	cfg     Config
	logger  *logrus.Logger
	session *submission.Session
	prefs   *Preferences
	health  *HealthMonitor
}

func NewServer(
	e *echo.Echo,
	cfg Config,
	logger *logrus.Logger,
	session *submission.Session,
	prefs *Preferences,
	health *HealthMonitor,
) *Server {
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))

	s := &Server{
		e:       e,
		cfg:     cfg,
		logger:  logger,
		session: session,
		prefs:   prefs,
		health:  health,
	}

	e.GET("/", s.page)
	e.POST("/api/remove-background", s.removeBackground)
	e.GET("/api/health", s.healthStatus)
	e.GET("/api/preferences", s.getPreferences)
	e.PUT("/api/preferences", s.updatePreferences)

	return s
}

func (s *Server) Run(stopCh <-chan os.Signal, shutDownTime time.Duration) error {
	s.health.Start()

	go func() {
		if err := s.e.Start(s.cfg.Port); err != nil && err != http.ErrServerClosed {
			s.logger.Errorln(err)
		}
	}()

	<-stopCh
	s.health.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutDownTime)
	defer cancel()

	return s.e.Shutdown(ctx)
}

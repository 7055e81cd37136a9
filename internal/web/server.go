// Package web serves the portfolio over HTTP with gin: the full page, the
// list fragments HTMX swaps in, the globe endpoints and the contact API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/globe"
	"github.com/Zachkp/portfolio/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Options wires a Server. Analytics may be nil, which disables visit tracking.
type Options struct {
	Config    *config.Config
	Content   *content.Store
	Submitter *contact.Submitter
	Analytics *analytics.Store
	Metrics   *Metrics
	Logger    *zap.Logger
}

type Server struct {
	cfg       *config.Config
	content   *content.Store
	submitter *contact.Submitter
	metrics   *Metrics
	log       *zap.Logger
	model     *globe.Model
	engine    *gin.Engine
}

func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Content == nil || opts.Submitter == nil {
		return nil, errors.New("web: config, content and submitter are required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics("portfolio")
	}

	if opts.Config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("opening static files: %w", err)
	}

	s := &Server{
		cfg:       opts.Config,
		content:   opts.Content,
		submitter: opts.Submitter,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		model:     globe.NewModel(opts.Config.Globe.Count, opts.Config.Globe.Radius),
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), logging.RequestID(), logging.Middleware(s.log), s.metrics.Middleware())
	if opts.Analytics != nil {
		r.Use(analytics.Middleware(opts.Analytics, s.log))
	}

	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.index)
	r.GET("/privacy", s.privacy)
	r.GET("/sections/:section", s.section)
	r.GET("/api/globe", s.globeModel)
	r.GET("/globe.svg", s.globeSVG)
	r.POST("/api/contact", s.contact)
	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	s.engine = r
	return s, nil
}

// Handler returns the gin engine as an http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on the configured port until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

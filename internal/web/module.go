// Package web serves the catalog browser as an HTML page, one controller per
// browser session.
package web

import (
	"context"
	"embed"
	"html/template"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/davidroman0O/firm-catalog/catalog"
)

//go:embed templates/*.html
var templates embed.FS

// Config configures the HTTP surface.
type Config struct {
	Addr       string
	SessionTTL time.Duration
}

// Module implements the mono module lifecycle for the catalog web server.
type Module struct {
	cfg      Config
	log      *zap.Logger
	sessions *sessions
	tmpl     *template.Template
	app      *fiber.App

	stopOnce sync.Once
	stop     chan struct{}
}

// Compile-time interface check
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule builds the module. opts apply to every controller it mounts.
func NewModule(cfg Config, log *zap.Logger, opts ...catalog.Option) *Module {
	m := &Module{
		cfg:  cfg,
		log:  log.Named("web"),
		tmpl: template.Must(template.ParseFS(templates, "templates/*.html")),
		stop: make(chan struct{}),
	}

	opts = append([]catalog.Option{catalog.WithLogger(log)}, opts...)
	m.sessions = newSessions(cfg.SessionTTL, func() *catalog.Controller {
		return catalog.NewController(opts...)
	})
	m.app = m.newApp()

	return m
}

// Name returns the module name
func (m *Module) Name() string {
	return "catalog-web"
}

// App exposes the fiber application.
func (m *Module) App() *fiber.App {
	return m.app
}

// Health reports the module state.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "HTTP server not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr":     m.cfg.Addr,
			"sessions": m.sessions.len(),
		},
	}
}

// Start runs the HTTP server and the session janitor.
func (m *Module) Start(ctx context.Context) error {
	go m.janitor()

	errChan := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.cfg.Addr); err != nil {
			errChan <- err
		}
	}()

	// Give server a moment to start or fail
	select {
	case err := <-errChan:
		return errors.Wrap(err, "failed to start HTTP server")
	case <-time.After(100 * time.Millisecond):
		m.log.Info("HTTP server started", zap.String("addr", m.cfg.Addr))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drains in-flight requests and closes every session.
func (m *Module) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() {
		close(m.stop)
	})

	m.log.Info("Shutting down HTTP server...")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return errors.Wrap(err, "failed to shutdown HTTP server")
	}
	m.sessions.closeAll()

	m.log.Info("HTTP server stopped gracefully")
	return nil
}

func (m *Module) janitor() {
	interval := m.cfg.SessionTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.sessions.sweep(); n > 0 {
				m.log.Debug("expired sessions closed", zap.Int("count", n))
			}
		case <-m.stop:
			return
		}
	}
}

func (m *Module) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "firm-catalog",
		DisableStartupMessage: true,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		ErrorHandler:          m.handleError,
	})

	app.Use(recover.New())
	app.Use(m.requestLog)

	app.Get("/", m.index)
	app.Post("/products", m.submit)
	app.Get("/api/catalog", m.api)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(m.Health(c.UserContext()))
	})

	return app
}

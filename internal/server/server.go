// Пакет server — HTTP-сервер PanelVoices с graceful shutdown.
// Без TLS — TLS termination на reverse proxy.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/panelvoices/internal/api/errors"
	"github.com/bigkaa/panelvoices/internal/api/middleware"
	"github.com/bigkaa/panelvoices/internal/api/openapi"
	"github.com/bigkaa/panelvoices/internal/config"
	uihandlers "github.com/bigkaa/panelvoices/internal/ui/handlers"
	"github.com/bigkaa/panelvoices/internal/ui/i18n"
	"github.com/bigkaa/panelvoices/internal/ui/static"
)

// Routes — обработчики, монтируемые на роутер.
type Routes struct {
	// API — реализация операций openapi.yaml
	API openapi.ServerInterface
	// Pages — страницы; nil — страницы не монтируются
	Pages *uihandlers.PagesHandler
	// PublicDir — корень публичных ассетов (uploads/, placeholder.mp3);
	// пусто — ассеты не раздаются
	PublicDir string
}

// Server — HTTP-сервер PanelVoices.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, routes Routes) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(logger, routes),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает роутер: глобальные middleware, API, страницы и статика.
func NewRouter(logger *slog.Logger, routes Routes) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.AudioAssetHeaders)

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		apierrors.NotFound(w, "Not found")
	})

	openapi.HandlerWithOptions(routes.API, openapi.ChiServerOptions{
		BaseRouter:       router,
		ErrorHandlerFunc: apierrors.ParamError,
	})

	router.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openapi.Raw())
	})

	if routes.Pages != nil {
		router.Group(func(r chi.Router) {
			r.Use(i18n.Middleware())
			r.Get("/", routes.Pages.HandleHome)
			r.Get("/upload-audio", routes.Pages.HandleUpload)
		})
	}

	router.Handle("/static/*", http.StripPrefix("/static/", noDirListing(http.FileServer(static.FileSystem()))))

	if routes.PublicDir != "" {
		public := noDirListing(http.FileServer(http.Dir(routes.PublicDir)))
		router.Handle("/uploads/*", public)
		router.Handle("/placeholder.mp3", public)
	}

	return router
}

// noDirListing отвечает 404 на запросы к директориям.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}

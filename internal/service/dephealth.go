// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// PanelVoices мониторит:
//   - PostgreSQL — SQL checker через существующий pgxpool (если бэкенд postgres)
//   - MinIO — HTTP checker к /minio/health/live (если blob-бэкенд minio)
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // регистрация HTTP checker factory
	"github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/pgcheck"
	"github.com/prometheus/client_golang/prometheus"
)

// minioHealthPath — liveness endpoint MinIO.
const minioHealthPath = "/minio/health/live"

// ErrNoDependencies — нечего мониторить (например, MongoDB + local).
var ErrNoDependencies = errors.New("нет зависимостей для мониторинга")

// DephealthDeps — отслеживаемые зависимости. Пустые поля пропускаются.
type DephealthDeps struct {
	// PostgresDB — *sql.DB из pgxpool (stdlib.OpenDBFromPool)
	PostgresDB *sql.DB
	// PostgresURL — URL PostgreSQL (для лейблов метрик)
	PostgresURL string
	// MinioURL — базовый URL MinIO ({scheme}://{endpoint})
	MinioURL string
}

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	names  []string
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга зависимостей.
// Метрики регистрируются в глобальном Prometheus registry.
// Возвращает ErrNoDependencies, если ни одна зависимость не задана.
func NewDephealthService(
	serviceID string,
	group string,
	deps DephealthDeps,
	checkInterval time.Duration,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, deps, checkInterval, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	deps DephealthDeps,
	checkInterval time.Duration,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, deps, checkInterval, logger,
		dephealth.WithRegisterer(registerer))
}

func newDephealthService(
	serviceID string,
	group string,
	deps DephealthDeps,
	checkInterval time.Duration,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	opts := []dephealth.Option{dephealth.WithLogger(logger)}
	var names []string

	if deps.PostgresDB != nil {
		opts = append(opts, dephealth.AddDependency("postgresql", dephealth.TypePostgres,
			pgcheck.New(pgcheck.WithDB(deps.PostgresDB)),
			dephealth.FromURL(deps.PostgresURL),
			dephealth.CheckInterval(checkInterval),
			dephealth.Critical(true),
		))
		names = append(names, "postgresql")
	}

	if deps.MinioURL != "" {
		opts = append(opts, dephealth.HTTP("minio",
			dephealth.FromURL(deps.MinioURL),
			dephealth.WithHTTPHealthPath(minioHealthPath),
			dephealth.CheckInterval(checkInterval),
			dephealth.Critical(false),
		))
		names = append(names, "minio")
	}

	if len(names) == 0 {
		return nil, ErrNoDependencies
	}
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		names:  names,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен", slog.Any("dependencies", ds.names))
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — имя зависимости, значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

// Точка входа PanelVoices — каталог голосовых образцов и mock-генерация речи.
// Загружает конфигурацию, подключается к хранилищу метаданных (PostgreSQL
// или MongoDB), применяет миграции, инициализирует blob storage (локальный
// диск или MinIO), создаёт сервисный слой, API и страницы, запускает
// topologymetrics и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bigkaa/panelvoices/internal/api/handlers"
	"github.com/bigkaa/panelvoices/internal/config"
	"github.com/bigkaa/panelvoices/internal/database"
	"github.com/bigkaa/panelvoices/internal/repository"
	"github.com/bigkaa/panelvoices/internal/server"
	"github.com/bigkaa/panelvoices/internal/service"
	"github.com/bigkaa/panelvoices/internal/storage/blobstore"
	uihandlers "github.com/bigkaa/panelvoices/internal/ui/handlers"
	"github.com/bigkaa/panelvoices/internal/ui/i18n"
)

// connectTimeout — таймаут подключения к хранилищам при старте.
const connectTimeout = 30 * time.Second

func main() {
	// 0. .env (опционально, для локальной разработки)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Ошибка чтения .env", slog.String("error", err.Error()))
	}

	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("PanelVoices запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("storage_backend", cfg.StorageBackend),
		slog.String("blob_backend", cfg.BlobBackend),
	)

	ctx := context.Background()
	startCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	// 3. Хранилище метаданных
	var (
		store        repository.Store
		readiness    handlers.ReadinessChecker
		storageCheck string
		pgDB         *sql.DB
		debugEnv     = service.DebugEnvironment{
			Version:        config.Version,
			StorageURISet:  cfg.StorageURI != "",
			PublicBaseURL:  cfg.PublicBaseURL,
			StorageBackend: cfg.StorageBackend,
			BlobBackend:    cfg.BlobBackend,
		}
	)

	switch cfg.StorageBackend {
	case config.StorageBackendPostgres:
		// 3.1 Миграции до подключения пула
		logger.Info("Применение миграций БД...")
		if err := database.Migrate(cfg.StorageURI, logger); err != nil {
			logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
			os.Exit(1)
		}

		pool, err := database.Connect(startCtx, cfg.StorageURI, logger)
		if err != nil {
			logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		// Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode)
		pgDB = stdlib.OpenDBFromPool(pool)
		defer pgDB.Close()

		store = repository.NewPostgresStore(pool)
		readiness = database.NewReadinessChecker(pool)
		storageCheck = "postgresql"

	case config.StorageBackendMongo:
		client, err := database.ConnectMongo(startCtx, cfg.StorageURI, logger)
		if err != nil {
			logger.Error("Ошибка подключения к MongoDB", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			disconnectCtx, disconnectCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer disconnectCancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		db := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureMongoIndexes(startCtx, db); err != nil {
			logger.Error("Ошибка создания индексов MongoDB", slog.String("error", err.Error()))
			os.Exit(1)
		}

		store = repository.NewMongoStore(db)
		readiness = database.NewMongoReadinessChecker(client)
		storageCheck = "mongodb"
		debugEnv.DatabaseName = cfg.MongoDatabase
		debugEnv.AudioCollection = repository.AudioCollection
	}

	// 4. Blob storage
	var blobs blobstore.Store
	switch cfg.BlobBackend {
	case config.BlobBackendMinio:
		blobs, err = blobstore.NewMinio(startCtx, blobstore.MinioConfig{
			Endpoint:   cfg.MinioEndpoint,
			AccessKey:  cfg.MinioAccessKey,
			SecretKey:  cfg.MinioSecretKey,
			Bucket:     cfg.MinioBucket,
			UseSSL:     cfg.MinioUseSSL,
			PublicBase: cfg.MinioPublicBase,
		}, logger)
	default:
		blobs, err = blobstore.NewLocal(cfg.UploadsDir())
	}
	if err != nil {
		logger.Error("Ошибка инициализации blob storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Blob storage инициализирован", slog.String("backend", blobs.Backend()))

	// 5. Services
	voices := service.DefaultVoiceTable()
	uploadSvc := service.NewUploadService(store, blobs, logger)
	lookupSvc := service.NewLookupService(store, cfg.PublicBaseURL, logger)
	catalogSvc := service.NewCatalogService(store, blobs, debugEnv, logger)
	generationSvc := service.NewGenerationService(
		store,
		service.NewCacheService(cfg.CacheSize, cfg.CacheTTL),
		service.NewMockSynthesizer(voices, cfg.SynthDelay),
		logger,
	)

	// 6. topologymetrics — мониторинг зависимостей (PostgreSQL, MinIO)
	var deps handlers.DependencyHealth
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"panelvoices",
		cfg.DephealthGroup,
		service.DephealthDeps{
			PostgresDB:  pgDB,
			PostgresURL: cfg.StorageURI,
			MinioURL:    cfg.MinioURL(),
		},
		cfg.DephealthCheckInterval,
		logger,
	)
	switch {
	case errors.Is(dephealthErr, service.ErrNoDependencies):
		logger.Info("topologymetrics: зависимостей для мониторинга нет")
	case dephealthErr != nil:
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	default:
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics", slog.String("error", startErr.Error()))
		} else {
			defer dephealthSvc.Stop()
			deps = dephealthSvc
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 7. API handler (реализует openapi.ServerInterface)
	apiHandler := handlers.NewAPIHandler(
		handlers.NewAudioHandler(uploadSvc, lookupSvc, catalogSvc, cfg.MaxUploadBytes, logger),
		handlers.NewGenerationHandler(generationSvc, logger),
		handlers.NewDebugHandler(catalogSvc, logger),
		handlers.NewHealthHandler(storageCheck, readiness, deps),
	)

	// 8. Страницы
	bundle, err := i18n.Load()
	if err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}
	pagesHandler := uihandlers.NewPagesHandler(bundle, voices.Names(), logger)

	// 9. HTTP-сервер
	srv := server.New(cfg, logger, server.Routes{
		API:       apiHandler,
		Pages:     pagesHandler,
		PublicDir: cfg.PublicDir,
	})
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

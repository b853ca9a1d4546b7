// Пакет config — загрузка и валидация конфигурации PanelVoices
// из переменных окружения.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Бэкенды хранилища метаданных (определяются по схеме PV_STORAGE_URI).
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMongo    = "mongodb"
)

// Бэкенды хранения байтов загруженных файлов.
const (
	BlobBackendLocal = "local"
	BlobBackendMinio = "minio"
)

// Config содержит все параметры конфигурации PanelVoices.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Файл логов с ротацией (пусто — только stdout)
	LogFile string

	// --- Хранилище метаданных ---

	// URI хранилища: postgres://... или mongodb://...
	StorageURI string
	// Бэкенд, определённый по схеме StorageURI
	StorageBackend string
	// Имя базы MongoDB
	MongoDatabase string

	// --- Публичные ассеты ---

	// Внешний базовый URL для ссылок на аудио (опционально)
	PublicBaseURL string
	// Корень публичных ассетов; загрузки лежат в PublicDir/uploads
	PublicDir string
	// Максимальный размер загружаемого файла в байтах
	MaxUploadBytes int64

	// --- Blob storage ---

	BlobBackend     string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioUseSSL     bool
	MinioPublicBase string

	// --- Генерация ---

	// Искусственная задержка mock-синтеза
	SynthDelay time.Duration
	// Размер LRU-кэша генераций
	CacheSize int
	// TTL записи LRU-кэша генераций
	CacheTTL time.Duration

	// --- topologymetrics ---

	DephealthGroup         string
	DephealthCheckInterval time.Duration

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Таймаут graceful shutdown
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	cfg.Port, err = getEnvInt("PV_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("PV_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PV_PORT: порт %d вне диапазона 1-65535", cfg.Port)
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("PV_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("PV_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getEnvDefault("PV_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("PV_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}
	cfg.LogFile = os.Getenv("PV_LOG_FILE")

	// --- Хранилище метаданных ---

	cfg.StorageURI, err = getEnvRequired("PV_STORAGE_URI")
	if err != nil {
		return nil, err
	}
	cfg.StorageBackend, err = storageBackendFromURI(cfg.StorageURI)
	if err != nil {
		return nil, fmt.Errorf("PV_STORAGE_URI: %w", err)
	}
	cfg.MongoDatabase = getEnvDefault("PV_MONGO_DATABASE", "panelvoices")

	// --- Публичные ассеты ---

	cfg.PublicBaseURL = strings.TrimRight(os.Getenv("PV_PUBLIC_BASE_URL"), "/")
	if cfg.PublicBaseURL != "" {
		u, perr := url.Parse(cfg.PublicBaseURL)
		if perr != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("PV_PUBLIC_BASE_URL: ожидается абсолютный URL, получено %q", cfg.PublicBaseURL)
		}
	}

	cfg.PublicDir, err = filepath.Abs(getEnvDefault("PV_PUBLIC_DIR", "public"))
	if err != nil {
		return nil, fmt.Errorf("PV_PUBLIC_DIR: %w", err)
	}

	maxUploadMB, err := getEnvInt("PV_MAX_UPLOAD_MB", 50)
	if err != nil {
		return nil, fmt.Errorf("PV_MAX_UPLOAD_MB: %w", err)
	}
	if maxUploadMB <= 0 {
		return nil, fmt.Errorf("PV_MAX_UPLOAD_MB: значение должно быть > 0")
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) * 1024 * 1024

	// --- Blob storage ---

	cfg.BlobBackend = getEnvDefault("PV_BLOB_BACKEND", BlobBackendLocal)
	switch cfg.BlobBackend {
	case BlobBackendLocal:
	case BlobBackendMinio:
		if cfg.MinioEndpoint, err = getEnvRequired("PV_MINIO_ENDPOINT"); err != nil {
			return nil, err
		}
		if cfg.MinioAccessKey, err = getEnvRequired("PV_MINIO_ACCESS_KEY"); err != nil {
			return nil, err
		}
		if cfg.MinioSecretKey, err = getEnvRequired("PV_MINIO_SECRET_KEY"); err != nil {
			return nil, err
		}
		cfg.MinioBucket = getEnvDefault("PV_MINIO_BUCKET", "panelvoices")
		cfg.MinioUseSSL, err = getEnvBool("PV_MINIO_USE_SSL", false)
		if err != nil {
			return nil, fmt.Errorf("PV_MINIO_USE_SSL: %w", err)
		}
		cfg.MinioPublicBase = strings.TrimRight(os.Getenv("PV_MINIO_PUBLIC_BASE"), "/")
	default:
		return nil, fmt.Errorf("PV_BLOB_BACKEND: недопустимый бэкенд %q, допустимые: local, minio", cfg.BlobBackend)
	}

	// --- Генерация ---

	cfg.SynthDelay, err = getEnvDuration("PV_SYNTH_DELAY", 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PV_SYNTH_DELAY: %w", err)
	}
	if cfg.SynthDelay < 0 {
		return nil, fmt.Errorf("PV_SYNTH_DELAY: значение не может быть отрицательным")
	}

	cfg.CacheSize, err = getEnvInt("PV_CACHE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("PV_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("PV_CACHE_SIZE: значение должно быть >= 1")
	}

	cfg.CacheTTL, err = getEnvDurationFallback("PV_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("PV_CACHE_TTL: %w", err)
	}

	// --- topologymetrics ---

	cfg.DephealthGroup = getEnvDefault("PV_DEPHEALTH_GROUP", "panelvoices")
	cfg.DephealthCheckInterval, err = getEnvDurationFallback("PV_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PV_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("PV_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PV_HTTP_READ_TIMEOUT: %w", err)
	}

	cfg.HTTPWriteTimeout, err = getEnvDuration("PV_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PV_HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg.HTTPIdleTimeout, err = getEnvDuration("PV_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PV_HTTP_IDLE_TIMEOUT: %w", err)
	}

	cfg.ShutdownTimeout, err = getEnvDuration("PV_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PV_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// UploadsDir возвращает директорию загрузок внутри корня публичных ассетов.
func (c *Config) UploadsDir() string {
	return filepath.Join(c.PublicDir, "uploads")
}

// MinioURL возвращает базовый URL MinIO ({scheme}://{endpoint}) для мониторинга.
// Пусто, если blob-бэкенд не minio.
func (c *Config) MinioURL() string {
	if c.BlobBackend != BlobBackendMinio || c.MinioEndpoint == "" {
		return ""
	}
	scheme := "http"
	if c.MinioUseSSL {
		scheme = "https"
	}
	return scheme + "://" + c.MinioEndpoint
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
// Если задан LogFile, логи дублируются в файл с ротацией (lumberjack).
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // МБ
			MaxBackups: 5,
			MaxAge:     30, // дней
		})
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// storageBackendFromURI определяет бэкенд хранилища по схеме URI.
func storageBackendFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("некорректный URI: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		return StorageBackendPostgres, nil
	case "mongodb", "mongodb+srv":
		return StorageBackendMongo, nil
	default:
		return "", fmt.Errorf("неподдерживаемая схема %q, допустимые: postgres, postgresql, mongodb, mongodb+srv", u.Scheme)
	}
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvDurationFallback возвращает time.Duration из переменной окружения.
// Если задана — парсится и валидируется (> 0).
func getEnvDurationFallback(key string, fallbackVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallbackVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть > 0")
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

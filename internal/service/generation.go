// generation.go — сервис генерации речи с кэшированием по тройке
// (text, voice, language). Координирует LRU-кэш, Record Store и Synthesizer.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/repository"
)

// Ограничения списка генераций.
const (
	DefaultGenerationLimit = 10
	MaxGenerationLimit     = 100
)

// Prometheus-метрики генерации.
var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pv_generations_total",
		Help: "Общее количество запросов генерации по результату (cached, generated, error).",
	}, []string{"result"})
	synthesisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pv_synthesis_duration_seconds",
		Help:    "Длительность синтеза при промахе кэша.",
		Buckets: prometheus.DefBuckets,
	})
)

// GenerateRequest — запрос генерации.
type GenerateRequest struct {
	Text     string
	Voice    string
	Language string
}

// GenerateResult — результат генерации.
type GenerateResult struct {
	AudioURL string
	// ID — идентификатор новой записи; пусто при Cached
	ID     string
	Cached bool
}

// GenerationService — генерация с кэшированием.
type GenerationService struct {
	repo   repository.GenerationRepository
	cache  *CacheService
	synth  Synthesizer
	now    func() time.Time
	logger *slog.Logger
}

// NewGenerationService создаёт сервис генерации.
func NewGenerationService(
	repo repository.GenerationRepository,
	cache *CacheService,
	synth Synthesizer,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{
		repo:   repo,
		cache:  cache,
		synth:  synth,
		now:    time.Now,
		logger: logger.With(slog.String("component", "generation_service")),
	}
}

// Generate возвращает закэшированный URL для тройки или синтезирует новый
// и сохраняет GenerationRecord.
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Text == "" || req.Voice == "" || req.Language == "" {
		return nil, newError(KindMissingField, "Missing required fields: text, voice, language", nil)
	}
	// NUL не допускается в TEXT PostgreSQL; отклоняется для любого backend.
	if strings.ContainsRune(req.Text+req.Voice+req.Language, 0) {
		return nil, newError(KindInvalidParameter, "text, voice and language must not contain NUL characters", nil)
	}

	key := model.GenerationKey{Text: req.Text, Voice: req.Voice, Language: req.Language}

	if rec, ok := s.cache.Get(key); ok {
		generationsTotal.WithLabelValues("cached").Inc()
		return &GenerateResult{AudioURL: rec.AudioURL, Cached: true}, nil
	}

	rec, err := s.repo.FindGeneration(ctx, key)
	switch {
	case err == nil:
		s.cache.Set(rec)
		generationsTotal.WithLabelValues("cached").Inc()
		return &GenerateResult{AudioURL: rec.AudioURL, Cached: true}, nil
	case !errors.Is(err, repository.ErrNotFound):
		generationsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Ошибка поиска генерации", slog.String("error", err.Error()))
		return nil, errInternal(err)
	}

	start := time.Now()
	audioURL, err := s.synth.Synthesize(ctx, SynthesisRequest(req))
	synthesisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		generationsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Ошибка синтеза",
			slog.String("voice", req.Voice),
			slog.String("language", req.Language),
			slog.String("error", err.Error()),
		)
		return nil, errInternal(err)
	}

	rec = &model.GenerationRecord{
		Text:      req.Text,
		Voice:     req.Voice,
		Language:  req.Language,
		AudioURL:  audioURL,
		CreatedAt: s.now().UTC(),
		TextHash:  model.TextHash(req.Text),
	}

	id, err := s.repo.InsertGeneration(ctx, rec)
	if err != nil {
		generationsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Ошибка сохранения генерации", slog.String("error", err.Error()))
		return nil, errInternal(err)
	}
	rec.ID = id
	s.cache.Set(rec)

	generationsTotal.WithLabelValues("generated").Inc()
	s.logger.Debug("Аудио сгенерировано",
		slog.String("id", id),
		slog.String("voice", req.Voice),
		slog.String("language", req.Language),
		slog.String("audio_url", audioURL),
	)

	return &GenerateResult{AudioURL: audioURL, ID: id, Cached: false}, nil
}

// List возвращает последние генерации по фильтру, новые первыми.
// filter.Limit должен быть уже нормализован (см. NormalizeLimit).
func (s *GenerationService) List(ctx context.Context, filter model.GenerationFilter) ([]*model.GenerationRecord, error) {
	items, err := s.repo.ListGenerations(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка получения списка генераций", slog.String("error", err.Error()))
		return nil, errInternal(err)
	}
	return items, nil
}

// NormalizeLimit применяет правила limit: nil — DefaultGenerationLimit,
// неположительное значение — ошибка, больше MaxGenerationLimit — обрезается.
func NormalizeLimit(limit *int) (int, error) {
	if limit == nil {
		return DefaultGenerationLimit, nil
	}
	if *limit <= 0 {
		return 0, newError(KindInvalidParameter, "limit must be a positive integer", nil)
	}
	if *limit > MaxGenerationLimit {
		return MaxGenerationLimit, nil
	}
	return *limit, nil
}

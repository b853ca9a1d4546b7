// CacheService — LRU-кэш генераций с TTL перед Record Store.
// Записи генераций неизменяемы, поэтому инвалидация не нужна.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pv_generation_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш генераций.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pv_generation_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша генераций.",
	})
)

// CacheService — per-instance in-memory кэш генераций.
type CacheService struct {
	cache *expirable.LRU[model.GenerationKey, *model.GenerationRecord]
}

// NewCacheService создаёт LRU-кэш с указанным максимальным размером и TTL.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	return &CacheService{
		cache: expirable.NewLRU[model.GenerationKey, *model.GenerationRecord](maxSize, nil, ttl),
	}
}

// Get возвращает запись по ключу. Обновляет метрики hit/miss.
func (c *CacheService) Get(key model.GenerationKey) (*model.GenerationRecord, bool) {
	val, ok := c.cache.Get(key)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет запись в кэш под её собственным ключом.
func (c *CacheService) Set(rec *model.GenerationRecord) {
	c.cache.Add(rec.Key(), rec)
}

// Len возвращает число записей в кэше.
func (c *CacheService) Len() int {
	return c.cache.Len()
}

package cache

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/tournabay/seedbot/constants"
)

// CacheItem 캐시에 저장되는 개별 아이템을 나타냅니다
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// IsExpired 캐시 아이템이 만료되었는지 확인합니다
func (item *CacheItem) IsExpired() bool {
	return time.Now().After(item.ExpiresAt)
}

// CacheStats 캐시 통계 정보를 나타냅니다
type CacheStats struct {
	BeatmapCount    int
	StarRatingCount int
	MatchLobbyCount int
}

// ExpirationEntry 만료 시간 기반 우선순위 큐의 항목
type ExpirationEntry struct {
	Key       string
	CacheType string // "beatmap", "starRating", "matchLobby"
	ExpiresAt time.Time
	Index     int // 힙에서의 인덱스
}

// ExpirationQueue 만료 시간 기반 우선순위 큐 (최소 힙)
type ExpirationQueue []*ExpirationEntry

func (priorityQueue ExpirationQueue) Len() int { return len(priorityQueue) }

func (priorityQueue ExpirationQueue) Less(i, j int) bool {
	return priorityQueue[i].ExpiresAt.Before(priorityQueue[j].ExpiresAt)
}

func (priorityQueue ExpirationQueue) Swap(i, j int) {
	priorityQueue[i], priorityQueue[j] = priorityQueue[j], priorityQueue[i]
	priorityQueue[i].Index = i
	priorityQueue[j].Index = j
}

func (priorityQueue *ExpirationQueue) Push(x interface{}) {
	n := len(*priorityQueue)
	entry := x.(*ExpirationEntry)
	entry.Index = n
	*priorityQueue = append(*priorityQueue, entry)
}

func (priorityQueue *ExpirationQueue) Pop() interface{} {
	old := *priorityQueue
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.Index = -1
	*priorityQueue = old[0 : n-1]
	return entry
}

// APICache 우선순위 큐를 사용한 osu! API 응답 캐시
type APICache struct {
	beatmapCache    map[string]*CacheItem
	starRatingCache map[string]*CacheItem
	matchLobbyCache map[string]*CacheItem

	// 만료 시간 추적을 위한 우선순위 큐와 인덱스
	expirationQueue *ExpirationQueue
	keyToEntry      map[string]*ExpirationEntry // 빠른 조회를 위한 인덱스

	mu sync.RWMutex

	// 캐시 설정
	beatmapTTL    time.Duration
	starRatingTTL time.Duration
	matchLobbyTTL time.Duration

	// 효율적인 정리를 위한 설정
	lastCleanup        time.Time
	cleanupBatchSize   int
	maxCleanupDuration time.Duration
}

// NewAPICache 새로운 APICache 인스턴스를 생성합니다
func NewAPICache() *APICache {
	priorityQueue := &ExpirationQueue{}
	heap.Init(priorityQueue)

	return &APICache{
		beatmapCache:    make(map[string]*CacheItem),
		starRatingCache: make(map[string]*CacheItem),
		matchLobbyCache: make(map[string]*CacheItem),

		expirationQueue: priorityQueue,
		keyToEntry:      make(map[string]*ExpirationEntry),

		// 캐시 TTL 설정
		beatmapTTL:    constants.BeatmapCacheTTL,
		starRatingTTL: constants.StarRatingCacheTTL,
		matchLobbyTTL: constants.MatchLobbyCacheTTL,

		// 효율적인 정리 설정
		cleanupBatchSize:   constants.CacheCleanupBatchSize,
		maxCleanupDuration: constants.MaxCacheCleanupDuration,
		lastCleanup:        time.Now(),
	}
}

// indexKey 캐시 종류가 달라도 같은 키 문자열이 충돌하지 않도록 합성 키를 만듭니다
func indexKey(cacheType, key string) string {
	return cacheType + ":" + key
}

// setWithExpiration 공통 저장 로직 (우선순위 큐에도 추가)
func (cache *APICache) setWithExpiration(cacheType, key string, data interface{}, ttl time.Duration) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	expiresAt := time.Now().Add(ttl)
	item := &CacheItem{
		Data:      data,
		ExpiresAt: expiresAt,
	}

	// 기존 항목이 있다면 우선순위 큐에서 무효화 처리 (힙 제거 비용 절감)
	if existingEntry, exists := cache.keyToEntry[indexKey(cacheType, key)]; exists {
		existingEntry.ExpiresAt = time.Time{} // 무효화 마크
	}

	// 캐시 맵에 저장
	switch cacheType {
	case "beatmap":
		cache.beatmapCache[key] = item
	case "starRating":
		cache.starRatingCache[key] = item
	case "matchLobby":
		cache.matchLobbyCache[key] = item
	}

	// 우선순위 큐에 추가
	entry := &ExpirationEntry{
		Key:       key,
		CacheType: cacheType,
		ExpiresAt: expiresAt,
	}
	heap.Push(cache.expirationQueue, entry)
	cache.keyToEntry[indexKey(cacheType, key)] = entry
}

// GetBeatmap 캐시에서 비트맵 정보를 조회합니다
func (cache *APICache) GetBeatmap(key string) (interface{}, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	item, exists := cache.beatmapCache[key]
	if !exists || item.IsExpired() {
		return nil, false
	}

	return item.Data, true
}

// SetBeatmap 비트맵 정보를 캐시에 저장합니다
func (cache *APICache) SetBeatmap(key string, beatmap interface{}) {
	cache.setWithExpiration("beatmap", key, beatmap, cache.beatmapTTL)
}

// GetStarRating 캐시에서 모드별 성급을 조회합니다
func (cache *APICache) GetStarRating(key string) (interface{}, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	item, exists := cache.starRatingCache[key]
	if !exists || item.IsExpired() {
		return nil, false
	}

	return item.Data, true
}

// SetStarRating 모드별 성급을 캐시에 저장합니다
func (cache *APICache) SetStarRating(key string, starRating interface{}) {
	cache.setWithExpiration("starRating", key, starRating, cache.starRatingTTL)
}

// GetMatchLobby 캐시에서 매치 로비를 조회합니다
func (cache *APICache) GetMatchLobby(key string) (interface{}, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	item, exists := cache.matchLobbyCache[key]
	if !exists || item.IsExpired() {
		return nil, false
	}

	return item.Data, true
}

// SetMatchLobby 매치 로비를 캐시에 저장합니다
func (cache *APICache) SetMatchLobby(key string, lobby interface{}) {
	cache.setWithExpiration("matchLobby", key, lobby, cache.matchLobbyTTL)
}

// ClearExpired 우선순위 큐를 사용하여 효율적으로 만료된 항목을 정리합니다
func (cache *APICache) ClearExpired() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	now := time.Now()
	startTime := time.Now()
	cleaned := 0

	// 시간 제한과 배치 크기 제한으로 정리
	for cleaned < cache.cleanupBatchSize && time.Since(startTime) < cache.maxCleanupDuration {
		if cache.expirationQueue.Len() == 0 {
			break
		}

		// 가장 빨리 만료되는 항목 확인
		entry := (*cache.expirationQueue)[0]

		// 무효화된 항목이거나 아직 만료되지 않은 경우
		if entry.ExpiresAt.IsZero() || now.Before(entry.ExpiresAt) {
			if entry.ExpiresAt.IsZero() {
				// 무효화된 항목은 제거 (인덱스는 새 항목을 가리킬 수 있으므로 확인 후 삭제)
				heap.Pop(cache.expirationQueue)
				if cache.keyToEntry[indexKey(entry.CacheType, entry.Key)] == entry {
					delete(cache.keyToEntry, indexKey(entry.CacheType, entry.Key))
				}
				cleaned++
			} else {
				// 아직 만료되지 않았으므로 정리 중단
				break
			}
			continue
		}

		// 만료된 항목 제거
		heap.Pop(cache.expirationQueue)
		if cache.keyToEntry[indexKey(entry.CacheType, entry.Key)] == entry {
			delete(cache.keyToEntry, indexKey(entry.CacheType, entry.Key))
		}

		// 해당 캐시 맵에서도 제거
		switch entry.CacheType {
		case "beatmap":
			delete(cache.beatmapCache, entry.Key)
		case "starRating":
			delete(cache.starRatingCache, entry.Key)
		case "matchLobby":
			delete(cache.matchLobbyCache, entry.Key)
		}

		cleaned++
	}

	cache.lastCleanup = now
	return cleaned
}

// GetStats 캐시 통계를 반환합니다
func (cache *APICache) GetStats() CacheStats {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	return CacheStats{
		BeatmapCount:    len(cache.beatmapCache),
		StarRatingCount: len(cache.starRatingCache),
		MatchLobbyCount: len(cache.matchLobbyCache),
	}
}

// Clear 모든 캐시를 삭제합니다
func (cache *APICache) Clear() {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.beatmapCache = make(map[string]*CacheItem)
	cache.starRatingCache = make(map[string]*CacheItem)
	cache.matchLobbyCache = make(map[string]*CacheItem)

	// 우선순위 큐와 인덱스도 초기화
	cache.expirationQueue = &ExpirationQueue{}
	heap.Init(cache.expirationQueue)
	cache.keyToEntry = make(map[string]*ExpirationEntry)
}

// StartCleanupWorker 캐시 정리 워커를 시작합니다
func (cache *APICache) StartCleanupWorker(interval time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cache.ClearExpired()
			case <-ctx.Done():
				return
			}
		}
	}()

	return cancel
}

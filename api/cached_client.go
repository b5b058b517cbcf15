package api

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/tournabay/seedbot/cache"
	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/utils"
)

// CachedOsuClient 캐시 기능을 포함한 osu! API 클라이언트입니다
type CachedOsuClient struct {
	client        *OsuClient
	cache         *cache.APICache
	cleanupCancel context.CancelFunc

	// 성능 메트릭
	cacheHits   int64
	cacheMisses int64
	totalCalls  int64
}

// NewCachedOsuClient 새로운 CachedOsuClient 인스턴스를 생성합니다
func NewCachedOsuClient(apiKey string) *CachedOsuClient {
	utils.Info("Creating cached osu! API client")

	apiCache := cache.NewAPICache()

	client := &CachedOsuClient{
		client: NewOsuClient(apiKey),
		cache:  apiCache,
	}

	// 캐시 정리 워커 시작
	client.cleanupCancel = apiCache.StartCleanupWorker(constants.CacheCleanupInterval)
	return client
}

// Close 캐시 정리 워커를 중지시킵니다
func (cachedClient *CachedOsuClient) Close() {
	if cachedClient.cleanupCancel != nil {
		cachedClient.cleanupCancel()
		utils.Info("Cache cleanup worker stopped.")
	}
}

// starRatingKey (비트맵, 모드 비트) 조합의 캐시 키를 생성합니다
func starRatingKey(beatmapID, modifierBits int) string {
	return strconv.Itoa(beatmapID) + ":" + strconv.Itoa(modifierBits)
}

// GetBeatmap 캐시를 통해 비트맵 정보를 조회합니다
func (cachedClient *CachedOsuClient) GetBeatmap(ctx context.Context, beatmapID int) (*BeatmapInfo, error) {
	atomic.AddInt64(&cachedClient.totalCalls, 1)
	key := strconv.Itoa(beatmapID)

	// 캐시에서 먼저 조회
	if cachedData, found := cachedClient.cache.GetBeatmap(key); found {
		atomic.AddInt64(&cachedClient.cacheHits, 1)
		utils.Debug("Cache hit for beatmap: %d", beatmapID)
		return cachedData.(*BeatmapInfo), nil
	}

	// 캐시 미스 - API 호출
	atomic.AddInt64(&cachedClient.cacheMisses, 1)
	utils.Debug("Cache miss for beatmap: %d, calling API", beatmapID)

	beatmap, err := cachedClient.client.GetBeatmap(ctx, beatmapID)
	if err != nil {
		return nil, err
	}

	// 성공한 응답만 캐시에 저장 (실패는 캐시하지 않음)
	cachedClient.cache.SetBeatmap(key, beatmap)

	return beatmap, nil
}

// GetStarRating 캐시를 통해 모드별 성급을 조회합니다
func (cachedClient *CachedOsuClient) GetStarRating(ctx context.Context, beatmapID int, modifierBits int) (float64, error) {
	atomic.AddInt64(&cachedClient.totalCalls, 1)
	key := starRatingKey(beatmapID, modifierBits)

	// 캐시에서 먼저 조회
	if cachedData, found := cachedClient.cache.GetStarRating(key); found {
		atomic.AddInt64(&cachedClient.cacheHits, 1)
		utils.Debug("Cache hit for star rating: %s", key)
		return cachedData.(float64), nil
	}

	// 캐시 미스 - API 호출
	atomic.AddInt64(&cachedClient.cacheMisses, 1)
	utils.Debug("Cache miss for star rating: %s, calling API", key)

	starRating, err := cachedClient.client.GetStarRating(ctx, beatmapID, modifierBits)
	if err != nil {
		return 0, err
	}

	cachedClient.cache.SetStarRating(key, starRating)

	return starRating, nil
}

// GetMatchLobby 캐시를 통해 매치 로비를 조회합니다.
// 로비 기록은 진행 중 변할 수 있으므로 TTL이 짧습니다.
func (cachedClient *CachedOsuClient) GetMatchLobby(ctx context.Context, lobbyID string) (*MatchLobby, error) {
	atomic.AddInt64(&cachedClient.totalCalls, 1)

	if cachedData, found := cachedClient.cache.GetMatchLobby(lobbyID); found {
		atomic.AddInt64(&cachedClient.cacheHits, 1)
		utils.Debug("Cache hit for match lobby: %s", lobbyID)
		return cachedData.(*MatchLobby), nil
	}

	atomic.AddInt64(&cachedClient.cacheMisses, 1)
	utils.Debug("Cache miss for match lobby: %s, calling API", lobbyID)

	lobby, err := cachedClient.client.GetMatchLobby(ctx, lobbyID)
	if err != nil {
		return nil, err
	}

	cachedClient.cache.SetMatchLobby(lobbyID, lobby)

	return lobby, nil
}

// GetCacheStats 캐시 통계를 반환합니다
func (cachedClient *CachedOsuClient) GetCacheStats() CacheMetrics {
	cacheStats := cachedClient.cache.GetStats()

	totalCalls := atomic.LoadInt64(&cachedClient.totalCalls)
	hits := atomic.LoadInt64(&cachedClient.cacheHits)
	misses := atomic.LoadInt64(&cachedClient.cacheMisses)

	var hitRate float64
	if totalCalls > 0 {
		hitRate = float64(hits) / float64(totalCalls) * 100
	}

	return CacheMetrics{
		TotalCalls:       totalCalls,
		CacheHits:        hits,
		CacheMisses:      misses,
		HitRate:          hitRate,
		BeatmapsCached:   cacheStats.BeatmapCount,
		StarRatingCached: cacheStats.StarRatingCount,
		LobbiesCached:    cacheStats.MatchLobbyCount,
	}
}

// CacheMetrics 캐시 성능 메트릭을 나타냅니다
type CacheMetrics struct {
	TotalCalls       int64
	CacheHits        int64
	CacheMisses      int64
	HitRate          float64
	BeatmapsCached   int
	StarRatingCached int
	LobbiesCached    int
}

// String CacheMetrics의 문자열 표현을 반환합니다
func (metrics CacheMetrics) String() string {
	return fmt.Sprintf("API Cache Stats: Calls=%d, Hits=%d, Misses=%d, Hit Rate=%.2f%%, Cached Items: Beatmaps=%d, StarRatings=%d, Lobbies=%d",
		metrics.TotalCalls, metrics.CacheHits, metrics.CacheMisses, metrics.HitRate,
		metrics.BeatmapsCached, metrics.StarRatingCached, metrics.LobbiesCached)
}

// ClearCache 모든 캐시를 삭제합니다
func (cachedClient *CachedOsuClient) ClearCache() {
	cachedClient.cache.Clear()
	atomic.StoreInt64(&cachedClient.cacheHits, 0)
	atomic.StoreInt64(&cachedClient.cacheMisses, 0)
	atomic.StoreInt64(&cachedClient.totalCalls, 0)
	utils.Info("API cache cleared")
}

// WarmupMappool 맵풀의 비트맵/성급 데이터를 미리 캐시에 로드합니다
func (cachedClient *CachedOsuClient) WarmupMappool(beatmapIDs []int, modifierBits []int) error {
	utils.Info("Starting cache warmup for %d beatmaps", len(beatmapIDs))

	for _, beatmapID := range beatmapIDs {
		// 이미 캐시에 있다면 스킵
		if _, found := cachedClient.cache.GetBeatmap(strconv.Itoa(beatmapID)); found {
			continue
		}

		// 백그라운드에서 데이터 로드
		go func(id int) {
			ctx := context.Background()
			if _, err := cachedClient.GetBeatmap(ctx, id); err != nil {
				utils.Warn("Cache warmup failed for beatmap %d: %v", id, err)
			}
			for _, bits := range modifierBits {
				if _, err := cachedClient.GetStarRating(ctx, id, bits); err != nil {
					utils.Warn("Cache warmup failed for star rating %d (mods=%d): %v", id, bits, err)
				}
			}
		}(beatmapID)
	}

	utils.Info("Cache warmup initiated")
	return nil
}

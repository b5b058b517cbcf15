package interfaces

import (
	"context"
	"time"

	"github.com/tournabay/seedbot/cache"
)

// CacheInterface 캐시 인터페이스를 정의합니다
type CacheInterface interface {
	// 비트맵 캐시
	GetBeatmap(key string) (interface{}, bool)
	SetBeatmap(key string, beatmap interface{})

	// 성급 캐시
	GetStarRating(key string) (interface{}, bool)
	SetStarRating(key string, starRating interface{})

	// 매치 로비 캐시
	GetMatchLobby(key string) (interface{}, bool)
	SetMatchLobby(key string, lobby interface{})

	// 통계 및 관리
	GetStats() cache.CacheStats
	Clear()
}

// CleanupWorkerInterface 정리 워커 인터페이스
type CleanupWorkerInterface interface {
	StartCleanupWorker(interval time.Duration) context.CancelFunc
}

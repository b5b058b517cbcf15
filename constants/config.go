package constants

import "time"

// API 및 캐시 설정 상수
const (
	// 캐시 TTL 설정
	BeatmapCacheTTL      = 6 * time.Hour    // 비트맵 기본 정보 캐시 만료 시간
	StarRatingCacheTTL   = 6 * time.Hour    // 모드별 성급 캐시 만료 시간
	MatchLobbyCacheTTL   = 1 * time.Minute  // 매치 로비 캐시 만료 시간 (제출 직후 재조회 대비)
	CacheCleanupInterval = 5 * time.Minute  // 캐시 정리 간격

	// Discord API 재시도 설정
	MaxDiscordRetries = 3               // 최대 재시도 횟수
	BaseRetryDelay    = 1 * time.Second // 기본 재시도 지연 시간

	// 성능 및 메모리 관리
	DefaultSliceCapacity = 100 // 기본 슬라이스 용량
)

// 검증 규칙 상수
const (
	MinLobbyIDLength = 1           // 매치 로비 ID 최소 자릿수
	MaxLobbyIDLength = 12          // 매치 로비 ID 최대 자릿수
	MinNameLength    = 1           // 이름 최소 길이
	MaxNameLength    = 50          // 이름 최대 길이
	MaxUnitsPerRoom  = 16          // 한 방의 최대 참가 유닛 수
	MaxMappoolSize   = 20          // 예선 맵풀 최대 크기
)

package constants

import "time"

// API 관련 상수
const (
	OsuAPIBaseURL         = "https://osu.ppy.sh/api/v1"
	APITimeout            = 30 * time.Second
	MaxRetries            = 3
	RetryDelay            = 1 * time.Second
	APIRetryMultiplier    = 2
	MaxConcurrentRequests = 5
)

// 대회 정규화 기준
const (
	MetricScore    = "score"    // 점수 기준 정규화
	MetricAccuracy = "accuracy" // 정확도 기준 정규화
)

// 난이도 변환 계수
const (
	HardRockCSMultiplier   = 1.3 // HR 서클 크기 배율
	HardRockStatMultiplier = 1.4 // HR AR/OD/HP 배율
	EasyStatMultiplier     = 0.5 // EZ 전체 배율
	DoubleTimeLengthRatio  = 0.75
	HalfTimeLengthRatio    = 1.5
	DoubleTimeClockRate    = 1.5 // DT/HT 타이밍 스케일 계수

	MaxDifficultyValue = 10.0
	MinCircleSize      = 2.0
)

// AR/OD 타이밍 보간 구간점 (난이도 값 0 / 5 / 10 에 대응하는 ms)
const (
	ARMsMax = 1800.0
	ARMsMid = 1200.0
	ARMsMin = 450.0

	ODMsMax = 80.0
	ODMsMid = 50.0
	ODMsMin = 20.0
)

// 스케줄러 관련 상수
const (
	DailyStandingsHour   = 9
	DailyStandingsMinute = 0
	SchedulerInterval    = 24 * time.Hour
)

// Discord 관련 상수
const (
	CommandPrefix    = "!"
	BotStatusMessage = "!help | 예선 점수 집계"
)

// 이모지 상수
const (
	EmojiSuccess  = "✅"
	EmojiError    = "❌"
	EmojiInfo     = "ℹ️"
	EmojiWarning  = "⚠️"
	EmojiTrophy   = "🏆"
	EmojiUser     = "👤"
	EmojiTarget   = "🎯"
	EmojiMedal    = "🏅"
	EmojiStats    = "📊"
	EmojiCalendar = "📅"
	EmojiClock    = "⏰"
	EmojiMap      = "🗺️"
	EmojiPeople   = "👥"
)

// 날짜 형식
const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "15:04:05"
	DateTimeFormat = "2006-01-02 15:04:05"
)

// 로그 관련 상수
const (
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// 문자열 크기 제한
const (
	TruncateIndicator    = "..."
	StandingsRankWidth   = 4
	StandingsNameWidth   = 16
	StandingsPointsWidth = 7
	StandingsSeparator   = "──────────────────────────────"
)

// 임베드 색상
const (
	ColorStandings = 0xE91E63 // osu! 핑크
	ColorNeutral   = 0x95A5A6
)

// 메시지 템플릿
const (
	CommandPrefixLength = 1 // "!" 길이
)

// 환경 변수 키
const (
	EnvDiscordToken = "DISCORD_BOT_TOKEN"
	EnvChannelID    = "DISCORD_CHANNEL_ID"
	EnvOsuAPIKey    = "OSU_API_KEY"
	EnvLogLevel     = "LOG_LEVEL"
	EnvDebugMode    = "DEBUG_MODE"
)

// 텔레메트리 관련 상수
const (
	TelemetryNamespace       = "seedbot"
	TelemetryJobName         = "qualifier-bot"
	TelemetryTaskID          = "main"
	TelemetryCredentialsFile = "seedbot-gcloud-credentials.json"
	TelemetryFilePermissions = 0600
)

// 시스템 컴포넌트 이름
const (
	SystemComponentName = "seedbot"
)

// Google Sheets 관련 상수
const (
	StandingsSheetRange = "A1"
	StandingsSheetTitle = "Qualifier Standings"
)

// 환경 변수 키 (결과 내보내기용)
const (
	EnvStandingsSpreadsheetID = "STANDINGS_SPREADSHEET_ID"
)

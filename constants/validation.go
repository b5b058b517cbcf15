package constants

// 검증 관련 상수
const (
	// 이름 검증
	MaxUsernameDisplayWidth = 40 // 유닛 이름 최대 표시 너비
	MaxCharacterRepeats     = 5  // 허용되는 최대 문자 반복 횟수

	// HTTP 관련
	HTTPServerErrorThreshold = 500 // 서버 오류 임계값 (5xx)

	// 제어 문자 관련
	ControlCharTab = 9  // 탭 문자
	ControlCharLF  = 10 // 줄 바꿈
	ControlCharCR  = 13 // 캐리지 리턴
	ControlCharMin = 32 // 허용되는 최소 제어 문자

	// 점수 검증
	MaxLobbyScore = 2147483647 // 로비 점수 상한 (32비트 정수)
	MaxAccuracy   = 100.0      // 정확도 상한 (%)
)

// 입력값에 허용하지 않는 패턴 목록
var SecurityMaliciousPatterns = []string{
	"union", "select", "insert", "update", "delete", "drop", "create", "alter",
	"script", "javascript:", "<script", "onerror", "onload",
}

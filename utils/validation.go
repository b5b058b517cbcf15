package utils

import (
	"strconv"
	"strings"

	"github.com/tournabay/seedbot/constants"
)

// IsValidLobbyID 멀티 로비 ID 형식을 검증합니다 (숫자만 허용)
func IsValidLobbyID(id string) bool {
	if len(id) < constants.MinLobbyIDLength || len(id) > constants.MaxLobbyIDLength {
		return false
	}

	value, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false
	}

	return value > 0
}

// IsValidBeatmapID 비트맵 ID 형식을 검증합니다
func IsValidBeatmapID(id string) bool {
	value, err := strconv.Atoi(id)
	if err != nil {
		return false
	}
	return value > 0
}

// IsValidUnitName 유닛(팀/플레이어) 이름을 검증합니다
func IsValidUnitName(name string) bool {
	// 길이 검증
	if len(name) < constants.MinNameLength || len(name) > constants.MaxNameLength {
		return false
	}

	// 유니코드 표시 폭 검증 (한글이 2칸 차지하므로 실제 표시 폭 고려)
	displayWidth := GetDisplayWidth(name)
	if displayWidth > constants.MaxUsernameDisplayWidth {
		return false
	}

	// 빈 문자열이나 공백만 있는 경우 방지
	trimmed := strings.TrimSpace(name)
	if len(trimmed) == 0 {
		return false
	}

	// 악의적인 패턴 방지
	if ContainsMaliciousPattern(name) {
		return false
	}

	return true
}

// IsValidScore 로비 점수 범위를 검증합니다
func IsValidScore(score float64) bool {
	return score >= 0 && score <= constants.MaxLobbyScore
}

// IsValidAccuracy 정확도 범위를 검증합니다 (0~100%)
func IsValidAccuracy(accuracy float64) bool {
	return accuracy >= 0 && accuracy <= constants.MaxAccuracy
}

// ContainsMaliciousPattern 악의적인 패턴을 감지합니다
func ContainsMaliciousPattern(input string) bool {
	lowerInput := strings.ToLower(input)
	for _, pattern := range constants.SecurityMaliciousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return true
		}
	}

	// 과도한 반복 문자 방지
	if hasExcessiveRepeats(input, constants.MaxCharacterRepeats) {
		return true
	}

	// 제어 문자 방지
	for _, char := range input {
		if char < constants.ControlCharMin && char != constants.ControlCharTab && char != constants.ControlCharLF && char != constants.ControlCharCR {
			return true
		}
	}

	return false
}

// hasExcessiveRepeats 과도한 문자 반복을 감지합니다
func hasExcessiveRepeats(input string, maxRepeats int) bool {
	if len(input) == 0 {
		return false
	}

	count := 1
	prev := rune(0)

	for _, char := range input {
		if char == prev {
			count++
			if count > maxRepeats {
				return true
			}
		} else {
			count = 1
			prev = char
		}
	}

	return false
}

// TruncateString 문자열을 최대 길이로 자릅니다
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= len(constants.TruncateIndicator) {
		return constants.TruncateIndicator[:maxLen]
	}
	return s[:maxLen-len(constants.TruncateIndicator)] + constants.TruncateIndicator
}

// GetDisplayWidth 한글과 영어 문자 폭을 고려한 문자열 길이 계산
func GetDisplayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r >= 0x1100 && r <= 0x11FF || // 한글 자모
			r >= 0x3130 && r <= 0x318F || // 한글 호환 자모
			r >= 0xAC00 && r <= 0xD7AF || // 한글 완성형
			r >= 0x4E00 && r <= 0x9FFF || // CJK 한자
			r >= 0xFF01 && r <= 0xFF5E { // 전각 인쇄 가능 문자
			width += 2 // 전각 문자는 2칸
		} else {
			width += 1 // 반각 문자는 1칸
		}
	}
	return width
}

// SanitizeString Discord 메시지에서 문제가 될 수 있는 특수문자를 제거합니다
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "`", "'")          // 코드 블록 방지
	s = strings.ReplaceAll(s, "<@", "(at)")      // 사용자 멘션 방지 (@ 보다 먼저)
	s = strings.ReplaceAll(s, "<#", "(channel)") // 채널 멘션 방지
	s = strings.ReplaceAll(s, "<:", "(emoji)")   // 커스텀 이모지 방지
	s = strings.ReplaceAll(s, "@", "(at)")       // 일반 @ 멘션 방지
	s = strings.ReplaceAll(s, "||", "")          // 스포일러 태그 방지
	s = strings.ReplaceAll(s, "**", "")          // 볼드 마크다운 방지
	s = strings.ReplaceAll(s, "__", "")          // 언더라인 마크다운 방지
	s = strings.ReplaceAll(s, "~~", "")          // 취소선 마크다운 방지
	s = strings.ReplaceAll(s, "*", "")           // 이탤릭 마크다운 방지

	// 제어 문자 제거
	var cleaned strings.Builder
	for _, r := range s {
		if r >= 32 || r == '\n' || r == '\t' { // 출력 가능한 문자만 유지
			cleaned.WriteRune(r)
		}
	}

	return strings.TrimSpace(cleaned.String())
}

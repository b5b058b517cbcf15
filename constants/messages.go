package constants

// 사용자 인터페이스 메시지
const (
	// 제출 관련
	MsgSubmitUsage      = "사용법: `!제출 <로비ID> <예선방ID>`"
	MsgSubmitSuccess    = "**예선 결과 반영 완료**\n🎯 로비: %s\n📊 반영된 엔트리: %d개"
	MsgSubmitInvalidID  = "유효하지 않은 로비 ID 형식입니다."
	MsgSubmitNoEntries  = "반영할 수 있는 점수가 없습니다. (맵풀 외 비트맵/로스터 외 플레이어는 무시됩니다)"

	// 순위표 관련
	MsgStandingsTitle          = "🏆 %s 예선 순위"
	MsgStandingsDMOnly         = "❌ 순위표는 서버에서만 확인할 수 있습니다."
	MsgStandingsNoResults      = "아직 제출된 예선 결과가 없습니다."
	MsgStandingsNoTournament   = "활성화된 토너먼트가 없습니다."

	// 엔트리 수정/삭제 관련
	MsgEditUsage      = "사용법: `!수정 <엔트리ID> <점수> <정확도>`"
	MsgEditSuccess    = "**엔트리 수정 완료**\n🎯 엔트리: %s\n📊 점수: %.0f / 정확도: %.2f%%"
	MsgRemoveUsage    = "사용법: `!삭제 <유닛ID>`"
	MsgRemoveSuccess  = "**예선 결과 삭제 완료**\n👥 유닛: %s"

	// 맵풀 관련
	MsgMappoolUsage   = "사용법: `!맵 <비트맵ID> <모드>` (모드: NM/HR/DT/EZ/HT)"
	MsgMappoolUnknown = "지원하지 않는 모드입니다: %s"
	MsgMappoolResult  = "**난이도 변환 결과** (%s)\n🗺️ %s\nAR %.2f / CS %.2f / OD %.2f / HP %.2f\nBPM %d / 길이 %d초 / ⭐ %.2f"

	// 방 준비 관련
	MsgPrepareUsage   = "사용법: `!준비 <예선방ID>`"
	MsgPrepareNoRoom  = "예선 방을 찾을 수 없습니다: %s"
	MsgPrepareSuccess = "**맵풀 준비 완료**\n🗺️ 방: %s\n📊 계산된 변환: %d개"

	// 내보내기 관련
	MsgExportSuccess = "순위표를 스프레드시트로 내보냈습니다."
	MsgExportNoSheet = "STANDINGS_SPREADSHEET_ID가 설정되지 않았습니다."

	// 권한 관련
	MsgInsufficientPermissions = "❌ 관리자 권한이 필요합니다."

	// 기본 응답
	MsgPong = "Pong! 🏓"
)

// 도움말 메시지
const HelpMessage = `🤖 **예선 시딩 봇 명령어**

**심판 명령어:**
• ` + "`!제출 <로비ID> <예선방ID>`" + ` - 멀티 로비 결과를 예선 점수로 반영
• ` + "`!순위`" + ` - 현재 예선 순위 확인
• ` + "`!수정 <엔트리ID> <점수> <정확도>`" + ` - 엔트리 수동 수정
• ` + "`!삭제 <유닛ID>`" + ` - 유닛의 예선 결과 전체 삭제
• ` + "`!맵 <비트맵ID> <모드>`" + ` - 모드 적용 난이도 확인
• ` + "`!준비 <예선방ID>`" + ` - 방 맵풀의 모드별 변환 미리 계산
• ` + "`!내보내기`" + ` - 순위표를 Google Sheets로 내보내기

**기타:**
• ` + "`!캐시`" + ` - API 캐시 통계
• ` + "`!ping`" + ` - 봇 응답 확인
• ` + "`!도움말`" + ` - 도움말 표시`

// 에러 코드와 메시지 매핑
var ErrorMessages = map[string]string{
	"SUBMIT_INVALID_PARAMS":    MsgSubmitUsage,
	"EDIT_INVALID_PARAMS":      MsgEditUsage,
	"REMOVE_INVALID_PARAMS":    MsgRemoveUsage,
	"TOURNAMENT_NOT_FOUND":     "활성화된 토너먼트가 없습니다.",
	"ROOM_NOT_FOUND":           "예선 방을 찾을 수 없습니다.",
	"ENTRY_NOT_FOUND":          "엔트리를 찾을 수 없습니다.",
	"UNIT_NOT_FOUND":           "유닛을 찾을 수 없습니다.",
	"UPSTREAM_UNAVAILABLE":     "osu! API에 연결할 수 없습니다. 잠시 후 다시 시도해주세요.",
	"TOURNAMENT_FORMAT_MISMATCH": "토너먼트 형식이 일치하지 않습니다.",
}

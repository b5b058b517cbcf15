package bot

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tournabay/seedbot/api"
	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/errors"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/utils"
)

type CommandHandler struct {
	deps *CommandDependencies
}

func NewCommandHandler(deps *CommandDependencies) *CommandHandler {
	return &CommandHandler{
		deps: deps,
	}
}

// HandleMessage Discord 메시지를 처리합니다
func (ch *CommandHandler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ch.shouldIgnoreMessage(s, m) {
		return
	}

	command, params, isDM := ch.parseMessage(m)
	if command == "" {
		return
	}

	ch.routeCommand(s, m, command, params, isDM)
}

// shouldIgnoreMessage 메시지를 무시해야 하는지 확인합니다
func (ch *CommandHandler) shouldIgnoreMessage(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	// 봇 자신의 메시지는 무시
	if m.Author.ID == s.State.User.ID {
		return true
	}

	// DM 디버깅 로그
	if m.GuildID == "" {
		utils.Debug("DM received from %s", m.Author.Username)
	}

	return false
}

// parseMessage 메시지를 파싱하여 명령어와 매개변수를 추출합니다
func (ch *CommandHandler) parseMessage(m *discordgo.MessageCreate) (command string, params []string, isDM bool) {
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, constants.CommandPrefix) {
		return "", nil, false
	}

	args := strings.Fields(content)
	if len(args) == 0 {
		return "", nil, false
	}

	command = args[0][constants.CommandPrefixLength:]
	params = args[1:]
	isDM = m.GuildID == ""

	return command, params, isDM
}

// routeCommand 명령어를 해당 핸들러로 라우팅합니다
func (ch *CommandHandler) routeCommand(s *discordgo.Session, m *discordgo.MessageCreate, command string, params []string, isDM bool) {
	// 명령어 사용 텔레메트리 전송
	isAdmin := ch.isAdmin(s, m)
	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendCommandMetric(command, isAdmin)
	}

	switch command {
	case "help", "도움말":
		ch.handleHelp(s, m)
	case "submit", "제출":
		ch.handleSubmit(s, m, params)
	case "standings", "순위":
		ch.handleStandingsCommand(s, m, isDM)
	case "edit", "수정":
		ch.handleEditEntry(s, m, params)
	case "removeunit", "삭제":
		ch.handleRemoveUnit(s, m, params)
	case "map", "맵":
		ch.handleMappool(s, m, params)
	case "prepare", "준비":
		ch.handlePrepareRoom(s, m, params)
	case "export", "내보내기":
		ch.handleExport(s, m)
	case "cache", "캐시":
		ch.handleCacheStats(s, m)
	case "ping":
		ch.handlePing(s, m)
	}
}

// handlePing ping 명령어를 처리합니다
func (ch *CommandHandler) handlePing(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgPong); err != nil {
		utils.Error("Failed to send ping response: %v", err)
	}
}

func (ch *CommandHandler) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := s.ChannelMessageSend(m.ChannelID, constants.HelpMessage); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send help message: %v", err)
	}
}

// handleSubmit 멀티 로비 결과를 예선 점수로 반영합니다
func (ch *CommandHandler) handleSubmit(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	// 1. 관리자 권한 확인
	if !ch.isAdmin(s, m) {
		errorHandlers.Validation.HandleInsufficientPermissions()
		return
	}

	// 2. 매개변수 검증
	if len(params) < 2 {
		errorHandlers.Validation.HandleInvalidParams("SUBMIT_INVALID_PARAMS",
			"Invalid submit parameters",
			constants.MsgSubmitUsage)
		return
	}

	lobbyID, roomID := params[0], params[1]
	if !utils.IsValidLobbyID(lobbyID) {
		errorHandlers.Validation.HandleInvalidLobbyID(lobbyID)
		return
	}

	// 3. 활성 토너먼트 확인
	tournament := ch.deps.Storage.GetActiveTournament()
	if tournament == nil {
		errorHandlers.Validation.HandleInvalidParams("NO_ACTIVE_TOURNAMENT",
			"No active tournament",
			constants.MsgStandingsNoTournament)
		return
	}

	// 4. 제출 처리 및 성능 측정
	startTime := time.Now()
	entries, err := ch.deps.Engine.SubmitLobbyResults(context.Background(), lobbyID, roomID, tournament.ID)
	duration := time.Since(startTime)

	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendPerformanceMetric("lobby_submission", duration, err == nil)
	}

	if err != nil {
		utils.Error("Failed to submit lobby %s: %v", lobbyID, err)
		errorHandlers.System.HandleSubmissionFailed(err)
		return
	}

	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendSubmissionMetric("lobby_submitted", len(entries))
	}

	response := fmt.Sprintf(constants.MsgSubmitSuccess, lobbyID, len(entries))
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send submit response: %v", err)
	}
}

// handleStandingsCommand 순위 명령어를 처리합니다 (DM 체크 포함)
func (ch *CommandHandler) handleStandingsCommand(s *discordgo.Session, m *discordgo.MessageCreate, isDM bool) {
	if isDM {
		if _, err := s.ChannelMessageSend(m.ChannelID, constants.MsgStandingsDMOnly); err != nil {
			utils.Error("Failed to send DM response: %v", err)
		}
		return
	}
	ch.handleStandings(s, m)
}

func (ch *CommandHandler) handleStandings(s *discordgo.Session, m *discordgo.MessageCreate) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	// 순위표 생성 성능 측정
	startTime := time.Now()
	embed, err := ch.deps.StandingsManager.GenerateStandings(context.Background())
	duration := time.Since(startTime)

	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendPerformanceMetric("standings_generation", duration, err == nil)
	}

	if err != nil {
		utils.Error("Failed to generate standings: %v", err)
		errorHandlers.System.HandleStandingsFailed(err)
		return
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send standings embed: %v", err)
	}
}

// handleEditEntry 엔트리 점수/정확도를 수동으로 수정합니다
func (ch *CommandHandler) handleEditEntry(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if !ch.isAdmin(s, m) {
		errorHandlers.Validation.HandleInsufficientPermissions()
		return
	}

	if len(params) < 3 {
		errorHandlers.Validation.HandleInvalidParams("EDIT_INVALID_PARAMS",
			"Invalid edit parameters",
			constants.MsgEditUsage)
		return
	}

	entryID := params[0]
	score, err := strconv.ParseFloat(params[1], 64)
	if err != nil {
		errorHandlers.Validation.HandleInvalidParams("EDIT_INVALID_SCORE",
			"Score is not a number",
			constants.MsgEditUsage)
		return
	}
	accuracy, err := strconv.ParseFloat(params[2], 64)
	if err != nil {
		errorHandlers.Validation.HandleInvalidParams("EDIT_INVALID_ACCURACY",
			"Accuracy is not a number",
			constants.MsgEditUsage)
		return
	}

	result, err := ch.deps.Engine.UpdateEntry(context.Background(), entryID, score, accuracy)
	if err != nil {
		utils.Error("Failed to update entry %s: %v", entryID, err)
		errorHandlers.System.HandleSubmissionFailed(err)
		return
	}

	utils.Info("Entry %s updated by %s (unit: %s)", entryID, m.Author.Username, result.UnitID)
	response := fmt.Sprintf(constants.MsgEditSuccess, entryID, score, accuracy)
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send edit response: %v", err)
	}
}

// handleRemoveUnit 유닛의 예선 결과를 전부 삭제합니다
func (ch *CommandHandler) handleRemoveUnit(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if !ch.isAdmin(s, m) {
		errorHandlers.Validation.HandleInsufficientPermissions()
		return
	}

	if len(params) < 1 {
		errorHandlers.Validation.HandleInvalidParams("REMOVE_INVALID_PARAMS",
			"Invalid remove parameters",
			constants.MsgRemoveUsage)
		return
	}

	unitID := params[0]
	tournament := ch.deps.Storage.GetActiveTournament()
	if tournament == nil {
		errorHandlers.Validation.HandleInvalidParams("NO_ACTIVE_TOURNAMENT",
			"No active tournament",
			constants.MsgStandingsNoTournament)
		return
	}

	remaining, err := ch.deps.Engine.DeleteResultsForUnit(context.Background(), unitID, tournament.ID)
	if err != nil {
		utils.Error("Failed to delete results for unit %s: %v", unitID, err)
		errorHandlers.System.HandleSubmissionFailed(err)
		return
	}

	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendSubmissionMetric("unit_removed", len(remaining))
	}

	response := fmt.Sprintf(constants.MsgRemoveSuccess, tournament.UnitName(unitID))
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send removal response: %v", err)
	}
}

// handleMappool 비트맵의 모드 적용 난이도를 조회합니다
func (ch *CommandHandler) handleMappool(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if len(params) < 2 {
		errorHandlers.Validation.HandleInvalidParams("MAPPOOL_INVALID_PARAMS",
			"Invalid mappool parameters",
			constants.MsgMappoolUsage)
		return
	}

	if !utils.IsValidBeatmapID(params[0]) {
		errorHandlers.Validation.HandleInvalidParams("MAPPOOL_INVALID_BEATMAP_ID",
			"Invalid beatmap ID format",
			constants.MsgMappoolUsage)
		return
	}
	beatmapID, _ := strconv.Atoi(params[0])

	modifierManager := models.GetModifierManager()
	modifier, ok := modifierManager.ParseModifier(params[1])
	if !ok || !modifierManager.IsNumeric(modifier) {
		errorHandlers.Validation.HandleInvalidParams("MAPPOOL_UNKNOWN_MODIFIER",
			"Unknown or non-numeric modifier",
			fmt.Sprintf(constants.MsgMappoolUnknown, params[1]))
		return
	}

	beatmap, adjusted, err := ch.deps.MappoolManager.GetAdjusted(context.Background(), beatmapID, modifier)
	if err != nil {
		utils.Error("Failed to adjust beatmap %d (%s): %v", beatmapID, modifier, err)
		errorHandlers.System.HandleSubmissionFailed(err)
		return
	}

	response := fmt.Sprintf(constants.MsgMappoolResult,
		modifierManager.GetName(modifier),
		beatmap.DisplayName(),
		adjusted.ApproachRate, adjusted.CircleSize, adjusted.OverallDifficulty, adjusted.HealthDrain,
		adjusted.BPM, adjusted.LengthSeconds, adjusted.StarRating)
	if err := errors.SendDiscordInfo(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send mappool response: %v", err)
	}
}

// handlePrepareRoom 방 맵풀 전체의 모드별 변환을 미리 계산합니다
func (ch *CommandHandler) handlePrepareRoom(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if !ch.isAdmin(s, m) {
		errorHandlers.Validation.HandleInsufficientPermissions()
		return
	}

	if len(params) < 1 {
		errorHandlers.Validation.HandleInvalidParams("PREPARE_INVALID_PARAMS",
			"Invalid prepare parameters",
			constants.MsgPrepareUsage)
		return
	}

	roomID := params[0]
	room := ch.deps.Storage.GetRoom(roomID)
	if room == nil {
		errorHandlers.Validation.HandleInvalidParams("PREPARE_ROOM_NOT_FOUND",
			"Qualifier room not found",
			fmt.Sprintf(constants.MsgPrepareNoRoom, roomID))
		return
	}

	startTime := time.Now()
	prepared, err := ch.deps.MappoolManager.PrepareRoom(context.Background(), room)
	duration := time.Since(startTime)

	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendPerformanceMetric("room_preparation", duration, err == nil)
	}

	if err != nil {
		utils.Error("Failed to prepare room %s: %v", roomID, err)
		errorHandlers.System.HandleSubmissionFailed(err)
		return
	}

	response := fmt.Sprintf(constants.MsgPrepareSuccess, roomID, prepared)
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send prepare response: %v", err)
	}
}

// handleExport 순위표를 Google Sheets로 내보냅니다
func (ch *CommandHandler) handleExport(s *discordgo.Session, m *discordgo.MessageCreate) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if !ch.isAdmin(s, m) {
		errorHandlers.Validation.HandleInsufficientPermissions()
		return
	}

	spreadsheetID := os.Getenv(constants.EnvStandingsSpreadsheetID)
	if ch.deps.SheetsClient == nil || spreadsheetID == "" {
		if err := errors.SendDiscordWarning(s, m.ChannelID, constants.MsgExportNoSheet); err != nil {
			utils.Error("Failed to send export warning: %v", err)
		}
		return
	}

	tournament := ch.deps.Storage.GetActiveTournament()
	if tournament == nil {
		errorHandlers.Validation.HandleInvalidParams("NO_ACTIVE_TOURNAMENT",
			"No active tournament",
			constants.MsgStandingsNoTournament)
		return
	}

	rows, err := ch.deps.StandingsManager.CollectStandingsRows(context.Background(), tournament.ID)
	if err != nil {
		errorHandlers.System.HandleStandingsFailed(err)
		return
	}

	if err := ch.deps.SheetsClient.ExportStandings(spreadsheetID, tournament.Name, rows); err != nil {
		utils.Error("Failed to export standings: %v", err)
		errorHandlers.System.HandleSystemError("EXPORT_FAILED",
			"Failed to export standings to spreadsheet",
			"순위표 내보내기에 실패했습니다.", err)
		return
	}

	if err := errors.SendDiscordSuccess(s, m.ChannelID, constants.MsgExportSuccess); err != nil {
		utils.Error("Failed to send export response: %v", err)
	}
}

// handleCacheStats 캐시 통계를 조회합니다
func (ch *CommandHandler) handleCacheStats(s *discordgo.Session, m *discordgo.MessageCreate) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	// 관리자 권한 확인
	if !ch.isAdmin(s, m) {
		errorHandlers.Validation.HandleInsufficientPermissions()
		return
	}

	if cachedClient, ok := ch.deps.APIClient.(*api.CachedOsuClient); ok {
		stats := cachedClient.GetCacheStats()

		message := fmt.Sprintf("```\n📊 API Cache Statistics\n\n"+
			"Total API Calls: %d\n"+
			"Cache Hits: %d\n"+
			"Cache Misses: %d\n"+
			"Hit Rate: %.2f%%\n\n"+
			"Cached Items:\n"+
			"  - Beatmaps: %d\n"+
			"  - Star Ratings: %d\n"+
			"  - Lobbies: %d\n```",
			stats.TotalCalls, stats.CacheHits, stats.CacheMisses, stats.HitRate,
			stats.BeatmapsCached, stats.StarRatingCached, stats.LobbiesCached)

		if err := errors.SendDiscordInfo(s, m.ChannelID, message); err != nil {
			utils.Error("Failed to send cache stats response: %v", err)
		}
	} else {
		if err := errors.SendDiscordWarning(s, m.ChannelID, "캐시가 비활성화되어 있습니다."); err != nil {
			utils.Error("Failed to send cache disabled warning: %v", err)
		}
	}
}

// isAdmin 사용자가 서버 관리자 권한을 가지고 있는지 확인합니다
func (ch *CommandHandler) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	// DM에서는 관리자 권한 없음
	if m.GuildID == "" {
		return false
	}

	// 길드 정보 가져오기
	guild, err := s.State.Guild(m.GuildID)
	if err != nil || guild == nil {
		utils.Warn("Cannot get guild information: %v", err)
		return false
	}

	// 서버 소유자인지 확인
	if m.Author.ID == guild.OwnerID {
		return true
	}

	// 멤버 정보 가져오기
	member, err := s.GuildMember(m.GuildID, m.Author.ID)
	if err != nil || member == nil {
		utils.Warn("Cannot get member information for %s: %v", m.Author.Username, err)
		return false
	}

	// 멤버의 역할들을 확인
	for _, roleID := range member.Roles {
		role, err := s.State.Role(m.GuildID, roleID)
		if err != nil {
			utils.Warn("Cannot get role %s: %v", roleID, err)
			continue
		}

		// 관리자 권한(ADMINISTRATOR) 확인
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	utils.Debug("User %s has no admin permissions", m.Author.Username)
	return false
}

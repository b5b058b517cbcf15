package utils

import (
	"fmt"

	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/errors"

	"github.com/bwmarrin/discordgo"
)

// ValidationErrorHelper 검증 에러 처리를 위한 헬퍼
type ValidationErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// NewValidationErrorHelper ValidationErrorHelper 생성자
func NewValidationErrorHelper(session *discordgo.Session, channelID string) *ValidationErrorHelper {
	return &ValidationErrorHelper{
		session:   session,
		channelID: channelID,
	}
}

// HandleInvalidParams 잘못된 매개변수 에러 처리
func (v *ValidationErrorHelper) HandleInvalidParams(code, message, userMsg string) {
	err := errors.NewValidationError(code, message, userMsg)
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// HandleInsufficientPermissions 권한 부족 에러 처리
func (v *ValidationErrorHelper) HandleInsufficientPermissions() {
	err := errors.NewPermissionError("INSUFFICIENT_PERMISSIONS",
		"사용자가 필수 권한을 가지고 있지 않습니다",
		constants.MsgInsufficientPermissions)
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// HandleInvalidLobbyID 잘못된 로비 ID 에러 처리
func (v *ValidationErrorHelper) HandleInvalidLobbyID(lobbyID string) {
	err := errors.NewValidationError("SUBMIT_INVALID_LOBBY_ID",
		fmt.Sprintf("유효하지 않은 로비 ID: %s", lobbyID),
		constants.MsgSubmitInvalidID)
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// SystemErrorHelper 시스템 에러 처리를 위한 헬퍼
type SystemErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// NewSystemErrorHelper SystemErrorHelper 생성자
func NewSystemErrorHelper(session *discordgo.Session, channelID string) *SystemErrorHelper {
	return &SystemErrorHelper{
		session:   session,
		channelID: channelID,
	}
}

// HandleSystemError 시스템 에러 처리
func (s *SystemErrorHelper) HandleSystemError(code, message, userMsg string, err error) {
	botErr := errors.NewSystemError(code, message, err)
	botErr.UserMsg = userMsg
	errors.HandleDiscordError(s.session, s.channelID, botErr)
}

// HandleSubmissionFailed 제출 실패 에러 처리
func (s *SystemErrorHelper) HandleSubmissionFailed(err error) {
	// 이미 구조화된 오류면 그대로 전달하여 사용자 메시지를 보존
	if _, ok := err.(*errors.AppError); ok {
		errors.HandleDiscordError(s.session, s.channelID, err)
		return
	}
	botErr := errors.NewSystemError("SUBMISSION_FAILED",
		"예선 결과 반영에 실패했습니다", err)
	botErr.UserMsg = "예선 결과 반영에 실패했습니다."
	errors.HandleDiscordError(s.session, s.channelID, botErr)
}

// HandleStandingsFailed 순위표 생성 실패 에러 처리
func (s *SystemErrorHelper) HandleStandingsFailed(err error) {
	botErr := errors.NewSystemError("STANDINGS_GENERATION_FAILED",
		"순위표 생성에 실패했습니다", err)
	botErr.UserMsg = "순위표 생성에 실패했습니다."
	errors.HandleDiscordError(s.session, s.channelID, botErr)
}

// ErrorHandlerFactory 에러 헬퍼들을 묶어서 생성합니다
type ErrorHandlerFactory struct {
	Validation *ValidationErrorHelper
	System     *SystemErrorHelper
}

// NewErrorHandlerFactory 새로운 ErrorHandlerFactory 인스턴스를 생성합니다
func NewErrorHandlerFactory(session *discordgo.Session, channelID string) *ErrorHandlerFactory {
	return &ErrorHandlerFactory{
		Validation: NewValidationErrorHelper(session, channelID),
		System:     NewSystemErrorHelper(session, channelID),
	}
}

package interfaces

import (
	"context"

	"github.com/tournabay/seedbot/models"
)

// DifficultyAdjuster 모드 적용 난이도 변환을 위한 인터페이스입니다
type DifficultyAdjuster interface {
	// Adjust 기준 수치에 모드를 적용한 결과를 반환합니다.
	// 수치 변환 규칙이 없는 모드는 (nil, nil)을 반환합니다.
	Adjust(ctx context.Context, beatmapID int, baseline models.BaselineAttributes, modifier models.Modifier) (*models.AdjustedAttributes, error)
}

// QualificationEngine 예선 점수 집계/정규화를 위한 인터페이스입니다
type QualificationEngine interface {
	SubmitLobbyResults(ctx context.Context, lobbyID, roomID, tournamentID string) ([]models.QualificationEntry, error)
	GetRankedResults(ctx context.Context, tournamentID string) ([]models.QualificationResult, error)
	UpdateEntry(ctx context.Context, entryID string, newScore, newAccuracy float64) (*models.QualificationResult, error)
	DeleteResultsForUnit(ctx context.Context, unitID, tournamentID string) ([]models.QualificationResult, error)
}

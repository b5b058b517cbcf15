package interfaces

import (
	"github.com/tournabay/seedbot/models"
)

// StorageRepository 데이터 저장소 작업을 위한 인터페이스입니다
type StorageRepository interface {
	// 토너먼트 작업
	GetTournament(tournamentID string) *models.Tournament
	GetActiveTournament() *models.Tournament

	// 예선 방 작업
	GetRoom(roomID string) *models.QualifierRoom

	// 비트맵 작업
	GetBeatmap(beatmapID int) *models.Beatmap
	SaveBeatmap(beatmap *models.Beatmap) error

	// 예선 결과 작업
	GetResults(tournamentID string) []models.QualificationResult
	SaveResults(tournamentID string, results []models.QualificationResult) error
	DeleteResult(tournamentID, unitID string) error

	// 리소스 정리
	Close() error
}

package bot

import (
	"github.com/tournabay/seedbot/interfaces"
	"github.com/tournabay/seedbot/sheets"
	"github.com/tournabay/seedbot/telemetry"
)

// CommandDependencies 명령어 핸들러가 필요로 하는 모든 의존성을 묶어서 관리합니다
type CommandDependencies struct {
	Storage          interfaces.StorageRepository
	APIClient        interfaces.APIClient
	Engine           interfaces.QualificationEngine
	Adjuster         interfaces.DifficultyAdjuster
	StandingsManager *StandingsManager
	MappoolManager   *MappoolManager
	SheetsClient     *sheets.SheetsClient
	MetricsClient    *telemetry.MetricsClient
}

// NewCommandDependencies 새로운 CommandDependencies 인스턴스를 생성합니다
func NewCommandDependencies(
	storage interfaces.StorageRepository,
	apiClient interfaces.APIClient,
	engine interfaces.QualificationEngine,
	adjuster interfaces.DifficultyAdjuster,
	standingsManager *StandingsManager,
	mappoolManager *MappoolManager,
	sheetsClient *sheets.SheetsClient,
	metricsClient *telemetry.MetricsClient,
) *CommandDependencies {
	return &CommandDependencies{
		Storage:          storage,
		APIClient:        apiClient,
		Engine:           engine,
		Adjuster:         adjuster,
		StandingsManager: standingsManager,
		MappoolManager:   mappoolManager,
		SheetsClient:     sheetsClient,
		MetricsClient:    metricsClient,
	}
}

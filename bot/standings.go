package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/interfaces"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/performance"
	"github.com/tournabay/seedbot/utils"
)

// StandingsManager 예선 순위표 생성과 전송을 담당합니다
type StandingsManager struct {
	storage interfaces.StorageRepository
	engine  interfaces.QualificationEngine
}

func NewStandingsManager(storage interfaces.StorageRepository, engine interfaces.QualificationEngine) *StandingsManager {
	return &StandingsManager{
		storage: storage,
		engine:  engine,
	}
}

func (manager *StandingsManager) GetStorage() interfaces.StorageRepository {
	return manager.storage
}

// GenerateStandings 활성 토너먼트의 순위표 임베드를 생성합니다
func (manager *StandingsManager) GenerateStandings(ctx context.Context) (*discordgo.MessageEmbed, error) {
	tournament := manager.storage.GetActiveTournament()
	if tournament == nil {
		return nil, fmt.Errorf("활성화된 토너먼트가 없습니다")
	}

	rows, err := manager.CollectStandingsRows(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}

	return manager.formatStandings(tournament, rows), nil
}

// CollectStandingsRows 랭킹 결과를 순위표 행으로 변환합니다.
// 동점인 유닛은 같은 순위를 공유합니다.
func (manager *StandingsManager) CollectStandingsRows(ctx context.Context, tournamentID string) ([]models.StandingsRow, error) {
	results, err := manager.engine.GetRankedResults(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	// 메모리 풀에서 재사용 가능한 슬라이스 가져오기
	rowsPtr := performance.GetStandingsRowSlice()
	defer performance.PutStandingsRowSlice(rowsPtr)
	rows := *rowsPtr

	var lastPoints float64 = -1.0
	var rank int
	for i, result := range results {
		if result.TotalPoints != lastPoints {
			rank = i + 1
		}
		rows = append(rows, models.StandingsRow{
			Rank:        rank,
			UnitID:      result.UnitID,
			UnitName:    result.UnitName,
			TotalPoints: result.TotalPoints,
			MapsPlayed:  len(result.Entries),
		})
		lastPoints = result.TotalPoints
	}

	// 풀의 슬라이스는 재사용되므로 결과 복사본 반환
	out := make([]models.StandingsRow, len(rows))
	copy(out, rows)
	return out, nil
}

// formatStandings 순위표 행을 Discord 임베드 메시지로 포맷팅합니다
func (manager *StandingsManager) formatStandings(tournament *models.Tournament, rows []models.StandingsRow) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf(constants.MsgStandingsTitle, tournament.Name),
		Color: constants.ColorStandings,
	}

	if len(rows) == 0 {
		embed.Description = constants.MsgStandingsNoResults
		return embed
	}

	builder := performance.GetStringBuilder()
	defer performance.PutStringBuilder(builder)

	builder.WriteString("```\n")
	builder.WriteString(fmt.Sprintf("%-*s %-*s %*s\n",
		constants.StandingsRankWidth, "순위",
		constants.StandingsNameWidth, "유닛",
		constants.StandingsPointsWidth, "총점"))
	builder.WriteString(constants.StandingsSeparator + "\n")

	for _, row := range rows {
		builder.WriteString(fmt.Sprintf("%-*d %-*s %*.4f\n",
			constants.StandingsRankWidth, row.Rank,
			constants.StandingsNameWidth, utils.TruncateString(row.UnitName, constants.StandingsNameWidth),
			constants.StandingsPointsWidth, row.TotalPoints))
	}
	builder.WriteString("```")

	embed.Description = builder.String()
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("기준: %s · 유닛 %d개", tournament.Metric, len(rows)),
	}

	return embed
}

// SendDailyStandings 매일 순위표를 지정된 채널에 전송합니다
func (manager *StandingsManager) SendDailyStandings(session *discordgo.Session, channelID string) error {
	embed, err := manager.GenerateStandings(context.Background())
	if err != nil {
		return err
	}

	_, err = session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		utils.Error("DISCORD API ERROR: Failed to send daily standings: %v", err)
	}
	return err
}

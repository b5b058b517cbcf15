package sheets

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/utils"
)

// SheetsClient Google Sheets API 클라이언트
type SheetsClient struct {
	service *sheets.Service
	ctx     context.Context
}

// NewSheetsClient 새로운 Google Sheets 클라이언트를 생성합니다
func NewSheetsClient() (*SheetsClient, error) {
	ctx := context.Background()

	// Firebase 인증 정보 사용 (Google Cloud 프로젝트와 동일)
	credentialsJSON := setupGoogleCredentials()
	if credentialsJSON == "" {
		return nil, fmt.Errorf("Google credentials not available")
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	utils.Info("Google Sheets client initialized successfully")
	return &SheetsClient{
		service: service,
		ctx:     ctx,
	}, nil
}

// ExportStandings 순위표를 스프레드시트에 기록합니다.
// 기존 내용은 같은 범위에서 덮어씁니다.
func (c *SheetsClient) ExportStandings(spreadsheetID, tournamentName string, rows []models.StandingsRow) error {
	if spreadsheetID == "" {
		return fmt.Errorf("spreadsheet ID is empty")
	}

	valueRange := &sheets.ValueRange{Values: buildStandingsValues(tournamentName, rows)}
	_, err := c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		constants.StandingsSheetRange,
		valueRange,
	).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write standings to spreadsheet: %w", err)
	}

	utils.Info("Exported %d standings rows to spreadsheet %s", len(rows), spreadsheetID)
	return nil
}

// buildStandingsValues 순위표를 스프레드시트 셀 값으로 변환합니다
func buildStandingsValues(tournamentName string, rows []models.StandingsRow) [][]interface{} {
	values := [][]interface{}{
		{constants.StandingsSheetTitle, tournamentName, utils.FormatDateTime(time.Now())},
		{"순위", "유닛", "총점", "플레이한 맵"},
	}
	for _, row := range rows {
		values = append(values, []interface{}{
			row.Rank,
			row.UnitName,
			fmt.Sprintf("%.4f", row.TotalPoints),
			row.MapsPlayed,
		})
	}
	return values
}

// setupGoogleCredentials Google 인증 정보를 설정합니다
func setupGoogleCredentials() string {
	// Firebase 인증 JSON 사용
	firebaseCredentials := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if firebaseCredentials == "" {
		utils.Warn("FIREBASE_CREDENTIALS_JSON environment variable is not set")
		return ""
	}

	return firebaseCredentials
}

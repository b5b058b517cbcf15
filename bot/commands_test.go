package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/tournabay/seedbot/api"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/scoring"
	"github.com/tournabay/seedbot/storage"
)

// mockOsuClient 테스트용 osu! API 클라이언트 모킹
type mockOsuClient struct {
	beatmap     *api.BeatmapInfo
	starRating  float64
	lobby       *api.MatchLobby
	shouldError bool
}

func (m *mockOsuClient) GetBeatmap(ctx context.Context, beatmapID int) (*api.BeatmapInfo, error) {
	if m.shouldError {
		return nil, fmt.Errorf("비트맵을 찾을 수 없습니다: %d", beatmapID)
	}
	info := *m.beatmap
	info.BeatmapID = beatmapID
	return &info, nil
}

func (m *mockOsuClient) GetStarRating(ctx context.Context, beatmapID int, modifierBits int) (float64, error) {
	if m.shouldError {
		return 0, fmt.Errorf("성급 조회 실패: %d", beatmapID)
	}
	return m.starRating, nil
}

func (m *mockOsuClient) GetMatchLobby(ctx context.Context, lobbyID string) (*api.MatchLobby, error) {
	if m.shouldError {
		return nil, fmt.Errorf("로비를 찾을 수 없습니다: %s", lobbyID)
	}
	return m.lobby, nil
}

func TestNewCommandHandler(t *testing.T) {
	deps := &CommandDependencies{
		APIClient: &mockOsuClient{},
	}

	ch := NewCommandHandler(deps)
	if ch == nil {
		t.Fatal("NewCommandHandler가 nil을 반환했습니다")
	}

	if ch.deps != deps {
		t.Error("CommandHandler 의존성이 올바르게 설정되지 않았습니다")
	}
}

func TestParseMessage(t *testing.T) {
	ch := &CommandHandler{}

	tests := []struct {
		content        string
		expectedCmd    string
		expectedParams []string
		expectedDM     bool
	}{
		{
			content:        "!help",
			expectedCmd:    "help",
			expectedParams: []string{},
			expectedDM:     false,
		},
		{
			content:        "!제출 114514 room-1",
			expectedCmd:    "제출",
			expectedParams: []string{"114514", "room-1"},
			expectedDM:     false,
		},
		{
			content:        "!맵 1256809 HR",
			expectedCmd:    "맵",
			expectedParams: []string{"1256809", "HR"},
			expectedDM:     false,
		},
		{
			content:        "hello world",
			expectedCmd:    "",
			expectedParams: nil,
			expectedDM:     false,
		},
		{
			content:        "",
			expectedCmd:    "",
			expectedParams: nil,
			expectedDM:     false,
		},
	}

	for _, test := range tests {
		m := &discordgo.MessageCreate{
			Message: &discordgo.Message{
				Content: test.content,
				GuildID: "guild123", // Non-empty for non-DM
			},
		}

		command, params, isDM := ch.parseMessage(m)

		if command != test.expectedCmd {
			t.Errorf("parseMessage(%q) 명령어 = %q, 예상값 %q",
				test.content, command, test.expectedCmd)
		}

		if len(params) != len(test.expectedParams) {
			t.Errorf("parseMessage(%q) 매개변수 길이 = %d, 예상값 %d",
				test.content, len(params), len(test.expectedParams))
			continue
		}

		for i, param := range params {
			if param != test.expectedParams[i] {
				t.Errorf("parseMessage(%q) params[%d] = %q, 예상값 %q",
					test.content, i, param, test.expectedParams[i])
			}
		}

		if isDM != test.expectedDM {
			t.Errorf("parseMessage(%q) isDM = %v, 예상값 %v",
				test.content, isDM, test.expectedDM)
		}
	}

	// DM 감지 테스트
	dmMessage := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content: "!help",
			GuildID: "", // Empty for DM
		},
	}

	_, _, isDM := ch.parseMessage(dmMessage)
	if !isDM {
		t.Error("GuildID가 비어있으면 DM으로 감지해야 합니다")
	}
}

func TestShouldIgnoreMessage(t *testing.T) {
	ch := &CommandHandler{}

	session := &discordgo.Session{
		State: discordgo.NewState(),
	}
	session.State.User = &discordgo.User{ID: "bot123"}

	// 봇 자신의 메시지 무시
	botMessage := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Author: &discordgo.User{ID: "bot123"},
		},
	}

	if !ch.shouldIgnoreMessage(session, botMessage) {
		t.Error("봇 자신의 메시지는 무시해야 합니다")
	}

	// 일반 사용자 메시지는 처리
	userMessage := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Author: &discordgo.User{ID: "user123"},
		},
	}

	if ch.shouldIgnoreMessage(session, userMessage) {
		t.Error("일반 사용자 메시지는 무시하지 않아야 합니다")
	}
}

// newStandingsFixture 결과가 저장된 인메모리 저장소와 매니저를 만듭니다
func newStandingsFixture(t *testing.T) (*storage.InMemoryStorage, *StandingsManager) {
	t.Helper()

	store := storage.NewInMemoryStorage()
	store.SeedPlayerTournament("t1", []int{1, 2, 3})

	results := []models.QualificationResult{
		{ID: "1", UnitID: "1", UnitName: "player1", Entries: []models.QualificationEntry{
			{ID: "1:101", UnitID: "1", BeatmapID: 101, Score: 800000},
		}},
		{ID: "2", UnitID: "2", UnitName: "player2", Entries: []models.QualificationEntry{
			{ID: "2:101", UnitID: "2", BeatmapID: 101, Score: 800000},
		}},
		{ID: "3", UnitID: "3", UnitName: "player3", Entries: []models.QualificationEntry{
			{ID: "3:101", UnitID: "3", BeatmapID: 101, Score: 400000},
		}},
	}
	if err := store.SaveResults("t1", results); err != nil {
		t.Fatalf("결과 저장 실패: %v", err)
	}

	engine := scoring.NewQualificationEngine(store, &mockOsuClient{})
	return store, NewStandingsManager(store, engine)
}

func TestCollectStandingsRows(t *testing.T) {
	_, manager := newStandingsFixture(t)

	rows, err := manager.CollectStandingsRows(context.Background(), "t1")
	if err != nil {
		t.Fatalf("CollectStandingsRows 실패: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("행 수 = %d, 예상값 3", len(rows))
	}

	// 동점 유닛(1, 2)은 순위를 공유하고 다음 유닛은 3위
	if rows[0].Rank != 1 || rows[1].Rank != 1 {
		t.Errorf("동점 순위 = %d, %d, 예상값 1, 1", rows[0].Rank, rows[1].Rank)
	}
	if rows[2].Rank != 3 {
		t.Errorf("3번째 행 순위 = %d, 예상값 3", rows[2].Rank)
	}
	if rows[2].UnitName != "player3" {
		t.Errorf("3번째 행 유닛 = %s, 예상값 player3", rows[2].UnitName)
	}
	if rows[0].MapsPlayed != 1 {
		t.Errorf("플레이한 맵 수 = %d, 예상값 1", rows[0].MapsPlayed)
	}
}

func TestGenerateStandingsEmbed(t *testing.T) {
	_, manager := newStandingsFixture(t)

	embed, err := manager.GenerateStandings(context.Background())
	if err != nil {
		t.Fatalf("GenerateStandings 실패: %v", err)
	}

	if !strings.Contains(embed.Title, "예선 순위") {
		t.Errorf("제목에 '예선 순위'가 없음: %s", embed.Title)
	}
	if !strings.Contains(embed.Description, "player1") {
		t.Errorf("본문에 유닛 이름이 없음: %s", embed.Description)
	}
	if embed.Footer == nil || !strings.Contains(embed.Footer.Text, "score") {
		t.Error("푸터에 정규화 기준이 표시되지 않음")
	}
}

func TestGenerateStandingsNoTournament(t *testing.T) {
	store := storage.NewInMemoryStorage()
	engine := scoring.NewQualificationEngine(store, &mockOsuClient{})
	manager := NewStandingsManager(store, engine)

	if _, err := manager.GenerateStandings(context.Background()); err == nil {
		t.Error("활성 토너먼트가 없을 때 오류를 반환해야 합니다")
	}
}

func TestMappoolManagerEnsureBeatmap(t *testing.T) {
	store := storage.NewInMemoryStorage()
	client := &mockOsuClient{
		beatmap: &api.BeatmapInfo{
			BeatmapID:    1256809,
			Artist:       "xi",
			Title:        "Blue Zenith",
			Version:      "FOUR DIMENSIONS",
			Creator:      "Asphyxia",
			ApproachRate: 9.0,
			CircleSize:   4.0,
			Accuracy:     8.0,
			HealthDrain:  6.0,
			BPM:          200.0,
			MaxCombo:     2402,
			TotalLength:  257,
			StarRating:   7.2,
		},
		starRating: 7.2,
	}
	adjuster := scoring.NewDifficultyAdjuster(client, models.GetModifierManager())
	manager := NewMappoolManager(store, client, adjuster)

	// 첫 조회는 API에서 가져와 저장소에 등록
	beatmap, adjusted, err := manager.GetAdjusted(context.Background(), 1256809, models.ModifierNoMod)
	if err != nil {
		t.Fatalf("GetAdjusted 실패: %v", err)
	}
	if beatmap.Title != "Blue Zenith" {
		t.Errorf("비트맵 제목 = %s, 예상값 Blue Zenith", beatmap.Title)
	}
	if adjusted.ApproachRate != 9.0 {
		t.Errorf("노모드 AR = %v, 예상값 9.0", adjusted.ApproachRate)
	}
	if store.GetBeatmap(1256809) == nil {
		t.Error("비트맵이 저장소에 등록되지 않음")
	}

	// 두 번째 조회는 저장된 변환 결과 재사용
	client.shouldError = true
	if _, _, err := manager.GetAdjusted(context.Background(), 1256809, models.ModifierNoMod); err != nil {
		t.Errorf("저장된 변환 결과를 재사용하지 않음: %v", err)
	}
}

func TestMappoolManagerNonNumericModifier(t *testing.T) {
	store := storage.NewInMemoryStorage()
	client := &mockOsuClient{
		beatmap:    &api.BeatmapInfo{BeatmapID: 100, ApproachRate: 9, CircleSize: 4, Accuracy: 8, HealthDrain: 5, BPM: 180, TotalLength: 120},
		starRating: 5.0,
	}
	adjuster := scoring.NewDifficultyAdjuster(client, models.GetModifierManager())
	manager := NewMappoolManager(store, client, adjuster)

	if _, _, err := manager.GetAdjusted(context.Background(), 100, models.ModifierHidden); err == nil {
		t.Error("수치 변환 규칙이 없는 모드는 오류를 반환해야 합니다")
	}
}

func TestMappoolManagerPrepareRoom(t *testing.T) {
	store := storage.NewInMemoryStorage()
	client := &mockOsuClient{
		beatmap: &api.BeatmapInfo{
			BeatmapID:    101,
			Artist:       "xi",
			Title:        "Blue Zenith",
			Version:      "FOUR DIMENSIONS",
			ApproachRate: 9.0,
			CircleSize:   4.0,
			Accuracy:     8.0,
			HealthDrain:  6.0,
			BPM:          200.0,
			TotalLength:  257,
			StarRating:   7.2,
		},
		starRating: 7.2,
	}
	adjuster := scoring.NewDifficultyAdjuster(client, models.GetModifierManager())
	manager := NewMappoolManager(store, client, adjuster)

	room := &models.QualifierRoom{
		ID:           "r1",
		TournamentID: "t1",
		Name:         "Q1",
		MappoolIDs:   []int{101, 102},
	}

	// 수치 변환 모드 5종(NM/HR/DT/EZ/HT) × 비트맵 2개
	prepared, err := manager.PrepareRoom(context.Background(), room)
	if err != nil {
		t.Fatalf("PrepareRoom 실패: %v", err)
	}
	if prepared != 10 {
		t.Errorf("준비된 변환 수 = %d, want 10", prepared)
	}

	for _, beatmapID := range room.MappoolIDs {
		beatmap := store.GetBeatmap(beatmapID)
		if beatmap == nil {
			t.Fatalf("비트맵 %d가 저장소에 등록되지 않음", beatmapID)
		}
		if len(beatmap.Modifications) != 5 {
			t.Errorf("비트맵 %d의 변환 수 = %d, want 5", beatmapID, len(beatmap.Modifications))
		}
		if _, ok := beatmap.FindModification(models.ModifierHardRock); !ok {
			t.Errorf("비트맵 %d에 HR 변환이 없음", beatmapID)
		}
	}
}

func TestMappoolManagerPrepareRoomEmpty(t *testing.T) {
	store := storage.NewInMemoryStorage()
	client := &mockOsuClient{}
	adjuster := scoring.NewDifficultyAdjuster(client, models.GetModifierManager())
	manager := NewMappoolManager(store, client, adjuster)

	if prepared, err := manager.PrepareRoom(context.Background(), nil); err != nil || prepared != 0 {
		t.Errorf("nil 방 준비 결과 = (%d, %v), want (0, nil)", prepared, err)
	}

	empty := &models.QualifierRoom{ID: "r0", TournamentID: "t1"}
	if prepared, err := manager.PrepareRoom(context.Background(), empty); err != nil || prepared != 0 {
		t.Errorf("빈 맵풀 준비 결과 = (%d, %v), want (0, nil)", prepared, err)
	}
}

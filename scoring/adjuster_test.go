package scoring

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/tournabay/seedbot/api"
	"github.com/tournabay/seedbot/models"
)

// mockAPIClient 테스트용 APIClient 구현체입니다
type mockAPIClient struct {
	starRatings map[string]float64
	lobby       *api.MatchLobby
	lobbies     map[string]*api.MatchLobby // 로비 ID별 응답 (없으면 lobby 사용)
	lobbyErr    error
	starErr     error
}

func (m *mockAPIClient) GetBeatmap(ctx context.Context, beatmapID int) (*api.BeatmapInfo, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAPIClient) GetStarRating(ctx context.Context, beatmapID int, modifierBits int) (float64, error) {
	if m.starErr != nil {
		return 0, m.starErr
	}
	if sr, ok := m.starRatings[fmt.Sprintf("%d:%d", beatmapID, modifierBits)]; ok {
		return sr, nil
	}
	return 5.0, nil
}

func (m *mockAPIClient) GetMatchLobby(ctx context.Context, lobbyID string) (*api.MatchLobby, error) {
	if m.lobbyErr != nil {
		return nil, m.lobbyErr
	}
	if lobby, ok := m.lobbies[lobbyID]; ok {
		return lobby, nil
	}
	return m.lobby, nil
}

func newTestAdjuster(client *mockAPIClient) *DifficultyAdjuster {
	return &DifficultyAdjuster{
		client:          client,
		modifierManager: models.GetModifierManager(),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestAdjustClosedFormRules(t *testing.T) {
	baseline := models.BaselineAttributes{
		ApproachRate:      9.0,
		CircleSize:        4.0,
		OverallDifficulty: 8.0,
		HealthDrain:       5.0,
		BPM:               180,
		MaxCombo:          1200,
		LengthSeconds:     120,
	}

	tests := []struct {
		name     string
		modifier models.Modifier
		check    func(t *testing.T, adjusted *models.AdjustedAttributes)
	}{
		{
			name:     "노모드는 모든 수치가 그대로",
			modifier: models.ModifierNoMod,
			check: func(t *testing.T, adjusted *models.AdjustedAttributes) {
				if adjusted.ApproachRate != 9.0 || adjusted.CircleSize != 4.0 ||
					adjusted.OverallDifficulty != 8.0 || adjusted.HealthDrain != 5.0 {
					t.Errorf("노모드 수치가 변경됨: %+v", adjusted)
				}
				if adjusted.BPM != 180 || adjusted.LengthSeconds != 120 {
					t.Errorf("노모드 BPM/길이가 변경됨: bpm=%d length=%d", adjusted.BPM, adjusted.LengthSeconds)
				}
			},
		},
		{
			name:     "HR 배율과 OD 상한 클램프",
			modifier: models.ModifierHardRock,
			check: func(t *testing.T, adjusted *models.AdjustedAttributes) {
				if !almostEqual(adjusted.CircleSize, 5.2) {
					t.Errorf("HR CS = %v, want 5.2", adjusted.CircleSize)
				}
				if !almostEqual(adjusted.HealthDrain, 7.0) {
					t.Errorf("HR HP = %v, want 7.0", adjusted.HealthDrain)
				}
				if !almostEqual(adjusted.OverallDifficulty, 10.0) {
					t.Errorf("HR OD = %v, want 10.0 (클램프)", adjusted.OverallDifficulty)
				}
				if !almostEqual(adjusted.ApproachRate, 10.0) {
					t.Errorf("HR AR = %v, want 10.0 (클램프)", adjusted.ApproachRate)
				}
			},
		},
		{
			name:     "DT는 길이 내림, BPM 올림",
			modifier: models.ModifierDoubleTime,
			check: func(t *testing.T, adjusted *models.AdjustedAttributes) {
				if adjusted.LengthSeconds != 90 {
					t.Errorf("DT length = %d, want 90", adjusted.LengthSeconds)
				}
				if adjusted.BPM != 135 {
					t.Errorf("DT bpm = %d, want 135", adjusted.BPM)
				}
				if adjusted.CircleSize != 4.0 {
					t.Errorf("DT가 CS를 변경함: %v", adjusted.CircleSize)
				}
			},
		},
		{
			name:     "HT는 길이와 BPM을 1.5배로",
			modifier: models.ModifierHalfTime,
			check: func(t *testing.T, adjusted *models.AdjustedAttributes) {
				if adjusted.LengthSeconds != 180 {
					t.Errorf("HT length = %d, want 180", adjusted.LengthSeconds)
				}
				if adjusted.BPM != 270 {
					t.Errorf("HT bpm = %d, want 270", adjusted.BPM)
				}
			},
		},
		{
			name:     "EZ 반감과 CS 하한",
			modifier: models.ModifierEasy,
			check: func(t *testing.T, adjusted *models.AdjustedAttributes) {
				if !almostEqual(adjusted.CircleSize, 2.0) {
					t.Errorf("EZ CS = %v, want 2.0 (하한)", adjusted.CircleSize)
				}
				if !almostEqual(adjusted.ApproachRate, 4.5) {
					t.Errorf("EZ AR = %v, want 4.5", adjusted.ApproachRate)
				}
				if !almostEqual(adjusted.HealthDrain, 2.5) {
					t.Errorf("EZ HP = %v, want 2.5", adjusted.HealthDrain)
				}
			},
		},
	}

	adjuster := newTestAdjuster(&mockAPIClient{starRatings: map[string]float64{}})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adjusted, err := adjuster.Adjust(context.Background(), 100, baseline, tt.modifier)
			if err != nil {
				t.Fatalf("Adjust 실패: %v", err)
			}
			if adjusted == nil {
				t.Fatal("adjusted가 nil")
			}
			tt.check(t, adjusted)
		})
	}
}

func TestAdjustEasyCSLowBaseline(t *testing.T) {
	adjuster := newTestAdjuster(&mockAPIClient{})
	baseline := models.BaselineAttributes{CircleSize: 3.0, ApproachRate: 5, OverallDifficulty: 5, HealthDrain: 5, BPM: 150, LengthSeconds: 100}

	adjusted, err := adjuster.Adjust(context.Background(), 1, baseline, models.ModifierEasy)
	if err != nil {
		t.Fatalf("Adjust 실패: %v", err)
	}
	// 0.5배 결과(1.5)가 하한(2.0)보다 작으므로 클램프
	if !almostEqual(adjusted.CircleSize, 2.0) {
		t.Errorf("EZ CS = %v, want 2.0", adjusted.CircleSize)
	}
}

func TestAdjustTimingRemap(t *testing.T) {
	adjuster := newTestAdjuster(&mockAPIClient{})

	tests := []struct {
		name     string
		modifier models.Modifier
		ar       float64
		od       float64
		wantAR   float64
		wantOD   float64
	}{
		{"DT AR9은 상한까지 클램프", models.ModifierDoubleTime, 9.0, 8.0, 10.0, 9.78},
		{"DT AR7", models.ModifierDoubleTime, 7.0, 7.0, 9.0, 9.11},
		{"HT AR9", models.ModifierHalfTime, 9.0, 8.0, 7.0, 5.33},
		{"DT AR0은 5.0", models.ModifierDoubleTime, 0.0, 0.0, 5.0, 4.44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseline := models.BaselineAttributes{ApproachRate: tt.ar, OverallDifficulty: tt.od, CircleSize: 4, HealthDrain: 5, BPM: 150, LengthSeconds: 100}
			adjusted, err := adjuster.Adjust(context.Background(), 1, baseline, tt.modifier)
			if err != nil {
				t.Fatalf("Adjust 실패: %v", err)
			}
			if !almostEqual(adjusted.ApproachRate, tt.wantAR) {
				t.Errorf("AR = %v, want %v", adjusted.ApproachRate, tt.wantAR)
			}
			if !almostEqual(adjusted.OverallDifficulty, tt.wantOD) {
				t.Errorf("OD = %v, want %v", adjusted.OverallDifficulty, tt.wantOD)
			}
		})
	}
}

func TestAdjustTimingRoundTrip(t *testing.T) {
	adjuster := newTestAdjuster(&mockAPIClient{})
	ctx := context.Background()

	// 클램프에 걸리지 않는 구간에서 DT 후 HT를 적용하면 원래 값으로 복귀
	baseline := models.BaselineAttributes{ApproachRate: 7.0, OverallDifficulty: 6.0, CircleSize: 4, HealthDrain: 5, BPM: 150, LengthSeconds: 100}

	sped, err := adjuster.Adjust(ctx, 1, baseline, models.ModifierDoubleTime)
	if err != nil {
		t.Fatalf("DT Adjust 실패: %v", err)
	}

	roundTrip := models.BaselineAttributes{ApproachRate: sped.ApproachRate, OverallDifficulty: sped.OverallDifficulty, CircleSize: 4, HealthDrain: 5, BPM: 150, LengthSeconds: 100}
	restored, err := adjuster.Adjust(ctx, 1, roundTrip, models.ModifierHalfTime)
	if err != nil {
		t.Fatalf("HT Adjust 실패: %v", err)
	}

	// 중간 단계의 소수점 반올림 때문에 허용 오차를 넉넉히 둡니다
	if math.Abs(restored.ApproachRate-baseline.ApproachRate) > 0.02 {
		t.Errorf("round-trip AR = %v, want %v", restored.ApproachRate, baseline.ApproachRate)
	}
	if math.Abs(restored.OverallDifficulty-baseline.OverallDifficulty) > 0.02 {
		t.Errorf("round-trip OD = %v, want %v", restored.OverallDifficulty, baseline.OverallDifficulty)
	}
}

func TestAdjustMonotonicity(t *testing.T) {
	adjuster := newTestAdjuster(&mockAPIClient{})
	ctx := context.Background()

	modifiers := []models.Modifier{models.ModifierHardRock, models.ModifierEasy, models.ModifierDoubleTime, models.ModifierHalfTime}
	for _, modifier := range modifiers {
		t.Run(string(modifier), func(t *testing.T) {
			prev := -1.0
			for ar := 0.0; ar <= 10.0; ar += 0.5 {
				baseline := models.BaselineAttributes{ApproachRate: ar, OverallDifficulty: 5, CircleSize: 4, HealthDrain: 5, BPM: 150, LengthSeconds: 100}
				adjusted, err := adjuster.Adjust(ctx, 1, baseline, modifier)
				if err != nil {
					t.Fatalf("Adjust 실패: %v", err)
				}
				if adjusted.ApproachRate < prev {
					t.Fatalf("%s AR 단조성 위반: base=%v adjusted=%v prev=%v", modifier, ar, adjusted.ApproachRate, prev)
				}
				prev = adjusted.ApproachRate
			}
		})
	}
}

func TestAdjustNonNumericModifiers(t *testing.T) {
	adjuster := newTestAdjuster(&mockAPIClient{})
	baseline := models.BaselineAttributes{ApproachRate: 9, CircleSize: 4, OverallDifficulty: 8, HealthDrain: 5, BPM: 180, LengthSeconds: 120}

	for _, modifier := range []models.Modifier{models.ModifierHidden, models.ModifierFreeMod, models.ModifierTieBreaker} {
		t.Run(string(modifier), func(t *testing.T) {
			adjusted, err := adjuster.Adjust(context.Background(), 1, baseline, modifier)
			if err != nil {
				t.Errorf("변환 규칙 없는 모드에서 오류 발생: %v", err)
			}
			if adjusted != nil {
				t.Errorf("변환 규칙 없는 모드가 결과를 반환함: %+v", adjusted)
			}
		})
	}
}

func TestAdjustStarRatingFromOracle(t *testing.T) {
	client := &mockAPIClient{
		starRatings: map[string]float64{
			"100:16": 6.82, // HR 비트
			"100:64": 7.95, // DT 비트
		},
	}
	adjuster := newTestAdjuster(client)
	baseline := models.BaselineAttributes{ApproachRate: 9, CircleSize: 4, OverallDifficulty: 8, HealthDrain: 5, BPM: 180, LengthSeconds: 120, StarRating: 5.5}

	adjusted, err := adjuster.Adjust(context.Background(), 100, baseline, models.ModifierHardRock)
	if err != nil {
		t.Fatalf("Adjust 실패: %v", err)
	}
	if !almostEqual(adjusted.StarRating, 6.82) {
		t.Errorf("HR 성급 = %v, want 6.82", adjusted.StarRating)
	}

	adjusted, err = adjuster.Adjust(context.Background(), 100, baseline, models.ModifierDoubleTime)
	if err != nil {
		t.Fatalf("Adjust 실패: %v", err)
	}
	if !almostEqual(adjusted.StarRating, 7.95) {
		t.Errorf("DT 성급 = %v, want 7.95", adjusted.StarRating)
	}
}

func TestAdjustOracleFailure(t *testing.T) {
	client := &mockAPIClient{starErr: fmt.Errorf("connection refused")}
	adjuster := newTestAdjuster(client)
	baseline := models.BaselineAttributes{ApproachRate: 9, CircleSize: 4, OverallDifficulty: 8, HealthDrain: 5, BPM: 180, LengthSeconds: 120}

	adjusted, err := adjuster.Adjust(context.Background(), 100, baseline, models.ModifierHardRock)
	if err == nil {
		t.Fatal("오라클 실패가 오류를 반환하지 않음")
	}
	if adjusted != nil {
		t.Errorf("오라클 실패 시 부분 결과가 반환됨: %+v", adjusted)
	}
}

package models

import (
	"testing"
)

func newTestBeatmap() *Beatmap {
	return &Beatmap{
		ID:      1256809,
		Artist:  "xi",
		Title:   "Blue Zenith",
		Version: "FOUR DIMENSIONS",
		Creator: "Asphyxia",
		Baseline: BaselineAttributes{
			ApproachRate:      9.0,
			CircleSize:        4.0,
			OverallDifficulty: 8.0,
			HealthDrain:       6.0,
			BPM:               200,
			MaxCombo:          2402,
			LengthSeconds:     257,
			StarRating:        7.2,
		},
	}
}

func TestBeatmap_FindModification(t *testing.T) {
	beatmap := newTestBeatmap()

	if _, found := beatmap.FindModification(ModifierHardRock); found {
		t.Error("등록하지 않은 변환 결과를 찾았다고 보고했습니다")
	}

	adjusted := AdjustedAttributes{
		Modifier:          ModifierHardRock,
		ApproachRate:      10.0,
		CircleSize:        5.2,
		OverallDifficulty: 10.0,
		HealthDrain:       8.4,
		BPM:               200,
		StarRating:        7.8,
	}
	if err := beatmap.AddModification(adjusted); err != nil {
		t.Fatalf("AddModification 실패: %v", err)
	}

	found, exists := beatmap.FindModification(ModifierHardRock)
	if !exists {
		t.Fatal("등록한 변환 결과를 찾지 못했습니다")
	}
	if found.ApproachRate != 10.0 {
		t.Errorf("HR AR = %v, 예상값 10.0", found.ApproachRate)
	}
}

func TestBeatmap_AddModificationDuplicate(t *testing.T) {
	beatmap := newTestBeatmap()

	adjusted := AdjustedAttributes{Modifier: ModifierDoubleTime, StarRating: 8.5}
	if err := beatmap.AddModification(adjusted); err != nil {
		t.Fatalf("첫 번째 AddModification 실패: %v", err)
	}

	// 동일 모드 중복 추가는 오류
	if err := beatmap.AddModification(adjusted); err == nil {
		t.Error("동일 모드 중복 추가가 오류를 반환하지 않았습니다")
	}

	if len(beatmap.Modifications) != 1 {
		t.Errorf("변환 결과 수 = %d, 예상값 1", len(beatmap.Modifications))
	}
}

func TestBeatmap_ReplaceModification(t *testing.T) {
	beatmap := newTestBeatmap()

	// 없으면 추가
	beatmap.ReplaceModification(AdjustedAttributes{Modifier: ModifierEasy, StarRating: 6.0})
	if len(beatmap.Modifications) != 1 {
		t.Fatalf("변환 결과 수 = %d, 예상값 1", len(beatmap.Modifications))
	}

	// 있으면 교체
	beatmap.ReplaceModification(AdjustedAttributes{Modifier: ModifierEasy, StarRating: 6.3})
	if len(beatmap.Modifications) != 1 {
		t.Fatalf("교체 후 변환 결과 수 = %d, 예상값 1", len(beatmap.Modifications))
	}

	adjusted, _ := beatmap.FindModification(ModifierEasy)
	if adjusted.StarRating != 6.3 {
		t.Errorf("교체된 성급 = %v, 예상값 6.3", adjusted.StarRating)
	}
}

func TestBeatmap_DisplayName(t *testing.T) {
	beatmap := newTestBeatmap()

	expected := "xi - Blue Zenith [FOUR DIMENSIONS]"
	if name := beatmap.DisplayName(); name != expected {
		t.Errorf("DisplayName = %s, 예상값 %s", name, expected)
	}
}

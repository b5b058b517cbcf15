package models

import (
	"fmt"
	"time"
)

// BaselineAttributes 비트맵의 노모드 기준 난이도 수치입니다.
// 비트맵 최초 등록 시 한 번 채워지며, 명시적인 재계산 외에는 변경되지 않습니다.
type BaselineAttributes struct {
	ApproachRate      float64 `firestore:"ar" json:"ar"`
	CircleSize        float64 `firestore:"cs" json:"cs"`
	OverallDifficulty float64 `firestore:"od" json:"od"`
	HealthDrain       float64 `firestore:"hp" json:"hp"`
	BPM               int     `firestore:"bpm" json:"bpm"`
	MaxCombo          int     `firestore:"maxCombo" json:"max_combo"`
	LengthSeconds     int     `firestore:"length" json:"length"`
	StarRating        float64 `firestore:"starRating" json:"star_rating"`
}

// AdjustedAttributes 특정 모드 적용 후의 난이도 수치입니다
type AdjustedAttributes struct {
	Modifier          Modifier `firestore:"modifier" json:"modifier"`
	ApproachRate      float64  `firestore:"ar" json:"ar"`
	CircleSize        float64  `firestore:"cs" json:"cs"`
	OverallDifficulty float64  `firestore:"od" json:"od"`
	HealthDrain       float64  `firestore:"hp" json:"hp"`
	BPM               int      `firestore:"bpm" json:"bpm"`
	MaxCombo          int      `firestore:"maxCombo" json:"max_combo"`
	LengthSeconds     int      `firestore:"length" json:"length"`
	StarRating        float64  `firestore:"starRating" json:"star_rating"`
}

// Beatmap 토너먼트에 등록된 비트맵입니다. 모드별 변환 결과를 소유하며,
// 동일 모드에 대한 변환 결과는 최대 하나만 존재합니다.
type Beatmap struct {
	ID            int                  `firestore:"-"` // osu! 비트맵 ID (문서 ID로 사용)
	Artist        string               `firestore:"artist"`
	Title         string               `firestore:"title"`
	Version       string               `firestore:"version"`
	Creator       string               `firestore:"creator"`
	Baseline      BaselineAttributes   `firestore:"baseline"`
	Modifications []AdjustedAttributes `firestore:"modifications"`
	CreatedAt     time.Time            `firestore:"createdAt"`
}

// FindModification 해당 모드의 변환 결과를 반환합니다
func (b *Beatmap) FindModification(modifier Modifier) (*AdjustedAttributes, bool) {
	for i := range b.Modifications {
		if b.Modifications[i].Modifier == modifier {
			return &b.Modifications[i], true
		}
	}
	return nil, false
}

// AddModification 변환 결과를 추가합니다. 동일 모드가 이미 존재하면 오류를 반환합니다.
func (b *Beatmap) AddModification(adjusted AdjustedAttributes) error {
	if _, exists := b.FindModification(adjusted.Modifier); exists {
		return fmt.Errorf("beatmap %d already has a modification for %s", b.ID, adjusted.Modifier)
	}
	b.Modifications = append(b.Modifications, adjusted)
	return nil
}

// ReplaceModification 변환 결과를 교체하거나 없으면 추가합니다 (운영자 강제 재계산용)
func (b *Beatmap) ReplaceModification(adjusted AdjustedAttributes) {
	for i := range b.Modifications {
		if b.Modifications[i].Modifier == adjusted.Modifier {
			b.Modifications[i] = adjusted
			return
		}
	}
	b.Modifications = append(b.Modifications, adjusted)
}

// DisplayName 비트맵 표시 이름을 반환합니다
func (b *Beatmap) DisplayName() string {
	return fmt.Sprintf("%s - %s [%s]", b.Artist, b.Title, b.Version)
}

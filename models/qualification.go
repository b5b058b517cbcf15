package models

import "time"

// QualificationEntry (유닛, 예선 비트맵) 쌍의 집계 결과입니다.
// 한 방 안에서 같은 쌍의 엔트리는 정확히 하나만 존재합니다 (재제출은 덮어쓰기).
type QualificationEntry struct {
	ID               string  `firestore:"id"`
	UnitID           string  `firestore:"unitId"`
	BeatmapID        int     `firestore:"beatmapId"`
	Score            float64 `firestore:"score"`            // 팀전은 멤버 점수의 산술 평균
	Accuracy         float64 `firestore:"accuracy"`         // 팀전은 멤버 정확도의 산술 평균
	NormalizedPoints float64 `firestore:"normalizedPoints"` // 랭킹 재계산 시 파생
}

// QualificationResult 한 경쟁 유닛의 예선 결과 묶음입니다.
// 첫 점수 제출 시 생성되고, 유닛 삭제 시 소유한 엔트리가 함께 제거됩니다.
type QualificationResult struct {
	ID          string               `firestore:"-"` // Firestore 문서 ID
	UnitID      string               `firestore:"unitId"`
	UnitName    string               `firestore:"unitName"`
	RoomID      string               `firestore:"roomId"`
	Entries     []QualificationEntry `firestore:"entries"`
	TotalPoints float64              `firestore:"totalPoints"` // 비트맵별 정규화 점수의 합
	UpdatedAt   time.Time            `firestore:"updatedAt"`
}

// FindEntry 비트맵 ID로 엔트리를 찾습니다
func (r *QualificationResult) FindEntry(beatmapID int) (*QualificationEntry, bool) {
	for i := range r.Entries {
		if r.Entries[i].BeatmapID == beatmapID {
			return &r.Entries[i], true
		}
	}
	return nil, false
}

// UpsertEntry 같은 비트맵의 기존 엔트리를 덮어쓰거나 새로 추가합니다.
// 같은 (유닛, 비트맵) 쌍에 대해 멱등적으로 동작합니다.
func (r *QualificationResult) UpsertEntry(entry QualificationEntry) {
	for i := range r.Entries {
		if r.Entries[i].BeatmapID == entry.BeatmapID {
			entry.ID = r.Entries[i].ID // 기존 엔트리 식별자 유지
			r.Entries[i] = entry
			return
		}
	}
	r.Entries = append(r.Entries, entry)
}

// StandingsRow 순위표 표시용 한 행입니다
type StandingsRow struct {
	Rank        int     `json:"rank"`
	UnitID      string  `json:"unit_id"`
	UnitName    string  `json:"unit_name"`
	TotalPoints float64 `json:"total_points"`
	MapsPlayed  int     `json:"maps_played"`
}

package models

import (
	"strconv"
	"time"
)

// TournamentFormat 토너먼트 참가 단위 형식을 나타냅니다.
// 런타임 타입 검사 대신 태그 값으로 분기합니다.
type TournamentFormat string

const (
	FormatPlayer TournamentFormat = "player" // 개인전
	FormatTeam   TournamentFormat = "team"   // 팀전
)

// Player 토너먼트 로스터에 등록된 플레이어입니다
type Player struct {
	ID       int    `firestore:"id"`       // osu! 유저 ID
	Username string `firestore:"username"` // osu! 닉네임
}

// Team 팀전 토너먼트의 팀입니다. 멤버는 플레이어 ID로만 참조합니다.
type Team struct {
	ID        string    `firestore:"-"` // Firestore 문서 ID
	Name      string    `firestore:"name"`
	PlayerIDs []int     `firestore:"playerIds"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// Tournament 토너먼트 설정과 로스터를 포함합니다
type Tournament struct {
	ID        string           `firestore:"-"` // Firestore 문서 ID
	Name      string           `firestore:"name"`
	Format    TournamentFormat `firestore:"format"`
	Metric    string           `firestore:"metric"` // constants.MetricScore | constants.MetricAccuracy
	Players   []Player         `firestore:"players"`
	Teams     []Team           `firestore:"teams"`
	IsActive  bool             `firestore:"isActive"`
	CreatedAt time.Time        `firestore:"createdAt"`
}

// CompetingUnit 순위 집계의 대상이 되는 경쟁 단위입니다.
// 개인전에서는 플레이어 하나, 팀전에서는 팀 하나에 대응합니다.
type CompetingUnit struct {
	ID     string           `firestore:"id"`     // 플레이어 ID 문자열 또는 팀 문서 ID
	Name   string           `firestore:"name"`   // 표시 이름
	Format TournamentFormat `firestore:"format"` // 소속 토너먼트 형식 태그
}

// FindUnitByPlayerID 플레이어 ID로 경쟁 유닛을 찾습니다.
// 로스터에 없는 플레이어는 (nil, false)를 반환하며 오류가 아닙니다 (심판/관전자).
func (t *Tournament) FindUnitByPlayerID(playerID int) (*CompetingUnit, bool) {
	switch t.Format {
	case FormatPlayer:
		for i := range t.Players {
			if t.Players[i].ID == playerID {
				return &CompetingUnit{
					ID:     strconv.Itoa(playerID),
					Name:   t.Players[i].Username,
					Format: FormatPlayer,
				}, true
			}
		}
	case FormatTeam:
		for i := range t.Teams {
			for _, id := range t.Teams[i].PlayerIDs {
				if id == playerID {
					return &CompetingUnit{
						ID:     t.Teams[i].ID,
						Name:   t.Teams[i].Name,
						Format: FormatTeam,
					}, true
				}
			}
		}
	}
	return nil, false
}

// UnitName 유닛 ID로 표시 이름을 찾습니다
func (t *Tournament) UnitName(unitID string) string {
	switch t.Format {
	case FormatPlayer:
		for i := range t.Players {
			if strconv.Itoa(t.Players[i].ID) == unitID {
				return t.Players[i].Username
			}
		}
	case FormatTeam:
		for i := range t.Teams {
			if t.Teams[i].ID == unitID {
				return t.Teams[i].Name
			}
		}
	}
	return unitID
}

// QualifierRoom 예선 멀티 로비가 배정되는 방입니다.
// 맵풀은 비트맵 ID 집합으로만 보관합니다 (비트맵 본체는 저장소가 소유).
type QualifierRoom struct {
	ID           string    `firestore:"-"` // Firestore 문서 ID
	TournamentID string    `firestore:"tournamentId"`
	Name         string    `firestore:"name"`
	MappoolIDs   []int     `firestore:"mappoolIds"`
	ScheduledAt  time.Time `firestore:"scheduledAt"`
}

// InMappool 비트맵이 이 방의 맵풀에 속하는지 확인합니다
func (r *QualifierRoom) InMappool(beatmapID int) bool {
	for _, id := range r.MappoolIDs {
		if id == beatmapID {
			return true
		}
	}
	return false
}

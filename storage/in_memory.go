package storage

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/tournabay/seedbot/models"
)

// InMemoryStorage 테스트/개발용 비영구 저장소 구현
type InMemoryStorage struct {
	mu          sync.RWMutex
	tournaments map[string]*models.Tournament
	rooms       map[string]*models.QualifierRoom
	beatmaps    map[int]*models.Beatmap
	results     map[string][]models.QualificationResult // key: tournamentID
}

// NewInMemoryStorage 새 인메모리 저장소 생성
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		tournaments: make(map[string]*models.Tournament),
		rooms:       make(map[string]*models.QualifierRoom),
		beatmaps:    make(map[int]*models.Beatmap),
		results:     make(map[string][]models.QualificationResult),
	}
}

// PutTournament 토너먼트 등록 (픽스처 구성용)
func (s *InMemoryStorage) PutTournament(t *models.Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.ID] = t
}

// PutRoom 예선 방 등록 (픽스처 구성용)
func (s *InMemoryStorage) PutRoom(r *models.QualifierRoom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = r
}

// GetTournament ID로 토너먼트 조회
func (s *InMemoryStorage) GetTournament(tournamentID string) *models.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tournaments[tournamentID]
}

// GetActiveTournament 활성 토너먼트 조회
func (s *InMemoryStorage) GetActiveTournament() *models.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tournaments {
		if t.IsActive {
			return t
		}
	}
	return nil
}

// GetRoom ID로 예선 방 조회
func (s *InMemoryStorage) GetRoom(roomID string) *models.QualifierRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[roomID]
}

// GetBeatmap ID로 비트맵 조회
func (s *InMemoryStorage) GetBeatmap(beatmapID int) *models.Beatmap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.beatmaps[beatmapID]
}

// SaveBeatmap 비트맵 저장
func (s *InMemoryStorage) SaveBeatmap(beatmap *models.Beatmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if beatmap == nil || beatmap.ID <= 0 {
		return fmt.Errorf("invalid beatmap: %v", beatmap)
	}
	s.beatmaps[beatmap.ID] = beatmap
	return nil
}

// GetResults 토너먼트의 예선 결과 조회. 호출자가 변경해도 저장소에
// 영향이 없도록 깊은 복사본을 반환합니다.
func (s *InMemoryStorage) GetResults(tournamentID string) []models.QualificationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.results[tournamentID]
	copied := make([]models.QualificationResult, len(stored))
	for i, result := range stored {
		copied[i] = result
		copied[i].Entries = append([]models.QualificationEntry(nil), result.Entries...)
	}
	return copied
}

// SaveResults 토너먼트의 예선 결과 전체 교체
func (s *InMemoryStorage) SaveResults(tournamentID string, results []models.QualificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]models.QualificationResult, len(results))
	for i, result := range results {
		if result.UnitID == "" {
			return fmt.Errorf("result %d has empty unit ID", i)
		}
		copied[i] = result
		copied[i].Entries = append([]models.QualificationEntry(nil), result.Entries...)
	}
	s.results[tournamentID] = copied
	return nil
}

// DeleteResult 유닛의 예선 결과 삭제
func (s *InMemoryStorage) DeleteResult(tournamentID, unitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.results[tournamentID]
	for i := range stored {
		if stored[i].UnitID == unitID {
			s.results[tournamentID] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no result for unit %s in tournament %s", unitID, tournamentID)
}

// Close 인메모리 저장소는 정리할 리소스가 없습니다
func (s *InMemoryStorage) Close() error {
	return nil
}

// SeedPlayerTournament 개인전 테스트 픽스처를 구성합니다
func (s *InMemoryStorage) SeedPlayerTournament(tournamentID string, playerIDs []int) *models.Tournament {
	t := &models.Tournament{
		ID:       tournamentID,
		Name:     "test tournament " + tournamentID,
		Format:   models.FormatPlayer,
		Metric:   "score",
		IsActive: true,
	}
	for _, id := range playerIDs {
		t.Players = append(t.Players, models.Player{ID: id, Username: "player" + strconv.Itoa(id)})
	}
	s.PutTournament(t)
	return t
}

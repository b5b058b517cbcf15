package scoring

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tournabay/seedbot/api"
	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/errors"
	"github.com/tournabay/seedbot/interfaces"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/utils"
)

// Engine 예선 점수의 집계, 정규화, 랭킹을 담당합니다.
// 결과는 토너먼트 단위로 읽고 쓰므로 쓰기 작업도 토너먼트 단위
// 뮤텍스로 직렬화됩니다. 저장은 전체 성공/전체 실패입니다.
type Engine struct {
	storage interfaces.StorageRepository
	client  interfaces.APIClient

	// tournamentID → *sync.Mutex. 토너먼트가 유한하므로 잠금은 회수하지 않습니다.
	tournamentLocks sync.Map
}

// NewQualificationEngine 새로운 예선 엔진을 생성합니다
func NewQualificationEngine(storage interfaces.StorageRepository, client interfaces.APIClient) interfaces.QualificationEngine {
	return &Engine{
		storage: storage,
		client:  client,
	}
}

// unitAccumulator 한 (유닛, 비트맵) 쌍의 멤버별 기록 누적기입니다
type unitAccumulator struct {
	scoreSum    float64
	accuracySum float64
	count       int
}

// SubmitLobbyResults 멀티 로비 기록을 가져와 예선 결과에 합산합니다.
// 같은 로비를 다시 제출해도 결과가 변하지 않습니다 (멱등).
// 반환값은 이번 제출로 갱신된 엔트리 목록입니다.
func (e *Engine) SubmitLobbyResults(ctx context.Context, lobbyID, roomID, tournamentID string) ([]models.QualificationEntry, error) {
	tournament := e.storage.GetTournament(tournamentID)
	if tournament == nil {
		return nil, errors.NewNotFoundError("TOURNAMENT_NOT_FOUND",
			fmt.Sprintf("토너먼트를 찾을 수 없습니다: %s", tournamentID),
			"토너먼트를 찾을 수 없습니다.")
	}
	if tournament.Format != models.FormatPlayer && tournament.Format != models.FormatTeam {
		return nil, errors.NewTournamentError("TOURNAMENT_FORMAT_INVALID",
			fmt.Sprintf("알 수 없는 토너먼트 형식: %s", tournament.Format),
			"토너먼트 설정에 문제가 있습니다. 관리자에게 문의해주세요.")
	}

	room := e.storage.GetRoom(roomID)
	if room == nil {
		return nil, errors.NewNotFoundError("ROOM_NOT_FOUND",
			fmt.Sprintf("예선 방을 찾을 수 없습니다: %s", roomID),
			"해당 예선 방을 찾을 수 없습니다.")
	}
	if room.TournamentID != tournamentID {
		return nil, errors.NewTournamentError("ROOM_TOURNAMENT_MISMATCH",
			fmt.Sprintf("방 %s은(는) 토너먼트 %s 소속이 아닙니다", roomID, tournamentID),
			"이 방은 현재 토너먼트 소속이 아닙니다.")
	}

	lock := e.tournamentLock(tournamentID)
	lock.Lock()
	defer lock.Unlock()

	lobby, err := e.client.GetMatchLobby(ctx, lobbyID)
	if err != nil {
		return nil, errors.NewUpstreamError("LOBBY_FETCH_FAILED",
			fmt.Sprintf("로비 %s 기록 조회 실패", lobbyID), err)
	}

	aggregates, unitNames := e.aggregateLobby(lobby, tournament, room)
	if len(aggregates) == 0 {
		return nil, errors.NewValidationError("NO_COUNTABLE_SCORES",
			fmt.Sprintf("로비 %s에 집계 가능한 기록이 없습니다", lobbyID),
			"로비에서 집계 가능한 기록을 찾지 못했습니다. 로비 ID를 확인해주세요.")
	}

	results := e.storage.GetResults(tournamentID)
	resultIndex := make(map[string]int, len(results))
	for i := range results {
		resultIndex[results[i].UnitID] = i
	}

	now := time.Now()
	var affected []models.QualificationEntry

	for unitID, perBeatmap := range aggregates {
		idx, ok := resultIndex[unitID]
		if !ok {
			results = append(results, models.QualificationResult{
				ID:       unitID,
				UnitID:   unitID,
				UnitName: unitNames[unitID],
				RoomID:   roomID,
			})
			idx = len(results) - 1
			resultIndex[unitID] = idx
		}

		for beatmapID, acc := range perBeatmap {
			entry := models.QualificationEntry{
				ID:        fmt.Sprintf("%s:%d", unitID, beatmapID),
				UnitID:    unitID,
				BeatmapID: beatmapID,
				Score:     acc.scoreSum / float64(acc.count),
				Accuracy:  acc.accuracySum / float64(acc.count),
			}
			results[idx].UpsertEntry(entry)
		}
		results[idx].UpdatedAt = now
	}

	rankResults(results, tournament.Metric)

	if err := e.storage.SaveResults(tournamentID, results); err != nil {
		return nil, errors.NewSystemError("RESULTS_SAVE_FAILED", "예선 결과 저장에 실패했습니다", err)
	}

	for unitID, perBeatmap := range aggregates {
		result := results[resultIndex[unitID]]
		for beatmapID := range perBeatmap {
			if entry, ok := result.FindEntry(beatmapID); ok {
				affected = append(affected, *entry)
			}
		}
	}

	utils.Info("Lobby %s submitted: %d units, %d entries affected", lobbyID, len(aggregates), len(affected))
	return affected, nil
}

// aggregateLobby 로비 이벤트를 (유닛, 비트맵)별 누적기로 접습니다.
// nil 게임 이벤트(워밍업/중단)와 맵풀 외 비트맵, 로스터 외 플레이어는 조용히 건너뜁니다.
func (e *Engine) aggregateLobby(lobby *api.MatchLobby, tournament *models.Tournament, room *models.QualifierRoom) (map[string]map[int]*unitAccumulator, map[string]string) {
	aggregates := make(map[string]map[int]*unitAccumulator)
	unitNames := make(map[string]string)

	for _, event := range lobby.Events {
		game := event.Game
		if game == nil {
			continue
		}
		if !room.InMappool(game.BeatmapID) {
			utils.Debug("Beatmap %d not in room mappool, skipping game", game.BeatmapID)
			continue
		}

		for _, score := range game.Scores {
			unit, ok := tournament.FindUnitByPlayerID(score.UserID)
			if !ok {
				utils.Debug("Player %d not in tournament roster, ignoring score", score.UserID)
				continue
			}

			perBeatmap, ok := aggregates[unit.ID]
			if !ok {
				perBeatmap = make(map[int]*unitAccumulator)
				aggregates[unit.ID] = perBeatmap
				unitNames[unit.ID] = unit.Name
			}
			acc, ok := perBeatmap[game.BeatmapID]
			if !ok {
				acc = &unitAccumulator{}
				perBeatmap[game.BeatmapID] = acc
			}
			acc.scoreSum += float64(score.Score)
			acc.accuracySum += score.Accuracy
			acc.count++
		}
	}

	return aggregates, unitNames
}

// GetRankedResults 정규화와 랭킹이 반영된 결과를 반환합니다.
// 저장소 상태를 변경하지 않는 순수 읽기 작업입니다.
func (e *Engine) GetRankedResults(ctx context.Context, tournamentID string) ([]models.QualificationResult, error) {
	tournament := e.storage.GetTournament(tournamentID)
	if tournament == nil {
		return nil, errors.NewNotFoundError("TOURNAMENT_NOT_FOUND",
			fmt.Sprintf("토너먼트를 찾을 수 없습니다: %s", tournamentID),
			"토너먼트를 찾을 수 없습니다.")
	}

	results := e.storage.GetResults(tournamentID)
	rankResults(results, tournament.Metric)
	return results, nil
}

// UpdateEntry 엔트리 하나의 점수/정확도를 수동으로 덮어씁니다.
// 정규화 점수와 총점을 즉시 다시 계산하여 저장합니다.
func (e *Engine) UpdateEntry(ctx context.Context, entryID string, newScore, newAccuracy float64) (*models.QualificationResult, error) {
	if !utils.IsValidScore(newScore) {
		return nil, errors.NewValidationError("INVALID_SCORE",
			fmt.Sprintf("유효하지 않은 점수: %v", newScore),
			"점수 값이 올바르지 않습니다.")
	}
	if !utils.IsValidAccuracy(newAccuracy) {
		return nil, errors.NewValidationError("INVALID_ACCURACY",
			fmt.Sprintf("유효하지 않은 정확도: %v", newAccuracy),
			"정확도 값이 올바르지 않습니다.")
	}

	tournament := e.storage.GetActiveTournament()
	if tournament == nil {
		return nil, errors.NewNotFoundError("NO_ACTIVE_TOURNAMENT", "활성 토너먼트가 없습니다",
			"현재 진행 중인 토너먼트가 없습니다.")
	}

	// 조회와 저장 사이에 다른 쓰기가 끼어들지 않도록 조회 전에 잠급니다
	lock := e.tournamentLock(tournament.ID)
	lock.Lock()
	defer lock.Unlock()

	results := e.storage.GetResults(tournament.ID)
	ownerIdx := -1
	entryIdx := -1
	for i := range results {
		for j := range results[i].Entries {
			if results[i].Entries[j].ID == entryID {
				ownerIdx, entryIdx = i, j
				break
			}
		}
	}
	if ownerIdx < 0 {
		return nil, errors.NewNotFoundError("ENTRY_NOT_FOUND",
			fmt.Sprintf("엔트리를 찾을 수 없습니다: %s", entryID),
			"해당 엔트리를 찾을 수 없습니다.")
	}

	ownerUnitID := results[ownerIdx].UnitID
	results[ownerIdx].Entries[entryIdx].Score = newScore
	results[ownerIdx].Entries[entryIdx].Accuracy = newAccuracy
	results[ownerIdx].UpdatedAt = time.Now()

	rankResults(results, tournament.Metric)

	if err := e.storage.SaveResults(tournament.ID, results); err != nil {
		return nil, errors.NewSystemError("RESULTS_SAVE_FAILED", "예선 결과 저장에 실패했습니다", err)
	}

	utils.Info("Entry %s updated: score=%.0f accuracy=%.2f", entryID, newScore, newAccuracy)

	// 랭킹 정렬로 인덱스가 바뀌므로 유닛 ID로 다시 찾습니다
	for i := range results {
		if results[i].UnitID == ownerUnitID {
			owner := results[i]
			return &owner, nil
		}
	}
	return nil, errors.NewSystemError("ENTRY_OWNER_LOST",
		fmt.Sprintf("수정된 엔트리 %s의 유닛 결과를 찾을 수 없습니다", entryID), nil)
}

// DeleteResultsForUnit 유닛의 결과를 제거하고 남은 결과를 재정규화합니다
func (e *Engine) DeleteResultsForUnit(ctx context.Context, unitID, tournamentID string) ([]models.QualificationResult, error) {
	tournament := e.storage.GetTournament(tournamentID)
	if tournament == nil {
		return nil, errors.NewNotFoundError("TOURNAMENT_NOT_FOUND",
			fmt.Sprintf("토너먼트를 찾을 수 없습니다: %s", tournamentID),
			"토너먼트를 찾을 수 없습니다.")
	}

	lock := e.tournamentLock(tournamentID)
	lock.Lock()
	defer lock.Unlock()

	results := e.storage.GetResults(tournamentID)
	targetIdx := -1
	for i := range results {
		if results[i].UnitID == unitID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, errors.NewNotFoundError("UNIT_RESULT_NOT_FOUND",
			fmt.Sprintf("유닛 %s의 예선 결과가 없습니다", unitID),
			"해당 참가자의 예선 결과가 없습니다.")
	}

	if err := e.storage.DeleteResult(tournamentID, unitID); err != nil {
		return nil, errors.NewSystemError("RESULT_DELETE_FAILED",
			fmt.Sprintf("유닛 %s 결과 삭제 실패", unitID), err)
	}

	remaining := append(results[:targetIdx:targetIdx], results[targetIdx+1:]...)
	rankResults(remaining, tournament.Metric)

	// 유닛 하나가 빠지면 비트맵별 최고 기록이 바뀔 수 있으므로 남은 결과도 다시 저장
	if err := e.storage.SaveResults(tournamentID, remaining); err != nil {
		return nil, errors.NewSystemError("RESULTS_SAVE_FAILED", "예선 결과 저장에 실패했습니다", err)
	}

	utils.Info("Unit %s removed from tournament %s, %d results remain", unitID, tournamentID, len(remaining))
	return remaining, nil
}

// tournamentLock 토너먼트 ID에 대응하는 뮤텍스를 반환합니다 (없으면 생성)
func (e *Engine) tournamentLock(tournamentID string) *sync.Mutex {
	lock, _ := e.tournamentLocks.LoadOrStore(tournamentID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// rankResults 정규화 점수와 총점을 다시 계산하고 순위대로 정렬합니다.
// 비트맵별 최고 기록을 1.0으로 놓고 나머지를 그 비율로 환산합니다.
// 동점은 유닛 ID 오름차순으로 순서를 고정합니다.
func rankResults(results []models.QualificationResult, metric string) {
	dividers := make(map[int]float64)
	for i := range results {
		for j := range results[i].Entries {
			value := metricValue(&results[i].Entries[j], metric)
			if value > dividers[results[i].Entries[j].BeatmapID] {
				dividers[results[i].Entries[j].BeatmapID] = value
			}
		}
	}

	for i := range results {
		total := 0.0
		for j := range results[i].Entries {
			entry := &results[i].Entries[j]
			divider := dividers[entry.BeatmapID]
			if divider > 0 {
				entry.NormalizedPoints = metricValue(entry, metric) / divider
			} else {
				entry.NormalizedPoints = 0
			}
			total += entry.NormalizedPoints
		}
		results[i].TotalPoints = total
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].TotalPoints != results[b].TotalPoints {
			return results[a].TotalPoints > results[b].TotalPoints
		}
		return results[a].UnitID < results[b].UnitID
	})
}

// metricValue 토너먼트 설정에 따라 비교 대상 수치를 선택합니다
func metricValue(entry *models.QualificationEntry, metric string) float64 {
	if metric == constants.MetricAccuracy {
		return entry.Accuracy
	}
	return entry.Score
}

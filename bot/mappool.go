package bot

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tournabay/seedbot/errors"
	"github.com/tournabay/seedbot/interfaces"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/performance"
	"github.com/tournabay/seedbot/utils"
)

// MappoolManager 맵풀 비트맵의 등록과 모드별 난이도 변환을 담당합니다
type MappoolManager struct {
	storage            interfaces.StorageRepository
	client             interfaces.APIClient
	adjuster           interfaces.DifficultyAdjuster
	concurrencyManager *performance.AdaptiveConcurrencyManager

	// beatmapID → *sync.Mutex. 같은 비트맵의 변환 계산/저장을 직렬화합니다.
	beatmapLocks sync.Map
}

func NewMappoolManager(storage interfaces.StorageRepository, client interfaces.APIClient, adjuster interfaces.DifficultyAdjuster) *MappoolManager {
	return &MappoolManager{
		storage:            storage,
		client:             client,
		adjuster:           adjuster,
		concurrencyManager: performance.NewAdaptiveConcurrencyManager(),
	}
}

// GetAdjusted 비트맵의 모드 적용 난이도를 반환합니다.
// 저장된 변환 결과가 있으면 재사용하고, 없으면 계산 후 저장합니다.
func (manager *MappoolManager) GetAdjusted(ctx context.Context, beatmapID int, modifier models.Modifier) (*models.Beatmap, *models.AdjustedAttributes, error) {
	lock := manager.beatmapLock(beatmapID)
	lock.Lock()
	defer lock.Unlock()

	beatmap, err := manager.ensureBeatmap(ctx, beatmapID)
	if err != nil {
		return nil, nil, err
	}

	if existing, ok := beatmap.FindModification(modifier); ok {
		return beatmap, existing, nil
	}

	adjusted, err := manager.adjuster.Adjust(ctx, beatmapID, beatmap.Baseline, modifier)
	if err != nil {
		return nil, nil, err
	}
	if adjusted == nil {
		return nil, nil, errors.NewValidationError("MODIFIER_NOT_NUMERIC",
			fmt.Sprintf("모드 %s은(는) 수치 변환 규칙이 없습니다", modifier),
			fmt.Sprintf("모드 %s은(는) 난이도 수치를 변경하지 않습니다.", modifier))
	}

	beatmap.ReplaceModification(*adjusted)
	if err := manager.storage.SaveBeatmap(beatmap); err != nil {
		utils.Warn("Failed to persist modification %s for beatmap %d: %v", modifier, beatmapID, err)
	}

	return beatmap, adjusted, nil
}

// beatmapLock 비트맵 ID에 대응하는 뮤텍스를 반환합니다 (없으면 생성)
func (manager *MappoolManager) beatmapLock(beatmapID int) *sync.Mutex {
	lock, _ := manager.beatmapLocks.LoadOrStore(beatmapID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// ensureBeatmap 저장소에서 비트맵을 찾고, 없으면 osu! API에서 가져와 등록합니다
func (manager *MappoolManager) ensureBeatmap(ctx context.Context, beatmapID int) (*models.Beatmap, error) {
	if beatmap := manager.storage.GetBeatmap(beatmapID); beatmap != nil {
		return beatmap, nil
	}

	info, err := manager.client.GetBeatmap(ctx, beatmapID)
	if err != nil {
		return nil, errors.NewUpstreamError("BEATMAP_FETCH_FAILED",
			fmt.Sprintf("비트맵 %d 조회 실패", beatmapID), err)
	}

	beatmap := &models.Beatmap{
		ID:      info.BeatmapID,
		Artist:  info.Artist,
		Title:   info.Title,
		Version: info.Version,
		Creator: info.Creator,
		Baseline: models.BaselineAttributes{
			ApproachRate:      info.ApproachRate,
			CircleSize:        info.CircleSize,
			OverallDifficulty: info.Accuracy,
			HealthDrain:       info.HealthDrain,
			BPM:               int(math.Round(info.BPM)),
			MaxCombo:          info.MaxCombo,
			LengthSeconds:     info.TotalLength,
			StarRating:        info.StarRating,
		},
		CreatedAt: time.Now(),
	}

	if err := manager.storage.SaveBeatmap(beatmap); err != nil {
		return nil, errors.NewSystemError("BEATMAP_SAVE_FAILED",
			fmt.Sprintf("비트맵 %d 저장 실패", beatmapID), err)
	}

	utils.Info("Registered beatmap %d: %s", beatmapID, beatmap.DisplayName())
	return beatmap, nil
}

// PrepareRoom 방 맵풀 전체의 모드별 변환 결과를 병렬로 미리 계산합니다.
// 일부 비트맵이 실패해도 나머지는 계속 진행합니다.
func (manager *MappoolManager) PrepareRoom(ctx context.Context, room *models.QualifierRoom) (int, error) {
	if room == nil || len(room.MappoolIDs) == 0 {
		return 0, nil
	}

	modifierManager := models.GetModifierManager()
	modifiers := []models.Modifier{
		models.ModifierNoMod,
		models.ModifierHardRock,
		models.ModifierDoubleTime,
		models.ModifierEasy,
		models.ModifierHalfTime,
	}

	total := len(room.MappoolIDs) * len(modifiers)
	resultChan := performance.GetAdjustedAttrChannel(total)
	defer performance.PutAdjustedAttrChannel(resultChan)

	semaphore := performance.GetSemaphoreChannel(manager.concurrencyManager.GetCurrentLimit())
	defer performance.PutSemaphoreChannel(semaphore)

	var wg sync.WaitGroup
	var errorCount int64

	for _, beatmapID := range room.MappoolIDs {
		for _, modifier := range modifiers {
			if !modifierManager.IsNumeric(modifier) {
				continue
			}

			wg.Add(1)
			go func(id int, mod models.Modifier) {
				defer wg.Done()

				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				startTime := time.Now()
				_, adjusted, err := manager.GetAdjusted(ctx, id, mod)
				manager.concurrencyManager.RecordResponseTime(time.Since(startTime))

				if err != nil {
					utils.Warn("Failed to prepare beatmap %d (%s): %v", id, mod, err)
					atomic.AddInt64(&errorCount, 1)
					return
				}
				resultChan <- adjusted
			}(beatmapID, modifier)
		}
	}

	wg.Wait()
	close(resultChan)

	prepared := 0
	for range resultChan {
		prepared++
	}

	if errorCount > 0 {
		utils.Warn("Failed to prepare %d mappool variants for room %s", errorCount, room.ID)
	}
	utils.Info("Prepared %d/%d mappool variants for room %s", prepared, total, room.ID)
	return prepared, nil
}

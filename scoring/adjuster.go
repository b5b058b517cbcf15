package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/errors"
	"github.com/tournabay/seedbot/interfaces"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/utils"
)

// DifficultyAdjuster 노모드 기준 수치에 모드를 적용한 난이도를 계산합니다.
// 성급을 제외한 모든 필드는 닫힌 형식으로 변환하며, 성급만 외부 오라클에
// 위임합니다. 내부 상태가 없어 동시 호출에 안전합니다.
type DifficultyAdjuster struct {
	client          interfaces.APIClient
	modifierManager *models.ModifierManager
}

// NewDifficultyAdjuster 새로운 DifficultyAdjuster 인스턴스를 생성합니다
func NewDifficultyAdjuster(client interfaces.APIClient, modifierManager *models.ModifierManager) interfaces.DifficultyAdjuster {
	return &DifficultyAdjuster{
		client:          client,
		modifierManager: modifierManager,
	}
}

// Adjust 기준 수치에 모드를 적용한 결과를 반환합니다.
// 수치 변환 규칙이 없는 모드(HD/FM/TB 등)는 (nil, nil)을 반환합니다.
// 오라클 호출이 실패하면 부분 결과 없이 전체가 실패합니다.
func (da *DifficultyAdjuster) Adjust(ctx context.Context, beatmapID int, baseline models.BaselineAttributes, modifier models.Modifier) (*models.AdjustedAttributes, error) {
	if !da.modifierManager.IsNumeric(modifier) {
		utils.Debug("Modifier %s has no numeric transformation rules, skipping adjustment", modifier)
		return nil, nil
	}

	adjusted := &models.AdjustedAttributes{
		Modifier:          modifier,
		ApproachRate:      da.adjustTimingValue(baseline.ApproachRate, modifier, constants.ARMsMax, constants.ARMsMid, constants.ARMsMin),
		CircleSize:        da.adjustCircleSize(baseline.CircleSize, modifier),
		OverallDifficulty: da.adjustTimingValue(baseline.OverallDifficulty, modifier, constants.ODMsMax, constants.ODMsMid, constants.ODMsMin),
		HealthDrain:       da.adjustLinear(baseline.HealthDrain, modifier),
		BPM:               da.adjustBPM(baseline.BPM, modifier),
		MaxCombo:          baseline.MaxCombo,
		LengthSeconds:     da.adjustLength(baseline.LengthSeconds, modifier),
	}

	// 성급은 히트오브젝트 타이밍에 의존하므로 외부 오라클에서만 얻을 수 있음
	starRating, err := da.client.GetStarRating(ctx, beatmapID, da.modifierManager.GetBits(modifier))
	if err != nil {
		return nil, errors.NewUpstreamError("DIFFICULTY_SOURCE_UNAVAILABLE",
			fmt.Sprintf("비트맵 %d의 성급 조회 실패 (modifier: %s)", beatmapID, modifier), err)
	}
	adjusted.StarRating = starRating

	return adjusted, nil
}

// adjustLength 모드 적용 후 맵 길이(초)를 계산합니다
func (da *DifficultyAdjuster) adjustLength(length int, modifier models.Modifier) int {
	switch modifier {
	case models.ModifierDoubleTime:
		return int(math.Floor(float64(length) * constants.DoubleTimeLengthRatio))
	case models.ModifierHalfTime:
		return int(math.Floor(float64(length) * constants.HalfTimeLengthRatio))
	default:
		return length
	}
}

// adjustBPM 모드 적용 후 BPM을 계산합니다
func (da *DifficultyAdjuster) adjustBPM(bpm int, modifier models.Modifier) int {
	switch modifier {
	case models.ModifierDoubleTime:
		return int(math.Ceil(float64(bpm) * constants.DoubleTimeLengthRatio))
	case models.ModifierHalfTime:
		return int(math.Ceil(float64(bpm) * constants.HalfTimeLengthRatio))
	default:
		return bpm
	}
}

// adjustCircleSize 모드 적용 후 서클 크기를 계산합니다
func (da *DifficultyAdjuster) adjustCircleSize(cs float64, modifier models.Modifier) float64 {
	switch modifier {
	case models.ModifierHardRock:
		return round2(math.Min(cs*constants.HardRockCSMultiplier, constants.MaxDifficultyValue))
	case models.ModifierEasy:
		return round2(math.Max(cs*constants.EasyStatMultiplier, constants.MinCircleSize))
	default:
		return cs
	}
}

// adjustLinear HP처럼 단순 배율/클램프만 적용되는 수치를 계산합니다
func (da *DifficultyAdjuster) adjustLinear(value float64, modifier models.Modifier) float64 {
	switch modifier {
	case models.ModifierHardRock:
		return round2(math.Min(value*constants.HardRockStatMultiplier, constants.MaxDifficultyValue))
	case models.ModifierEasy:
		return round2(math.Max(value*constants.EasyStatMultiplier, 0))
	default:
		return value
	}
}

// adjustTimingValue AR/OD를 계산합니다. HR/EZ는 단순 배율이지만 DT/HT는
// 난이도 값을 ms 타이밍으로 변환해 배속을 적용한 뒤 역변환해야 합니다.
func (da *DifficultyAdjuster) adjustTimingValue(value float64, modifier models.Modifier, msMax, msMid, msMin float64) float64 {
	switch modifier {
	case models.ModifierHardRock, models.ModifierEasy:
		return da.adjustLinear(value, modifier)
	case models.ModifierDoubleTime:
		ms := difficultyToMs(value, msMax, msMid, msMin)
		return round2(msToDifficulty(ms/constants.DoubleTimeClockRate, msMax, msMid, msMin))
	case models.ModifierHalfTime:
		ms := difficultyToMs(value, msMax, msMid, msMin)
		return round2(msToDifficulty(ms*constants.DoubleTimeClockRate, msMax, msMid, msMin))
	default:
		return value
	}
}

// difficultyToMs 난이도 값을 ms 타이밍으로 변환합니다.
// (0, 5, 10) 세 구간점 사이를 선형 보간합니다.
func difficultyToMs(value, msMax, msMid, msMin float64) float64 {
	if value <= 5 {
		return msMax - (msMax-msMid)*value/5
	}
	return msMid - (msMid-msMin)*(value-5)/5
}

// msToDifficulty difficultyToMs의 역함수입니다. 결과는 [0, 10]으로 클램프됩니다.
func msToDifficulty(ms, msMax, msMid, msMin float64) float64 {
	var value float64
	if ms >= msMid {
		value = (msMax - ms) * 5 / (msMax - msMid)
	} else {
		value = 5 + (msMid-ms)*5/(msMid-msMin)
	}

	if value < 0 {
		return 0
	}
	if value > constants.MaxDifficultyValue {
		return constants.MaxDifficultyValue
	}
	return value
}

// round2 소수점 둘째 자리로 반올림합니다
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

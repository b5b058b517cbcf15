package performance

import (
	"strings"
	"sync"

	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/models"
)

var (
	// StandingsRowSlicePool 순위표 행 슬라이스 풀
	StandingsRowSlicePool = sync.Pool{
		New: func() interface{} {
			slice := make([]models.StandingsRow, 0, 32)
			return &slice
		},
	}

	// AdjustedAttrChanPool 난이도 변환 결과 채널 풀
	AdjustedAttrChanPool = sync.Pool{
		New: func() interface{} {
			ch := make(chan *models.AdjustedAttributes, 100)
			return ch
		},
	}

	// SemaphoreChanPool 세마포어 채널 풀
	SemaphoreChanPool = sync.Pool{
		New: func() interface{} {
			ch := make(chan struct{}, 20)
			return ch
		},
	}

	// StringBuilderPool 문자열 빌더 풀 (순위표/로그 메시지 생성용)
	StringBuilderPool = sync.Pool{
		New: func() interface{} {
			return &strings.Builder{}
		},
	}
)

// GetStandingsRowSlice 재사용 가능한 순위표 행 슬라이스를 가져옵니다
func GetStandingsRowSlice() *[]models.StandingsRow {
	slice := StandingsRowSlicePool.Get().(*[]models.StandingsRow)
	// 길이만 0으로 초기화하고 용량은 유지
	*slice = (*slice)[:0]
	return slice
}

// PutStandingsRowSlice 순위표 행 슬라이스를 풀에 반환합니다
func PutStandingsRowSlice(slice *[]models.StandingsRow) {
	// 메모리 누수 방지를 위해 큰 슬라이스는 풀에 반환하지 않음
	if cap(*slice) <= constants.MaxPoolSliceCapacity {
		StandingsRowSlicePool.Put(slice)
	}
}

// GetAdjustedAttrChannel 재사용 가능한 난이도 변환 결과 채널을 가져옵니다
func GetAdjustedAttrChannel(bufferSize int) chan *models.AdjustedAttributes {
	if bufferSize <= constants.MaxPoolChannelCapacity {
		ch := AdjustedAttrChanPool.Get().(chan *models.AdjustedAttributes)
		// 채널에 남은 데이터 제거 후 반환
		for {
			select {
			case <-ch:
			default:
				return ch
			}
		}
	}
	// 큰 버퍼가 필요하면 새로 생성
	return make(chan *models.AdjustedAttributes, bufferSize)
}

// PutAdjustedAttrChannel 난이도 변환 결과 채널을 풀에 반환합니다
func PutAdjustedAttrChannel(ch chan *models.AdjustedAttributes) {
	if cap(ch) > constants.MaxPoolChannelCapacity {
		return
	}
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				// 닫힌 채널은 풀에 반환하지 않음
				return
			}
		default:
			AdjustedAttrChanPool.Put(ch)
			return
		}
	}
}

// GetSemaphoreChannel 재사용 가능한 세마포어 채널을 가져옵니다
func GetSemaphoreChannel(size int) chan struct{} {
	if size <= constants.MaxPoolSemaphoreSize {
		ch := SemaphoreChanPool.Get().(chan struct{})
		for {
			select {
			case <-ch:
			default:
				return ch
			}
		}
	}
	return make(chan struct{}, size)
}

// PutSemaphoreChannel 세마포어 채널을 풀에 반환합니다
func PutSemaphoreChannel(ch chan struct{}) {
	if cap(ch) <= constants.MaxPoolSemaphoreSize {
		for {
			select {
			case <-ch:
			default:
				SemaphoreChanPool.Put(ch)
				return
			}
		}
	}
}

// GetStringBuilder 재사용 가능한 문자열 빌더를 가져옵니다
func GetStringBuilder() *strings.Builder {
	sb := StringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// PutStringBuilder 문자열 빌더를 풀에 반환합니다
func PutStringBuilder(sb *strings.Builder) {
	// 너무 큰 빌더는 풀에 반환하지 않음 (메모리 누수 방지)
	if sb.Cap() <= constants.MaxStringBuilderSize {
		StringBuilderPool.Put(sb)
	}
}

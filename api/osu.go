package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/utils"
)

// OsuClient osu! API와 통신하는 클라이언트입니다
type OsuClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// BeatmapInfo osu! 비트맵 기본 정보를 나타냅니다 (노모드 기준)
type BeatmapInfo struct {
	BeatmapID     int     `json:"beatmapId"`
	Artist        string  `json:"artist"`
	Title         string  `json:"title"`
	Version       string  `json:"version"`
	Creator       string  `json:"creator"`
	ApproachRate  float64 `json:"ar"`
	CircleSize    float64 `json:"cs"`
	Accuracy      float64 `json:"accuracy"` // OD
	HealthDrain   float64 `json:"hp"`
	BPM           float64 `json:"bpm"`
	MaxCombo      int     `json:"maxCombo"`
	TotalLength   int     `json:"totalLength"` // 초 단위
	StarRating    float64 `json:"starRating"`
}

// MatchInfo 매치 로비의 기본 정보를 나타냅니다
type MatchInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LobbyScore 한 플레이어의 게임 결과를 나타냅니다
type LobbyScore struct {
	UserID   int     `json:"userId"`
	Score    int     `json:"score"`
	Accuracy float64 `json:"accuracy"`
	MaxCombo int     `json:"maxCombo"`
	Passed   bool    `json:"passed"`
}

// LobbyGame 로비에서 진행된 한 게임을 나타냅니다
type LobbyGame struct {
	BeatmapID int          `json:"beatmapId"`
	Mods      int          `json:"mods"`
	Scores    []LobbyScore `json:"scores"`
}

// LobbyEvent 로비 이벤트를 나타냅니다. 워밍업/중단된 게임은 Game이 nil입니다.
type LobbyEvent struct {
	Game *LobbyGame `json:"game"`
}

// LobbyUser 로비에 접속했던 사용자를 나타냅니다
type LobbyUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// MatchLobby 멀티 로비 전체 기록을 나타냅니다
type MatchLobby struct {
	Match  MatchInfo    `json:"match"`
	Events []LobbyEvent `json:"events"`
	Users  []LobbyUser  `json:"users"`
}

// NewOsuClient 새로운 OsuClient 인스턴스를 생성합니다
func NewOsuClient(apiKey string) *OsuClient {
	utils.Debug("Creating new osu! API client")
	return &OsuClient{
		client: &http.Client{
			Timeout: constants.APITimeout,
		},
		baseURL: constants.OsuAPIBaseURL,
		apiKey:  apiKey,
	}
}

// doRequest 공통 HTTP 요청 및 재시도 로직
func (client *OsuClient) doRequest(ctx context.Context, url, requestType, target string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < constants.MaxRetries; attempt++ {
		if attempt > 0 {
			utils.Debug("Retrying %s fetch for %s (attempt %d/%d)", requestType, target, attempt+1, constants.MaxRetries)
			time.Sleep(constants.RetryDelay * time.Duration(attempt))
		}

		utils.Debug("Fetching %s from: %s", requestType, url)

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			lastErr = fmt.Errorf("요청 생성 실패: %w", err)
			continue
		}

		resp, err := client.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%s 조회 실패: %w", requestType, err)
			utils.Warn("Attempt %d failed for %s %s: %v", attempt+1, requestType, target, err)
			continue
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("요청 한도 초과")
			utils.Warn("Rate limited for %s %s, attempt %d", requestType, target, attempt+1)
			time.Sleep(constants.RetryDelay * constants.APIRetryMultiplier)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("API가 상태 코드 %d를 반환했습니다", resp.StatusCode)
			utils.Warn("API returned non-200 status for %s %s: %d", requestType, target, resp.StatusCode)
			if resp.StatusCode >= constants.HTTPServerErrorThreshold {
				continue // 서버 에러는 재시도
			}
			break // 클라이언트 에러는 즉시 반환
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = fmt.Errorf("응답 읽기 실패: %w", err)
			utils.Error("Failed to read %s response body for %s: %v", requestType, target, err)
			continue
		}

		return body, nil
	}

	utils.Error("Failed to fetch %s for %s after %d attempts: %v", requestType, target, constants.MaxRetries, lastErr)
	return nil, lastErr
}

// GetBeatmap 지정된 비트맵의 노모드 기준 정보를 가져옵니다.
// 비트맵 최초 등록 시 한 번 호출되며, 운영자의 강제 재계산 외에는 재호출되지 않습니다.
func (client *OsuClient) GetBeatmap(ctx context.Context, beatmapID int) (*BeatmapInfo, error) {
	if beatmapID <= 0 {
		return nil, fmt.Errorf("잘못된 비트맵 ID: %d", beatmapID)
	}

	url := fmt.Sprintf("%s/get_beatmaps?k=%s&b=%d", client.baseURL, client.apiKey, beatmapID)
	body, err := client.doRequest(ctx, url, "beatmap", strconv.Itoa(beatmapID))
	if err != nil {
		return nil, err
	}

	var beatmaps []BeatmapInfo
	if err := json.Unmarshal(body, &beatmaps); err != nil {
		utils.Error("Failed to parse beatmap %d: %v", beatmapID, err)
		return nil, fmt.Errorf("비트맵 정보 파싱 실패: %w", err)
	}

	if len(beatmaps) == 0 {
		return nil, fmt.Errorf("비트맵을 찾을 수 없습니다: %d", beatmapID)
	}

	utils.Debug("Successfully fetched beatmap %d (%s - %s [%s])",
		beatmapID, beatmaps[0].Artist, beatmaps[0].Title, beatmaps[0].Version)
	return &beatmaps[0], nil
}

// GetStarRating 지정된 비트맵의 모드 적용 성급을 가져옵니다.
// 성급은 히트오브젝트 타이밍에 의존하므로 닫힌 형식으로 근사할 수 없고
// 항상 외부 오라클에 위임합니다.
func (client *OsuClient) GetStarRating(ctx context.Context, beatmapID int, modifierBits int) (float64, error) {
	if beatmapID <= 0 {
		return 0, fmt.Errorf("잘못된 비트맵 ID: %d", beatmapID)
	}

	url := fmt.Sprintf("%s/get_beatmaps?k=%s&b=%d&mods=%d", client.baseURL, client.apiKey, beatmapID, modifierBits)
	body, err := client.doRequest(ctx, url, "star rating", strconv.Itoa(beatmapID))
	if err != nil {
		return 0, err
	}

	var beatmaps []BeatmapInfo
	if err := json.Unmarshal(body, &beatmaps); err != nil {
		utils.Error("Failed to parse star rating for %d: %v", beatmapID, err)
		return 0, fmt.Errorf("성급 파싱 실패: %w", err)
	}

	if len(beatmaps) == 0 {
		return 0, fmt.Errorf("비트맵을 찾을 수 없습니다: %d", beatmapID)
	}

	utils.Debug("Successfully fetched star rating for %d (mods=%d): %.2f",
		beatmapID, modifierBits, beatmaps[0].StarRating)
	return beatmaps[0].StarRating, nil
}

// GetMatchLobby 지정된 멀티 로비의 전체 기록을 가져옵니다
func (client *OsuClient) GetMatchLobby(ctx context.Context, lobbyID string) (*MatchLobby, error) {
	if !utils.IsValidLobbyID(lobbyID) {
		return nil, fmt.Errorf("잘못된 로비 ID 형식: %s", lobbyID)
	}

	url := fmt.Sprintf("%s/get_match?k=%s&mp=%s", client.baseURL, client.apiKey, lobbyID)
	body, err := client.doRequest(ctx, url, "match lobby", lobbyID)
	if err != nil {
		return nil, err
	}

	var lobby MatchLobby
	if err := json.Unmarshal(body, &lobby); err != nil {
		utils.Error("Failed to parse match lobby %s: %v", lobbyID, err)
		return nil, fmt.Errorf("매치 로비 파싱 실패: %w", err)
	}

	utils.Debug("Successfully fetched match lobby %s (%d events, %d users)",
		lobbyID, len(lobby.Events), len(lobby.Users))
	return &lobby, nil
}

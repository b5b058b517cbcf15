package interfaces

import (
	"context"

	"github.com/tournabay/seedbot/api"
)

// APIClient osu! API와의 통신을 위한 인터페이스입니다
type APIClient interface {
	GetBeatmap(ctx context.Context, beatmapID int) (*api.BeatmapInfo, error)
	GetStarRating(ctx context.Context, beatmapID int, modifierBits int) (float64, error)
	GetMatchLobby(ctx context.Context, lobbyID string) (*api.MatchLobby, error)
}

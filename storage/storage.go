package storage

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/tournabay/seedbot/interfaces"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/utils"
)

// FirebaseStorage Firestore를 사용하여 토너먼트 데이터를 관리하는 저장소입니다.
//
// 컬렉션 구조:
//
//	tournaments/{tournamentID}
//	tournaments/{tournamentID}/results/{unitID}
//	rooms/{roomID}
//	beatmaps/{beatmapID}
type FirebaseStorage struct {
	client         *firestore.Client
	ctx            context.Context
	app            *firebase.App
	reconnectMutex sync.Mutex
}

// 에러 복구 관련 상수
const (
	maxReconnectAttempts = 3
	reconnectDelay       = 2 * time.Second
)

// NewStorage 새로운 FirebaseStorage 인스턴스를 생성하고 Firestore에 연결합니다.
func NewStorage() (interfaces.StorageRepository, error) {
	utils.Info("Initializing Firebase storage system")
	ctx := context.Background()

	firebaseCreds := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if firebaseCreds == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_JSON environment variable not set")
	}

	opt := option.WithCredentialsJSON([]byte(firebaseCreds))

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore client: %v", err)
	}

	s := &FirebaseStorage{
		client: client,
		ctx:    ctx,
		app:    app,
	}

	utils.Info("Firebase storage system initialized successfully")
	return s, nil
}

// GetClient Firestore 클라이언트를 반환합니다 (헬스체크용)
func (s *FirebaseStorage) GetClient() interface{} {
	return s.client
}

// reconnectFirestore Firestore 클라이언트를 재연결합니다
func (s *FirebaseStorage) reconnectFirestore() error {
	s.reconnectMutex.Lock()
	defer s.reconnectMutex.Unlock()

	utils.Warn("Attempting to reconnect to Firestore")

	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		// 기존 클라이언트 종료
		if s.client != nil {
			s.client.Close()
		}

		// 새 클라이언트 생성
		newClient, err := s.app.Firestore(s.ctx)
		if err != nil {
			utils.Warn("Firestore reconnection attempt %d/%d failed: %v", attempt, maxReconnectAttempts, err)
			if attempt < maxReconnectAttempts {
				time.Sleep(reconnectDelay * time.Duration(attempt)) // 점진적 지연
			}
			continue
		}

		s.client = newClient
		utils.Info("Successfully reconnected to Firestore on attempt %d", attempt)
		return nil
	}

	return fmt.Errorf("failed to reconnect to Firestore after %d attempts", maxReconnectAttempts)
}

// executeWithRetry Firestore 작업을 재시도 로직과 함께 실행합니다
func (s *FirebaseStorage) executeWithRetry(operation func() error) error {
	err := operation()
	if err != nil {
		// Firestore 연결 오류인 경우 재연결 시도
		if isFirestoreConnectionError(err) {
			utils.Warn("Detected Firestore connection error, attempting reconnection: %v", err)
			if reconnectErr := s.reconnectFirestore(); reconnectErr != nil {
				return fmt.Errorf("operation failed and reconnection failed: %v (original: %v)", reconnectErr, err)
			}
			// 재연결 성공 시 작업 재시도
			return operation()
		}
	}
	return err
}

// isFirestoreConnectionError Firestore 연결 관련 에러인지 확인합니다
func isFirestoreConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") ||
		strings.Contains(errStr, "deadline exceeded")
}

// GetTournament ID로 토너먼트를 Firestore에서 조회합니다.
func (s *FirebaseStorage) GetTournament(tournamentID string) *models.Tournament {
	doc, err := s.client.Collection("tournaments").Doc(tournamentID).Get(s.ctx)
	if err != nil {
		utils.Error("Failed to get tournament %s: %v", tournamentID, err)
		return nil
	}

	var t models.Tournament
	doc.DataTo(&t)
	t.ID = doc.Ref.ID
	return &t
}

// GetActiveTournament 현재 활성화된 토너먼트를 Firestore에서 조회합니다.
func (s *FirebaseStorage) GetActiveTournament() *models.Tournament {
	iter := s.client.Collection("tournaments").Where("isActive", "==", true).Limit(1).Documents(s.ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil
	}
	if err != nil {
		utils.Error("Failed to get active tournament: %v", err)
		return nil
	}

	var t models.Tournament
	doc.DataTo(&t)
	t.ID = doc.Ref.ID
	return &t
}

// GetRoom ID로 예선 방을 Firestore에서 조회합니다.
func (s *FirebaseStorage) GetRoom(roomID string) *models.QualifierRoom {
	doc, err := s.client.Collection("rooms").Doc(roomID).Get(s.ctx)
	if err != nil {
		utils.Error("Failed to get qualifier room %s: %v", roomID, err)
		return nil
	}

	var r models.QualifierRoom
	doc.DataTo(&r)
	r.ID = doc.Ref.ID
	return &r
}

// GetBeatmap ID로 비트맵을 Firestore에서 조회합니다.
func (s *FirebaseStorage) GetBeatmap(beatmapID int) *models.Beatmap {
	doc, err := s.client.Collection("beatmaps").Doc(strconv.Itoa(beatmapID)).Get(s.ctx)
	if err != nil {
		return nil
	}

	var b models.Beatmap
	doc.DataTo(&b)
	return &b
}

// SaveBeatmap 비트맵과 모드별 변환 결과를 Firestore에 저장합니다.
func (s *FirebaseStorage) SaveBeatmap(beatmap *models.Beatmap) error {
	return s.executeWithRetry(func() error {
		_, err := s.client.Collection("beatmaps").Doc(strconv.Itoa(beatmap.ID)).Set(s.ctx, beatmap)
		if err != nil {
			return fmt.Errorf("failed to save beatmap %d: %w", beatmap.ID, err)
		}
		utils.Debug("Saved beatmap %d with %d modifications", beatmap.ID, len(beatmap.Modifications))
		return nil
	})
}

// GetResults 토너먼트의 모든 예선 결과를 Firestore에서 조회합니다.
func (s *FirebaseStorage) GetResults(tournamentID string) []models.QualificationResult {
	var results []models.QualificationResult
	iter := s.client.Collection("tournaments").Doc(tournamentID).Collection("results").Documents(s.ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			utils.Error("Failed to iterate qualification results: %v", err)
			return results
		}

		var r models.QualificationResult
		doc.DataTo(&r)
		r.ID = doc.Ref.ID
		results = append(results, r)
	}
	return results
}

// SaveResults 토너먼트의 예선 결과 전체를 트랜잭션으로 교체합니다.
// 일부만 반영되는 일이 없도록 전체 성공 또는 전체 실패입니다.
func (s *FirebaseStorage) SaveResults(tournamentID string, results []models.QualificationResult) error {
	return s.executeWithRetry(func() error {
		col := s.client.Collection("tournaments").Doc(tournamentID).Collection("results")

		err := s.client.RunTransaction(s.ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			existing, err := tx.Documents(col).GetAll()
			if err != nil {
				return err
			}

			keep := make(map[string]bool, len(results))
			for i := range results {
				keep[results[i].UnitID] = true
				if err := tx.Set(col.Doc(results[i].UnitID), results[i]); err != nil {
					return err
				}
			}
			for _, doc := range existing {
				if !keep[doc.Ref.ID] {
					if err := tx.Delete(doc.Ref); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to save qualification results: %w", err)
		}

		utils.Debug("Saved %d qualification results for tournament %s", len(results), tournamentID)
		return nil
	})
}

// DeleteResult 유닛의 예선 결과 문서를 Firestore에서 삭제합니다.
func (s *FirebaseStorage) DeleteResult(tournamentID, unitID string) error {
	return s.executeWithRetry(func() error {
		_, err := s.client.Collection("tournaments").Doc(tournamentID).Collection("results").Doc(unitID).Delete(s.ctx)
		if err != nil {
			return fmt.Errorf("failed to delete result for unit %s: %w", unitID, err)
		}
		utils.Info("Removed qualification result from Firestore: %s", unitID)
		return nil
	})
}

// Close Firestore 클라이언트를 종료합니다.
func (s *FirebaseStorage) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

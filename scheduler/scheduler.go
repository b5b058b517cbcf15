package scheduler

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tournabay/seedbot/bot"
	"github.com/tournabay/seedbot/config"
	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/utils"
)

type Scheduler struct {
	session          *discordgo.Session
	config           *config.Config
	standingsManager *bot.StandingsManager
	ticker           *time.Ticker
	customTicker     *time.Ticker
	stopChan         chan bool
	customStopChan   chan bool
}

func NewScheduler(session *discordgo.Session, config *config.Config, standingsManager *bot.StandingsManager) *Scheduler {
	return &Scheduler{
		session:          session,
		config:           config,
		standingsManager: standingsManager,
		stopChan:         make(chan bool),
		customStopChan:   make(chan bool),
	}
}

func (s *Scheduler) StartDailyStandings() {
	s.ticker = time.NewTicker(constants.SchedulerInterval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.sendDailyStandings()
			case <-s.stopChan:
				return
			}
		}
	}()

	utils.Info("Daily standings scheduler started")
}

func (s *Scheduler) StartCustomSchedule(hour, minute int) {
	// 기존 커스텀 스케줄러가 있다면 정리
	s.stopCustomScheduler()

	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	if nextRun.Before(now) {
		nextRun = nextRun.Add(constants.SchedulerInterval)
	}

	duration := nextRun.Sub(now)

	go func() {
		// 첫 실행까지 대기, 중단 신호 체크
		select {
		case <-time.After(duration):
			s.sendDailyStandings()
		case <-s.customStopChan:
			return
		}

		// 정기적 실행 시작
		s.customTicker = time.NewTicker(constants.SchedulerInterval)
		defer s.customTicker.Stop()

		for {
			select {
			case <-s.customTicker.C:
				s.sendDailyStandings()
			case <-s.customStopChan:
				return
			}
		}
	}()

	utils.Info("Daily standings scheduler set to run daily at %02d:%02d", hour, minute)
}

func (s *Scheduler) sendDailyStandings() {
	if s.config.Discord.ChannelID == "" {
		utils.Error("Cannot send standings: channel ID not configured")
		return
	}

	// 활성화된 토너먼트가 있는지 확인
	storage := s.standingsManager.GetStorage()
	tournament := storage.GetActiveTournament()
	if tournament == nil {
		utils.Debug("No active tournament - skipping daily standings")
		return
	}

	err := s.standingsManager.SendDailyStandings(s.session, s.config.Discord.ChannelID)
	if err != nil {
		utils.Error("Failed to send daily standings: %v", err)
		return
	}

	utils.Info("Daily standings sent successfully")
}

func (s *Scheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}

	s.stopCustomScheduler()

	select {
	case s.stopChan <- true:
	default:
		// channel is full or no receiver, skip
	}

	utils.Info("Scheduler stopped")
}

func (s *Scheduler) stopCustomScheduler() {
	if s.customTicker != nil {
		s.customTicker.Stop()
		s.customTicker = nil
	}

	select {
	case s.customStopChan <- true:
	default:
		// channel is full or no receiver, skip
	}
}

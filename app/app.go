package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/tournabay/seedbot/api"
	"github.com/tournabay/seedbot/bot"
	"github.com/tournabay/seedbot/config"
	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/health"
	"github.com/tournabay/seedbot/interfaces"
	"github.com/tournabay/seedbot/models"
	"github.com/tournabay/seedbot/scheduler"
	"github.com/tournabay/seedbot/scoring"
	"github.com/tournabay/seedbot/sheets"
	"github.com/tournabay/seedbot/storage"
	"github.com/tournabay/seedbot/telemetry"
	"github.com/tournabay/seedbot/utils"
)

type Application struct {
	config           *config.Config
	session          *discordgo.Session
	storage          interfaces.StorageRepository
	apiClient        interfaces.APIClient
	engine           interfaces.QualificationEngine
	adjuster         interfaces.DifficultyAdjuster
	commandHandler   *bot.CommandHandler
	standingsManager *bot.StandingsManager
	mappoolManager   *bot.MappoolManager
	sheetsClient     *sheets.SheetsClient
	metricsClient    *telemetry.MetricsClient
	scheduler        *scheduler.Scheduler
}

func New() (*Application, error) {
	app := &Application{}

	if err := app.loadConfig(); err != nil {
		return nil, err
	}

	if err := app.initializeDependencies(); err != nil {
		return nil, err
	}

	if err := app.initializeDiscord(); err != nil {
		return nil, err
	}

	app.setupHandlers()
	app.initializeScheduler()

	return app, nil
}

func (app *Application) loadConfig() error {
	app.config = config.Load()
	if err := app.config.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func (app *Application) initializeDependencies() error {
	// 캐시된 API 클라이언트 인스턴스 생성
	app.apiClient = api.NewCachedOsuClient(app.config.Osu.APIKey)

	store, err := storage.NewStorage()
	if err != nil {
		// Firestore를 쓸 수 없으면 인메모리 저장소로 대체합니다.
		// 재시작 시 데이터가 사라지므로 운영에서는 자격증명 설정이 필요합니다.
		utils.Warn("Firestore unavailable, falling back to in-memory storage: %v", err)
		app.storage = storage.NewInMemoryStorage()
	} else {
		app.storage = store

		// Firestore 헬스체크 등록
		if provider, ok := store.(health.ClientProvider); ok {
			health.SetStorageProvider(provider)
			utils.Info("Firestore health checker registered")
		}
	}

	// Google Sheets 내보내기는 선택 기능이라 실패해도 봇은 기동합니다
	sheetsClient, err := sheets.NewSheetsClient()
	if err != nil {
		utils.Warn("Google Sheets export disabled: %v", err)
	} else {
		app.sheetsClient = sheetsClient
	}

	if app.config.Telemetry.Enabled {
		app.metricsClient = telemetry.NewMetricsClient(app.config.Telemetry.ProjectID)
	} else {
		app.metricsClient = telemetry.NewMetricsClient("")
	}

	return nil
}

func (app *Application) initializeDiscord() error {
	session, err := discordgo.New("Bot " + app.config.Discord.Token)
	if err != nil {
		return fmt.Errorf("디스코드 세션 생성 실패: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent | discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	app.session = session
	return nil
}

func (app *Application) setupHandlers() {
	// 의존성 주입을 통한 컴포넌트 생성
	app.adjuster = scoring.NewDifficultyAdjuster(app.apiClient, models.GetModifierManager())
	app.engine = scoring.NewQualificationEngine(app.storage, app.apiClient)
	app.standingsManager = bot.NewStandingsManager(app.storage, app.engine)
	app.mappoolManager = bot.NewMappoolManager(app.storage, app.apiClient, app.adjuster)

	deps := bot.NewCommandDependencies(
		app.storage,
		app.apiClient,
		app.engine,
		app.adjuster,
		app.standingsManager,
		app.mappoolManager,
		app.sheetsClient,
		app.metricsClient,
	)
	app.commandHandler = bot.NewCommandHandler(deps)

	app.session.AddHandler(app.commandHandler.HandleMessage)
	app.session.AddHandler(app.handleReady)
}

func (app *Application) initializeScheduler() {
	app.scheduler = scheduler.NewScheduler(app.session, app.config, app.standingsManager)
}

func (app *Application) Start() error {
	if err := app.session.Open(); err != nil {
		return fmt.Errorf("웹소켓 연결 실패: %w", err)
	}

	if app.config.Schedule.Enabled && app.config.Features.EnableAutoStandings {
		app.scheduler.StartCustomSchedule(
			app.config.Schedule.StandingsHour,
			app.config.Schedule.StandingsMinute,
		)
		utils.Info("매일 %02d:%02d에 자동으로 순위표가 띄워집니다.",
			app.config.Schedule.StandingsHour, app.config.Schedule.StandingsMinute)
	} else {
		utils.Warn("DISCORD_CHANNEL_ID가 설정되지 않았습니다. 자동 순위표가 비활성화되었습니다.")
	}

	app.warmupMappoolCache()

	app.printStartupMessage()
	return nil
}

// warmupMappoolCache 제출 이력이 있는 방들의 맵풀을 미리 캐시에 적재합니다
func (app *Application) warmupMappoolCache() {
	cachedClient, ok := app.apiClient.(*api.CachedOsuClient)
	if !ok {
		return
	}

	tournament := app.storage.GetActiveTournament()
	if tournament == nil {
		return
	}

	seenRooms := make(map[string]bool)
	var beatmapIDs []int
	for _, result := range app.storage.GetResults(tournament.ID) {
		if result.RoomID == "" || seenRooms[result.RoomID] {
			continue
		}
		seenRooms[result.RoomID] = true

		room := app.storage.GetRoom(result.RoomID)
		if room == nil {
			continue
		}
		beatmapIDs = append(beatmapIDs, room.MappoolIDs...)
	}
	if len(beatmapIDs) == 0 {
		return
	}

	modifierManager := models.GetModifierManager()
	var modifierBits []int
	for _, modifier := range []models.Modifier{
		models.ModifierNoMod,
		models.ModifierHardRock,
		models.ModifierDoubleTime,
	} {
		modifierBits = append(modifierBits, modifierManager.GetBits(modifier))
	}

	if err := cachedClient.WarmupMappool(beatmapIDs, modifierBits); err != nil {
		utils.Warn("Mappool cache warmup failed: %v", err)
	}
}

func (app *Application) printStartupMessage() {
	utils.Info("osu! Qualifier Bot v0.1.0")
	utils.Info("📋 사용 가능한 명령어: !help")
	if app.config.Schedule.Enabled {
		utils.Info("⏰ 매일 %02d:%02d에 자동으로 순위표가 전송됩니다.",
			app.config.Schedule.StandingsHour, app.config.Schedule.StandingsMinute)
	}
}

func (app *Application) Run() error {
	if err := app.Start(); err != nil {
		return err
	}

	// 종료 신호 대기
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return app.Stop()
}

func (app *Application) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	utils.Info("Discord bot connected successfully as %s#%s", event.User.Username, event.User.Discriminator)
	utils.Info("Bot is serving %d guilds", len(event.Guilds))

	// 봇 상태 설정
	err := s.UpdateGameStatus(0, constants.BotStatusMessage)
	if err != nil {
		utils.Warn("Failed to set bot status: %v", err)
	}
}

// flushCacheStats 종료 전 캐시 통계를 로그와 원격 모니터링으로 내보냅니다
func (app *Application) flushCacheStats() {
	cachedClient, ok := app.apiClient.(*api.CachedOsuClient)
	if !ok {
		return
	}

	stats := cachedClient.GetCacheStats()
	utils.Info("📊 %s", stats.String())

	if app.metricsClient != nil {
		app.metricsClient.SendCacheMetrics(stats.TotalCalls, stats.CacheHits, stats.CacheMisses, stats.HitRate)
	}
}

func (app *Application) Stop() error {
	utils.Info("🔄 봇을 종료하는 중...")

	// 종료 전 캐시 통계 출력
	app.flushCacheStats()

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	// API 클라이언트 종료
	if cachedClient, ok := app.apiClient.(*api.CachedOsuClient); ok {
		cachedClient.Close()
	}

	if app.metricsClient != nil {
		app.metricsClient.Close()
	}

	if app.storage != nil {
		if err := app.storage.Close(); err != nil {
			utils.Warn("Failed to close storage: %v", err)
		}
	}

	if app.session != nil {
		app.session.Close()
	}

	utils.Info("봇이 정상적으로 종료되었습니다.")
	return nil
}

package handler

import (
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	journal   *service.JournalService
	favorites *service.FavoriteService
	stats     *service.StatsService
	pets      *service.PetService
	quests    *service.QuestService
	battles   *service.BattleService
	social    *service.SocialService
	chat      *service.ChatService
	scores    *service.LeaderboardService
	health    *service.HealthService
	billing   *service.BillingService
	jwtSecret string
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, jwtSecret, stripeSecret, uploadDir, uploadURL string) *API {
	scores := service.NewLeaderboardService(db)

	return &API{
		db:        db,
		journal:   service.NewJournalService(db),
		favorites: service.NewFavoriteService(db),
		stats:     service.NewStatsService(db),
		pets:      service.NewPetService(db),
		quests:    service.NewQuestService(db, scores),
		battles:   service.NewBattleService(db, scores),
		social:    service.NewSocialService(db),
		chat:      service.NewChatService(db),
		scores:    scores,
		health:    service.NewHealthService(db),
		billing:   service.NewBillingService(db, stripeSecret),
		jwtSecret: jwtSecret,
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Billing exposes the billing service so main can rewire its HTTP client.
func (a *API) Billing() *service.BillingService {
	return a.billing
}

// SeedDefaults fills the quest and challenge catalogs on startup.
func (a *API) SeedDefaults() error {
	if err := a.quests.SeedDefaults(); err != nil {
		return err
	}
	return a.battles.SeedDefaults()
}

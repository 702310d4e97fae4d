package core

import (
	"log"
	"math/rand"
	"time"

	"core/cron"
	"core/handlers"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	TournamentHandler  *handlers.TournamentHandler
	TournamentService  *services.TournamentService
	TeamHandler        *handlers.TeamHandler
	TeamService        *services.TeamService
	UserHandler        *handlers.UserHandler
	UserService        *services.UserService
	ShopHandler        *handlers.ShopHandler
	ShopService        *services.ShopService
	RatingHandler      *handlers.RatingHandler
	RatingService      *services.RatingService
	AchievementHandler *handlers.AchievementHandler
	AchievementService *services.AchievementService
	Scheduler          *cron.Scheduler
	db                 *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	cfg := services.DefaultTournamentConfig()
	repo := services.NewLedgerRepository(db)

	tournamentService := services.NewTournamentService(repo, cfg)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	teamService := services.NewTeamService(repo, cfg.Roles, rng)
	teamHandler := handlers.NewTeamHandler(teamService)

	userService := services.NewUserService(db)
	userHandler := handlers.NewUserHandler(userService, tournamentService)

	shopService := services.NewShopService(db)
	shopHandler := handlers.NewShopHandler(shopService)

	ratingService := services.NewRatingService(db)
	ratingHandler := handlers.NewRatingHandler(ratingService, userService)

	achievementService := services.NewAchievementService(db)
	achievementHandler := handlers.NewAchievementHandler(achievementService)

	scheduler := cron.NewScheduler(tournamentService)

	return &Module{
		TournamentHandler:  tournamentHandler,
		TournamentService:  tournamentService,
		TeamHandler:        teamHandler,
		TeamService:        teamService,
		UserHandler:        userHandler,
		UserService:        userService,
		ShopHandler:        shopHandler,
		ShopService:        shopService,
		RatingHandler:      ratingHandler,
		RatingService:      ratingService,
		AchievementHandler: achievementHandler,
		AchievementService: achievementService,
		Scheduler:          scheduler,
		db:                 db,
	}
}

// SetupRoutes mounts the API under the given group. The middleware come from
// the auth module; requireAuth resolves the Telegram identity, requireAdmin
// additionally checks the admin allowlist.
func (m *Module) SetupRoutes(r *gin.RouterGroup, requireAuth, requireAdmin gin.HandlerFunc) {
	users := r.Group("/users")
	{
		users.POST("", requireAuth, m.UserHandler.UpsertUser)
		users.GET("/:id", requireAuth, m.UserHandler.GetUser)
		users.GET("/:id/tournaments", requireAuth, m.UserHandler.GetUserTournaments)
		users.POST("/:id/balance/add", requireAuth, requireAdmin, m.UserHandler.AddBalance)
		users.POST("/:id/balance/deduct", requireAuth, requireAdmin, m.UserHandler.DeductBalance)
		users.GET("/:id/stars", requireAuth, m.UserHandler.GetStars)
		users.POST("/:id/add-stars", requireAuth, requireAdmin, m.UserHandler.AddStars)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/distribute-stars", requireAuth, requireAdmin, m.UserHandler.DistributeStars)
	}

	shop := r.Group("/shop")
	{
		shop.GET("/items", m.ShopHandler.GetItems)
		shop.POST("/purchase", requireAuth, m.ShopHandler.Purchase)
		shop.GET("/user/:userId/items", requireAuth, m.ShopHandler.GetUserItems)
		shop.GET("/history", requireAuth, m.ShopHandler.GetHistory)
	}

	rating := r.Group("/rating")
	{
		rating.GET("/wins", m.RatingHandler.GetWinsLeaderboard)
		rating.GET("/coins", m.RatingHandler.GetCoinsLeaderboard)
		rating.GET("/stars-leaderboard", m.RatingHandler.GetStarsLeaderboard)
		rating.GET("/user/:id", m.RatingHandler.GetUserRating)
		rating.POST("/add-points", requireAuth, requireAdmin, m.RatingHandler.AddPoints)
	}

	achievements := r.Group("/achievements")
	{
		achievements.GET("", m.AchievementHandler.GetAchievements)
		achievements.GET("/user/:userId", requireAuth, m.AchievementHandler.GetUserAchievements)
		achievements.POST("/user/:userId/unlock", requireAuth, requireAdmin, m.AchievementHandler.UnlockAchievement)
	}

	tournaments := r.Group("/tournaments")
	{
		tournaments.GET("", m.TournamentHandler.GetAllTournaments)
		tournaments.GET("/:id", m.TournamentHandler.GetTournament)
		tournaments.GET("/:id/results", m.TournamentHandler.GetResults)
		tournaments.GET("/:id/teams", m.TeamHandler.GetTeams)
		tournaments.POST("", requireAuth, requireAdmin, m.TournamentHandler.CreateTournament)
		tournaments.PUT("/:id", requireAuth, requireAdmin, m.TournamentHandler.UpdateTournament)
		tournaments.DELETE("/:id", requireAuth, requireAdmin, m.TournamentHandler.DeleteTournament)
		tournaments.POST("/:id/join", requireAuth, m.TournamentHandler.JoinTournament)
		tournaments.POST("/:id/leave", requireAuth, m.TournamentHandler.LeaveTournament)
		tournaments.POST("/:id/finish", requireAuth, requireAdmin, m.TournamentHandler.FinishTournament)
		tournaments.POST("/:id/form-teams", requireAuth, requireAdmin, m.TeamHandler.FormTeams)
	}
}

// StartScheduler starts the cron scheduler that activates due tournaments
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

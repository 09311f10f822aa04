package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/handler"
)

// SetupRouter wires the Gin engine: session middleware, static uploads, and
// the API route groups.
func SetupRouter(api *handler.API, sessionSecret, uploadDir, uploadURLPath string) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("dogtale_session", store))

	if uploadDir != "" && uploadURLPath != "" {
		r.Static(uploadURLPath, uploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)
		auth.POST("/logout", api.Logout)
	}

	authed := r.Group("/api")
	authed.Use(api.AuthRequired())
	{
		authed.GET("/me", api.Me)
		authed.PUT("/me/profile", api.UpdateProfile)

		authed.GET("/calendar/:year/:month", api.GetMonthView)
		authed.GET("/stats", api.GetStatsOverview)

		authed.GET("/journal", api.ListJournalEntries)
		authed.GET("/journal/:day", api.GetJournalEntry)
		authed.GET("/journal/:day/html", api.GetJournalEntryHTML)
		authed.PUT("/journal/:day", api.UpsertJournalEntry)
		authed.POST("/journal/import", api.ImportJournal)
		authed.DELETE("/journal/:day", api.DeleteJournalEntry)

		authed.GET("/favorites", api.ListFavorites)
		authed.POST("/favorites", api.CreateFavorite)
		authed.DELETE("/favorites/:id", api.DeleteFavorite)

		authed.GET("/pets", api.ListPets)
		authed.POST("/pets", api.CreatePet)
		authed.POST("/pets/:id/photo", api.UploadPetPhoto)
		authed.GET("/pets/:id/health/records", api.ListHealthRecords)
		authed.POST("/pets/:id/health/records", api.CreateHealthRecord)
		authed.GET("/pets/:id/health/reminders", api.GetHealthReminders)
		authed.POST("/pets/:id/health/reminders", api.CreateHealthReminder)
		authed.DELETE("/health/records/:recordID", api.DeleteHealthRecord)
		authed.POST("/health/reminders/:reminderID/complete", api.CompleteHealthReminder)
		authed.DELETE("/health/reminders/:reminderID", api.DeleteHealthReminder)

		authed.GET("/companion", api.GetCompanion)
		authed.GET("/companion/actions", api.ListPetActions)
		authed.POST("/companion/actions", api.PerformPetAction)

		authed.GET("/quests", api.GetQuestBoard)

		authed.GET("/battles/challenges", api.ListChallenges)
		authed.POST("/battles", api.StartBattle)
		authed.POST("/battles/step", api.CompleteBattleStep)
		authed.POST("/battles/finish", api.FinishBattle)
		authed.POST("/battles/abandon", api.AbandonBattle)
		authed.GET("/battles/summary", api.GetBattleSummary)

		authed.GET("/friends/requests", api.ListPendingRequests)
		authed.POST("/friends/requests", api.SendFriendRequest)
		authed.POST("/friends/requests/:id/accept", api.AcceptFriendRequest)
		authed.DELETE("/friends/:id", api.RemoveFriendship)
		authed.GET("/feed", api.GetFeed)
		authed.POST("/feed/:id/react", api.ToggleReaction)
		authed.POST("/feed/:id/comments", api.AddComment)

		authed.GET("/chat", api.GetChatHistory)
		authed.POST("/chat", api.PostChatMessage)

		authed.GET("/leaderboard", api.GetGlobalLeaderboard)
		authed.GET("/leaderboard/weekly", api.GetWeeklyLeaderboard)
		authed.GET("/leaderboard/me", api.GetMyRank)
	}

	billing := r.Group("/api/billing")
	billing.Use(api.BearerAuthRequired())
	{
		billing.POST("/portal", api.CreatePortalSession)
	}

	return r
}

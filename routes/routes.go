package routes

import (
	"vitalog/controllers"
	"vitalog/middlewares"
	"vitalog/services"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Store        *services.RecordStore
	Checkins     *services.CheckinService
	Insights     *services.InsightService
	Achievements *services.AchievementService
	Digest       *services.DigestService
	Push         *services.PushService
	RT           *services.RealtimeHub
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	checkinCtl := controllers.NewCheckinController(d.Checkins, d.Store)
	mealCtl := controllers.NewMealController(d.Store)
	analyticsCtl := controllers.NewAnalyticsController(d.Checkins, d.Insights, d.Digest)
	achievementCtl := controllers.NewAchievementController(d.Achievements)

	wellness := r.Group("/wellness")
	wellness.Use(middlewares.AuthMiddleware())
	{
		wellness.GET("/checkin", checkinCtl.GetCheckin)
		wellness.POST("/checkin", checkinCtl.SaveCheckin)
		wellness.GET("/checklist", checkinCtl.GetChecklist)
		wellness.PUT("/checklist", checkinCtl.PutChecklist)

		wellness.GET("/meals", mealCtl.ListMeals)
		wellness.POST("/meals", mealCtl.AddMeal)
		wellness.POST("/meals/photo", mealCtl.AddMealPhoto)

		wellness.GET("/summary", analyticsCtl.GetDaySummary)
		wellness.GET("/insights", analyticsCtl.GetInsights)
		wellness.POST("/insights/email", analyticsCtl.EmailDigest)

		wellness.GET("/achievements", achievementCtl.ListAchievements)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		if d.Push != nil {
			deviceCtl := controllers.NewDeviceController(d.Push)
			protected.POST("/devices", deviceCtl.RegisterDevice)
		}
		rtCtl := controllers.NewRealtimeController(d.RT)
		protected.GET("/ws/alerts", rtCtl.AlertsWS)
		protected.GET("/alerts", rtCtl.RecentAlerts)
	}

	return r
}

package routes

import (
	"time"

	"nutrilog/controllers"
	"nutrilog/middlewares"
	"nutrilog/services"
	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

// Deps are the wired services. Push and Reports are optional.
type Deps struct {
	JWTSecret []byte
	Catalog   *utils.Catalog
	Location  *time.Location

	Auth      *services.AuthService
	Records   services.RecordStore
	Capture   *services.CaptureService
	Dashboard *services.DashboardService
	Analytics *services.AnalyticsService
	Recs      *services.RecService
	Reports   *services.ReportService
	Push      *services.PushService
	Hub       *services.RealtimeHub
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	authCtl := controllers.NewAuthController(d.Auth)
	mealCtl := controllers.NewMealController(d.Records, d.Capture, d.Location)
	progressCtl := controllers.NewProgressController(d.Dashboard)
	analyticsCtl := controllers.NewAnalyticsController(d.Analytics, d.Location)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	r.GET("/nutrients", controllers.ListNutrients(d.Catalog))

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(d.JWTSecret))
	{
		api.GET("/user/profile", authCtl.GetProfile)

		meals := api.Group("/meals")
		{
			meals.POST("/estimate", mealCtl.Estimate)
			meals.GET("", mealCtl.List)
			meals.GET("/:id", mealCtl.Get)
			meals.POST("/:id/confirm", mealCtl.Confirm)
			meals.DELETE("/:id", mealCtl.Delete)
		}

		api.GET("/progress/today", progressCtl.Today)
		api.GET("/progress", progressCtl.Day)
		api.GET("/history", progressCtl.History)
		api.GET("/nutrients/:name/progress", progressCtl.Nutrient)

		api.GET("/analytics/summary", analyticsCtl.GetAnalyticsSummary)
		api.GET("/analytics/weekly", analyticsCtl.GetWeeklyOverview)

		api.GET("/recommendations", controllers.GetRecommendations(d.Recs))

		if d.Hub != nil {
			api.GET("/ws", controllers.NewRealtimeController(d.Hub).RecordsWS)
		}
		if d.Push != nil {
			api.POST("/devices", controllers.NewDeviceController(d.Push).Register)
			api.POST("/user/notifications/toggle", controllers.ToggleNotifications(d.Push))
		}
		if d.Reports != nil {
			api.POST("/reports/daily/email", controllers.NewReportController(d.Reports, d.Dashboard).EmailDaily)
		}
	}

	return r
}

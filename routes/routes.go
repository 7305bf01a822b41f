package routes

import (
	"net/http"
	"time"

	"github.com/marcus-bailey/nom-nom-tracker/controllers"
	"github.com/marcus-bailey/nom-nom-tracker/middlewares"
	"github.com/marcus-bailey/nom-nom-tracker/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the router hands to controllers.
type Deps struct {
	DB          *gorm.DB
	Foods       *services.FoodService
	Meals       *services.MealService
	Logs        *services.LogService
	Analytics   *services.AnalyticsService
	Reports     *services.ReportService
	RT          *services.RealtimeHub
	CORSOrigins []string
}

// NewDeps wires the services over one database handle. store may be nil.
func NewDeps(db *gorm.DB, store services.ReportStore) *Deps {
	foods := services.NewFoodService(db)
	meals := services.NewMealService(db)
	analytics := services.NewAnalyticsService(db)
	return &Deps{
		DB:        db,
		Foods:     foods,
		Meals:     meals,
		Logs:      services.NewLogService(db, foods, meals),
		Analytics: analytics,
		Reports:   services.NewReportService(analytics, store),
		RT:        services.NewRealtimeHub(),
	}
}

func SetupRouter(d *Deps) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(middlewares.RequestID(), gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	rt := controllers.NewRealtimeController(d.RT)
	r.GET("/ws", rt.Dashboard)

	api := r.Group("/api")

	foodCtl := controllers.NewFoodController(d.Foods)
	foods := api.Group("/foods")
	{
		foods.GET("", foodCtl.List)
		foods.GET("/:id", foodCtl.Get)
		foods.POST("", foodCtl.Create)
		foods.PUT("/:id", foodCtl.Update)
		foods.DELETE("/:id", foodCtl.Delete)
	}

	mealCtl := controllers.NewMealController(d.Meals)
	meals := api.Group("/meals")
	{
		meals.GET("", mealCtl.List)
		meals.GET("/:id", mealCtl.Get)
		meals.POST("", mealCtl.Create)
		meals.PUT("/:id", mealCtl.Update)
		meals.DELETE("/:id", mealCtl.Delete)
	}

	logCtl := controllers.NewLogController(d.Logs, d.Analytics, d.RT)
	logs := api.Group("/logs")
	{
		logs.GET("", logCtl.List)
		logs.GET("/:id", logCtl.Get)
		logs.POST("", logCtl.Create)
		logs.PUT("/:id", logCtl.Update)
		logs.DELETE("/:id", logCtl.Delete)
	}

	anCtl := controllers.NewAnalyticsController(d.Analytics, d.Reports)
	an := api.Group("/analytics")
	{
		an.GET("/daily/:date", anCtl.Daily)
		an.GET("/weekly/:start_date", anCtl.Weekly)
		an.GET("/range/:start_date/:end_date", anCtl.Range)
		an.POST("/range/:start_date/:end_date/export", anCtl.ExportRange)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, middlewares.RequestIDHeader)
	cfg.ExposeHeaders = []string{middlewares.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

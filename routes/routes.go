package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"nailspa-backend/config"
	"nailspa-backend/controllers"
	"nailspa-backend/utils"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Origins   []string
	JWTSecret string
	Log       *zap.Logger
	Auth      *controllers.AuthController
	Bills     *controllers.BillController
	Catalog   *controllers.CatalogController
	Settings  *controllers.SettingsController
	Reports   *controllers.ReportController
	Backup    *controllers.BackupController
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(utils.ErrorHandler(d.Log))
	r.Use(cors.New(corsConfig(d.Origins)))
	r.Use(config.PerformanceLogger(d.Log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var requireOwner gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if d.Auth.Enabled() {
		requireOwner = utils.AuthMiddleware(d.JWTSecret)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", d.Auth.Login)
		auth.GET("/me", requireOwner, d.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(requireOwner)
	{
		// Bill routes
		bills := api.Group("/bills")
		{
			bills.GET("", d.Bills.GetBills)
			bills.POST("", d.Bills.CreateBill)
			bills.GET("/:id", d.Bills.GetBill)
			bills.GET("/:id/draft", d.Bills.OpenDraft)
			bills.PUT("/:id", d.Bills.UpdateBill)
			bills.DELETE("/:id", d.Bills.DeleteBill)
		}

		// Draft editor routes
		drafts := api.Group("/drafts")
		{
			drafts.POST("", d.Bills.NewDraft)
			drafts.POST("/apply", d.Bills.ApplyDraft)
			drafts.POST("/preview", d.Bills.PreviewDraft)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", d.Catalog.CreateService)
			services.GET("", d.Catalog.GetServices)
			services.GET("/:id", d.Catalog.GetService)
			services.PUT("/:id", d.Catalog.UpdateService)
			services.DELETE("/:id", d.Catalog.DeleteService)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", d.Catalog.GetCategories)
			categories.POST("", d.Catalog.CreateCategory)
			categories.PUT("/:id", d.Catalog.RenameCategory)
			categories.DELETE("/:id", d.Catalog.DeleteCategory)
		}

		// Settings routes
		api.GET("/settings", d.Settings.GetSettings)
		api.PUT("/settings", d.Settings.UpdateSettings)

		// Dashboard and reports routes
		api.GET("/dashboard", d.Reports.GetDashboard)
		api.GET("/reports/calendar", d.Reports.GetCalendar)
		api.GET("/reports/top-services", d.Reports.GetTopServices)
		api.GET("/customers", d.Reports.GetCustomers)
		api.GET("/customers/suggest", d.Reports.SuggestCustomers)

		// Backup routes
		api.GET("/backup", d.Backup.ExportBackup)
		api.POST("/backup", d.Backup.ImportBackup)
		api.POST("/backup/reset", d.Backup.ResetData)
	}

	return r
}

package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/yarayan327-hash/Trailclass-REPORT/api/swagger"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/handler"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/middleware"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/config"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/logger"
	corsmiddleware "github.com/yarayan327-hash/Trailclass-REPORT/pkg/middleware/cors"
	reqidmiddleware "github.com/yarayan327-hash/Trailclass-REPORT/pkg/middleware/requestid"
)

// NewRouter mounts every endpoint on a fresh gin engine.
func NewRouter(cfg *config.Config, svcs *Services, checks map[string]handler.ReadinessCheck, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(svcs.Metrics))

	metricsHandler := handler.NewMetricsHandler(svcs.Metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	imports := handler.NewImportHandler(svcs.AdminImport, cfg.Imports.MaxFileSizeBytes)
	templates := handler.NewTemplateHandler(svcs.Templates)
	exports := handler.NewExportHandler(svcs.Export)
	sessions := handler.NewSessionHandler(svcs.Sessions)
	evaluations := handler.NewEvaluationHandler(svcs.Evaluations)
	reports := handler.NewReportHandler(svcs.Reports)
	textbooks := handler.NewTextbookHandler(svcs.Textbooks)

	api := r.Group(cfg.APIPrefix)
	api.GET("/shared-reports/:token", reports.Shared)

	secured := api.Group("")
	secured.Use(middleware.JWT(svcs.Auth))

	admin := secured.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/imports/schedule", middleware.Audit(logr, "import_schedule"), imports.UploadSchedule)
	admin.POST("/imports/textbook", middleware.Audit(logr, "import_textbook"), imports.UploadTextbook)
	admin.GET("/templates/schedule", templates.Schedule)
	admin.GET("/templates/textbook", templates.Textbook)
	admin.GET("/exports/sessions", middleware.Audit(logr, "export_sessions"), exports.Sessions)
	admin.GET("/sessions", sessions.AdminList)
	admin.DELETE("/textbooks/:id", middleware.Audit(logr, "delete_textbook"), textbooks.Delete)

	teacher := secured.Group("/teacher")
	teacher.Use(middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
	teacher.GET("/sessions", sessions.TeacherList)
	teacher.GET("/sessions/:id/report", reports.ForSession)
	teacher.POST("/evaluations", evaluations.Submit)

	shared := secured.Group("")
	shared.Use(middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
	shared.GET("/reports/:id", reports.Get)
	shared.POST("/reports/:id/share", reports.Share)
	shared.GET("/textbooks", textbooks.List)
	shared.GET("/textbooks/:id", textbooks.Get)

	return r
}

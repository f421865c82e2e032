// Package app assembles repositories, services and the HTTP router from a
// loaded configuration.
package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/repository"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/service"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/config"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/datetime"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/storage"
)

// Services groups the domain services of one process.
type Services struct {
	Metrics        *service.MetricsService
	Cache          *service.CacheService
	ScheduleImport *service.ScheduleImportService
	TextbookImport *service.TextbookImportService
	AdminImport    *service.AdminImportService
	Templates      *service.TemplateService
	Export         *service.ExportService
	Evaluations    *service.EvaluationService
	Sessions       *service.SessionService
	Textbooks      *service.TextbookService
	Reports        *service.ReportService
	Auth           *service.AuthService
}

// NewServices wires every service. redisClient may be nil, which turns the
// session list cache off.
func NewServices(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := validator.New()
	metrics := service.NewMetricsService()

	sessionRepo := repository.NewSessionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	textbookRepo := repository.NewTextbookRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	cache := service.NewCacheService(cacheRepo, metrics, service.CacheConfig{
		Enabled: cfg.Cache.Enabled && redisClient != nil,
		TTL:     cfg.Cache.TTL,
	}, logger.Named("cache"))
	normalizer := datetime.NewNormalizer(config.LoadLocation(cfg.Imports.Timezone), logger.Named("dates"))

	scheduleImport := service.NewScheduleImportService(sessionRepo, normalizer, cache, metrics,
		service.ScheduleImportConfig{Atomic: cfg.Imports.ScheduleAtomic}, logger.Named("schedule_import"))
	textbookImport := service.NewTextbookImportService(textbookRepo, validate, metrics, logger.Named("textbook_import"))

	signer := storage.NewSigner(cfg.Share.Secret, cfg.Share.TTL)

	return &Services{
		Metrics:        metrics,
		Cache:          cache,
		ScheduleImport: scheduleImport,
		TextbookImport: textbookImport,
		AdminImport:    service.NewAdminImportService(scheduleImport, textbookImport, logger.Named("admin_import")),
		Templates:      service.NewTemplateService(),
		Export: service.NewExportService(sessionRepo, metrics, service.ExportConfig{
			Location:      config.LoadLocation(cfg.Exports.Timezone),
			ReportBaseURL: cfg.Exports.ReportBaseURL,
		}, logger.Named("export")),
		Evaluations: service.NewEvaluationService(sessionRepo, reportRepo, textbookRepo, cache, validate, logger.Named("evaluation")),
		Sessions:    service.NewSessionService(sessionRepo, cache, logger.Named("sessions")),
		Textbooks:   service.NewTextbookService(textbookRepo, cache, logger.Named("textbooks")),
		Reports: service.NewReportService(reportRepo, textbookRepo, signer,
			service.ReportConfig{ReportBaseURL: cfg.Exports.ReportBaseURL}, logger.Named("reports")),
		Auth: service.NewAuthService(logger.Named("auth"), service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret}),
	}
}

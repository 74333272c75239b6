package main

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api"
	"github.com/engagehq/engage-api/internal/api/cron"
	v1 "github.com/engagehq/engage-api/internal/api/v1"
	"github.com/engagehq/engage-api/internal/auth"
	"github.com/engagehq/engage-api/internal/cache"
	"github.com/engagehq/engage-api/internal/config"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/repository"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/engagehq/engage-api/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Engage API
// @version 1.0
// @description Public engagement platform API
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,

			cache.NewInMemoryCache,

			postgres.NewDB,

			auth.NewProvider,

			// Repositories
			repository.NewEngagementRepository,
			repository.NewSurveyRepository,
			repository.NewSubmissionRepository,
			repository.NewCommentRepository,
			repository.NewWidgetRepository,
			repository.NewFeedbackRepository,
			repository.NewUserRepository,
			repository.NewMembershipRepository,
			repository.NewMetadataRepository,
			repository.NewTaxonRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewEngagementService,
			service.NewSurveyService,
			service.NewSubmissionService,
			service.NewCommentService,
			service.NewWidgetService,
			service.NewFeedbackService,
			service.NewUserService,
			service.NewMembershipService,
			service.NewMetadataService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	engagementService service.EngagementService,
	surveyService service.SurveyService,
	submissionService service.SubmissionService,
	commentService service.CommentService,
	widgetService service.WidgetService,
	feedbackService service.FeedbackService,
	userService service.UserService,
	membershipService service.MembershipService,
	metadataService service.MetadataService,
) api.Handlers {
	return api.Handlers{
		Health:         v1.NewHealthHandler(logger),
		Engagement:     v1.NewEngagementHandler(engagementService, membershipService, logger),
		Survey:         v1.NewSurveyHandler(surveyService, logger),
		Submission:     v1.NewSubmissionHandler(submissionService, commentService, logger),
		Comment:        v1.NewCommentHandler(commentService, logger),
		Widget:         v1.NewWidgetHandler(widgetService, logger),
		Feedback:       v1.NewFeedbackHandler(feedbackService, logger),
		User:           v1.NewUserHandler(userService, membershipService, logger),
		Membership:     v1.NewMembershipHandler(membershipService, logger),
		Metadata:       v1.NewMetadataHandler(metadataService, logger),
		CronEngagement: cron.NewEngagementHandler(engagementService, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	userService service.UserService,
	logger *logger.Logger,
) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, userService, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			db.Close()
			return nil
		},
	})
}

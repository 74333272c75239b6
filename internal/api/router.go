package api

import (
	"github.com/engagehq/engage-api/internal/api/cron"
	v1 "github.com/engagehq/engage-api/internal/api/v1"
	"github.com/engagehq/engage-api/internal/config"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/rest/middleware"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health         *v1.HealthHandler
	Engagement     *v1.EngagementHandler
	Survey         *v1.SurveyHandler
	Submission     *v1.SubmissionHandler
	Comment        *v1.CommentHandler
	Widget         *v1.WidgetHandler
	Feedback       *v1.FeedbackHandler
	User           *v1.UserHandler
	Membership     *v1.MembershipHandler
	Metadata       *v1.MetadataHandler
	CronEngagement *cron.EngagementHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	userService service.UserService,
	logger *logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigin))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerPublicRoutes(v1Group, handlers)
	registerStaffRoutes(v1Group, handlers, cfg, userService, logger)
	registerCronRoutes(v1Group, handlers)

	return router
}

// registerPublicRoutes wires the endpoints the public site consumes without
// authentication.
func registerPublicRoutes(router *gin.RouterGroup, handlers Handlers) {
	public := router.Group("/public")
	public.Use(middleware.GuestMiddleware)
	{
		public.GET("/engagements/:engagement_id", handlers.Engagement.GetEngagement)
		public.GET("/engagements/:engagement_id/widgets", handlers.Widget.GetWidgets)
		public.GET("/surveys/:survey_id", handlers.Survey.GetSurvey)
		public.POST("/submissions", handlers.Submission.CreateSubmission)
		public.POST("/feedbacks", handlers.Feedback.CreateFeedback)
	}
}

// registerStaffRoutes wires the authenticated staff surface.
func registerStaffRoutes(
	router *gin.RouterGroup,
	handlers Handlers,
	cfg *config.Configuration,
	userService service.UserService,
	logger *logger.Logger,
) {
	staff := router.Group("")
	staff.Use(middleware.AuthenticateMiddleware(cfg, userService, logger))

	engagements := staff.Group("/engagements")
	{
		engagements.POST("", handlers.Engagement.CreateEngagement)
		engagements.GET("", handlers.Engagement.GetEngagements)
		engagements.POST("/search", handlers.Engagement.SearchEngagements)
		engagements.GET("/:engagement_id", handlers.Engagement.GetEngagement)
		engagements.PUT("/:engagement_id", handlers.Engagement.UpdateEngagement)

		engagements.POST("/:engagement_id/widgets", handlers.Widget.CreateWidget)
		engagements.GET("/:engagement_id/widgets", handlers.Widget.GetWidgets)
		engagements.PATCH("/:engagement_id/widgets/sort_index", handlers.Widget.ReorderWidgets)

		engagements.POST("/:engagement_id/members", handlers.Membership.CreateMembership)
		engagements.GET("/:engagement_id/members", handlers.Membership.GetMemberships)
		engagements.PATCH("/:engagement_id/members/:user_id/status", handlers.Membership.UpdateMembershipStatus)

		engagements.POST("/:engagement_id/metadata", handlers.Metadata.CreateMetadata)
		engagements.GET("/:engagement_id/metadata", handlers.Metadata.GetMetadata)
	}

	surveys := staff.Group("/surveys")
	{
		surveys.POST("", handlers.Survey.CreateSurvey)
		surveys.GET("", handlers.Survey.GetSurveys)
		surveys.GET("/:survey_id", handlers.Survey.GetSurvey)
		surveys.PUT("/:survey_id", handlers.Survey.UpdateSurvey)
		surveys.PUT("/:survey_id/link/engagement/:engagement_id", handlers.Survey.LinkSurvey)
		surveys.PUT("/:survey_id/unlink", handlers.Survey.UnlinkSurvey)
		surveys.GET("/:survey_id/submissions", handlers.Submission.GetSubmissionsBySurvey)
		surveys.GET("/:survey_id/comments", handlers.Comment.GetCommentsBySurvey)
	}

	submissions := staff.Group("/submissions")
	{
		submissions.GET("/:submission_id", handlers.Submission.GetSubmission)
		submissions.PUT("/:submission_id/review", handlers.Submission.ReviewSubmission)
		submissions.GET("/:submission_id/comments", handlers.Submission.GetSubmissionComments)
	}

	comments := staff.Group("/comments")
	{
		comments.GET("/:id", handlers.Comment.GetComment)
	}

	widgets := staff.Group("/widgets")
	{
		widgets.PATCH("/:id", handlers.Widget.UpdateWidget)
		widgets.DELETE("/:id", handlers.Widget.DeleteWidget)
	}

	feedbacks := staff.Group("/feedbacks")
	{
		feedbacks.GET("", handlers.Feedback.GetFeedbacks)
		feedbacks.GET("/:id", handlers.Feedback.GetFeedback)
		feedbacks.PATCH("/:id", handlers.Feedback.UpdateFeedback)
		feedbacks.DELETE("/:id", handlers.Feedback.DeleteFeedback)
	}

	users := staff.Group("/users")
	{
		users.PUT("", handlers.User.CreateOrUpdateUser)
		users.GET("", handlers.User.GetUsers)
		users.GET("/:id", handlers.User.GetUser)
		users.PATCH("/:id", handlers.User.UpdateUser)
		users.GET("/:id/engagements", handlers.User.GetAssignedEngagements)
	}

	taxa := staff.Group("/taxa")
	{
		taxa.POST("", handlers.Metadata.CreateTaxon)
		taxa.GET("", handlers.Metadata.GetTaxa)
		taxa.PATCH("/:id", handlers.Metadata.UpdateTaxon)
		taxa.DELETE("/:id", handlers.Metadata.DeleteTaxon)
	}

	metadata := staff.Group("/metadata")
	{
		metadata.PATCH("/:id", handlers.Metadata.UpdateMetadata)
		metadata.DELETE("/:id", handlers.Metadata.DeleteMetadata)
	}
}

// registerCronRoutes wires the endpoints an external scheduler invokes.
func registerCronRoutes(router *gin.RouterGroup, handlers Handlers) {
	jobs := router.Group("/cron")
	jobs.Use(middleware.GuestMiddleware)
	{
		jobs.POST("/engagements/close-due", handlers.CronEngagement.CloseEngagementsDue)
		jobs.POST("/engagements/publish-due", handlers.CronEngagement.PublishScheduledEngagementsDue)
	}
}

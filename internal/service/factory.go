package service

import (
	"github.com/engagehq/engage-api/internal/auth"
	"github.com/engagehq/engage-api/internal/config"
	"github.com/engagehq/engage-api/internal/domain/comment"
	"github.com/engagehq/engage-api/internal/domain/engagement"
	"github.com/engagehq/engage-api/internal/domain/feedback"
	"github.com/engagehq/engage-api/internal/domain/membership"
	"github.com/engagehq/engage-api/internal/domain/metadata"
	"github.com/engagehq/engage-api/internal/domain/submission"
	"github.com/engagehq/engage-api/internal/domain/survey"
	"github.com/engagehq/engage-api/internal/domain/user"
	"github.com/engagehq/engage-api/internal/domain/widget"
	"github.com/engagehq/engage-api/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Auth   auth.Provider

	// Repositories
	EngagementRepo engagement.Repository
	SurveyRepo     survey.Repository
	SubmissionRepo submission.Repository
	CommentRepo    comment.Repository
	WidgetRepo     widget.Repository
	FeedbackRepo   feedback.Repository
	UserRepo       user.Repository
	MembershipRepo membership.Repository
	MetadataRepo   metadata.Repository
	TaxonRepo      metadata.TaxonRepository
}

// NewServiceParams assembles the common dependency set injected into every
// service constructor.
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	authProvider auth.Provider,
	engagementRepo engagement.Repository,
	surveyRepo survey.Repository,
	submissionRepo submission.Repository,
	commentRepo comment.Repository,
	widgetRepo widget.Repository,
	feedbackRepo feedback.Repository,
	userRepo user.Repository,
	membershipRepo membership.Repository,
	metadataRepo metadata.Repository,
	taxonRepo metadata.TaxonRepository,
) ServiceParams {
	return ServiceParams{
		Logger:         logger,
		Config:         config,
		Auth:           authProvider,
		EngagementRepo: engagementRepo,
		SurveyRepo:     surveyRepo,
		SubmissionRepo: submissionRepo,
		CommentRepo:    commentRepo,
		WidgetRepo:     widgetRepo,
		FeedbackRepo:   feedbackRepo,
		UserRepo:       userRepo,
		MembershipRepo: membershipRepo,
		MetadataRepo:   metadataRepo,
		TaxonRepo:      taxonRepo,
	}
}

package repository

import (
	"github.com/engagehq/engage-api/internal/cache"
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
	"github.com/engagehq/engage-api/internal/postgres"
	repo "github.com/engagehq/engage-api/internal/repository/postgres"
)

func NewEngagementRepository(db *postgres.DB, logger *logger.Logger) engagement.Repository {
	return repo.NewEngagementRepository(db, logger)
}

func NewSurveyRepository(db *postgres.DB, logger *logger.Logger) survey.Repository {
	return repo.NewSurveyRepository(db, logger)
}

func NewSubmissionRepository(db *postgres.DB, logger *logger.Logger) submission.Repository {
	return repo.NewSubmissionRepository(db, logger)
}

func NewCommentRepository(db *postgres.DB, logger *logger.Logger) comment.Repository {
	return repo.NewCommentRepository(db, logger)
}

func NewWidgetRepository(db *postgres.DB, logger *logger.Logger) widget.Repository {
	return repo.NewWidgetRepository(db, logger)
}

func NewFeedbackRepository(db *postgres.DB, logger *logger.Logger) feedback.Repository {
	return repo.NewFeedbackRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return repo.NewUserRepository(db, logger)
}

func NewMembershipRepository(db *postgres.DB, logger *logger.Logger) membership.Repository {
	return repo.NewMembershipRepository(db, logger)
}

func NewMetadataRepository(db *postgres.DB, logger *logger.Logger) metadata.Repository {
	return repo.NewMetadataRepository(db, logger)
}

// NewTaxonRepository wraps the taxon store with a read-through cache. Taxa
// change rarely and are read on every metadata write.
func NewTaxonRepository(db *postgres.DB, logger *logger.Logger, c cache.Cache) metadata.TaxonRepository {
	return repo.NewTaxonRepository(db, logger, c)
}

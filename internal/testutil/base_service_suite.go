package testutil

import (
	"context"
	"time"

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
	"github.com/engagehq/engage-api/internal/types"
	"github.com/engagehq/engage-api/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
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

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
	}
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

func (s *BaseServiceTestSuite) setupStores() {
	metadataStore := NewInMemoryMetadataStore()
	s.stores = Stores{
		EngagementRepo: NewInMemoryEngagementStore(metadataStore),
		SurveyRepo:     NewInMemorySurveyStore(),
		SubmissionRepo: NewInMemorySubmissionStore(),
		CommentRepo:    NewInMemoryCommentStore(),
		WidgetRepo:     NewInMemoryWidgetStore(),
		FeedbackRepo:   NewInMemoryFeedbackStore(),
		UserRepo:       NewInMemoryUserStore(),
		MembershipRepo: NewInMemoryMembershipStore(),
		MetadataRepo:   metadataStore,
		TaxonRepo:      NewInMemoryTaxonStore(),
	}
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the timestamp captured at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

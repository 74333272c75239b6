package service

import (
	"testing"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/testutil"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type SurveyServiceSuite struct {
	testutil.BaseServiceTestSuite
	service           SurveyService
	submissionService SubmissionService
	engagementID      int64
}

func TestSurveyService(t *testing.T) {
	suite.Run(t, new(SurveyServiceSuite))
}

func (s *SurveyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		EngagementRepo: s.GetStores().EngagementRepo,
		SurveyRepo:     s.GetStores().SurveyRepo,
		SubmissionRepo: s.GetStores().SubmissionRepo,
	}
	s.service = NewSurveyService(params)
	s.submissionService = NewSubmissionService(params)

	engagementService := NewEngagementService(params)
	now := time.Now()
	resp, err := engagementService.CreateEngagement(s.GetContext(), dto.CreateEngagementRequest{
		Name:      "Host Engagement",
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(14 * 24 * time.Hour),
	})
	s.Require().NoError(err)
	s.engagementID = resp.ID

	// Submissions are only accepted on open engagements.
	_, err = engagementService.UpdateEngagement(s.GetContext(), resp.ID, dto.UpdateEngagementRequest{
		StatusID:      lo.ToPtr(types.EngagementStatusPublished),
		PublishedDate: lo.ToPtr(now.Add(-time.Hour)),
	})
	s.Require().NoError(err)
}

func (s *SurveyServiceSuite) TestCreateAndGetSurvey() {
	created, err := s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{Name: "Intake"})
	s.NoError(err)
	s.NotZero(created.ID)

	got, err := s.service.GetSurvey(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("Intake", got.Name)
	s.Nil(got.EngagementID)
}

func (s *SurveyServiceSuite) TestCreateSurveyRequiresName() {
	_, err := s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *SurveyServiceSuite) TestListFiltersHiddenAndTemplates() {
	_, err := s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{Name: "Visible"})
	s.NoError(err)
	_, err = s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{Name: "Hidden", IsHidden: true})
	s.NoError(err)
	_, err = s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{Name: "Template", IsTemplate: true})
	s.NoError(err)

	resp, err := s.service.GetSurveys(s.GetContext(), &types.SurveyFilter{
		Pagination:      types.NewDefaultPaginationOptions(),
		ExcludeHidden:   true,
		ExcludeTemplate: true,
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("Visible", resp.Items[0].Name)
	s.Equal(1, resp.Pagination.Total)
}

func (s *SurveyServiceSuite) TestLinkAndUnlinkSurvey() {
	created, err := s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{Name: "Linkable"})
	s.NoError(err)

	linked, err := s.service.LinkSurvey(s.GetContext(), created.ID, s.engagementID)
	s.NoError(err)
	s.Equal(s.engagementID, *linked.EngagementID)

	// A second link attempt is rejected.
	_, err = s.service.LinkSurvey(s.GetContext(), created.ID, s.engagementID)
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrInvalidOperation))

	unlinked, err := s.service.UnlinkSurvey(s.GetContext(), created.ID)
	s.NoError(err)
	s.Nil(unlinked.EngagementID)
}

func (s *SurveyServiceSuite) TestUnlinkRejectedWithSubmissions() {
	created, err := s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{
		Name:         "Active",
		EngagementID: lo.ToPtr(s.engagementID),
	})
	s.NoError(err)

	_, err = s.submissionService.CreateSubmission(s.GetContext(), dto.CreateSubmissionRequest{
		SurveyID:       created.ID,
		SubmissionJSON: []byte(`{"q1":"yes"}`),
	})
	s.NoError(err)

	_, err = s.service.UnlinkSurvey(s.GetContext(), created.ID)
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrInvalidOperation))
}

func (s *SurveyServiceSuite) TestSearchText() {
	_, err := s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{Name: "Budget Priorities"})
	s.NoError(err)
	_, err = s.service.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{Name: "Transit Routes"})
	s.NoError(err)

	resp, err := s.service.GetSurveys(s.GetContext(), &types.SurveyFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchText: "budget",
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("Budget Priorities", resp.Items[0].Name)
}

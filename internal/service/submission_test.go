package service

import (
	"encoding/json"
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

type SubmissionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service           SubmissionService
	commentService    CommentService
	engagementService EngagementService
	surveyID          int64
	engagementID      int64
}

func TestSubmissionService(t *testing.T) {
	suite.Run(t, new(SubmissionServiceSuite))
}

func (s *SubmissionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		EngagementRepo: s.GetStores().EngagementRepo,
		SurveyRepo:     s.GetStores().SurveyRepo,
		SubmissionRepo: s.GetStores().SubmissionRepo,
		CommentRepo:    s.GetStores().CommentRepo,
	}
	s.service = NewSubmissionService(params)
	s.commentService = NewCommentService(params)
	s.engagementService = NewEngagementService(params)

	now := time.Now()
	engagement, err := s.engagementService.CreateEngagement(s.GetContext(), dto.CreateEngagementRequest{
		Name:      "Open Engagement",
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(14 * 24 * time.Hour),
	})
	s.Require().NoError(err)
	s.engagementID = engagement.ID

	_, err = s.engagementService.UpdateEngagement(s.GetContext(), engagement.ID, dto.UpdateEngagementRequest{
		StatusID:      lo.ToPtr(types.EngagementStatusPublished),
		PublishedDate: lo.ToPtr(now.Add(-24 * time.Hour)),
	})
	s.Require().NoError(err)

	surveyService := NewSurveyService(params)
	survey, err := surveyService.CreateSurvey(s.GetContext(), dto.CreateSurveyRequest{Name: "Intake"})
	s.Require().NoError(err)
	_, err = surveyService.LinkSurvey(s.GetContext(), survey.ID, engagement.ID)
	s.Require().NoError(err)
	s.surveyID = survey.ID
}

func (s *SubmissionServiceSuite) submit(doc string) *dto.SubmissionResponse {
	resp, err := s.service.CreateSubmission(s.GetContext(), dto.CreateSubmissionRequest{
		SurveyID:       s.surveyID,
		SubmissionJSON: json.RawMessage(doc),
	})
	s.Require().NoError(err)
	return resp
}

func (s *SubmissionServiceSuite) TestCreateSubmission() {
	resp := s.submit(`{"q1":"yes"}`)
	s.Equal(s.engagementID, resp.EngagementID)
	s.Equal(types.CommentStatusPending, resp.CommentStatusID)
	s.Nil(resp.ReviewedBy)
}

func (s *SubmissionServiceSuite) TestCreateExtractsComments() {
	resp, err := s.service.CreateSubmission(s.GetContext(), dto.CreateSubmissionRequest{
		SurveyID:       s.surveyID,
		SubmissionJSON: json.RawMessage(`{"q1":"yes","q2":"More trees please"}`),
		Comments:       []string{"More trees please", ""},
	})
	s.Require().NoError(err)

	comments, err := s.commentService.GetCommentsBySubmission(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Require().Len(comments, 1)
	s.Equal("More trees please", comments[0].Text)
	s.Equal(s.surveyID, comments[0].SurveyID)

	page, err := s.commentService.GetCommentsBySurvey(s.GetContext(), s.surveyID, nil)
	s.NoError(err)
	s.Equal(1, page.Pagination.Total)
	s.Equal(resp.ID, page.Items[0].SubmissionID)
}

func (s *SubmissionServiceSuite) TestCreateRequiresResponseDocument() {
	_, err := s.service.CreateSubmission(s.GetContext(), dto.CreateSubmissionRequest{
		SurveyID: s.surveyID,
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *SubmissionServiceSuite) TestCreateRejectedWhenEngagementClosed() {
	_, err := s.engagementService.UpdateEngagement(s.GetContext(), s.engagementID, dto.UpdateEngagementRequest{
		StatusID: lo.ToPtr(types.EngagementStatusClosed),
	})
	s.Require().NoError(err)

	_, err = s.service.CreateSubmission(s.GetContext(), dto.CreateSubmissionRequest{
		SurveyID:       s.surveyID,
		SubmissionJSON: json.RawMessage(`{"q1":"late"}`),
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrInvalidOperation))
}

func (s *SubmissionServiceSuite) TestListBySurveyPaginated() {
	for i := 0; i < 5; i++ {
		s.submit(`{"q1":"answer"}`)
	}

	page, err := s.service.GetSubmissionsBySurvey(s.GetContext(), s.surveyID, &types.PaginationOptions{
		Page: lo.ToPtr(1),
		Size: lo.ToPtr(3),
	})
	s.NoError(err)
	s.Equal(5, page.Pagination.Total)
	s.Len(page.Items, 3)
}

func (s *SubmissionServiceSuite) TestListRejectsUnknownSortKey() {
	_, err := s.service.GetSubmissionsBySurvey(s.GetContext(), s.surveyID, &types.PaginationOptions{
		SortKey: "submission_json; DROP TABLE submission",
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *SubmissionServiceSuite) TestReviewSubmission() {
	created := s.submit(`{"q1":"review me"}`)

	reviewed, err := s.service.ReviewSubmission(s.GetContext(), created.ID, dto.ReviewSubmissionRequest{
		Status: types.CommentStatusApproved,
	})
	s.NoError(err)
	s.Equal(types.CommentStatusApproved, reviewed.CommentStatusID)
	s.Require().NotNil(reviewed.ReviewedBy)
	s.Equal("test-user", *reviewed.ReviewedBy)
	s.NotNil(reviewed.ReviewDate)
}

func (s *SubmissionServiceSuite) TestReviewRejectsUnknownStatus() {
	created := s.submit(`{"q1":"bad status"}`)

	_, err := s.service.ReviewSubmission(s.GetContext(), created.ID, dto.ReviewSubmissionRequest{
		Status: types.CommentStatus(42),
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

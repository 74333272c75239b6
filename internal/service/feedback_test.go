package service

import (
	"testing"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/testutil"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type FeedbackServiceSuite struct {
	testutil.BaseServiceTestSuite
	service FeedbackService
}

func TestFeedbackService(t *testing.T) {
	suite.Run(t, new(FeedbackServiceSuite))
}

func (s *FeedbackServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewFeedbackService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		FeedbackRepo: s.GetStores().FeedbackRepo,
	})
}

func (s *FeedbackServiceSuite) TestCreateFeedback() {
	resp, err := s.service.CreateFeedback(s.GetContext(), dto.CreateFeedbackRequest{
		Rating:      4,
		CommentType: types.CommentTypeIdea,
		Comment:     "More evening sessions please",
		Source:      types.FeedbackSourcePublic,
	})
	s.NoError(err)
	s.Equal(types.FeedbackStatusUnreviewed, resp.Status)
	s.Equal(4, resp.Rating)
}

func (s *FeedbackServiceSuite) TestCreateRejectsEmptyFeedback() {
	_, err := s.service.CreateFeedback(s.GetContext(), dto.CreateFeedbackRequest{})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))

	_, err = s.service.CreateFeedback(s.GetContext(), dto.CreateFeedbackRequest{Rating: 6})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *FeedbackServiceSuite) TestListFiltersByStatusAndSearch() {
	seed := []dto.CreateFeedbackRequest{
		{Rating: 5, Comment: "Great map widget"},
		{Rating: 2, Comment: "Survey was too long"},
		{Rating: 3, Comment: "Could not find the survey"},
	}
	ids := make([]int64, 0, len(seed))
	for _, req := range seed {
		resp, err := s.service.CreateFeedback(s.GetContext(), req)
		s.Require().NoError(err)
		ids = append(ids, resp.ID)
	}

	_, err := s.service.UpdateFeedback(s.GetContext(), ids[0], dto.UpdateFeedbackRequest{
		Status: lo.ToPtr(types.FeedbackStatusArchived),
	})
	s.Require().NoError(err)

	archived, err := s.service.GetFeedbackPaginated(s.GetContext(), &types.FeedbackFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		Status:     lo.ToPtr(types.FeedbackStatusArchived),
	})
	s.NoError(err)
	s.Equal(1, archived.Pagination.Total)
	s.Equal(ids[0], archived.Items[0].ID)

	surveys, err := s.service.GetFeedbackPaginated(s.GetContext(), &types.FeedbackFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchText: "survey",
	})
	s.NoError(err)
	s.Equal(2, surveys.Pagination.Total)
}

func (s *FeedbackServiceSuite) TestListRejectsUnknownStatus() {
	_, err := s.service.GetFeedbackPaginated(s.GetContext(), &types.FeedbackFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		Status:     lo.ToPtr(types.FeedbackStatus(99)),
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *FeedbackServiceSuite) TestUpdateFeedback() {
	resp, err := s.service.CreateFeedback(s.GetContext(), dto.CreateFeedbackRequest{
		Rating:  1,
		Comment: "Broken link on the documents page",
	})
	s.Require().NoError(err)

	updated, err := s.service.UpdateFeedback(s.GetContext(), resp.ID, dto.UpdateFeedbackRequest{
		Rating: lo.ToPtr(2),
	})
	s.NoError(err)
	s.Equal(2, updated.Rating)
	s.Equal("Broken link on the documents page", updated.Comment)
}

func (s *FeedbackServiceSuite) TestDeleteFeedback() {
	resp, err := s.service.CreateFeedback(s.GetContext(), dto.CreateFeedbackRequest{
		Rating: 3,
	})
	s.Require().NoError(err)

	s.NoError(s.service.DeleteFeedback(s.GetContext(), resp.ID))

	err = s.service.DeleteFeedback(s.GetContext(), resp.ID)
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrNotFound))
}

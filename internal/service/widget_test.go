package service

import (
	"testing"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/testutil"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"
)

type WidgetServiceSuite struct {
	testutil.BaseServiceTestSuite
	service      WidgetService
	engagementID int64
}

func TestWidgetService(t *testing.T) {
	suite.Run(t, new(WidgetServiceSuite))
}

func (s *WidgetServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		EngagementRepo: s.GetStores().EngagementRepo,
		WidgetRepo:     s.GetStores().WidgetRepo,
	}
	s.service = NewWidgetService(params)

	now := time.Now()
	resp, err := NewEngagementService(params).CreateEngagement(s.GetContext(), dto.CreateEngagementRequest{
		Name:      "Widget Host",
		StartDate: now,
		EndDate:   now.Add(14 * 24 * time.Hour),
	})
	s.Require().NoError(err)
	s.engagementID = resp.ID
}

func (s *WidgetServiceSuite) TestCreateAssignsNextSortIndex() {
	first, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeDocuments})
	s.NoError(err)
	s.Equal(0, first.SortIndex)

	second, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeMap})
	s.NoError(err)
	s.Equal(1, second.SortIndex)
}

func (s *WidgetServiceSuite) TestDuplicateWidgetTypeRejected() {
	_, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypePoll})
	s.NoError(err)

	_, err = s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypePoll})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrAlreadyExists))
}

func (s *WidgetServiceSuite) TestListReturnsSortIndexOrder() {
	docs, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeDocuments})
	s.NoError(err)
	events, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeEvents})
	s.NoError(err)

	list, err := s.service.GetWidgetsByEngagement(s.GetContext(), s.engagementID)
	s.NoError(err)
	s.Len(list.Items, 2)
	s.Equal(docs.ID, list.Items[0].ID)
	s.Equal(events.ID, list.Items[1].ID)
}

func (s *WidgetServiceSuite) TestReorderWidgets() {
	a, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeDocuments})
	s.NoError(err)
	b, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeVideo})
	s.NoError(err)

	list, err := s.service.ReorderWidgets(s.GetContext(), s.engagementID,
		dto.ReorderWidgetsRequest{WidgetIDs: []int64{b.ID, a.ID}})
	s.NoError(err)
	s.Equal(b.ID, list.Items[0].ID)
	s.Equal(a.ID, list.Items[1].ID)
}

func (s *WidgetServiceSuite) TestReorderRequiresCompleteList() {
	a, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeDocuments})
	s.NoError(err)
	_, err = s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeVideo})
	s.NoError(err)

	_, err = s.service.ReorderWidgets(s.GetContext(), s.engagementID,
		dto.ReorderWidgetsRequest{WidgetIDs: []int64{a.ID}})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *WidgetServiceSuite) TestDeleteWidget() {
	w, err := s.service.CreateWidget(s.GetContext(), s.engagementID,
		dto.CreateWidgetRequest{WidgetTypeID: types.WidgetTypeSubscribe})
	s.NoError(err)

	s.NoError(s.service.DeleteWidget(s.GetContext(), w.ID))

	err = s.service.DeleteWidget(s.GetContext(), w.ID)
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrNotFound))

	list, err := s.service.GetWidgetsByEngagement(s.GetContext(), s.engagementID)
	s.NoError(err)
	s.Empty(list.Items)
}

package service

import (
	"testing"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/engagement"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/testutil"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type EngagementServiceSuite struct {
	testutil.BaseServiceTestSuite
	service EngagementService
}

func TestEngagementService(t *testing.T) {
	suite.Run(t, new(EngagementServiceSuite))
}

func (s *EngagementServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewEngagementService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		EngagementRepo: s.GetStores().EngagementRepo,
		SurveyRepo:     s.GetStores().SurveyRepo,
		SubmissionRepo: s.GetStores().SubmissionRepo,
		MetadataRepo:   s.GetStores().MetadataRepo,
	})
}

func (s *EngagementServiceSuite) seedEngagement(name string, status types.EngagementStatus, start, end time.Time) *engagement.Engagement {
	e := &engagement.Engagement{
		Name:      name,
		StartDate: start,
		EndDate:   end,
		StatusID:  status,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	if status == types.EngagementStatusPublished {
		e.PublishedDate = lo.ToPtr(time.Now().UTC().Add(-24 * time.Hour))
	}
	s.NoError(s.GetStores().EngagementRepo.Create(s.GetContext(), e))
	return e
}

func (s *EngagementServiceSuite) TestCreateEngagement() {
	start := time.Now().Add(24 * time.Hour)
	resp, err := s.service.CreateEngagement(s.GetContext(), dto.CreateEngagementRequest{
		Name:      "Park Renewal",
		StartDate: start,
		EndDate:   start.Add(14 * 24 * time.Hour),
	})
	s.NoError(err)
	s.NotZero(resp.ID)
	s.Equal(types.EngagementStatusDraft, resp.StatusID)
}

func (s *EngagementServiceSuite) TestCreateEngagementRejectsInvertedDates() {
	start := time.Now()
	_, err := s.service.CreateEngagement(s.GetContext(), dto.CreateEngagementRequest{
		Name:      "Backwards",
		StartDate: start,
		EndDate:   start.Add(-time.Hour),
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

// An empty filter must return the same rows as an unpaginated scan.
func (s *EngagementServiceSuite) TestEmptyFilterMatchesUnpaginatedScan() {
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.seedEngagement("engagement", types.EngagementStatusPublished,
			now.Add(-48*time.Hour), now.Add(48*time.Hour))
	}

	paged, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: &types.PaginationOptions{},
	})
	s.NoError(err)

	all, err := s.service.GetAllEngagements(s.GetContext())
	s.NoError(err)

	s.Equal(len(all), len(paged.Items))
	s.Equal(len(all), paged.Pagination.Total)
}

func (s *EngagementServiceSuite) TestPagesAreDisjointAndOrdered() {
	now := time.Now().UTC()
	for i := 0; i < 6; i++ {
		s.seedEngagement("engagement", types.EngagementStatusPublished,
			now.Add(-48*time.Hour), now.Add(48*time.Hour))
	}

	sortAsc := &types.EngagementFilter{
		Pagination: &types.PaginationOptions{
			Page: lo.ToPtr(1), Size: lo.ToPtr(3),
			SortKey: "id", SortOrder: types.OrderAsc,
		},
	}
	page1, err := s.service.GetEngagementsPaginated(s.GetContext(), sortAsc)
	s.NoError(err)

	sortAsc.Pagination.Page = lo.ToPtr(2)
	page2, err := s.service.GetEngagementsPaginated(s.GetContext(), sortAsc)
	s.NoError(err)

	unpaginated, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: &types.PaginationOptions{SortKey: "id", SortOrder: types.OrderAsc},
	})
	s.NoError(err)

	ids := func(items []*dto.EngagementResponse) []int64 {
		return lo.Map(items, func(r *dto.EngagementResponse, _ int) int64 { return r.ID })
	}

	union := append(ids(page1.Items), ids(page2.Items)...)
	s.Len(lo.Uniq(union), 6)
	s.Equal(ids(unpaginated.Items), union)
	s.Equal(6, page1.Pagination.Total)
}

// Stored Unpublished shares its numeric code with the synthetic Upcoming
// display status, so the derivation must not pass it through numerically.
func (s *EngagementServiceSuite) TestDisplayStatusDerivation() {
	now := time.Now().UTC()
	cases := []struct {
		status types.EngagementStatus
		start  time.Time
		want   types.EngagementDisplayStatus
	}{
		{types.EngagementStatusDraft, now.Add(time.Hour), types.DisplayStatusDraft},
		{types.EngagementStatusPublished, now.Add(time.Hour), types.DisplayStatusUpcoming},
		{types.EngagementStatusPublished, now.Add(-time.Hour), types.DisplayStatusOpen},
		{types.EngagementStatusClosed, now.Add(-time.Hour), types.DisplayStatusClosed},
		{types.EngagementStatusScheduled, now.Add(time.Hour), types.DisplayStatusScheduled},
		{types.EngagementStatusUnpublished, now.Add(-time.Hour), types.DisplayStatusUnpublished},
	}

	for _, c := range cases {
		e := s.seedEngagement(c.status.String(), c.status, c.start, c.start.Add(72*time.Hour))
		resp, err := s.service.GetEngagement(s.GetContext(), e.ID)
		s.NoError(err)
		s.Equal(c.want, resp.DisplayStatus, "stored status %s", c.status)
	}
}

func (s *EngagementServiceSuite) seedCreatedAt(name string, created time.Time) *engagement.Engagement {
	e := &engagement.Engagement{
		Name:      name,
		StartDate: created,
		EndDate:   created.Add(14 * 24 * time.Hour),
		StatusID:  types.EngagementStatusPublished,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	e.CreatedDate = created
	s.NoError(s.GetStores().EngagementRepo.Create(s.GetContext(), e))
	return e
}

// Both range bounds are inclusive, so a row created exactly on a bound
// matches from either side.
func (s *EngagementServiceSuite) TestCreatedDateRangeFilter() {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	early := s.seedCreatedAt("early", base)
	boundary := s.seedCreatedAt("boundary", base.Add(24*time.Hour))
	late := s.seedCreatedAt("late", base.Add(48*time.Hour))

	ids := func(resp *dto.ListEngagementsResponse) []int64 {
		return lo.Map(resp.Items, func(r *dto.EngagementResponse, _ int) int64 { return r.ID })
	}

	resp, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{
			CreatedFromDate: lo.ToPtr(boundary.CreatedDate),
		},
	})
	s.NoError(err)
	s.ElementsMatch([]int64{boundary.ID, late.ID}, ids(resp))

	resp, err = s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{
			CreatedToDate: lo.ToPtr(boundary.CreatedDate),
		},
	})
	s.NoError(err)
	s.ElementsMatch([]int64{early.ID, boundary.ID}, ids(resp))

	resp, err = s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{
			CreatedFromDate: lo.ToPtr(boundary.CreatedDate),
			CreatedToDate:   lo.ToPtr(boundary.CreatedDate),
		},
	})
	s.NoError(err)
	s.ElementsMatch([]int64{boundary.ID}, ids(resp))
}

// Rows that were never published carry a nil published date and fall out of
// any published-date range.
func (s *EngagementServiceSuite) TestPublishedDateRangeFilter() {
	now := time.Now().UTC()
	first := s.seedEngagement("first wave", types.EngagementStatusPublished,
		now.Add(-48*time.Hour), now.Add(48*time.Hour))
	first.PublishedDate = lo.ToPtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	s.NoError(s.GetStores().EngagementRepo.Update(s.GetContext(), first))

	second := s.seedEngagement("second wave", types.EngagementStatusPublished,
		now.Add(-48*time.Hour), now.Add(48*time.Hour))
	second.PublishedDate = lo.ToPtr(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	s.NoError(s.GetStores().EngagementRepo.Update(s.GetContext(), second))

	never := s.seedEngagement("never published", types.EngagementStatusDraft,
		now, now.Add(48*time.Hour))

	ids := func(resp *dto.ListEngagementsResponse) []int64 {
		return lo.Map(resp.Items, func(r *dto.EngagementResponse, _ int) int64 { return r.ID })
	}

	resp, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{
			PublishedFromDate: first.PublishedDate,
		},
	})
	s.NoError(err)
	s.ElementsMatch([]int64{first.ID, second.ID}, ids(resp))
	s.NotContains(ids(resp), never.ID)

	resp, err = s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{
			PublishedToDate: first.PublishedDate,
		},
	})
	s.NoError(err)
	s.ElementsMatch([]int64{first.ID}, ids(resp))
}

func (s *EngagementServiceSuite) TestSearchTextFiltersByName() {
	now := time.Now().UTC()
	s.seedEngagement("Downtown Transit Plan", types.EngagementStatusPublished,
		now.Add(-time.Hour), now.Add(time.Hour))
	s.seedEngagement("Harbour Cleanup", types.EngagementStatusPublished,
		now.Add(-time.Hour), now.Add(time.Hour))

	resp, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination:    types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{SearchText: "transit"},
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("Downtown Transit Plan", resp.Items[0].Name)
}

// The synthetic Open code matches Published engagements already started;
// future-dated ones would satisfy Upcoming instead.
func (s *EngagementServiceSuite) TestSyntheticOpenStatusFilter() {
	now := time.Now().UTC()
	open := s.seedEngagement("already open", types.EngagementStatusPublished,
		now.Add(-time.Hour), now.Add(72*time.Hour))
	upcoming := s.seedEngagement("not yet open", types.EngagementStatusPublished,
		now.Add(time.Hour), now.Add(72*time.Hour))

	resp, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{
			EngagementStatus: []int{int(types.DisplayStatusOpen)},
		},
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(open.ID, resp.Items[0].ID)

	resp, err = s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{
			EngagementStatus: []int{int(types.DisplayStatusUpcoming)},
		},
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(upcoming.ID, resp.Items[0].ID)
}

func (s *EngagementServiceSuite) TestAssignedEngagementsScopeDraftVisibility() {
	now := time.Now().UTC()
	draftA := s.seedEngagement("assigned draft", types.EngagementStatusDraft,
		now, now.Add(time.Hour))
	draftB := s.seedEngagement("unassigned draft", types.EngagementStatusDraft,
		now, now.Add(time.Hour))
	published := s.seedEngagement("public", types.EngagementStatusPublished,
		now.Add(-time.Hour), now.Add(time.Hour))

	resp, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination:          types.NewDefaultPaginationOptions(),
		AssignedEngagements: []int64{draftA.ID},
	})
	s.NoError(err)

	ids := lo.Map(resp.Items, func(r *dto.EngagementResponse, _ int) int64 { return r.ID })
	s.Contains(ids, draftA.ID)
	s.Contains(ids, published.ID)
	s.NotContains(ids, draftB.ID)
}

func (s *EngagementServiceSuite) TestEmptyAssignedListHidesAllDrafts() {
	now := time.Now().UTC()
	draft := s.seedEngagement("draft", types.EngagementStatusDraft, now, now.Add(time.Hour))
	published := s.seedEngagement("public", types.EngagementStatusPublished,
		now.Add(-time.Hour), now.Add(time.Hour))

	resp, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination:          types.NewDefaultPaginationOptions(),
		AssignedEngagements: []int64{},
	})
	s.NoError(err)

	ids := lo.Map(resp.Items, func(r *dto.EngagementResponse, _ int) int64 { return r.ID })
	s.NotContains(ids, draft.ID)
	s.Contains(ids, published.ID)
}

func (s *EngagementServiceSuite) TestInvalidSortKeyRejected() {
	_, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination: &types.PaginationOptions{SortKey: "name; DROP TABLE engagement"},
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *EngagementServiceSuite) TestUpdateEngagement() {
	now := time.Now().UTC()
	e := s.seedEngagement("original", types.EngagementStatusDraft, now, now.Add(time.Hour))

	resp, err := s.service.UpdateEngagement(s.GetContext(), e.ID, dto.UpdateEngagementRequest{
		Name: lo.ToPtr("renamed"),
	})
	s.NoError(err)
	s.Equal("renamed", resp.Name)

	// Omitted published date keeps the stored value.
	stored, err := s.GetStores().EngagementRepo.Get(s.GetContext(), e.ID)
	s.NoError(err)
	s.Equal(e.PublishedDate, stored.PublishedDate)
}

func (s *EngagementServiceSuite) TestUpdateMissingEngagementWritesNothing() {
	_, err := s.service.UpdateEngagement(s.GetContext(), 9999, dto.UpdateEngagementRequest{
		Name: lo.ToPtr("ghost"),
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrNotFound))

	all, err := s.service.GetAllEngagements(s.GetContext())
	s.NoError(err)
	s.Empty(all)
}

func (s *EngagementServiceSuite) TestCloseEngagementsDue() {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	due := s.seedEngagement("ended yesterday", types.EngagementStatusPublished,
		yesterday.Add(-14*24*time.Hour), yesterday)
	endsToday := s.seedEngagement("ends today", types.EngagementStatusPublished,
		yesterday, time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location()))

	closed, err := s.service.CloseEngagementsDue(s.GetContext())
	s.NoError(err)
	s.Len(closed, 1)
	s.Equal(due.ID, closed[0].ID)
	s.Equal(types.EngagementStatusClosed, closed[0].StatusID)
	s.Equal(types.SystemUser, closed[0].UpdatedBy)

	stored, err := s.GetStores().EngagementRepo.Get(s.GetContext(), endsToday.ID)
	s.NoError(err)
	s.Equal(types.EngagementStatusPublished, stored.StatusID)

	// A second invocation finds nothing left to close.
	closed, err = s.service.CloseEngagementsDue(s.GetContext())
	s.NoError(err)
	s.Empty(closed)
}

func (s *EngagementServiceSuite) TestPublishScheduledEngagementsDue() {
	now := time.Now().UTC()

	duePast := s.seedEngagement("due", types.EngagementStatusScheduled,
		now.Add(24*time.Hour), now.Add(14*24*time.Hour))
	duePast.ScheduledDate = lo.ToPtr(now.Add(-time.Hour))
	s.NoError(s.GetStores().EngagementRepo.Update(s.GetContext(), duePast))

	future := s.seedEngagement("later", types.EngagementStatusScheduled,
		now.Add(48*time.Hour), now.Add(14*24*time.Hour))
	future.ScheduledDate = lo.ToPtr(now.Add(time.Hour))
	s.NoError(s.GetStores().EngagementRepo.Update(s.GetContext(), future))

	published, err := s.service.PublishScheduledEngagementsDue(s.GetContext())
	s.NoError(err)
	s.Len(published, 1)
	s.Equal(duePast.ID, published[0].ID)
	s.Equal(types.EngagementStatusPublished, published[0].StatusID)
	s.NotNil(published[0].PublishedDate)

	stored, err := s.GetStores().EngagementRepo.Get(s.GetContext(), future.ID)
	s.NoError(err)
	s.Equal(types.EngagementStatusScheduled, stored.StatusID)
	s.Nil(stored.PublishedDate)
}

func (s *EngagementServiceSuite) TestGetEngagementsByStatus() {
	now := time.Now().UTC()
	draft := s.seedEngagement("draft", types.EngagementStatusDraft, now, now.Add(time.Hour))
	s.seedEngagement("published", types.EngagementStatusPublished,
		now.Add(-time.Hour), now.Add(time.Hour))

	items, err := s.service.GetEngagementsByStatus(s.GetContext(),
		[]types.EngagementStatus{types.EngagementStatusDraft})
	s.NoError(err)
	s.Len(items, 1)
	s.Equal(draft.ID, items[0].ID)

	_, err = s.service.GetEngagementsByStatus(s.GetContext(),
		[]types.EngagementStatus{types.EngagementStatus(42)})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *EngagementServiceSuite) TestMetadataFilters() {
	now := time.Now().UTC()
	mine := s.seedEngagement("mine pipeline", types.EngagementStatusPublished,
		now.Add(-time.Hour), now.Add(time.Hour))
	s.seedEngagement("unrelated", types.EngagementStatusPublished,
		now.Add(-time.Hour), now.Add(time.Hour))

	metaService := NewMetadataService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		EngagementRepo: s.GetStores().EngagementRepo,
		MetadataRepo:   s.GetStores().MetadataRepo,
		TaxonRepo:      s.GetStores().TaxonRepo,
	})
	taxon, err := metaService.CreateTaxon(s.GetContext(), dto.CreateTaxonRequest{Name: "Project"})
	s.NoError(err)
	_, err = metaService.CreateMetadata(s.GetContext(), mine.ID, dto.CreateMetadataRequest{
		TaxonID:   taxon.ID,
		Value:     "Mine",
		ProjectID: "P-100",
	})
	s.NoError(err)

	resp, err := s.service.GetEngagementsPaginated(s.GetContext(), &types.EngagementFilter{
		Pagination:    types.NewDefaultPaginationOptions(),
		SearchOptions: &types.EngagementSearchOptions{ProjectID: "P-100"},
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(mine.ID, resp.Items[0].ID)
}

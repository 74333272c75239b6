package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/engagehq/engage-api/internal/domain/survey"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type InMemorySurveyStore struct {
	*InMemoryStore[*survey.Survey]
}

func NewInMemorySurveyStore() *InMemorySurveyStore {
	return &InMemorySurveyStore{
		InMemoryStore: NewInMemoryStore[*survey.Survey](),
	}
}

func (s *InMemorySurveyStore) Create(ctx context.Context, sv *survey.Survey) error {
	if sv.ID == 0 {
		sv.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, sv.ID, sv)
}

func (s *InMemorySurveyStore) Get(ctx context.Context, id int64) (*survey.Survey, error) {
	sv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("survey %d not found", id)).
			WithHint("The survey does not exist").
			Mark(ierr.ErrNotFound)
	}
	return sv, nil
}

func surveyMatches(ctx context.Context, sv *survey.Survey, filter *types.SurveyFilter) bool {
	if sv.TenantID != types.GetTenantID(ctx) {
		return false
	}
	if filter == nil {
		return true
	}
	if filter.SearchText != "" &&
		!strings.Contains(strings.ToLower(sv.Name), strings.ToLower(filter.SearchText)) {
		return false
	}
	if filter.UnlinkedOnly && sv.EngagementID != nil {
		return false
	}
	if filter.ExcludeHidden && sv.IsHidden {
		return false
	}
	if filter.ExcludeTemplate && sv.IsTemplate {
		return false
	}
	return true
}

func (s *InMemorySurveyStore) List(ctx context.Context, filter *types.SurveyFilter) ([]*survey.Survey, error) {
	return s.InMemoryStore.List(ctx, filter,
		func(ctx context.Context, sv *survey.Survey, _ interface{}) bool {
			return surveyMatches(ctx, sv, filter)
		},
		func(a, b *survey.Survey) bool { return a.CreatedDate.After(b.CreatedDate) },
		filter.Pagination,
	)
}

func (s *InMemorySurveyStore) Count(ctx context.Context, filter *types.SurveyFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter,
		func(ctx context.Context, sv *survey.Survey, _ interface{}) bool {
			return surveyMatches(ctx, sv, filter)
		},
	)
}

func (s *InMemorySurveyStore) ListByEngagement(ctx context.Context, engagementID int64) ([]*survey.Survey, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, sv *survey.Survey, _ interface{}) bool {
			return sv.EngagementID != nil && *sv.EngagementID == engagementID
		},
		func(a, b *survey.Survey) bool { return a.ID < b.ID },
		nil,
	)
}

func (s *InMemorySurveyStore) Update(ctx context.Context, sv *survey.Survey) error {
	if err := s.InMemoryStore.Update(ctx, sv.ID, sv); err != nil {
		return ierr.NewError(fmt.Sprintf("survey %d not found", sv.ID)).
			WithHint("The survey does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

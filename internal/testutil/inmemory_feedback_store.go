package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/engagehq/engage-api/internal/domain/feedback"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type InMemoryFeedbackStore struct {
	*InMemoryStore[*feedback.Feedback]
}

func NewInMemoryFeedbackStore() *InMemoryFeedbackStore {
	return &InMemoryFeedbackStore{
		InMemoryStore: NewInMemoryStore[*feedback.Feedback](),
	}
}

func (s *InMemoryFeedbackStore) Create(ctx context.Context, f *feedback.Feedback) error {
	if f.ID == 0 {
		f.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, f.ID, f)
}

func (s *InMemoryFeedbackStore) Get(ctx context.Context, id int64) (*feedback.Feedback, error) {
	f, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("feedback %d not found", id)).
			WithHint("The feedback does not exist").
			Mark(ierr.ErrNotFound)
	}
	return f, nil
}

func feedbackMatches(ctx context.Context, f *feedback.Feedback, filter *types.FeedbackFilter) bool {
	if f.TenantID != types.GetTenantID(ctx) {
		return false
	}
	if filter == nil {
		return true
	}
	if filter.Status != nil && f.Status != *filter.Status {
		return false
	}
	if filter.SearchText != "" &&
		!strings.Contains(strings.ToLower(f.Comment), strings.ToLower(filter.SearchText)) {
		return false
	}
	return true
}

func (s *InMemoryFeedbackStore) List(ctx context.Context, filter *types.FeedbackFilter) ([]*feedback.Feedback, error) {
	return s.InMemoryStore.List(ctx, filter,
		func(ctx context.Context, f *feedback.Feedback, _ interface{}) bool {
			return feedbackMatches(ctx, f, filter)
		},
		func(a, b *feedback.Feedback) bool { return a.CreatedDate.After(b.CreatedDate) },
		filter.Pagination,
	)
}

func (s *InMemoryFeedbackStore) Count(ctx context.Context, filter *types.FeedbackFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter,
		func(ctx context.Context, f *feedback.Feedback, _ interface{}) bool {
			return feedbackMatches(ctx, f, filter)
		},
	)
}

func (s *InMemoryFeedbackStore) Update(ctx context.Context, f *feedback.Feedback) error {
	if err := s.InMemoryStore.Update(ctx, f.ID, f); err != nil {
		return ierr.NewError(fmt.Sprintf("feedback %d not found", f.ID)).
			WithHint("The feedback does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryFeedbackStore) Delete(ctx context.Context, id int64) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError(fmt.Sprintf("feedback %d not found", id)).
			WithHint("The feedback does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

package testutil

import (
	"context"
	"fmt"

	"github.com/engagehq/engage-api/internal/domain/widget"
	ierr "github.com/engagehq/engage-api/internal/errors"
)

type InMemoryWidgetStore struct {
	*InMemoryStore[*widget.Widget]
}

func NewInMemoryWidgetStore() *InMemoryWidgetStore {
	return &InMemoryWidgetStore{
		InMemoryStore: NewInMemoryStore[*widget.Widget](),
	}
}

func (s *InMemoryWidgetStore) Create(ctx context.Context, w *widget.Widget) error {
	if w.ID == 0 {
		w.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, w.ID, w)
}

func (s *InMemoryWidgetStore) Get(ctx context.Context, id int64) (*widget.Widget, error) {
	w, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("widget %d not found", id)).
			WithHint("The widget does not exist").
			Mark(ierr.ErrNotFound)
	}
	return w, nil
}

func (s *InMemoryWidgetStore) ListByEngagement(ctx context.Context, engagementID int64) ([]*widget.Widget, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, w *widget.Widget, _ interface{}) bool {
			return w.EngagementID == engagementID
		},
		func(a, b *widget.Widget) bool { return a.SortIndex < b.SortIndex },
		nil,
	)
}

func (s *InMemoryWidgetStore) Update(ctx context.Context, w *widget.Widget) error {
	if err := s.InMemoryStore.Update(ctx, w.ID, w); err != nil {
		return ierr.NewError(fmt.Sprintf("widget %d not found", w.ID)).
			WithHint("The widget does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryWidgetStore) Delete(ctx context.Context, id int64) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError(fmt.Sprintf("widget %d not found", id)).
			WithHint("The widget does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryWidgetStore) UpdateSortIndexes(ctx context.Context, engagementID int64, order []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range order {
		w, exists := s.items[id]
		if !exists || w.EngagementID != engagementID {
			return ierr.NewError(fmt.Sprintf("widget %d not found on engagement %d", id, engagementID)).
				WithHint("One of the widgets in the new order does not exist").
				Mark(ierr.ErrNotFound)
		}
		w.SortIndex = i
	}
	return nil
}

package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/engagehq/engage-api/internal/domain/user"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u.ID == 0 {
		u.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) Get(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("user %d not found", id)).
			WithHint("The user does not exist").
			Mark(ierr.ErrNotFound)
	}
	return u, nil
}

func (s *InMemoryUserStore) GetByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.items {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, ierr.NewError(fmt.Sprintf("user %s not found", externalID)).
		WithHint("The user does not exist").
		Mark(ierr.ErrNotFound)
}

func userMatches(ctx context.Context, u *user.User, filter *types.UserFilter) bool {
	if u.TenantID != types.GetTenantID(ctx) {
		return false
	}
	if filter == nil {
		return true
	}
	if !filter.IncludeInactive && u.Status != user.UserStatusActive {
		return false
	}
	if filter.SearchText != "" {
		needle := strings.ToLower(filter.SearchText)
		if !strings.Contains(strings.ToLower(u.FirstName), needle) &&
			!strings.Contains(strings.ToLower(u.LastName), needle) {
			return false
		}
	}
	return true
}

func (s *InMemoryUserStore) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	return s.InMemoryStore.List(ctx, filter,
		func(ctx context.Context, u *user.User, _ interface{}) bool {
			return userMatches(ctx, u, filter)
		},
		func(a, b *user.User) bool { return a.CreatedDate.After(b.CreatedDate) },
		filter.Pagination,
	)
}

func (s *InMemoryUserStore) Count(ctx context.Context, filter *types.UserFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter,
		func(ctx context.Context, u *user.User, _ interface{}) bool {
			return userMatches(ctx, u, filter)
		},
	)
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if err := s.InMemoryStore.Update(ctx, u.ID, u); err != nil {
		return ierr.NewError(fmt.Sprintf("user %d not found", u.ID)).
			WithHint("The user does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

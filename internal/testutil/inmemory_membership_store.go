package testutil

import (
	"context"
	"fmt"
	"sort"

	"github.com/engagehq/engage-api/internal/domain/membership"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type InMemoryMembershipStore struct {
	*InMemoryStore[*membership.Membership]
}

func NewInMemoryMembershipStore() *InMemoryMembershipStore {
	return &InMemoryMembershipStore{
		InMemoryStore: NewInMemoryStore[*membership.Membership](),
	}
}

func (s *InMemoryMembershipStore) Create(ctx context.Context, m *membership.Membership) error {
	if m.ID == 0 {
		m.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, m.ID, m)
}

func (s *InMemoryMembershipStore) Get(ctx context.Context, id int64) (*membership.Membership, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("membership %d not found", id)).
			WithHint("The membership does not exist").
			Mark(ierr.ErrNotFound)
	}
	return m, nil
}

func (s *InMemoryMembershipStore) ListByEngagement(ctx context.Context, engagementID int64) ([]*membership.Membership, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, m *membership.Membership, _ interface{}) bool {
			return m.EngagementID == engagementID && m.IsLatest
		},
		func(a, b *membership.Membership) bool { return a.ID < b.ID },
		nil,
	)
}

func (s *InMemoryMembershipStore) GetLatest(ctx context.Context, engagementID, userID int64) (*membership.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.items {
		if m.EngagementID == engagementID && m.UserID == userID && m.IsLatest {
			return m, nil
		}
	}
	return nil, ierr.NewError(fmt.Sprintf("no membership for user %d on engagement %d", userID, engagementID)).
		WithHint("The user is not a member of the engagement").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryMembershipStore) ListAssignedEngagementIDs(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int64
	for _, m := range s.items {
		if m.UserID == userID && m.IsLatest && m.Status == types.MembershipStatusActive {
			ids = append(ids, m.EngagementID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *InMemoryMembershipStore) Update(ctx context.Context, m *membership.Membership) error {
	if err := s.InMemoryStore.Update(ctx, m.ID, m); err != nil {
		return ierr.NewError(fmt.Sprintf("membership %d not found", m.ID)).
			WithHint("The membership does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryMembershipStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

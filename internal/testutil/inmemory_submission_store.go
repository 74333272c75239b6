package testutil

import (
	"context"
	"fmt"

	"github.com/engagehq/engage-api/internal/domain/submission"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type InMemorySubmissionStore struct {
	*InMemoryStore[*submission.Submission]
}

func NewInMemorySubmissionStore() *InMemorySubmissionStore {
	return &InMemorySubmissionStore{
		InMemoryStore: NewInMemoryStore[*submission.Submission](),
	}
}

func (s *InMemorySubmissionStore) Create(ctx context.Context, sub *submission.Submission) error {
	if sub.ID == 0 {
		sub.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, sub.ID, sub)
}

func (s *InMemorySubmissionStore) Get(ctx context.Context, id int64) (*submission.Submission, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("submission %d not found", id)).
			WithHint("The submission does not exist").
			Mark(ierr.ErrNotFound)
	}
	return sub, nil
}

func (s *InMemorySubmissionStore) ListBySurvey(ctx context.Context, surveyID int64, pagination *types.PaginationOptions) ([]*submission.Submission, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, sub *submission.Submission, _ interface{}) bool {
			return sub.SurveyID == surveyID
		},
		func(a, b *submission.Submission) bool { return a.ID < b.ID },
		pagination,
	)
}

func (s *InMemorySubmissionStore) CountBySurvey(ctx context.Context, surveyID int64) (int, error) {
	return s.InMemoryStore.Count(ctx, nil,
		func(ctx context.Context, sub *submission.Submission, _ interface{}) bool {
			return sub.SurveyID == surveyID
		},
	)
}

func (s *InMemorySubmissionStore) Update(ctx context.Context, sub *submission.Submission) error {
	if err := s.InMemoryStore.Update(ctx, sub.ID, sub); err != nil {
		return ierr.NewError(fmt.Sprintf("submission %d not found", sub.ID)).
			WithHint("The submission does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

package testutil

import (
	"context"
	"fmt"

	"github.com/engagehq/engage-api/internal/domain/comment"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type InMemoryCommentStore struct {
	*InMemoryStore[*comment.Comment]
}

func NewInMemoryCommentStore() *InMemoryCommentStore {
	return &InMemoryCommentStore{
		InMemoryStore: NewInMemoryStore[*comment.Comment](),
	}
}

func (s *InMemoryCommentStore) Create(ctx context.Context, c *comment.Comment) error {
	if c.ID == 0 {
		c.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryCommentStore) Get(ctx context.Context, id int64) (*comment.Comment, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("comment %d not found", id)).
			WithHint("The comment does not exist").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryCommentStore) ListBySurvey(ctx context.Context, surveyID int64, pagination *types.PaginationOptions) ([]*comment.Comment, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, c *comment.Comment, _ interface{}) bool {
			return c.SurveyID == surveyID
		},
		func(a, b *comment.Comment) bool { return a.ID < b.ID },
		pagination,
	)
}

func (s *InMemoryCommentStore) CountBySurvey(ctx context.Context, surveyID int64) (int, error) {
	return s.InMemoryStore.Count(ctx, nil,
		func(ctx context.Context, c *comment.Comment, _ interface{}) bool {
			return c.SurveyID == surveyID
		},
	)
}

func (s *InMemoryCommentStore) ListBySubmission(ctx context.Context, submissionID int64) ([]*comment.Comment, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, c *comment.Comment, _ interface{}) bool {
			return c.SubmissionID == submissionID
		},
		func(a, b *comment.Comment) bool { return a.ID < b.ID },
		nil,
	)
}

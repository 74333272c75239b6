package service

import (
	"context"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/comment"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/samber/lo"
)

type CommentService interface {
	GetComment(ctx context.Context, id int64) (*dto.CommentResponse, error)
	GetCommentsBySurvey(ctx context.Context, surveyID int64, pagination *types.PaginationOptions) (*dto.ListCommentsResponse, error)
	GetCommentsBySubmission(ctx context.Context, submissionID int64) ([]*dto.CommentResponse, error)
}

type commentService struct {
	ServiceParams
}

func NewCommentService(params ServiceParams) CommentService {
	return &commentService{ServiceParams: params}
}

func (s *commentService) GetComment(ctx context.Context, id int64) (*dto.CommentResponse, error) {
	c, err := s.CommentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CommentResponse{Comment: c}, nil
}

func (s *commentService) GetCommentsBySurvey(ctx context.Context, surveyID int64, pagination *types.PaginationOptions) (*dto.ListCommentsResponse, error) {
	if pagination == nil {
		pagination = types.NewDefaultPaginationOptions()
	}
	if err := pagination.ValidateSortKey("id", "created_date", "submission_date"); err != nil {
		return nil, err
	}

	items, err := s.CommentRepo.ListBySurvey(ctx, surveyID, pagination)
	if err != nil {
		return nil, err
	}
	total, err := s.CommentRepo.CountBySurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	response := types.NewListResponse(
		lo.Map(items, func(c *comment.Comment, _ int) *dto.CommentResponse {
			return &dto.CommentResponse{Comment: c}
		}),
		total,
		pagination,
	)
	return &response, nil
}

func (s *commentService) GetCommentsBySubmission(ctx context.Context, submissionID int64) ([]*dto.CommentResponse, error) {
	items, err := s.CommentRepo.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(c *comment.Comment, _ int) *dto.CommentResponse {
		return &dto.CommentResponse{Comment: c}
	}), nil
}

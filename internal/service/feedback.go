package service

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/feedback"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/samber/lo"
)

type FeedbackService interface {
	CreateFeedback(ctx context.Context, req dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	GetFeedback(ctx context.Context, id int64) (*dto.FeedbackResponse, error)
	GetFeedbackPaginated(ctx context.Context, filter *types.FeedbackFilter) (*dto.ListFeedbackResponse, error)
	UpdateFeedback(ctx context.Context, id int64, req dto.UpdateFeedbackRequest) (*dto.FeedbackResponse, error)
	DeleteFeedback(ctx context.Context, id int64) error
}

type feedbackService struct {
	ServiceParams
}

func NewFeedbackService(params ServiceParams) FeedbackService {
	return &feedbackService{ServiceParams: params}
}

func (s *feedbackService) CreateFeedback(ctx context.Context, req dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	f := req.ToFeedback(ctx)
	if err := s.FeedbackRepo.Create(ctx, f); err != nil {
		return nil, err
	}

	s.Logger.Infow("created feedback", "feedback_id", f.ID, "rating", f.Rating)
	return &dto.FeedbackResponse{Feedback: f}, nil
}

func (s *feedbackService) GetFeedback(ctx context.Context, id int64) (*dto.FeedbackResponse, error) {
	f, err := s.FeedbackRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.FeedbackResponse{Feedback: f}, nil
}

func (s *feedbackService) GetFeedbackPaginated(ctx context.Context, filter *types.FeedbackFilter) (*dto.ListFeedbackResponse, error) {
	if filter == nil {
		filter = types.NewDefaultFeedbackFilter()
	}
	if filter.Pagination == nil {
		filter.Pagination = types.NewDefaultPaginationOptions()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.FeedbackRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.FeedbackRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := types.NewListResponse(
		lo.Map(items, func(f *feedback.Feedback, _ int) *dto.FeedbackResponse {
			return &dto.FeedbackResponse{Feedback: f}
		}),
		total,
		filter.Pagination,
	)
	return &response, nil
}

func (s *feedbackService) UpdateFeedback(ctx context.Context, id int64, req dto.UpdateFeedbackRequest) (*dto.FeedbackResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	f, err := s.FeedbackRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		f.Rating = *req.Rating
	}
	if req.Comment != nil {
		f.Comment = *req.Comment
	}
	if req.Status != nil {
		f.Status = *req.Status
	}
	f.UpdatedDate = time.Now().UTC()
	f.UpdatedBy = types.GetUserID(ctx)

	if err := s.FeedbackRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return &dto.FeedbackResponse{Feedback: f}, nil
}

func (s *feedbackService) DeleteFeedback(ctx context.Context, id int64) error {
	if err := s.FeedbackRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deleted feedback", "feedback_id", id)
	return nil
}

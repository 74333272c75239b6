package service

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/submission"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/samber/lo"
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, req dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error)
	GetSubmission(ctx context.Context, id int64) (*dto.SubmissionResponse, error)
	GetSubmissionsBySurvey(ctx context.Context, surveyID int64, pagination *types.PaginationOptions) (*dto.ListSubmissionsResponse, error)
	ReviewSubmission(ctx context.Context, id int64, req dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error)
}

type submissionService struct {
	ServiceParams
}

func NewSubmissionService(params ServiceParams) SubmissionService {
	return &submissionService{ServiceParams: params}
}

func (s *submissionService) CreateSubmission(ctx context.Context, req dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sv, err := s.SurveyRepo.Get(ctx, req.SurveyID)
	if err != nil {
		return nil, err
	}
	if sv.EngagementID == nil {
		return nil, ierr.NewError("survey not linked").
			WithHint("Responses are only accepted on surveys attached to an engagement").
			Mark(ierr.ErrInvalidOperation)
	}

	// Only an open engagement accepts responses.
	e, err := s.EngagementRepo.Get(ctx, *sv.EngagementID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if e.DisplayStatus(now) != types.DisplayStatusOpen {
		return nil, ierr.NewError("engagement not open").
			WithHint("The engagement is not currently accepting responses").
			WithReportableDetails(map[string]any{"engagement_id": e.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	sub := req.ToSubmission(ctx, *sv.EngagementID)
	if err := s.SubmissionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	for _, c := range req.ToComments(ctx, sub) {
		if err := s.CommentRepo.Create(ctx, c); err != nil {
			return nil, err
		}
	}

	s.Logger.Infow("created submission", "submission_id", sub.ID, "survey_id", sub.SurveyID)
	return &dto.SubmissionResponse{Submission: sub}, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, id int64) (*dto.SubmissionResponse, error) {
	sub, err := s.SubmissionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SubmissionResponse{Submission: sub}, nil
}

func (s *submissionService) GetSubmissionsBySurvey(ctx context.Context, surveyID int64, pagination *types.PaginationOptions) (*dto.ListSubmissionsResponse, error) {
	if pagination == nil {
		pagination = types.NewDefaultPaginationOptions()
	}
	if err := pagination.ValidateSortKey("id", "created_date", "comment_status_id"); err != nil {
		return nil, err
	}

	items, err := s.SubmissionRepo.ListBySurvey(ctx, surveyID, pagination)
	if err != nil {
		return nil, err
	}
	total, err := s.SubmissionRepo.CountBySurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	response := types.NewListResponse(
		lo.Map(items, func(sub *submission.Submission, _ int) *dto.SubmissionResponse {
			return &dto.SubmissionResponse{Submission: sub}
		}),
		total,
		pagination,
	)
	return &response, nil
}

func (s *submissionService) ReviewSubmission(ctx context.Context, id int64, req dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubmissionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reviewer := types.GetUserID(ctx)

	sub.CommentStatusID = req.Status
	sub.ReviewedBy = &reviewer
	sub.ReviewDate = &now
	sub.UpdatedDate = now
	sub.UpdatedBy = reviewer

	if err := s.SubmissionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("reviewed submission",
		"submission_id", sub.ID,
		"status", int(req.Status),
		"reviewed_by", reviewer)
	return &dto.SubmissionResponse{Submission: sub}, nil
}

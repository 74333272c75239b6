package service

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/survey"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/samber/lo"
)

type SurveyService interface {
	CreateSurvey(ctx context.Context, req dto.CreateSurveyRequest) (*dto.SurveyResponse, error)
	GetSurvey(ctx context.Context, id int64) (*dto.SurveyResponse, error)
	GetSurveys(ctx context.Context, filter *types.SurveyFilter) (*dto.ListSurveysResponse, error)
	UpdateSurvey(ctx context.Context, id int64, req dto.UpdateSurveyRequest) (*dto.SurveyResponse, error)
	LinkSurvey(ctx context.Context, id int64, engagementID int64) (*dto.SurveyResponse, error)
	UnlinkSurvey(ctx context.Context, id int64) (*dto.SurveyResponse, error)
}

type surveyService struct {
	ServiceParams
}

func NewSurveyService(params ServiceParams) SurveyService {
	return &surveyService{ServiceParams: params}
}

func (s *surveyService) CreateSurvey(ctx context.Context, req dto.CreateSurveyRequest) (*dto.SurveyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.EngagementID != nil {
		if _, err := s.EngagementRepo.Get(ctx, *req.EngagementID); err != nil {
			return nil, err
		}
	}

	sv := req.ToSurvey(ctx)
	if err := s.SurveyRepo.Create(ctx, sv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created survey", "survey_id", sv.ID, "name", sv.Name)
	return &dto.SurveyResponse{Survey: sv}, nil
}

func (s *surveyService) GetSurvey(ctx context.Context, id int64) (*dto.SurveyResponse, error) {
	sv, err := s.SurveyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SurveyResponse{Survey: sv}, nil
}

func (s *surveyService) GetSurveys(ctx context.Context, filter *types.SurveyFilter) (*dto.ListSurveysResponse, error) {
	if filter == nil {
		filter = types.NewDefaultSurveyFilter()
	}
	if filter.Pagination == nil {
		filter.Pagination = types.NewDefaultPaginationOptions()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.SurveyRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.SurveyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := types.NewListResponse(
		lo.Map(items, func(sv *survey.Survey, _ int) *dto.SurveyResponse {
			return &dto.SurveyResponse{Survey: sv}
		}),
		total,
		filter.Pagination,
	)
	return &response, nil
}

func (s *surveyService) UpdateSurvey(ctx context.Context, id int64, req dto.UpdateSurveyRequest) (*dto.SurveyResponse, error) {
	sv, err := s.SurveyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sv.Name = *req.Name
	}
	if req.FormJSON != nil {
		sv.FormJSON = req.FormJSON
	}
	if req.IsHidden != nil {
		sv.IsHidden = *req.IsHidden
	}
	if req.IsTemplate != nil {
		sv.IsTemplate = *req.IsTemplate
	}

	sv.UpdatedDate = time.Now().UTC()
	sv.UpdatedBy = types.GetUserID(ctx)

	if err := s.SurveyRepo.Update(ctx, sv); err != nil {
		return nil, err
	}
	return &dto.SurveyResponse{Survey: sv}, nil
}

func (s *surveyService) LinkSurvey(ctx context.Context, id int64, engagementID int64) (*dto.SurveyResponse, error) {
	sv, err := s.SurveyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sv.EngagementID != nil {
		return nil, ierr.NewError("survey already linked").
			WithHint("The survey is already attached to an engagement").
			WithReportableDetails(map[string]any{"engagement_id": *sv.EngagementID}).
			Mark(ierr.ErrInvalidOperation)
	}

	if _, err := s.EngagementRepo.Get(ctx, engagementID); err != nil {
		return nil, err
	}

	sv.EngagementID = &engagementID
	sv.UpdatedDate = time.Now().UTC()
	sv.UpdatedBy = types.GetUserID(ctx)

	if err := s.SurveyRepo.Update(ctx, sv); err != nil {
		return nil, err
	}

	s.Logger.Infow("linked survey to engagement", "survey_id", sv.ID, "engagement_id", engagementID)
	return &dto.SurveyResponse{Survey: sv}, nil
}

func (s *surveyService) UnlinkSurvey(ctx context.Context, id int64) (*dto.SurveyResponse, error) {
	sv, err := s.SurveyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sv.EngagementID == nil {
		return nil, ierr.NewError("survey not linked").
			WithHint("The survey is not attached to any engagement").
			Mark(ierr.ErrInvalidOperation)
	}

	// Unlinking a survey with submissions would orphan responses.
	count, err := s.SubmissionRepo.CountBySurvey(ctx, sv.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ierr.NewError("survey has submissions").
			WithHint("A survey with responses cannot be unlinked from its engagement").
			WithReportableDetails(map[string]any{"submissions": count}).
			Mark(ierr.ErrInvalidOperation)
	}

	sv.EngagementID = nil
	sv.UpdatedDate = time.Now().UTC()
	sv.UpdatedBy = types.GetUserID(ctx)

	if err := s.SurveyRepo.Update(ctx, sv); err != nil {
		return nil, err
	}

	s.Logger.Infow("unlinked survey", "survey_id", sv.ID)
	return &dto.SurveyResponse{Survey: sv}, nil
}

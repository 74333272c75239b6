package service

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/membership"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

type MembershipService interface {
	CreateMembership(ctx context.Context, engagementID int64, req dto.CreateMembershipRequest) (*dto.MembershipResponse, error)
	GetMembershipsByEngagement(ctx context.Context, engagementID int64) (*dto.ListMembershipsResponse, error)
	UpdateMembershipStatus(ctx context.Context, engagementID, userID int64, req dto.UpdateMembershipStatusRequest) (*dto.MembershipResponse, error)

	// GetAssignedEngagementIDs returns the engagements the user holds an
	// active membership on. Used to scope draft visibility in listings.
	GetAssignedEngagementIDs(ctx context.Context, userID int64) ([]int64, error)
}

type membershipService struct {
	ServiceParams
}

func NewMembershipService(params ServiceParams) MembershipService {
	return &membershipService{ServiceParams: params}
}

func (s *membershipService) CreateMembership(ctx context.Context, engagementID int64, req dto.CreateMembershipRequest) (*dto.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.EngagementRepo.Get(ctx, engagementID); err != nil {
		return nil, err
	}
	u, err := s.UserRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	latest, err := s.MembershipRepo.GetLatest(ctx, engagementID, req.UserID)
	if err != nil && !errors.Is(err, ierr.ErrNotFound) {
		return nil, err
	}

	if latest != nil && latest.Status == types.MembershipStatusActive {
		return nil, ierr.NewError("user already a member").
			WithHint("The user already has an active membership on this engagement").
			WithReportableDetails(map[string]any{
				"engagement_id": engagementID,
				"user_id":       req.UserID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	m := &membership.Membership{
		EngagementID: engagementID,
		UserID:       req.UserID,
		Type:         req.Type,
		Status:       types.MembershipStatusActive,
		IsLatest:     true,
		Version:      1,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}

	err = s.MembershipRepo.WithTx(ctx, func(ctx context.Context) error {
		// A revoked membership is superseded, not resurrected: the old row
		// keeps its history and the new row carries a bumped version.
		if latest != nil {
			latest.IsLatest = false
			latest.UpdatedDate = time.Now().UTC()
			latest.UpdatedBy = types.GetUserID(ctx)
			if err := s.MembershipRepo.Update(ctx, latest); err != nil {
				return err
			}
			m.Version = latest.Version + 1
		}
		return s.MembershipRepo.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created membership",
		"membership_id", m.ID,
		"engagement_id", engagementID,
		"user_id", req.UserID,
		"version", m.Version)
	return &dto.MembershipResponse{Membership: m, User: &dto.UserResponse{User: u}}, nil
}

func (s *membershipService) GetMembershipsByEngagement(ctx context.Context, engagementID int64) (*dto.ListMembershipsResponse, error) {
	items, err := s.MembershipRepo.ListByEngagement(ctx, engagementID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MembershipResponse, 0, len(items))
	for _, m := range items {
		resp := &dto.MembershipResponse{Membership: m}
		if u, err := s.UserRepo.Get(ctx, m.UserID); err == nil {
			resp.User = &dto.UserResponse{User: u}
		}
		responses = append(responses, resp)
	}
	return &dto.ListMembershipsResponse{Items: responses}, nil
}

func (s *membershipService) UpdateMembershipStatus(ctx context.Context, engagementID, userID int64, req dto.UpdateMembershipStatusRequest) (*dto.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	latest, err := s.MembershipRepo.GetLatest(ctx, engagementID, userID)
	if err != nil {
		return nil, err
	}

	if latest.Status == req.Status {
		return &dto.MembershipResponse{Membership: latest}, nil
	}

	next := &membership.Membership{
		EngagementID: engagementID,
		UserID:       userID,
		Type:         latest.Type,
		Status:       req.Status,
		IsLatest:     true,
		Version:      latest.Version + 1,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}

	err = s.MembershipRepo.WithTx(ctx, func(ctx context.Context) error {
		latest.IsLatest = false
		latest.UpdatedDate = time.Now().UTC()
		latest.UpdatedBy = types.GetUserID(ctx)
		if err := s.MembershipRepo.Update(ctx, latest); err != nil {
			return err
		}
		return s.MembershipRepo.Create(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("updated membership status",
		"engagement_id", engagementID,
		"user_id", userID,
		"status", int(req.Status),
		"version", next.Version)
	return &dto.MembershipResponse{Membership: next}, nil
}

func (s *membershipService) GetAssignedEngagementIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.MembershipRepo.ListAssignedEngagementIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lo.Uniq(ids), nil
}

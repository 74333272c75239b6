package service

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/user"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

type UserService interface {
	// CreateOrUpdateUser provisions a staff user from token claims on first
	// login and refreshes name and email on subsequent ones.
	CreateOrUpdateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id int64) (*dto.UserResponse, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*dto.UserResponse, error)
	GetUsersPaginated(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error)
	UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) CreateOrUpdateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByExternalID(ctx, req.ExternalID)
	if err != nil {
		if !errors.Is(err, ierr.ErrNotFound) {
			return nil, err
		}

		u := &user.User{
			ExternalID: req.ExternalID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Status:     user.UserStatusActive,
			TenantID:   types.GetTenantID(ctx),
			BaseModel:  types.GetDefaultBaseModel(ctx),
		}
		if err := s.UserRepo.Create(ctx, u); err != nil {
			return nil, err
		}

		s.Logger.Infow("provisioned staff user", "user_id", u.ID, "external_id", u.ExternalID)
		return &dto.UserResponse{User: u}, nil
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.UpdatedDate = time.Now().UTC()
	existing.UpdatedBy = types.GetUserID(ctx)

	if err := s.UserRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: existing}, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u}, nil
}

func (s *userService) GetUserByExternalID(ctx context.Context, externalID string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u}, nil
}

func (s *userService) GetUsersPaginated(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error) {
	if filter == nil {
		filter = types.NewDefaultUserFilter()
	}
	if filter.Pagination == nil {
		filter.Pagination = types.NewDefaultPaginationOptions()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.UserRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := types.NewListResponse(
		lo.Map(items, func(u *user.User, _ int) *dto.UserResponse {
			return &dto.UserResponse{User: u}
		}),
		total,
		filter.Pagination,
	)
	return &response, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Status != nil {
		u.Status = *req.Status
	}
	u.UpdatedDate = time.Now().UTC()
	u.UpdatedBy = types.GetUserID(ctx)

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u}, nil
}

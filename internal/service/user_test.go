package service

import (
	"testing"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/user"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/testutil"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewUserService(ServiceParams{
		Logger:   s.GetLogger(),
		Config:   s.GetConfig(),
		UserRepo: s.GetStores().UserRepo,
	})
}

func (s *UserServiceSuite) TestFirstLoginProvisionsUser() {
	resp, err := s.service.CreateOrUpdateUser(s.GetContext(), dto.CreateUserRequest{
		ExternalID: "idp|alice",
		FirstName:  "Alice",
		LastName:   "Nguyen",
		Email:      "alice@example.org",
	})
	s.NoError(err)
	s.NotZero(resp.ID)
	s.Equal(user.UserStatusActive, resp.Status)
}

func (s *UserServiceSuite) TestRepeatLoginRefreshesProfile() {
	first, err := s.service.CreateOrUpdateUser(s.GetContext(), dto.CreateUserRequest{
		ExternalID: "idp|alice",
		FirstName:  "Alice",
		LastName:   "Nguyen",
		Email:      "alice@example.org",
	})
	s.Require().NoError(err)

	second, err := s.service.CreateOrUpdateUser(s.GetContext(), dto.CreateUserRequest{
		ExternalID: "idp|alice",
		FirstName:  "Alice",
		LastName:   "Tran",
		Email:      "alice.tran@example.org",
	})
	s.NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal("Tran", second.LastName)
	s.Equal("alice.tran@example.org", second.Email)
}

func (s *UserServiceSuite) TestCreateRequiresExternalID() {
	_, err := s.service.CreateOrUpdateUser(s.GetContext(), dto.CreateUserRequest{
		Email: "no-subject@example.org",
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *UserServiceSuite) TestListHidesInactiveByDefault() {
	active, err := s.service.CreateOrUpdateUser(s.GetContext(), dto.CreateUserRequest{
		ExternalID: "idp|alice", FirstName: "Alice", LastName: "Nguyen", Email: "alice@example.org",
	})
	s.Require().NoError(err)
	inactive, err := s.service.CreateOrUpdateUser(s.GetContext(), dto.CreateUserRequest{
		ExternalID: "idp|bob", FirstName: "Bob", LastName: "Singh", Email: "bob@example.org",
	})
	s.Require().NoError(err)

	_, err = s.service.UpdateUser(s.GetContext(), inactive.ID, dto.UpdateUserRequest{
		Status: lo.ToPtr(user.UserStatusInactive),
	})
	s.Require().NoError(err)

	list, err := s.service.GetUsersPaginated(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(1, list.Pagination.Total)
	s.Equal(active.ID, list.Items[0].ID)

	all, err := s.service.GetUsersPaginated(s.GetContext(), &types.UserFilter{
		Pagination:      types.NewDefaultPaginationOptions(),
		IncludeInactive: true,
	})
	s.NoError(err)
	s.Equal(2, all.Pagination.Total)
}

func (s *UserServiceSuite) TestSearchTextMatchesNames() {
	_, err := s.service.CreateOrUpdateUser(s.GetContext(), dto.CreateUserRequest{
		ExternalID: "idp|alice", FirstName: "Alice", LastName: "Nguyen", Email: "alice@example.org",
	})
	s.Require().NoError(err)
	bob, err := s.service.CreateOrUpdateUser(s.GetContext(), dto.CreateUserRequest{
		ExternalID: "idp|bob", FirstName: "Bob", LastName: "Singh", Email: "bob@example.org",
	})
	s.Require().NoError(err)

	list, err := s.service.GetUsersPaginated(s.GetContext(), &types.UserFilter{
		Pagination: types.NewDefaultPaginationOptions(),
		SearchText: "sin",
	})
	s.NoError(err)
	s.Equal(1, list.Pagination.Total)
	s.Equal(bob.ID, list.Items[0].ID)
}

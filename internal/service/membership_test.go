package service

import (
	"testing"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/user"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/testutil"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"
)

type MembershipServiceSuite struct {
	testutil.BaseServiceTestSuite
	service      MembershipService
	engagementID int64
	userID       int64
}

func TestMembershipService(t *testing.T) {
	suite.Run(t, new(MembershipServiceSuite))
}

func (s *MembershipServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		EngagementRepo: s.GetStores().EngagementRepo,
		UserRepo:       s.GetStores().UserRepo,
		MembershipRepo: s.GetStores().MembershipRepo,
	}
	s.service = NewMembershipService(params)

	now := time.Now()
	resp, err := NewEngagementService(params).CreateEngagement(s.GetContext(), dto.CreateEngagementRequest{
		Name:      "Team Engagement",
		StartDate: now,
		EndDate:   now.Add(14 * 24 * time.Hour),
	})
	s.Require().NoError(err)
	s.engagementID = resp.ID

	u := &user.User{
		ExternalID: "idp|abc",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Status:     user.UserStatusActive,
		TenantID:   types.DefaultTenantID,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	s.userID = u.ID
}

func (s *MembershipServiceSuite) TestCreateMembership() {
	resp, err := s.service.CreateMembership(s.GetContext(), s.engagementID, dto.CreateMembershipRequest{
		UserID: s.userID,
		Type:   types.MembershipTypeTeamMember,
	})
	s.NoError(err)
	s.Equal(1, resp.Version)
	s.True(resp.IsLatest)
	s.Equal(types.MembershipStatusActive, resp.Status)
	s.NotNil(resp.User)
}

func (s *MembershipServiceSuite) TestDuplicateActiveMembershipRejected() {
	_, err := s.service.CreateMembership(s.GetContext(), s.engagementID, dto.CreateMembershipRequest{
		UserID: s.userID,
		Type:   types.MembershipTypeTeamMember,
	})
	s.NoError(err)

	_, err = s.service.CreateMembership(s.GetContext(), s.engagementID, dto.CreateMembershipRequest{
		UserID: s.userID,
		Type:   types.MembershipTypeReviewer,
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrAlreadyExists))
}

func (s *MembershipServiceSuite) TestRevokeAndReinstateBumpsVersion() {
	_, err := s.service.CreateMembership(s.GetContext(), s.engagementID, dto.CreateMembershipRequest{
		UserID: s.userID,
		Type:   types.MembershipTypeTeamMember,
	})
	s.NoError(err)

	revoked, err := s.service.UpdateMembershipStatus(s.GetContext(), s.engagementID, s.userID,
		dto.UpdateMembershipStatusRequest{Status: types.MembershipStatusRevoked})
	s.NoError(err)
	s.Equal(2, revoked.Version)
	s.Equal(types.MembershipStatusRevoked, revoked.Status)

	// Re-adding after revocation supersedes rather than resurrects.
	readded, err := s.service.CreateMembership(s.GetContext(), s.engagementID, dto.CreateMembershipRequest{
		UserID: s.userID,
		Type:   types.MembershipTypeTeamMember,
	})
	s.NoError(err)
	s.Equal(3, readded.Version)
	s.Equal(types.MembershipStatusActive, readded.Status)

	// Only the latest row shows in the listing.
	list, err := s.service.GetMembershipsByEngagement(s.GetContext(), s.engagementID)
	s.NoError(err)
	s.Len(list.Items, 1)
	s.Equal(3, list.Items[0].Version)
}

func (s *MembershipServiceSuite) TestAssignedEngagementIDsTrackActiveOnly() {
	_, err := s.service.CreateMembership(s.GetContext(), s.engagementID, dto.CreateMembershipRequest{
		UserID: s.userID,
		Type:   types.MembershipTypeTeamMember,
	})
	s.NoError(err)

	ids, err := s.service.GetAssignedEngagementIDs(s.GetContext(), s.userID)
	s.NoError(err)
	s.Equal([]int64{s.engagementID}, ids)

	_, err = s.service.UpdateMembershipStatus(s.GetContext(), s.engagementID, s.userID,
		dto.UpdateMembershipStatusRequest{Status: types.MembershipStatusRevoked})
	s.NoError(err)

	ids, err = s.service.GetAssignedEngagementIDs(s.GetContext(), s.userID)
	s.NoError(err)
	s.Empty(ids)
}

func (s *MembershipServiceSuite) TestMembershipForUnknownUserRejected() {
	_, err := s.service.CreateMembership(s.GetContext(), s.engagementID, dto.CreateMembershipRequest{
		UserID: 424242,
		Type:   types.MembershipTypeTeamMember,
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrNotFound))
}

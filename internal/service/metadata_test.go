package service

import (
	"testing"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/testutil"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type MetadataServiceSuite struct {
	testutil.BaseServiceTestSuite
	service      MetadataService
	engagementID int64
}

func TestMetadataService(t *testing.T) {
	suite.Run(t, new(MetadataServiceSuite))
}

func (s *MetadataServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		EngagementRepo: s.GetStores().EngagementRepo,
		MetadataRepo:   s.GetStores().MetadataRepo,
		TaxonRepo:      s.GetStores().TaxonRepo,
	}
	s.service = NewMetadataService(params)

	now := time.Now()
	resp, err := NewEngagementService(params).CreateEngagement(s.GetContext(), dto.CreateEngagementRequest{
		Name:      "Harbour Precinct Renewal",
		StartDate: now,
		EndDate:   now.Add(30 * 24 * time.Hour),
	})
	s.Require().NoError(err)
	s.engagementID = resp.ID
}

func (s *MetadataServiceSuite) createTaxon(name string, onePer bool) int64 {
	resp, err := s.service.CreateTaxon(s.GetContext(), dto.CreateTaxonRequest{
		Name:             name,
		OnePerEngagement: onePer,
	})
	s.Require().NoError(err)
	return resp.ID
}

func (s *MetadataServiceSuite) TestCreateTaxonAppendsPosition() {
	first, err := s.service.CreateTaxon(s.GetContext(), dto.CreateTaxonRequest{Name: "Department"})
	s.NoError(err)
	s.Equal(1, first.Position)
	s.Equal("text", first.DataType)

	second, err := s.service.CreateTaxon(s.GetContext(), dto.CreateTaxonRequest{Name: "Suburb"})
	s.NoError(err)
	s.Equal(2, second.Position)
}

func (s *MetadataServiceSuite) TestCreateTaxonRequiresName() {
	_, err := s.service.CreateTaxon(s.GetContext(), dto.CreateTaxonRequest{})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrValidation))
}

func (s *MetadataServiceSuite) TestCreateMetadataExpandsTaxon() {
	taxonID := s.createTaxon("Department", false)

	resp, err := s.service.CreateMetadata(s.GetContext(), s.engagementID, dto.CreateMetadataRequest{
		TaxonID: taxonID,
		Value:   "Parks and Recreation",
	})
	s.NoError(err)
	s.Equal(s.engagementID, resp.EngagementID)
	s.Require().NotNil(resp.Taxon)
	s.Equal("Department", resp.Taxon.Name)
}

func (s *MetadataServiceSuite) TestCreateMetadataRequiresExistingTaxon() {
	_, err := s.service.CreateMetadata(s.GetContext(), s.engagementID, dto.CreateMetadataRequest{
		TaxonID: 999,
		Value:   "orphan",
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrNotFound))
}

func (s *MetadataServiceSuite) TestOnePerEngagementEnforced() {
	taxonID := s.createTaxon("Ward", true)

	_, err := s.service.CreateMetadata(s.GetContext(), s.engagementID, dto.CreateMetadataRequest{
		TaxonID: taxonID,
		Value:   "North",
	})
	s.Require().NoError(err)

	_, err = s.service.CreateMetadata(s.GetContext(), s.engagementID, dto.CreateMetadataRequest{
		TaxonID: taxonID,
		Value:   "South",
	})
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrAlreadyExists))
}

func (s *MetadataServiceSuite) TestListMetadataByEngagement() {
	deptID := s.createTaxon("Department", false)
	wardID := s.createTaxon("Ward", true)

	_, err := s.service.CreateMetadata(s.GetContext(), s.engagementID, dto.CreateMetadataRequest{
		TaxonID: deptID,
		Value:   "Transport",
	})
	s.Require().NoError(err)
	_, err = s.service.CreateMetadata(s.GetContext(), s.engagementID, dto.CreateMetadataRequest{
		TaxonID: wardID,
		Value:   "Central",
	})
	s.Require().NoError(err)

	list, err := s.service.GetMetadataByEngagement(s.GetContext(), s.engagementID)
	s.NoError(err)
	s.Len(list.Items, 2)
	for _, item := range list.Items {
		s.NotNil(item.Taxon)
	}
}

func (s *MetadataServiceSuite) TestUpdateMetadataValue() {
	taxonID := s.createTaxon("Department", false)
	created, err := s.service.CreateMetadata(s.GetContext(), s.engagementID, dto.CreateMetadataRequest{
		TaxonID: taxonID,
		Value:   "Transport",
	})
	s.Require().NoError(err)

	updated, err := s.service.UpdateMetadata(s.GetContext(), created.ID, dto.UpdateMetadataRequest{
		Value: lo.ToPtr("Major Projects"),
	})
	s.NoError(err)
	s.Equal("Major Projects", updated.Value)
	s.Equal(taxonID, updated.TaxonID)
}

func (s *MetadataServiceSuite) TestUpdateTaxonReorders() {
	deptID := s.createTaxon("Department", false)
	s.createTaxon("Ward", false)

	_, err := s.service.UpdateTaxon(s.GetContext(), deptID, dto.UpdateTaxonRequest{
		Position: lo.ToPtr(5),
	})
	s.NoError(err)

	taxa, err := s.service.GetTaxa(s.GetContext())
	s.NoError(err)
	s.Require().Len(taxa.Items, 2)
	s.Equal("Ward", taxa.Items[0].Name)
	s.Equal("Department", taxa.Items[1].Name)
}

func (s *MetadataServiceSuite) TestDeleteTaxon() {
	taxonID := s.createTaxon("Temporary", false)

	s.NoError(s.service.DeleteTaxon(s.GetContext(), taxonID))

	err := s.service.DeleteTaxon(s.GetContext(), taxonID)
	s.Error(err)
	s.True(errors.Is(err, ierr.ErrNotFound))
}

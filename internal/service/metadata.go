package service

import (
	"context"
	"time"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/domain/metadata"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/samber/lo"
)

type MetadataService interface {
	CreateMetadata(ctx context.Context, engagementID int64, req dto.CreateMetadataRequest) (*dto.MetadataResponse, error)
	GetMetadataByEngagement(ctx context.Context, engagementID int64) (*dto.ListMetadataResponse, error)
	UpdateMetadata(ctx context.Context, id int64, req dto.UpdateMetadataRequest) (*dto.MetadataResponse, error)
	DeleteMetadata(ctx context.Context, id int64) error

	CreateTaxon(ctx context.Context, req dto.CreateTaxonRequest) (*dto.TaxonResponse, error)
	GetTaxa(ctx context.Context) (*dto.ListTaxaResponse, error)
	UpdateTaxon(ctx context.Context, id int64, req dto.UpdateTaxonRequest) (*dto.TaxonResponse, error)
	DeleteTaxon(ctx context.Context, id int64) error
}

type metadataService struct {
	ServiceParams
}

func NewMetadataService(params ServiceParams) MetadataService {
	return &metadataService{ServiceParams: params}
}

func (s *metadataService) CreateMetadata(ctx context.Context, engagementID int64, req dto.CreateMetadataRequest) (*dto.MetadataResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.EngagementRepo.Get(ctx, engagementID); err != nil {
		return nil, err
	}

	taxon, err := s.TaxonRepo.Get(ctx, req.TaxonID)
	if err != nil {
		return nil, err
	}

	if taxon.OnePerEngagement {
		existing, err := s.MetadataRepo.ListByEngagement(ctx, engagementID)
		if err != nil {
			return nil, err
		}
		for _, m := range existing {
			if m.TaxonID == taxon.ID {
				return nil, ierr.NewError("taxon value already set").
					WithHint("This attribute allows only one value per engagement").
					WithReportableDetails(map[string]any{"taxon_id": taxon.ID}).
					Mark(ierr.ErrAlreadyExists)
			}
		}
	}

	m := req.ToMetadata(ctx, engagementID)
	if err := s.MetadataRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	return &dto.MetadataResponse{
		EngagementMetadata: m,
		Taxon:              &dto.TaxonResponse{Taxon: taxon},
	}, nil
}

func (s *metadataService) GetMetadataByEngagement(ctx context.Context, engagementID int64) (*dto.ListMetadataResponse, error) {
	items, err := s.MetadataRepo.ListByEngagement(ctx, engagementID)
	if err != nil {
		return nil, err
	}

	taxa, err := s.TaxonRepo.ListByTenant(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}
	taxaByID := lo.KeyBy(taxa, func(t *metadata.Taxon) int64 { return t.ID })

	responses := lo.Map(items, func(m *metadata.EngagementMetadata, _ int) *dto.MetadataResponse {
		resp := &dto.MetadataResponse{EngagementMetadata: m}
		if t, ok := taxaByID[m.TaxonID]; ok {
			resp.Taxon = &dto.TaxonResponse{Taxon: t}
		}
		return resp
	})
	return &dto.ListMetadataResponse{Items: responses}, nil
}

func (s *metadataService) UpdateMetadata(ctx context.Context, id int64, req dto.UpdateMetadataRequest) (*dto.MetadataResponse, error) {
	m, err := s.MetadataRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Value != nil {
		m.Value = *req.Value
	}
	if req.ProjectID != nil {
		m.ProjectID = *req.ProjectID
	}
	if req.ProjectMetadata != nil {
		m.ProjectMetadata = *req.ProjectMetadata
	}
	m.UpdatedDate = time.Now().UTC()
	m.UpdatedBy = types.GetUserID(ctx)

	if err := s.MetadataRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return &dto.MetadataResponse{EngagementMetadata: m}, nil
}

func (s *metadataService) DeleteMetadata(ctx context.Context, id int64) error {
	return s.MetadataRepo.Delete(ctx, id)
}

func (s *metadataService) CreateTaxon(ctx context.Context, req dto.CreateTaxonRequest) (*dto.TaxonResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.TaxonRepo.ListByTenant(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	// New taxa append to the end of the tenant's ordering.
	t := req.ToTaxon(ctx, len(existing)+1)
	if err := s.TaxonRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.Logger.Infow("created metadata taxon", "taxon_id", t.ID, "name", t.Name)
	return &dto.TaxonResponse{Taxon: t}, nil
}

func (s *metadataService) GetTaxa(ctx context.Context) (*dto.ListTaxaResponse, error) {
	taxa, err := s.TaxonRepo.ListByTenant(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}
	return &dto.ListTaxaResponse{
		Items: lo.Map(taxa, func(t *metadata.Taxon, _ int) *dto.TaxonResponse {
			return &dto.TaxonResponse{Taxon: t}
		}),
	}, nil
}

func (s *metadataService) UpdateTaxon(ctx context.Context, id int64, req dto.UpdateTaxonRequest) (*dto.TaxonResponse, error) {
	t, err := s.TaxonRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DataType != nil {
		t.DataType = *req.DataType
	}
	if req.Freeform != nil {
		t.Freeform = *req.Freeform
	}
	if req.OnePerEngagement != nil {
		t.OnePerEngagement = *req.OnePerEngagement
	}
	if req.Position != nil {
		t.Position = *req.Position
	}
	t.UpdatedDate = time.Now().UTC()
	t.UpdatedBy = types.GetUserID(ctx)

	if err := s.TaxonRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return &dto.TaxonResponse{Taxon: t}, nil
}

func (s *metadataService) DeleteTaxon(ctx context.Context, id int64) error {
	return s.TaxonRepo.Delete(ctx, id)
}

package service

import (
	"context"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/notification"
	"github.com/gymmawy/gymmawy/internal/types"
)

// LeadService captures public enquiries and exposes the admin pipeline.
type LeadService interface {
	CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error)
	GetLead(ctx context.Context, id string) (*dto.LeadResponse, error)
	ListLeads(ctx context.Context, filter *types.LeadFilter) (*dto.ListLeadsResponse, error)
	UpdateLeadStatus(ctx context.Context, id string, req dto.UpdateLeadStatusRequest) (*dto.LeadResponse, error)
	DeleteLead(ctx context.Context, id string) error
	GetLeadStats(ctx context.Context) (*dto.LeadStatsResponse, error)
}

type leadService struct {
	ServiceParams
}

func NewLeadService(params ServiceParams) LeadService {
	return &leadService{ServiceParams: params}
}

func (s *leadService) CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l := req.ToLead()
	if err := s.LeadRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, notification.EventLeadCreated, map[string]interface{}{
		"lead_id":       l.ID,
		"mobile_number": l.MobileNumber,
	})

	return dto.NewLeadResponse(l), nil
}

func (s *leadService) GetLead(ctx context.Context, id string) (*dto.LeadResponse, error) {
	l, err := s.LeadRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewLeadResponse(l), nil
}

func (s *leadService) ListLeads(ctx context.Context, filter *types.LeadFilter) (*dto.ListLeadsResponse, error) {
	if filter == nil {
		filter = types.NewLeadFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	leads, err := s.LeadRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.LeadRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.LeadResponse, len(leads))
	for i, l := range leads {
		responses[i] = dto.NewLeadResponse(l)
	}

	listResponse := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &listResponse, nil
}

func (s *leadService) UpdateLeadStatus(ctx context.Context, id string, req dto.UpdateLeadStatusRequest) (*dto.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.LeadRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	l.LeadStatus = req.LeadStatus
	if err := s.LeadRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return dto.NewLeadResponse(l), nil
}

func (s *leadService) DeleteLead(ctx context.Context, id string) error {
	return s.LeadRepo.Delete(ctx, id)
}

func (s *leadService) GetLeadStats(ctx context.Context) (*dto.LeadStatsResponse, error) {
	rows, err := s.LeadRepo.CountGroupedByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, row := range rows {
		total += row.Count
	}

	return &dto.LeadStatsResponse{ByStatus: rows, Total: total}, nil
}

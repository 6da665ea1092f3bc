package gorm

import (
	"context"
	"time"

	domainLead "github.com/gymmawy/gymmawy/internal/domain/lead"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
	"github.com/gymmawy/gymmawy/internal/types"
)

type leadRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewLeadRepository(client postgres.IClient, log *logger.Logger) domainLead.Repository {
	return &leadRepository{client: client, log: log}
}

func (r *leadRepository) Create(ctx context.Context, lead *domainLead.Lead) error {
	r.log.Debugw("creating lead", "lead_id", lead.ID, "mobile_number", lead.MobileNumber)

	if err := r.client.DB(ctx).Create(lead).Error; err != nil {
		return dbError(err, "create", "lead")
	}
	return nil
}

func (r *leadRepository) Get(ctx context.Context, id string) (*domainLead.Lead, error) {
	var lead domainLead.Lead
	if err := r.client.DB(ctx).First(&lead, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "lead", id)
	}
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, filter *types.LeadFilter) ([]*domainLead.Lead, error) {
	if filter == nil {
		filter = types.NewLeadFilter()
	}

	query := r.client.DB(ctx).Model(&domainLead.Lead{})
	if filter.LeadStatus != "" {
		query = query.Where("lead_status = ?", filter.LeadStatus)
	}

	var leads []*domainLead.Lead
	if err := applyQueryFilter(query, filter.QueryFilter).Find(&leads).Error; err != nil {
		return nil, dbError(err, "list", "leads")
	}
	return leads, nil
}

func (r *leadRepository) Count(ctx context.Context, filter *types.LeadFilter) (int, error) {
	query := r.client.DB(ctx).Model(&domainLead.Lead{})
	if filter != nil && filter.LeadStatus != "" {
		query = query.Where("lead_status = ?", filter.LeadStatus)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "leads")
	}
	return int(count), nil
}

func (r *leadRepository) Update(ctx context.Context, lead *domainLead.Lead) error {
	lead.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Save(lead).Error; err != nil {
		return dbError(err, "update", "lead")
	}
	return nil
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DB(ctx).Delete(&domainLead.Lead{}, "id = ?", id).Error; err != nil {
		return dbError(err, "delete", "lead")
	}
	return nil
}

func (r *leadRepository) CountGroupedByStatus(ctx context.Context) ([]domainLead.StatusCount, error) {
	var rows []domainLead.StatusCount
	err := r.client.DB(ctx).
		Model(&domainLead.Lead{}).
		Select("lead_status, COUNT(*) as count").
		Group("lead_status").
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(err, "aggregate", "leads")
	}
	return rows, nil
}

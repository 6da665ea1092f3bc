package dto

import (
	"github.com/gymmawy/gymmawy/internal/domain/lead"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

type CreateLeadRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber string `json:"mobile_number" validate:"required"`
	Message      string `json:"message,omitempty"`
}

func (r *CreateLeadRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateLeadRequest) ToLead() *lead.Lead {
	return &lead.Lead{
		ID:           types.GenerateUUIDWithPrefix(types.IDPrefixLead),
		Name:         r.Name,
		Email:        r.Email,
		MobileNumber: r.MobileNumber,
		Message:      r.Message,
		LeadStatus:   types.LeadStatusNew,
		BaseModel:    types.GetDefaultBaseModel(),
	}
}

type UpdateLeadStatusRequest struct {
	LeadStatus types.LeadStatus `json:"lead_status" validate:"required"`
}

func (r *UpdateLeadStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.LeadStatus.Validate()
}

type LeadResponse struct {
	*lead.Lead
}

func NewLeadResponse(l *lead.Lead) *LeadResponse {
	return &LeadResponse{Lead: l}
}

type ListLeadsResponse = types.ListResponse[*LeadResponse]

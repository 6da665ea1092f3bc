package types

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// LeadStatus tracks a sales lead through follow-up.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusClosed    LeadStatus = "CLOSED"
)

func (s LeadStatus) String() string {
	return string(s)
}

func (s LeadStatus) Validate() error {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusClosed:
		return nil
	default:
		return ierr.NewErrorf("invalid lead status: %s", s).
			WithHint("Unknown lead status").
			Mark(ierr.ErrValidation)
	}
}

// LeadFilter filters lead list queries.
type LeadFilter struct {
	*QueryFilter

	LeadStatus LeadStatus `json:"lead_status,omitempty" form:"lead_status"`
}

func NewLeadFilter() *LeadFilter {
	return &LeadFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *LeadFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.LeadStatus != "" {
		return f.LeadStatus.Validate()
	}
	return nil
}

// UserRole separates members from dashboard admins.
type UserRole string

const (
	UserRoleMember UserRole = "MEMBER"
	UserRoleAdmin  UserRole = "ADMIN"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) Validate() error {
	switch r {
	case UserRoleMember, UserRoleAdmin:
		return nil
	default:
		return ierr.NewErrorf("invalid user role: %s", r).
			Mark(ierr.ErrValidation)
	}
}

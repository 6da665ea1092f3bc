package lead

import (
	"github.com/gymmawy/gymmawy/internal/types"
)

// Lead is an inbound sales enquiry captured from the public site.
type Lead struct {
	ID           string           `json:"id" gorm:"column:id;primaryKey"`
	Name         string           `json:"name" gorm:"column:name"`
	Email        string           `json:"email,omitempty" gorm:"column:email"`
	MobileNumber string           `json:"mobile_number" gorm:"column:mobile_number"`
	Message      string           `json:"message,omitempty" gorm:"column:message"`
	LeadStatus   types.LeadStatus `json:"lead_status" gorm:"column:lead_status;index"`

	types.BaseModel
}

func (Lead) TableName() string {
	return "leads"
}

// StatusCount is an aggregation row: leads per status.
type StatusCount struct {
	LeadStatus types.LeadStatus `json:"lead_status"`
	Count      int64            `json:"count"`
}

package user

import (
	"github.com/gymmawy/gymmawy/internal/types"
)

// User is a gym member or dashboard admin. LoyaltyPoints is the denormalized
// balance kept in sync with the loyalty ledger by the loyalty repository.
type User struct {
	ID            string         `json:"id" gorm:"column:id;primaryKey"`
	Email         string         `json:"email" gorm:"column:email;uniqueIndex"`
	PasswordHash  string         `json:"-" gorm:"column:password_hash"`
	FirstName     string         `json:"first_name" gorm:"column:first_name"`
	LastName      string         `json:"last_name" gorm:"column:last_name"`
	MobileNumber  string         `json:"mobile_number" gorm:"column:mobile_number"`
	Country       string         `json:"country" gorm:"column:country"`
	City          string         `json:"city" gorm:"column:city"`
	Role          types.UserRole `json:"role" gorm:"column:role;default:MEMBER"`
	LoyaltyPoints int            `json:"loyalty_points" gorm:"column:loyalty_points;default:0"`

	types.BaseModel
}

func (User) TableName() string {
	return "users"
}

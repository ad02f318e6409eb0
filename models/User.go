package models

import (
	"gorm.io/gorm"
)

const (
	RoleSeeker = "seeker"
	RoleHost   = "host"
)

type User struct {
	gorm.Model
	Email    string    `json:"email" gorm:"uniqueIndex"`
	Password string    `json:"-"`
	Name     string    `json:"name"`
	Role     string    `json:"role" gorm:"type:varchar(20);index"` // seeker, host
	Bio      string    `json:"bio" gorm:"type:text"`
	Phone    string    `json:"phone" gorm:"size:32"`
	Listings []Listing `json:"listings,omitempty" gorm:"foreignKey:HostID;references:ID"`
}

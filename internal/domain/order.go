package domain

import "time"

// CustomOrder is a bespoke-jewelry request submitted from the storefront.
// Created once, never updated, deleted only by admin action.
type CustomOrder struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `json:"name"`
	Email       string    `gorm:"index" json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ProjectType string    `gorm:"column:project_type;size:64" json:"projectType"`
	Budget      string    `gorm:"size:64" json:"budget,omitempty"`
	Description string    `gorm:"type:text" json:"description"`
	Inspiration string    `gorm:"type:text" json:"inspiration,omitempty"`
	Deadline    string    `gorm:"size:64" json:"deadline,omitempty"`
	Images      string    `gorm:"type:text" json:"-"` // JSON list of attachment file references
	ImageList   []string  `gorm:"-" json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CustomOrder) TableName() string {
	return "custom_orders"
}

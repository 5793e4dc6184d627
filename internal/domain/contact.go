package domain

import "time"

// ContactRequest is a storefront contact form submission with an optional
// attached image. Field names follow the storefront form (French labels).
type ContactRequest struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Prenom      string    `json:"prenom"`
	Nom         string    `json:"nom"`
	Telephone   string    `gorm:"size:64" json:"telephone"`
	Description string    `gorm:"type:text" json:"description"`
	ImagePath   string    `gorm:"column:image_path;size:512" json:"image_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}

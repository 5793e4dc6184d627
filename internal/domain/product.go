package domain

import "time"

// Product is a catalog item. Images holds the raw storage form of the
// images column (one of several historical encodings); ImageList is the
// canonical decoded representation and the only one other packages see.
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Price       string    `gorm:"size:64" json:"price"` // stored as provided, not validated as currency
	Category    string    `gorm:"size:64" json:"category,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	Images      string    `gorm:"type:text" json:"-"`
	ImageList   []string  `gorm:"-" json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

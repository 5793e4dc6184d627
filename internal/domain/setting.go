package domain

import "time"

// Setting is a runtime-tunable configuration value grouped by category,
// e.g. ("notify", "enabled"). Values are read through the application
// settings cache, not directly.
type Setting struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Category  string    `gorm:"uniqueIndex:idx_setting_ck;size:64" json:"category"`
	Name      string    `gorm:"uniqueIndex:idx_setting_ck;size:128" json:"name"`
	Value     string    `gorm:"size:512" json:"value"`
	Remark    string    `gorm:"size:255" json:"remark,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "sys_config"
}

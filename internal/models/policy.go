package models

import "gorm.io/datatypes"

type Policy struct {
	BaseModel

	OrgID      string         `gorm:"type:varchar(36);not null;index"`
	Type       PolicyType     `gorm:"type:varchar(32);not null"`
	ConfigJSON datatypes.JSON `gorm:"type:jsonb;not null"`
	IsEnabled  bool           `gorm:"not null;default:true"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID"`
}

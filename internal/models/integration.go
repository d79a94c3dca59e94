package models

import "gorm.io/datatypes"

type Integration struct {
	BaseModel

	OrgID      string              `gorm:"type:varchar(36);not null;index"`
	Provider   IntegrationProvider `gorm:"type:varchar(16);not null"`
	ConfigJSON datatypes.JSON      `gorm:"type:jsonb;not null"`
	IsEnabled  bool                `gorm:"not null;default:true"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID"`
}

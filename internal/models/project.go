package models

type Project struct {
	BaseModel

	OrgID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_org_key"`
	Name  string `gorm:"not null"`
	Key   string `gorm:"not null;uniqueIndex:idx_org_key"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID"`
	Services     []Service    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

package models

type Organization struct {
	BaseModel

	Name        string `gorm:"not null"`
	OwnerUserID string `gorm:"type:varchar(36);not null;index"`

	// Relationships
	Owner        User          `gorm:"foreignKey:OwnerUserID"`
	Members      []Membership  `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Projects     []Project     `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Policies     []Policy      `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Integrations []Integration `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

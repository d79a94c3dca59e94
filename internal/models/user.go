package models

type User struct {
	BaseModel

	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`

	// Relationships
	OwnedOrganizations []Organization `gorm:"foreignKey:OwnerUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Memberships        []Membership   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

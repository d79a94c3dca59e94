package models

type Service struct {
	BaseModel

	ProjectID   string          `gorm:"type:varchar(36);not null;index"`
	Name        string          `gorm:"not null"`
	Type        ServiceType     `gorm:"type:varchar(16);not null"`
	Environment EnvironmentType `gorm:"type:varchar(16);not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID"`
}

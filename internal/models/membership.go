package models

// Membership binds one user to one organization with a role. A user holds at
// most one role per organization; nothing prevents several memberships in the
// same org from carrying the owner role.
type Membership struct {
	BaseModel

	OrgID  string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_org_user"`
	UserID string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_org_user"`
	Role   OrgRole `gorm:"type:varchar(16);not null;default:member"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID"`
	User         User         `gorm:"foreignKey:UserID"`
}

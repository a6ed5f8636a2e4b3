package model

// Role defines the access level of a user.
type Role string

const (
	// RolePetugas is a field officer who submits work reports.
	RolePetugas Role = "PETUGAS"
	// RoleAdmin reviews reports and manages officer accounts.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RolePetugas, RoleAdmin:
		return true
	}
	return false
}

// User represents a profile record in the system.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;size:64"`
	PJLPNumber   string `json:"pjlp_number" gorm:"column:pjlp_number;uniqueIndex;size:64;not null"`
	Name         string `json:"name" gorm:"size:255;not null"`
	Role         Role   `json:"role" gorm:"size:32;not null;index"`
	IsActive     bool   `json:"is_active" gorm:"default:true;index"`
	Phone        string `json:"phone,omitempty" gorm:"size:32"`
	AvatarURL    string `json:"avatar_url,omitempty" gorm:"size:512"`
	PasswordHash string `json:"-" gorm:"size:255"` // Never expose in JSON
}

// TableName maps User onto the external profiles table.
func (User) TableName() string { return "profiles" }

// UserPatch carries a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	PJLPNumber   *string `json:"pjlp_number,omitempty"`
	Name         *string `json:"name,omitempty"`
	Role         *Role   `json:"role,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	PasswordHash *string `json:"-"`
}

// Apply copies the non-nil patch fields onto u.
func (p UserPatch) Apply(u *User) {
	if p.PJLPNumber != nil {
		u.PJLPNumber = *p.PJLPNumber
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}

package models

import (
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRole separates ordinary members from organizers.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is a registered member of the community.
type User struct {
	BaseModel
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Email        string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`

	Avatar   string         `gorm:"type:varchar(500)" json:"avatar,omitempty"`
	Bio      string         `gorm:"type:text" json:"bio,omitempty"`
	Skills   pq.StringArray `gorm:"type:text[]" json:"skills,omitempty"`
	GitHub   string         `gorm:"type:varchar(300)" json:"github,omitempty"`
	LinkedIn string         `gorm:"type:varchar(300)" json:"linkedin,omitempty"`
	Website  string         `gorm:"type:varchar(300)" json:"website,omitempty"`
}

// SetPassword hashes and stores the given plain-text password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), 12)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// BeforeCreate normalizes the email before the unique index sees it.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

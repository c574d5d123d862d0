package models

import "time"

type Role string

const (
	RoleSupervisor Role = "Supervisor"
	RoleIntern     Role = "Intern"
)

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'Intern'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	BirthDate    *time.Time `json:"birth_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	AssignedTasks []Task       `gorm:"foreignKey:AssignedToID" json:"-"`
	Attendances   []Attendance `gorm:"foreignKey:UserID" json:"-"`
}

// IsSupervisor reports whether the user holds the Supervisor role.
func (u User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// IsIntern reports whether the user holds the Intern role.
func (u User) IsIntern() bool {
	return u.Role == RoleIntern
}

package models

import "time"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "P"
	StatusAbsent  AttendanceStatus = "A"
	StatusLate    AttendanceStatus = "L"
)

type Attendance struct {
	ID           uint64           `gorm:"primarykey" json:"id"`
	UserID       uint64           `gorm:"not null;index" json:"user"`
	Status       AttendanceStatus `gorm:"type:varchar(10);not null;default:'A'" json:"status"`
	CheckInTime  time.Time        `gorm:"autoCreateTime;<-:create" json:"check_in_time"`
	CheckOutTime *time.Time       `json:"check_out_time"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

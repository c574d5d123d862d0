package dto

import (
	"time"

	"github.com/MilanBhattarai77/intern-management-api/internal/models"
)

// AttendanceDTO represents an attendance record in API responses
type AttendanceDTO struct {
	ID           uint64                  `json:"id"`
	User         uint64                  `json:"user"`
	Status       models.AttendanceStatus `json:"status"`
	CheckInTime  time.Time               `json:"check_in_time"`
	CheckOutTime *time.Time              `json:"check_out_time"`
}

// CreateAttendanceRequest is the payload for the generic (Supervisor) create.
type CreateAttendanceRequest struct {
	User         uint64                   `json:"user" binding:"required"`
	Status       *models.AttendanceStatus `json:"status" binding:"omitempty,oneof=P A L"`
	CheckOutTime *time.Time               `json:"check_out_time"`
}

// UpdateAttendanceRequest is the payload for updating a record. Nil fields are
// left untouched; check_in_time is immutable and deliberately absent.
type UpdateAttendanceRequest struct {
	User         *uint64                  `json:"user"`
	Status       *models.AttendanceStatus `json:"status" binding:"omitempty,oneof=P A L"`
	CheckOutTime *time.Time               `json:"check_out_time"`
}

// MarkAttendanceRequest is the payload for the Intern self-mark action. The
// user is always the caller; a client-supplied user field is ignored.
type MarkAttendanceRequest struct {
	Status *models.AttendanceStatus `json:"status" binding:"omitempty,oneof=P A L"`
}

// ToAttendanceDTO converts an Attendance model to AttendanceDTO
func ToAttendanceDTO(att models.Attendance) AttendanceDTO {
	return AttendanceDTO{
		ID:           att.ID,
		User:         att.UserID,
		Status:       att.Status,
		CheckInTime:  att.CheckInTime,
		CheckOutTime: att.CheckOutTime,
	}
}

// ToAttendanceDTOs converts a slice of Attendance models
func ToAttendanceDTOs(atts []models.Attendance) []AttendanceDTO {
	dtos := make([]AttendanceDTO, len(atts))
	for i, att := range atts {
		dtos[i] = ToAttendanceDTO(att)
	}
	return dtos
}

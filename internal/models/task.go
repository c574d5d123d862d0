package models

import "time"

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(250);not null" json:"title"`
	Description string     `gorm:"type:varchar(250)" json:"description"`
	CreatedAt   time.Time  `gorm:"<-:create" json:"created_at"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`

	// AssignedTo is owned by the task: deleting that user deletes the task.
	// AssignedBy is a weak reference: deleting that user clears the field.
	AssignedToID *uint64 `gorm:"index" json:"assigned_to"`
	AssignedByID *uint64 `gorm:"index" json:"assigned_by"`

	AssignedTo *User `gorm:"foreignKey:AssignedToID" json:"assigned_to_user,omitempty"`
	AssignedBy *User `gorm:"foreignKey:AssignedByID" json:"assigned_by_user,omitempty"`
}

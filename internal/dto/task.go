package dto

import (
	"time"

	"github.com/MilanBhattarai77/intern-management-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	AssignedTo  *uint64    `json:"assigned_to"`
	AssignedBy  *uint64    `json:"assigned_by"`
}

// CreateTaskRequest is the payload for creating a task. AssignedBy is ignored
// by the assign action, which stamps the requesting Supervisor instead.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=250"`
	Description string     `json:"description" binding:"omitempty,max=250"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
	AssignedTo  *uint64    `json:"assigned_to"`
	AssignedBy  *uint64    `json:"assigned_by"`
}

// UpdateTaskRequest is the payload for updating a task. Nil fields are left
// untouched; created_at is immutable and deliberately absent.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=250"`
	Description *string    `json:"description" binding:"omitempty,max=250"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
	AssignedTo  *uint64    `json:"assigned_to"`
	AssignedBy  *uint64    `json:"assigned_by"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		DueDate:     task.DueDate,
		IsCompleted: task.IsCompleted,
		AssignedTo:  task.AssignedToID,
		AssignedBy:  task.AssignedByID,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

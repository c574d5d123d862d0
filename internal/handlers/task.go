package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MilanBhattarai77/intern-management-api/internal/database"
	"github.com/MilanBhattarai77/intern-management-api/internal/dto"
	apierrors "github.com/MilanBhattarai77/intern-management-api/internal/errors"
	"github.com/MilanBhattarai77/intern-management-api/internal/middleware"
	"github.com/MilanBhattarai77/intern-management-api/internal/models"
	"github.com/MilanBhattarai77/intern-management-api/internal/policy"
)

// TaskHandler handles CRUD operations and the task-specific actions.
type TaskHandler struct{}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// ListTasks returns every task. Open to any authenticated actor.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var tasks []models.Task
	if err := database.GetDB().Find(&tasks).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var task models.Task
	if err := database.GetDB().First(&task, id).Error; err != nil {
		apierrors.NotFound(c, "Task not found.")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a task. Supervisor-only; the policy check runs before
// payload validation.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if policy.ForTask(actor, policy.OpCreate, nil) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors can create tasks.")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	if !checkUserRef(c, req.AssignedTo, "assigned_to") {
		return
	}
	if !checkUserRef(c, req.AssignedBy, "assigned_by") {
		return
	}

	task := models.Task{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedTo,
		AssignedByID: req.AssignedBy,
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(task))
}

// UpdateTask updates a task. Supervisors may change anything; the assigned
// user may update their own task, but can only move the completion flag
// forward.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var task models.Task
	if err := database.GetDB().First(&task, id).Error; err != nil {
		apierrors.NotFound(c, "Task not found.")
		return
	}

	if policy.ForTask(actor, policy.OpUpdate, &task) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors or the assigned intern can update tasks.")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	if req.IsCompleted != nil && !actor.IsSupervisor() {
		// Completion only moves false -> true for non-supervisors
		if task.IsCompleted && !*req.IsCompleted {
			apierrors.Forbidden(c, "Only supervisors can reopen tasks.")
			return
		}
	}

	if !checkUserRef(c, req.AssignedTo, "assigned_to") {
		return
	}
	if !checkUserRef(c, req.AssignedBy, "assigned_by") {
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}
	if req.AssignedTo != nil {
		task.AssignedToID = req.AssignedTo
	}
	if req.AssignedBy != nil {
		task.AssignedByID = req.AssignedBy
	}

	if err := database.GetDB().Save(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// DeleteTask deletes a task. Supervisor-only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var task models.Task
	if err := database.GetDB().First(&task, id).Error; err != nil {
		apierrors.NotFound(c, "Task not found.")
		return
	}

	if policy.ForTask(actor, policy.OpDelete, &task) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors can delete tasks.")
		return
	}

	if err := database.GetDB().Delete(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted.",
	})
}

// CompleteTask lets the assigned intern mark their task complete. A task that
// exists but belongs to someone else is reported as not found.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := taskByID(id)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	switch policy.ForCompleteTask(actor, task) {
	case policy.Forbidden:
		apierrors.Forbidden(c, "Only interns can mark tasks as complete.")
		return
	case policy.NotFound:
		apierrors.NotFound(c, "Task not found or not assigned to you.")
		return
	}

	task.IsCompleted = true
	if err := database.GetDB().Save(task).Error; err != nil {
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task marked as complete.",
	})
}

// AssignTask creates a task with the requesting Supervisor stamped as the
// assigner, ignoring any client-supplied assigned_by.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if policy.ForAssignTask(actor) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors can assign tasks.")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	if !checkUserRef(c, req.AssignedTo, "assigned_to") {
		return
	}

	task := models.Task{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedTo,
		AssignedByID: &actor.ID,
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(task))
}

// taskByID looks a task up, returning nil without error when it does not exist.
func taskByID(id uint64) (*models.Task, error) {
	var task models.Task
	err := database.GetDB().First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// checkUserRef validates an optional user reference, writing the error response
// itself. Returns false when a response has been written.
func checkUserRef(c *gin.Context, id *uint64, field string) bool {
	if id == nil {
		return true
	}
	var count int64
	if err := database.GetDB().Model(&models.User{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		apierrors.InternalError(c, "Failed to validate user reference")
		return false
	}
	if count == 0 {
		apierrors.FieldError(c, field, "Referenced user does not exist.")
		return false
	}
	return true
}

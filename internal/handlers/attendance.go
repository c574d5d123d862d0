package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MilanBhattarai77/intern-management-api/internal/database"
	"github.com/MilanBhattarai77/intern-management-api/internal/dto"
	apierrors "github.com/MilanBhattarai77/intern-management-api/internal/errors"
	"github.com/MilanBhattarai77/intern-management-api/internal/middleware"
	"github.com/MilanBhattarai77/intern-management-api/internal/models"
	"github.com/MilanBhattarai77/intern-management-api/internal/policy"
)

// AttendanceHandler handles CRUD operations and the self-mark action.
type AttendanceHandler struct{}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler() *AttendanceHandler {
	return &AttendanceHandler{}
}

// ListAttendances returns every record. Open to any authenticated actor.
func (h *AttendanceHandler) ListAttendances(c *gin.Context) {
	var atts []models.Attendance
	if err := database.GetDB().Find(&atts).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch attendance records")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceDTOs(atts))
}

// GetAttendance returns a single record by ID.
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var att models.Attendance
	if err := database.GetDB().First(&att, id).Error; err != nil {
		apierrors.NotFound(c, "Attendance record not found.")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceDTO(att))
}

// CreateAttendance creates a record for an arbitrary user. Supervisor-only;
// the policy check runs before payload validation.
func (h *AttendanceHandler) CreateAttendance(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if policy.ForAttendance(actor, policy.OpCreate, nil) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors can create attendance records.")
		return
	}

	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	if !checkUserRef(c, &req.User, "user") {
		return
	}

	att := models.Attendance{
		UserID:       req.User,
		Status:       models.StatusAbsent,
		CheckOutTime: req.CheckOutTime,
	}
	if req.Status != nil {
		att.Status = *req.Status
	}

	if err := database.GetDB().Create(&att).Error; err != nil {
		apierrors.InternalError(c, "Failed to create attendance record")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttendanceDTO(att))
}

// UpdateAttendance updates a record. Supervisors or the owning user only;
// check_in_time is immutable.
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var att models.Attendance
	if err := database.GetDB().First(&att, id).Error; err != nil {
		apierrors.NotFound(c, "Attendance record not found.")
		return
	}

	if policy.ForAttendance(actor, policy.OpUpdate, &att) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors or the user can update attendance.")
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	if req.User != nil {
		if !checkUserRef(c, req.User, "user") {
			return
		}
		att.UserID = *req.User
	}
	if req.Status != nil {
		att.Status = *req.Status
	}
	if req.CheckOutTime != nil {
		att.CheckOutTime = req.CheckOutTime
	}

	if err := database.GetDB().Save(&att).Error; err != nil {
		apierrors.InternalError(c, "Failed to update attendance record")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceDTO(att))
}

// DeleteAttendance deletes a record. Supervisor-only.
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var att models.Attendance
	if err := database.GetDB().First(&att, id).Error; err != nil {
		apierrors.NotFound(c, "Attendance record not found.")
		return
	}

	if policy.ForAttendance(actor, policy.OpDelete, &att) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors can delete attendance records.")
		return
	}

	if err := database.GetDB().Delete(&att).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete attendance record")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attendance record deleted.",
	})
}

// MarkAttendance lets an intern check themselves in. The record always belongs
// to the caller; status defaults to Present.
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if policy.ForMarkAttendance(actor) != policy.Allowed {
		apierrors.Forbidden(c, "Only interns can mark attendance.")
		return
	}

	// An empty body is fine: everything defaults
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.ValidationFailed(c, err)
		return
	}

	att := models.Attendance{
		UserID: actor.ID,
		Status: models.StatusPresent,
	}
	if req.Status != nil {
		att.Status = *req.Status
	}

	if err := database.GetDB().Create(&att).Error; err != nil {
		apierrors.InternalError(c, "Failed to create attendance record")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttendanceDTO(att))
}

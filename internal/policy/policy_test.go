package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MilanBhattarai77/intern-management-api/internal/models"
)

func supervisor() models.User {
	return models.User{ID: 1, Role: models.RoleSupervisor}
}

func intern(id uint64) models.User {
	return models.User{ID: id, Role: models.RoleIntern}
}

func TestForUser(t *testing.T) {
	tests := []struct {
		name  string
		actor models.User
		op    Operation
		want  Decision
	}{
		{"supervisor create", supervisor(), OpCreate, Allowed},
		{"supervisor update", supervisor(), OpUpdate, Allowed},
		{"supervisor delete", supervisor(), OpDelete, Allowed},
		{"intern create", intern(2), OpCreate, Forbidden},
		{"intern update", intern(2), OpUpdate, Forbidden},
		{"intern delete", intern(2), OpDelete, Forbidden},
		{"intern read", intern(2), OpRead, Allowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForUser(tt.actor, tt.op))
		})
	}
}

func TestForTask(t *testing.T) {
	assignee := uint64(2)
	task := &models.Task{ID: 10, AssignedToID: &assignee}
	unassigned := &models.Task{ID: 11}

	tests := []struct {
		name  string
		actor models.User
		op    Operation
		task  *models.Task
		want  Decision
	}{
		{"supervisor create", supervisor(), OpCreate, nil, Allowed},
		{"intern create", intern(2), OpCreate, nil, Forbidden},
		{"supervisor update", supervisor(), OpUpdate, task, Allowed},
		{"assignee update", intern(2), OpUpdate, task, Allowed},
		{"other intern update", intern(3), OpUpdate, task, Forbidden},
		{"intern update unassigned", intern(2), OpUpdate, unassigned, Forbidden},
		{"intern delete own", intern(2), OpDelete, task, Forbidden},
		{"supervisor delete", supervisor(), OpDelete, task, Allowed},
		{"intern read", intern(3), OpRead, task, Allowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForTask(tt.actor, tt.op, tt.task))
		})
	}
}

func TestForAttendance(t *testing.T) {
	att := &models.Attendance{ID: 10, UserID: 2}

	tests := []struct {
		name  string
		actor models.User
		op    Operation
		att   *models.Attendance
		want  Decision
	}{
		{"supervisor create", supervisor(), OpCreate, nil, Allowed},
		{"intern create", intern(2), OpCreate, nil, Forbidden},
		{"owner update", intern(2), OpUpdate, att, Allowed},
		{"other intern update", intern(3), OpUpdate, att, Forbidden},
		{"supervisor update", supervisor(), OpUpdate, att, Allowed},
		{"owner delete", intern(2), OpDelete, att, Forbidden},
		{"supervisor delete", supervisor(), OpDelete, att, Allowed},
		{"any read", intern(3), OpRead, att, Allowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForAttendance(tt.actor, tt.op, tt.att))
		})
	}
}

func TestForMarkAttendance(t *testing.T) {
	assert.Equal(t, Allowed, ForMarkAttendance(intern(2)))
	assert.Equal(t, Forbidden, ForMarkAttendance(supervisor()))
}

func TestForCompleteTask(t *testing.T) {
	assignee := uint64(2)
	task := &models.Task{ID: 10, AssignedToID: &assignee}

	// Non-interns are rejected outright
	assert.Equal(t, Forbidden, ForCompleteTask(supervisor(), task))

	// The assignee may complete
	assert.Equal(t, Allowed, ForCompleteTask(intern(2), task))

	// Anyone else sees NotFound, never Forbidden
	assert.Equal(t, NotFound, ForCompleteTask(intern(3), task))
	assert.Equal(t, NotFound, ForCompleteTask(intern(2), &models.Task{ID: 11}))
	assert.Equal(t, NotFound, ForCompleteTask(intern(2), nil))
}

func TestForAssignTask(t *testing.T) {
	assert.Equal(t, Allowed, ForAssignTask(supervisor()))
	assert.Equal(t, Forbidden, ForAssignTask(intern(2)))
}

// Package policy holds the authorization rules as pure functions. A decision
// depends only on the actor's role and identity and on the target's ownership
// fields; persistence and transport concerns stay out.
package policy

import "github.com/MilanBhattarai77/intern-management-api/internal/models"

// Operation identifies a CRUD operation on an entity collection.
type Operation int

const (
	OpCreate Operation = iota
	OpRead
	OpUpdate
	OpDelete
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Allowed Decision = iota
	Forbidden
	// NotFound masks the target's existence from the actor.
	NotFound
)

// ForUser decides a generic CRUD operation on user profiles.
// Reads are open to any authenticated actor; writes require a Supervisor.
func ForUser(actor models.User, op Operation) Decision {
	if op == OpRead {
		return Allowed
	}
	if actor.IsSupervisor() {
		return Allowed
	}
	return Forbidden
}

// ForTask decides a generic CRUD operation on tasks. Updates are open to the
// assigned user as well as Supervisors; create/delete are Supervisor-only.
func ForTask(actor models.User, op Operation, task *models.Task) Decision {
	switch op {
	case OpRead:
		return Allowed
	case OpUpdate:
		if actor.IsSupervisor() {
			return Allowed
		}
		if task != nil && task.AssignedToID != nil && *task.AssignedToID == actor.ID {
			return Allowed
		}
		return Forbidden
	default:
		if actor.IsSupervisor() {
			return Allowed
		}
		return Forbidden
	}
}

// ForAttendance decides a generic CRUD operation on attendance records.
// Updates are open to the record's owner as well as Supervisors.
func ForAttendance(actor models.User, op Operation, att *models.Attendance) Decision {
	switch op {
	case OpRead:
		return Allowed
	case OpUpdate:
		if actor.IsSupervisor() {
			return Allowed
		}
		if att != nil && att.UserID == actor.ID {
			return Allowed
		}
		return Forbidden
	default:
		if actor.IsSupervisor() {
			return Allowed
		}
		return Forbidden
	}
}

// ForMarkAttendance decides the self-mark attendance action (Intern-only).
func ForMarkAttendance(actor models.User) Decision {
	if actor.IsIntern() {
		return Allowed
	}
	return Forbidden
}

// ForCompleteTask decides the self-complete action. Anyone other than the
// assigned Intern gets NotFound so the endpoint never confirms that the task
// exists.
func ForCompleteTask(actor models.User, task *models.Task) Decision {
	if !actor.IsIntern() {
		return Forbidden
	}
	if task == nil || task.AssignedToID == nil || *task.AssignedToID != actor.ID {
		return NotFound
	}
	return Allowed
}

// ForAssignTask decides the assign action (Supervisor-only).
func ForAssignTask(actor models.User) Decision {
	if actor.IsSupervisor() {
		return Allowed
	}
	return Forbidden
}

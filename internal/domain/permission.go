package domain

// Action is a named operation gated by CanPerformAction.
type Action string

const (
	ActionViewUpdates     Action = "view_updates"
	ActionAddGuest        Action = "add_guest"
	ActionAddDorm         Action = "add_dorm"
	ActionUpdateStatus    Action = "update_status"
	ActionUpdateLocation  Action = "update_location"
	ActionUpdatePayment   Action = "update_payment"
	ActionAssignDorm      Action = "assign_dorm"
	ActionAssignVolunteer Action = "assign_volunteer"
	ActionEditGuest       Action = "edit_guest"
	ActionUpdateDorm      Action = "update_dorm"
)

// Actions lists every Action.
var Actions = []Action{
	ActionViewUpdates, ActionAddGuest, ActionAddDorm,
	ActionUpdateStatus, ActionUpdateLocation, ActionUpdatePayment,
	ActionAssignDorm, ActionAssignVolunteer, ActionEditGuest, ActionUpdateDorm,
}

// CanPerformAction reports whether actor may perform action on entity.
//
//   - nil actor: never.
//   - Manager, Coordinator: always.
//   - Desk: everything except view_updates.
//   - Volunteer: only update_status and update_location, and only on a Guest
//     that lists the volunteer as assigned. Entities without that relation
//     (dorms) are always denied.
func CanPerformAction(actor *User, action Action, entity Entity) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case RoleManager, RoleCoordinator:
		return true
	case RoleDesk:
		return action != ActionViewUpdates
	case RoleVolunteer:
		guest, ok := entity.(Guest)
		if !ok || !guest.IsAssigned(actor.ID) {
			return false
		}
		return action == ActionUpdateStatus || action == ActionUpdateLocation
	default:
		return false
	}
}

// AllowedActions returns the subset of Actions actor may perform on entity.
// The result is never nil.
func AllowedActions(actor *User, entity Entity) []Action {
	out := []Action{}
	for _, a := range Actions {
		if CanPerformAction(actor, a, entity) {
			out = append(out, a)
		}
	}
	return out
}

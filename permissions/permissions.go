package permissions

// Role is a team-scoped membership role.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Capabilities is the fixed capability set derived from a role.
type Capabilities struct {
	CanViewTeam          bool `json:"canViewTeam"`
	CanEditTeam          bool `json:"canEditTeam"`
	CanDeleteTeam        bool `json:"canDeleteTeam"`
	CanInviteMembers     bool `json:"canInviteMembers"`
	CanRemoveMembers     bool `json:"canRemoveMembers"`
	CanChangeMemberRoles bool `json:"canChangeMemberRoles"`
	CanCreateMemos       bool `json:"canCreateMemos"`
	CanEditMemos         bool `json:"canEditMemos"`
	CanDeleteMemos       bool `json:"canDeleteMemos"`
}

// Of maps a role to its capability set. The empty role (caller is not a
// member) yields all-false, as does any unknown role value.
func Of(r Role) Capabilities {
	switch r {
	case RoleOwner:
		return Capabilities{
			CanViewTeam:          true,
			CanEditTeam:          true,
			CanDeleteTeam:        true,
			CanInviteMembers:     true,
			CanRemoveMembers:     true,
			CanChangeMemberRoles: true,
			CanCreateMemos:       true,
			CanEditMemos:         true,
			CanDeleteMemos:       true,
		}
	case RoleAdmin:
		return Capabilities{
			CanViewTeam:      true,
			CanEditTeam:      true,
			CanInviteMembers: true,
			CanRemoveMembers: true,
			CanCreateMemos:   true,
			CanEditMemos:     true,
			CanDeleteMemos:   true,
		}
	case RoleMember:
		return Capabilities{
			CanViewTeam:    true,
			CanCreateMemos: true,
		}
	}
	return Capabilities{}
}

// CanInviteRole reports whether an actor with the given role may create an
// invitation proposing invitee. Admins may invite members and admins but
// never owners; owners may invite any role.
func CanInviteRole(actor, invitee Role) bool {
	if !invitee.Valid() {
		return false
	}
	switch actor {
	case RoleOwner:
		return true
	case RoleAdmin:
		return invitee != RoleOwner
	}
	return false
}

// CanChangeRole reports whether an actor may set target's role to newRole.
// otherOwners is the count of owners on the team excluding the target; it
// guards demoting the last owner.
func CanChangeRole(actor, target, newRole Role, otherOwners int) bool {
	if actor != RoleOwner || !newRole.Valid() {
		return false
	}
	if target == RoleOwner && newRole != RoleOwner {
		return otherOwners > 0
	}
	return true
}

// CanRemoveMember reports whether an actor may remove a member holding
// target from the team. Self-removal is never allowed here; leaving a team
// is a separate operation. otherOwners guards removing the last owner.
func CanRemoveMember(actor, target Role, isSelf bool, otherOwners int) bool {
	if isSelf {
		return false
	}
	if actor != RoleOwner && actor != RoleAdmin {
		return false
	}
	if actor == RoleAdmin && target == RoleOwner {
		return false
	}
	if target == RoleOwner {
		return otherOwners > 0
	}
	return true
}

// CanEditMemo reports whether a user may edit a team memo. The creator may
// always edit their own memo; anyone else needs the team capability.
func CanEditMemo(isCreator bool, role Role) bool {
	return isCreator || Of(role).CanEditMemos
}

// CanDeleteMemo mirrors CanEditMemo for deletion.
func CanDeleteMemo(isCreator bool, role Role) bool {
	return isCreator || Of(role).CanDeleteMemos
}

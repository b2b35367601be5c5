package permissions

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("superadmin").Valid())
}

func TestOfOwner(t *testing.T) {
	caps := Of(RoleOwner)
	assert.True(t, caps.CanViewTeam)
	assert.True(t, caps.CanEditTeam)
	assert.True(t, caps.CanDeleteTeam)
	assert.True(t, caps.CanInviteMembers)
	assert.True(t, caps.CanRemoveMembers)
	assert.True(t, caps.CanChangeMemberRoles)
	assert.True(t, caps.CanCreateMemos)
	assert.True(t, caps.CanEditMemos)
	assert.True(t, caps.CanDeleteMemos)
}

func TestOfAdmin(t *testing.T) {
	caps := Of(RoleAdmin)
	assert.True(t, caps.CanViewTeam)
	assert.True(t, caps.CanEditTeam)
	assert.False(t, caps.CanDeleteTeam)
	assert.True(t, caps.CanInviteMembers)
	assert.True(t, caps.CanRemoveMembers)
	assert.False(t, caps.CanChangeMemberRoles)
	assert.True(t, caps.CanCreateMemos)
	assert.True(t, caps.CanEditMemos)
	assert.True(t, caps.CanDeleteMemos)
}

func TestOfMember(t *testing.T) {
	caps := Of(RoleMember)
	assert.True(t, caps.CanViewTeam)
	assert.True(t, caps.CanCreateMemos)
	assert.False(t, caps.CanEditTeam)
	assert.False(t, caps.CanDeleteTeam)
	assert.False(t, caps.CanInviteMembers)
	assert.False(t, caps.CanRemoveMembers)
	assert.False(t, caps.CanChangeMemberRoles)
	assert.False(t, caps.CanEditMemos)
	assert.False(t, caps.CanDeleteMemos)
}

func TestOfNonMember(t *testing.T) {
	require.Equal(t, Capabilities{}, Of(Role("")))
	require.Equal(t, Capabilities{}, Of(Role("stranger")))
}

func TestCanInviteRole(t *testing.T) {
	cases := []struct {
		name    string
		actor   Role
		invitee Role
		want    bool
	}{
		{"owner invites member", RoleOwner, RoleMember, true},
		{"owner invites admin", RoleOwner, RoleAdmin, true},
		{"owner invites owner", RoleOwner, RoleOwner, true},
		{"admin invites member", RoleAdmin, RoleMember, true},
		{"admin invites admin", RoleAdmin, RoleAdmin, true},
		{"admin invites owner", RoleAdmin, RoleOwner, false},
		{"member invites member", RoleMember, RoleMember, false},
		{"non-member invites member", Role(""), RoleMember, false},
		{"owner invites bogus role", RoleOwner, Role("root"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanInviteRole(tc.actor, tc.invitee))
		})
	}
}

func TestCanChangeRole(t *testing.T) {
	cases := []struct {
		name        string
		actor       Role
		target      Role
		newRole     Role
		otherOwners int
		want        bool
	}{
		{"owner promotes member to admin", RoleOwner, RoleMember, RoleAdmin, 0, true},
		{"owner promotes admin to owner", RoleOwner, RoleAdmin, RoleOwner, 0, true},
		{"owner demotes admin to member", RoleOwner, RoleAdmin, RoleMember, 0, true},
		{"owner demotes co-owner with another owner left", RoleOwner, RoleOwner, RoleMember, 1, true},
		{"owner demotes last owner", RoleOwner, RoleOwner, RoleMember, 0, false},
		{"owner reassigns owner to owner", RoleOwner, RoleOwner, RoleOwner, 0, true},
		{"admin changes roles", RoleAdmin, RoleMember, RoleAdmin, 5, false},
		{"member changes roles", RoleMember, RoleMember, RoleAdmin, 5, false},
		{"owner sets invalid role", RoleOwner, RoleMember, Role("root"), 5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanChangeRole(tc.actor, tc.target, tc.newRole, tc.otherOwners))
		})
	}
}

func TestCanRemoveMember(t *testing.T) {
	cases := []struct {
		name        string
		actor       Role
		target      Role
		isSelf      bool
		otherOwners int
		want        bool
	}{
		{"owner removes member", RoleOwner, RoleMember, false, 0, true},
		{"owner removes admin", RoleOwner, RoleAdmin, false, 0, true},
		{"owner removes co-owner with another owner left", RoleOwner, RoleOwner, false, 1, true},
		{"owner removes last owner", RoleOwner, RoleOwner, false, 0, false},
		{"admin removes member", RoleAdmin, RoleMember, false, 0, true},
		{"admin removes admin", RoleAdmin, RoleAdmin, false, 0, true},
		{"admin removes owner", RoleAdmin, RoleOwner, false, 5, false},
		{"member removes member", RoleMember, RoleMember, false, 0, false},
		{"self removal", RoleOwner, RoleOwner, true, 5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanRemoveMember(tc.actor, tc.target, tc.isSelf, tc.otherOwners))
		})
	}
}

// Applies a long random sequence of role changes and removals, each gated
// by the rule functions the way the handlers gate them, and checks the team
// never ends up ownerless.
func TestOwnerCountSurvivesRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	roles := []Role{RoleOwner, RoleAdmin, RoleMember}

	team := map[int]Role{0: RoleOwner, 1: RoleAdmin, 2: RoleMember, 3: RoleMember}
	owners := func() int {
		n := 0
		for _, r := range team {
			if r == RoleOwner {
				n++
			}
		}
		return n
	}

	for i := 0; i < 2000; i++ {
		ids := make([]int, 0, len(team))
		for id := range team {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		actor := ids[rng.Intn(len(ids))]
		target := ids[rng.Intn(len(ids))]

		otherOwners := owners()
		if team[target] == RoleOwner {
			otherOwners--
		}

		if rng.Intn(2) == 0 {
			newRole := roles[rng.Intn(len(roles))]
			if CanChangeRole(team[actor], team[target], newRole, otherOwners) {
				team[target] = newRole
			}
		} else if len(team) > 1 {
			if CanRemoveMember(team[actor], team[target], actor == target, otherOwners) {
				delete(team, target)
			}
		}
		require.GreaterOrEqual(t, owners(), 1, "step %d left the team without an owner", i)
	}
}

func TestCanEditMemo(t *testing.T) {
	assert.True(t, CanEditMemo(true, RoleMember), "creator edits own memo regardless of role")
	assert.True(t, CanEditMemo(true, Role("")), "creator edits even after losing membership role")
	assert.True(t, CanEditMemo(false, RoleOwner))
	assert.True(t, CanEditMemo(false, RoleAdmin))
	assert.False(t, CanEditMemo(false, RoleMember))
	assert.False(t, CanEditMemo(false, Role("")))
}

func TestCanDeleteMemo(t *testing.T) {
	assert.True(t, CanDeleteMemo(true, RoleMember))
	assert.True(t, CanDeleteMemo(false, RoleAdmin))
	assert.False(t, CanDeleteMemo(false, RoleMember))
	assert.False(t, CanDeleteMemo(false, Role("")))
}

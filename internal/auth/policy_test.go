package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	assert.True(t, Can(RoleStaff, "pool-bookings", ActionCreate))
	assert.True(t, Can(RoleManager, "conference-bookings", ActionTransition))
	assert.False(t, Can(RoleStaff, "conference-bookings", ActionTransition))
	assert.False(t, Can(RoleStaff, "users", ActionManage))
	assert.True(t, Can(RoleAdmin, "users", ActionManage))
	assert.False(t, Can(RoleStaff, "reports", ActionRead))
}

func TestAllowedPanicsOnUnknownPair(t *testing.T) {
	assert.Panics(t, func() { Allowed("no-such-resource", ActionRead) })
	assert.Panics(t, func() { Allowed("pool-bookings", "no-such-action") })
}

func TestEveryPolicyEntryIncludesAdmin(t *testing.T) {
	for resource, actions := range policy {
		for action := range actions {
			assert.True(t, Can(RoleAdmin, resource, action),
				"admin must be allowed on %s/%s", resource, action)
		}
	}
}

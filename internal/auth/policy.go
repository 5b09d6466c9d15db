package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Role is the single role carried by a staff account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// ValidRoles lists every assignable role.
var ValidRoles = []Role{RoleAdmin, RoleManager, RoleStaff}

// Actions a route can require on a resource.
const (
	ActionRead       = "read"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionTransition = "transition"
	ActionPayment    = "payment"
	ActionManage     = "manage"
)

// policy is the declarative capability table: (resource, action) -> allowed
// roles. It is consulted exactly once, when routes are registered; there are
// no per-route role arrays anywhere else.
var policy = map[string]map[string][]Role{
	"pool-bookings": {
		ActionRead:       {RoleAdmin, RoleManager, RoleStaff},
		ActionCreate:     {RoleAdmin, RoleManager, RoleStaff},
		ActionUpdate:     {RoleAdmin, RoleManager, RoleStaff},
		ActionDelete:     {RoleAdmin, RoleManager},
		ActionTransition: {RoleAdmin, RoleManager, RoleStaff},
		ActionPayment:    {RoleAdmin, RoleManager, RoleStaff},
	},
	"conference-bookings": {
		ActionRead:       {RoleAdmin, RoleManager, RoleStaff},
		ActionCreate:     {RoleAdmin, RoleManager, RoleStaff},
		ActionUpdate:     {RoleAdmin, RoleManager},
		ActionDelete:     {RoleAdmin, RoleManager},
		ActionTransition: {RoleAdmin, RoleManager},
		ActionPayment:    {RoleAdmin, RoleManager, RoleStaff},
	},
	"room-reservations": {
		ActionRead:       {RoleAdmin, RoleManager, RoleStaff},
		ActionCreate:     {RoleAdmin, RoleManager, RoleStaff},
		ActionUpdate:     {RoleAdmin, RoleManager, RoleStaff},
		ActionDelete:     {RoleAdmin, RoleManager},
		ActionTransition: {RoleAdmin, RoleManager, RoleStaff},
		ActionPayment:    {RoleAdmin, RoleManager, RoleStaff},
	},
	"restaurant-sales": {
		ActionRead:       {RoleAdmin, RoleManager, RoleStaff},
		ActionCreate:     {RoleAdmin, RoleManager, RoleStaff},
		ActionUpdate:     {RoleAdmin, RoleManager, RoleStaff},
		ActionDelete:     {RoleAdmin, RoleManager},
		ActionTransition: {RoleAdmin, RoleManager, RoleStaff},
		ActionPayment:    {RoleAdmin, RoleManager, RoleStaff},
	},
	"time-slots": {
		ActionRead:   {RoleAdmin, RoleManager, RoleStaff},
		ActionManage: {RoleAdmin, RoleManager},
	},
	"halls": {
		ActionRead:   {RoleAdmin, RoleManager, RoleStaff},
		ActionManage: {RoleAdmin, RoleManager},
	},
	"room-types": {
		ActionRead:   {RoleAdmin, RoleManager, RoleStaff},
		ActionManage: {RoleAdmin, RoleManager},
	},
	"rooms": {
		ActionRead:   {RoleAdmin, RoleManager, RoleStaff},
		ActionManage: {RoleAdmin, RoleManager},
	},
	"users": {
		ActionRead:   {RoleAdmin},
		ActionManage: {RoleAdmin},
	},
	"reports": {
		ActionRead: {RoleAdmin, RoleManager},
	},
}

// Allowed returns the roles permitted to perform action on resource.
// It panics on an unknown pair so a typo in a route registration fails at
// startup, not at request time.
func Allowed(resource, action string) []Role {
	actions, ok := policy[resource]
	if !ok {
		panic(fmt.Sprintf("auth: unknown policy resource %q", resource))
	}
	roles, ok := actions[action]
	if !ok {
		panic(fmt.Sprintf("auth: no policy for %s/%s", resource, action))
	}
	return roles
}

// Can reports whether role may perform action on resource.
func Can(role Role, resource, action string) bool {
	for _, r := range Allowed(resource, action) {
		if r == role {
			return true
		}
	}
	return false
}

// RequirePermission resolves the allowed roles for (resource, action) at
// route-registration time and returns a middleware enforcing them.
// It MUST be used after AuthRequired.
func RequirePermission(resource, action string) gin.HandlerFunc {
	allowed := Allowed(resource, action)

	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	}
}

package usecase

import (
	"testing"

	"worklog-panel/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestLandingRoute(t *testing.T) {
	tests := []struct {
		role entity.UserRole
		want string
	}{
		{entity.RoleStaff, RouteCourierPanel},
		{entity.RoleSupervizor, RouteSupervisorPanel},
		{entity.RoleManager, RouteManagerPanel},
		{entity.RoleDeveloper, RouteDeveloperPanel},
		{entity.RoleKasiyer, RouteCashierPanel},
		{entity.RoleUnset, RoutePurchasingPanel},
		{"ADMIN", RoutePurchasingPanel},
		{"manager", RouteManagerPanel},
		{" STAFF ", RouteCourierPanel},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, LandingRoute(tt.role))
		})
	}
}

func TestLandingRoute_Total(t *testing.T) {
	seen := map[string]entity.UserRole{}
	for _, role := range []entity.UserRole{
		entity.RoleStaff, entity.RoleSupervizor, entity.RoleManager,
		entity.RoleDeveloper, entity.RoleKasiyer, entity.RoleUnset,
	} {
		route := LandingRoute(role)
		assert.NotEmpty(t, route)
		if prev, ok := seen[route]; ok {
			t.Fatalf("roles %q and %q share route %s", prev, role, route)
		}
		seen[route] = role
	}
}

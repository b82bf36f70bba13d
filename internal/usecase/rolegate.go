package usecase

import "worklog-panel/internal/data/entity"

const (
	RouteCourierPanel    = "/panel/courier"
	RouteSupervisorPanel = "/panel/supervisor"
	RouteManagerPanel    = "/panel/manager"
	RouteDeveloperPanel  = "/panel/developer"
	RouteCashierPanel    = "/panel/cashier"
	RoutePurchasingPanel = "/panel/purchasing"
)

// LandingRoute maps a role to the single panel it lands on.
// Unset and unknown roles land on the purchasing panel.
func LandingRoute(role entity.UserRole) string {
	switch entity.ParseRole(string(role)) {
	case entity.RoleStaff:
		return RouteCourierPanel
	case entity.RoleSupervizor:
		return RouteSupervisorPanel
	case entity.RoleManager:
		return RouteManagerPanel
	case entity.RoleDeveloper:
		return RouteDeveloperPanel
	case entity.RoleKasiyer:
		return RouteCashierPanel
	default:
		return RoutePurchasingPanel
	}
}

package security

import "rentalops-backend/internal/domain"

// Permission names an operation a token holder may perform. Handlers check
// the permission attached to a route against the set in the token claims.
type Permission string

const (
	PermCustomersRead     Permission = "customers:read"
	PermCustomersWrite    Permission = "customers:write"
	PermVehiclesRead      Permission = "vehicles:read"
	PermVehiclesWrite     Permission = "vehicles:write"
	PermReservationsRead  Permission = "reservations:read"
	PermReservationsWrite Permission = "reservations:write"
	PermRentalsRead       Permission = "rentals:read"
	PermRentalsWrite      Permission = "rentals:write"
	PermBillingRead       Permission = "billing:read"
	PermBillingWrite      Permission = "billing:write"
	PermMaintenanceRead   Permission = "maintenance:read"
	PermMaintenanceWrite  Permission = "maintenance:write"
	PermUsersRead         Permission = "users:read"
	PermUsersWrite        Permission = "users:write"
	PermDashboardRead     Permission = "dashboard:read"
)

type PermissionSet map[Permission]bool

func (s PermissionSet) Has(p Permission) bool { return s[p] }

func (s PermissionSet) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, string(p))
	}
	return out
}

// NewPermissionSet builds a set from the string form carried in token claims.
func NewPermissionSet(perms []string) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[Permission(p)] = true
	}
	return s
}

func permissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = true
	}
	return s
}

var allPermissions = permissionSet(
	PermCustomersRead, PermCustomersWrite,
	PermVehiclesRead, PermVehiclesWrite,
	PermReservationsRead, PermReservationsWrite,
	PermRentalsRead, PermRentalsWrite,
	PermBillingRead, PermBillingWrite,
	PermMaintenanceRead, PermMaintenanceWrite,
	PermUsersRead, PermUsersWrite,
	PermDashboardRead,
)

// PermissionsForRole maps each employee role to its permission set.
// Managers can do everything; the other roles get the slice of the console
// their job touches, read access to what surrounds it, and nothing else.
func PermissionsForRole(role domain.UserRole) PermissionSet {
	switch role {
	case domain.UserRoleManager:
		return allPermissions
	case domain.UserRoleAgent:
		return permissionSet(
			PermCustomersRead, PermCustomersWrite,
			PermVehiclesRead,
			PermReservationsRead, PermReservationsWrite,
			PermRentalsRead, PermRentalsWrite,
			PermBillingRead,
			PermDashboardRead,
		)
	case domain.UserRoleTechnician:
		return permissionSet(
			PermVehiclesRead, PermVehiclesWrite,
			PermMaintenanceRead, PermMaintenanceWrite,
			PermDashboardRead,
		)
	case domain.UserRoleAccountant:
		return permissionSet(
			PermCustomersRead,
			PermRentalsRead,
			PermBillingRead, PermBillingWrite,
			PermDashboardRead,
		)
	}
	return permissionSet()
}

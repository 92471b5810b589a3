package domain

type UserRole string

const (
	UserRoleManager    UserRole = "manager"
	UserRoleAgent      UserRole = "agent"
	UserRoleTechnician UserRole = "technician"
	UserRoleAccountant UserRole = "accountant"
)

// User is an employee of the rental business: booking agents, technicians,
// accountants and managers. Referenced by reservations, rentals, payments
// and maintenance records.
type User struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
}

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleManager, UserRoleAgent, UserRoleTechnician, UserRoleAccountant:
		return true
	}
	return false
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

package constants

// Role claims carried by externally issued JWTs.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
)

// BillingRoles may read and write the financial surface.
var BillingRoles = []string{RoleSuperadmin, RoleAdmin}

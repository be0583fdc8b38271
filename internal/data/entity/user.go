package entity

type UserRole string

const (
	RoleOperator UserRole = "operator"
	RoleRider    UserRole = "rider"
)

// ParseRole maps a raw role string (dari JWT claims atau register payload)
// ke enum. Unknown roles fall back to rider, the least-privileged one.
func ParseRole(s string) UserRole {
	if s == string(RoleOperator) {
		return RoleOperator
	}
	return RoleRider
}

type User struct {
	Base
	Username     string   `db:"username"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
}

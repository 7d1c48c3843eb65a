package auth

// Staff is the domain entity: whoever signs in at a terminal or the
// admin dashboard.
type Staff struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string // ADMIN or CASHIER
}

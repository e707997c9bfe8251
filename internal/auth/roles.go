package auth

// Role is a closed set; anything else is rejected at the boundary.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// Permission tags gate individual operations.
type Permission string

const (
	PermCheckout      Permission = "checkout"
	PermHoldOrders    Permission = "hold_orders"
	PermViewOrders    Permission = "view_orders"
	PermTransition    Permission = "transition_orders"
	PermCancelOrders  Permission = "cancel_orders"
	PermConfirmCash   Permission = "confirm_cash"
	PermRefundOrders  Permission = "refund_orders"
	PermManageCatalog Permission = "manage_catalog"
)

// rolePermissions is the single authoritative mapping from role to
// permission set. All permission checks go through Can; nothing else
// hardcodes role names.
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermCheckout:      true,
		PermHoldOrders:    true,
		PermViewOrders:    true,
		PermTransition:    true,
		PermCancelOrders:  true,
		PermConfirmCash:   true,
		PermRefundOrders:  true,
		PermManageCatalog: true,
	},
	RoleManager: {
		PermCheckout:      true,
		PermHoldOrders:    true,
		PermViewOrders:    true,
		PermTransition:    true,
		PermCancelOrders:  true,
		PermConfirmCash:   true,
		PermRefundOrders:  true,
		PermManageCatalog: true,
	},
	RoleCashier: {
		PermCheckout:     true,
		PermHoldOrders:   true,
		PermViewOrders:   true,
		PermTransition:   true,
		PermCancelOrders: true,
		PermConfirmCash:  true,
	},
}

// Can reports whether role holds the permission.
func Can(role Role, perm Permission) bool {
	return rolePermissions[role][perm]
}

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, bool) {
	r := Role(raw)
	if _, ok := rolePermissions[r]; !ok {
		return "", false
	}
	return r, true
}

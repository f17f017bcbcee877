// Package domain holds the small value types shared across request handling.
package domain

// Role identifies what a logged-in user may do on this front end.
type Role string

const (
	RoleSupplier Role = "supplier"
	RoleBuyer    Role = "buyer"
	RoleAdmin    Role = "admin"
)

// CurrentUser is the logged-in user as held in the session.
type CurrentUser struct {
	ID           int64  `json:"id"`
	EmailAddress string `json:"emailAddress"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	SupplierID   int64  `json:"supplierId,omitempty"`
	SupplierName string `json:"supplierName,omitempty"`
}

// IsSupplier reports whether the user acts on behalf of a supplier.
func (u *CurrentUser) IsSupplier() bool {
	return u != nil && u.Role == RoleSupplier && u.SupplierID != 0
}

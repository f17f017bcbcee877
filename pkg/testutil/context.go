package testutil

import "supplierfront/pkg/domain"

// SupplierUser is the logged-in supplier most handler tests act as.
func SupplierUser() *domain.CurrentUser {
	return &domain.CurrentUser{
		ID:           123,
		EmailAddress: "email@email.com",
		Name:         "Năme",
		Role:         domain.RoleSupplier,
		SupplierID:   1234,
		SupplierName: "Supplier Năme",
	}
}

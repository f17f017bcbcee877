package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentUser_IsSupplier(t *testing.T) {
	t.Run("nil user is not a supplier", func(t *testing.T) {
		var u *CurrentUser
		assert.False(t, u.IsSupplier())
	})

	t.Run("supplier role without supplier id is rejected", func(t *testing.T) {
		u := &CurrentUser{Role: RoleSupplier}
		assert.False(t, u.IsSupplier())
	})

	t.Run("buyer is not a supplier", func(t *testing.T) {
		u := &CurrentUser{Role: RoleBuyer, SupplierID: 1234}
		assert.False(t, u.IsSupplier())
	})

	t.Run("supplier with id", func(t *testing.T) {
		u := &CurrentUser{Role: RoleSupplier, SupplierID: 1234}
		assert.True(t, u.IsSupplier())
	})
}

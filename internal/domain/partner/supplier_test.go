package partner

import (
	"testing"

	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("creates active supplier with default terms", func(t *testing.T) {
		supplier, err := NewSupplier("SUP-00001", "Acme Parts Co")
		require.NoError(t, err)

		assert.Equal(t, SupplierStatusActive, supplier.Status)
		assert.Equal(t, PaymentTermsNet30, supplier.PaymentTerms)
		assert.Equal(t, 1, supplier.GetVersion())
		assert.Len(t, supplier.GetDomainEvents(), 1)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewSupplier("", "Acme Parts Co")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeValidationFailed, domainErr.Code)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSupplier("SUP-00001", "")
		assert.Error(t, err)
	})
}

func TestSupplierStatusChanges(t *testing.T) {
	newActive := func(t *testing.T) *Supplier {
		supplier, err := NewSupplier("SUP-00001", "Acme Parts Co")
		require.NoError(t, err)
		return supplier
	}

	t.Run("deactivate and reactivate", func(t *testing.T) {
		supplier := newActive(t)

		require.NoError(t, supplier.Deactivate())
		assert.Equal(t, SupplierStatusInactive, supplier.Status)
		assert.False(t, supplier.CanOrder())

		require.NoError(t, supplier.Activate())
		assert.Equal(t, SupplierStatusActive, supplier.Status)
		assert.True(t, supplier.CanOrder())
	})

	t.Run("suspend blocks ordering", func(t *testing.T) {
		supplier := newActive(t)

		require.NoError(t, supplier.Suspend())
		assert.Equal(t, SupplierStatusSuspended, supplier.Status)
		assert.False(t, supplier.CanOrder())
	})

	t.Run("blacklist is sticky", func(t *testing.T) {
		supplier := newActive(t)
		supplier.Blacklist()
		assert.Equal(t, SupplierStatusBlacklisted, supplier.Status)

		err := supplier.Activate()
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeInvalidTransition, domainErr.Code)

		assert.Error(t, supplier.Deactivate())
		assert.Error(t, supplier.Suspend())
	})
}

func TestSupplierUpdates(t *testing.T) {
	supplier, err := NewSupplier("SUP-00001", "Acme Parts Co")
	require.NoError(t, err)

	t.Run("payment terms validation", func(t *testing.T) {
		require.NoError(t, supplier.UpdatePaymentTerms(PaymentTermsNet60))
		assert.Equal(t, PaymentTermsNet60, supplier.PaymentTerms)

		assert.Error(t, supplier.UpdatePaymentTerms("NET_45"))
	})

	t.Run("net days", func(t *testing.T) {
		assert.Equal(t, 30, PaymentTermsNet30.NetDays())
		assert.Equal(t, 90, PaymentTermsNet90.NetDays())
		assert.Equal(t, 0, PaymentTermsDueOnReceipt.NetDays())
	})

	t.Run("contact and address", func(t *testing.T) {
		before := supplier.GetVersion()
		supplier.UpdateContact("Jane Smith", "555-0100", "jane@acme.example")
		supplier.UpdateAddress("1 Industrial Way", "Springfield", "IL", "62701", "USA")

		assert.Equal(t, "Jane Smith", supplier.ContactName)
		assert.Equal(t, "Springfield", supplier.City)
		assert.Equal(t, before+2, supplier.GetVersion())
	})
}

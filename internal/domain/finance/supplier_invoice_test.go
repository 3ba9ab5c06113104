package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T, subtotal float64) *SupplierInvoice {
	t.Helper()
	now := time.Now()
	invoice, err := NewSupplierInvoice(
		"INV-2026-00001", "ACME-4711", uuid.New(), "Acme Parts Co",
		now, now.AddDate(0, 0, 30),
		decimal.NewFromFloat(subtotal), decimal.Zero,
	)
	require.NoError(t, err)
	return invoice
}

func TestNewSupplierInvoice(t *testing.T) {
	t.Run("creates unpaid invoice", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)

		assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
		assert.Equal(t, PaymentStatusUnpaid, invoice.PaymentStatus)
		assert.True(t, invoice.PaidAmount.IsZero())
		assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, invoice.RemainingBalance().Equal(decimal.NewFromInt(1000)))
		assert.Empty(t, invoice.Payments)
	})

	t.Run("total includes tax", func(t *testing.T) {
		now := time.Now()
		invoice, err := NewSupplierInvoice(
			"INV-2026-00002", "ACME-4712", uuid.New(), "Acme Parts Co",
			now, now.AddDate(0, 0, 30),
			decimal.NewFromInt(1000), decimal.NewFromInt(80),
		)
		require.NoError(t, err)
		assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(1080)))
	})

	t.Run("rejects due date before invoice date", func(t *testing.T) {
		now := time.Now()
		_, err := NewSupplierInvoice(
			"INV-2026-00003", "ACME-4713", uuid.New(), "Acme Parts Co",
			now, now.AddDate(0, 0, -1),
			decimal.NewFromInt(1000), decimal.Zero,
		)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive subtotal", func(t *testing.T) {
		now := time.Now()
		_, err := NewSupplierInvoice(
			"INV-2026-00004", "ACME-4714", uuid.New(), "Acme Parts Co",
			now, now.AddDate(0, 0, 30),
			decimal.Zero, decimal.Zero,
		)
		assert.Error(t, err)
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("partial then completing payment", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)

		_, err := invoice.RecordPayment(decimal.NewFromInt(400), PaymentMethodBankTransfer, "wire-001", "", time.Time{})
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPartial, invoice.PaymentStatus)
		assert.Equal(t, InvoiceStatusPartiallyPaid, invoice.Status)
		assert.True(t, invoice.PaidAmount.Equal(decimal.NewFromInt(400)))
		assert.True(t, invoice.RemainingBalance().Equal(decimal.NewFromInt(600)))

		_, err = invoice.RecordPayment(decimal.NewFromInt(600), PaymentMethodCheck, "chk-042", "", time.Time{})
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPaid, invoice.PaymentStatus)
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		assert.True(t, invoice.RemainingBalance().IsZero())
		assert.Equal(t, 2, invoice.PaymentCount())
	})

	t.Run("paid amount always equals the ledger sum", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		amounts := []int64{100, 250, 50}
		for _, a := range amounts {
			_, err := invoice.RecordPayment(decimal.NewFromInt(a), PaymentMethodCash, "", "", time.Time{})
			require.NoError(t, err)
		}

		sum := decimal.Zero
		for _, p := range invoice.Payments {
			sum = sum.Add(p.Amount)
		}
		assert.True(t, invoice.PaidAmount.Equal(sum))
	})

	t.Run("records overpayment instead of rejecting it", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)

		_, err := invoice.RecordPayment(decimal.NewFromInt(1200), PaymentMethodBankTransfer, "", "", time.Time{})
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPaid, invoice.PaymentStatus)
		assert.True(t, invoice.PaidAmount.Equal(decimal.NewFromInt(1200)))
		assert.True(t, invoice.RemainingBalance().IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		_, err := invoice.RecordPayment(decimal.Zero, PaymentMethodCash, "", "", time.Time{})
		assert.Error(t, err)
	})

	t.Run("accepts further payments on a fully paid invoice", func(t *testing.T) {
		invoice := newTestInvoice(t, 100)
		_, err := invoice.RecordPayment(decimal.NewFromInt(100), PaymentMethodCash, "", "", time.Time{})
		require.NoError(t, err)

		_, err = invoice.RecordPayment(decimal.NewFromInt(1), PaymentMethodCash, "", "", time.Time{})
		require.NoError(t, err)
		assert.True(t, invoice.PaidAmount.Equal(decimal.NewFromInt(101)))
		assert.Equal(t, PaymentStatusPaid, invoice.PaymentStatus)
	})

	t.Run("rejects payment on cancelled invoice and keeps ledger intact", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		_, err := invoice.RecordPayment(decimal.NewFromInt(300), PaymentMethodCash, "", "", time.Time{})
		require.NoError(t, err)
		require.NoError(t, invoice.Cancel("duplicate billing"))

		_, err = invoice.RecordPayment(decimal.NewFromInt(100), PaymentMethodCash, "", "", time.Time{})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)

		assert.Equal(t, 1, invoice.PaymentCount())
		assert.True(t, invoice.PaidAmount.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, InvoiceStatusCancelled, invoice.Status)
	})

	t.Run("rejects invalid payment method", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		_, err := invoice.RecordPayment(decimal.NewFromInt(100), "BARTER", "", "", time.Time{})
		assert.Error(t, err)
	})
}

func TestMarkAsPaid(t *testing.T) {
	t.Run("settles the remaining balance with one ledger entry", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		_, err := invoice.RecordPayment(decimal.NewFromInt(400), PaymentMethodBankTransfer, "", "", time.Time{})
		require.NoError(t, err)

		payment, err := invoice.MarkAsPaid(PaymentMethodBankTransfer, "wire-final")
		require.NoError(t, err)

		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(600)))
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		assert.Equal(t, 2, invoice.PaymentCount())
	})

	t.Run("fails on cancelled invoice", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		require.NoError(t, invoice.Cancel("wrong supplier"))

		_, err := invoice.MarkAsPaid(PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("fails on an already settled invoice", func(t *testing.T) {
		invoice := newTestInvoice(t, 100)
		_, err := invoice.RecordPayment(decimal.NewFromInt(100), PaymentMethodCash, "", "", time.Time{})
		require.NoError(t, err)

		_, err = invoice.MarkAsPaid(PaymentMethodCash, "")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
	})
}

func TestInvoiceCancel(t *testing.T) {
	t.Run("cancel is sticky", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		require.NoError(t, invoice.Cancel("duplicate"))

		err := invoice.Cancel("again")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeInvalidTransition, domainErr.Code)
	})

	t.Run("cannot cancel a paid invoice", func(t *testing.T) {
		invoice := newTestInvoice(t, 100)
		_, err := invoice.RecordPayment(decimal.NewFromInt(100), PaymentMethodCash, "", "", time.Time{})
		require.NoError(t, err)

		assert.Error(t, invoice.Cancel("too late"))
	})

	t.Run("requires a reason", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		assert.Error(t, invoice.Cancel(""))
	})
}

func TestInvoiceItems(t *testing.T) {
	t.Run("billed lines re-derive the subtotal and total", func(t *testing.T) {
		now := time.Now()
		invoice, err := NewSupplierInvoice(
			"INV-2026-00020", "ACME-4730", uuid.New(), "Acme Parts Co",
			now, now.AddDate(0, 0, 30),
			decimal.NewFromInt(1), decimal.NewFromInt(25),
		)
		require.NoError(t, err)

		_, err = invoice.AddItem("BOLT-M8", "M8 Hex Bolt", decimal.NewFromInt(100), decimal.NewFromInt(2))
		require.NoError(t, err)
		_, err = invoice.AddItem("NUT-M8", "", decimal.NewFromInt(50), decimal.NewFromInt(1))
		require.NoError(t, err)

		assert.True(t, invoice.Subtotal.Equal(decimal.NewFromInt(250)))
		assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(275)))
		assert.Len(t, invoice.Items, 2)
	})

	t.Run("lines are frozen once a payment exists", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		_, err := invoice.RecordPayment(decimal.NewFromInt(100), PaymentMethodCash, "", "", time.Time{})
		require.NoError(t, err)

		_, err = invoice.AddItem("BOLT-M8", "", decimal.NewFromInt(1), decimal.NewFromInt(1))
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		_, err := invoice.AddItem("BOLT-M8", "", decimal.Zero, decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestOverdueDerivation(t *testing.T) {
	t.Run("unpaid invoice past due date becomes overdue on refresh", func(t *testing.T) {
		past := time.Now().AddDate(0, 0, -40)
		invoice, err := NewSupplierInvoice(
			"INV-2026-00010", "ACME-4720", uuid.New(), "Acme Parts Co",
			past, past.AddDate(0, 0, 30),
			decimal.NewFromInt(500), decimal.Zero,
		)
		require.NoError(t, err)

		invoice.RefreshStatus()
		assert.Equal(t, InvoiceStatusOverdue, invoice.Status)
		assert.True(t, invoice.IsOverdue())
	})

	t.Run("cancelled invoice never becomes overdue", func(t *testing.T) {
		past := time.Now().AddDate(0, 0, -40)
		invoice, err := NewSupplierInvoice(
			"INV-2026-00011", "ACME-4721", uuid.New(), "Acme Parts Co",
			past, past.AddDate(0, 0, 30),
			decimal.NewFromInt(500), decimal.Zero,
		)
		require.NoError(t, err)
		require.NoError(t, invoice.Cancel("void"))

		invoice.RefreshStatus()
		assert.Equal(t, InvoiceStatusCancelled, invoice.Status)
		assert.False(t, invoice.IsOverdue())
	})

	t.Run("paid invoice is not overdue", func(t *testing.T) {
		invoice := newTestInvoice(t, 100)
		_, err := invoice.RecordPayment(decimal.NewFromInt(100), PaymentMethodCash, "", "", time.Time{})
		require.NoError(t, err)

		assert.False(t, invoice.IsOverdue())
	})
}

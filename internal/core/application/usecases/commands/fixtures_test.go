package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func fixedPricing(t *testing.T, amount int64) order.PricingTerms {
	t.Helper()
	price, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	terms, err := order.NewFixedPricing(price)
	require.NoError(t, err)
	return terms
}

func restoredOrder(t *testing.T, requiredSlots, acceptedSlots int, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		fixedPricing(t, 100_000),
		requiredSlots,
		acceptedSlots,
		status,
	)
	require.NoError(t, err)
	return o
}

func testWindow(t *testing.T) assignment.Window {
	t.Helper()
	start := time.Now().Add(24 * time.Hour)
	w, err := assignment.NewWindow(start, start.Add(4*time.Hour))
	require.NoError(t, err)
	return w
}

func restoredLeg(
	t *testing.T,
	orderID, fulfillerID kernel.UUID,
	status assignment.Status,
) *assignment.Assignment {
	t.Helper()
	price, err := kernel.NewMoney(100_000)
	require.NoError(t, err)
	leg, err := assignment.RestoreAssignment(
		kernel.NewUUID(), orderID, fulfillerID, status, price, testWindow(t), testWindow(t))
	require.NoError(t, err)
	return leg
}

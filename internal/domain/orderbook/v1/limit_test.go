package orderbookv1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderv1 "github.com/kaushalkahapola/exchange-application/internal/domain/order/v1"
)

// Helper function to create a resting order with explicit id and sequence
func createTestOrder(id int64, side orderv1.Side, quantity int64, price string, sequence int64) *orderv1.Order {
	return &orderv1.Order{
		ID:            id,
		ClientOrderID: "C1",
		Instrument:    orderv1.InstrumentRose,
		Side:          side,
		Quantity:      quantity,
		Remaining:     quantity,
		Price:         decimal.RequireFromString(price),
		Sequence:      sequence,
	}
}

// Test 1: Basic constructor
func TestNewLimit(t *testing.T) {
	limit := NewLimit(decimal.RequireFromString("10.0"))

	assert.NotNil(t, limit)
	assert.True(t, limit.IsEmpty())
	assert.Equal(t, 0, limit.OrderCount())
	assert.Equal(t, int64(0), limit.TotalVolume)
	assert.Nil(t, limit.Peek())
}

// Test 2: Add orders and track volume
func TestLimit_AddOrder(t *testing.T) {
	limit := NewLimit(decimal.RequireFromString("10.0"))

	order1 := createTestOrder(1, orderv1.SideSell, 100, "10.0", 1)
	order2 := createTestOrder(2, orderv1.SideSell, 50, "10.0", 2)

	require.NoError(t, limit.AddOrder(order1))
	require.NoError(t, limit.AddOrder(order2))

	assert.Equal(t, 2, limit.OrderCount())
	assert.Equal(t, int64(150), limit.TotalVolume)
	assert.Equal(t, order1, limit.Peek()) // Earliest arrival has priority
}

// Test 3: Add order error cases
func TestLimit_AddOrder_Errors(t *testing.T) {
	limit := NewLimit(decimal.RequireFromString("10.0"))

	err := limit.AddOrder(nil)
	assert.ErrorIs(t, err, ErrNilOrder)

	exhausted := createTestOrder(1, orderv1.SideSell, 100, "10.0", 1)
	exhausted.Remaining = 0
	err = limit.AddOrder(exhausted)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

// Test 4: Remove order
func TestLimit_RemoveOrder(t *testing.T) {
	limit := NewLimit(decimal.RequireFromString("10.0"))

	order := createTestOrder(1, orderv1.SideSell, 100, "10.0", 1)
	require.NoError(t, limit.AddOrder(order))

	require.NoError(t, limit.RemoveOrder(order))
	assert.True(t, limit.IsEmpty())
	assert.Equal(t, int64(0), limit.TotalVolume)

	err := limit.RemoveOrder(order)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// Test 5: Fill exhausting the resting order
func TestLimit_Fill_RestingExhausted(t *testing.T) {
	limit := NewLimit(decimal.RequireFromString("10.0"))

	resting := createTestOrder(1, orderv1.SideBuy, 100, "10.0", 1)
	require.NoError(t, limit.AddOrder(resting))

	incoming := createTestOrder(2, orderv1.SideSell, 100, "9.0", 2)
	fills := limit.Fill(incoming)

	require.Len(t, fills, 1)
	assert.Equal(t, resting, fills[0].Resting)
	assert.Equal(t, int64(100), fills[0].Quantity)
	assert.True(t, fills[0].Price.Equal(decimal.RequireFromString("10.0")))
	assert.True(t, fills[0].RestingIsFilled())
	assert.True(t, fills[0].AggressorIsFilled())

	// Exhausted resting order is removed the instant it hits zero
	assert.True(t, limit.IsEmpty())
	assert.Equal(t, int64(0), limit.TotalVolume)
}

// Test 6: Fill leaving the resting order partially filled
func TestLimit_Fill_RestingRemainder(t *testing.T) {
	limit := NewLimit(decimal.RequireFromString("9.0"))

	resting := createTestOrder(1, orderv1.SideSell, 100, "9.0", 1)
	require.NoError(t, limit.AddOrder(resting))

	incoming := createTestOrder(2, orderv1.SideBuy, 40, "10.0", 2)
	fills := limit.Fill(incoming)

	require.Len(t, fills, 1)
	assert.Equal(t, int64(40), fills[0].Quantity)
	assert.Equal(t, int64(60), fills[0].RestingRemaining)
	assert.False(t, fills[0].RestingIsFilled())
	assert.True(t, fills[0].AggressorIsFilled())

	assert.Equal(t, 1, limit.OrderCount())
	assert.Equal(t, int64(60), limit.TotalVolume)
	assert.Equal(t, int64(60), resting.Remaining)
}

// Test 7: Fill walking multiple resting orders in time priority
func TestLimit_Fill_TimePriority(t *testing.T) {
	limit := NewLimit(decimal.RequireFromString("9.0"))

	first := createTestOrder(1, orderv1.SideSell, 50, "9.0", 1)
	second := createTestOrder(2, orderv1.SideSell, 50, "9.0", 2)
	require.NoError(t, limit.AddOrder(first))
	require.NoError(t, limit.AddOrder(second))

	incoming := createTestOrder(3, orderv1.SideBuy, 70, "9.0", 3)
	fills := limit.Fill(incoming)

	require.Len(t, fills, 2)
	assert.Equal(t, first, fills[0].Resting) // Earliest arrival matched first
	assert.Equal(t, int64(50), fills[0].Quantity)
	assert.Equal(t, second, fills[1].Resting)
	assert.Equal(t, int64(20), fills[1].Quantity)

	assert.Equal(t, int64(0), incoming.Remaining)
	assert.Equal(t, int64(30), second.Remaining)
	assert.Equal(t, 1, limit.OrderCount())
}

// Test 8: Validate catches volume drift
func TestLimit_Validate(t *testing.T) {
	limit := NewLimit(decimal.RequireFromString("10.0"))

	order := createTestOrder(1, orderv1.SideSell, 100, "10.0", 1)
	require.NoError(t, limit.AddOrder(order))
	assert.NoError(t, limit.Validate())

	limit.TotalVolume = 42
	assert.Error(t, limit.Validate())
}

package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/models"
)

func seeded() (*OrderState, *models.OrderWithItems) {
	price := decimal.NewFromInt(50)
	order := &models.OrderWithItems{
		Order: models.Order{ID: 101, TableID: 5, Status: models.StatusOpen},
		Items: []models.OrderItem{
			{ID: 55, OrderID: 101, ItemID: 7, Quantity: 3, UnitPrice: price, Subtotal: price.Mul(decimal.NewFromInt(3))},
		},
	}
	order.Total = order.ItemsTotal()

	state := NewOrderState()
	state.Bind(&models.Table{ID: 5, TableNumber: 5, IsActive: true}, order)
	return state, order
}

func TestQuantityPrefersTentativeOverlay(t *testing.T) {
	state, _ := seeded()

	assert.Equal(t, 3, state.Quantity(7))
	state.SetTentative(7, 5)
	assert.Equal(t, 5, state.Quantity(7))
	assert.Equal(t, 3, state.KnownQuantity(7), "known quantity ignores the overlay")

	state.ClearTentative(7)
	assert.Equal(t, 3, state.Quantity(7))
}

func TestTotalRecomputedWithOverlayAndStaged(t *testing.T) {
	state, _ := seeded()
	assert.True(t, state.Total().Equal(decimal.NewFromInt(150)))

	state.SetTentative(7, 1)
	assert.True(t, state.Total().Equal(decimal.NewFromInt(50)))

	state.StageCartItem(models.NewCartItem(models.MenuItem{ID: 9, Price: decimal.NewFromInt(30)}, 2, ""))
	assert.True(t, state.Total().Equal(decimal.NewFromInt(110)))
}

func TestApplyRefreshDiscardsStaleSnapshot(t *testing.T) {
	state, order := seeded()
	gen := state.Generation()

	// A mutation lands while the poll is in flight.
	mutated := *order
	mutated.Items = []models.OrderItem{}
	mutated.Total = decimal.Zero
	state.ApplyMutation(&mutated)

	stale := *order
	applied := state.ApplyRefresh(&stale, gen)
	assert.False(t, applied, "stale poll must not clobber the mutation result")
	assert.Equal(t, 0, state.KnownQuantity(7))
}

func TestApplyRefreshAppliesCurrentSnapshot(t *testing.T) {
	state, order := seeded()
	gen := state.Generation()

	fresh := *order
	fresh.Items = []models.OrderItem{
		{ID: 55, OrderID: 101, ItemID: 7, Quantity: 4, UnitPrice: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(200)},
	}
	require.True(t, state.ApplyRefresh(&fresh, gen))
	assert.Equal(t, 4, state.KnownQuantity(7))

	// A plain refresh does not bump the generation; the next poll under
	// the same generation still applies (last fetch wins).
	assert.Equal(t, gen, state.Generation())
}

func TestAuthoritativeSnapshotRetiresOverlay(t *testing.T) {
	state, order := seeded()
	state.SetTentative(7, 9)

	fresh := *order
	fresh.Items = []models.OrderItem{
		{ID: 55, OrderID: 101, ItemID: 7, Quantity: 4, UnitPrice: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(200)},
	}
	require.True(t, state.ApplyRefresh(&fresh, state.Generation()))
	assert.Equal(t, 4, state.Quantity(7), "applied snapshot is the displayed truth")

	state.SetTentative(7, 9)
	state.ApplyMutation(&fresh)
	assert.Equal(t, 4, state.Quantity(7))
}

func TestDropStagedRemovesOneLine(t *testing.T) {
	state := NewOrderState()
	state.StageCartItem(models.NewCartItem(models.MenuItem{ID: 7, Price: decimal.NewFromInt(50)}, 2, ""))
	state.StageCartItem(models.NewCartItem(models.MenuItem{ID: 9, Price: decimal.NewFromInt(30)}, 1, ""))

	assert.Equal(t, 2, state.StagedQuantity(7))
	state.DropStaged(7)
	assert.Equal(t, 0, state.StagedQuantity(7))

	staged := state.StagedItems()
	require.Len(t, staged, 1)
	assert.Equal(t, int64(9), staged[0].ItemID)
}

func TestStagedItemsAccumulateByMenuItem(t *testing.T) {
	state := NewOrderState()
	item := models.MenuItem{ID: 7, Price: decimal.NewFromInt(50)}

	state.StageCartItem(models.NewCartItem(item, 2, ""))
	state.StageCartItem(models.NewCartItem(item, 1, "no peanuts"))

	staged := state.StagedItems()
	require.Len(t, staged, 1)
	assert.Equal(t, 3, staged[0].Quantity)
	assert.True(t, staged[0].Subtotal.Equal(decimal.NewFromInt(150)))
	assert.NotEmpty(t, staged[0].TempID)
}

func TestClearDropsSession(t *testing.T) {
	state, _ := seeded()
	state.Clear()

	_, bound := state.OrderID()
	assert.False(t, bound)
	assert.Nil(t, state.Table())
	assert.True(t, state.Total().IsZero())
}

func TestOrderReturnsCopy(t *testing.T) {
	state, _ := seeded()

	dup := state.Order()
	dup.Items[0].Quantity = 99

	assert.Equal(t, 3, state.KnownQuantity(7), "mutating the copy must not leak into the store")
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shirt() ProductSummary {
	return ProductSummary{
		ID:            "p1",
		Name:          "Linen Shirt",
		Price:         5000,
		OriginalPrice: 6500,
		Image:         "https://cdn.example.com/p1.jpg",
		Category:      "shirts",
	}
}

func TestAdd_NewItem(t *testing.T) {
	var c Cart

	item := c.Add(shirt(), "red", "M", 2)
	require.NotNil(t, item)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p1-red-M", c.Items[0].ID)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, int64(5000), c.Items[0].Price)
}

func TestAdd_SameKeyMergesQuantity(t *testing.T) {
	var c Cart

	c.Add(shirt(), "red", "M", 2)
	c.Add(shirt(), "red", "M", 3)
	c.Add(shirt(), "red", "M", 1)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 6, c.Items[0].Quantity)
}

func TestAdd_DifferentVariantsStayDistinct(t *testing.T) {
	var c Cart

	c.Add(shirt(), "red", "M", 1)
	c.Add(shirt(), "red", "L", 1)
	c.Add(shirt(), "blue", "M", 1)

	require.Len(t, c.Items, 3)
	assert.Equal(t, "p1-red-M", c.Items[0].ID)
	assert.Equal(t, "p1-red-L", c.Items[1].ID)
	assert.Equal(t, "p1-blue-M", c.Items[2].ID)
}

func TestAdd_NegativeQuantityClampedToZero(t *testing.T) {
	var c Cart

	c.Add(shirt(), "red", "M", 2)
	c.Add(shirt(), "red", "M", -5)

	// A negative add never decrements below the current quantity.
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAdd_ZeroQuantityOnEmptyCartIsNoop(t *testing.T) {
	var c Cart

	item := c.Add(shirt(), "red", "M", 0)
	assert.Nil(t, item)
	assert.Empty(t, c.Items)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	var c Cart

	other := shirt()
	other.ID = "p2"

	c.Add(shirt(), "red", "M", 1)
	c.Add(other, "", "", 1)
	c.Add(shirt(), "red", "M", 4)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "p1-red-M", c.Items[0].ID)
	assert.Equal(t, "p2--", c.Items[1].ID)
}

func TestRemove(t *testing.T) {
	var c Cart

	c.Add(shirt(), "red", "M", 1)
	assert.True(t, c.Remove("p1-red-M"))
	assert.Empty(t, c.Items)

	assert.False(t, c.Remove("p1-red-M"), "removing an absent key is a no-op")
}

func TestUpdateQuantity_Replaces(t *testing.T) {
	var c Cart

	c.Add(shirt(), "red", "M", 2)
	assert.True(t, c.UpdateQuantity("p1-red-M", 7))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 7, c.Items[0].Quantity)
	assert.Equal(t, int64(5000), c.Items[0].Price, "other fields untouched")
}

func TestUpdateQuantity_ZeroOrBelowRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -10} {
		var c Cart
		c.Add(shirt(), "red", "M", 2)

		c.UpdateQuantity("p1-red-M", q)
		assert.Empty(t, c.Items, "quantity %d should remove the item", q)
	}
}

func TestClear_Idempotent(t *testing.T) {
	var c Cart

	c.Add(shirt(), "red", "M", 2)
	c.Clear()
	first := c.Items
	c.Clear()

	assert.Empty(t, first)
	assert.Empty(t, c.Items)
}

func TestTotals_Scenario(t *testing.T) {
	var c Cart
	c.Add(shirt(), "red", "M", 2)

	tot := c.Totals()
	assert.Equal(t, int64(10000), tot.Subtotal)
	assert.Equal(t, 2, tot.ItemCount)
	assert.Equal(t, int64(10000), tot.Shipping, "below the free-shipping threshold")
	assert.Equal(t, int64(300), tot.Tax)
	assert.Equal(t, int64(20300), tot.Total)
}

func TestTotals_FreeShippingAboveThreshold(t *testing.T) {
	var c Cart

	p := shirt()
	p.Price = 50_001
	c.Add(p, "", "", 2) // subtotal 100_002

	tot := c.Totals()
	assert.Equal(t, int64(100_002), tot.Subtotal)
	assert.Equal(t, int64(0), tot.Shipping)
}

func TestTotals_ThresholdIsExclusive(t *testing.T) {
	var c Cart

	p := shirt()
	p.Price = FreeShippingThreshold
	c.Add(p, "", "", 1)

	assert.Equal(t, FlatShippingFee, c.Totals().Shipping)
}

func TestTotals_ItemCountMatchesQuantitySum(t *testing.T) {
	var c Cart

	other := shirt()
	other.ID = "p2"

	c.Add(shirt(), "red", "M", 2)
	c.Add(other, "blue", "S", 5)
	c.UpdateQuantity("p2-blue-S", 3)

	var want int
	for _, it := range c.Items {
		want += it.Quantity
	}
	assert.Equal(t, want, c.Totals().ItemCount)
}

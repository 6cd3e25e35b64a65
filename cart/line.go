package cart

import (
    "fmt"

    "pawmart-storefront-api/models"
)

// Line is one distinct purchasable item in the cart. The ID is unique
// per line and may encode product plus variant (e.g. "42:red").
// While a line exists its quantity satisfies 1 <= quantity <= MaxQuantity.
type Line struct {
    ID           string  `json:"id"`
    ProductID    int     `json:"productId,omitempty"`
    Name         string  `json:"name"`
    UnitPrice    float64 `json:"unitPrice"`
    ImageURL     string  `json:"imageUrl"`
    Quantity     int     `json:"quantity"`
    MaxQuantity  int     `json:"maxQuantity"`
    Weight       string  `json:"weight,omitempty"`
    VariantColor string  `json:"variantColor,omitempty"`
}

// Coupon is an absolute-currency discount. At most one is active at a
// time; applying a new one replaces the previous.
type Coupon struct {
    Code           string  `json:"code"`
    DiscountAmount float64 `json:"discountAmount"`
}

// Candidate is the canonical shape an add request must be normalized
// to before it reaches the reducer. Call sites never hand the store a
// raw catalog record.
type Candidate struct {
    ID           string
    ProductID    int
    Name         string
    UnitPrice    float64
    ImageURL     string
    MaxQuantity  int
    Weight       string
    VariantColor string
}

// CandidateFromProduct maps a catalog record to a cart candidate.
// Variant color is folded into the line ID so each variant gets its
// own line.
func CandidateFromProduct(p models.Product, variantColor string) Candidate {
    id := fmt.Sprintf("%d", p.ID)
    if variantColor != "" {
        id = fmt.Sprintf("%d:%s", p.ID, variantColor)
    }
    return Candidate{
        ID:           id,
        ProductID:    p.ID,
        Name:         p.Name,
        UnitPrice:    p.Price,
        ImageURL:     p.Image,
        MaxQuantity:  p.Stock,
        Weight:       p.Weight,
        VariantColor: variantColor,
    }
}

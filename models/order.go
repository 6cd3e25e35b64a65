package models

// CheckoutRequest is the payload of POST /api/checkout. Payment is
// delegated to the external gateway after the order row exists.
type CheckoutRequest struct {
    Name     string `json:"name"`
    Email    string `json:"email"`
    Phone    string `json:"phone"`
    Address  string `json:"address"`
    District string `json:"district"`
    Tier     string `json:"tier"`
}

type Order struct {
    ID          string  `json:"order_id"`
    Name        string  `json:"name"`
    Email       string  `json:"email"`
    Phone       string  `json:"phone"`
    Address     string  `json:"address"`
    District    string  `json:"district"`
    ItemsJSON   string  `json:"-"`
    CouponCode  string  `json:"coupon_code,omitempty"`
    Subtotal    float64 `json:"subtotal"`
    Discount    float64 `json:"discount"`
    DeliveryFee float64 `json:"delivery_fee"`
    Total       float64 `json:"total"`
    Status      string  `json:"status"`
}

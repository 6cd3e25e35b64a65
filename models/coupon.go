package models

// CouponRecord is a coupon row from the catalog database. The cart
// store itself never validates codes; the cart handler looks the code
// up here first and only forwards valid ones.
type CouponRecord struct {
    Code           string  `json:"code" db:"code"`
    DiscountAmount float64 `json:"discount_amount" db:"discount_amount"`
    Active         bool    `json:"active" db:"active"`
}

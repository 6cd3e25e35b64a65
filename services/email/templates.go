package email

import "fmt"

// OrderConfirmationBody renders the HTML body for the post-checkout
// confirmation mail. Payment happens at the external gateway, so the
// mail only confirms that the order was received.
func OrderConfirmationBody(name, orderID string, total float64) string {
    return fmt.Sprintf(`
        <h2>Thanks for your order, %s!</h2>
        <p>We have received your order <strong>%s</strong>.</p>
        <p>Order total: <strong>%.2f</strong></p>
        <p>You will get another email once your payment is confirmed
        and the order ships.</p>
    `, name, orderID, total)
}

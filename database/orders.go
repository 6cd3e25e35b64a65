package database

import (
    "context"
    "fmt"
    "log"
    "time"

    "pawmart-storefront-api/models"
)

func (c *Connection) CreateOrder(o models.Order) error {
    if err := c.ensureConnection(); err != nil {
        return fmt.Errorf("database connection check failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    _, err := c.db.ExecContext(ctx, `
        INSERT INTO orders
        (id, name, email, phone, address, district, items_json, coupon_code,
         subtotal, discount, delivery_fee, total, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `, o.ID, o.Name, o.Email, o.Phone, o.Address, o.District, o.ItemsJSON,
        o.CouponCode, o.Subtotal, o.Discount, o.DeliveryFee, o.Total, o.Status)

    if err != nil {
        return fmt.Errorf("error creating order: %v", err)
    }

    log.Printf("Created order %s for %s (total %.2f)", o.ID, o.Email, o.Total)
    return nil
}

// MarkOrderNotified records that the confirmation email went out; the
// worker calls this after a successful send.
func (c *Connection) MarkOrderNotified(orderID string) error {
    if err := c.ensureConnection(); err != nil {
        return fmt.Errorf("database connection check failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    _, err := c.db.ExecContext(ctx, `
        UPDATE orders SET notified_at = NOW() WHERE id = ?
    `, orderID)

    if err != nil {
        return fmt.Errorf("error marking order %s notified: %v", orderID, err)
    }
    return nil
}

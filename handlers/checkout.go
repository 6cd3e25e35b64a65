package handlers

import (
    "context"
    "encoding/json"
    "log"
    "net/http"

    "github.com/google/uuid"

    "pawmart-storefront-api/models"
    "pawmart-storefront-api/queue"
    "pawmart-storefront-api/utils"
)

// OrderWriter is the slice of the database checkout needs.
type OrderWriter interface {
    CreateOrder(o models.Order) error
}

// JobEnqueuer is satisfied by queue.Queue.
type JobEnqueuer interface {
    Enqueue(ctx context.Context, jobType queue.JobType, data map[string]interface{}) error
}

type CheckoutHandler struct {
    orders OrderWriter
    queue  JobEnqueuer
    carts  *CartHandler
}

func NewCheckoutHandler(orders OrderWriter, q JobEnqueuer, carts *CartHandler) *CheckoutHandler {
    return &CheckoutHandler{orders: orders, queue: q, carts: carts}
}

// Checkout snapshots the visitor's cart into an order row, hands the
// confirmation mail to the background worker and clears the cart.
// Payment itself happens at the external gateway against the order id.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
    var req models.CheckoutRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if req.Name == "" || req.Email == "" || req.Address == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Name, email and address are required")
        return
    }

    s, err := h.carts.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }

    if s.ItemCount() == 0 {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Cart is empty")
        return
    }

    itemsJSON, err := json.Marshal(s.Lines())
    if err != nil {
        log.Printf("Error serializing cart lines: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create order")
        return
    }

    subtotal := s.Subtotal()
    finalTotal := s.FinalTotal()
    deliveryFee := s.DeliveryFee(req.Tier, req.District)

    order := models.Order{
        ID:          uuid.NewString(),
        Name:        req.Name,
        Email:       req.Email,
        Phone:       req.Phone,
        Address:     req.Address,
        District:    req.District,
        ItemsJSON:   string(itemsJSON),
        Subtotal:    utils.Round(subtotal),
        Discount:    utils.Round(subtotal - finalTotal),
        DeliveryFee: deliveryFee,
        Total:       utils.Round(finalTotal + deliveryFee),
        Status:      "pending_payment",
    }
    if coupon := s.AppliedCoupon(); coupon != nil {
        order.CouponCode = coupon.Code
    }

    if err := h.orders.CreateOrder(order); err != nil {
        log.Printf("Error creating order: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create order")
        return
    }

    if err := h.queue.Enqueue(r.Context(), queue.JobTypeOrderConfirmation, map[string]interface{}{
        "order_id": order.ID,
        "email":    order.Email,
        "name":     order.Name,
        "total":    order.Total,
    }); err != nil {
        // The order exists; the confirmation mail just has to wait.
        log.Printf("Error enqueuing confirmation for order %s: %v", order.ID, err)
    }

    s.Clear()

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(order)
}

package handlers

import (
    "encoding/json"
    "log"
    "net/http"

    "github.com/google/uuid"
    "github.com/gorilla/mux"
    "github.com/gorilla/sessions"

    "pawmart-storefront-api/cart"
    "pawmart-storefront-api/config"
    "pawmart-storefront-api/models"
    "pawmart-storefront-api/storage"
    "pawmart-storefront-api/utils"
)

const cartSessionName = "cart-session"

// Catalog is the slice of the database the cart handler needs: product
// lookups for add requests and coupon lookups for apply requests.
type Catalog interface {
    GetProductByID(id int) (*models.Product, error)
    GetCouponByCode(code string) (*models.CouponRecord, error)
}

type CartHandler struct {
    catalog  Catalog
    kv       storage.KV
    sessions *sessions.CookieStore
    tariff   cart.Tariff
}

func NewCartHandler(catalog Catalog, kv storage.KV, cfg *config.Config) *CartHandler {
    store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
    store.Options = &sessions.Options{
        Path:     "/",
        Domain:   cfg.Session.Domain,
        MaxAge:   cfg.Session.MaxAge,
        Secure:   true,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
    return &CartHandler{catalog: catalog, kv: kv, sessions: store, tariff: cfg.Delivery}
}

// cartView is the response shape every cart endpoint returns: the line
// list plus the derived totals.
type cartView struct {
    Items       []cart.Line  `json:"items"`
    ItemCount   int          `json:"item_count"`
    Subtotal    float64      `json:"subtotal"`
    Coupon      *cart.Coupon `json:"applied_coupon,omitempty"`
    FinalTotal  float64      `json:"final_total"`
    TotalWeight float64      `json:"total_weight"`
}

func viewOf(s *cart.Store) cartView {
    return cartView{
        Items:       s.Lines(),
        ItemCount:   s.ItemCount(),
        Subtotal:    utils.Round(s.Subtotal()),
        Coupon:      s.AppliedCoupon(),
        FinalTotal:  utils.Round(s.FinalTotal()),
        TotalWeight: s.TotalWeight(),
    }
}

// openCart resolves the visitor's cart key from the session cookie,
// minting one on first contact, and rehydrates the store from Redis.
func (h *CartHandler) openCart(w http.ResponseWriter, r *http.Request) (*cart.Store, error) {
    session, err := h.sessions.Get(r, cartSessionName)
    if err != nil {
        // A stale cookie signed with an old secret decodes to a fresh
        // session; only a save failure is fatal.
        log.Printf("Error decoding cart session, starting fresh: %v", err)
    }

    key, ok := session.Values["cart_key"].(string)
    if !ok || key == "" {
        key = "cart:" + uuid.NewString()
        session.Values["cart_key"] = key
        if err := session.Save(r, w); err != nil {
            return nil, err
        }
    }

    return cart.Open(r.Context(), h.kv, key, h.tariff), nil
}

func (h *CartHandler) respond(w http.ResponseWriter, status int, s *cart.Store) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(viewOf(s))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
    s, err := h.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }
    h.respond(w, http.StatusOK, s)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
    var req struct {
        ProductID    int    `json:"product_id"`
        VariantColor string `json:"variant_color"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("Error decoding request body: %v", err)
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    product, err := h.catalog.GetProductByID(req.ProductID)
    if err != nil {
        log.Printf("Product not found: %v", err)
        utils.SendErrorResponse(w, http.StatusNotFound, "Product not found")
        return
    }

    // Out-of-stock is rejected here at the boundary; the store itself
    // treats a zero-stock add as a silent no-op.
    if product.Stock < 1 {
        utils.SendErrorResponse(w, http.StatusConflict, "Product is out of stock")
        return
    }

    s, err := h.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }

    s.Add(cart.CandidateFromProduct(*product, req.VariantColor))
    h.respond(w, http.StatusCreated, s)
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
    lineID := mux.Vars(r)["id"]

    var req struct {
        Quantity int `json:"quantity"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    s, err := h.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }

    s.SetQuantity(lineID, req.Quantity)
    h.respond(w, http.StatusOK, s)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
    lineID := mux.Vars(r)["id"]

    s, err := h.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }

    s.Remove(lineID)
    h.respond(w, http.StatusOK, s)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
    s, err := h.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }

    s.Clear()
    h.respond(w, http.StatusOK, s)
}

// ApplyCoupon validates the code against the catalog before it ever
// reaches the cart store; the store applies whatever it is handed.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
    var req struct {
        Code string `json:"code"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Coupon code is required")
        return
    }

    record, err := h.catalog.GetCouponByCode(req.Code)
    if err != nil {
        log.Printf("Coupon lookup failed: %v", err)
        utils.SendErrorResponse(w, http.StatusNotFound, "Coupon not found")
        return
    }
    if !record.Active {
        utils.SendErrorResponse(w, http.StatusGone, "Coupon is no longer active")
        return
    }

    s, err := h.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }

    s.ApplyCoupon(cart.Coupon{Code: record.Code, DiscountAmount: record.DiscountAmount})
    h.respond(w, http.StatusOK, s)
}

func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
    s, err := h.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }

    s.RemoveCoupon()
    h.respond(w, http.StatusOK, s)
}

// DeliveryFee quotes shipping for the current cart without mutating it.
func (h *CartHandler) DeliveryFee(w http.ResponseWriter, r *http.Request) {
    s, err := h.openCart(w, r)
    if err != nil {
        log.Printf("Error opening cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to open cart")
        return
    }

    tier := r.URL.Query().Get("tier")
    district := r.URL.Query().Get("district")
    fee := s.DeliveryFee(tier, district)

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "delivery_fee": fee,
        "total_weight": s.TotalWeight(),
        "grand_total":  utils.Round(s.FinalTotal() + fee),
    })
}

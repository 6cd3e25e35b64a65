package cart

import (
    "context"
    "encoding/json"
    "log"
    "time"

    "pawmart-storefront-api/storage"
)

const persistTimeout = 5 * time.Second

// snapshot is the persisted wire shape. An earlier release stored the
// bare line array with no coupon wrapper; Open still accepts that.
type snapshot struct {
    Lines         []Line  `json:"lines"`
    AppliedCoupon *Coupon `json:"appliedCoupon"`
}

// Store owns one visitor's cart: the ordered line list, the applied
// coupon and the derived totals. Every mutation goes through its
// methods, recomputes the totals and persists the new state under the
// store's key. Mutations are dispatched sequentially by the caller;
// the store itself holds no lock.
type Store struct {
    kv     storage.KV
    key    string
    tariff Tariff

    lines     []Line
    coupon    *Coupon
    subtotal  float64
    itemCount int
}

// Open rehydrates a cart from the KV under key. An absent key means a
// first visit; corrupt or unreadable data degrades to an empty cart
// and is never surfaced as an error.
func Open(ctx context.Context, kv storage.KV, key string, tariff Tariff) *Store {
    s := &Store{kv: kv, key: key, tariff: tariff}

    raw, err := kv.Get(ctx, key)
    if err != nil {
        if err != storage.ErrNotFound {
            log.Printf("cart: failed to load %s, starting empty: %v", key, err)
        }
        return s
    }

    var snap snapshot
    if err := json.Unmarshal([]byte(raw), &snap); err == nil {
        s.lines = snap.Lines
        s.coupon = snap.AppliedCoupon
    } else {
        // Legacy format: the line array with no wrapper.
        var lines []Line
        if err := json.Unmarshal([]byte(raw), &lines); err == nil {
            s.lines = lines
        } else {
            log.Printf("cart: corrupt state under %s, starting empty: %v", key, err)
        }
    }

    s.recompute()
    return s
}

// Add merges a candidate into the cart: an existing line's quantity is
// incremented by 1 clamped to its stock ceiling, a new line starts at
// quantity 1. A candidate with zero stock is a no-op — no line is
// created. Always succeeds; callers wanting out-of-stock UX check
// stock before calling.
func (s *Store) Add(c Candidate) {
    for i := range s.lines {
        if s.lines[i].ID == c.ID {
            if s.lines[i].Quantity < s.lines[i].MaxQuantity {
                s.lines[i].Quantity++
            }
            s.commit()
            return
        }
    }

    if c.MaxQuantity < 1 {
        return
    }

    s.lines = append(s.lines, Line{
        ID:           c.ID,
        ProductID:    c.ProductID,
        Name:         c.Name,
        UnitPrice:    c.UnitPrice,
        ImageURL:     c.ImageURL,
        Quantity:     1,
        MaxQuantity:  c.MaxQuantity,
        Weight:       c.Weight,
        VariantColor: c.VariantColor,
    })
    s.commit()
}

// Remove deletes the line with the given id. Removing an absent line
// is a no-op, not an error.
func (s *Store) Remove(id string) {
    for i := range s.lines {
        if s.lines[i].ID == id {
            s.lines = append(s.lines[:i], s.lines[i+1:]...)
            break
        }
    }
    s.commit()
}

// SetQuantity sets a line's quantity, clamped to its stock ceiling.
// A quantity of zero or less removes the line. Unknown ids are a
// no-op.
func (s *Store) SetQuantity(id string, quantity int) {
    if quantity <= 0 {
        s.Remove(id)
        return
    }

    for i := range s.lines {
        if s.lines[i].ID == id {
            q := quantity
            if q > s.lines[i].MaxQuantity {
                q = s.lines[i].MaxQuantity
            }
            if q < 1 {
                s.lines = append(s.lines[:i], s.lines[i+1:]...)
            } else {
                s.lines[i].Quantity = q
            }
            s.commit()
            return
        }
    }
}

// Clear empties the cart and drops the applied coupon.
func (s *Store) Clear() {
    s.lines = nil
    s.coupon = nil
    s.commit()
}

// Quantity returns the current quantity for id, or 0 if absent.
func (s *Store) Quantity(id string) int {
    for i := range s.lines {
        if s.lines[i].ID == id {
            return s.lines[i].Quantity
        }
    }
    return 0
}

// ApplyCoupon replaces any active coupon. The store does not validate
// codes; the caller is expected to have checked the coupon already.
func (s *Store) ApplyCoupon(c Coupon) {
    s.coupon = &c
    s.commit()
}

func (s *Store) RemoveCoupon() {
    s.coupon = nil
    s.commit()
}

// FinalTotal is the subtotal less the coupon discount, floored at
// zero. A coupon can never produce a negative total.
func (s *Store) FinalTotal() float64 {
    if s.coupon == nil {
        return s.subtotal
    }
    total := s.subtotal - s.coupon.DiscountAmount
    if total < 0 {
        return 0
    }
    return total
}

func (s *Store) Subtotal() float64 { return s.subtotal }

func (s *Store) ItemCount() int { return s.itemCount }

// Lines returns a copy of the line list in insertion order.
func (s *Store) Lines() []Line {
    out := make([]Line, len(s.lines))
    copy(out, s.lines)
    return out
}

// AppliedCoupon returns the active coupon, or nil.
func (s *Store) AppliedCoupon() *Coupon {
    if s.coupon == nil {
        return nil
    }
    c := *s.coupon
    return &c
}

// commit recomputes the derived totals and persists. The totals are
// never mutated independently of the line list.
func (s *Store) commit() {
    s.recompute()
    s.persist()
}

func (s *Store) recompute() {
    var subtotal float64
    var count int
    for _, line := range s.lines {
        subtotal += line.UnitPrice * float64(line.Quantity)
        count += line.Quantity
    }
    s.subtotal = subtotal
    s.itemCount = count
}

// persist is best-effort: a storage failure is logged and swallowed,
// and the in-memory state stays authoritative for the session.
func (s *Store) persist() {
    snap := snapshot{Lines: s.lines, AppliedCoupon: s.coupon}
    if snap.Lines == nil {
        snap.Lines = []Line{}
    }

    raw, err := json.Marshal(snap)
    if err != nil {
        log.Printf("cart: failed to serialize state for %s: %v", s.key, err)
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
    defer cancel()

    if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
        log.Printf("cart: failed to persist %s: %v", s.key, err)
    }
}

package database

import (
    "context"
    "database/sql"
    "fmt"
    "strings"
    "time"

    "pawmart-storefront-api/models"
)

// ProductFilter narrows GetProducts. Search is a case-insensitive
// substring match on the product name.
type ProductFilter struct {
    Search   string
    Category string
    Brand    string
}

func (c *Connection) GetProducts(filter ProductFilter) ([]models.Product, error) {
    if err := c.ensureConnection(); err != nil {
        return nil, fmt.Errorf("database connection check failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    query := `
        SELECT id, name, description, price, original_price, image, stock,
               category, brand, COALESCE(weight, ''), COALESCE(tags, '')
        FROM products
        WHERE deleted_at IS NULL
    `
    args := []interface{}{}

    if filter.Search != "" {
        query += " AND LOWER(name) LIKE ?"
        args = append(args, "%"+strings.ToLower(filter.Search)+"%")
    }
    if filter.Category != "" {
        query += " AND category = ?"
        args = append(args, filter.Category)
    }
    if filter.Brand != "" {
        query += " AND brand = ?"
        args = append(args, filter.Brand)
    }
    query += " ORDER BY id"

    rows, err := c.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, fmt.Errorf("error querying products: %v", err)
    }
    defer rows.Close()

    var products []models.Product
    for rows.Next() {
        p, err := scanProduct(rows)
        if err != nil {
            return nil, err
        }
        products = append(products, p)
    }
    return products, rows.Err()
}

func (c *Connection) GetProductByID(id int) (*models.Product, error) {
    if err := c.ensureConnection(); err != nil {
        return nil, fmt.Errorf("database connection check failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    row := c.db.QueryRowContext(ctx, `
        SELECT id, name, description, price, original_price, image, stock,
               category, brand, COALESCE(weight, ''), COALESCE(tags, '')
        FROM products
        WHERE id = ? AND deleted_at IS NULL
    `, id)

    p, err := scanProduct(row)
    if err == sql.ErrNoRows {
        return nil, fmt.Errorf("product %d not found", id)
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}

type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (models.Product, error) {
    var p models.Product
    var originalPrice sql.NullFloat64
    var tags string

    err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &originalPrice,
        &p.Image, &p.Stock, &p.Category, &p.Brand, &p.Weight, &tags)
    if err != nil {
        return p, err
    }

    if originalPrice.Valid {
        p.OriginalPrice = &originalPrice.Float64
    }
    if tags != "" {
        p.Tags = strings.Split(tags, ",")
    }
    return p, nil
}

func (c *Connection) GetBrands() ([]models.Brand, error) {
    if err := c.ensureConnection(); err != nil {
        return nil, fmt.Errorf("database connection check failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    rows, err := c.db.QueryContext(ctx, `
        SELECT id, name, COALESCE(logo, '')
        FROM brands
        ORDER BY name
    `)
    if err != nil {
        return nil, fmt.Errorf("error querying brands: %v", err)
    }
    defer rows.Close()

    var brands []models.Brand
    for rows.Next() {
        var b models.Brand
        if err := rows.Scan(&b.ID, &b.Name, &b.Logo); err != nil {
            return nil, err
        }
        brands = append(brands, b)
    }
    return brands, rows.Err()
}

// GetActiveBanners returns enabled banners whose display window covers
// the current time, in display position order.
func (c *Connection) GetActiveBanners() ([]models.Banner, error) {
    if err := c.ensureConnection(); err != nil {
        return nil, fmt.Errorf("database connection check failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    rows, err := c.db.QueryContext(ctx, `
        SELECT id, title, image, COALESCE(link_url, ''), position
        FROM banners
        WHERE enabled = 1
          AND (starts_at IS NULL OR starts_at <= NOW())
          AND (ends_at IS NULL OR ends_at >= NOW())
        ORDER BY position
    `)
    if err != nil {
        return nil, fmt.Errorf("error querying banners: %v", err)
    }
    defer rows.Close()

    var banners []models.Banner
    for rows.Next() {
        var b models.Banner
        if err := rows.Scan(&b.ID, &b.Title, &b.Image, &b.LinkURL, &b.Position); err != nil {
            return nil, err
        }
        banners = append(banners, b)
    }
    return banners, rows.Err()
}

func (c *Connection) GetCouponByCode(code string) (*models.CouponRecord, error) {
    if err := c.ensureConnection(); err != nil {
        return nil, fmt.Errorf("database connection check failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    var coupon models.CouponRecord
    err := c.db.QueryRowContext(ctx, `
        SELECT code, discount_amount, active
        FROM coupons
        WHERE code = ?
    `, code).Scan(&coupon.Code, &coupon.DiscountAmount, &coupon.Active)

    if err == sql.ErrNoRows {
        return nil, fmt.Errorf("coupon %s not found", code)
    }
    if err != nil {
        return nil, fmt.Errorf("error querying coupon: %v", err)
    }
    return &coupon, nil
}

package models

// Product is a catalog record as served by /api/products. The cart
// only consumes id, name, price, image, stock and weight from it.
type Product struct {
    ID            int      `json:"id" db:"id"`
    Name          string   `json:"name" db:"name"`
    Description   string   `json:"description" db:"description"`
    Price         float64  `json:"price" db:"price"`
    OriginalPrice *float64 `json:"original_price,omitempty" db:"original_price"`
    Image         string   `json:"image" db:"image"`
    Stock         int      `json:"stock" db:"stock"`
    Category      string   `json:"category" db:"category"`
    Brand         string   `json:"brand" db:"brand"`
    Weight        string   `json:"weight,omitempty" db:"weight"`
    Tags          []string `json:"tags"`
}

type Brand struct {
    ID    int    `json:"id" db:"id"`
    Name  string `json:"name" db:"name"`
    Logo  string `json:"logo" db:"logo"`
}

// Banner is a promotional slide; /api/banners/active returns only the
// rows whose display window covers the current time.
type Banner struct {
    ID       int    `json:"id" db:"id"`
    Title    string `json:"title" db:"title"`
    Image    string `json:"image" db:"image"`
    LinkURL  string `json:"link_url" db:"link_url"`
    Position int    `json:"position" db:"position"`
}

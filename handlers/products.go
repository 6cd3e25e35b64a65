package handlers

import (
    "encoding/json"
    "log"
    "net/http"
    "strconv"

    "github.com/gorilla/mux"

    "pawmart-storefront-api/database"
    "pawmart-storefront-api/models"
    "pawmart-storefront-api/utils"
)

// CatalogReader is the read side of the catalog served to the
// storefront: product listings, brands and the active banner set.
type CatalogReader interface {
    GetProducts(filter database.ProductFilter) ([]models.Product, error)
    GetProductByID(id int) (*models.Product, error)
    GetBrands() ([]models.Brand, error)
    GetActiveBanners() ([]models.Banner, error)
}

type ProductHandler struct {
    catalog CatalogReader
}

func NewProductHandler(catalog CatalogReader) *ProductHandler {
    return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
    filter := database.ProductFilter{
        Search:   r.URL.Query().Get("search"),
        Category: r.URL.Query().Get("category"),
        Brand:    r.URL.Query().Get("brand"),
    }

    products, err := h.catalog.GetProducts(filter)
    if err != nil {
        log.Printf("Error getting products: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load products")
        return
    }

    if products == nil {
        products = []models.Product{}
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(mux.Vars(r)["id"])
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid product id")
        return
    }

    product, err := h.catalog.GetProductByID(id)
    if err != nil {
        log.Printf("Product not found: %v", err)
        utils.SendErrorResponse(w, http.StatusNotFound, "Product not found")
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) GetBrands(w http.ResponseWriter, r *http.Request) {
    brands, err := h.catalog.GetBrands()
    if err != nil {
        log.Printf("Error getting brands: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load brands")
        return
    }

    if brands == nil {
        brands = []models.Brand{}
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(brands)
}

func (h *ProductHandler) GetActiveBanners(w http.ResponseWriter, r *http.Request) {
    banners, err := h.catalog.GetActiveBanners()
    if err != nil {
        log.Printf("Error getting banners: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load banners")
        return
    }

    if banners == nil {
        banners = []models.Banner{}
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(banners)
}

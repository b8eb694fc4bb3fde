// Catalog HTTP handlers.
//
// Storefront reads:
//   - GET /products                  (all, or ?q= / ?category= / ?collection= / ?featured=1)
//   - GET /products/{slug}           (single product with approved reviews)
//   - GET /collections               (merchandising collections)
//
// Back office:
//   - POST   /admin/products
//   - PUT    /admin/products/{id}
//   - DELETE /admin/products/{id}
//   - POST   /admin/collections
//   - PUT    /admin/collections/{id}
//   - DELETE /admin/collections/{id}
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/search"
	"github.com/avelineco/go-shop-backend/internal/sysutil"
)

// ProductRequest is the create/update payload for a catalog item. Slug and
// timestamps are derived server-side and cannot be supplied.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required" example:"Linen Wrap Dress"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"required" example:"12900"`
	SalePrice   int64    `json:"salePrice"`
	Currency    string   `json:"currency" example:"USD"`
	Category    string   `json:"category" example:"dresses"`
	Collection  string   `json:"collectionId"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	Featured    bool     `json:"featured"`
}

// ProductDetail is a product plus its published reviews and rating.
type ProductDetail struct {
	domain.Product
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
}

// CollectionRequest is the create/update payload for a collection.
type CollectionRequest struct {
	Name        string `json:"name" binding:"required" example:"Summer Edit"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Order       int    `json:"order"`
}

func (r ProductRequest) apply(p *domain.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.SalePrice = r.SalePrice
	if r.Currency != "" {
		p.Currency = r.Currency
	}
	p.Category = r.Category
	p.Collection = r.Collection
	p.Sizes = r.Sizes
	p.Colors = r.Colors
	p.Images = r.Images
	p.Stock = r.Stock
	p.Featured = r.Featured
}

// ListProducts godoc
// @ID          listProducts
// @Summary     List products
// @Description Returns the catalog, optionally filtered by a free-text query, category, collection, or featured flag.
// @Tags        Catalog
// @Produce     json
//
// @Param       q           query  string  false "Free-text search over name, description, and category"
// @Param       category    query  string  false "Filter by category"
// @Param       collection  query  string  false "Filter by collection id"
// @Param       featured    query  string  false "Only featured products when truthy"
//
// @Success     200  {array}   domain.Product
// @Router      /products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	switch {
	case strings.TrimSpace(c.Query("q")) != "":
		ok(c, http.StatusOK, h.searchProducts(c.Query("q")))
	case c.Query("category") != "":
		ok(c, http.StatusOK, h.deps.Products.ByCategory(c.Query("category")))
	case c.Query("collection") != "":
		ok(c, http.StatusOK, h.deps.Products.ByCollection(c.Query("collection")))
	case sysutil.IsTruthy(c.Query("featured")):
		ok(c, http.StatusOK, h.deps.Products.Featured())
	default:
		ok(c, http.StatusOK, h.deps.Products.List())
	}
}

// searchProducts ranks the live catalog against a free-text query. The index
// is rebuilt per request; the catalog is small and fully in memory.
func (h *Handlers) searchProducts(q string) []domain.Product {
	all := h.deps.Products.List()
	hits := search.NewProductIndex(all).TopK(q, 50)
	byID := make(map[string]domain.Product, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	out := make([]domain.Product, 0, len(hits))
	for _, hit := range hits {
		if p, found := byID[hit.ProductID]; found {
			out = append(out, p)
		}
	}
	return out
}

// GetProduct godoc
// @ID          getProduct
// @Summary     Get a product by slug
// @Description Returns a product with its approved reviews and average rating.
// @Tags        Catalog
// @Produce     json
//
// @Param       slug  path  string  true  "Product slug"  example(linen-wrap-dress)
//
// @Success     200  {object}  handlers.ProductDetail
// @Failure     404  {object}  handlers.ErrorResponse  "Product not found"
// @Router      /products/{slug} [get]
func (h *Handlers) GetProduct(c *gin.Context) {
	prod, err := h.deps.Products.BySlug(c.Param("slug"))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
		return
	}
	ok(c, http.StatusOK, ProductDetail{
		Product:       prod,
		Reviews:       h.deps.Reviews.ApprovedForProduct(prod.ID),
		AverageRating: h.deps.Reviews.AverageRating(prod.ID),
	})
}

// ListCollections godoc
// @ID          listCollections
// @Summary     List collections
// @Tags        Catalog
// @Produce     json
// @Success     200  {array}  domain.Collection
// @Router      /collections [get]
func (h *Handlers) ListCollections(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Collections.List())
}

// CreateProduct godoc
// @ID          createProduct
// @Summary     Create a product
// @Tags        Admin/Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.ProductRequest  true  "Product payload"
//
// @Success     201  {object}  domain.Product
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/products [post]
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid product payload")
		return
	}
	var p domain.Product
	req.apply(&p)
	created := h.deps.Products.Add(c.Request.Context(), p)
	h.audit(c, "product.create", created.ID, created.Name)
	ok(c, http.StatusCreated, created)
}

// UpdateProduct godoc
// @ID          updateProduct
// @Summary     Update a product
// @Description Applies the payload and recomputes the slug from the (possibly renamed) product.
// @Tags        Admin/Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                   true  "Product ID"
// @Param       body  body  handlers.ProductRequest  true  "Product payload"
//
// @Success     200  {object}  domain.Product
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Product not found"
// @Router      /admin/products/{id} [put]
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid product payload")
		return
	}
	updated, err := h.deps.Products.Update(c.Request.Context(), c.Param("id"), req.apply)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
		return
	}
	h.audit(c, "product.update", updated.ID, updated.Name)
	ok(c, http.StatusOK, updated)
}

// DeleteProduct godoc
// @ID          deleteProduct
// @Summary     Delete a product
// @Tags        Admin/Catalog
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Product ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Product not found"
// @Router      /admin/products/{id} [delete]
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Products.Remove(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
		return
	}
	h.audit(c, "product.delete", id, "")
	noContent(c)
}

// CreateCollection godoc
// @ID          createCollection
// @Summary     Create a collection
// @Tags        Admin/Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CollectionRequest  true  "Collection payload"
//
// @Success     201  {object}  domain.Collection
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/collections [post]
func (h *Handlers) CreateCollection(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid collection payload")
		return
	}
	created := h.deps.Collections.Add(c.Request.Context(), domain.Collection{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
		Order:       req.Order,
	})
	h.audit(c, "collection.create", created.ID, created.Name)
	ok(c, http.StatusCreated, created)
}

// UpdateCollection godoc
// @ID          updateCollection
// @Summary     Update a collection
// @Tags        Admin/Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                      true  "Collection ID"
// @Param       body  body  handlers.CollectionRequest  true  "Collection payload"
//
// @Success     200  {object}  domain.Collection
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Collection not found"
// @Router      /admin/collections/{id} [put]
func (h *Handlers) UpdateCollection(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid collection payload")
		return
	}
	updated, err := h.deps.Collections.Update(c.Request.Context(), c.Param("id"), func(col *domain.Collection) {
		col.Name = strings.TrimSpace(req.Name)
		col.Description = req.Description
		col.Image = req.Image
		col.Order = req.Order
	})
	if errors.Is(err, containers.ErrNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "collection not found")
		return
	}
	h.audit(c, "collection.update", updated.ID, updated.Name)
	ok(c, http.StatusOK, updated)
}

// DeleteCollection godoc
// @ID          deleteCollection
// @Summary     Delete a collection
// @Tags        Admin/Catalog
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Collection ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Collection not found"
// @Router      /admin/collections/{id} [delete]
func (h *Handlers) DeleteCollection(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Collections.Remove(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "collection not found")
		return
	}
	h.audit(c, "collection.delete", id, "")
	noContent(c)
}

// Cart HTTP handlers.
//
// Carts are keyed by the pseudonymous X-Customer-ID header (see the identity
// middleware); requests without it operate on the shared "guest" cart. Totals
// are derived on every read and never stored.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/cart"
	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/http/middleware"
)

// CartResponse is the cart with its derived pricing snapshot.
type CartResponse struct {
	Items  []domain.CartLine `json:"items"`
	Totals cart.Totals       `json:"totals"`
}

// AddCartItemRequest adds (or increments) a cart line.
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required" example:"prod_1700000000000"`
	Size      string `json:"size" example:"M"`
	Color     string `json:"color" example:"Sand"`
	Quantity  int    `json:"quantity" example:"1"`
}

// UpdateCartItemRequest sets a line's absolute quantity. Zero or below removes
// the line.
type UpdateCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (h *Handlers) cartResponse(c *gin.Context, customerID string) CartResponse {
	ctx := c.Request.Context()
	items := h.deps.Carts.Lines(ctx, customerID)
	if items == nil {
		items = []domain.CartLine{}
	}
	return CartResponse{Items: items, Totals: h.deps.Carts.Totals(ctx, customerID)}
}

// GetCart godoc
// @ID          getCart
// @Summary     Get the cart
// @Description Returns the caller's cart lines and derived totals.
// @Tags        Cart
// @Produce     json
//
// @Param       X-Customer-ID  header  string  false "Customer identity"  example(cust_8c1f)
//
// @Success     200  {object}  handlers.CartResponse
// @Router      /cart [get]
func (h *Handlers) GetCart(c *gin.Context) {
	ok(c, http.StatusOK, h.cartResponse(c, middleware.CustomerFrom(c)))
}

// AddCartItem godoc
// @ID          addCartItem
// @Summary     Add an item to the cart
// @Description Adds a line, or increments the quantity of the line with the same (product, size, color) key. The product is snapshotted at add time.
// @Tags        Cart
// @Accept      json
// @Produce     json
//
// @Param       X-Customer-ID  header  string                        false "Customer identity"
// @Param       body           body    handlers.AddCartItemRequest  true  "Item to add"
//
// @Success     200  {object}  handlers.CartResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Product not found"
// @Router      /cart/items [post]
func (h *Handlers) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "productId required")
		return
	}
	prod, err := h.deps.Products.Get(req.ProductID)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
		return
	}
	customerID := middleware.CustomerFrom(c)
	h.deps.Carts.AddItem(c.Request.Context(), customerID, prod, req.Size, req.Color, req.Quantity)
	ok(c, http.StatusOK, h.cartResponse(c, customerID))
}

// UpdateCartItem godoc
// @ID          updateCartItem
// @Summary     Set a cart line's quantity
// @Description Sets (not increments) the matching line's quantity. Zero or below removes the line; a missing line is a no-op.
// @Tags        Cart
// @Accept      json
// @Produce     json
//
// @Param       X-Customer-ID  header  string                           false "Customer identity"
// @Param       body           body    handlers.UpdateCartItemRequest  true  "Line and new quantity"
//
// @Success     200  {object}  handlers.CartResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /cart/items [put]
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "productId required")
		return
	}
	customerID := middleware.CustomerFrom(c)
	h.deps.Carts.UpdateQuantity(c.Request.Context(), customerID, req.ProductID, req.Size, req.Color, req.Quantity)
	ok(c, http.StatusOK, h.cartResponse(c, customerID))
}

// RemoveCartItem godoc
// @ID          removeCartItem
// @Summary     Remove a cart line
// @Tags        Cart
// @Produce     json
//
// @Param       X-Customer-ID  header  string  false "Customer identity"
// @Param       productId      query   string  true  "Product ID"
// @Param       size           query   string  false "Selected size"
// @Param       color          query   string  false "Selected color"
//
// @Success     200  {object}  handlers.CartResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /cart/items [delete]
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "productId required")
		return
	}
	customerID := middleware.CustomerFrom(c)
	h.deps.Carts.RemoveItem(c.Request.Context(), customerID, productID, c.Query("size"), c.Query("color"))
	ok(c, http.StatusOK, h.cartResponse(c, customerID))
}

// ClearCart godoc
// @ID          clearCart
// @Summary     Empty the cart
// @Tags        Cart
//
// @Param       X-Customer-ID  header  string  false "Customer identity"
//
// @Success     204  {string}  string  "No Content"
// @Router      /cart [delete]
func (h *Handlers) ClearCart(c *gin.Context) {
	h.deps.Carts.Clear(c.Request.Context(), middleware.CustomerFrom(c))
	noContent(c)
}

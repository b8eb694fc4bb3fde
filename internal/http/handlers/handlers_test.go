package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/auth"
	"github.com/avelineco/go-shop-backend/internal/cart"
	"github.com/avelineco/go-shop-backend/internal/checkout"
	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/http/middleware"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// newTestHandlers builds a Handlers over throwaway in-memory containers with
// one seeded product and one active coupon.
func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	ctx := context.Background()
	s := store.NullStore{}

	gw, err := auth.NewGateway(nil, "admin@example.com", "letmein", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("auth gateway: %v", err)
	}

	coupons := containers.NewCoupons(ctx, s, []domain.Coupon{
		{
			Code:       "SAVE10",
			Type:       "percentage",
			Value:      10,
			ValidFrom:  time.Now().Add(-time.Hour),
			ValidUntil: time.Now().Add(time.Hour),
		},
	})
	tax := containers.NewTax(ctx, s, domain.TaxSettings{Enabled: true, DefaultRate: 0.08})
	carts := cart.NewService(s, tax, cart.Config{FreeShippingThreshold: 50000, ShippingCost: 1500})

	return New(Deps{
		Products: containers.NewProducts(ctx, s, []domain.Product{
			{ID: "p1", Name: "Silk Scarf", Price: 4500, Currency: "USD", Category: "accessories", Stock: 10},
		}),
		Collections:   containers.NewCollections(ctx, s, nil),
		Coupons:       coupons,
		Zones:         containers.NewShippingZones(ctx, s, nil),
		Tax:           tax,
		Returns:       containers.NewReturns(ctx, s, nil),
		Reviews:       containers.NewReviews(ctx, s, nil),
		Tickets:       containers.NewTickets(ctx, s, nil),
		Media:         containers.NewMedia(ctx, s, nil),
		Blog:          containers.NewBlog(ctx, s, nil),
		SEO:           containers.NewSEO(ctx, s, domain.SEOSettings{SiteTitle: "Aveline"}),
		Subscribers:   containers.NewSubscribers(ctx, s, nil),
		Campaigns:     containers.NewCampaigns(ctx, s, nil),
		Notifications: containers.NewNotifications(ctx, s, nil),
		Activity:      containers.NewActivityLogs(ctx, s),
		Carts:         carts,
		Checkout:      checkout.NewService(carts, coupons, s),
		Auth:          gw,
	})
}

// newTestRouter mounts the storefront routes exercised by these tests behind
// the identity middleware.
func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomerID())
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddCartItem)
	r.POST("/checkout", h.PlaceOrder)
	r.GET("/orders/last", h.LastOrder)
	r.POST("/coupons/validate", h.ValidateCoupon)
	r.POST("/subscribe", h.Subscribe)
	r.POST("/admin/coupons", h.CreateCoupon)
	r.DELETE("/admin/media/:id", h.ConfirmMediaDelete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, target, body, customerID string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", "application/json")
	if customerID != "" {
		req.Header.Set("X-Customer-ID", customerID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateCoupon_ValidAndUnknown(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/coupons/validate", `{"code":"SAVE10","orderValue":10000}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("validate = %d body=%s", w.Code, w.Body.String())
	}
	var res containers.CouponResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Valid || res.Discount != 1000 {
		t.Fatalf("expected valid 10%% off 10000, got %+v", res)
	}

	w = doJSON(t, r, http.MethodPost, "/coupons/validate", `{"code":"NOPE","orderValue":10000}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("validate unknown = %d", w.Code)
	}
	res = containers.CouponResult{}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Valid || res.Reason != "not found" {
		t.Fatalf("expected invalid/not found, got %+v", res)
	}
}

func TestCreateCoupon_DuplicateCode(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/admin/coupons", `{"code":"NEW20","type":"percentage","value":20}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/admin/coupons", `{"code":"NEW20","type":"percentage","value":20}`, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create = %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeCodeTaken {
		t.Fatalf("expected code_taken, got %q", er.Code)
	}
}

func TestCart_AddItemAndTotals(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	// Unknown product → 404
	w := doJSON(t, r, http.MethodPost, "/cart/items", `{"productId":"ghost","quantity":1}`, "cust_1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown product = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/cart/items", `{"productId":"p1","size":"M","color":"Sand","quantity":2}`, "cust_1")
	if w.Code != http.StatusOK {
		t.Fatalf("add item = %d body=%s", w.Code, w.Body.String())
	}
	var cr CartResponse
	if err := json.Unmarshal(w.Body.Bytes(), &cr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cr.Items) != 1 || cr.Totals.Subtotal != 9000 {
		t.Fatalf("unexpected cart: %+v", cr)
	}
	// 9000 subtotal, 8% tax = 720, under free-shipping threshold → 1500 shipping
	if cr.Totals.Tax != 720 || cr.Totals.Shipping != 1500 || cr.Totals.Total != 11220 {
		t.Fatalf("unexpected totals: %+v", cr.Totals)
	}

	// Another customer's cart stays empty.
	w = doJSON(t, r, http.MethodGet, "/cart", "", "cust_2")
	if w.Code != http.StatusOK {
		t.Fatalf("get cart = %d", w.Code)
	}
	cr = CartResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &cr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cr.Items) != 0 {
		t.Fatalf("expected empty cart for cust_2, got %+v", cr.Items)
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	body := `{"shippingAddress":{"name":"Dana","email":"dana@example.com","phone":"555-0100","address1":"1 Main St","city":"Austin","state":"TX","zip":"78701"}}`
	w := doJSON(t, r, http.MethodPost, "/checkout", body, "cust_empty")
	if w.Code != http.StatusConflict {
		t.Fatalf("empty cart checkout = %d body=%s", w.Code, w.Body.String())
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeEmptyCart {
		t.Fatalf("expected empty_cart, got %q", er.Code)
	}
}

func TestPlaceOrder_FieldErrors(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	// Seed the cart so validation is what fails.
	w := doJSON(t, r, http.MethodPost, "/cart/items", `{"productId":"p1","quantity":1}`, "cust_3")
	if w.Code != http.StatusOK {
		t.Fatalf("add item = %d", w.Code)
	}

	body := `{"shippingAddress":{"name":"","email":"not-an-email","phone":"","address1":"1 Main St","city":"Austin","state":"TX","zip":"78701"}}`
	w = doJSON(t, r, http.MethodPost, "/checkout", body, "cust_3")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid address checkout = %d body=%s", w.Code, w.Body.String())
	}
	var fer FieldErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &fer); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fer.Code != ErrCodeValidationFailed {
		t.Fatalf("expected validation_failed, got %q", fer.Code)
	}
	if fer.Fields["name"] != "required" || fer.Fields["phone"] != "required" || fer.Fields["email"] != "invalid format" {
		t.Fatalf("unexpected field errors: %+v", fer.Fields)
	}
}

func TestPlaceOrder_SuccessThenLastOrder(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	// No last order yet.
	w := doJSON(t, r, http.MethodGet, "/orders/last", "", "cust_4")
	if w.Code != http.StatusNotFound {
		t.Fatalf("last order before checkout = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/cart/items", `{"productId":"p1","quantity":2}`, "cust_4")
	if w.Code != http.StatusOK {
		t.Fatalf("add item = %d", w.Code)
	}

	body := `{"shippingAddress":{"name":"Dana","email":"dana@example.com","phone":"555-0100","address1":"1 Main St","city":"Austin","state":"TX","zip":"78701"},"couponCode":"SAVE10"}`
	w = doJSON(t, r, http.MethodPost, "/checkout", body, "cust_4")
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout = %d body=%s", w.Code, w.Body.String())
	}
	var order domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.ID == "" || order.CustomerID != "cust_4" || order.CouponCode != "SAVE10" {
		t.Fatalf("unexpected order: %+v", order)
	}

	// The cart is cleared by a successful checkout.
	w = doJSON(t, r, http.MethodGet, "/cart", "", "cust_4")
	var cr CartResponse
	if err := json.Unmarshal(w.Body.Bytes(), &cr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cr.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %+v", cr.Items)
	}

	// Last order round-trips.
	w = doJSON(t, r, http.MethodGet, "/orders/last", "", "cust_4")
	if w.Code != http.StatusOK {
		t.Fatalf("last order = %d", w.Code)
	}
	var last domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &last); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if last.ID != order.ID {
		t.Fatalf("last order mismatch: %q vs %q", last.ID, order.ID)
	}
}

func TestPlaceOrder_CouponRejected(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/cart/items", `{"productId":"p1","quantity":1}`, "cust_5")
	if w.Code != http.StatusOK {
		t.Fatalf("add item = %d", w.Code)
	}

	body := `{"shippingAddress":{"name":"Dana","email":"dana@example.com","phone":"555-0100","address1":"1 Main St","city":"Austin","state":"TX","zip":"78701"},"couponCode":"NOPE"}`
	w = doJSON(t, r, http.MethodPost, "/checkout", body, "cust_5")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("rejected coupon checkout = %d body=%s", w.Code, w.Body.String())
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeCouponRejected {
		t.Fatalf("expected coupon_rejected, got %q", er.Code)
	}
}

func TestSubscribe_Duplicate(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/subscribe", `{"email":"hi@example.com"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("subscribe = %d body=%s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/subscribe", `{"email":"hi@example.com"}`, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate subscribe = %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeAlreadySubscribed {
		t.Fatalf("expected already_subscribed, got %q", er.Code)
	}
}

func TestConfirmMediaDelete_InUse(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	asset := h.deps.Media.Add(context.Background(), domain.MediaAsset{FileName: "hero.jpg", URL: "/media/hero.jpg"})
	if err := h.deps.Media.Attach(context.Background(), asset.ID, "product:p1"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	w := doJSON(t, r, http.MethodDelete, "/admin/media/"+asset.ID, "", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("delete in-use asset = %d body=%s", w.Code, w.Body.String())
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeAssetInUse {
		t.Fatalf("expected asset_in_use, got %q", er.Code)
	}

	// force=true overrides the guard.
	w = doJSON(t, r, http.MethodDelete, "/admin/media/"+asset.ID+"?force=true", "", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("forced delete = %d", w.Code)
	}
}

func TestSearchProducts_RanksByQuery(t *testing.T) {
	h := newTestHandlers(t)

	got := h.searchProducts("silk scarf")
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected p1 for 'silk scarf', got %+v", got)
	}
	if out := h.searchProducts("velvet boots"); len(out) != 0 {
		t.Fatalf("expected no hits, got %+v", out)
	}
}

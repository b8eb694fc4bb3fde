// Shipping and tax configuration handlers.
//
// The storefront quotes rates per destination state; the back office owns the
// zone and tax documents.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
)

// ShippingZoneRequest is the create/update payload for a zone. Method ids are
// assigned server-side when absent.
type ShippingZoneRequest struct {
	Name    string                  `json:"name" binding:"required" example:"West Coast"`
	States  []string                `json:"states" binding:"required"`
	Methods []domain.ShippingMethod `json:"methods"`
}

// TaxSettingsRequest replaces the global tax configuration document.
type TaxSettingsRequest struct {
	Enabled          bool                   `json:"enabled"`
	DefaultRate      float64                `json:"defaultRate" example:"0.08"`
	Label            string                 `json:"label" example:"Sales Tax"`
	PricesIncludeTax bool                   `json:"pricesIncludeTax"`
	RegionRates      []domain.RegionTaxRate `json:"regionRates"`
	ExemptProductIDs []string               `json:"exemptProductIds"`
	ExemptCategories []string               `json:"exemptCategories"`
}

// QuoteShippingRates godoc
// @ID          quoteShippingRates
// @Summary     Quote shipping rates for a state
// @Description Returns the enabled methods of the first zone covering the state; an uncovered state quotes none.
// @Tags        Shipping
// @Produce     json
//
// @Param       state  query  string  true  "Destination state code"  example(CA)
//
// @Success     200  {array}   domain.ShippingMethod
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /shipping/rates [get]
func (h *Handlers) QuoteShippingRates(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "state required")
		return
	}
	rates := h.deps.Zones.RatesForState(state)
	if rates == nil {
		rates = []domain.ShippingMethod{}
	}
	ok(c, http.StatusOK, rates)
}

// ListShippingZones godoc
// @ID          listShippingZones
// @Summary     List shipping zones
// @Tags        Admin/Shipping
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}  domain.ShippingZone
// @Router      /admin/shipping/zones [get]
func (h *Handlers) ListShippingZones(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Zones.List())
}

// CreateShippingZone godoc
// @ID          createShippingZone
// @Summary     Create a shipping zone
// @Tags        Admin/Shipping
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.ShippingZoneRequest  true  "Zone payload"
//
// @Success     201  {object}  domain.ShippingZone
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/shipping/zones [post]
func (h *Handlers) CreateShippingZone(c *gin.Context) {
	var req ShippingZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and states required")
		return
	}
	created := h.deps.Zones.Add(c.Request.Context(), domain.ShippingZone{
		Name:    req.Name,
		States:  req.States,
		Methods: req.Methods,
	})
	h.audit(c, "shipping_zone.create", created.ID, created.Name)
	ok(c, http.StatusCreated, created)
}

// UpdateShippingZone godoc
// @ID          updateShippingZone
// @Summary     Update a shipping zone
// @Tags        Admin/Shipping
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                        true  "Zone ID"
// @Param       body  body  handlers.ShippingZoneRequest  true  "Zone payload"
//
// @Success     200  {object}  domain.ShippingZone
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Zone not found"
// @Router      /admin/shipping/zones/{id} [put]
func (h *Handlers) UpdateShippingZone(c *gin.Context) {
	var req ShippingZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and states required")
		return
	}
	updated, err := h.deps.Zones.Update(c.Request.Context(), c.Param("id"), func(z *domain.ShippingZone) {
		z.Name = req.Name
		z.States = req.States
		z.Methods = req.Methods
	})
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "shipping zone not found")
		return
	}
	h.audit(c, "shipping_zone.update", updated.ID, updated.Name)
	ok(c, http.StatusOK, updated)
}

// DeleteShippingZone godoc
// @ID          deleteShippingZone
// @Summary     Delete a shipping zone
// @Tags        Admin/Shipping
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Zone ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Zone not found"
// @Router      /admin/shipping/zones/{id} [delete]
func (h *Handlers) DeleteShippingZone(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Zones.Remove(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "shipping zone not found")
		return
	}
	h.audit(c, "shipping_zone.delete", id, "")
	noContent(c)
}

// SetShippingMethodEnabled godoc
// @ID          setShippingMethodEnabled
// @Summary     Enable or disable one rate method
// @Description Disabled methods stay in the zone but are excluded from storefront quotes.
// @Tags        Admin/Shipping
// @Produce     json
// @Security    BearerAuth
//
// @Param       id        path   string  true  "Zone ID"
// @Param       methodId  path   string  true  "Method ID"
// @Param       enabled   query  string  true  "true or false"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Zone or method not found"
// @Router      /admin/shipping/zones/{id}/methods/{methodId} [put]
func (h *Handlers) SetShippingMethodEnabled(c *gin.Context) {
	enabled := c.Query("enabled") == "true"
	err := h.deps.Zones.SetMethodEnabled(c.Request.Context(), c.Param("id"), c.Param("methodId"), enabled)
	if errors.Is(err, containers.ErrNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "shipping zone or method not found")
		return
	}
	h.audit(c, "shipping_method.toggle", c.Param("methodId"), c.Query("enabled"))
	noContent(c)
}

// GetTaxSettings godoc
// @ID          getTaxSettings
// @Summary     Get the tax configuration
// @Tags        Admin/Tax
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  domain.TaxSettings
// @Router      /admin/tax [get]
func (h *Handlers) GetTaxSettings(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Tax.Settings())
}

// UpdateTaxSettings godoc
// @ID          updateTaxSettings
// @Summary     Replace the tax configuration
// @Description The cart engine's flat rate is sourced from this document, so changes apply to the next totals read.
// @Tags        Admin/Tax
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.TaxSettingsRequest  true  "Tax settings"
//
// @Success     200  {object}  domain.TaxSettings
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/tax [put]
func (h *Handlers) UpdateTaxSettings(c *gin.Context) {
	var req TaxSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid tax settings payload")
		return
	}
	if req.DefaultRate < 0 || req.DefaultRate > 1 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "defaultRate must be within [0, 1]")
		return
	}
	updated := h.deps.Tax.Update(c.Request.Context(), func(t *domain.TaxSettings) {
		t.Enabled = req.Enabled
		t.DefaultRate = req.DefaultRate
		t.Label = req.Label
		t.PricesIncludeTax = req.PricesIncludeTax
		t.RegionRates = req.RegionRates
		t.ExemptProductIDs = req.ExemptProductIDs
		t.ExemptCategories = req.ExemptCategories
	})
	h.audit(c, "tax.update", "taxSettings", "")
	ok(c, http.StatusOK, updated)
}

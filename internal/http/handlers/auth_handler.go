// Admin authentication endpoint.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/auth"
)

// LoginRequest is the JSON payload for admin sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@aveline.test"`
	Password string `json:"password" binding:"required" example:"hunter2"`
}

// LoginUser is the signed-in identity echoed back to the client.
type LoginUser struct {
	ID    string `json:"id" example:"admin_demo"`
	Email string `json:"email" example:"admin@aveline.test"`
	Role  string `json:"role" example:"admin"`
}

// LoginResponse carries the session token and the identity it was minted for.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// Login godoc
// @ID          adminLogin
// @Summary     Admin sign-in
// @Description Authenticates an admin and returns a Bearer session token. Non-admin accounts are rejected even with valid credentials.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an admin"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password required")
		return
	}

	token, id, err := h.deps.Auth.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
		return
	case errors.Is(err, auth.ErrNotAdmin):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "admin role required")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "sign-in failed")
		return
	}

	ok(c, http.StatusOK, LoginResponse{
		Token: token,
		User:  LoginUser{ID: id.UserID, Email: id.Email, Role: id.Role},
	})
}

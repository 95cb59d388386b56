package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/madr-project/madr/internal/accounts"
	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/i18n"
	"github.com/madr-project/madr/pkg/middleware"
)

// AccountsHandler holds dependencies
type AccountsHandler struct {
	svc    *accounts.Service
	bundle *i18n.Bundle
}

func NewAccountsHandler(svc *accounts.Service, bundle *i18n.Bundle) *AccountsHandler {
	return &AccountsHandler{svc: svc, bundle: bundle}
}

// Register mounts the account and token routes. auth guards the routes that
// need a resolved identity.
func (h *AccountsHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	r.POST("/accounts", h.Create)
	r.POST("/auth/token", h.Token)
	r.POST("/auth/refresh", h.Refresh)

	g := r.Group("/accounts", auth)
	g.GET("/me", h.Me)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type accountRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Create registers a new account and returns its public view.
func (h *AccountsHandler) Create(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, localized(c, h.bundle), "account", err)
		return
	}
	c.JSON(http.StatusCreated, u.View())
}

type tokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Token implements the password grant: form-encoded username (the account
// email) and password in, bearer token out. Unknown email and wrong password
// produce the same response.
func (h *AccountsHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, localized(c, h.bundle), "account", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "Bearer"})
}

// Refresh exchanges a still-valid bearer token for a new one with a fresh
// expiry. The route is unguarded; the handler validates the token itself so
// an expired token gets the same 401 as any other bad credential.
func (h *AccountsHandler) Refresh(c *gin.Context) {
	var raw string
	if n, _ := fmt.Sscanf(c.GetHeader("Authorization"), "Bearer %s", &raw); n != 1 {
		writeError(c, localized(c, h.bundle), "account", apperr.ErrUnauthenticated)
		return
	}
	token, err := h.svc.Refresh(c.Request.Context(), raw)
	if err != nil {
		writeError(c, localized(c, h.bundle), "account", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "Bearer"})
}

// Me returns the authenticated account's public view.
func (h *AccountsHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, localized(c, h.bundle), "account", apperr.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, u.View())
}

// Update replaces the account's name, email and password. Only the owner may
// update, and the stored hash is rebuilt from the submitted password.
func (h *AccountsHandler) Update(c *gin.Context) {
	cat := localized(c, h.bundle)
	u, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, cat, "account", apperr.ErrUnauthenticated)
		return
	}
	target, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid account id"})
		return
	}
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), u, target, req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, cat, "account", err)
		return
	}
	c.JSON(http.StatusOK, updated.View())
}

// Delete removes the account. Only the owner may delete it.
func (h *AccountsHandler) Delete(c *gin.Context) {
	cat := localized(c, h.bundle)
	u, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, cat, "account", apperr.ErrUnauthenticated)
		return
	}
	target, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid account id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), u, target); err != nil {
		writeError(c, cat, "account", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

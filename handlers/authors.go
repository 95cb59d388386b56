package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madr-project/madr/internal/catalog"
	"github.com/madr-project/madr/internal/i18n"
	"github.com/madr-project/madr/internal/models"
)

// dateLayout is the wire format for birth dates.
const dateLayout = "2006-01-02"

// AuthorsHandler holds dependencies
type AuthorsHandler struct {
	svc    *catalog.Service
	bundle *i18n.Bundle
}

func NewAuthorsHandler(svc *catalog.Service, bundle *i18n.Bundle) *AuthorsHandler {
	return &AuthorsHandler{svc: svc, bundle: bundle}
}

// Register mounts the author routes. Reads are public, mutations require a
// resolved identity.
func (h *AuthorsHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/authors", h.List)
	r.GET("/authors/:id", h.Get)

	g := r.Group("/authors", auth)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type authorView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	BirthDate   string `json:"birth_date"`
}

func newAuthorView(a *models.Author) authorView {
	return authorView{
		ID:          a.ID,
		Name:        a.Name,
		Nationality: a.Nationality,
		BirthDate:   a.BirthDate.Format(dateLayout),
	}
}

// List returns authors, optionally filtered by a name substring, paginated
// with limit/offset.
func (h *AuthorsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	authors, err := h.svc.ListAuthors(c.Request.Context(), c.Query("name"), limit, offset)
	if err != nil {
		writeError(c, localized(c, h.bundle), "author", err)
		return
	}
	out := make([]authorView, len(authors))
	for i := range authors {
		out[i] = newAuthorView(&authors[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one author. Honors If-Modified-Since against the record
// timestamp.
func (h *AuthorsHandler) Get(c *gin.Context) {
	cat := localized(c, h.bundle)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid author id"})
		return
	}
	a, err := h.svc.GetAuthor(c.Request.Context(), id)
	if err != nil {
		writeError(c, cat, "author", err)
		return
	}
	if notModified(c, a.CreatedAt) {
		return
	}
	c.JSON(http.StatusOK, newAuthorView(a))
}

type authorCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Nationality string `json:"nationality" binding:"required"`
	BirthDate   string `json:"birth_date" binding:"required"`
}

// Create adds an author to the catalog.
func (h *AuthorsHandler) Create(c *gin.Context) {
	cat := localized(c, h.bundle)
	var req authorCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	born, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid birth_date"})
		return
	}
	a, err := h.svc.CreateAuthor(c.Request.Context(), req.Name, req.Nationality, born)
	if err != nil {
		writeError(c, cat, "author", err)
		return
	}
	c.JSON(http.StatusCreated, newAuthorView(a))
}

type authorUpdateRequest struct {
	Name        *string `json:"name"`
	Nationality *string `json:"nationality"`
	BirthDate   *string `json:"birth_date"`
}

// Update applies a partial author update; absent fields stay unchanged.
func (h *AuthorsHandler) Update(c *gin.Context) {
	cat := localized(c, h.bundle)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid author id"})
		return
	}
	var req authorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	upd := catalog.AuthorUpdate{Name: req.Name, Nationality: req.Nationality}
	if req.BirthDate != nil {
		born, err := time.Parse(dateLayout, *req.BirthDate)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid birth_date"})
			return
		}
		upd.BirthDate = &born
	}
	a, err := h.svc.UpdateAuthor(c.Request.Context(), id, upd)
	if err != nil {
		writeError(c, cat, "author", err)
		return
	}
	c.JSON(http.StatusOK, newAuthorView(a))
}

// Delete removes an author. Authorship links go with it.
func (h *AuthorsHandler) Delete(c *gin.Context) {
	cat := localized(c, h.bundle)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid author id"})
		return
	}
	if err := h.svc.DeleteAuthor(c.Request.Context(), id); err != nil {
		writeError(c, cat, "author", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "author deleted"})
}

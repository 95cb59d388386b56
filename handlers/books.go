package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/madr-project/madr/internal/catalog"
	"github.com/madr-project/madr/internal/i18n"
	"github.com/madr-project/madr/internal/models"
)

// BooksHandler holds dependencies
type BooksHandler struct {
	svc    *catalog.Service
	bundle *i18n.Bundle
}

func NewBooksHandler(svc *catalog.Service, bundle *i18n.Bundle) *BooksHandler {
	return &BooksHandler{svc: svc, bundle: bundle}
}

// Register mounts the book routes. Reads are public, mutations require a
// resolved identity.
func (h *BooksHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/books", h.List)
	r.GET("/books/:id", h.Get)

	g := r.Group("/books", auth)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type bookView struct {
	ID        int64   `json:"id"`
	ISBN      *string `json:"isbn"`
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	AuthorIDs []int64 `json:"author_ids"`
}

func newBookView(b *models.Book) bookView {
	return bookView{ID: b.ID, ISBN: b.ISBN, Name: b.Name, Year: b.Year, AuthorIDs: b.AuthorIDs}
}

// List returns books, optionally filtered by a name substring, paginated
// with limit/offset.
func (h *BooksHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	books, err := h.svc.ListBooks(c.Request.Context(), c.Query("name"), limit, offset)
	if err != nil {
		writeError(c, localized(c, h.bundle), "book", err)
		return
	}
	out := make([]bookView, len(books))
	for i := range books {
		out[i] = newBookView(&books[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one book. Honors If-Modified-Since against the record
// timestamp.
func (h *BooksHandler) Get(c *gin.Context) {
	cat := localized(c, h.bundle)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid book id"})
		return
	}
	b, err := h.svc.GetBook(c.Request.Context(), id)
	if err != nil {
		writeError(c, cat, "book", err)
		return
	}
	if notModified(c, b.CreatedAt) {
		return
	}
	c.JSON(http.StatusOK, newBookView(b))
}

type bookCreateRequest struct {
	ISBN      *string `json:"isbn"`
	Name      string  `json:"name" binding:"required"`
	Year      *int    `json:"year" binding:"required"`
	AuthorIDs []int64 `json:"author_ids"`
}

// Create adds a book, linking it to its authors in the same transaction. A
// link to an unknown author rejects the whole book.
func (h *BooksHandler) Create(c *gin.Context) {
	cat := localized(c, h.bundle)
	var req bookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	b, err := h.svc.CreateBook(c.Request.Context(), req.ISBN, req.Name, *req.Year, req.AuthorIDs)
	if err != nil {
		writeError(c, cat, "book", err)
		return
	}
	c.JSON(http.StatusCreated, newBookView(b))
}

type bookUpdateRequest struct {
	ISBN      *string `json:"isbn"`
	Name      *string `json:"name"`
	Year      *int    `json:"year"`
	AuthorIDs []int64 `json:"author_ids"`
}

// Update applies a partial book update; absent fields stay unchanged and a
// present author_ids replaces the links wholesale.
func (h *BooksHandler) Update(c *gin.Context) {
	cat := localized(c, h.bundle)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid book id"})
		return
	}
	var req bookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	b, err := h.svc.UpdateBook(c.Request.Context(), id, catalog.BookUpdate{
		ISBN:      req.ISBN,
		Name:      req.Name,
		Year:      req.Year,
		AuthorIDs: req.AuthorIDs,
	})
	if err != nil {
		writeError(c, cat, "book", err)
		return
	}
	c.JSON(http.StatusOK, newBookView(b))
}

// Delete removes a book and its authorship links.
func (h *BooksHandler) Delete(c *gin.Context) {
	cat := localized(c, h.bundle)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid book id"})
		return
	}
	if err := h.svc.DeleteBook(c.Request.Context(), id); err != nil {
		writeError(c, cat, "book", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}

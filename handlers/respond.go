// Package handlers wires the HTTP surface: request binding, error-to-status
// mapping, localization of client-facing details, and response shaping.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/catalog"
	"github.com/madr-project/madr/internal/i18n"
	"github.com/madr-project/madr/pkg/logger"
)

// localized negotiates the response locale from the Accept-Language header.
func localized(c *gin.Context, b *i18n.Bundle) *i18n.Catalog {
	return b.Lookup(i18n.ParseAcceptLanguage(c.GetHeader("Accept-Language")))
}

// writeError translates domain errors into HTTP responses. Not-found and
// conflict details are localized for the named entity; everything else keeps
// its sentinel message.
func writeError(c *gin.Context, cat *i18n.Catalog, entity string, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"detail": apperr.ErrInvalidCredentials.Error()})
	case errors.Is(err, apperr.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": apperr.ErrUnauthenticated.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": apperr.ErrForbidden.Error()})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"detail": cat.Conflict(entity)})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": cat.NotFound(entity)})
	case errors.Is(err, catalog.ErrInvalidISBN):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": apperr.ErrInternal.Error()})
	}
}

// notModified answers conditional GETs. It always sets Last-Modified; when
// the record timestamp is not newer than If-Modified-Since it writes a 304
// and the caller must stop.
func notModified(c *gin.Context, ts time.Time) bool {
	ts = ts.UTC().Truncate(time.Second)
	c.Header("Last-Modified", ts.Format(http.TimeFormat))
	ims := c.GetHeader("If-Modified-Since")
	if ims == "" {
		return false
	}
	since, err := http.ParseTime(ims)
	if err != nil {
		return false
	}
	if !ts.After(since) {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

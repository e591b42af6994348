package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davidfults/vidmap/internal/models"
	"github.com/davidfults/vidmap/internal/sitemap"
	"github.com/davidfults/vidmap/internal/storage"
)

// sitemapPageSize is how many entries are pulled from the store per page
// while rendering the document.
const sitemapPageSize = 500

type Handler struct {
	store storage.Store
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count,omitempty"`
}

func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store}
}

// GetSitemap renders the full sitemap document from the store.
func (h *Handler) GetSitemap(c *gin.Context) {
	sm := sitemap.New()

	for offset := 0; ; offset += sitemapPageSize {
		entries, err := h.store.ListEntries(c.Request.Context(), sitemapPageSize, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch entries"})
			return
		}
		if len(entries) == 0 {
			break
		}

		for _, entry := range entries {
			u, err := entry.SitemapURL()
			if err != nil {
				log.Printf("Skipping entry %s: %v", entry.Loc, err)
				continue
			}
			sm.Add(u)
		}
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := sm.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing sitemap response: %v", err)
	}
}

func (h *Handler) ListEntries(c *gin.Context) {
	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	entries, err := h.store.ListEntries(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch entries"})
		return
	}

	count, err := h.store.CountEntries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to count entries"})
		return
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:       entries,
		Page:       page,
		Limit:      limit,
		TotalCount: count,
	})
}

func (h *Handler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid entry ID"})
		return
	}

	entry, err := h.store.GetEntry(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch entry"})
		return
	}

	if entry == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Entry not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) CreateEntry(c *gin.Context) {
	var entry models.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid entry data"})
		return
	}

	if entry.Loc == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Entry loc is required"})
		return
	}

	// Reject malformed video values here rather than at render time.
	if _, err := entry.SitemapURL(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := h.store.CreateEntry(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid entry ID"})
		return
	}

	if err := h.store.DeleteEntry(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}

package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/bitebrain/internal/domain/tiles"
)

// CreateRegion records an offline region and queues its download.
func (h *Handler) CreateRegion(c *gin.Context) {
	var req tiles.CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	region, err := h.tiles.CreateRegion(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	respond(c, http.StatusAccepted, region)
}

// ListRegions returns all regions, newest first.
func (h *Handler) ListRegions(c *gin.Context) {
	regions, err := h.tiles.ListRegions(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	if regions == nil {
		regions = []tiles.Region{}
	}
	respond(c, http.StatusOK, regions)
}

// GetRegion returns one region with its download status.
func (h *Handler) GetRegion(c *gin.Context) {
	id, ok := regionID(c)
	if !ok {
		return
	}
	region, err := h.tiles.GetRegion(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	respond(c, http.StatusOK, region)
}

// DeleteRegion removes a region and its stored tiles.
func (h *Handler) DeleteRegion(c *gin.Context) {
	id, ok := regionID(c)
	if !ok {
		return
	}
	if err := h.tiles.DeleteRegion(c.Request.Context(), id); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TileUsage reports offline storage consumption.
func (h *Handler) TileUsage(c *gin.Context) {
	usage, err := h.tiles.Usage(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	respond(c, http.StatusOK, usage)
}

// GetTile serves a cached tile image. The y segment may carry an extension.
func (h *Handler) GetTile(c *gin.Context) {
	y, _, _ := strings.Cut(c.Param("y"), ".")
	z, errZ := strconv.Atoi(c.Param("z"))
	x, errX := strconv.Atoi(c.Param("x"))
	yi, errY := strconv.Atoi(y)
	if errZ != nil || errX != nil || errY != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "tile coordinates must be integers", nil))
		return
	}
	tile, err := h.tiles.GetTile(c.Request.Context(), tiles.Coord{Z: z, X: x, Y: yi})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	contentType := tile.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, tile.Data)
}

func regionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "region id must be a UUID", err))
		return uuid.Nil, false
	}
	return id, true
}

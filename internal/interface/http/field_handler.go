package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/bitebrain/internal/domain/outlook"
	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/domain/spots"
)

const (
	dateLayout           = "2006-01-02"
	defaultSpotsRadiusKm = 50.0
)

// SolunarDay returns the solunar table for one date.
func (h *Handler) SolunarDay(c *gin.Context) {
	cfg, date, httpErr := h.solunarQuery(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	respond(c, http.StatusOK, h.solunar.Compute(cfg, date))
}

// SolunarWeek returns seven consecutive days starting at date.
func (h *Handler) SolunarWeek(c *gin.Context) {
	cfg, date, httpErr := h.solunarQuery(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	respond(c, http.StatusOK, h.solunar.ComputeWeek(cfg, date))
}

// SolunarCurrent reports the period in progress, if any.
func (h *Handler) SolunarCurrent(c *gin.Context) {
	cfg, _, httpErr := h.solunarQuery(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	period, ok := h.solunar.CurrentPeriodFor(cfg)
	data := gin.H{"active": ok, "period": nil}
	if ok {
		data["period"] = period
	}
	respond(c, http.StatusOK, data)
}

func (h *Handler) solunarQuery(c *gin.Context) (solunar.Config, time.Time, *HTTPError) {
	cfg := h.solunar.Config()
	lat, lng, httpErr := coordinatesQuery(c, cfg.Latitude, cfg.Longitude)
	if httpErr != nil {
		return cfg, time.Time{}, httpErr
	}
	cfg.Latitude, cfg.Longitude = lat, lng
	if tz := c.Query("tz"); tz != "" {
		cfg.Timezone = tz
	}

	date := h.now().In(cfg.Location())
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, cfg.Location())
		if err != nil {
			return cfg, time.Time{}, NewHTTPError(http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD", err)
		}
		date = parsed
	}
	return cfg, date, nil
}

// ListSpots returns every spot, or those within radiusKm of lat/lng.
func (h *Handler) ListSpots(c *gin.Context) {
	if c.Query("lat") == "" && c.Query("lng") == "" {
		respond(c, http.StatusOK, h.spots.All())
		return
	}
	if c.Query("lat") == "" || c.Query("lng") == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lat and lng must be given together", nil))
		return
	}
	lat, lng, httpErr := coordinatesQuery(c, 0, 0)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	radius, err := floatQuery(c, "radiusKm", defaultSpotsRadiusKm)
	if err != nil || !(radius >= 0) {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "radiusKm must be a non-negative number", err))
		return
	}
	found := h.spots.InRadius(lat, lng, radius)
	if found == nil {
		found = []spots.Spot{}
	}
	respond(c, http.StatusOK, found)
}

// GetSpot returns one spot.
func (h *Handler) GetSpot(c *gin.Context) {
	spot, ok := h.spots.ByID(c.Param("id"))
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "spot not found", nil))
		return
	}
	respond(c, http.StatusOK, spot)
}

// Outlook combines weather, water temperature, solunar and recommendations.
func (h *Handler) Outlook(c *gin.Context) {
	defaults := h.solunar.Config()
	lat, lng, httpErr := coordinatesQuery(c, defaults.Latitude, defaults.Longitude)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	req := outlook.Request{
		Latitude:  lat,
		Longitude: lng,
		WaterBody: spots.WaterType(c.Query("waterBody")),
		Timezone:  c.DefaultQuery("tz", defaults.Timezone),
	}
	resp, err := h.outlook.Outlook(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	respond(c, http.StatusOK, resp)
}

func coordinatesQuery(c *gin.Context, defLat, defLng float64) (float64, float64, *HTTPError) {
	lat, err := floatQuery(c, "lat", defLat)
	if err != nil || !(lat >= -90 && lat <= 90) {
		return 0, 0, NewHTTPError(http.StatusBadRequest, "invalid_request", "lat must be a number within [-90, 90]", err)
	}
	lng, err := floatQuery(c, "lng", defLng)
	if err != nil || !(lng >= -180 && lng <= 180) {
		return 0, 0, NewHTTPError(http.StatusBadRequest, "invalid_request", "lng must be a number within [-180, 180]", err)
	}
	return lat, lng, nil
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

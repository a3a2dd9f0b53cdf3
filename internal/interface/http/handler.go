package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/bitebrain/internal/domain/outlook"
	"github.com/yanqian/bitebrain/internal/domain/recommend"
	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/domain/species"
	"github.com/yanqian/bitebrain/internal/domain/spots"
	"github.com/yanqian/bitebrain/internal/domain/tiles"
)

const healthMessage = "BiteBrain API is healthy"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	recommender recommend.Service
	species     *species.Store
	solunar     *solunar.Calculator
	spots       *spots.Catalog
	outlook     outlook.Service
	tiles       *tiles.Service
	logger      *slog.Logger
	now         func() time.Time
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	recommender recommend.Service,
	speciesStore *species.Store,
	calculator *solunar.Calculator,
	catalog *spots.Catalog,
	outlookSvc outlook.Service,
	tilesSvc *tiles.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		recommender: recommender,
		species:     speciesStore,
		solunar:     calculator,
		spots:       catalog,
		outlook:     outlookSvc,
		tiles:       tilesSvc,
		logger:      logger.With("component", "http.handler"),
		now:         time.Now,
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   healthMessage,
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}

// Recommend runs the basic engine. Conditions come from the JSON body when
// one is sent, otherwise from query parameters with defaults.
func (h *Handler) Recommend(c *gin.Context) {
	conditions, httpErr := basicConditionsFrom(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}

	recs, err := h.recommender.RecommendBasic(c.Request.Context(), conditions)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": recs, "conditions": conditions})
}

func basicConditionsFrom(c *gin.Context) (recommend.BasicConditions, *HTTPError) {
	var conditions recommend.BasicConditions
	var body []byte
	if c.Request.Body != nil {
		var err error
		if body, err = io.ReadAll(c.Request.Body); err != nil {
			return conditions, malformedRequest(err)
		}
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &conditions); err != nil {
			return conditions, malformedRequest(err)
		}
		return conditions, nil
	}

	conditions = recommend.BasicConditions{
		Season:  recommend.Season(c.DefaultQuery("season", string(recommend.SeasonSpring))),
		Wind:    recommend.Wind(c.DefaultQuery("wind", string(recommend.WindLight))),
		Temp:    65,
		Clarity: recommend.Clarity(c.DefaultQuery("clarity", string(recommend.ClarityClear))),
	}
	if raw := c.Query("temp"); raw != "" {
		temp, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return conditions, NewHTTPError(http.StatusBadRequest, "invalid_request", "temp must be a number", err)
		}
		conditions.Temp = temp
	}
	return conditions, nil
}

// RecommendSpecies runs the species-aware engine.
func (h *Handler) RecommendSpecies(c *gin.Context) {
	var conditions recommend.Conditions
	if err := c.ShouldBindJSON(&conditions); err != nil {
		abortWithError(c, malformedRequest(err))
		return
	}

	recs, err := h.recommender.Recommend(c.Request.Context(), conditions)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": recs, "conditions": conditions})
}

// ListSpecies returns every species profile.
func (h *Handler) ListSpecies(c *gin.Context) {
	ids := h.species.All()
	profiles := make([]species.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := h.species.Profile(id); ok {
			profiles = append(profiles, p)
		}
	}
	respond(c, http.StatusOK, profiles)
}

// GetSpecies returns one profile.
func (h *Handler) GetSpecies(c *gin.Context) {
	profile, ok := h.species.Profile(species.ID(c.Param("id")))
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "species not found", nil))
		return
	}
	respond(c, http.StatusOK, profile)
}

// SuitableSpecies pre-filters species for a season and water temperature.
func (h *Handler) SuitableSpecies(c *gin.Context) {
	var query species.SuitabilityQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	ids := h.species.ForConditions(query)
	if ids == nil {
		ids = []species.ID{}
	}
	respond(c, http.StatusOK, ids)
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func malformedRequest(err error) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, "internal_error", "Internal server error", err)
}

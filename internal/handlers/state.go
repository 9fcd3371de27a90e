package handlers

import (
	"net/http"

	"stokercloud_gateway/internal/sensors"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errNoSnapshot = "no controller data yet"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Raw controller snapshot
// @Description  The complete payload of the most recent successful controller fetch, plus refresh metadata.
// @Tags         state
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "data, refresh"
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	snapshot, info, ok := h.services.Monitoring.Snapshot()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      errNoSnapshot,
			"last_error": info.LastError,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    snapshot,
		"refresh": info,
	})
}

// @Summary      Projected sensor values
// @Description  The declarative sensor table applied to the latest snapshot, plus the derived device identity.
// @Tags         state
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "sensors, device, refresh"
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/sensors [get]
// @Security     BearerAuth
func (h *Handler) getSensors(c *gin.Context) {
	snapshot, info, ok := h.services.Monitoring.Snapshot()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      errNoSnapshot,
			"last_error": info.LastError,
		})
		return
	}

	resp := gin.H{
		"sensors": sensors.Project(snapshot),
		"refresh": info,
	}
	if identity, ok := sensors.Identity(snapshot); ok {
		resp["device"] = identity
	}
	c.JSON(http.StatusOK, resp)
}

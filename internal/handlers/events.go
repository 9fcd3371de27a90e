package handlers

import (
	"net/http"

	"stokercloud_gateway/internal/events"

	"github.com/gin-gonic/gin"
)

const errNoEvents = "no event data yet"

// @Summary      Furnace event log
// @Description  The latest event batch, truncated to the configured byte budget at this boundary only; the stored batch is never cut.
// @Tags         events
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "events, events_total, events_truncated, count, offset, translation_language, translations_loaded, refresh"
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/events [get]
// @Security     BearerAuth
func (h *Handler) getEvents(c *gin.Context) {
	batch, info, ok := h.services.EventLog.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      errNoEvents,
			"last_error": info.LastError,
		})
		return
	}

	truncated, wasTruncated := events.Truncate(batch.Events, h.attrByteBudget)
	c.JSON(http.StatusOK, gin.H{
		"events":               truncated,
		"events_total":         len(batch.Events),
		"events_truncated":     wasTruncated,
		"count":                batch.Count,
		"offset":               batch.Offset,
		"translation_language": batch.TranslationLanguage,
		"translations_loaded":  batch.TranslationsLoaded,
		"refresh":              info,
	})
}

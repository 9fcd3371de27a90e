package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errInvalidBodyPref = "invalid body: "

// Request DTO for the token exchange.
type tokenRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
}

// TokenRequest is an exported model for Swagger docs of the token payload.
type TokenRequest struct {
	// Access key configured for the local API
	AccessKey string `json:"access_key" example:"change-me"`
}

// @Summary      Issue local API token
// @Description  Exchanges the configured access key for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   TokenRequest  true  "Access key payload"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/token [post]
func (h *Handler) issueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	token, err := h.services.GenerateToken(req.AccessKey)
	if err != nil {
		h.logAndJSONError(c, http.StatusUnauthorized, "invalid access key", "token_issue_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

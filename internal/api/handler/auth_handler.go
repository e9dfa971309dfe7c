package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirenest/hirenest-be/internal/api/dto"
)

// IssueToken handles POST /jwt
// Signs a session token for the claimed email and sets it as an
// HTTP-only cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		h.logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue token",
		})
		return
	}

	h.cookies.Write(c.Writer, token)

	h.logger.Info("Session token issued",
		slog.String("email", req.Email),
	)

	c.JSON(http.StatusOK, dto.AckResponse{Success: true})
}

// Logout handles GET /logout
// Clears the session cookie. The signature stays valid until expiry, so
// a copied token keeps working elsewhere.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, dto.AckResponse{Success: true})
}

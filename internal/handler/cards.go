package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/devstats/social-card-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) userCard(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUsernameRequired.Error()))
		return
	}

	url, err := h.services.Cards.EnsureUser(c.Request.Context(), username)
	if err != nil {
		h.cardError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

func (h *Handler) userCardMetadata(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUsernameRequired.Error()))
		return
	}

	check, err := h.services.Cards.CheckUser(c.Request.Context(), username)
	if err != nil {
		h.cardError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

func (h *Handler) insightCard(c *gin.Context) {
	id, err := subjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	url, err := h.services.Cards.EnsureInsight(c.Request.Context(), id)
	if err != nil {
		h.cardError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

func (h *Handler) insightCardMetadata(c *gin.Context) {
	id, err := subjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	check, err := h.services.Cards.CheckInsight(c.Request.Context(), id)
	if err != nil {
		h.cardError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

func (h *Handler) highlightCard(c *gin.Context) {
	id, err := subjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	url, err := h.services.Cards.EnsureHighlight(c.Request.Context(), id)
	if err != nil {
		h.cardError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

func (h *Handler) highlightCardMetadata(c *gin.Context) {
	id, err := subjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	check, err := h.services.Cards.CheckHighlight(c.Request.Context(), id)
	if err != nil {
		h.cardError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

func subjectID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
}

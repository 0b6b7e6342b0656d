package handler

import (
	"net/http"

	"github.com/devstats/social-card-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestIDMiddleware)

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"GET"},
	}))

	r.GET("/health", h.health)

	v1 := r.Group("/v1")
	{
		users := v1.Group("/users/:username")
		{
			users.GET("/social-card", h.userCard)
			users.GET("/social-card/metadata", h.userCardMetadata)
		}

		insights := v1.Group("/insights/:id")
		{
			insights.GET("/social-card", h.insightCard)
			insights.GET("/social-card/metadata", h.insightCardMetadata)
		}

		highlights := v1.Group("/highlights/:id")
		{
			highlights.GET("/social-card", h.highlightCard)
			highlights.GET("/social-card/metadata", h.highlightCardMetadata)
		}
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"cardsGenerated": h.services.GeneratedTotals(c.Request.Context()),
	})
}

package handlers

import (
	"net/http"

	"invoice-service/internal/models"
	"invoice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService services.IClientService
}

func NewClientHandler(clientService services.IClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	clientGr := router.Group("/clients")
	clientGr.POST("", h.CreateClient)
	clientGr.GET("", h.GetAllClients)
	clientGr.GET("/:id", h.GetClientByID)
	clientGr.PUT("/:id", h.UpdateClient)
	clientGr.DELETE("/:id", h.DeleteClient)
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, client)
}

func (h *ClientHandler) GetAllClients(c *gin.Context) {
	clients, err := h.clientService.GetAllClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, clients)
}

func (h *ClientHandler) GetClientByID(c *gin.Context) {
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, client)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Client deleted successfully")
}

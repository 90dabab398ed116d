package handlers

import (
	"net/http"

	"invoice-service/internal/models"
	"invoice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type BankDetailHandler struct {
	bankService services.IBankDetailService
}

func NewBankDetailHandler(bankService services.IBankDetailService) *BankDetailHandler {
	return &BankDetailHandler{bankService: bankService}
}

func (h *BankDetailHandler) RegisterRoutes(router *gin.RouterGroup) {
	bankGr := router.Group("/banks")
	bankGr.POST("", h.CreateBankDetail)
	bankGr.GET("", h.GetAllBankDetails)
	bankGr.GET("/:id", h.GetBankDetailByID)
	bankGr.PUT("/:id", h.UpdateBankDetail)
	bankGr.DELETE("/:id", h.DeleteBankDetail)
}

func (h *BankDetailHandler) CreateBankDetail(c *gin.Context) {
	var req models.CreateBankDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	bank, err := h.bankService.CreateBankDetail(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, bank)
}

func (h *BankDetailHandler) GetAllBankDetails(c *gin.Context) {
	banks, err := h.bankService.GetAllBankDetails(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, banks)
}

func (h *BankDetailHandler) GetBankDetailByID(c *gin.Context) {
	bank, err := h.bankService.GetBankDetailByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, bank)
}

func (h *BankDetailHandler) UpdateBankDetail(c *gin.Context) {
	var req models.UpdateBankDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	bank, err := h.bankService.UpdateBankDetail(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, bank)
}

func (h *BankDetailHandler) DeleteBankDetail(c *gin.Context) {
	if err := h.bankService.DeleteBankDetail(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Bank detail deleted successfully")
}

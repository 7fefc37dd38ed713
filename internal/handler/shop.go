package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/middleware"
	"github.com/campusone/campus-hub-api/internal/service"
)

type ShopHandler struct {
	shopService *service.ShopService
}

func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

func (h *ShopHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shops": h.shopService.List()})
}

func (h *ShopHandler) GetByID(c *gin.Context) {
	shop, err := h.shopService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) AddItem(c *gin.Context) {
	shopID := c.Param("id")
	if middleware.GetUser(c).ShopID != shopID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your shop"})
		return
	}

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.shopService.AddItem(c.Request.Context(), shopID, req); err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	shop, _ := h.shopService.Get(shopID)
	c.JSON(http.StatusCreated, shop)
}

func (h *ShopHandler) UpdateItem(c *gin.Context) {
	shopID := c.Param("id")
	if middleware.GetUser(c).ShopID != shopID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your shop"})
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.shopService.UpdateItem(c.Request.Context(), shopID, c.Param("itemID"), req); err != nil {
		if errors.Is(err, service.ErrShopNotFound) || errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	shop, _ := h.shopService.Get(shopID)
	c.JSON(http.StatusOK, shop)
}

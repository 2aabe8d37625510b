package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"receiptsync/internal/formatter"
	"receiptsync/internal/logger"
	"receiptsync/internal/models"
	"receiptsync/internal/store"
	"receiptsync/internal/sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	store  *store.Store
	engine *sync.Engine
	logger *logger.Logger
}

func NewOrderHandler(store *store.Store, engine *sync.Engine, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	orders, total, err := h.store.ListOrders(offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.store.GetOrder(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (h *OrderHandler) Create(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if order.Date.IsZero() {
		order.Date = time.Now()
	}

	if err := h.store.CreateOrder(&order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": order})
}

// Complete marks the order complete and pushes its receipt. A failed
// push never fails the completion; the outcome is reported alongside.
func (h *OrderHandler) Complete(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.store.GetOrder(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if err := h.store.CompleteOrder(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		return
	}

	response := gin.H{"completed": true}
	result, err := h.engine.PushOrder(id)
	if err != nil {
		h.logger.Error("Receipt push failed for order %s: %v", id, err)
		response["sync"] = gin.H{"outcome": "error"}
	} else {
		response["sync"] = gin.H{"outcome": result.Outcome, "code": result.Code}
	}

	order, _ := h.store.GetOrder(id)
	response["data"] = order

	c.JSON(http.StatusOK, response)
}

func (h *OrderHandler) Resend(c *gin.Context) {
	id := c.Param("id")

	result, err := h.engine.Resend(id)
	if err != nil {
		if errors.Is(err, formatter.ErrSkip) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resend receipt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sync": gin.H{"outcome": result.Outcome, "code": result.Code},
	})
}

func (h *OrderHandler) Notes(c *gin.Context) {
	notes, err := h.store.OrderNotes(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notes})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"receiptsync/internal/logger"
	"receiptsync/internal/models"
	"receiptsync/internal/store"
	"receiptsync/internal/sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	store  *store.Store
	engine *sync.Engine
	logger *logger.Logger
}

func NewProductHandler(store *store.Store, engine *sync.Engine, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	products, total, err := h.store.ListProducts(offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.store.GetProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.CreateProduct(&product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.push(product.ID)

	c.JSON(http.StatusCreated, gin.H{"data": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")

	product, err := h.store.GetProduct(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	if err := c.ShouldBindJSON(product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product.ID = id

	if err := h.store.SaveProduct(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.push(id)

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Delete trashes the product locally and removes it remotely. The
// remote call failing never fails the local trash.
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.TrashProduct(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	if _, err := h.engine.DeleteProduct(id); err != nil {
		h.logger.Error("Remote delete failed for product %s: %v", id, err)
	}

	c.JSON(http.StatusNoContent, nil)
}

// push mirrors a local change into the remote catalog. Transient
// failures end up on the retry queue, so the HTTP response stays 2xx.
func (h *ProductHandler) push(id string) {
	if _, err := h.engine.PushProduct(id); err != nil {
		h.logger.Error("Product sync failed for %s: %v", id, err)
	}
}

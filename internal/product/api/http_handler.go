package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/product-service/internal/platform/logger"
	"github.com/ridloal/product-service/internal/platform/middleware"
	"github.com/ridloal/product-service/internal/product/domain"
	"github.com/ridloal/product-service/internal/product/repository"
	"github.com/ridloal/product-service/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
	writeAuth      gin.HandlerFunc
}

// NewProductHandler wires the handler. writeAuth guards mutating routes,
// pass nil to leave them open.
func NewProductHandler(ps service.ProductService, writeAuth gin.HandlerFunc) *ProductHandler {
	if writeAuth == nil {
		writeAuth = func(c *gin.Context) { c.Next() }
	}
	return &ProductHandler{productService: ps, writeAuth: writeAuth}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.POST("", h.writeAuth, h.CreateProduct)
		productRoutes.GET("/:id", h.GetProduct)
	}
}

func (h *ProductHandler) RegisterHealth(router gin.IRoutes) {
	router.GET("/healthz", h.Health)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	payload := decodePayload(c)

	resp, err := h.productService.CreateProduct(c.Request.Context(), payload)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Error()})
		case errors.Is(err, service.ErrSKUAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Hdl.CreateProduct: service error", err, logger.Fields{"request_id": c.GetString(middleware.RequestIDKey)})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// decodePayload reads the body as a JSON object. Anything else, including an
// empty or malformed body, yields an empty map.
func decodePayload(c *gin.Context) map[string]interface{} {
	payload := map[string]interface{}{}

	body, err := c.GetRawData()
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return payload
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var decoded map[string]interface{}
	if err := dec.Decode(&decoded); err != nil || decoded == nil {
		return payload
	}
	return decoded
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Hdl.GetProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Health(c *gin.Context) {
	if err := h.productService.Health(c.Request.Context()); err != nil {
		logger.Error("Hdl.Health: database unreachable", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> catalog list. By default only active products (what the
// terminal sells); ?include_inactive=true shows everything for maintenance.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	query := pc.DB.Preload("Category").Order("name")
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductByID
func (pc *ProductController) GetProductByID(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Preload("Category").Where("id = ?", c.Param("product_id")).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// CreateProduct
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var body struct {
		Name       string  `json:"name" binding:"required"`
		CostPrice  float64 `json:"cost_price"`
		SellPrice  float64 `json:"sell_price" binding:"required,gt=0"`
		CategoryID string  `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.ProductCategory
	if err := pc.DB.Where("id = ?", body.CategoryID).First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("category not found"))
		return
	}

	product := models.Product{
		ID:         uuid.New().String(),
		Name:       body.Name,
		CostPrice:  body.CostPrice,
		SellPrice:  body.SellPrice,
		IsActive:   true,
		CategoryID: category.ID,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct mutates catalog data only; committed order lines keep their
// price snapshots.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Where("id = ?", c.Param("product_id")).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name       *string  `json:"name"`
		CostPrice  *float64 `json:"cost_price"`
		SellPrice  *float64 `json:"sell_price"`
		IsActive   *bool    `json:"is_active"`
		CategoryID *string  `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		product.Name = *body.Name
	}
	if body.CostPrice != nil {
		product.CostPrice = *body.CostPrice
	}
	if body.SellPrice != nil {
		product.SellPrice = *body.SellPrice
	}
	if body.IsActive != nil {
		product.IsActive = *body.IsActive
	}
	if body.CategoryID != nil {
		product.CategoryID = *body.CategoryID
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct deactivates rather than deletes when the product is already
// referenced by order lines, so historical orders stay intact.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productID := c.Param("product_id")

	var refCount int64
	if err := pc.DB.Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&refCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if refCount > 0 {
		if err := pc.DB.Model(&models.Product{}).Where("id = ?", productID).Update("is_active", false).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Product deactivated (referenced by orders)", gin.H{"product_id": productID})
		return
	}

	if err := pc.DB.Where("id = ?", productID).Delete(&models.Product{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": productID})
}

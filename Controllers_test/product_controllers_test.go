package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/controllers"
	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/utils"
)

func setupCatalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	productCtrl := controllers.NewProductController(db)
	categoryCtrl := controllers.NewCategoryController(db)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:product_id", productCtrl.GetProductByID)
	router.POST("/products", productCtrl.CreateProduct)
	router.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	router.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	router.GET("/categories", categoryCtrl.GetAllCategories)
	router.POST("/categories", categoryCtrl.CreateCategory)
	router.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
	return router
}

func TestProductCatalogCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupCatalogRouter(db)

	// Buat kategori dulu
	w := doJSON(t, router, "POST", "/categories", map[string]interface{}{
		"name": "Skewers",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	catID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = doJSON(t, router, "POST", "/products", map[string]interface{}{
		"name":        "Chicken Skewer",
		"cost_price":  2.5,
		"sell_price":  6.0,
		"category_id": catID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	product := decodeBody(t, w)["data"].(map[string]interface{})
	productID := product["id"].(string)
	assert.True(t, product["is_active"].(bool))

	// Update harga jual saja
	w = doJSON(t, router, "PATCH", "/products/"+productID, map[string]interface{}{
		"sell_price": 6.5,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["data"].(map[string]interface{})
	assert.InDelta(t, 6.5, updated["sell_price"].(float64), 1e-9)
	assert.Equal(t, "Chicken Skewer", updated["name"])

	// Produk tanpa referensi order dihapus permanen
	w = doJSON(t, router, "DELETE", "/products/"+productID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Product{}).Where("id = ?", productID).Count(&count)
	assert.Zero(t, count)
}

func TestCreateProductRequiresExistingCategory(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupCatalogRouter(db)

	w := doJSON(t, router, "POST", "/products", map[string]interface{}{
		"name":        "Ghost Product",
		"sell_price":  5.0,
		"category_id": "no-such-category",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInactiveProductPersistsAsInactive(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)

	created := models.Product{ID: "prod-new-inactive", Name: "Seasonal Item", SellPrice: 4.0, IsActive: false}
	assert.NoError(t, db.Create(&created).Error)

	var persisted models.Product
	assert.NoError(t, db.First(&persisted, "id = ?", "prod-new-inactive").Error)
	assert.False(t, persisted.IsActive)

	// Seed nonaktif dari setup juga harus tetap nonaktif
	persisted = models.Product{}
	assert.NoError(t, db.First(&persisted, "id = ?", "prod-old").Error)
	assert.False(t, persisted.IsActive)
}

func TestGetAllProductsHidesInactive(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupCatalogRouter(db)

	w := doJSON(t, router, "GET", "/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	products := decodeBody(t, w)["data"].([]interface{})
	for _, p := range products {
		assert.True(t, p.(map[string]interface{})["is_active"].(bool))
	}

	w = doJSON(t, router, "GET", "/products?include_inactive=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	all := decodeBody(t, w)["data"].([]interface{})
	assert.Greater(t, len(all), len(products))
}

func TestDeleteReferencedProductDeactivates(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupCatalogRouter(db)

	order := seedOpenOrder(t, db, 7.0)
	item := models.OrderItem{
		OrderID:   order.ID,
		ProductID: "prod-skewer",
		Quantity:  1,
		UnitPrice: 7.0,
	}
	assert.NoError(t, db.Create(&item).Error)

	w := doJSON(t, router, "DELETE", "/products/prod-skewer", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deactivated (referenced by orders)", decodeBody(t, w)["message"])

	var product models.Product
	assert.NoError(t, db.First(&product, "id = ?", "prod-skewer").Error)
	assert.False(t, product.IsActive)

	// Line order lama tetap menyimpan snapshot harganya
	var persistedItem models.OrderItem
	assert.NoError(t, db.First(&persistedItem, item.ID).Error)
	assert.InDelta(t, 7.0, persistedItem.UnitPrice, 1e-9)
}

func TestDeleteCategoryWithProductsConflicts(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupCatalogRouter(db)

	category := models.ProductCategory{ID: "cat-1", Name: "Drinks"}
	assert.NoError(t, db.Create(&category).Error)
	assert.NoError(t, db.Model(&models.Product{}).Where("id = ?", "prod-soda").Update("category_id", "cat-1").Error)

	w := doJSON(t, router, "DELETE", "/categories/cat-1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

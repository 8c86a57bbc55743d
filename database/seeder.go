package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/utils"
)

// SeedDatabase fills an empty catalog with a starter menu so a fresh
// terminal is usable right away. Existing data is never touched.
func SeedDatabase(db *gorm.DB) error {
	var categoryCount int64
	if err := db.Model(&models.ProductCategory{}).Count(&categoryCount).Error; err != nil {
		return err
	}

	if categoryCount > 0 {
		return nil
	}

	grill := models.ProductCategory{ID: uuid.New().String(), Name: "Skewers"}
	drinks := models.ProductCategory{ID: uuid.New().String(), Name: "Drinks"}

	if err := db.Create(&[]models.ProductCategory{grill, drinks}).Error; err != nil {
		return err
	}

	products := []models.Product{
		{ID: uuid.New().String(), Name: "Beef Skewer", CostPrice: 3.50, SellPrice: 7.00, IsActive: true, CategoryID: grill.ID},
		{ID: uuid.New().String(), Name: "Chicken Skewer", CostPrice: 2.80, SellPrice: 6.00, IsActive: true, CategoryID: grill.ID},
		{ID: uuid.New().String(), Name: "Chicken Thigh Skewer", CostPrice: 2.50, SellPrice: 6.00, IsActive: true, CategoryID: grill.ID},
		{ID: uuid.New().String(), Name: "Sausage Skewer", CostPrice: 2.50, SellPrice: 6.00, IsActive: true, CategoryID: grill.ID},
		{ID: uuid.New().String(), Name: "Chicken Medallion", CostPrice: 5.00, SellPrice: 8.50, IsActive: true, CategoryID: grill.ID},
		{ID: uuid.New().String(), Name: "Cheese Medallion", CostPrice: 5.00, SellPrice: 7.50, IsActive: true, CategoryID: grill.ID},
		{ID: uuid.New().String(), Name: "Kafta Skewer", CostPrice: 3.50, SellPrice: 7.50, IsActive: true, CategoryID: grill.ID},
		{ID: uuid.New().String(), Name: "Soda Can 350 ml", CostPrice: 3.00, SellPrice: 5.00, IsActive: true, CategoryID: drinks.ID},
		{ID: uuid.New().String(), Name: "Guarana Can 350 ml", CostPrice: 3.00, SellPrice: 5.00, IsActive: true, CategoryID: drinks.ID},
		{ID: uuid.New().String(), Name: "Beer Can 350 ml", CostPrice: 3.00, SellPrice: 5.00, IsActive: true, CategoryID: drinks.ID},
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded catalog with %d products in 2 categories", len(products))
	return nil
}

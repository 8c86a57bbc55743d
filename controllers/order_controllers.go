package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> list orders beserta items. ?status=open|finished filters
// by the paid flag.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Client").Preload("OrderItems").Order("created_at DESC")

	switch c.Query("status") {
	case "open":
		query = query.Where("is_paid = ?", false)
	case "finished":
		query = query.Where("is_paid = ?", true)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	err = oc.DB.Preload("Client").
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("Payments").
		First(&order, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/events"
	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/services"
	"github.com/yeremiapane/pos-app/utils"
)

type PaymentController struct {
	DB       *gorm.DB
	Checkout *services.CheckoutService
}

func NewPaymentController(db *gorm.DB, checkout *services.CheckoutService) *PaymentController {
	return &PaymentController{DB: db, Checkout: checkout}
}

// GetAllPayments
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	var payments []models.Payment
	if err := pc.DB.Preload("Order").Order("paid_at DESC").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All payments", payments)
}

// GetPaymentByID
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	var payment models.Payment
	if err := pc.DB.Preload("Order").Where("id = ?", c.Param("payment_id")).First(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// PreviewChange computes change due for an amount tendered against an
// order's stored total. Nothing is persisted until ConfirmPayment.
func (pc *PaymentController) PreviewChange(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	tendered, err := strconv.ParseFloat(c.Query("tendered"), 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid tendered amount"))
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	change := services.ComputeChange(tendered, order.TotalAmount)
	utils.RespondJSON(c, http.StatusOK, "Change preview", gin.H{
		"order_total":      order.TotalAmount,
		"amount_tendered":  tendered,
		"change":           change,
		"change_formatted": utils.FormatCurrency(change),
	})
}

// ConfirmPayment settles a held-open order with a single payment for its
// stored total.
func (pc *PaymentController) ConfirmPayment(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var body struct {
		PaymentMethod  string   `json:"payment_method" binding:"required"`
		AmountTendered *float64 `json:"amount_tendered,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, payment, err := pc.Checkout.ConfirmPayment(uint(orderID), body.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastPaymentRecorded(*payment, *order)

	data := gin.H{
		"order":   order,
		"payment": payment,
	}
	if body.AmountTendered != nil {
		change := services.ComputeChange(*body.AmountTendered, payment.Amount)
		data["amount_tendered"] = *body.AmountTendered
		data["change"] = change
		data["change_formatted"] = utils.FormatCurrency(change)
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", data)
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/events"
	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/utils"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// GetAllReceipts
func (rc *ReceiptController) GetAllReceipts(c *gin.Context) {
	var receipts []models.Receipt
	if err := rc.DB.Preload("Order").Preload("Payment").
		Order("created_at DESC").Find(&receipts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All receipts", receipts)
}

// GetReceiptByID
func (rc *ReceiptController) GetReceiptByID(c *gin.Context) {
	var receipt models.Receipt
	if err := rc.DB.Preload("Order.Client").Preload("Order.OrderItems.Product").Preload("Payment").
		First(&receipt, c.Param("receipt_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt detail", receipt)
}

// GenerateReceipt membuat struk untuk pembayaran yang sudah tercatat.
// Idempotent: payment yang sudah punya struk mengembalikan struk lama.
func (rc *ReceiptController) GenerateReceipt(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var receipt models.Receipt
	created := false

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("id = ?", paymentID).First(&payment).Error; err != nil {
			return err
		}

		// Struk lama dipakai ulang kalau sudah ada
		if err := tx.Where("payment_id = ?", payment.ID).First(&receipt).Error; err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Jendela hitung harus hari lokal yang sama dengan tanggal di nomor
		// struk, bukan batas hari UTC
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		var seq int64
		if err := tx.Model(&models.Receipt{}).
			Where("created_at >= ?", dayStart).Count(&seq).Error; err != nil {
			return err
		}

		receipt = models.Receipt{
			OrderID:       payment.OrderID,
			PaymentID:     payment.ID,
			ReceiptNumber: fmt.Sprintf("RCP/%s/%06d", now.Format("20060102"), seq+1),
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := rc.DB.Preload("Order.Client").Preload("Order.OrderItems.Product").Preload("Payment").
		First(&receipt, receipt.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if created {
		events.BroadcastReceiptCreated(receipt)
		utils.InfoLogger.Printf("Receipt %s generated for payment %s", receipt.ReceiptNumber, paymentID)
		utils.RespondJSON(c, http.StatusCreated, "Receipt generated", receipt)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt already exists", receipt)
}

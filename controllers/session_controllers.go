package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/database"
	"github.com/yeremiapane/pos-app/events"
	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/services"
	"github.com/yeremiapane/pos-app/utils"
)

// SessionController exposes the checkout session: cart mutations, hold-open
// and checkout. One session belongs to one terminal operator.
type SessionController struct {
	DB       *gorm.DB
	Sessions *services.SessionManager
	Checkout *services.CheckoutService
	Orders   *database.OrderRepository
}

func NewSessionController(db *gorm.DB, sessions *services.SessionManager, checkout *services.CheckoutService, orders *database.OrderRepository) *SessionController {
	return &SessionController{
		DB:       db,
		Sessions: sessions,
		Checkout: checkout,
		Orders:   orders,
	}
}

type cartView struct {
	SessionID      string              `json:"session_id"`
	ClientName     string              `json:"client_name"`
	EditingOrderID *uint               `json:"editing_order_id,omitempty"`
	Lines          []services.CartLine `json:"lines"`
	Total          float64             `json:"total"`
	TotalFormatted string              `json:"total_formatted"`
}

func viewOf(session *services.CartSession) cartView {
	total := session.Total()
	return cartView{
		SessionID:      session.ID,
		ClientName:     session.ClientName(),
		EditingOrderID: session.EditingOrderID(),
		Lines:          session.Lines(),
		Total:          total,
		TotalFormatted: utils.FormatCurrency(total),
	}
}

// CreateSession -> buka sesi checkout baru
func (sc *SessionController) CreateSession(c *gin.Context) {
	session := sc.Sessions.NewSession()
	utils.RespondJSON(c, http.StatusCreated, "Session created", viewOf(session))
}

// GetSession -> cart state saat ini
func (sc *SessionController) GetSession(c *gin.Context) {
	session, ok := sc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session state", viewOf(session))
}

// DeleteSession abandons the cart; nothing was persisted for it.
func (sc *SessionController) DeleteSession(c *gin.Context) {
	sc.Sessions.Delete(c.Param("session_id"))
	utils.RespondJSON(c, http.StatusOK, "Session discarded", nil)
}

// SetClient -> nama client untuk order ini
func (sc *SessionController) SetClient(c *gin.Context) {
	session, ok := sc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session.SetClientName(body.Name)
	utils.RespondJSON(c, http.StatusOK, "Client updated", viewOf(session))
}

// AddItem -> tambahkan produk ke cart
func (sc *SessionController) AddItem(c *gin.Context) {
	session, ok := sc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}

	var body struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := sc.DB.Where("id = ? AND is_active = ?", body.ProductID, true).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("product not found or inactive"))
		return
	}

	session.AddLine(product)
	utils.RespondJSON(c, http.StatusOK, "Item added", viewOf(session))
}

// IncrementItem -> quantity +1
func (sc *SessionController) IncrementItem(c *gin.Context) {
	sc.adjustLine(c, func(session *services.CartSession, productID string) error {
		return session.IncrementLine(productID)
	}, "Quantity increased")
}

// DecrementItem -> quantity -1 (line dihapus jika quantity 1)
func (sc *SessionController) DecrementItem(c *gin.Context) {
	sc.adjustLine(c, func(session *services.CartSession, productID string) error {
		return session.DecrementLine(productID)
	}, "Quantity decreased")
}

// RemoveItem -> hapus line
func (sc *SessionController) RemoveItem(c *gin.Context) {
	sc.adjustLine(c, func(session *services.CartSession, productID string) error {
		return session.RemoveLine(productID)
	}, "Item removed")
}

func (sc *SessionController) adjustLine(c *gin.Context, fn func(*services.CartSession, string) error, message string) {
	session, ok := sc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}

	if err := fn(session, c.Param("product_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, viewOf(session))
}

// LoadOrder re-hydrates the cart from a held-open order for editing.
func (sc *SessionController) LoadOrder(c *gin.Context) {
	session, ok := sc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := sc.Orders.FindOrderWithItems(sc.DB, uint(orderID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(c, services.ErrOrderNotFound)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if order.IsPaid {
		// Order yang sudah dibayar tidak bisa diedit lagi
		respondServiceError(c, services.ErrAlreadyPaid)
		return
	}

	session.LoadFromOrder(order)
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Editing %s", order.Reference()), viewOf(session))
}

// SaveOpen persists the cart as an open order (no payment).
func (sc *SessionController) SaveOpen(c *gin.Context) {
	session, ok := sc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}

	wasEditing := session.EditingOrderID() != nil

	order, err := sc.Checkout.SaveOpen(session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if wasEditing {
		events.BroadcastOrderUpdated(*order)
	} else {
		events.BroadcastOrderCreated(*order)
	}

	action := "held open"
	if wasEditing {
		action = "updated"
	}
	utils.RespondJSON(c, http.StatusCreated, fmt.Sprintf("%s %s", order.Reference(), action), order)
}

// CheckoutSession persists the cart together with its payment.
func (sc *SessionController) CheckoutSession(c *gin.Context) {
	session, ok := sc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
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

	wasEditing := session.EditingOrderID() != nil

	order, payment, err := sc.Checkout.Checkout(session, body.PaymentMethod)
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

	action := "checked out"
	if wasEditing {
		action = "completed"
	}
	utils.RespondJSON(c, http.StatusCreated, fmt.Sprintf("%s %s", order.Reference(), action), data)
}

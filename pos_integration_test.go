package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/router"
	"github.com/yeremiapane/pos-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama kasir:
// 0. Seed user & produk, lalu login -> token
// 1. Buka sesi, isi cart
// 2. Simpan sebagai order terbuka
// 3. Dashboard: order muncul di open, revenue 0
// 4. Konfirmasi pembayaran
// 5. Dashboard: order pindah ke finished, revenue naik
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	sessionID := createSessionTest(t, r, token)
	addItemTest(t, r, token, sessionID, "prod-skewer")
	addItemTest(t, r, token, sessionID, "prod-skewer")
	addItemTest(t, r, token, sessionID, "prod-soda")

	orderID := saveOpenTest(t, r, token, sessionID)

	openCount, revenue := dashboardTest(t, r, token)
	if openCount != 1 {
		t.Fatalf("expected 1 open order, got %d", openCount)
	}
	if revenue != 0 {
		t.Fatalf("expected zero revenue before payment, got %f", revenue)
	}

	confirmPaymentTest(t, r, token, orderID)

	openCount, revenue = dashboardTest(t, r, token)
	if openCount != 0 {
		t.Fatalf("expected no open orders after payment, got %d", openCount)
	}
	if revenue != 17.0 {
		t.Fatalf("expected revenue 17.0, got %f", revenue)
	}
}

// setupIntegrationDB -> migrasi model di SQLite in-memory + seed data
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Receipt{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Cashier",
		Email:    "cashier@example.com",
		Password: string(hashedPassword),
		Role:     "cashier",
	})

	category := models.ProductCategory{ID: "cat-skewers", Name: "Skewers"}
	db.Create(&category)
	db.Create(&[]models.Product{
		{ID: "prod-skewer", Name: "Beef Skewer", CostPrice: 3.5, SellPrice: 7.0, IsActive: true, CategoryID: category.ID},
		{ID: "prod-soda", Name: "Soda Can", CostPrice: 1.0, SellPrice: 3.0, IsActive: true, CategoryID: category.ID},
	})

	return db
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w, resp := doRequest(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    "cashier@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var data struct {
		Token string `json:"token"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.Token == "" {
		t.Fatalf("loginTest: token empty")
	}
	return data.Token
}

func createSessionTest(t *testing.T, r *gin.Engine, token string) string {
	w, resp := doRequest(t, r, http.MethodPost, "/sessions", token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("createSessionTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var data struct {
		SessionID string `json:"session_id"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.SessionID == "" {
		t.Fatalf("createSessionTest: session id empty")
	}
	return data.SessionID
}

func addItemTest(t *testing.T, r *gin.Engine, token, sessionID, productID string) {
	w, _ := doRequest(t, r, http.MethodPost, "/sessions/"+sessionID+"/items", token, map[string]interface{}{
		"product_id": productID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("addItemTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func saveOpenTest(t *testing.T, r *gin.Engine, token, sessionID string) uint {
	w, resp := doRequest(t, r, http.MethodPost, "/sessions/"+sessionID+"/save-open", token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("saveOpenTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var data struct {
		ID     uint `json:"id"`
		IsPaid bool `json:"is_paid"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.IsPaid {
		t.Fatalf("saveOpenTest: order should not be paid yet")
	}
	if data.ID == 0 {
		t.Fatalf("saveOpenTest: order id empty")
	}
	return data.ID
}

func confirmPaymentTest(t *testing.T, r *gin.Engine, token string, orderID uint) {
	url := fmt.Sprintf("/orders/%d/pay", orderID)
	w, _ := doRequest(t, r, http.MethodPost, url, token, map[string]interface{}{
		"payment_method":  models.PaymentMethodCash,
		"amount_tendered": 20.0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("confirmPaymentTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}
}

func dashboardTest(t *testing.T, r *gin.Engine, token string) (int, float64) {
	w, resp := doRequest(t, r, http.MethodGet, "/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboardTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var data struct {
		OpenOrders   []json.RawMessage `json:"open_orders"`
		RevenueToday float64           `json:"revenue_today"`
	}
	json.Unmarshal(resp.Data, &data)
	return len(data.OpenOrders), data.RevenueToday
}

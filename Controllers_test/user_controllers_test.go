package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/controllers"
	"github.com/yeremiapane/pos-app/middlewares"
	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/utils"
)

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		panic(err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	router.POST("/logout", middlewares.AuthMiddleware(), userCtrl.Logout)
	router.GET("/profile", middlewares.AuthMiddleware(), userCtrl.GetProfile)
	return router
}

func TestRegisterLoginProfile(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	user := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "cashier", user["role"])
	// Password tidak pernah ikut di response
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)

	w = doJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "ana@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	token := data["token"].(string)
	assert.NotEmpty(t, token)

	req, err := http.NewRequest("GET", "/profile", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := performRequest(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)
	profile := decodeBody(t, w2)["data"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", profile["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "ana@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":     "Bo",
		"email":    "bo@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "bo@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["data"].(map[string]interface{})["token"].(string)

	req, _ := http.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := performRequest(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	// Token yang sama tidak bisa dipakai lagi
	req, _ = http.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w3 := performRequest(router, req)
	assert.Equal(t, http.StatusUnauthorized, w3.Code)
}

func TestRegisterRejectsBadRole(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":     "Eve",
		"email":    "eve@example.com",
		"password": "supersecret1",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"surveyhub_backend/internal/config"
	"surveyhub_backend/internal/middleware"
	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/repository"
	"surveyhub_backend/internal/service"
	"surveyhub_backend/internal/util"
	pkglogger "surveyhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	pkglogger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
	}
	userRepo := repository.NewUserRepository(db)
	authController := NewAuthController(service.NewAuthService(userRepo, cfg))

	router := gin.New()
	api := router.Group("/api")
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg, userRepo))
	authed.GET("/auth/me", authController.Me)
	authed.PUT("/auth/me", authController.UpdateMe)

	return router
}

func postJSON(router *gin.Engine, path, token string, payload interface{}) *httptest.ResponseRecorder {
	return sendJSON(router, http.MethodPost, path, token, payload)
}

func sendJSON(router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) util.Response {
	t.Helper()
	var resp util.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v (body %s)", err, w.Body.String())
	}
	return resp
}

func registerUser(t *testing.T, router *gin.Engine, username, email string) {
	t.Helper()
	w := postJSON(router, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body %s", email, w.Code, w.Body.String())
	}
}

func loginUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := postJSON(router, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body %s", email, w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	return data["token"].(string)
}

func TestRegisterEndpoint(t *testing.T) {
	router := setupAuthRouter(t)

	w := postJSON(router, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	if data["message"] != "注册成功，您是第一个用户，已被设置为管理员" {
		t.Errorf("first-user message = %q", data["message"])
	}

	w = postJSON(router, "/api/auth/register", "", gin.H{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "secret123",
	})
	resp = decodeResponse(t, w)
	data = resp.Data.(map[string]interface{})
	if data["message"] != "注册成功" {
		t.Errorf("second-user message = %q", data["message"])
	}
}

func TestRegisterValidation(t *testing.T) {
	router := setupAuthRouter(t)

	// 密码太短
	w := postJSON(router, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("short password status = %d, want 400", w.Code)
	}

	// 非法邮箱
	w = postJSON(router, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "not-an-email",
		"password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad email status = %d, want 400", w.Code)
	}

	registerUser(t, router, "alice", "alice@example.com")
	w = postJSON(router, "/api/auth/register", "", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate email status = %d, want 400", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Message != "该邮箱已被注册" {
		t.Errorf("duplicate email message = %q", resp.Message)
	}
}

func TestLoginEndpoint(t *testing.T) {
	router := setupAuthRouter(t)
	registerUser(t, router, "alice", "alice@example.com")

	w := postJSON(router, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	if data["token"] == "" {
		t.Error("empty token")
	}
	user := data["user"].(map[string]interface{})
	if user["email"] != "alice@example.com" || user["role"] != "admin" {
		t.Errorf("user view = %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password leaked in login response")
	}

	w = postJSON(router, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Message != "邮箱或密码错误" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestMeEndpoint(t *testing.T) {
	router := setupAuthRouter(t)
	registerUser(t, router, "alice", "alice@example.com")
	token := loginUser(t, router, "alice@example.com")

	w := sendJSON(router, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous /me status = %d, want 401", w.Code)
	}

	w = sendJSON(router, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	user := data["user"].(map[string]interface{})
	if user["username"] != "alice" || user["email"] != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}
	// 投影不含角色和密码
	if _, ok := user["role"]; ok {
		t.Error("role should not appear in /me projection")
	}
	if data["token"] != token {
		t.Errorf("echoed token mismatch")
	}
}

func TestUpdateMeEndpoint(t *testing.T) {
	router := setupAuthRouter(t)
	registerUser(t, router, "alice", "alice@example.com")
	registerUser(t, router, "bob", "bob@example.com")
	token := loginUser(t, router, "alice@example.com")

	// 空补丁
	w := sendJSON(router, http.MethodPut, "/api/auth/me", token, gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty patch status = %d, want 400", w.Code)
	}

	// 抢占他人邮箱
	w = sendJSON(router, http.MethodPut, "/api/auth/me", token, gin.H{"email": "bob@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("taken email status = %d, want 400", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Message != "该邮箱已被使用" {
		t.Errorf("message = %q", resp.Message)
	}

	w = sendJSON(router, http.MethodPut, "/api/auth/me", token, gin.H{"username": "alice-renamed"})
	if w.Code != http.StatusOK {
		t.Fatalf("rename status = %d, body %s", w.Code, w.Body.String())
	}

	w = sendJSON(router, http.MethodGet, "/api/auth/me", token, nil)
	resp := decodeResponse(t, w)
	user := resp.Data.(map[string]interface{})["user"].(map[string]interface{})
	if user["username"] != "alice-renamed" {
		t.Errorf("username = %q, want alice-renamed", user["username"])
	}
}

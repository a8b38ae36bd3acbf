package service

import (
	"errors"
	"testing"
	"time"

	"surveyhub_backend/internal/config"
	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/repository"
	"surveyhub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// 内存库只在单个连接里存在
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Survey{},
		&model.Question{},
		&model.Option{},
		&model.Response{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
	}
	return NewAuthService(repository.NewUserRepository(db), cfg), db
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	svc, _ := newAuthService(t)

	first, isFirst, err := svc.Register("alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("register first: %v", err)
	}
	if !isFirst {
		t.Error("expected isFirst for first registrant")
	}
	if first.Role != model.RoleAdmin {
		t.Errorf("first user role = %q, want admin", first.Role)
	}

	second, isFirst, err := svc.Register("bob", "bob@example.com", "secret2")
	if err != nil {
		t.Fatalf("register second: %v", err)
	}
	if isFirst {
		t.Error("second registrant should not be first")
	}
	if second.Role != model.RoleUser {
		t.Errorf("second user role = %q, want user", second.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, _, err := svc.Register("alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Register("alice2", "alice@example.com", "secret2")
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	user, _, err := svc.Register("alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, _, err := svc.Register("alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login("alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("claims = %+v, want user %s / %s", claims, user.ID, user.Email)
	}
}

// 未知邮箱和密码错误必须返回同一个错误，不能让调用方区分哪个环节失败
func TestLoginFailuresIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, _, err := svc.Register("alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, errUnknown := svc.Login("nobody@example.com", "secret1")
	_, _, errWrongPw := svc.Login("alice@example.com", "wrong-password")

	if !errors.Is(errUnknown, util.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPw, util.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("error messages differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	alice, _, err := svc.Register("alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, _, err := svc.Register("bob", "bob@example.com", "secret2"); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if err := svc.UpdateProfile(alice.ID, ProfilePatch{}); !errors.Is(err, util.ErrEmptyUpdate) {
		t.Errorf("empty patch err = %v, want ErrEmptyUpdate", err)
	}

	bobEmail := "bob@example.com"
	if err := svc.UpdateProfile(alice.ID, ProfilePatch{Email: &bobEmail}); !errors.Is(err, util.ErrEmailInUse) {
		t.Errorf("taken email err = %v, want ErrEmailInUse", err)
	}

	// 自己的邮箱写回自己不算冲突
	ownEmail := "alice@example.com"
	newName := "alice2"
	if err := svc.UpdateProfile(alice.ID, ProfilePatch{Username: &newName, Email: &ownEmail}); err != nil {
		t.Fatalf("update with own email: %v", err)
	}

	got, err := svc.GetUserByID(alice.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Username != "alice2" {
		t.Errorf("username = %q, want alice2", got.Username)
	}

	newPw := "secret-new"
	if err := svc.UpdateProfile(alice.ID, ProfilePatch{Password: &newPw}); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, _, err := svc.Login("alice@example.com", "secret-new"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, err := svc.Login("alice@example.com", "secret1"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("old password still works, err = %v", err)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.GetUserByID("missing-id"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

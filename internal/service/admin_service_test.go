package service

import (
	"errors"
	"testing"

	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/repository"
	"surveyhub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAdminService(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAdminService(repository.NewUserRepository(db), repository.NewSurveyRepository(db))
	return svc, db
}

func TestGetAllUsersOrderedByCreation(t *testing.T) {
	svc, db := newAdminService(t)
	createTestUser(t, db, "alice", "alice@example.com")
	createTestUser(t, db, "bob", "bob@example.com")

	users, err := svc.GetAllUsers()
	if err != nil {
		t.Fatalf("get all users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}
	if users[0].Username != "alice" || users[1].Username != "bob" {
		t.Errorf("order = [%s, %s], want [alice, bob]", users[0].Username, users[1].Username)
	}
}

func TestUpdateUserRoleOverwrites(t *testing.T) {
	svc, db := newAdminService(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	if err := svc.UpdateUserRole(user.ID, model.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}
	got, _ := svc.UserRepo.FindByID(user.ID)
	if got.Role != model.RoleAdmin {
		t.Errorf("role = %q, want admin", got.Role)
	}

	if err := svc.UpdateUserRole(user.ID, model.RoleUser); err != nil {
		t.Fatalf("demote: %v", err)
	}
	got, _ = svc.UserRepo.FindByID(user.ID)
	if got.Role != model.RoleUser {
		t.Errorf("role = %q, want user", got.Role)
	}
}

// 删除用户不级联其问卷和回答
func TestDeleteUserKeepsContent(t *testing.T) {
	svc, db := newAdminService(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	surveySvc := NewSurveyService(svc.SurveyRepo, svc.UserRepo, nil)
	surveyID, err := surveySvc.CreateSurvey(user.ID, sampleSurveyRequest())
	if err != nil {
		t.Fatalf("create survey: %v", err)
	}

	if err := svc.DeleteUser(user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := svc.UserRepo.FindByID(user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("user still found, err = %v", err)
	}
	var surveyCount int64
	db.Model(&model.Survey{}).Where("id = ?", surveyID).Count(&surveyCount)
	if surveyCount != 1 {
		t.Errorf("survey rows = %d, want 1 after creator removed", surveyCount)
	}

	// 详情接口对已删创建者容错，名字留空
	detail, err := surveySvc.GetSurveyByID(surveyID)
	if err != nil {
		t.Fatalf("get survey after creator removed: %v", err)
	}
	if detail.CreatorName != "" {
		t.Errorf("creator name = %q, want empty", detail.CreatorName)
	}
}

func TestGetSystemStats(t *testing.T) {
	svc, db := newAdminService(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	surveySvc := NewSurveyService(svc.SurveyRepo, svc.UserRepo, nil)
	surveyID, _ := surveySvc.CreateSurvey(alice.ID, sampleSurveyRequest())
	detail, _ := surveySvc.GetSurveyByID(surveyID)

	text := "回答"
	optionID := detail.Questions[1].Options[0].ID
	if err := surveySvc.SubmitResponse(surveyID, bob.ID, []AnswerInput{
		{QuestionID: detail.Questions[0].ID, Text: &text},
		{QuestionID: detail.Questions[1].ID, OptionID: &optionID},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stats, err := svc.GetSystemStats()
	if err != nil {
		t.Fatalf("system stats: %v", err)
	}
	if stats.UserCount != 2 {
		t.Errorf("userCount = %d, want 2", stats.UserCount)
	}
	if stats.SurveyCount != 1 {
		t.Errorf("surveyCount = %d, want 1", stats.SurveyCount)
	}
	if stats.ResponseCount != 2 {
		t.Errorf("responseCount = %d, want 2 (one row per answered question)", stats.ResponseCount)
	}
}

func TestAdminUpdateUserInfo(t *testing.T) {
	svc, db := newAdminService(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	createTestUser(t, db, "bob", "bob@example.com")

	if _, err := svc.UpdateUserInfo(alice.ID, AdminUserPatch{}); !errors.Is(err, util.ErrEmptyUpdate) {
		t.Errorf("empty patch err = %v, want ErrEmptyUpdate", err)
	}

	name := "x"
	if _, err := svc.UpdateUserInfo("missing-id", AdminUserPatch{Username: &name}); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("missing user err = %v, want ErrUserNotFound", err)
	}

	bobEmail := "bob@example.com"
	if _, err := svc.UpdateUserInfo(alice.ID, AdminUserPatch{Email: &bobEmail}); !errors.Is(err, util.ErrEmailInUse) {
		t.Errorf("taken email err = %v, want ErrEmailInUse", err)
	}

	newName := "alice-renamed"
	tempPassword, err := svc.UpdateUserInfo(alice.ID, AdminUserPatch{Username: &newName})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if tempPassword != "" {
		t.Errorf("tempPassword = %q, want empty without reset", tempPassword)
	}
	got, _ := svc.UserRepo.FindByID(alice.ID)
	if got.Username != newName {
		t.Errorf("username = %q, want %q", got.Username, newName)
	}
}

func TestAdminResetPasswordIsRandomOneTime(t *testing.T) {
	svc, db := newAdminService(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")

	first, err := svc.UpdateUserInfo(alice.ID, AdminUserPatch{ResetPassword: true})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(first) != 16 {
		t.Errorf("temp password length = %d, want 16 hex chars", len(first))
	}

	got, _ := svc.UserRepo.FindByID(alice.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(got.Password), []byte(first)); err != nil {
		t.Errorf("stored hash does not match returned temp password: %v", err)
	}

	second, err := svc.UpdateUserInfo(alice.ID, AdminUserPatch{ResetPassword: true})
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if first == second {
		t.Error("two resets produced the same password")
	}
}

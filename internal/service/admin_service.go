package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/repository"
	"surveyhub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService struct {
	UserRepo   *repository.UserRepository
	SurveyRepo *repository.SurveyRepository
}

func NewAdminService(userRepo *repository.UserRepository, surveyRepo *repository.SurveyRepository) *AdminService {
	return &AdminService{
		UserRepo:   userRepo,
		SurveyRepo: surveyRepo,
	}
}

func (s *AdminService) GetAllUsers() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

func (s *AdminService) UpdateUserRole(userID string, role model.UserRole) error {
	return s.UserRepo.UpdateRole(userID, role)
}

// DeleteUser 只硬删用户行，该用户的问卷和回答按约定保留
func (s *AdminService) DeleteUser(userID string) error {
	return s.UserRepo.Delete(userID)
}

type SystemStats struct {
	UserCount     int64 `json:"userCount"`
	SurveyCount   int64 `json:"surveyCount"`
	ResponseCount int64 `json:"responseCount"`
}

func (s *AdminService) GetSystemStats() (*SystemStats, error) {
	userCount, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	surveyCount, err := s.SurveyRepo.CountSurveys()
	if err != nil {
		return nil, err
	}
	responseCount, err := s.SurveyRepo.CountResponses()
	if err != nil {
		return nil, err
	}

	return &SystemStats{
		UserCount:     userCount,
		SurveyCount:   surveyCount,
		ResponseCount: responseCount,
	}, nil
}

// AdminUserPatch 管理员侧的用户信息补丁
type AdminUserPatch struct {
	Username      *string
	Email         *string
	ResetPassword bool
}

func (p AdminUserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && !p.ResetPassword
}

// UpdateUserInfo 部分更新用户。ResetPassword 为 true 时生成随机一次性密码，
// 明文只在本次响应里返回一次。
func (s *AdminService) UpdateUserInfo(userID string, patch AdminUserPatch) (tempPassword string, err error) {
	if patch.Empty() {
		return "", util.ErrEmptyUpdate
	}

	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrUserNotFound
		}
		return "", err
	}

	updates := make(map[string]interface{})

	if patch.Username != nil {
		updates["username"] = *patch.Username
	}

	if patch.Email != nil {
		existing, err := s.UserRepo.FindByEmail(*patch.Email)
		if err == nil && existing.ID != userID {
			return "", util.ErrEmailInUse
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		updates["email"] = *patch.Email
	}

	if patch.ResetPassword {
		tempPassword = generateTempPassword()
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcryptCost)
		if err != nil {
			return "", err
		}
		updates["password"] = string(hashedPassword)
	}

	if err := s.UserRepo.UpdateFields(userID, updates); err != nil {
		return "", err
	}
	return tempPassword, nil
}

// generateTempPassword 生成8字节随机十六进制一次性密码
func generateTempPassword() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

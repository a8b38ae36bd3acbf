package service

import (
	"errors"
	"surveyhub_backend/internal/config"
	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/repository"
	"surveyhub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost 与旧版保持一致的工作因子
const bcryptCost = 8

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 注册新用户。首个注册者在同一事务内被提升为管理员。
// 返回 isFirst 供调用方区分提示语。
func (s *AuthService) Register(username, email, password string) (user *model.User, isFirst bool, err error) {
	_, err = s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, false, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, false, err
	}

	user = &model.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     model.RoleUser,
	}

	err = s.UserRepo.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			isFirst = true
			user.Role = model.RoleAdmin
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, false, err
	}

	return user, isFirst, nil
}

// Login 校验凭据并签发令牌。未知邮箱和密码错误返回同一个错误，不泄露区别。
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) GetUserByID(id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfilePatch 自助资料更新的补丁对象，只有非 nil 字段会被写入
type ProfilePatch struct {
	Username *string
	Email    *string
	Password *string
}

func (p ProfilePatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil
}

// UpdateProfile 部分更新当前用户。邮箱被他人占用返回 ErrEmailInUse，
// 空补丁返回 ErrEmptyUpdate。
func (s *AuthService) UpdateProfile(userID string, patch ProfilePatch) error {
	if patch.Empty() {
		return util.ErrEmptyUpdate
	}

	updates := make(map[string]interface{})

	if patch.Username != nil {
		updates["username"] = *patch.Username
	}

	if patch.Email != nil {
		existing, err := s.UserRepo.FindByEmail(*patch.Email)
		if err == nil && existing.ID != userID {
			return util.ErrEmailInUse
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		updates["email"] = *patch.Email
	}

	if patch.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcryptCost)
		if err != nil {
			return err
		}
		updates["password"] = string(hashedPassword)
	}

	return s.UserRepo.UpdateFields(userID, updates)
}

package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrEmailInUse         = errors.New("该邮箱已被使用")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmptyUpdate        = errors.New("没有要更新的字段")
	ErrSurveyNotFound     = errors.New("问卷不存在")
	ErrNotOwner           = errors.New("无权限删除此问卷")
)

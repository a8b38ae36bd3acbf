package controller

import (
	"errors"
	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/service"
	"surveyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// GetUsers godoc
// @Summary 用户列表
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "需要管理员权限"
// @Router /admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	users, err := c.AdminService.GetAllUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, users)
}

// swagger:model UpdateRoleRequest
type UpdateRoleRequest struct {
	Role model.UserRole `json:"role" binding:"required,oneof=user admin"`
}

// UpdateUserRole godoc
// @Summary 修改用户角色
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户 id"
// @Param   body body UpdateRoleRequest true "新角色"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "需要管理员权限"
// @Router /admin/users/{id}/role [put]
func (c *AdminController) UpdateUserRole(ctx *gin.Context) {
	var req UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AdminService.UpdateUserRole(ctx.Param("id"), req.Role); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "用户角色更新成功"})
}

// DeleteUser godoc
// @Summary 删除用户
// @Description 硬删除用户行，不级联该用户的问卷和回答
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户 id"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "需要管理员权限"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.AdminService.DeleteUser(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "用户删除成功"})
}

// Stats godoc
// @Summary 系统统计
// @Description 用户、问卷、回答三项总数
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "需要管理员权限"
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.AdminService.GetSystemStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// swagger:model AdminUpdateUserRequest
type AdminUpdateUserRequest struct {
	Username      *string `json:"username"`
	Email         *string `json:"email" binding:"omitempty,email"`
	ResetPassword bool    `json:"resetPassword"`
}

// UpdateUserInfo godoc
// @Summary 管理员更新用户信息
// @Description 部分更新用户名/邮箱；resetPassword 为 true 时生成随机一次性密码并在响应中返回一次
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户 id"
// @Param   body body AdminUpdateUserRequest true "要更新的字段"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "邮箱被占用或没有要更新的字段"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /admin/users/{id}/info [put]
func (c *AdminController) UpdateUserInfo(ctx *gin.Context) {
	var req AdminUpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	patch := service.AdminUserPatch{
		Username:      req.Username,
		Email:         req.Email,
		ResetPassword: req.ResetPassword,
	}

	tempPassword, err := c.AdminService.UpdateUserInfo(ctx.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailInUse), errors.Is(err, util.ErrEmptyUpdate):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	data := gin.H{"message": "用户信息更新成功"}
	if tempPassword != "" {
		data["tempPassword"] = tempPassword
	}
	util.Success(ctx, data)
}

package controller

import (
	"errors"
	"surveyhub_backend/internal/service"
	"surveyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	SurveyService *service.SurveyService
}

func NewSurveyController(surveyService *service.SurveyService) *SurveyController {
	return &SurveyController{SurveyService: surveyService}
}

// CreateSurvey godoc
// @Summary 创建问卷
// @Description 一个事务内创建问卷、问题和选项，任一步失败整体回滚
// @Tags 问卷
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateSurveyRequest true "问卷内容"
// @Success 201 {object} util.Response "创建成功，返回 surveyId"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	authUser := util.GetAuthUser(ctx)
	if authUser == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	surveyID, err := c.SurveyService.CreateSurvey(authUser.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"message": "问卷创建成功", "surveyId": surveyID})
}

// ListSurveys godoc
// @Summary 问卷列表
// @Description 已登录用户看到非本人创建且未回答过的已发布问卷，匿名看到全部已发布问卷
// @Tags 问卷
// @Produce  json
// @Success 200 {object} util.Response "成功"
// @Router /surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	userID := ""
	if authUser := util.GetAuthUser(ctx); authUser != nil {
		userID = authUser.UserID
	}

	surveys, err := c.SurveyService.ListSurveys(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, surveys)
}

// GetSurvey godoc
// @Summary 问卷详情
// @Description 问卷基本信息、创建者名、有序问题及选择题的有序选项
// @Tags 问卷
// @Produce  json
// @Param   id path string true "问卷 id"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /surveys/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	detail, err := c.SurveyService.GetSurveyByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

type submitResponseRequest struct {
	Answers []service.AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// SubmitResponse godoc
// @Summary 提交问卷回答
// @Tags 问卷
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷 id"
// @Param   body body submitResponseRequest true "回答列表"
// @Success 200 {object} util.Response "提交成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /surveys/{id}/submit [post]
func (c *SurveyController) SubmitResponse(ctx *gin.Context) {
	authUser := util.GetAuthUser(ctx)
	if authUser == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SurveyService.SubmitResponse(ctx.Param("id"), authUser.UserID, req.Answers); err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "问卷提交成功"})
}

// UpdateResponse godoc
// @Summary 更新问卷回答
// @Description 整体替换：删除旧回答后插入新回答
// @Tags 问卷
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷 id"
// @Param   body body submitResponseRequest true "新的回答列表"
// @Success 200 {object} util.Response "更新成功"
// @Router /surveys/{id}/response [put]
func (c *SurveyController) UpdateResponse(ctx *gin.Context) {
	authUser := util.GetAuthUser(ctx)
	if authUser == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SurveyService.UpdateResponse(ctx.Param("id"), authUser.UserID, req.Answers); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "回答更新成功"})
}

// DeleteResponse godoc
// @Summary 删除问卷回答
// @Description 删除调用者对该问卷的全部回答，幂等
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷 id"
// @Success 200 {object} util.Response "删除成功"
// @Router /surveys/{id}/response [delete]
func (c *SurveyController) DeleteResponse(ctx *gin.Context) {
	authUser := util.GetAuthUser(ctx)
	if authUser == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SurveyService.DeleteResponse(ctx.Param("id"), authUser.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "回答删除成功"})
}

// DeleteSurvey godoc
// @Summary 删除问卷
// @Description 仅创建者可删，级联删除回答、选项和问题
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷 id"
// @Success 200 {object} util.Response "删除成功"
// @Failure 403 {object} util.Response "无权限删除此问卷"
// @Router /surveys/{id} [delete]
func (c *SurveyController) DeleteSurvey(ctx *gin.Context) {
	authUser := util.GetAuthUser(ctx)
	if authUser == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SurveyService.DeleteSurvey(ctx.Param("id"), authUser.UserID); err != nil {
		if errors.Is(err, util.ErrNotOwner) {
			util.Error(ctx, 403, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "问卷删除成功"})
}

// MySurveys godoc
// @Summary 我创建的问卷
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Router /surveys/my-surveys [get]
func (c *SurveyController) MySurveys(ctx *gin.Context) {
	authUser := util.GetAuthUser(ctx)
	if authUser == nil {
		util.Unauthorized(ctx)
		return
	}

	surveys, err := c.SurveyService.GetMySurveys(authUser.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, surveys)
}

// MyResponses godoc
// @Summary 我回答过的问卷
// @Description 每个问卷一行，带最近一次提交时间，新的在前
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Router /surveys/my-responses [get]
func (c *SurveyController) MyResponses(ctx *gin.Context) {
	authUser := util.GetAuthUser(ctx)
	if authUser == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.SurveyService.GetMyResponses(authUser.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}

// MyResponse godoc
// @Summary 我对某问卷的回答
// @Description 原始回答行（题目 id、答案、选项 id、题型），用于编辑表单回填
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷 id"
// @Success 200 {object} util.Response "成功"
// @Router /surveys/{id}/my-response [get]
func (c *SurveyController) MyResponse(ctx *gin.Context) {
	authUser := util.GetAuthUser(ctx)
	if authUser == nil {
		util.Unauthorized(ctx)
		return
	}

	answers, err := c.SurveyService.GetSurveyResponse(ctx.Param("id"), authUser.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, answers)
}

// Stats godoc
// @Summary 问卷统计
// @Description 按题聚合：文本题列出回答，选择题给出各选项的计数和百分比
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷 id"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /surveys/{id}/stats [get]
func (c *SurveyController) Stats(ctx *gin.Context) {
	stats, err := c.SurveyService.GetSurveyStats(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, stats)
}

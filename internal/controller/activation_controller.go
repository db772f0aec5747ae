package controller

import (
	"errors"

	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivationController struct {
	Entitlements *service.EntitlementService
}

func NewActivationController(entitlements *service.EntitlementService) *ActivationController {
	return &ActivationController{Entitlements: entitlements}
}

type activateRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// Activate godoc
// @Summary 使用激活码解锁课程
// @Description 激活码必须属于该课程且未被使用过。失败不消耗激活码。
// @Tags 激活码
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body activateRequest true "课程ID与激活码"
// @Success 200 {object} util.Response{data=object} "activated 表示是否成功"
// @Router /api/courses/activate [post]
func (c *ActivationController) Activate(ctx *gin.Context) {
	var req activateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	activated, err := c.Entitlements.Activate(claims.UserID, req.CourseID, req.Code)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"activated": activated})
}

type issueCodeRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// Issue godoc
// @Summary 为课程生成激活码(管理端)
// @Tags 激活码
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body issueCodeRequest true "课程ID"
// @Success 201 {object} util.Response{data=model.ActivationCode}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/activation-codes [post]
func (c *ActivationController) Issue(ctx *gin.Context) {
	var req issueCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	code, err := c.Entitlements.IssueCode(req.CourseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, code)
}

// List godoc
// @Summary 激活码列表(管理端)
// @Tags 激活码
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ActivationCode}
// @Router /api/admin/activation-codes [get]
func (c *ActivationController) List(ctx *gin.Context) {
	codes, err := c.Entitlements.ListCodes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, codes)
}

// Revoke godoc
// @Summary 删除激活码(管理端)
// @Tags 激活码
// @Produce  json
// @Security BearerAuth
// @Param   code path string true "激活码"
// @Success 200 {object} util.Response
// @Router /api/admin/activation-codes/{code} [delete]
func (c *ActivationController) Revoke(ctx *gin.Context) {
	if err := c.Entitlements.Revoke(ctx.Param("code")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

package controller

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Settings *service.SettingsService
}

func NewSettingsController(settings *service.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

// Get godoc
// @Summary 平台设置
// @Description 公开接口，落地页需要教师信息与公告
// @Tags 平台设置
// @Produce  json
// @Success 200 {object} util.Response{data=model.PlatformSettings}
// @Router /api/settings [get]
func (c *SettingsController) Get(ctx *gin.Context) {
	util.Success(ctx, c.Settings.Get())
}

// Save godoc
// @Summary 保存平台设置(管理端)
// @Tags 平台设置
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.PlatformSettings true "完整设置文档"
// @Success 200 {object} util.Response{data=model.PlatformSettings}
// @Router /api/admin/settings [put]
func (c *SettingsController) Save(ctx *gin.Context) {
	var settings model.PlatformSettings
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Settings.Save(settings); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

type forumLockRequest struct {
	Grade  model.Grade `json:"grade" binding:"required"`
	Locked bool        `json:"locked"`
}

// SetForumLock godoc
// @Summary 锁定/解锁年级论坛(管理端)
// @Tags 平台设置
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body forumLockRequest true "年级与锁定状态"
// @Success 200 {object} util.Response
// @Router /api/admin/settings/forum-lock [put]
func (c *SettingsController) SetForumLock(ctx *gin.Context) {
	var req forumLockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Grade.Valid() {
		util.BadRequest(ctx, "invalid grade")
		return
	}
	if err := c.Settings.SetForumLock(req.Grade, req.Locked); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

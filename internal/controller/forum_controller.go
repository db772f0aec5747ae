package controller

import (
	"errors"
	"strconv"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	ForumService *service.ForumService
}

func NewForumController(forumService *service.ForumService) *ForumController {
	return &ForumController{ForumService: forumService}
}

// List godoc
// @Summary 论坛消息列表
// @Description 学生只能读本年级的版块
// @Tags 论坛
// @Produce  json
// @Security BearerAuth
// @Param   grade path string true "年级"
// @Param   limit query int false "条数上限，默认100"
// @Success 200 {object} util.Response{data=[]model.ForumMessage}
// @Router /api/forum/{grade} [get]
func (c *ForumController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	grade := model.Grade(ctx.Param("grade"))
	if !grade.Valid() {
		util.BadRequest(ctx, "invalid grade")
		return
	}

	msgs, err := c.ForumService.Messages(claims.UserID, grade, queryLimit(ctx, 100))
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, msgs)
}

// Post godoc
// @Summary 发布论坛消息
// @Description multipart 表单，media 字段可选。版块被锁定或账号被封禁时拒绝。
// @Tags 论坛
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   content formData string false "文字内容"
// @Param   media formData file false "附件"
// @Param   mediaType formData string false "附件类型" Enums(image,video,audio,file)
// @Success 201 {object} util.Response{data=model.ForumMessage}
// @Failure 403 {object} util.Response "版块锁定或账号被封禁"
// @Router /api/forum [post]
func (c *ForumController) Post(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	req := service.PostRequest{
		Content:   ctx.PostForm("content"),
		MediaType: model.ForumMediaType(ctx.PostForm("mediaType")),
	}

	if file, err := ctx.FormFile("media"); err == nil {
		f, err := file.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer f.Close()
		req.Media = f
		req.MediaSize = file.Size
		req.FileName = file.Filename
		req.MimeType = file.Header.Get("Content-Type")
	}

	if req.Content == "" && req.Media == nil {
		util.BadRequest(ctx, "message is empty")
		return
	}

	msg, err := c.ForumService.Post(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrForumLocked):
			util.Error(ctx, 403, "The forum is locked for your grade")
		case errors.Is(err, util.ErrUserBlocked):
			util.Error(ctx, 403, "This account has been blocked")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, msg)
}

// Delete godoc
// @Summary 删除论坛消息
// @Description 作者可删除自己的消息，管理员可删除任意消息
// @Tags 论坛
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "消息ID"
// @Success 200 {object} util.Response
// @Router /api/forum/messages/{id} [delete]
func (c *ForumController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid message id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.ForumService.Remove(claims.UserID, uint(id)); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

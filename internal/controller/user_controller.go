package controller

import (
	"errors"
	"strconv"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService     *service.UserService
	ProgressService *service.ProgressService
}

func NewUserController(userService *service.UserService, progressService *service.ProgressService) *UserController {
	return &UserController{UserService: userService, ProgressService: progressService}
}

func pathUserID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return 0, false
	}
	return uint(id), true
}

// ToggleLecture godoc
// @Summary 标记/取消标记课时为已完成
// @Tags 学习进度
// @Produce  json
// @Security BearerAuth
// @Param   lectureId path string true "课时ID"
// @Success 200 {object} util.Response{data=object} "completed 为新状态"
// @Router /api/lectures/{lectureId}/toggle [post]
func (c *UserController) ToggleLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	completed, err := c.UserService.ToggleLectureCompletion(claims.UserID, ctx.Param("lectureId"))
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"completed": completed})
}

// Progress godoc
// @Summary 当前学生的学习进度
// @Description 总体进度为各已解锁课程进度的平均值（四舍五入）
// @Tags 学习进度
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudentProgress}
// @Router /api/me/progress [get]
func (c *UserController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.ForStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Certificates godoc
// @Summary 当前学生的证书列表
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/me/certificates [get]
func (c *UserController) Certificates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	certs, err := c.UserService.Certificates(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// ListStudents godoc
// @Summary 学生列表(管理端)
// @Tags 用户管理
// @Produce  json
// @Security BearerAuth
// @Param   grade query string false "按年级过滤"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/admin/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	grade := model.Grade(ctx.Query("grade"))
	students, err := c.UserService.ListStudents(grade)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// StudentProgress godoc
// @Summary 指定学生的学习进度(管理端)
// @Tags 用户管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学生ID"
// @Success 200 {object} util.Response{data=service.StudentProgress}
// @Router /api/admin/students/{id}/progress [get]
func (c *UserController) StudentProgress(ctx *gin.Context) {
	id, ok := pathUserID(ctx)
	if !ok {
		return
	}
	progress, err := c.ProgressService.ForStudent(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

// SetBlocked godoc
// @Summary 封禁/解封学生(管理端)
// @Tags 用户管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学生ID"
// @Param   body body blockRequest true "封禁状态"
// @Success 200 {object} util.Response
// @Router /api/admin/students/{id}/block [put]
func (c *UserController) SetBlocked(ctx *gin.Context) {
	id, ok := pathUserID(ctx)
	if !ok {
		return
	}
	var req blockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.UserService.SetBlocked(id, req.Blocked); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type levelRequest struct {
	Level model.StudentLevel `json:"level" binding:"required"`
}

// SetLevel godoc
// @Summary 设置学生等级(管理端)
// @Tags 用户管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学生ID"
// @Param   body body levelRequest true "等级"
// @Success 200 {object} util.Response
// @Router /api/admin/students/{id}/level [put]
func (c *UserController) SetLevel(ctx *gin.Context) {
	id, ok := pathUserID(ctx)
	if !ok {
		return
	}
	var req levelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.UserService.SetLevel(id, req.Level); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type issueCertificateRequest struct {
	Type model.CertificateType `json:"type" binding:"required,oneof=excellence progress completion"`
}

// IssueCertificate godoc
// @Summary 为学生颁发证书(管理端)
// @Description 证书文案由AI生成，生成失败时退回固定文案
// @Tags 证书
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学生ID"
// @Param   body body issueCertificateRequest true "证书类型"
// @Success 201 {object} util.Response{data=model.Certificate}
// @Router /api/admin/students/{id}/certificates [post]
func (c *UserController) IssueCertificate(ctx *gin.Context) {
	id, ok := pathUserID(ctx)
	if !ok {
		return
	}
	var req issueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	cert, err := c.UserService.IssueCertificate(id, req.Type)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, cert)
}

package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// List godoc
// @Summary 课程目录
// @Description 学生只看到本年级的课程，管理员可看全部
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if claims.Role == model.Admin {
		courses, err := c.CourseService.ListAll()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, courses)
		return
	}

	courses, err := c.CourseService.ListForGrade(ctx.Request.Context(), claims.Grade)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response "课程未解锁"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.GetForUser(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrCourseLocked):
			util.Error(ctx, 403, "This course requires activation")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Create godoc
// @Summary 创建课程(管理端)
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.Course true "课程"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/admin/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !course.Grade.Valid() {
		util.BadRequest(ctx, "invalid grade")
		return
	}
	if err := c.CourseService.Create(ctx.Request.Context(), &course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary 更新课程(管理端)
// @Description 整课保存，嵌套的课时/作业/考试一并覆盖
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Param   body body model.Course true "课程"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course.ID = ctx.Param("id")
	if err := c.CourseService.Update(ctx.Request.Context(), &course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程(管理端)
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.CourseService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadLecture godoc
// @Summary 上传课时文件(管理端)
// @Description multipart 上传，视频/音频会用 ffprobe 读取时长
// @Tags 课程
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Param   file formData file true "课时文件"
// @Param   title formData string true "课时标题"
// @Param   type formData string true "课时类型" Enums(video,file,image,audio)
// @Success 201 {object} util.Response{data=model.Lecture}
// @Router /api/admin/courses/{id}/lectures [post]
func (c *CourseController) UploadLecture(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	lecture := model.Lecture{
		Title: ctx.PostForm("title"),
		Type:  model.LectureType(ctx.PostForm("type")),
	}
	if lecture.Title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}
	switch lecture.Type {
	case model.LectureVideo, model.LectureFile, model.LectureImage, model.LectureAudio:
	default:
		util.BadRequest(ctx, "invalid lecture type")
		return
	}
	if lecture.Type == model.LectureVideo && !util.IsVideoFile(file.Filename) {
		util.BadRequest(ctx, "unsupported video format")
		return
	}

	// 先落盘到临时文件供 ffprobe 与存储后端使用
	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := ctx.SaveUploadedFile(file, tempPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tempPath)

	contentType := file.Header.Get("Content-Type")
	err = c.CourseService.AttachUploadedLecture(ctx.Request.Context(), ctx.Param("id"), &lecture,
		tempPath, file.Filename, contentType)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lecture)
}

func queryLimit(ctx *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

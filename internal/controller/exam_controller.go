package controller

import (
	"errors"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

func (c *ExamController) writeSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrExamNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrCourseLocked):
		util.Error(ctx, 403, "This course requires activation")
	case errors.Is(err, util.ErrNoActiveSession):
		util.Error(ctx, 409, "No active exam session")
	default:
		util.LogInternalError(ctx, err)
	}
}

type startExamRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	ExamID   string `json:"examId" binding:"required"`
}

// Start godoc
// @Summary 开始考试
// @Description 创建答题会话并启动倒计时；已有会话会被放弃。没有题目的考试返回 not_ready 状态。
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body startExamRequest true "课程与考试ID"
// @Success 200 {object} util.Response{data=service.ExamSessionView}
// @Failure 403 {object} util.Response "课程未解锁"
// @Failure 404 {object} util.Response "考试不存在"
// @Router /api/exams/start [post]
func (c *ExamController) Start(ctx *gin.Context) {
	var req startExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.ExamService.Start(claims.UserID, req.CourseID, req.ExamID)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// View godoc
// @Summary 当前答题会话状态
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ExamSessionView}
// @Failure 409 {object} util.Response "没有进行中的会话"
// @Router /api/exams/session [get]
func (c *ExamController) View(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.ExamService.View(claims.UserID)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type answerRequest struct {
	QuestionID string             `json:"questionId" binding:"required"`
	Answer     model.AnswerOption `json:"answer" binding:"required"`
}

// Answer godoc
// @Summary 选择答案
// @Description 重复选择覆盖之前的答案，不影响剩余时间
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body answerRequest true "题目与选项"
// @Success 200 {object} util.Response{data=service.ExamSessionView}
// @Router /api/exams/session/answer [post]
func (c *ExamController) Answer(ctx *gin.Context) {
	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Answer.Valid() {
		util.BadRequest(ctx, "answer must be one of A, B, C, D")
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.ExamService.SelectAnswer(claims.UserID, req.QuestionID, req.Answer)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type navigateRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// Navigate godoc
// @Summary 切换当前题目
// @Description delta 为 +1/-1，越界时停在边界题目
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body navigateRequest true "移动方向"
// @Success 200 {object} util.Response{data=service.ExamSessionView}
// @Router /api/exams/session/navigate [post]
func (c *ExamController) Navigate(ctx *gin.Context) {
	var req navigateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.ExamService.Navigate(claims.UserID, req.Delta)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type submitRequest struct {
	Confirm bool `json:"confirm"`
}

// Submit godoc
// @Summary 交卷
// @Description 评分并结束会话，必须显式确认(confirm=true)。未作答的题目按答错计。若倒计时已先触发自动交卷，返回的成绩即自动交卷的成绩。
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body submitRequest true "确认交卷"
// @Success 200 {object} util.Response{data=service.ExamSessionView}
// @Failure 400 {object} util.Response "未确认"
// @Router /api/exams/session/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	var req submitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Confirm {
		util.BadRequest(ctx, "submission must be confirmed")
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.ExamService.Submit(claims.UserID)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Abandon godoc
// @Summary 放弃考试
// @Description 丢弃会话，不评分不留成绩
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/exams/session [delete]
func (c *ExamController) Abandon(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ExamService.Abandon(claims.UserID); err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MyResults godoc
// @Summary 当前学生的考试成绩
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ExamResult}
// @Router /api/me/exam-results [get]
func (c *ExamController) MyResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	results, err := c.ExamService.ResultsForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// ExamResults godoc
// @Summary 指定考试的全部成绩(管理端)
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Param   examId path string true "考试ID"
// @Success 200 {object} util.Response{data=[]model.ExamResult}
// @Router /api/admin/exams/{examId}/results [get]
func (c *ExamController) ExamResults(ctx *gin.Context) {
	results, err := c.ExamService.ResultsForExam(ctx.Param("examId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

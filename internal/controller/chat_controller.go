package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	AI *service.AIService
}

func NewChatController(ai *service.AIService) *ChatController {
	return &ChatController{AI: ai}
}

type chatRequest struct {
	Message string                  `json:"message" binding:"required"`
	History []service.AIChatMessage `json:"history"`
}

// Chat godoc
// @Summary 英语学习助手对话
// @Description 调用AI助手回答学习问题；服务不可用时返回固定提示而不是错误
// @Tags 助手
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body chatRequest true "消息与历史"
// @Success 200 {object} util.Response{data=object}
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req chatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	reply := c.AI.Chat(req.Message, req.History)
	util.Success(ctx, gin.H{"reply": reply})
}

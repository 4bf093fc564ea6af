package controller

import (
	"net/http"

	"studylog_backend/internal/service"
	"studylog_backend/internal/util"
	"studylog_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatController proxies the AI coach. Unlike the rest of the API it
// answers with the bare {message}/{error} shape the chat widget expects.
type ChatController struct {
	AIService *service.AIService
}

func NewChatController(aiService *service.AIService) *ChatController {
	return &ChatController{AIService: aiService}
}

type chatRequest struct {
	Messages []service.AIChatMessage `json:"messages" binding:"required"`
}

// @Summary AIコーチとチャット
// @Description 会話履歴をAIに転送して応答を返す。履歴は直近10件に切り詰められる。
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chat body chatRequest true "会話履歴"
// @Success 200 {object} map[string]string
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req chatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := c.AIService.Chat(ctx.Request.Context(), req.Messages)
	if err != nil {
		logger.Log.Error("chat completion failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "AIの応答に失敗しました"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

// @Summary AI学習フィードバック
// @Description 直近の学習記録をもとに応援メッセージを生成する
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/chat/feedback [get]
func (c *ChatController) Feedback(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	message, err := c.AIService.Feedback(ctx.Request.Context(), user.UserID)
	if err != nil {
		logger.Log.Error("feedback generation failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "AIの応答に失敗しました"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

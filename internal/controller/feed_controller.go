package controller

import (
	"studylog_backend/internal/service"
	"studylog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedController struct {
	FeedService *service.FeedService
}

func NewFeedController(feedService *service.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// @Summary タイムライン取得
// @Description フォロー中ユーザーと自分の最近の学習記録、または全ユーザーの目標を取得する。未ログインでも閲覧可能。
// @Tags フィード
// @Produce json
// @Param tab query string false "activity または goals" default(activity)
// @Success 200 {object} util.Response
// @Router /api/feed [get]
func (c *FeedController) GetFeed(ctx *gin.Context) {
	var viewerID *uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerID = &claims.UserID
	}

	tab := ctx.DefaultQuery("tab", service.FeedTabActivity)
	if tab != service.FeedTabActivity && tab != service.FeedTabGoals {
		util.BadRequest(ctx, "tab must be activity or goals")
		return
	}

	feed, err := c.FeedService.GetFeed(ctx.Request.Context(), viewerID, tab)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, feed)
}

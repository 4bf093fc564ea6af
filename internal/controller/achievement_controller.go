package controller

import (
	"strconv"

	"studylog_backend/internal/service"
	"studylog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// @Summary 合格報告作成
// @Tags 合格報告
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param achievement body service.AchievementRequest true "合格報告"
// @Success 201 {object} util.Response
// @Router /api/achievements [post]
func (c *AchievementController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AchievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	achievement, err := c.AchievementService.Create(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, achievement)
}

// @Summary 合格報告一覧
// @Description 全ユーザーの合格報告を新しい順に返す
// @Tags 合格報告
// @Produce json
// @Param limit query int false "取得件数"
// @Success 200 {object} util.Response
// @Router /api/achievements [get]
func (c *AchievementController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	achievements, err := c.AchievementService.ListRecent(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}

// @Summary 合格報告削除
// @Tags 合格報告
// @Produce json
// @Security BearerAuth
// @Param id path int true "合格報告ID"
// @Success 200 {object} util.Response
// @Router /api/achievements/{id} [delete]
func (c *AchievementController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.AchievementService.Delete(ctx.Request.Context(), id, user.UserID); err != nil {
		if err == util.ErrAchievementNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

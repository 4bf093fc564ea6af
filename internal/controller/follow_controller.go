package controller

import (
	"net/http"

	"studylog_backend/internal/service"
	"studylog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FollowController struct {
	FollowService *service.FollowService
}

func NewFollowController(followService *service.FollowService) *FollowController {
	return &FollowController{FollowService: followService}
}

// @Summary フォローする
// @Tags フォロー
// @Produce json
// @Security BearerAuth
// @Param id path int true "フォロー対象のユーザーID"
// @Success 201 {object} util.Response
// @Router /api/users/{id}/follow [post]
func (c *FollowController) Follow(ctx *gin.Context) {
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

	err := c.FollowService.Follow(ctx.Request.Context(), user.UserID, id)
	switch err {
	case nil:
		util.Created(ctx, gin.H{"following": id})
	case util.ErrSelfFollow, util.ErrAlreadyFollowing:
		util.BadRequest(ctx, err.Error())
	case util.ErrUserNotFound:
		util.Error(ctx, http.StatusNotFound, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary フォロー解除
// @Tags フォロー
// @Produce json
// @Security BearerAuth
// @Param id path int true "フォロー解除するユーザーID"
// @Success 200 {object} util.Response
// @Router /api/users/{id}/follow [delete]
func (c *FollowController) Unfollow(ctx *gin.Context) {
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

	if err := c.FollowService.Unfollow(ctx.Request.Context(), user.UserID, id); err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"unfollowed": id})
}

// @Summary フォロー状態確認
// @Tags フォロー
// @Produce json
// @Security BearerAuth
// @Param id path int true "ユーザーID"
// @Success 200 {object} util.Response
// @Router /api/users/{id}/follow [get]
func (c *FollowController) Status(ctx *gin.Context) {
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

	following, err := c.FollowService.IsFollowing(user.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"isFollowing": following})
}

// @Summary フォロー中一覧
// @Tags フォロー
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/follows [get]
func (c *FollowController) Following(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profiles, err := c.FollowService.Following(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

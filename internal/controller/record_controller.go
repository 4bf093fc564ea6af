package controller

import (
	"net/http"
	"strconv"

	"studylog_backend/internal/service"
	"studylog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecordController struct {
	RecordService *service.RecordService
}

func NewRecordController(recordService *service.RecordService) *RecordController {
	return &RecordController{RecordService: recordService}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// @Summary 学習記録作成
// @Description 学習記録を保存する。学習量が指定されていれば最初のコメントとして保存する。
// @Tags 学習記録
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param record body service.CreateRecordRequest true "学習記録"
// @Success 201 {object} util.Response
// @Router /api/records [post]
func (c *RecordController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.RecordService.Create(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// @Summary 自分の学習記録一覧
// @Tags 学習記録
// @Produce json
// @Security BearerAuth
// @Param limit query int false "取得件数"
// @Success 200 {object} util.Response
// @Router /api/records [get]
func (c *RecordController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	records, err := c.RecordService.ListByUser(user.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary 学習記録詳細
// @Description 記録本体・教材画像・投稿者情報・コメントスレッドを返す
// @Tags 学習記録
// @Produce json
// @Param id path int true "記録ID"
// @Success 200 {object} util.Response
// @Router /api/records/{id} [get]
func (c *RecordController) GetDetail(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	detail, err := c.RecordService.GetDetail(ctx.Request.Context(), id)
	if err != nil {
		if err == util.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 学習記録削除
// @Description 自分の記録のみ削除できる。コメントも併せて削除される。
// @Tags 学習記録
// @Produce json
// @Security BearerAuth
// @Param id path int true "記録ID"
// @Success 200 {object} util.Response
// @Router /api/records/{id} [delete]
func (c *RecordController) Delete(ctx *gin.Context) {
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

	err := c.RecordService.Delete(ctx.Request.Context(), id, user.UserID)
	switch err {
	case nil:
		util.Success(ctx, gin.H{"deleted": id})
	case util.ErrRecordNotFound:
		util.NotFound(ctx)
	case util.ErrPermissionDenied:
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary コメント投稿
// @Tags 学習記録
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "記録ID"
// @Param comment body commentRequest true "コメント"
// @Success 201 {object} util.Response
// @Router /api/records/{id}/comments [post]
func (c *RecordController) AddComment(ctx *gin.Context) {
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

	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.RecordService.AddComment(ctx.Request.Context(), id, user.UserID, req.Content)
	if err != nil {
		if err == util.ErrRecordNotFound {
			util.Error(ctx, http.StatusNotFound, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

package controller

import (
	"strconv"

	"studylog_backend/internal/service"
	"studylog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// @Summary 教材登録
// @Description 教材名と表紙画像を登録する。名前は学習記録の科目名と突合される。
// @Tags 教材
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "教材名(20文字以内)"
// @Param image formData file false "表紙画像"
// @Success 201 {object} util.Response
// @Router /api/materials [post]
func (c *MaterialController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	name := ctx.PostForm("name")
	file, _ := ctx.FormFile("image")

	material, err := c.MaterialService.Create(ctx.Request.Context(), user.UserID, name, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, material)
}

// @Summary 教材一覧
// @Tags 教材
// @Produce json
// @Param limit query int false "取得件数"
// @Success 200 {object} util.Response
// @Router /api/materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	materials, err := c.MaterialService.List(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// @Summary 教材検索
// @Tags 教材
// @Produce json
// @Param q query string true "検索ワード"
// @Success 200 {object} util.Response
// @Router /api/materials/search [get]
func (c *MaterialController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "q is required")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	materials, err := c.MaterialService.Search(query, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// @Summary 教材削除
// @Tags 教材
// @Produce json
// @Security BearerAuth
// @Param id path int true "教材ID"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
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

	err := c.MaterialService.Delete(ctx.Request.Context(), id, user.UserID)
	switch err {
	case nil:
		util.Success(ctx, gin.H{"deleted": id})
	case util.ErrMaterialNotFound:
		util.NotFound(ctx)
	case util.ErrPermissionDenied:
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

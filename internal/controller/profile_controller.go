package controller

import (
	"strconv"

	"studylog_backend/internal/service"
	"studylog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

type targetSchoolRequest struct {
	SchoolName string `json:"schoolName" binding:"required"`
	Faculty    string `json:"faculty"`
}

// @Summary 自分のプロフィール取得
// @Description 初回アクセス時は空のプロフィールが自動作成される
// @Tags プロフィール
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *ProfileController) GetOwn(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.ProfileService.GetOwn(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// @Summary プロフィール更新
// @Tags プロフィール
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body service.UpdateProfileRequest true "プロフィール"
// @Success 200 {object} util.Response
// @Router /api/profile [put]
func (c *ProfileController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.ProfileService.Update(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// @Summary アバター画像アップロード
// @Tags プロフィール
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "アバター画像"
// @Success 200 {object} util.Response
// @Router /api/profile/avatar [post]
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	url, err := c.ProfileService.UploadAvatar(ctx.Request.Context(), user.UserID, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"avatarUrl": url})
}

// @Summary ユーザーページ取得
// @Description プロフィール・志望校・フォロー数を含む公開ページ
// @Tags プロフィール
// @Produce json
// @Param id path int true "ユーザーID"
// @Success 200 {object} util.Response
// @Router /api/users/{id} [get]
func (c *ProfileController) GetUserPage(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var viewerID *uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerID = &claims.UserID
	}

	page, err := c.ProfileService.GetUserPage(ctx.Request.Context(), id, viewerID)
	if err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary ユーザー検索
// @Tags プロフィール
// @Produce json
// @Param q query string true "表示名の検索ワード"
// @Success 200 {object} util.Response
// @Router /api/users/search [get]
func (c *ProfileController) SearchUsers(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "q is required")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	profiles, err := c.ProfileService.SearchUsers(query, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

// @Summary 志望校一覧
// @Tags プロフィール
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/profile/target-schools [get]
func (c *ProfileController) ListTargetSchools(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	schools, err := c.ProfileService.ListTargetSchools(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, schools)
}

// @Summary 志望校追加
// @Description 最大6校まで登録できる
// @Tags プロフィール
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param school body targetSchoolRequest true "志望校"
// @Success 201 {object} util.Response
// @Router /api/profile/target-schools [post]
func (c *ProfileController) AddTargetSchool(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req targetSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.ProfileService.AddTargetSchool(ctx.Request.Context(), user.UserID, req.SchoolName, req.Faculty)
	if err != nil {
		if err == util.ErrTargetSchoolLimit {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, school)
}

// @Summary 志望校削除
// @Tags プロフィール
// @Produce json
// @Security BearerAuth
// @Param id path int true "志望校ID"
// @Success 200 {object} util.Response
// @Router /api/profile/target-schools/{id} [delete]
func (c *ProfileController) DeleteTargetSchool(ctx *gin.Context) {
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

	if err := c.ProfileService.DeleteTargetSchool(ctx.Request.Context(), id, user.UserID); err != nil {
		if err == util.ErrPermissionDenied {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

package controller

import (
	"time"

	"studylog_backend/internal/service"
	"studylog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	StatsService *service.StatsService
}

func NewReportController(statsService *service.StatsService) *ReportController {
	return &ReportController{StatsService: statsService}
}

// @Summary 学習サマリー取得
// @Description 今日の学習時間・直近7日平均・今週の達成率などを返す
// @Tags レポート
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/report/summary [get]
func (c *ReportController) GetSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.StatsService.GetSummary(ctx.Request.Context(), user.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary 月別カレンダー取得
// @Description 指定月の日別学習時間(分)を返す
// @Tags レポート
// @Produce json
// @Security BearerAuth
// @Param month query string false "対象月 (YYYY-MM)、省略時は今月"
// @Success 200 {object} util.Response
// @Router /api/report/calendar [get]
func (c *ReportController) GetCalendar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if m := ctx.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			util.BadRequest(ctx, "month must be YYYY-MM")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	calendar, err := c.StatsService.GetCalendar(ctx.Request.Context(), user.UserID, year, month)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, calendar)
}

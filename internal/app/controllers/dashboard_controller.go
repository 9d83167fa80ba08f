package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/englishclub/academy/internal/app/auth"
	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/models/dto"
	"github.com/englishclub/academy/internal/app/services"
	"github.com/englishclub/academy/internal/middleware"
)

// DashboardController handles the landing-page summary and navigation
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetSummary returns the landing-page counters
// @Summary Dashboard summary
// @Description Aggregates student counts, payment totals and per-course occupancy
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Summary retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/summary [get]
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	summary, err := c.dashboardService.GetSummary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DashboardResponse{
		TotalStudents:    summary.TotalStudents,
		ActiveStudents:   summary.ActiveStudents,
		TotalCourses:     summary.TotalCourses,
		PendingPayments:  summary.PendingPayments,
		OverduePayments:  summary.OverduePayments,
		CollectedAmount:  summary.CollectedAmount,
		OutstandingTotal: summary.OutstandingTotal,
		Occupancy:        summary.Occupancy,
	}, "Summary retrieved"))
}

// GetNavigation lists the sections visible to the signed-in role
// @Summary Dashboard navigation
// @Description Returns the menu sections the signed-in role may open
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.NavigationResponse} "Navigation retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/navigation [get]
func (c *DashboardController) GetNavigation(ctx *gin.Context) {
	value, exists := ctx.Get(middleware.ContextRoleType)
	roleStr, ok := value.(string)
	if !exists || !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	sections := auth.NavigationFor(models.RoleType(roleStr))
	names := make([]string, 0, len(sections))
	for _, section := range sections {
		names = append(names, string(section))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NavigationResponse{
		Role:     roleStr,
		Sections: names,
	}, "Navigation retrieved"))
}

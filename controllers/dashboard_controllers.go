package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/pos-app/services"
	"github.com/yeremiapane/pos-app/utils"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

// GetDashboard returns open orders, the selected day's finished orders, and
// that day's revenue. ?date=YYYY-MM-DD selects a day other than today.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	asOf := time.Now()

	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		asOf = parsed
	}

	snapshot, err := dc.Dashboard.Refresh(asOf)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard refreshed", gin.H{
		"date":                    snapshot.Date,
		"open_orders":             snapshot.OpenOrders,
		"finished_orders":         snapshot.FinishedOrders,
		"revenue_today":           snapshot.RevenueToday,
		"revenue_today_formatted": utils.FormatCurrency(snapshot.RevenueToday),
	})
}

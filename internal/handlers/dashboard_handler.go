package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ucDashboard "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/dashboard"
)

type DashboardHandler struct {
	summary *ucDashboard.GetSummary
	view    *View
}

func NewDashboardHandler(summary *ucDashboard.GetSummary, view *View) *DashboardHandler {
	return &DashboardHandler{summary: summary, view: view}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	s, err := h.summary.Execute(c.Request.Context())
	if err != nil {
		h.view.ServerError(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "dashboard", "Dashboard", gin.H{
		"Summary": s,
	})
}

package handler

import (
	"net/http"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Resumen always answers 200; failed metrics carry their own error.
func (h *DashboardHandler) Resumen(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Resumen(c.Request.Context()))
}

// CalcularTotales prices a draft item list.
func CalcularTotales(c *gin.Context) {
	var req dto.CalcularTotalesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := service.CalcularTotales(req.Items)
	if err != nil {
		respondError(c, err, "Error al calcular totales")
		return
	}
	c.JSON(http.StatusOK, resp)
}

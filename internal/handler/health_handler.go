package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maktab-edu/timetable-solver/pkg/response"
)

// Healthz godoc
// @Summary Liveness/readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /healthz [get]
func Healthz(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}

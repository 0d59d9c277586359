package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/maktab-edu/timetable-solver/internal/middleware"
)

// RegisterRoutes wires §4.16's route table onto r, chaining JWTAuth in
// front of the mutating solve endpoint only — reads (Get/export/
// history/health/metrics) stay open the way the teacher leaves its own
// read-only aliases unauthenticated.
func RegisterRoutes(r *gin.Engine, apiPrefix string, solve *SolveHandler, jwtSecret string, authRequired bool, reg *prometheus.Registry) {
	r.GET("/healthz", Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group(apiPrefix)
	{
		v1.POST("/solve", middleware.JWTAuth(jwtSecret, authRequired), solve.Solve)
		v1.GET("/solve/history", solve.History)
		v1.GET("/solve/:id", solve.Get)
		v1.GET("/solve/:id/export.csv", solve.ExportCSV)
		v1.GET("/solve/:id/export.pdf", solve.ExportPDF)
	}
}

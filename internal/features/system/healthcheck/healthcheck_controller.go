package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ping", c.Ping)
}

// Ping
// @Summary Health check
// @Description Returns service liveness together with host memory and disk usage
// @Tags system
// @Produce json
// @Success 200 {object} system_healthcheck.HealthStatus
// @Router /ping [get]
func (c *HealthcheckController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.healthcheckService.GetHealthStatus())
}

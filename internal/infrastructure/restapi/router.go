package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the HTTP routes.
func SetupRouter(saleHandler *SaleHandler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/sale", saleHandler.GetSaleStateHandler)
		v1.GET("/allowance", saleHandler.GetAllowanceHandler)
		v1.POST("/approve", saleHandler.PostApproveHandler)
		v1.POST("/buy", saleHandler.PostBuyHandler)
	}

	return router
}

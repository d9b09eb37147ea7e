package router

import (
	"freestuff/internal/adapter/api/handler"
	"freestuff/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReportRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reportHandler := handler.GetReportHandler()

	reports := e.Group("/v1/reports")
	reports.Use(authMiddleware.Authenticate)
	reports.POST("", reportHandler.SubmitReport)
}

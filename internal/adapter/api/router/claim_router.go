package router

import (
	"freestuff/internal/adapter/api/handler"
	"freestuff/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupClaimRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	claimHandler := handler.GetClaimHandler()

	claims := e.Group("/v1/claims")
	claims.Use(authMiddleware.Authenticate)
	claims.POST("/:id/retry", claimHandler.RetryClaim)
	claims.GET("/received", claimHandler.ListReceivedClaims)

	myClaims := e.Group("/v1/my-claims")
	myClaims.Use(authMiddleware.Authenticate)
	myClaims.GET("", claimHandler.ListMyClaims)
}

package router

import (
	"freestuff/internal/adapter/api/handler"
	"freestuff/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupItemRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	itemHandler := handler.GetItemHandler()
	claimHandler := handler.GetClaimHandler()

	// The feed is browseable without an account.
	e.GET("/v1/items", itemHandler.ListFeed)
	e.GET("/v1/items/:id", itemHandler.GetItem)

	items := e.Group("/v1/items")
	items.Use(authMiddleware.Authenticate)
	items.POST("", itemHandler.CreateItem)
	items.POST("/:id/claim", claimHandler.SubmitClaim)
	items.POST("/:id/given-away", claimHandler.MarkGivenAway)

	myItems := e.Group("/v1/my-items")
	myItems.Use(authMiddleware.Authenticate)
	myItems.GET("", itemHandler.ListMyItems)
}

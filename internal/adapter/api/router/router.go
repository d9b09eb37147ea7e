package router

import (
	"freestuff/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupHealthRouter(e)
	SetupItemRouter(e, authMiddleware)
	SetupClaimRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupReportRouter(e, authMiddleware)
	SetupFileRouter(e, authMiddleware)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"freestuff/internal/usecase"
	"freestuff/pkg/response"
)

type ClaimHandler struct {
	claimUseCase *usecase.ClaimUseCase
}

func NewClaimHandler(claimUseCase *usecase.ClaimUseCase) *ClaimHandler {
	return &ClaimHandler{
		claimUseCase: claimUseCase,
	}
}

type submitClaimRequest struct {
	Message string `json:"message"`
}

func (h *ClaimHandler) SubmitClaim(c echo.Context) error {
	var req submitClaimRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	claimerID := c.Get("uid").(string)

	result, err := h.claimUseCase.SubmitClaim(c.Request().Context(), claimerID, usecase.SubmitClaimInput{
		ItemID:  c.Param("id"),
		Message: req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *ClaimHandler) RetryClaim(c echo.Context) error {
	claimerID := c.Get("uid").(string)

	result, err := h.claimUseCase.RetryClaim(c.Request().Context(), claimerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *ClaimHandler) MarkGivenAway(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	item, err := h.claimUseCase.MarkGivenAway(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ClaimHandler) ListMyClaims(c echo.Context) error {
	claimerID := c.Get("uid").(string)

	claims, err := h.claimUseCase.ListByClaimer(c.Request().Context(), claimerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claims)
}

func (h *ClaimHandler) ListReceivedClaims(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	claims, err := h.claimUseCase.ListReceived(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claims)
}

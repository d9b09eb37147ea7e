package handler

import (
	"github.com/labstack/echo/v4"

	"freestuff/internal/usecase"
	"freestuff/pkg/response"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type submitReportRequest struct {
	ItemID string `json:"item_id"`
	UserID string `json:"user_id"`
	Reason string `json:"reason" validate:"required"`
}

func (h *ReportHandler) SubmitReport(c echo.Context) error {
	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reporterID := c.Get("uid").(string)

	report, err := h.reportUseCase.SubmitReport(c.Request().Context(), reporterID, usecase.SubmitReportInput{
		ItemID: req.ItemID,
		UserID: req.UserID,
		Reason: req.Reason,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, report)
}

package usecase

import (
	"context"
	"strings"

	"freestuff/internal/domain/entity"
	"freestuff/internal/domain/repository"
	"freestuff/pkg/errors"
)

type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
	}
}

type SubmitReportInput struct {
	ItemID string
	UserID string
	Reason string
}

func (uc *ReportUseCase) SubmitReport(ctx context.Context, reporterID string, input SubmitReportInput) (*entity.Report, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, errors.Validation("reason must not be empty")
	}
	if input.ItemID == "" && input.UserID == "" {
		return nil, errors.Validation("report must reference an item or a user")
	}

	report := &entity.Report{
		ReporterID: reporterID,
		ItemID:     input.ItemID,
		UserID:     input.UserID,
		Reason:     input.Reason,
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

package repository

import (
	"context"

	"freestuff/internal/domain/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
}

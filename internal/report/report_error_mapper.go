package report

import (
	"errors"

	"gorm.io/gorm"

	reporterrors "go-dailyreport/internal/report/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reporterrors.ErrReportNotFound
	}
	return err
}

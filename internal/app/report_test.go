package app

import (
	"errors"
	"testing"

	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewReportRequest_Defaults(t *testing.T) {
	req := NewReportRequest(domain.ModeWIP)
	assert.Equal(t, domain.ModeWIP, req.Mode)
	assert.Equal(t, 7, req.PeriodDays)
	assert.Equal(t, 5, req.PeriodCount)
	assert.True(t, req.WIPColumn)
	assert.False(t, req.IncludeComplete)
	assert.Empty(t, req.DueDate)
}

func TestReportError(t *testing.T) {
	cause := errors.New("boom")
	err := &ReportError{Code: ReportErrWriteFailed, Message: "saving workbook", Err: cause}
	assert.Equal(t, "WRITE_FAILED: saving workbook", err.Error())
	assert.ErrorIs(t, err, cause)

	var target *ReportError
	assert.True(t, errors.As(error(err), &target))
	assert.Equal(t, ReportErrWriteFailed, target.Code)
}

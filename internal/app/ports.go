package app

import "context"

type GenerateReportUseCase interface {
	Generate(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

type FlattenProjectUseCase interface {
	Flatten(ctx context.Context, req ReportRequest) (*TaskListResponse, error)
}

package report

import "gorm.io/gorm"

type ReportContainer struct {
	Repo    ReportRepository
	Service ReportService
	Handler *Handler
}

func NewReportContainer(db *gorm.DB) *ReportContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &ReportContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

package declaration

import (
	"context"
	"log/slog"
	"net/url"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/content"
	"supplierfront/internal/platform/metrics"
)

// DataAPI is the part of the data API the declaration needs.
type DataAPI interface {
	GetSupplierDeclaration(ctx context.Context, supplierID int64, frameworkSlug string) (apiclient.Declaration, error)
	SetSupplierDeclaration(ctx context.Context, supplierID int64, frameworkSlug string, declaration apiclient.Declaration, user string) error
}

type Service struct {
	api     DataAPI
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(api DataAPI, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{api: api, logger: logger, metrics: m}
}

// Submission is one posted wizard page.
type Submission struct {
	SupplierID int64
	Framework  string
	Manifest   *content.Manifest
	Section    *content.Section
	Form       url.Values
	UpdatedBy  string
}

// Result of a page submission. When Errors is non-empty nothing was saved and
// Answers holds the saved answers overlaid with the rejected input so the
// page can be re-rendered.
type Result struct {
	Answers     Answers
	Errors      Errors
	Status      string
	NextSection string
}

// Load returns the saved answers. A declaration the API has never seen is
// empty rather than an error.
func (s *Service) Load(ctx context.Context, supplierID int64, frameworkSlug string) (Answers, error) {
	saved, err := s.api.GetSupplierDeclaration(ctx, supplierID, frameworkSlug)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return Answers{}, nil
		}
		return nil, err
	}
	if saved == nil {
		return Answers{}, nil
	}
	return Answers(saved), nil
}

// SubmitSection validates the posted page, merges it into the saved answers,
// recomputes the overall status and persists the result.
func (s *Service) SubmitSection(ctx context.Context, sub Submission) (*Result, error) {
	saved, err := s.Load(ctx, sub.SupplierID, sub.Framework)
	if err != nil {
		return nil, err
	}

	submitted := sub.Manifest.SectionData(sub.Section, sub.Form)
	all := Merge(saved, submitted)

	if errs := NewValidator(sub.Manifest, submitted).ErrorMessagesForPage(sub.Section); len(errs) > 0 {
		return &Result{Answers: all, Errors: errs, Status: saved.Status()}, nil
	}

	status := StatusComplete
	if len(NewValidator(sub.Manifest, all).ErrorMessages()) > 0 {
		status = StatusStarted
	}
	all[statusKey] = status

	if err := s.api.SetSupplierDeclaration(ctx, sub.SupplierID, sub.Framework, apiclient.Declaration(all), sub.UpdatedBy); err != nil {
		return nil, err
	}
	s.metrics.ObserveDeclarationSaved(sub.Framework, status)
	s.logger.InfoContext(ctx, "declaration section saved",
		"framework", sub.Framework,
		"supplier_id", sub.SupplierID,
		"section", sub.Section.ID,
		"status", status,
	)

	return &Result{
		Answers:     all,
		Status:      status,
		NextSection: sub.Manifest.NextEditableSectionID(sub.Section.ID),
	}, nil
}

// Package services helps present a supplier's draft services.
package services

import (
	"context"
	"time"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/blob"
	"supplierfront/internal/content"
	"supplierfront/internal/documents"
)

type DraftFinder interface {
	FindDraftServices(ctx context.Context, supplierID int64, frameworkSlug string) ([]apiclient.Service, error)
}

// GetDrafts splits a supplier's drafts for a framework into those not yet
// submitted and those marked complete.
func GetDrafts(ctx context.Context, api DraftFinder, supplierID int64, frameworkSlug string) (drafts, complete []apiclient.Service, err error) {
	all, err := api.FindDraftServices(ctx, supplierID, frameworkSlug)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range all {
		switch d.Status() {
		case apiclient.DraftSubmitted:
			complete = append(complete, d)
		case apiclient.DraftNotSubmitted:
			drafts = append(drafts, d)
		}
	}
	return drafts, complete, nil
}

// GetLotDrafts is GetDrafts restricted to one lot.
func GetLotDrafts(ctx context.Context, api DraftFinder, supplierID int64, frameworkSlug, lotSlug string) (drafts, complete []apiclient.Service, err error) {
	allDrafts, allComplete, err := GetDrafts(ctx, api, supplierID, frameworkSlug)
	if err != nil {
		return nil, nil, err
	}
	return filterLot(allDrafts, lotSlug), filterLot(allComplete, lotSlug), nil
}

func filterLot(in []apiclient.Service, lotSlug string) []apiclient.Service {
	var out []apiclient.Service
	for _, s := range in {
		if s.Lot() == lotSlug {
			out = append(out, s)
		}
	}
	return out
}

// CountUnansweredQuestions counts mandatory questions still to answer and
// optional questions left blank.
func CountUnansweredQuestions(sections []content.SummarySection) (required, optional int) {
	for _, section := range sections {
		for _, row := range section.Rows {
			switch {
			case row.AnswerRequired():
				required++
			case content.IsEmptyValue(row.Value):
				optional++
			}
		}
	}
	return required, optional
}

// ReformatPricingData stores the formatted price of every pricing question
// under the question id so summaries can show it.
func ReformatPricingData(service apiclient.Service, manifest *content.Manifest) apiclient.Service {
	out := make(apiclient.Service, len(service))
	for k, v := range service {
		out[k] = v
	}
	for _, q := range manifest.Questions() {
		if q.Type == content.TypePricing && len(q.Fields) > 0 {
			out[q.ID] = content.FormatFieldBasedPrice(service, q)
		}
	}
	return out
}

func FormatServicePrice(service apiclient.Service) string {
	return content.FormatServicePrice(service)
}

// ServiceAttributes pairs each question of the manifest with the service's answer.
func ServiceAttributes(service apiclient.Service, manifest *content.Manifest) []content.SummarySection {
	return manifest.Summary(service)
}

func IsServiceAssociatedWithSupplier(service apiclient.Service, supplierID int64) bool {
	return supplierID != 0 && service.SupplierID() == supplierID
}

func IsServiceModifiable(service apiclient.Service) bool {
	return service.Status() != apiclient.ServiceDisabled
}

// DraftDocumentURL links a draft's uploaded document through the documents
// domain. It returns "" when the document is missing.
func DraftDocumentURL(ctx context.Context, store blob.Store, documentPath, baseURL string) (string, error) {
	return documents.SignedURL(ctx, store, documentPath, baseURL)
}

func ParseDocumentUploadTime(name string) (time.Time, bool) {
	return documents.ParseUploadTime(name)
}

// NextSectionName is the name of the editable section after current, or "".
func NextSectionName(manifest *content.Manifest, current string) string {
	next := manifest.NextEditableSectionID(current)
	if next == "" {
		return ""
	}
	return manifest.Section(next).Name
}

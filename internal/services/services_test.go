package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/blob"
	"supplierfront/internal/content"
)

type stubFinder struct {
	services []apiclient.Service
	err      error
}

func (s stubFinder) FindDraftServices(context.Context, int64, string) ([]apiclient.Service, error) {
	return s.services, s.err
}

func pricingManifest() *content.Manifest {
	return &content.Manifest{Sections: []*content.Section{
		{ID: "service-name", Name: "Service name", Editable: true, Questions: []*content.Question{
			{ID: "serviceName", Question: "Service name", Type: content.TypeText},
			{ID: "serviceSummary", Question: "Summary", Type: content.TypeTextboxLarge, Optional: true},
		}},
		{ID: "pricing", Name: "Pricing", Editable: true, Questions: []*content.Question{
			{ID: "priceString", Question: "Price", Type: content.TypePricing, Fields: map[string]string{
				content.FieldMinimumPrice: "priceMin",
				content.FieldPriceUnit:    "priceUnit",
			}},
		}},
		{ID: "read-only", Name: "Read only", Questions: []*content.Question{{ID: "x", Type: content.TypeText}}},
	}}
}

func TestGetDrafts(t *testing.T) {
	api := stubFinder{services: []apiclient.Service{
		{"id": 1.0, "lot": "scs", "status": "submitted"},
		{"id": 2.0, "lot": "scs", "status": "not-submitted"},
		{"id": 3.0, "lot": "saas", "status": "not-submitted"},
		{"id": 4.0, "lot": "saas", "status": "disabled"},
	}}

	drafts, complete, err := GetDrafts(context.Background(), api, 1234, "g-cloud-7")
	require.NoError(t, err)
	assert.Len(t, drafts, 2)
	assert.Len(t, complete, 1)

	drafts, complete, err = GetLotDrafts(context.Background(), api, 1234, "g-cloud-7", "saas")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, int64(3), drafts[0].ID())
	assert.Empty(t, complete)

	_, _, err = GetDrafts(context.Background(), stubFinder{err: errors.New("boom")}, 1, "g-cloud-7")
	assert.Error(t, err)
}

func TestCountUnansweredQuestions(t *testing.T) {
	manifest := pricingManifest()
	sections := ServiceAttributes(apiclient.Service{"serviceName": "", "priceMin": "10"}, manifest)

	required, optional := CountUnansweredQuestions(sections)
	assert.Equal(t, 2, required)
	assert.Equal(t, 1, optional)
}

func TestReformatPricingData(t *testing.T) {
	service := apiclient.Service{"priceMin": "10", "priceUnit": "Person"}
	out := ReformatPricingData(service, pricingManifest())
	assert.Equal(t, "£10 per person", out["priceString"])
	assert.NotContains(t, service, "priceString")
}

func TestFormatServicePrice(t *testing.T) {
	assert.Equal(t, "£1 to £2 per unit per day",
		FormatServicePrice(apiclient.Service{"priceMin": "1", "priceMax": "2", "priceUnit": "Unit", "priceInterval": "Day"}))
	assert.Equal(t, "", FormatServicePrice(apiclient.Service{}))
}

func TestServiceOwnership(t *testing.T) {
	service := apiclient.Service{"supplierId": 1234.0, "status": "not-submitted"}
	assert.True(t, IsServiceAssociatedWithSupplier(service, 1234))
	assert.False(t, IsServiceAssociatedWithSupplier(service, 1))
	assert.True(t, IsServiceModifiable(service))
	assert.False(t, IsServiceModifiable(apiclient.Service{"status": "disabled"}))
}

func TestDraftDocumentURL(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory("submissions")
	require.NoError(t, store.Put(ctx, "g-cloud-7/documents/1234/1-pricing-document-2015-01-02-1604.pdf", strings.NewReader("x"), blob.PutOptions{}))

	url, err := DraftDocumentURL(ctx, store, "g-cloud-7/documents/1234/1-pricing-document-2015-01-02-1604.pdf", "https://assets.example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://assets.example.com/g-cloud-7/documents/"))

	uploaded, ok := ParseDocumentUploadTime("1-pricing-document-2015-01-02-1604.pdf")
	require.True(t, ok)
	assert.Equal(t, time.Date(2015, 1, 2, 16, 4, 0, 0, time.UTC), uploaded)
}

func TestNextSectionName(t *testing.T) {
	manifest := pricingManifest()
	assert.Equal(t, "Pricing", NextSectionName(manifest, "service-name"))
	assert.Equal(t, "", NextSectionName(manifest, "pricing"))
}

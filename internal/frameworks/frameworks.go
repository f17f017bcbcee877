// Package frameworks holds the lookups and derived facts the framework pages
// share.
package frameworks

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/blob"
	"supplierfront/internal/declaration"
	"supplierfront/internal/documents"
	dErrors "supplierfront/pkg/domain-errors"
)

// Framework slug whose legacy download links are still redirected.
const GCloud7 = "g-cloud-7"

// DigitalOutcomesAndSpecialists counts its submissions in labs.
const DigitalOutcomesAndSpecialists = "digital-outcomes-and-specialists"

var (
	openStatuses    = []string{apiclient.FrameworkOpen}
	visibleStatuses = []string{apiclient.FrameworkOpen, apiclient.FrameworkPending, apiclient.FrameworkStandstill, apiclient.FrameworkLive}
)

type FrameworkGetter interface {
	GetFramework(ctx context.Context, slug string) (*apiclient.Framework, error)
}

type SupplierFrameworkGetter interface {
	GetSupplierFrameworkInfo(ctx context.Context, supplierID int64, frameworkSlug string) (*apiclient.SupplierFramework, error)
}

type InterestRegisterer interface {
	RegisterFrameworkInterest(ctx context.Context, supplierID int64, frameworkSlug, user string) error
}

type DeclarationGetter interface {
	GetSupplierDeclaration(ctx context.Context, supplierID int64, frameworkSlug string) (apiclient.Declaration, error)
}

// GetFramework fetches a framework and rejects it as not found unless its
// status is open, or when openOnly is false, any status a supplier can see.
func GetFramework(ctx context.Context, api FrameworkGetter, slug string, openOnly bool) (*apiclient.Framework, error) {
	framework, err := api.GetFramework(ctx, slug)
	if err != nil {
		return nil, err
	}
	allowed := visibleStatuses
	if openOnly {
		allowed = openStatuses
	}
	if !slices.Contains(allowed, framework.Status) {
		return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("framework %s is %s", slug, framework.Status))
	}
	return framework, nil
}

// GetFrameworkAndLot is GetFramework plus the named lot, which must exist.
func GetFrameworkAndLot(ctx context.Context, api FrameworkGetter, slug, lotSlug string, openOnly bool) (*apiclient.Framework, apiclient.Lot, error) {
	framework, err := GetFramework(ctx, api, slug, openOnly)
	if err != nil {
		return nil, apiclient.Lot{}, err
	}
	lot, ok := framework.Lot(lotSlug)
	if !ok {
		return nil, apiclient.Lot{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("lot %s not in %s", lotSlug, slug))
	}
	return framework, lot, nil
}

func RegisterInterest(ctx context.Context, api InterestRegisterer, supplierID int64, frameworkSlug, user string) error {
	return api.RegisterFrameworkInterest(ctx, supplierID, frameworkSlug, user)
}

// SupplierFrameworkInfo returns nil without error when the supplier has never
// registered interest.
func SupplierFrameworkInfo(ctx context.Context, api SupplierFrameworkGetter, supplierID int64, frameworkSlug string) (*apiclient.SupplierFramework, error) {
	info, err := api.GetSupplierFrameworkInfo(ctx, supplierID, frameworkSlug)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}

// DeclarationStatus fetches the declaration and reports its status.
func DeclarationStatus(ctx context.Context, api DeclarationGetter, supplierID int64, frameworkSlug string) (string, error) {
	decl, err := api.GetSupplierDeclaration(ctx, supplierID, frameworkSlug)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return declaration.StatusUnstarted, nil
		}
		return "", err
	}
	return declaration.StatusOf(decl), nil
}

func DeclarationStatusFromInfo(info *apiclient.SupplierFramework) string {
	if info == nil {
		return declaration.StatusUnstarted
	}
	return declaration.StatusOf(info.Declaration)
}

func SupplierOnFrameworkFromInfo(info *apiclient.SupplierFramework) bool {
	return info.IsOnFramework()
}

func CountDraftsByLot(drafts []apiclient.Service, lotSlug string) int {
	n := 0
	for _, d := range drafts {
		if d.Lot() == lotSlug {
			n++
		}
	}
	return n
}

func HasOneServiceLimit(lotSlug string, lots []apiclient.Lot) bool {
	for _, lot := range lots {
		if lot.Slug == lotSlug {
			return lot.OneServiceLimit
		}
	}
	return false
}

// LastModifiedFromFirstMatchingFile returns the last-modified time of the
// first file in infos under {framework}/{prefix}. ok is false if none match.
func LastModifiedFromFirstMatchingFile(infos []blob.Info, frameworkSlug, prefix string) (time.Time, bool) {
	startsWith := frameworkSlug + "/" + prefix
	for _, info := range infos {
		if strings.HasPrefix(info.Path, startsWith) {
			return info.LastModified, true
		}
	}
	return time.Time{}, false
}

// CountersignedAgreementExists reports whether the countersigned agreement
// for the supplier has been uploaded to the agreements bucket.
func CountersignedAgreementExists(ctx context.Context, agreements blob.Store, frameworkSlug string, supplierID int64) (bool, error) {
	return agreements.Exists(ctx, documents.AgreementDocumentPath(frameworkSlug, supplierID, documents.CountersignedAgreementFilename))
}

// Units returns the singular and plural noun for a framework's submissions.
func Units(frameworkSlug string) (string, string) {
	if frameworkSlug == DigitalOutcomesAndSpecialists {
		return "lab", "labs"
	}
	return "service", "services"
}

// Package documents names, checks and links supplier documents held in
// object storage.
package documents

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"supplierfront/internal/blob"
	"supplierfront/pkg/platform/sentinel"
)

const (
	ResultLetterFilename           = "result-letter.pdf"
	AgreementFilename              = "framework-agreement.pdf"
	SignedAgreementPrefix          = "signed-framework-agreement"
	CountersignedAgreementFilename = "countersigned-framework-agreement.pdf"
)

const maxUploadBytes int64 = 5400000

var badSupplierNameCharacters = []string{
	"#", "%", "&", "{", "}", `\`, "<", ">", "*", "?", "/", "$", "!", "'", `"`,
	":", "@", "+", "`", "|", "=", ",", ".",
}

var uploadTimePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}-\d{4})\..{2,3}$`)

// AgreementDocumentPath is the key of a supplier's agreement document,
// for example "g-cloud-7/agreements/1234/1234-result-letter.pdf".
func AgreementDocumentPath(frameworkSlug string, supplierID int64, documentName string) string {
	return fmt.Sprintf("%s/agreements/%d/%d-%s", frameworkSlug, supplierID, supplierID, documentName)
}

// SignedURL signs path and rewrites the scheme and host to baseURL so links
// go through the assets domain. It returns "" when the document is missing.
func SignedURL(ctx context.Context, store blob.Store, documentPath, baseURL string) (string, error) {
	signed, err := store.SignedURL(ctx, documentPath, blob.DefaultSignedURLExpiry)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return ReplaceHost(signed, baseURL)
}

// ReplaceHost swaps the scheme and host of rawURL for those of baseURL.
func ReplaceHost(rawURL, baseURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse signed url: %w", err)
	}
	if baseURL == "" {
		return u.String(), nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.Scheme = base.Scheme
	u.Host = base.Host
	return u.String(), nil
}

// Extension returns the lowercased extension including the dot.
func Extension(filename string) string {
	return strings.ToLower(path.Ext(filename))
}

func FileIsLessThan5MB(size int64) bool {
	return size < maxUploadBytes
}

func FileIsEmpty(size int64) bool {
	return size < 1
}

// SanitiseSupplierName makes a supplier name safe to use in a filename.
func SanitiseSupplierName(name string) string {
	sanitised := strings.TrimSpace(name)
	sanitised = strings.ReplaceAll(sanitised, " ", "_")
	sanitised = strings.ReplaceAll(sanitised, "&", "and")
	for _, bad := range badSupplierNameCharacters {
		sanitised = strings.ReplaceAll(sanitised, bad, "")
	}
	for strings.Contains(sanitised, "__") {
		sanitised = strings.ReplaceAll(sanitised, "__", "_")
	}
	return sanitised
}

// ParseUploadTime reads the "YYYY-MM-DD-HHMM" stamp before a document's
// extension. ok is false when the name carries no stamp.
func ParseUploadTime(name string) (t time.Time, ok bool) {
	match := uploadTimePattern.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02-1504", match[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

package apiclient

import "time"

// Framework statuses as reported by the data API.
const (
	FrameworkComingSoon = "coming"
	FrameworkOpen       = "open"
	FrameworkPending    = "pending"
	FrameworkStandstill = "standstill"
	FrameworkLive       = "live"
	FrameworkExpired    = "expired"
)

// Draft service statuses.
const (
	DraftNotSubmitted = "not-submitted"
	DraftSubmitted    = "submitted"
	ServiceDisabled   = "disabled"
)

type Lot struct {
	ID              int64  `json:"id"`
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	OneServiceLimit bool   `json:"oneServiceLimit"`
}

type Framework struct {
	ID                         int64  `json:"id"`
	Name                       string `json:"name"`
	Slug                       string `json:"slug"`
	Framework                  string `json:"framework"`
	Status                     string `json:"status"`
	ClarificationQuestionsOpen bool   `json:"clarificationQuestionsOpen"`
	Lots                       []Lot  `json:"lots"`
}

// Lot returns the framework lot with the given slug.
func (f *Framework) Lot(slug string) (Lot, bool) {
	for _, lot := range f.Lots {
		if lot.Slug == slug {
			return lot, true
		}
	}
	return Lot{}, false
}

// Service is a draft or live service. Its shape is driven by the framework's
// question content so it stays a free-form document.
type Service map[string]any

func (s Service) ID() int64         { return asInt64(s["id"]) }
func (s Service) SupplierID() int64 { return asInt64(s["supplierId"]) }
func (s Service) Lot() string       { return asString(s["lot"]) }
func (s Service) Status() string    { return asString(s["status"]) }

// Declaration is the supplier's answer set for a framework declaration.
type Declaration map[string]any

// SupplierFramework is the "frameworkInterest" record linking a supplier to a
// framework.
type SupplierFramework struct {
	SupplierID          int64       `json:"supplierId"`
	FrameworkSlug       string      `json:"frameworkSlug"`
	Declaration         Declaration `json:"declaration"`
	OnFramework         *bool       `json:"onFramework"`
	AgreementReturned   bool        `json:"agreementReturned"`
	AgreementReturnedAt string      `json:"agreementReturnedAt,omitempty"`
}

// IsOnFramework reports the onFramework flag, treating "not yet decided" as false.
func (sf *SupplierFramework) IsOnFramework() bool {
	return sf != nil && sf.OnFramework != nil && *sf.OnFramework
}

type UserSupplier struct {
	SupplierID int64  `json:"supplierId"`
	Name       string `json:"name"`
}

type User struct {
	ID           int64         `json:"id"`
	EmailAddress string        `json:"emailAddress"`
	Name         string        `json:"name"`
	Role         string        `json:"role"`
	Active       bool          `json:"active"`
	Locked       bool          `json:"locked"`
	Supplier     *UserSupplier `json:"supplier,omitempty"`
}

type ContactInformation struct {
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Website     string `json:"website,omitempty"`
	Address1    string `json:"address1,omitempty"`
	City        string `json:"city,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
}

type Supplier struct {
	ID                 int64                `json:"id"`
	Name               string               `json:"name"`
	Description        string               `json:"description,omitempty"`
	DUNSNumber         string               `json:"dunsNumber,omitempty"`
	ContactInformation []ContactInformation `json:"contactInformation,omitempty"`
}

// NewUser is the payload for user creation from an invitation.
type NewUser struct {
	Role         string `json:"role"`
	SupplierID   int64  `json:"supplierId,omitempty"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	EmailAddress string `json:"emailAddress"`
}

type AuditEvent struct {
	AuditType  string         `json:"type"`
	User       string         `json:"user"`
	ObjectType string         `json:"objectType,omitempty"`
	ObjectID   any            `json:"objectId,omitempty"`
	Data       map[string]any `json:"data"`
	CreatedAt  time.Time      `json:"createdAt,omitzero"`
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"supplierfront/pkg/requestcontext"
)

const tracerName = "supplierfront/apiclient"

// Client talks JSON to the data API.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	tracer    trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces the default client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.http = c }
}

func New(baseURL, authToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		authToken: authToken,
		http:      &http.Client{Timeout: 10 * time.Second},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Frameworks

func (c *Client) GetFramework(ctx context.Context, slug string) (*Framework, error) {
	var out struct {
		Frameworks Framework `json:"frameworks"`
	}
	if err := c.do(ctx, "GetFramework", http.MethodGet, "/frameworks/"+url.PathEscape(slug), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Frameworks, nil
}

func (c *Client) FindFrameworks(ctx context.Context) ([]Framework, error) {
	var out struct {
		Frameworks []Framework `json:"frameworks"`
	}
	if err := c.do(ctx, "FindFrameworks", http.MethodGet, "/frameworks", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Frameworks, nil
}

// Suppliers

func (c *Client) GetSupplier(ctx context.Context, supplierID int64) (*Supplier, error) {
	var out struct {
		Suppliers Supplier `json:"suppliers"`
	}
	if err := c.do(ctx, "GetSupplier", http.MethodGet, supplierPath(supplierID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Suppliers, nil
}

// Draft services

func (c *Client) FindDraftServices(ctx context.Context, supplierID int64, frameworkSlug string) ([]Service, error) {
	query := url.Values{}
	query.Set("supplier_id", strconv.FormatInt(supplierID, 10))
	if frameworkSlug != "" {
		query.Set("framework", frameworkSlug)
	}
	var out struct {
		Services []Service `json:"services"`
	}
	if err := c.do(ctx, "FindDraftServices", http.MethodGet, "/draft-services", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (c *Client) GetDraftService(ctx context.Context, draftID int64) (Service, error) {
	var out struct {
		Services Service `json:"services"`
	}
	path := "/draft-services/" + strconv.FormatInt(draftID, 10)
	if err := c.do(ctx, "GetDraftService", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (c *Client) CreateNewDraftService(ctx context.Context, frameworkSlug, lot string, supplierID int64, data map[string]any, user string) (Service, error) {
	service := map[string]any{}
	for k, v := range data {
		service[k] = v
	}
	service["frameworkSlug"] = frameworkSlug
	service["lot"] = lot
	service["supplierId"] = supplierID

	body := map[string]any{"updated_by": user, "services": service}
	var out struct {
		Services Service `json:"services"`
	}
	if err := c.do(ctx, "CreateNewDraftService", http.MethodPost, "/draft-services", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

// Supplier frameworks and declarations

func (c *Client) GetSupplierDeclaration(ctx context.Context, supplierID int64, frameworkSlug string) (Declaration, error) {
	var out struct {
		Declaration Declaration `json:"declaration"`
	}
	path := supplierFrameworkPath(supplierID, frameworkSlug) + "/declaration"
	if err := c.do(ctx, "GetSupplierDeclaration", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Declaration, nil
}

func (c *Client) SetSupplierDeclaration(ctx context.Context, supplierID int64, frameworkSlug string, declaration Declaration, user string) error {
	body := map[string]any{"declaration": declaration, "updated_by": user}
	path := supplierFrameworkPath(supplierID, frameworkSlug) + "/declaration"
	return c.do(ctx, "SetSupplierDeclaration", http.MethodPut, path, nil, body, nil)
}

func (c *Client) GetSupplierFrameworkInfo(ctx context.Context, supplierID int64, frameworkSlug string) (*SupplierFramework, error) {
	var out struct {
		FrameworkInterest SupplierFramework `json:"frameworkInterest"`
	}
	if err := c.do(ctx, "GetSupplierFrameworkInfo", http.MethodGet, supplierFrameworkPath(supplierID, frameworkSlug), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.FrameworkInterest, nil
}

func (c *Client) RegisterFrameworkInterest(ctx context.Context, supplierID int64, frameworkSlug, user string) error {
	body := map[string]any{"updated_by": user}
	return c.do(ctx, "RegisterFrameworkInterest", http.MethodPut, supplierFrameworkPath(supplierID, frameworkSlug), nil, body, nil)
}

func (c *Client) RegisterFrameworkAgreementReturned(ctx context.Context, supplierID int64, frameworkSlug, user string) error {
	body := map[string]any{
		"frameworkInterest": map[string]any{"agreementReturned": true},
		"updated_by":        user,
	}
	return c.do(ctx, "RegisterFrameworkAgreementReturned", http.MethodPost, supplierFrameworkPath(supplierID, frameworkSlug), nil, body, nil)
}

// Users

func (c *Client) FindUsers(ctx context.Context, supplierID int64) ([]User, error) {
	query := url.Values{}
	query.Set("supplier_id", strconv.FormatInt(supplierID, 10))
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, "FindUsers", http.MethodGet, "/users", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// GetUserByEmail returns nil without error when no user has that address.
func (c *Client) GetUserByEmail(ctx context.Context, emailAddress string) (*User, error) {
	query := url.Values{}
	query.Set("email_address", emailAddress)
	var out struct {
		Users User `json:"users"`
	}
	if err := c.do(ctx, "GetUserByEmail", http.MethodGet, "/users", query, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out.Users, nil
}

// AuthenticateUser returns nil without error when the credentials are rejected.
func (c *Client) AuthenticateUser(ctx context.Context, emailAddress, password string) (*User, error) {
	body := map[string]any{
		"authUsers": map[string]any{"emailAddress": emailAddress, "password": password},
	}
	var out struct {
		Users User `json:"users"`
	}
	if err := c.do(ctx, "AuthenticateUser", http.MethodPost, "/users/auth", nil, body, &out); err != nil {
		status := StatusCode(err)
		if status == http.StatusNotFound || status == http.StatusForbidden {
			return nil, nil
		}
		return nil, err
	}
	return &out.Users, nil
}

func (c *Client) UpdateUserPassword(ctx context.Context, userID int64, password, updater string) error {
	body := map[string]any{
		"users":      map[string]any{"password": password},
		"updated_by": updater,
	}
	return c.do(ctx, "UpdateUserPassword", http.MethodPost, "/users/"+strconv.FormatInt(userID, 10), nil, body, nil)
}

func (c *Client) CreateUser(ctx context.Context, user NewUser) (*User, error) {
	body := map[string]any{"users": user}
	var out struct {
		Users User `json:"users"`
	}
	if err := c.do(ctx, "CreateUser", http.MethodPost, "/users", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Users, nil
}

// Audit

func (c *Client) CreateAuditEvent(ctx context.Context, event AuditEvent) error {
	body := map[string]any{"auditEvents": event}
	return c.do(ctx, "CreateAuditEvent", http.MethodPost, "/audit-events", nil, body, nil)
}

func supplierPath(supplierID int64) string {
	return "/suppliers/" + strconv.FormatInt(supplierID, 10)
}

func supplierFrameworkPath(supplierID int64, frameworkSlug string) string {
	return supplierPath(supplierID) + "/frameworks/" + url.PathEscape(frameworkSlug)
}

// do performs one traced round trip. A nil out discards the response body.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "apiclient."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	err := c.roundTrip(ctx, method, path, query, body, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Int("http.status_code", StatusCode(err)))
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{StatusCode: http.StatusServiceUnavailable, Message: "data api unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{StatusCode: http.StatusInternalServerError, Message: "invalid data api response", Err: err}
	}
	return nil
}

// errorMessage pulls the "error" field out of an API error body. Errors may be
// a string or an object of field errors.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Error) == 0 {
		return strings.TrimSpace(string(raw))
	}
	var msg string
	if err := json.Unmarshal(payload.Error, &msg); err == nil {
		return msg
	}
	return string(payload.Error)
}

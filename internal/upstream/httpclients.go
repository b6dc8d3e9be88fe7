package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// HTTPDocumentFetcher fetches compliance documents from the upstream
// document store over JSON/HTTP.
type HTTPDocumentFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDocumentFetcher builds a fetcher against the given base URL.
func NewHTTPDocumentFetcher(baseURL string, timeout time.Duration) *HTTPDocumentFetcher {
	return &HTTPDocumentFetcher{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

// Fetch implements DocumentFetcher.
func (f *HTTPDocumentFetcher) Fetch(ctx context.Context, clientID domain.ClientID, regulation string) (*Document, error) {
	url := fmt.Sprintf("%s/documents/%s/%s", f.baseURL, clientID, regulation)
	var doc Document
	if err := getJSON(ctx, f.client, url, &doc); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "document fetch failed")
	}
	return &doc, nil
}

// HTTPDocumentAnalyzer submits document content to the OCR/LLM analysis
// service and returns its compliance verdict.
type HTTPDocumentAnalyzer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDocumentAnalyzer builds an analyzer client against the given base URL.
func NewHTTPDocumentAnalyzer(baseURL string, timeout time.Duration) *HTTPDocumentAnalyzer {
	return &HTTPDocumentAnalyzer{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

// Analyze implements DocumentAnalyzer.
func (a *HTTPDocumentAnalyzer) Analyze(ctx context.Context, content string, regulation string) (*Analysis, error) {
	payload := map[string]string{"content": content, "regulation": regulation}
	var analysis Analysis
	if err := postJSON(ctx, a.client, a.baseURL+"/analyze", payload, &analysis); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "document analysis failed")
	}
	return &analysis, nil
}

// HTTPDataQualityService queries the data-quality platform for per-field
// assessments.
type HTTPDataQualityService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDataQualityService builds a DQ client against the given base URL.
func NewHTTPDataQualityService(baseURL string, timeout time.Duration) *HTTPDataQualityService {
	return &HTTPDataQualityService{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

// Assess implements DataQualityService.
func (s *HTTPDataQualityService) Assess(ctx context.Context, clientID domain.ClientID, regulation string) (map[string]FieldQuality, error) {
	url := fmt.Sprintf("%s/assessments/%s/%s", s.baseURL, clientID, regulation)
	var result struct {
		Fields map[string]FieldQuality `json:"fields"`
	}
	if err := getJSON(ctx, s.client, url, &result); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "data quality assessment failed")
	}
	return result.Fields, nil
}

// HTTPCompletenessService checks document availability against the upstream
// document inventory.
type HTTPCompletenessService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPCompletenessService builds a completeness client against the given base URL.
func NewHTTPCompletenessService(baseURL string, timeout time.Duration) *HTTPCompletenessService {
	return &HTTPCompletenessService{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

// Check implements DocumentCompletenessService.
func (s *HTTPCompletenessService) Check(ctx context.Context, clientID domain.ClientID, regulation string, requiredDocs []string) (map[string]bool, error) {
	payload := map[string]any{
		"client_id":     clientID,
		"regulation":    regulation,
		"required_docs": requiredDocs,
	}
	var result struct {
		Availability map[string]bool `json:"availability"`
	}
	if err := postJSON(ctx, s.client, s.baseURL+"/completeness", payload, &result); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "document completeness check failed")
	}
	return result.Availability, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return doJSON(client, req, dst)
}

func postJSON(ctx context.Context, client *http.Client, url string, payload any, dst any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return doJSON(client, req, dst)
}

func doJSON(client *http.Client, req *http.Request, dst any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// APIError is a non-2xx response from the record API.
//
// errors.Is matches [shared.ErrAPIRequest] and the sentinel named by Code, so callers can test
// for [shared.ErrRecordNotFound] and friends without inspecting the status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("record API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("record API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	if target == shared.ErrAPIRequest {
		return true
	}
	known := shared.ErrorForCode(e.Code)
	return known != nil && known == target
}

// RecordClient implements [RecordService] over HTTP.
type RecordClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRecordClient creates a client for the API at baseURL.
func NewRecordClient(baseURL string, client *http.Client) *RecordClient {
	if baseURL == "" {
		baseURL = "http://localhost:5050"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &RecordClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
	}
}

func (c *RecordClient) List(ctx context.Context) ([]models.Record, error) {
	records := []models.Record{}
	if err := c.doJSON(ctx, http.MethodGet, "/record/", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *RecordClient) Get(ctx context.Context, id string) (*models.Record, error) {
	var record models.Record
	if err := c.doJSON(ctx, http.MethodGet, recordPath(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *RecordClient) Create(ctx context.Context, fields models.RecordFields) (*models.InsertResult, error) {
	var result models.InsertResult
	if err := c.doJSON(ctx, http.MethodPost, "/record/", fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RecordClient) Update(ctx context.Context, id string, fields models.RecordFields) (*models.UpdateResult, error) {
	var result models.UpdateResult
	if err := c.doJSON(ctx, http.MethodPatch, recordPath(id), fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RecordClient) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	var result models.DeleteResult
	if err := c.doJSON(ctx, http.MethodDelete, recordPath(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RecordClient) BulkDelete(ctx context.Context, ids []string) (*models.BulkDeleteResult, error) {
	if ids == nil {
		ids = []string{}
	}

	var resp models.BulkDeleteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/record/bulk-delete", models.BulkDeleteRequest{IDs: ids}, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: bulk delete response has no result", shared.ErrAPIRequest)
	}
	return resp.Result, nil
}

// Import uploads r as the multipart field "file".
func (c *RecordClient) Import(ctx context.Context, filename string, r io.Reader) ([]models.Record, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/record/upload-excel", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.ImportResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Records == nil {
		resp.Records = []models.Record{}
	}
	return resp.Records, nil
}

func (c *RecordClient) doJSON(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

func (c *RecordClient) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var errResp models.ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			apiErr.Code, apiErr.Message = errResp.Code, errResp.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func recordPath(id string) string {
	return "/record/" + url.PathEscape(id)
}

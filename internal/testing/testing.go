// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"slices"
	"sync"
	"testing"

	"github.com/desertthunder/roster/internal/models"
	"github.com/google/uuid"
)

// MockRecordService is an in-memory test double for [services.RecordService].
//
// Setting Err makes every call fail with it. Calls records the operations in order.
type MockRecordService struct {
	mu      sync.Mutex
	Records []models.Record
	Err     error
	Calls   []string
	Uploads []string // filenames passed to Import
	// Imported is returned by Import; when nil, Import returns one record per upload named after the file.
	Imported []models.Record
}

// NewMockRecordService seeds a [MockRecordService] with records.
func NewMockRecordService(records ...models.Record) *MockRecordService {
	return &MockRecordService{Records: slices.Clone(records)}
}

func (m *MockRecordService) call(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, op)
	return m.Err
}

func (m *MockRecordService) List(ctx context.Context) ([]models.Record, error) {
	if err := m.call("list"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Records), nil
}

func (m *MockRecordService) Get(ctx context.Context, id string) (*models.Record, error) {
	if err := m.call("get"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockRecordService) Create(ctx context.Context, fields models.RecordFields) (*models.InsertResult, error) {
	if err := m.call("create"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record := fields.WithID(uuid.NewString())
	m.Records = append(m.Records, record)
	return &models.InsertResult{Acknowledged: true, InsertedID: record.ID}, nil
}

func (m *MockRecordService) Update(ctx context.Context, id string, fields models.RecordFields) (*models.UpdateResult, error) {
	if err := m.call("update"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.Records {
		if r.ID == id {
			m.Records[i] = fields.WithID(id)
			return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &models.UpdateResult{Acknowledged: true}, nil
}

func (m *MockRecordService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	if err := m.call("delete"); err != nil {
		return nil, err
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: m.remove(id)}, nil
}

func (m *MockRecordService) BulkDelete(ctx context.Context, ids []string) (*models.BulkDeleteResult, error) {
	if err := m.call("bulk-delete"); err != nil {
		return nil, err
	}
	return &models.BulkDeleteResult{
		DeleteResult: models.DeleteResult{Acknowledged: true, DeletedCount: m.remove(ids...)},
		SkippedIDs:   []string{},
	}, nil
}

func (m *MockRecordService) Import(ctx context.Context, filename string, r io.Reader) ([]models.Record, error) {
	if err := m.call("import"); err != nil {
		return nil, err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads = append(m.Uploads, filename)

	imported := m.Imported
	if imported == nil {
		imported = []models.Record{{ID: uuid.NewString(), Name: filename}}
	}
	m.Records = append(m.Records, imported...)
	return slices.Clone(imported), nil
}

func (m *MockRecordService) remove(ids ...string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.Records)
	m.Records = slices.DeleteFunc(m.Records, func(r models.Record) bool { return slices.Contains(ids, r.ID) })
	return int64(before - len(m.Records))
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

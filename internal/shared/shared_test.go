package shared

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestClassify(t *testing.T) {
	tc := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid id", fmt.Errorf("parse: %w", ErrInvalidID), http.StatusBadRequest, CodeInvalidID},
		{"validation", ErrValidation, http.StatusBadRequest, CodeValidation},
		{"missing file", ErrMissingFile, http.StatusBadRequest, CodeMissingFile},
		{"not found", fmt.Errorf("%w: abc", ErrRecordNotFound), http.StatusNotFound, CodeNotFound},
		{"decode", fmt.Errorf("%w: zip: not a valid zip file", ErrDecode), http.StatusUnprocessableEntity, CodeDecode},
		{"store", fmt.Errorf("%w: disk full", ErrStore), http.StatusInternalServerError, CodeStore},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, CodeStore},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Classify(tt.err)
			if status != tt.status || code != tt.code {
				t.Errorf("Classify() = (%d, %s), want (%d, %s)", status, code, tt.status, tt.code)
			}
			if ErrorForCode(code) == nil {
				t.Errorf("ErrorForCode(%s) should resolve", code)
			}
		})
	}

	if ErrorForCode("bogus") != nil {
		t.Error("unknown codes should not resolve")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("GenerateID() = %q is not a uuid: %v", id, err)
	}
	if GenerateID() == id {
		t.Error("GenerateID() should not repeat")
	}
}

func TestNewFileLogger(t *testing.T) {
	t.Run("Appends To File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "tui.log")

		logger, closer, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("loaded records", "count", 3)
		closer.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "loaded records") {
			t.Errorf("expected log line in file, got %q", data)
		}
	})

	t.Run("Unwritable Directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(blocker, nil, 0644); err != nil {
			t.Fatal(err)
		}

		if _, _, err := NewFileLogger(filepath.Join(blocker, "tui.log")); err == nil {
			t.Error("expected error when the parent is a file")
		}
	})
}

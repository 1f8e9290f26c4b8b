package models

import (
	"strings"
	"testing"
)

func TestRecordFields(t *testing.T) {
	t.Run("Validate Complete", func(t *testing.T) {
		f := RecordFields{Name: "Ada", Position: "Engineer", Level: "Senior"}
		if err := f.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Validate Missing", func(t *testing.T) {
		err := RecordFields{Name: "Ada"}.Validate()
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "position") || !strings.Contains(err.Error(), "level") {
			t.Errorf("expected both missing fields to be reported, got %v", err)
		}
		if strings.Contains(err.Error(), "name") {
			t.Errorf("name is present and should not be reported, got %v", err)
		}
	})

	t.Run("WithID And Fields", func(t *testing.T) {
		f := RecordFields{Name: "Ada", Position: "Engineer", Level: "Senior"}
		r := f.WithID("abc")
		if r.ID != "abc" || r.Fields() != f {
			t.Errorf("unexpected record %+v", r)
		}
	})
}

func TestBulkDeleteRequest(t *testing.T) {
	if err := (BulkDeleteRequest{}).Validate(); err == nil {
		t.Error("expected error when ids is absent")
	}
	if err := (BulkDeleteRequest{IDs: []string{}}).Validate(); err != nil {
		t.Errorf("empty ids list should be accepted, got %v", err)
	}
}

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		slug      string
		body      string
		wantError bool
	}{
		{"valid", "My Title", "my-title", "Body text", false},
		{"empty title", "", "slug", "body", true},
		{"whitespace title", "   ", "slug", "body", true},
		{"title too long", strings.Repeat("a", 301), "slug", "body", true},
		{"slug too long", "title", strings.Repeat("a", 301), "body", true},
		{"body too long", "title", "slug", strings.Repeat("a", 100_001), true},
		{"empty body allowed", "title", "slug", "", false},
		{"empty slug allowed", "title", "", "body", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateContent(tt.title, tt.slug, tt.body)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		wantError bool
	}{
		{"valid", "reader@example.com", false},
		{"valid with plus", "reader+blog@example.com", false},
		{"empty", "", true},
		{"no at sign", "reader.example.com", true},
		{"no domain", "reader@", true},
		{"display name form", "Reader <reader@example.com>", true},
		{"too long", strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateEmail(tt.email)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"public_enabld": true}`))
	rec := httptest.NewRecorder()

	var body sharePatchRequest
	if readJSON(rec, req, &body) {
		t.Fatal("readJSON accepted a body with a misspelled field")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSharePatchRequestToPatch(t *testing.T) {
	enabled := true
	when := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("expiry set", func(t *testing.T) {
		req := sharePatchRequest{PublicEnabled: &enabled, PublicExpiresAt: &when}
		patch := req.toPatch()
		if patch.PublicEnabled == nil || !*patch.PublicEnabled {
			t.Error("PublicEnabled not carried over")
		}
		want := sql.NullTime{Time: when, Valid: true}
		if patch.PublicExpiresAt == nil || *patch.PublicExpiresAt != want {
			t.Errorf("PublicExpiresAt = %v, want %v", patch.PublicExpiresAt, want)
		}
	})

	t.Run("clear expiry wins", func(t *testing.T) {
		req := sharePatchRequest{PublicExpiresAt: &when, ClearExpiry: true}
		patch := req.toPatch()
		if patch.PublicExpiresAt == nil || patch.PublicExpiresAt.Valid {
			t.Errorf("PublicExpiresAt = %v, want cleared", patch.PublicExpiresAt)
		}
	})

	t.Run("absent fields untouched", func(t *testing.T) {
		patch := (&sharePatchRequest{}).toPatch()
		if patch.PublicEnabled != nil || patch.PublicExpiresAt != nil || patch.IncludeSubcategories != nil {
			t.Errorf("empty request produced a non-empty patch: %+v", patch)
		}
	})
}

func TestMarshalProperties(t *testing.T) {
	got, err := marshalProperties(nil)
	if err != nil {
		t.Fatalf("marshalProperties(nil): %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("nil properties = %s, want {}", got)
	}

	got, err = marshalProperties(map[string]any{"rating": 5})
	if err != nil {
		t.Fatalf("marshalProperties: %v", err)
	}
	if string(got) != `{"rating":5}` {
		t.Errorf("properties = %s", got)
	}
}

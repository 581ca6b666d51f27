package pawdialog

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeFileOpenRequest(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    WindowHandle
		wantErr string
	}{
		{"Valid handle", `{"parentWindow":42}`, 42, ""},
		{"Zero handle", `{"parentWindow":0}`, 0, ""},
		{"Negative handle", `{"parentWindow":-3}`, -3, ""},
		{"Extra fields ignored", `{"parentWindow":5,"title":"x"}`, 5, ""},
		{"Surrounding whitespace", "  {\"parentWindow\":9}\n", 9, ""},
		{"Empty", ``, 0, "missing arguments"},
		{"Null", `null`, 0, "missing arguments"},
		{"Not an object", `42`, 0, "invalid arguments"},
		{"Missing key", `{}`, 0, "missing parentWindow"},
		{"Upper-case key", `{"PARENTWINDOW":3}`, 0, "missing parentWindow"},
		{"Title-case key", `{"ParentWindow":3}`, 0, "missing parentWindow"},
		{"Null value", `{"parentWindow":null}`, 0, "missing parentWindow"},
		{"String value", `{"parentWindow":"1"}`, 0, "invalid parentWindow"},
		{"Float value", `{"parentWindow":2.5}`, 0, "invalid parentWindow"},
		{"Truncated", `{"parentWindow":`, 0, "invalid arguments"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := DecodeFileOpenRequest(json.RawMessage(tc.args))
			if tc.wantErr != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q, got nil", tc.wantErr)
				}
				if !strings.Contains(err.Error(), tc.wantErr) {
					t.Errorf("Expected error containing %q, got %q", tc.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if req.ParentWindow != tc.want {
				t.Errorf("Expected handle %d, got %d", tc.want, req.ParentWindow)
			}
		})
	}
}

func TestEncodeFileOpenRequest(t *testing.T) {
	data := EncodeFileOpenRequest(FileOpenRequest{ParentWindow: 12})
	if string(data) != `{"parentWindow":12}` {
		t.Errorf("Expected {\"parentWindow\":12}, got %s", data)
	}

	req, err := DecodeFileOpenRequest(data)
	if err != nil || req.ParentWindow != 12 {
		t.Errorf("Expected handle 12, got %d (%v)", req.ParentWindow, err)
	}
}

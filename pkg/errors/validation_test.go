package errors

import (
	"strings"
	"testing"
)

func TestValidateEntityID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "func:main", false},
		{"with path", "pkg/server.go:Handler", false},
		{"empty", "", true},
		{"control character", "func\x01main", true},
		{"null byte", "func\x00main", true},
		{"too long", strings.Repeat("a", 257), true},
		{"max length", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntityID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntityID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGraph) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidGraph)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple file", "main.go", false},
		{"nested path", "internal/server/handler.go", false},
		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secrets", true},
		{"embedded traversal", "a/../../b", true},
		{"backslash", "windows\\path", true},
		{"null byte", "file\x00.go", true},
		{"too long", strings.Repeat("a/", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"json", "dot", "svg"}

	if err := ValidateFormat("json", supported); err != nil {
		t.Errorf("ValidateFormat(json) = %v, want nil", err)
	}
	if err := ValidateFormat("png", supported); err == nil {
		t.Error("ValidateFormat(png) = nil, want error")
	} else if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
	}
	if err := ValidateFormat("", supported); err == nil {
		t.Error("ValidateFormat(empty) = nil, want error")
	}
}

package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "breach with ID", path: "/databreaches/123", expected: "/databreaches/:id"},
		{name: "breach with ID and trailing slash", path: "/databreaches/123/", expected: "/databreaches/:id"},
		{name: "breach with malformed ID", path: "/databreaches/abc/", expected: "/databreaches/:id"},
		{name: "breach with query", path: "/databreaches/7?x=1", expected: "/databreaches/:id"},
		{name: "collection", path: "/databreaches/", expected: "/databreaches"},
		{name: "collection without slash", path: "/databreaches", expected: "/databreaches"},
		{name: "nested path is left alone", path: "/databreaches/1/sources", expected: "/databreaches/1/sources"},
		{name: "swagger assets", path: "/swagger/index.html", expected: "/swagger/*"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "metrics", path: "/metrics", expected: "/metrics"},
		{name: "token", path: "/auth/token", expected: "/auth/token"},
		{name: "root", path: "/", expected: "/"},
		{name: "empty", path: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

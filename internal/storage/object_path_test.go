package storage

import (
	"strings"
	"testing"
)

func TestBuildObjectPath(t *testing.T) {
	path := buildObjectPath("Product Images", "My Photo", ".PNG")
	if !strings.HasPrefix(path, "productimages/") {
		t.Fatalf("expected sanitised category prefix, got %s", path)
	}
	if !strings.HasSuffix(path, "my-photo.png") {
		t.Fatalf("expected sanitised file name, got %s", path)
	}

	// 缺省扩展名回退到 bin
	path = buildObjectPath("misc", "file", "")
	if !strings.HasSuffix(path, ".bin") {
		t.Fatalf("expected .bin fallback, got %s", path)
	}
}

func TestJoinPrefix(t *testing.T) {
	if got := joinPrefix("/uploads/", "/a/b.png"); got != "uploads/a/b.png" {
		t.Fatalf("unexpected joined path: %s", got)
	}
	if got := joinPrefix("", "/a/b.png"); got != "a/b.png" {
		t.Fatalf("unexpected joined path without prefix: %s", got)
	}
}

func TestKeyFromURLPath(t *testing.T) {
	cases := []struct {
		name   string
		rawURL string
		bucket string
		want   string
	}{
		{"bare key passthrough", "images/2026/01/02/a.png", "", "images/2026/01/02/a.png"},
		{"virtual hosted", "https://bucket.s3.amazonaws.com/images/a.png", "bucket", "images/a.png"},
		{"path style strips bucket", "https://s3.example.com/bucket/images/a.png", "bucket", "images/a.png"},
		{"no bucket given", "https://cdn.example.com/images/a.png", "", "images/a.png"},
		{"empty input", "   ", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keyFromURLPath(tc.rawURL, tc.bucket); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	if ct := detectContentType("png"); ct != "image/png" {
		t.Fatalf("expected image/png, got %s", ct)
	}
	if ct := detectContentType("unknown-ext"); ct != "application/octet-stream" {
		t.Fatalf("expected octet-stream fallback, got %s", ct)
	}
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorageLifecycle(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("unexpected error creating local storage: %v", err)
	}

	ctx := context.Background()
	key, err := store.Save(ctx, []byte("payload"), SaveOptions{Category: "products", Extension: "png"})
	if err != nil {
		t.Fatalf("unexpected error saving file: %v", err)
	}
	if !strings.HasPrefix(key, "products/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key shape: %s", key)
	}

	url, err := store.SignedURL(ctx, key, 0)
	if err != nil {
		t.Fatalf("unexpected error building url: %v", err)
	}
	if url != "/files/"+key {
		t.Fatalf("unexpected url: %s", url)
	}

	if got := store.ExtractKey(url); got != key {
		t.Fatalf("expected round-tripped key %s, got %s", key, got)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("unexpected error deleting file: %v", err)
	}
	// 重复删除不报错
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("expected deleting a missing file to succeed, got %v", err)
	}
}

func TestLocalStorageSaveOptions(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("unexpected error creating local storage: %v", err)
	}

	ctx := context.Background()
	key, err := store.Save(ctx, []byte("first"), SaveOptions{Category: "reports", BaseName: "Quarterly Report", Extension: "csv"})
	if err != nil {
		t.Fatalf("unexpected error saving file: %v", err)
	}
	if !strings.HasSuffix(key, "/quarterly-report.csv") {
		t.Fatalf("expected sanitised base name in key, got %s", key)
	}

	// SkipIfExists 命中已有文件时保留原内容
	again, err := store.Save(ctx, []byte("second"), SaveOptions{Category: "reports", BaseName: "Quarterly Report", Extension: "csv", SkipIfExists: true})
	if err != nil {
		t.Fatalf("unexpected error re-saving file: %v", err)
	}
	if again != key {
		t.Fatalf("expected stable key, got %s and %s", key, again)
	}
	content, err := os.ReadFile(filepath.Join(store.LocalBaseDir(), filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("unexpected error reading file: %v", err)
	}
	if string(content) != "first" {
		t.Fatalf("expected original content preserved, got %q", content)
	}
}

func TestLocalStorageRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("unexpected error creating local storage: %v", err)
	}
	if _, err := store.Save(context.Background(), nil, SaveOptions{Category: "misc"}); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

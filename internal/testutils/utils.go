package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gi8lino/jiraview/internal/jira"
)

// MustWriteFile writes data to a file or fails the test, creating parent directories if needed.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %q: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file %q: %v", path, err)
	}
}

// MockSearcher is a jira.Searcher backed by a function.
type MockSearcher struct {
	SearchFn func(ctx context.Context, domain string, auth jira.AuthFunc, req jira.SearchRequest) (*jira.Response, error)
}

// Search calls SearchFn.
func (m *MockSearcher) Search(ctx context.Context, domain string, auth jira.AuthFunc, req jira.SearchRequest) (*jira.Response, error) {
	return m.SearchFn(ctx, domain, auth, req)
}

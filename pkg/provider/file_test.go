package provider

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadQuotes verifies fortune-style parsing: "%" separator lines,
// multi-line quotes, trimming and empty-section handling.
func TestLoadQuotes(t *testing.T) {
	content := "First quote.\n" +
		"%\n" +
		"Second quote,\nspanning two lines.\n" +
		"%\n" +
		"%\n" +
		"  Third quote with padding.  \n"

	quotes, err := LoadQuotes(writeQuoteFile(t, content))
	if err != nil {
		t.Fatalf("LoadQuotes failed: %v", err)
	}

	want := []string{
		"First quote.",
		"Second quote,\nspanning two lines.",
		"Third quote with padding.",
	}
	if len(quotes) != len(want) {
		t.Fatalf("Loaded %d quotes, want %d: %q", len(quotes), len(want), quotes)
	}
	for i := range want {
		if quotes[i] != want[i] {
			t.Errorf("Quote %d = %q, want %q", i, quotes[i], want[i])
		}
	}
}

// TestLoadQuotesWithoutTrailingSeparator verifies the last quote does not
// need a closing "%" line.
func TestLoadQuotesWithoutTrailingSeparator(t *testing.T) {
	quotes, err := LoadQuotes(writeQuoteFile(t, "only quote"))
	if err != nil {
		t.Fatalf("LoadQuotes failed: %v", err)
	}
	if len(quotes) != 1 || quotes[0] != "only quote" {
		t.Errorf("Loaded %q, want single %q", quotes, "only quote")
	}
}

// TestLoadQuotesEmptyFile verifies files without any quote are rejected.
func TestLoadQuotesEmptyFile(t *testing.T) {
	if _, err := LoadQuotes(writeQuoteFile(t, "%\n%\n")); err == nil {
		t.Error("LoadQuotes should reject a file without quotes")
	}
}

// TestLoadQuotesMissingFile verifies a missing file surfaces as an error.
func TestLoadQuotesMissingFile(t *testing.T) {
	if _, err := LoadQuotes(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("LoadQuotes should fail for a missing file")
	}
}

func writeQuoteFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quotes.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write quote file: %v", err)
	}
	return path
}

package report

import (
	"path/filepath"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria Silva", "Maria_Silva"},
		{"José da Costa", "José_da_Costa"},
		{"a/b", "a-b"},
		{`a\b`, "a-b"},
		{"semespaco", "semespaco"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArtifactFilename(t *testing.T) {
	got := ArtifactFilename(3, "Maria Silva")
	if got != "Relatorio_3_Maria_Silva.pdf" {
		t.Fatalf("unexpected filename: %q", got)
	}
}

func TestArtifactPath(t *testing.T) {
	got := ArtifactPath("reports", 7, "Ana")
	want := filepath.Join("reports", "Relatorio_7_Ana.pdf")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

package report

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeName makes a student name safe for use in an artifact filename.
// Spaces become underscores and path separator characters become hyphens.
func SanitizeName(name string) string {
	sanitized := strings.ReplaceAll(name, " ", "_")
	sanitized = strings.ReplaceAll(sanitized, "/", "-")
	sanitized = strings.ReplaceAll(sanitized, "\\", "-")
	return sanitized
}

// ArtifactFilename derives the deterministic report filename for a student
func ArtifactFilename(id int64, name string) string {
	return fmt.Sprintf("Relatorio_%d_%s.pdf", id, SanitizeName(name))
}

// ArtifactPath derives the full artifact path inside dir
func ArtifactPath(dir string, id int64, name string) string {
	return filepath.Join(dir, ArtifactFilename(id, name))
}

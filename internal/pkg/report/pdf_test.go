package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sispe-project/sispe/internal/app/models"
)

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	exporter, err := NewExporter(t.TempDir())
	if err != nil {
		t.Fatalf("NewExporter returned error: %v", err)
	}
	return exporter
}

func TestExporter_ExportWritesArtifact(t *testing.T) {
	exporter := newTestExporter(t)

	student := &models.Student{
		ID:       3,
		Name:     "Maria Silva",
		Room:     12,
		Grade:    5,
		Severity: models.SeverityMedium,
	}
	history := []*models.Observation{
		{ID: 2, StudentID: 3, Timestamp: "02/03/2026 10:15:00", Note: "Acompanhamento semanal"},
		{ID: 1, StudentID: 3, Timestamp: "23/02/2026 09:00:00", Note: strings.Repeat("nota longa ", 200)},
	}

	path, err := exporter.Export(student, history)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	if filepath.Base(path) != "Relatorio_3_Maria_Silva.pdf" {
		t.Fatalf("unexpected artifact name: %q", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("artifact is empty")
	}
}

func TestExporter_ExportEmptyHistoryFallsBackToLegacyField(t *testing.T) {
	exporter := newTestExporter(t)

	student := &models.Student{
		ID:           1,
		Name:         "Ana",
		Room:         1,
		Grade:        1,
		Severity:     models.SeverityLow,
		Observations: "registro antigo",
	}

	path, err := exporter.Export(student, nil)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
}

func TestExporter_RemoveIsIdempotent(t *testing.T) {
	exporter := newTestExporter(t)

	student := &models.Student{ID: 9, Name: "Luca", Room: 2, Grade: 3, Severity: models.SeverityHigh}
	path, err := exporter.Export(student, nil)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	if err := exporter.Remove(9, "Luca"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("artifact still present after Remove")
	}

	// Removing a missing artifact is not an error
	if err := exporter.Remove(9, "Luca"); err != nil {
		t.Fatalf("second Remove returned error: %v", err)
	}
}

package report

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
	"github.com/sispe-project/sispe/internal/pkg/logger"
)

// Page layout constants, in millimeters on A4
const (
	marginLeft   = 15.0
	marginTop    = 20.0
	marginRight  = 15.0
	marginBottom = 20.0
	lineHeight   = 6.0
)

// severityLabels are the display names on the printed report
var severityLabels = map[models.Severity]string{
	models.SeverityLow:    "Baixo",
	models.SeverityMedium: "Médio",
	models.SeverityHigh:   "Alto",
}

// Exporter renders student reports into a destination directory
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter, ensuring the destination directory exists
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create reports directory")
		return nil, fmt.Errorf("failed to create reports directory %s: %w", dir, err)
	}
	return &Exporter{dir: dir}, nil
}

// Dir returns the destination directory
func (e *Exporter) Dir() string {
	return e.dir
}

// Path derives the deterministic artifact path for a student
func (e *Exporter) Path(id int64, name string) string {
	return ArtifactPath(e.dir, id, name)
}

// Export renders one report document for the student and its observation
// history, newest entry first, and writes it at the deterministic path.
// An existing artifact at that path is overwritten in full.
func (e *Exporter) Export(student *models.Student, history []*models.Observation) (string, error) {
	if student == nil {
		return "", apperrors.NewInvalidArgumentError("student is required for export")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	printable := pageWidth - marginLeft - marginRight
	breakAt := pageHeight - marginBottom - lineHeight

	// Fixed header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("SISPE — Relatório do Aluno"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	severity := severityLabels[student.Severity]
	if severity == "" {
		severity = string(student.Severity)
	}

	// Field lines
	pdf.SetFont("Helvetica", "", 12)
	fields := []string{
		fmt.Sprintf("ID: %d", student.ID),
		fmt.Sprintf("Nome: %s", student.Name),
		fmt.Sprintf("Sala: %d", student.Room),
		fmt.Sprintf("Série: %d", student.Grade),
		fmt.Sprintf("Gravidade: %s", severity),
	}
	for _, field := range fields {
		pdf.CellFormat(0, lineHeight, tr(field), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, lineHeight, tr("Observações"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	measure := func(s string) float64 {
		return pdf.GetStringWidth(tr(s))
	}

	writeLine := func(line string) {
		if pdf.GetY() > breakAt {
			pdf.AddPage()
			pdf.SetY(marginTop)
		}
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}

	if len(history) == 0 && student.Observations == "" {
		writeLine("Nenhuma observação registrada.")
	}

	// Newest-first history; each entry is its own timestamped block
	for _, entry := range history {
		writeLine(fmt.Sprintf("[%s]", entry.Timestamp))
		for _, line := range WrapText(entry.Note, printable, measure) {
			writeLine(line)
		}
		writeLine("")
	}

	// Legacy single-field observations survive until the first history
	// append clears them; keep them visible on the report until then.
	if len(history) == 0 && student.Observations != "" {
		for _, line := range WrapText(student.Observations, printable, measure) {
			writeLine(line)
		}
	}

	path := e.Path(student.ID, student.Name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write report artifact")
		return "", apperrors.NewCustomError(apperrors.ErrExportFailed, fmt.Sprintf("failed to write report: %v", err))
	}

	return path, nil
}

// Remove deletes the artifact for the given student identity, tolerating a
// missing file without error.
func (e *Exporter) Remove(id int64, name string) error {
	path := e.Path(id, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Error().Err(err).Str("path", path).Msg("Failed to remove report artifact")
		return fmt.Errorf("failed to remove report artifact: %w", err)
	}
	return nil
}

package infra

// pdf.go — Printable permiso form using go-pdf/fpdf.
// A half-letter form with solicitante/tipo/fechas, the motivo, and signature
// lines for solicitante and autorizador. Output goes to
// storagePath/permiso_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rriojas/TecRHPermisos-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarPermisoPDF renders a permiso into a printable form and returns the
// absolute path of the generated file. Associations (TipoPermiso,
// Solicitante) are expected preloaded; missing ones degrade to blanks.
func GenerarPermisoPDF(p *model.Permiso, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("permiso_%d.pdf", p.ID))

	// Half letter, landscape-ish form
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 216, Ht: 140},
	})
	pdf.SetMargins(12, 10, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Solicitud de Permiso", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Folio %d", p.ID), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	filaDato := func(etiqueta, valor string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(42, 6, etiqueta, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-42, 6, valor, "", 1, "L", false, 0, "")
	}

	solicitante := ""
	if p.Solicitante != nil {
		solicitante = p.Solicitante.Nombre
	}
	tipo := ""
	if p.TipoPermiso != nil {
		tipo = p.TipoPermiso.Nombre
	}
	fechas := p.FechaInicio.Format("02/01/2006")
	if p.FechaFin != nil {
		fechas += " — " + p.FechaFin.Format("02/01/2006")
	}
	if p.TipoPermiso != nil && p.TipoPermiso.EsRetardo() {
		fechas = p.FechaInicio.Format("02/01/2006 15:04")
	}

	filaDato("Solicitante:", solicitante)
	filaDato("Tipo de permiso:", tipo)
	filaDato("Fechas:", fechas)
	if p.Dias != nil {
		filaDato("Días:", fmt.Sprintf("%d", *p.Dias))
	}
	goce := "Sin goce de sueldo"
	if p.ConGoce {
		goce = "Con goce de sueldo"
	}
	if p.Revisado {
		filaDato("Resolución:", goce)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Motivo:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 5, p.Motivo, "1", "L", false)
	pdf.Ln(10)

	// Signature lines
	mitad := contentW / 2
	y := pdf.GetY()
	pdf.Line(14, y, 14+mitad-10, y)
	pdf.Line(14+mitad+8, y, 14+contentW-10, y)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(mitad, 5, "Firma del solicitante", "", 0, "C", false, 0, "")
	pdf.CellFormat(mitad, 5, "Firma del autorizador", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

// Package reportcard renders the printable report card document from
// its aggregated description.
package reportcard

import (
	"fmt"
	"html"
	"strings"

	"github.com/englishclub/academy/internal/app/stats"
)

// notAvailable is the explicit marker for missing values. A missing
// score must never print as 0.
const notAvailable = "-"

// formatScore renders a score cell, using the explicit marker for
// absent values.
func formatScore(score *int) string {
	if score == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d%%", *score)
}

// formatReport renders a stage report body, falling back to a visible
// "no report" note.
func formatReport(content *string) string {
	if content == nil || strings.TrimSpace(*content) == "" {
		return `<em style="color:#999">Sin informe</em>`
	}
	return html.EscapeString(*content)
}

// RenderHTML produces the printable document: header with title and
// year badge, student info block, the two stage-report sections side by
// side, the grades table, summary boxes for yearly average, oral and
// final, an optional attendance block and a footer with the generation
// date.
func RenderHTML(card stats.ReportCard) []byte {
	attendanceHTML := ""
	if card.Attendance != nil {
		a := card.Attendance
		attendanceHTML = fmt.Sprintf(`
		<div class="attendance-section">
			<p class="section-label">Asistencia:</p>
			<table class="attendance-table">
				<tr>
					<td>Total de clases: <strong>%d</strong></td>
					<td>Presentes: <strong>%d</strong></td>
					<td>Ausentes: <strong>%d</strong></td>
					<td>Tardanzas: <strong>%d</strong></td>
					<td>Justificadas: <strong>%d</strong></td>
					<td>Asistencia: <strong>%d%%</strong></td>
				</tr>
			</table>
		</div>`,
			a.Total, a.Present, a.Absent, a.Late, a.Excused, a.Percentage)
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Report Card - %s</title>
<style>
	@page { size: landscape; margin: 15mm; }
	* { margin: 0; padding: 0; box-sizing: border-box; }
	body { font-family: 'Segoe UI', Arial, sans-serif; color: #1a1a1a; padding: 30px; background: white; }
	.page { max-width: 1100px; margin: 0 auto; }
	.header { display: flex; justify-content: space-between; align-items: center; padding-bottom: 20px; border-bottom: 3px solid #1D3557; margin-bottom: 25px; }
	.title { font-size: 32px; font-weight: 800; letter-spacing: 4px; color: #1D3557; }
	.year-badge { display: inline-block; background: #E63946; color: white; padding: 4px 16px; border-radius: 4px; font-size: 16px; font-weight: 600; margin-top: 6px; }
	.student-info { display: grid; grid-template-columns: 1fr 1fr 1fr; gap: 8px 30px; margin-bottom: 25px; padding: 15px 20px; background: #f8f9fa; border-radius: 8px; }
	.info-item { font-size: 13px; }
	.info-label { color: #666; }
	.info-value { font-weight: 600; }
	.content-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 25px; margin-bottom: 20px; }
	.section { border: 1px solid #dee2e6; border-radius: 8px; overflow: hidden; }
	.section-header { background: #1D3557; color: white; padding: 8px 15px; font-size: 13px; font-weight: 600; letter-spacing: 1px; }
	.section-body { padding: 15px; font-size: 13px; line-height: 1.6; min-height: 80px; }
	.section-label { font-size: 13px; font-weight: 600; color: #1D3557; margin-bottom: 10px; }
	.grades-table { width: 100%%; border-collapse: collapse; }
	.grades-table td { padding: 8px 12px; border: 1px solid #dee2e6; font-size: 13px; }
	.grades-table td:nth-child(even) { text-align: right; font-weight: 600; }
	.summary-row { display: flex; gap: 20px; margin-top: 12px; }
	.summary-box { flex: 1; padding: 10px 15px; border-radius: 6px; text-align: center; color: white; }
	.summary-box.avg { background: #1D3557; }
	.summary-box.oral { background: #457B9D; }
	.summary-box.final { background: #E63946; }
	.summary-label { font-size: 11px; opacity: 0.9; }
	.summary-value { font-size: 22px; font-weight: 700; }
	.attendance-section { margin-top: 20px; }
	.attendance-table { width: 100%%; border-collapse: collapse; }
	.attendance-table td { padding: 8px 12px; border: 1px solid #dee2e6; font-size: 12px; text-align: center; }
	.footer { margin-top: 30px; padding-top: 15px; border-top: 1px solid #dee2e6; display: flex; justify-content: space-between; font-size: 11px; color: #999; }
</style>
</head>
<body>
<div class="page">
	<div class="header">
		<div>
			<div class="title">REPORT CARD</div>
			<div class="year-badge">%d</div>
		</div>
	</div>

	<div class="student-info">
		<div class="info-item"><span class="info-label">Alumno/a: </span><span class="info-value">%s</span></div>
		<div class="info-item"><span class="info-label">Nivel: </span><span class="info-value">%s</span></div>
		<div class="info-item"><span class="info-label">Docente: </span><span class="info-value">%s</span></div>
	</div>

	<div class="content-grid">
		<div class="section">
			<div class="section-header">INFORME ETAPA 1</div>
			<div class="section-body">%s</div>
		</div>
		<div class="section">
			<div class="section-header">INFORME ETAPA 2</div>
			<div class="section-body">%s</div>
		</div>
	</div>

	<div class="grades-section">
		<p class="section-label">Calificaciones:</p>
		<table class="grades-table">
			<tr><td>Primer examen</td><td>%s</td><td>Tercer examen</td><td>%s</td></tr>
			<tr><td>Segundo examen</td><td>%s</td><td>Cuarto examen</td><td>%s</td></tr>
		</table>

		<div class="summary-row">
			<div class="summary-box avg"><div class="summary-label">Promedio Anual</div><div class="summary-value">%s</div></div>
			<div class="summary-box oral"><div class="summary-label">Oral / Proyecto</div><div class="summary-value">%s</div></div>
			<div class="summary-box final"><div class="summary-label">Examen Final</div><div class="summary-value">%s</div></div>
		</div>
	</div>
	%s

	<div class="footer">
		<span>The English Club - Report Card %d</span>
		<span>Generado: %s</span>
	</div>
</div>
</body>
</html>`,
		html.EscapeString(card.StudentName),
		card.Year,
		html.EscapeString(card.StudentName),
		html.EscapeString(card.Level),
		html.EscapeString(card.Teacher),
		formatReport(card.Stage1Report),
		formatReport(card.Stage2Report),
		formatScore(card.Exam1),
		formatScore(card.Exam3),
		formatScore(card.Exam2),
		formatScore(card.Exam4),
		formatScore(card.YearlyAverage),
		formatScore(card.Oral),
		formatScore(card.Final),
		attendanceHTML,
		card.Year,
		card.GeneratedAt.Format("02/01/2006"),
	)

	return []byte(body)
}

package reportcard

import (
	"strings"
	"testing"
	"time"

	"github.com/englishclub/academy/internal/app/stats"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func baseCard() stats.ReportCard {
	return stats.ReportCard{
		StudentName: "Ana García",
		Level:       "B2 Adults",
		Teacher:     "Laura",
		Year:        2026,
		GeneratedAt: time.Date(2026, 12, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderHTMLMissingValues(t *testing.T) {
	got := string(RenderHTML(baseCard()))

	// Absent scores must show the explicit marker, never a zero.
	if strings.Contains(got, ">0%<") {
		t.Error("missing scores must not render as 0")
	}
	if !strings.Contains(got, "Sin informe") {
		t.Error("missing stage reports must render a visible note")
	}
	if strings.Contains(got, "Asistencia:") {
		t.Error("attendance block must be omitted when absent")
	}
	if !strings.Contains(got, "2026") {
		t.Error("year badge missing")
	}
	if !strings.Contains(got, "15/12/2026") {
		t.Error("generation date missing from footer")
	}
}

func TestRenderHTMLFullCard(t *testing.T) {
	card := baseCard()
	card.Stage1Report = strPtr("Excellent participation.")
	card.Stage2Report = strPtr("Keeps improving.")
	card.Exam1 = intPtr(80)
	card.Exam2 = intPtr(85)
	card.Exam3 = intPtr(90)
	card.Exam4 = intPtr(95)
	card.Oral = intPtr(88)
	card.Final = intPtr(92)
	card.YearlyAverage = intPtr(87)
	card.Attendance = &stats.AttendanceBreakdown{
		Total: 20, Present: 18, Absent: 1, Late: 1, Percentage: 95,
	}

	got := string(RenderHTML(card))

	for _, want := range []string{
		"Ana García", "B2 Adults", "Laura",
		"Excellent participation.", "Keeps improving.",
		"80%", "85%", "90%", "95%", "88%", "92%", "87%",
		"INFORME ETAPA 1", "INFORME ETAPA 2",
		"Total de clases: <strong>20</strong>",
		"Asistencia: <strong>95%</strong>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered card missing %q", want)
		}
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	card := baseCard()
	card.Stage1Report = strPtr(`<script>alert("x")</script>`)

	got := string(RenderHTML(card))
	if strings.Contains(got, "<script>") {
		t.Error("report content must be HTML-escaped")
	}
}

package export

import (
	"strings"
	"testing"
)

func TestCSV(t *testing.T) {
	columns := []Column{
		{Field: "name", Label: "Alumno"},
		{Field: "amount", Label: "Importe"},
	}

	tests := []struct {
		name string
		rows []Row
		want string
	}{
		{
			name: "plain values",
			rows: []Row{{"name": "Ana García", "amount": "120.00"}},
			want: "Alumno,Importe\nAna García,120.00",
		},
		{
			name: "comma wraps in quotes",
			rows: []Row{{"name": "Doe, John", "amount": "80.00"}},
			want: "Alumno,Importe\n\"Doe, John\",80.00",
		},
		{
			name: "inner quotes doubled",
			rows: []Row{{"name": `Ana "Anita" García`, "amount": "80.00"}},
			want: "Alumno,Importe\n\"Ana \"\"Anita\"\" García\",80.00",
		},
		{
			name: "newline wraps in quotes",
			rows: []Row{{"name": "line1\nline2", "amount": "1"}},
			want: "Alumno,Importe\n\"line1\nline2\",1",
		},
		{
			name: "missing field is empty cell",
			rows: []Row{{"name": "Ana"}},
			want: "Alumno,Importe\nAna,",
		},
		{
			name: "no rows still emits header",
			rows: nil,
			want: "Alumno,Importe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(CSV(tt.rows, columns))
			if !strings.HasPrefix(got, utf8BOM) {
				t.Fatal("output must start with the UTF-8 BOM")
			}
			if body := strings.TrimPrefix(got, utf8BOM); body != tt.want {
				t.Errorf("CSV() = %q, want %q", body, tt.want)
			}
		})
	}
}

func TestCSVColumnOrderPreserved(t *testing.T) {
	columns := []Column{
		{Field: "c", Label: "C"},
		{Field: "a", Label: "A"},
		{Field: "b", Label: "B"},
	}
	rows := []Row{{"a": "1", "b": "2", "c": "3"}}

	got := strings.TrimPrefix(string(CSV(rows, columns)), utf8BOM)
	want := "C,A,B\n3,1,2"
	if got != want {
		t.Errorf("CSV() = %q, want %q", got, want)
	}
}

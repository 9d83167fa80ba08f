package auth

import (
	"testing"

	"github.com/englishclub/academy/internal/app/models"
)

func TestNavigationFor(t *testing.T) {
	tests := []struct {
		role models.RoleType
		want []Section
	}{
		{
			role: models.RoleAdmin,
			want: []Section{
				SectionDashboard, SectionCourses, SectionStudents, SectionAttendance,
				SectionGrades, SectionReports, SectionCommunications, SectionPayments,
			},
		},
		{
			role: models.RoleSecretary,
			want: []Section{
				SectionDashboard, SectionCourses, SectionStudents, SectionAttendance,
				SectionGrades, SectionReports, SectionCommunications, SectionPayments,
			},
		},
		{
			role: models.RoleTeacher,
			want: []Section{SectionDashboard, SectionAttendance, SectionGrades, SectionReports},
		},
		{
			role: models.RoleParent,
			want: []Section{SectionDashboard},
		},
		{
			role: "OWNER",
			want: []Section{},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := NavigationFor(tt.role)
			if len(got) != len(tt.want) {
				t.Fatalf("NavigationFor(%s) = %v, want %v", tt.role, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("section %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCanManage(t *testing.T) {
	tests := []struct {
		role    models.RoleType
		section Section
		want    bool
	}{
		{models.RoleAdmin, SectionPayments, true},
		{models.RoleSecretary, SectionPayments, true},
		{models.RoleTeacher, SectionPayments, false},
		{models.RoleTeacher, SectionGrades, true},
		{models.RoleTeacher, SectionCourses, false},
		{models.RoleParent, SectionDashboard, true},
		{models.RoleParent, SectionStudents, false},
	}

	for _, tt := range tests {
		if got := CanManage(tt.role, tt.section); got != tt.want {
			t.Errorf("CanManage(%s, %s) = %v, want %v", tt.role, tt.section, got, tt.want)
		}
	}
}

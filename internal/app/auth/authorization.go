// Package auth holds the role-gating rules of the dashboard. The role
// is always an explicit parameter; nothing here reads session state.
package auth

import "github.com/englishclub/academy/internal/app/models"

// Section is one navigable area of the dashboard
type Section string

const (
	SectionDashboard      Section = "dashboard"
	SectionCourses        Section = "courses"
	SectionStudents       Section = "students"
	SectionAttendance     Section = "attendance"
	SectionGrades         Section = "grades"
	SectionReports        Section = "reports"
	SectionCommunications Section = "communications"
	SectionPayments       Section = "payments"
)

// sectionOrder fixes the menu order of the dashboard
var sectionOrder = []Section{
	SectionDashboard,
	SectionCourses,
	SectionStudents,
	SectionAttendance,
	SectionGrades,
	SectionReports,
	SectionCommunications,
	SectionPayments,
}

// sectionRoles maps each section to the roles allowed to see and
// manage it. The dashboard itself is open to every signed-in role.
var sectionRoles = map[Section][]models.RoleType{
	SectionDashboard:      {models.RoleAdmin, models.RoleSecretary, models.RoleTeacher, models.RoleParent},
	SectionCourses:        {models.RoleAdmin, models.RoleSecretary},
	SectionStudents:       {models.RoleAdmin, models.RoleSecretary},
	SectionAttendance:     {models.RoleAdmin, models.RoleSecretary, models.RoleTeacher},
	SectionGrades:         {models.RoleAdmin, models.RoleSecretary, models.RoleTeacher},
	SectionReports:        {models.RoleAdmin, models.RoleSecretary, models.RoleTeacher},
	SectionCommunications: {models.RoleAdmin, models.RoleSecretary},
	SectionPayments:       {models.RoleAdmin, models.RoleSecretary},
}

// NavigationFor returns the dashboard sections visible to role, in
// menu order. Unknown roles see nothing.
func NavigationFor(role models.RoleType) []Section {
	visible := []Section{}
	for _, section := range sectionOrder {
		if CanManage(role, section) {
			visible = append(visible, section)
		}
	}
	return visible
}

// CanManage reports whether role may operate on section
func CanManage(role models.RoleType, section Section) bool {
	for _, allowed := range sectionRoles[section] {
		if allowed == role {
			return true
		}
	}
	return false
}

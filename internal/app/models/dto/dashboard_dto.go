package dto

import "github.com/englishclub/academy/internal/app/stats"

// DashboardResponse aggregates the landing-page counters
type DashboardResponse struct {
	TotalStudents    int                     `json:"totalStudents"`
	ActiveStudents   int                     `json:"activeStudents"`
	TotalCourses     int                     `json:"totalCourses"`
	PendingPayments  int                     `json:"pendingPayments"`
	OverduePayments  int                     `json:"overduePayments"`
	CollectedAmount  float64                 `json:"collectedAmount"`
	OutstandingTotal float64                 `json:"outstandingTotal"`
	Occupancy        []stats.CourseOccupancy `json:"occupancy"`
}

// NavigationResponse lists the dashboard sections visible to a role
type NavigationResponse struct {
	Role     string   `json:"role"`
	Sections []string `json:"sections"`
}

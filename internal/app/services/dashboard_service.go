package services

import (
	"context"
	"fmt"

	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/app/stats"
)

// StudentCounter exposes the roster counters the dashboard needs
type StudentCounter interface {
	CountByStatus(ctx context.Context) (total int, active int, err error)
}

// PaymentTotaler exposes the payment counters the dashboard needs
type PaymentTotaler interface {
	GetTotals(ctx context.Context) (*repositories.PaymentTotals, error)
}

// DashboardSummary aggregates the landing-page counters
type DashboardSummary struct {
	TotalStudents    int
	ActiveStudents   int
	TotalCourses     int
	PendingPayments  int
	OverduePayments  int
	CollectedAmount  float64
	OutstandingTotal float64
	Occupancy        []stats.CourseOccupancy
}

// DashboardService assembles the landing-page summary
type DashboardService interface {
	GetSummary(ctx context.Context) (*DashboardSummary, error)
}

type dashboardServiceImpl struct {
	students StudentCounter
	payments PaymentTotaler
	courses  CourseService
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(students StudentCounter, payments PaymentTotaler, courses CourseService) DashboardService {
	return &dashboardServiceImpl{
		students: students,
		payments: payments,
		courses:  courses,
	}
}

func (s *dashboardServiceImpl) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	total, active, err := s.students.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	totals, err := s.payments.GetTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute payment totals: %w", err)
	}

	occupancy, err := s.courses.GetOccupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute occupancy: %w", err)
	}

	return &DashboardSummary{
		TotalStudents:    total,
		ActiveStudents:   active,
		TotalCourses:     len(occupancy),
		PendingPayments:  totals.PendingCount,
		OverduePayments:  totals.OverdueCount,
		CollectedAmount:  totals.CollectedAmount,
		OutstandingTotal: totals.OutstandingTotal,
		Occupancy:        occupancy,
	}, nil
}

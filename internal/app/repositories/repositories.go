package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // 23505 is unique_violation
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	CourseRepository         *CourseRepository
	StudentRepository        *StudentRepository
	AttendanceRepository     *AttendanceRepository
	GradeRepository          *GradeRepository
	ReportRepository         *ReportRepository
	PaymentRepository        *PaymentRepository
	PaymentConceptRepository *PaymentConceptRepository
	CommunicationRepository  *CommunicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		CourseRepository:         NewCourseRepository(db),
		StudentRepository:        NewStudentRepository(db),
		AttendanceRepository:     NewAttendanceRepository(db),
		GradeRepository:          NewGradeRepository(db),
		ReportRepository:         NewReportRepository(db),
		PaymentRepository:        NewPaymentRepository(db),
		PaymentConceptRepository: NewPaymentConceptRepository(db),
		CommunicationRepository:  NewCommunicationRepository(db),
	}
}

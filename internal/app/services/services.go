package services

// Services defined in this package:
// - AuthService: Handles sign-in and profile registration
// - CourseService: Handles course groups and their occupancy
// - StudentService: Handles the roster and per-student standing
// - AttendanceService: Handles daily marks, one record per student per date
// - GradeService: Handles exam scores, one record per exam slot
// - ReportService: Handles stage reports and report card assembly
// - PaymentService: Handles monthly charges and charge templates
// - CommunicationService: Handles broadcasts and the email fan-out
// - DashboardService: Aggregates the landing-page counters

package integration_test

const (
	TestStudentPassword = "Test123!@#"

	TestCourseTitle = "Distributed Systems"
	TestCourseSeats = 3
)

package domain

type DeliveryCompany struct {
	ID   int64
	Name string
}

type AssignmentOutcome string

const (
	Assigned        AssignmentOutcome = "assigned"
	AlreadyAssigned AssignmentOutcome = "already_assigned"
	NotFound        AssignmentOutcome = "not_found"
)

type AssignmentResult struct {
	Outcome AssignmentOutcome
	Company DeliveryCompany
}

package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusNoShow    Status = "No-show"
)

// KnownStatuses feeds the status picker on the appointment form. Stored
// values are free text and are not restricted to this list.
var KnownStatuses = []Status{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

func InitialStatus() Status {
	return StatusScheduled
}

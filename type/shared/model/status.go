package model

// Certificate lifecycle states.
const (
	CertStatusGenerated = "generated"
	CertStatusSent      = "sent"
	CertStatusFailed    = "failed"
)

// Email delivery states.
const (
	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
)

// Attendance states.
const (
	AttendancePresent = "present"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

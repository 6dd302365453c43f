package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	DaysReceived  int      `json:"days_received"`
	DaysWritten   int64    `json:"days_written"`
	DaysRejected  int      `json:"days_rejected"`
	RejectedDates []string `json:"rejected_dates,omitempty"`

	Message string `json:"message,omitempty"`
}

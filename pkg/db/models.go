package db

// Run represents one completed roster generation
type Run struct {
	ID    string
	Start string // Date format 2006-01-02
	End   string
	Seed  int64
}

// Assignment represents one role on one date within a run
type Assignment struct {
	ID     string
	RunID  string
	Date   string
	Role   string // "Cover" or "Late"
	Person string
}

// LeaveRecord represents one resolved leave interval within a run
type LeaveRecord struct {
	ID     string
	RunID  string
	Person string
	Start  string
	End    string
	Rank   string // "first", "second" or "assigned"
}

// SummaryRow represents one person's fairness summary for a run. The
// counter columns are re-ingested as the next run's prior counters.
type SummaryRow struct {
	ID             string
	RunID          string
	Person         string
	CoverCount     int
	LateCount      int
	FreeBlockCount int
	TotalHours     int
	LeaveChoice    string
}

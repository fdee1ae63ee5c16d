package model

// Incident is an entry in the incident log. Incidents are never edited
// after creation.
type Incident struct {
	ID          string `json:"id"`
	Category    string `json:"category"` // "Health" | "Fire"
	Severity    string `json:"severity"` // "low" | "medium" | "high", not enforced
	Location    string `json:"location"`
	Description string `json:"description"`
	ReportedOn  string `json:"reportedOn"`
	Status      string `json:"status"`
}

const (
	StatusLogged = "Logged"

	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

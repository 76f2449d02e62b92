package model

// DashboardStats is the per-user engagement summary.
type DashboardStats struct {
	EngagementScore int     `json:"engagement_score"`
	EventsAttended  int     `json:"events_attended"`
	MentorRequests  int     `json:"mentor_requests"`
	TotalDonations  float64 `json:"total_donations"`
}

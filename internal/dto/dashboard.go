package dto

// DashboardStats summarizes an account for the dashboard: its current balance
// and the number of transfers touching it during the current UTC day.
type DashboardStats struct {
	Balance                 string `json:"balance"`
	TransfersProcessedToday int64  `json:"transfers_processed_today"`
}

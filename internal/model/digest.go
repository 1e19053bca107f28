package model

// UserDigestResult records the outcome of one user's digest pipeline within
// a run. A failed user never aborts the run; the error is captured here.
type UserDigestResult struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	Sent   bool   `json:"sent"`
	Error  string `json:"error,omitempty"`
}

// DigestRunResult summarizes a whole digest run. A run with zero users is a
// failure; a run where some users were skipped or failed is still a success.
type DigestRunResult struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Users   []UserDigestResult `json:"users,omitempty"`
}

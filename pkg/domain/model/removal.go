package model

// RemovalMode selects which users a removal run targets
type RemovalMode string

const (
	RemovalModeTargeted RemovalMode = "targeted"
	RemovalModeAllUsers RemovalMode = "all-users"
)

// String returns the string representation
func (m RemovalMode) String() string {
	return string(m)
}

// RemovalResult aggregates the outcome of a removal run. Each email lands
// in exactly one bucket.
type RemovalResult struct {
	Mode     RemovalMode `json:"mode" yaml:"mode"`
	Removed  *EmailSet   `json:"removed" yaml:"removed"`
	Skipped  *EmailSet   `json:"skipped" yaml:"skipped"`
	NotFound *EmailSet   `json:"not_found" yaml:"not_found"`
	Errors   *ItemErrors `json:"errors" yaml:"errors"`
}

// NewRemovalResult creates an empty RemovalResult
func NewRemovalResult(mode RemovalMode) *RemovalResult {
	return &RemovalResult{
		Mode:     mode,
		Removed:  NewEmailSet(),
		Skipped:  NewEmailSet(),
		NotFound: NewEmailSet(),
		Errors:   NewItemErrors(),
	}
}

// HasErrors reports whether any removal failed
func (r *RemovalResult) HasErrors() bool {
	return r.Errors.Len() > 0
}

// Processed returns the number of emails that landed in any bucket
func (r *RemovalResult) Processed() int {
	return r.Removed.Len() + r.Skipped.Len() + r.NotFound.Len() + r.Errors.Len()
}

package constants

// JobStatus is the canonical status for an extraction job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued     JobStatus = "QUEUED"     // accepted, not started
	JobStatusRunning    JobStatus = "RUNNING"    // in progress
	JobStatusExtracted  JobStatus = "EXTRACTED"  // oracle returned a field map
	JobStatusNormalized JobStatus = "NORMALIZED" // values canonicalized, references resolved
	JobStatusScored     JobStatus = "SCORED"     // risk score attached, record final
	JobStatusFailed     JobStatus = "FAILED"     // terminal failure
)

// NoViolationSentinel is the exact string the oracle emits when it finds no
// compliance issue. Anything else in the violation field counts as a finding.
const NoViolationSentinel = "No violation of rules and compliance"

package models

// JobStatus is the state of an asynchronous backend job (order submission or
// report generation).
type JobStatus string

const (
	JobRunning   JobStatus = "RUNNING"
	JobSucceeded JobStatus = "SUCCEEDED"
	JobFailed    JobStatus = "FAILED"
	JobTimedOut  JobStatus = "TIMED_OUT"
	JobAborted   JobStatus = "ABORTED"
)

// IsTerminal reports whether the job has finished, successfully or not.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobSucceeded, JobFailed, JobTimedOut, JobAborted:
		return true
	}
	return false
}

// JobAccepted is the 202 response to a job submission.
type JobAccepted struct {
	ExecutionArn string `json:"executionArn"`
}

// JobState is one poll of a job status endpoint.
type JobState struct {
	Status JobStatus `json:"status"`
	Output string    `json:"output"`
}

// ReportURLs holds the two presigned report download links.
type ReportURLs struct {
	OrdersURL   string
	ProductsURL string
}

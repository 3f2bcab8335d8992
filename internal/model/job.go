package model

import (
	"errors"
	"fmt"
	"time"
)

// JobStatus is the state of one upload-and-extract operation.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// ErrInvalidTransition is returned when a job is moved along an edge the state machine does not have.
var ErrInvalidTransition = errors.New("invalid job transition")

var jobEdges = map[JobStatus][]JobStatus{
	JobPending: {JobRunning, JobFailed},
	JobRunning: {JobDone, JobFailed},
}

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobRunning, JobDone, JobFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s JobStatus) IsTerminal() bool {
	return s == JobDone || s == JobFailed
}

// Transition validates the move from -> to.
func Transition(from, to JobStatus) error {
	for _, next := range jobEdges[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Job tracks one upload-and-extract request. It is a status flag polled by
// the caller, not a scheduling primitive.
type Job struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number,omitempty"`
	Status        JobStatus  `json:"status"`
	Progress      float64    `json:"progress"`
	Error         string     `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// NewJob returns a pending job.
func NewJob(id string, now time.Time) *Job {
	return &Job{ID: id, Status: JobPending, CreatedAt: now}
}

// Advance moves the job to status to. errMsg is kept only for failures.
func (j *Job) Advance(to JobStatus, errMsg string, now time.Time) error {
	if err := Transition(j.Status, to); err != nil {
		return err
	}
	j.Status = to
	switch to {
	case JobRunning:
		j.StartedAt = &now
		j.Progress = 0.1
	case JobDone:
		j.FinishedAt = &now
		j.Progress = 1
	case JobFailed:
		j.FinishedAt = &now
		j.Error = errMsg
	}
	return nil
}

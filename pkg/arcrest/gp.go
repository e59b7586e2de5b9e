package arcrest

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"
)

// Default polling parameters for Job.WaitForResults.
const (
	DefaultPollInterval = 10 * time.Second
	DefaultMaxWait      = 100 * time.Second
)

// TaskNames returns the names of the tasks this geoprocessing service
// exposes.
func (s *GPService) TaskNames() []string {
	return s.Doc.Strings("tasks")
}

// Tasks fetches every task of the service, one round trip per task.
func (s *GPService) Tasks(ctx context.Context) ([]*Task, error) {
	var tasks []*Task
	for _, name := range s.TaskNames() {
		task, err := NewTask(ctx, s.client, Join(s.url, name))
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", name, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// TaskByName resolves a task by name; (nil, nil) when the service reports no
// such task.
func (s *GPService) TaskByName(ctx context.Context, name string) (*Task, error) {
	for _, ti := range s.TaskNames() {
		if ti == name {
			return NewTask(ctx, s.client, Join(s.url, name))
		}
	}
	return nil, nil
}

// TaskByIndex resolves the task at position i of the task list.
func (s *GPService) TaskByIndex(ctx context.Context, i int) (*Task, error) {
	names := s.TaskNames()
	if i < 0 || i >= len(names) {
		return nil, fmt.Errorf("task index %d of %d: %w", i, len(names), ErrNotFound)
	}
	return NewTask(ctx, s.client, Join(s.url, names[i]))
}

// Task is a handle to one named operation of a geoprocessing service,
// invocable synchronously with Execute or asynchronously with SubmitJob.
type Task struct {
	*Resource
}

// NewTask fetches url and returns a task handle.
func NewTask(ctx context.Context, client *Client, url string) (*Task, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &Task{Resource: res}, nil
}

// Execute runs the task synchronously, a single request/response with no
// polling, and returns the decoded result.
func (t *Task) Execute(ctx context.Context, params url.Values) (Document, error) {
	if params == nil {
		params = url.Values{}
	}
	return t.client.FetchDocument(ctx, Join(t.url, "execute"), params)
}

// SubmitJob submits the task asynchronously and returns a handle to the
// resulting job. It does not wait; use Job.WaitForResults or poll Job.Update
// yourself.
func (t *Task) SubmitJob(ctx context.Context, params url.Values) (*Job, error) {
	if params == nil {
		params = url.Values{}
	}
	info, err := t.client.FetchDocument(ctx, Join(t.url, "submitJob"), params)
	if err != nil {
		return nil, err
	}
	jobID := info.Str("jobId")
	if jobID == "" {
		return nil, fmt.Errorf("submitJob response from %s carries no jobId", t.url)
	}
	return NewJob(ctx, t.client, Join(t.url, "jobs", jobID))
}

// Job is a handle to an in-progress or completed asynchronous task
// invocation. Its status changes only through Update; the client never
// invents state transitions locally.
type Job struct {
	*Resource
}

// NewJob fetches url and returns a job handle.
func NewJob(ctx context.Context, client *Client, url string) (*Job, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &Job{Resource: res}, nil
}

// JobID returns the server-assigned job identifier.
func (j *Job) JobID() string {
	return j.Doc.Str("jobId")
}

// Status returns the job status as of the last fetch; one of the Job*
// constants, or whatever else the server reported.
func (j *Job) Status() string {
	return j.Doc.Str("jobStatus")
}

// Messages returns the job's status message log as of the last fetch.
func (j *Job) Messages() []Document {
	return j.Doc.Maps("messages")
}

func (j *Job) lastMessage() string {
	ms := j.Messages()
	if len(ms) == 0 {
		return ""
	}
	return ms[len(ms)-1].Str("description")
}

// Update re-fetches the job document, replacing the cached status, results,
// and messages.
func (j *Job) Update(ctx context.Context) error {
	return j.Refresh(ctx)
}

// Cancel issues the cancel operation and returns the raw decoded response
// without interpreting it into a state change; the next Update observes the
// effect.
func (j *Job) Cancel(ctx context.Context) (Document, error) {
	return j.client.FetchDocument(ctx, Join(j.url, "cancel"), nil)
}

func (j *Job) noResults() error {
	return fmt.Errorf("job %s:%s: %w", j.JobID(), j.Status(), ErrNoResults)
}

// ResultNames returns the names of the job's result descriptors. Calling this
// before the job has produced output is a usage error, not a transient
// condition, and fails with ErrNoResults carrying the job id and status.
func (j *Job) ResultNames() ([]string, error) {
	results := j.Doc.Map("results")
	if results == nil {
		return nil, j.noResults()
	}
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ResultByName fetches the named result of the job.
func (j *Job) ResultByName(ctx context.Context, name string) (*Result, error) {
	results := j.Doc.Map("results")
	if results == nil {
		return nil, j.noResults()
	}
	entry := results.Map(name)
	if entry == nil {
		return nil, fmt.Errorf("job %s:%s result %q: %w", j.JobID(), j.Status(), name, ErrNotFound)
	}
	return NewResult(ctx, j.client, Join(j.url, entry.Str("paramUrl")))
}

// Results fetches every result of the job, keyed by result name.
func (j *Job) Results(ctx context.Context) (map[string]*Result, error) {
	results := j.Doc.Map("results")
	if results == nil {
		return nil, j.noResults()
	}
	out := make(map[string]*Result, len(results))
	for name := range results {
		entry := results.Map(name)
		if entry == nil {
			continue
		}
		res, err := NewResult(ctx, j.client, Join(j.url, entry.Str("paramUrl")))
		if err != nil {
			return nil, fmt.Errorf("result %q: %w", name, err)
		}
		out[name] = res
	}
	return out, nil
}

// WaitOptions configures Job.WaitForResults. The interval and total budget
// are caller-controlled rather than server-driven, because "retry after"
// hints are not guaranteed across geoprocessing service versions; a fixed
// interval is the simplest contract a generic client can offer uniformly.
type WaitOptions struct {
	// MaxTime is the maximum total time to wait. Zero waits for no interval
	// at all but still performs one final poll.
	MaxTime time.Duration

	// Interval is the delay between polls; non-positive selects
	// DefaultPollInterval.
	Interval time.Duration

	// CancelLong issues a best-effort cancel if the job is still running when
	// MaxTime elapses. The cancel's own outcome does not alter the returned
	// state.
	CancelLong bool

	// Progress, if non-nil, is invoked after each poll with the elapsed wait,
	// the observed status, and the job's latest status message. It is also
	// the channel through which unrecognized status strings are surfaced.
	Progress func(elapsed time.Duration, status, message string)
}

// DefaultWaitOptions returns the wait defaults: 100s budget, 10s interval,
// cancel on overrun.
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{MaxTime: DefaultMaxWait, Interval: DefaultPollInterval, CancelLong: true}
}

// WaitForResults polls the job until it reaches a terminal status or the
// MaxTime budget is spent, then returns the results descriptor map from the
// final fetched document (nil unless the job succeeded with output).
//
// A job already terminal when WaitForResults is invoked fails with
// ErrJobConsumed: re-waiting would silently report the stale outcome as
// "finished instantly". Network or decode failures during polling propagate
// immediately; only the final CancelLong cancel deliberately ignores its own
// failure, since cancellation is advisory cleanup rather than a correctness
// requirement of the wait.
func (j *Job) WaitForResults(ctx context.Context, opts WaitOptions) (Document, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}

	if TerminalJobStatus(j.Status()) {
		return nil, fmt.Errorf("job %s:%s: %w", j.JobID(), j.Status(), ErrJobConsumed)
	}

	// The loop assumes a just-submitted job regardless of the cached status,
	// so at least one full interval elapses before the first poll.
	status := JobSubmitted
	var elapsed time.Duration

	for !TerminalJobStatus(status) && elapsed < opts.MaxTime {
		elapsed += opts.Interval
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Interval):
		}
		if err := j.Update(ctx); err != nil {
			return nil, err
		}
		status = j.Status()
		if opts.Progress != nil {
			msg := j.lastMessage()
			if !KnownJobStatus(status) {
				msg = fmt.Sprintf("unrecognized job status %q", status)
			}
			opts.Progress(elapsed, status, msg)
		}
	}

	if err := j.Update(ctx); err != nil {
		return nil, err
	}

	if opts.CancelLong && !TerminalJobStatus(j.Status()) {
		j.Cancel(ctx) //nolint:errcheck // advisory cleanup, outcome unused
	}

	return j.Doc.Map("results"), nil
}

// Result is a handle to one output parameter of a completed geoprocessing
// job.
type Result struct {
	*Resource
}

// NewResult fetches url and returns a result handle.
func NewResult(ctx context.Context, client *Client, url string) (*Result, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &Result{Resource: res}, nil
}

// ParamName returns the name of the output parameter.
func (r *Result) ParamName() string {
	return r.Doc.Str("paramName")
}

// DataType returns the parameter's reported data type tag.
func (r *Result) DataType() string {
	return r.Doc.Str("dataType")
}

// Value returns the parameter's raw value as decoded from the document.
func (r *Result) Value() any {
	return r.Doc["value"]
}

package arcrest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gpFixture scripts a geoprocessing service whose job walks through the given
// document sequence, one step per fetch of the job endpoint. After the
// sequence is exhausted the last document keeps being served.
type gpFixture struct {
	base      string
	jobDocs   []map[string]any
	jobPolls  atomic.Int64
	cancels   atomic.Int64
	submitted url.Values
}

func newGPFixture(t *testing.T, jobDocs []map[string]any) *gpFixture {
	t.Helper()
	fx := &gpFixture{jobDocs: jobDocs}

	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/Hotspot/GPServer", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"tasks": []string{"911 Calls Hotspot", "ListVersions"}})
	})
	mux.HandleFunc("/Hotspot/GPServer/911 Calls Hotspot", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"name": "911 Calls Hotspot", "executionType": "esriExecutionTypeAsynchronous"})
	})
	mux.HandleFunc("/Hotspot/GPServer/ListVersions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"name": "ListVersions", "executionType": "esriExecutionTypeSynchronous"})
	})
	mux.HandleFunc("/Hotspot/GPServer/ListVersions/execute", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"results": []map[string]any{{"paramName": "versions", "value": []any{}}}})
	})
	mux.HandleFunc("/Hotspot/GPServer/911 Calls Hotspot/submitJob", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		fx.submitted = r.PostForm
		writeJSON(w, map[string]any{"jobId": "j4fa37fc3", "jobStatus": "esriJobSubmitted"})
	})
	mux.HandleFunc("/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3", func(w http.ResponseWriter, r *http.Request) {
		i := int(fx.jobPolls.Add(1)) - 1
		if i >= len(fx.jobDocs) {
			i = len(fx.jobDocs) - 1
		}
		writeJSON(w, fx.jobDocs[i])
	})
	mux.HandleFunc("/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3/cancel", func(w http.ResponseWriter, r *http.Request) {
		fx.cancels.Add(1)
		writeJSON(w, map[string]any{"jobId": "j4fa37fc3", "jobStatus": JobCancelling})
	})
	mux.HandleFunc("/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3/results/Output_Features", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"paramName": "Output_Features",
			"dataType":  "GPFeatureRecordSetLayer",
			"value":     map[string]any{"features": []any{}},
		})
	})

	fx.base = newTestServerMux(t, mux)
	return fx
}

func jobDoc(status string, extra map[string]any) map[string]any {
	doc := map[string]any{"jobId": "j4fa37fc3", "jobStatus": status}
	for k, v := range extra {
		doc[k] = v
	}
	return doc
}

var succeededDoc = jobDoc(JobSucceeded, map[string]any{
	"results": map[string]any{
		"Output_Features": map[string]any{"paramUrl": "results/Output_Features"},
	},
	"messages": []map[string]any{{"type": "esriJobMessageTypeInformative", "description": "done"}},
})

func (fx *gpFixture) service(t *testing.T) *GPService {
	t.Helper()
	gps, err := NewGPService(context.Background(), testClient(), fx.base+"/Hotspot/GPServer")
	require.NoError(t, err)
	return gps
}

func TestGPServiceTasks(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobSubmitted, nil)})
	gps := fx.service(t)
	ctx := context.Background()

	assert.Equal(t, []string{"911 Calls Hotspot", "ListVersions"}, gps.TaskNames())

	task, err := gps.TaskByName(ctx, "ListVersions")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "ListVersions", task.Doc.Str("name"))

	// Task-name resolution is maybe-absent, like layer names.
	missing, err := gps.TaskByName(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byIndex, err := gps.TaskByIndex(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "911 Calls Hotspot", byIndex.Doc.Str("name"))

	_, err = gps.TaskByIndex(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := gps.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTaskExecute(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobSubmitted, nil)})
	gps := fx.service(t)
	ctx := context.Background()

	task, err := gps.TaskByName(ctx, "ListVersions")
	require.NoError(t, err)

	result, err := task.Execute(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.List("results"), "synchronous execution returns the result directly")
}

func TestTaskSubmitJob(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobSubmitted, nil)})
	gps := fx.service(t)
	ctx := context.Background()

	task, err := gps.TaskByName(ctx, "911 Calls Hotspot")
	require.NoError(t, err)

	params := url.Values{}
	params.Set("query", `"Day" = 'SUN'`)
	job, err := task.SubmitJob(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, `"Day" = 'SUN'`, fx.submitted.Get("query"))
	assert.Equal(t, "j4fa37fc3", job.JobID())
	assert.Equal(t, JobSubmitted, job.Status(), "a fresh job starts non-terminal")
	assert.False(t, TerminalJobStatus(job.Status()))
	assert.Equal(t, task.URL()+"/jobs/j4fa37fc3", job.URL())
}

func TestTaskSubmitJobMissingID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/T/GPServer/Broken", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Broken"}`))
	})
	mux.HandleFunc("/T/GPServer/Broken/submitJob", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "no luck"}}`))
	})
	base := newTestServerMux(t, mux)

	task, err := NewTask(context.Background(), testClient(), base+"/T/GPServer/Broken")
	require.NoError(t, err)

	_, err = task.SubmitJob(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no jobId")
}

func TestJobWaitForResults(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{
		jobDoc(JobSubmitted, nil),
		jobDoc(JobWaiting, nil),
		jobDoc(JobExecuting, map[string]any{"messages": []map[string]any{{"description": "working"}}}),
		succeededDoc,
	})
	gps := fx.service(t)
	ctx := context.Background()

	task, err := gps.TaskByName(ctx, "911 Calls Hotspot")
	require.NoError(t, err)
	job, err := task.SubmitJob(ctx, nil)
	require.NoError(t, err)

	var statuses []string
	results, err := job.WaitForResults(ctx, WaitOptions{
		MaxTime:  time.Second,
		Interval: 5 * time.Millisecond,
		Progress: func(elapsed time.Duration, status, message string) {
			statuses = append(statuses, status)
		},
	})
	require.NoError(t, err)
	require.NotNil(t, results)
	assert.NotNil(t, results.Map("Output_Features"))
	assert.Equal(t, JobSucceeded, job.Status())
	assert.Contains(t, statuses, JobSucceeded)

	res, err := job.ResultByName(ctx, "Output_Features")
	require.NoError(t, err)
	assert.Equal(t, "Output_Features", res.ParamName())
	assert.Equal(t, "GPFeatureRecordSetLayer", res.DataType())
	assert.NotNil(t, res.Value())

	names, err := job.ResultNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Output_Features"}, names)

	all, err := job.Results(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// The job handle is consumed: waiting again is a usage error.
	_, err = job.WaitForResults(ctx, WaitOptions{MaxTime: time.Second, Interval: time.Millisecond})
	require.ErrorIs(t, err, ErrJobConsumed)
}

func TestJobWaitZeroBudgetPollsOnce(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{
		jobDoc(JobSubmitted, nil),
		jobDoc(JobExecuting, nil),
	})
	gps := fx.service(t)
	ctx := context.Background()

	task, err := gps.TaskByName(ctx, "911 Calls Hotspot")
	require.NoError(t, err)
	job, err := task.SubmitJob(ctx, nil)
	require.NoError(t, err)
	constructionPolls := fx.jobPolls.Load()

	results, err := job.WaitForResults(ctx, WaitOptions{MaxTime: 0, Interval: time.Millisecond})
	require.NoError(t, err)
	assert.Nil(t, results, "no results yet; the caller sees whatever was observed")
	assert.Equal(t, JobExecuting, job.Status())
	assert.Equal(t, constructionPolls+1, fx.jobPolls.Load(), "zero budget performs at most one poll")
}

func TestJobWaitRefusesTerminalHandle(t *testing.T) {
	for _, status := range []string{JobSucceeded, JobFailed, JobTimedOut, JobCancelled, JobDeleted} {
		t.Run(status, func(t *testing.T) {
			fx := newGPFixture(t, []map[string]any{jobDoc(status, nil)})
			job, err := NewJob(context.Background(), testClient(),
				fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
			require.NoError(t, err)

			_, err = job.WaitForResults(context.Background(), WaitOptions{MaxTime: time.Second, Interval: time.Millisecond})
			require.ErrorIs(t, err, ErrJobConsumed)
			assert.Contains(t, err.Error(), "j4fa37fc3")
			assert.Contains(t, err.Error(), status)
		})
	}
}

func TestJobWaitCancelsLongJobs(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobExecuting, nil)})
	job, err := NewJob(context.Background(), testClient(),
		fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
	require.NoError(t, err)

	results, err := job.WaitForResults(context.Background(), WaitOptions{
		MaxTime:    20 * time.Millisecond,
		Interval:   5 * time.Millisecond,
		CancelLong: true,
	})
	require.NoError(t, err, "hitting the budget is not an error")
	assert.Nil(t, results)
	assert.Equal(t, int64(1), fx.cancels.Load(), "overrunning the budget cancels the job")
	assert.Equal(t, JobExecuting, job.Status(), "cancel's response is not interpreted into a state change")
}

func TestJobWaitLeavesLongJobsWithoutCancelLong(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobExecuting, nil)})
	job, err := NewJob(context.Background(), testClient(),
		fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
	require.NoError(t, err)

	_, err = job.WaitForResults(context.Background(), WaitOptions{
		MaxTime:  20 * time.Millisecond,
		Interval: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), fx.cancels.Load())
}

func TestJobWaitUnknownStatusKeepsPolling(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{
		jobDoc(JobSubmitted, nil),
		jobDoc("esriJobTransmogrifying", nil),
		succeededDoc,
	})
	job, err := NewJob(context.Background(), testClient(),
		fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
	require.NoError(t, err)

	var notices []string
	results, err := job.WaitForResults(context.Background(), WaitOptions{
		MaxTime:  time.Second,
		Interval: 5 * time.Millisecond,
		Progress: func(elapsed time.Duration, status, message string) {
			if !KnownJobStatus(status) {
				notices = append(notices, message)
			}
		},
	})
	require.NoError(t, err)
	assert.NotNil(t, results, "an unrecognized status is non-terminal; the loop continues")
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "esriJobTransmogrifying")
}

func TestJobWaitContextCancellation(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobExecuting, nil)})
	job, err := NewJob(context.Background(), testClient(),
		fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = job.WaitForResults(ctx, WaitOptions{MaxTime: time.Minute, Interval: time.Minute})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJobResultsBeforeSuccess(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobFailed, map[string]any{"results": nil})})
	job, err := NewJob(context.Background(), testClient(),
		fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
	require.NoError(t, err)

	_, err = job.ResultNames()
	require.ErrorIs(t, err, ErrNoResults)
	assert.Contains(t, err.Error(), "j4fa37fc3")
	assert.Contains(t, err.Error(), JobFailed)

	_, err = job.Results(context.Background())
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = job.ResultByName(context.Background(), "Output_Features")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestJobResultByUnknownName(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{succeededDoc})
	job, err := NewJob(context.Background(), testClient(),
		fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
	require.NoError(t, err)

	_, err = job.ResultByName(context.Background(), "Nope")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Nope")
}

func TestJobUpdateIsIdempotent(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobExecuting, nil)})
	job, err := NewJob(context.Background(), testClient(),
		fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
	require.NoError(t, err)

	require.NoError(t, job.Update(context.Background()))
	first := job.Status()
	require.NoError(t, job.Update(context.Background()))
	assert.Equal(t, first, job.Status())
}

func TestJobCancel(t *testing.T) {
	fx := newGPFixture(t, []map[string]any{jobDoc(JobExecuting, nil)})
	job, err := NewJob(context.Background(), testClient(),
		fx.base+"/Hotspot/GPServer/911 Calls Hotspot/jobs/j4fa37fc3")
	require.NoError(t, err)

	doc, err := job.Cancel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, JobCancelling, doc.Str("jobStatus"), "cancel returns the raw response")
	assert.Equal(t, JobExecuting, job.Status(), "the handle only changes through Update")
}

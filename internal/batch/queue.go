package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marcos010894/innobyte-labels/internal/variables"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// JobStatus is the lifecycle state of a document job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRendering JobStatus = "rendering"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// Job is one queued document generation.
type Job struct {
	ID           string    `json:"id"`
	Status       JobStatus `json:"status"`
	Error        string    `json:"error,omitempty"`
	Filename     string    `json:"filename,omitempty"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	CompletedAt  time.Time `json:"completedAt,omitempty"`

	// Document holds the finished PDF; it is served by a dedicated
	// download endpoint, never inlined in job JSON.
	Document []byte `json:"-"`

	template labelformat.Template
	products []labelformat.Product
	printCfg labelformat.PagePrintConfig
	opts     variables.Options
	cancel   context.CancelFunc
}

// Queue runs document jobs one at a time in the background. Labels
// within a job already render serially to bound memory; serializing
// jobs keeps that bound across the whole process.
type Queue struct {
	driver *Driver

	jobs  map[string]*Job
	order []string
	mu    sync.Mutex

	onUpdate func(*Job)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewQueue creates a queue and starts its worker.
func NewQueue(driver *Driver) *Queue {
	ctx, cancel := context.WithCancel(context.Background())

	q := &Queue{
		driver: driver,
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
	}

	q.wg.Add(1)
	go q.worker()

	return q
}

// OnJobUpdate registers a callback fired on every status change. Used
// by the websocket layer to push progress to the editor.
func (q *Queue) OnJobUpdate(fn func(*Job)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onUpdate = fn
}

// Enqueue adds a document job and returns its id.
func (q *Queue) Enqueue(tpl labelformat.Template, products []labelformat.Product, cfg labelformat.PagePrintConfig, opts variables.Options) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	job := &Job{
		ID:           uuid.NewString(),
		Status:       JobQueued,
		ProductCount: len(products),
		CreatedAt:    time.Now(),
		template:     tpl,
		products:     products,
		printCfg:     cfg,
		opts:         opts,
	}

	q.jobs[job.ID] = job
	q.order = append(q.order, job.ID)

	return job.ID
}

// Get returns a copy of a job by id. Copies keep callers from racing
// the worker's status updates.
func (q *Queue) Get(id string) (*Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.jobs[id]
	if !ok {
		return nil, false
	}
	jobCopy := *job
	return &jobCopy, true
}

// List returns copies of all jobs, oldest first.
func (q *Queue) List() []*Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]*Job, 0, len(q.order))
	for _, id := range q.order {
		jobCopy := *q.jobs[id]
		out = append(out, &jobCopy)
	}
	return out
}

// CancelJob cancels a queued or in-flight job. Cancellation of a
// rendering job takes effect between products.
func (q *Queue) CancelJob(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.jobs[id]
	if !ok {
		return false
	}

	switch job.Status {
	case JobQueued:
		job.Status = JobCancelled
		job.CompletedAt = time.Now()
		q.notify(job)
		return true
	case JobRendering:
		if job.cancel != nil {
			job.cancel()
		}
		return true
	default:
		return false
	}
}

// Stop shuts the worker down and waits for it.
func (q *Queue) Stop() {
	q.cancel()
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-q.ctx.Done():
			return
		case <-ticker.C:
			q.processNextJob()
		}
	}
}

func (q *Queue) processNextJob() {
	q.mu.Lock()

	var job *Job
	for _, id := range q.order {
		if q.jobs[id].Status == JobQueued {
			job = q.jobs[id]
			break
		}
	}
	if job == nil {
		q.mu.Unlock()
		return
	}

	jobCtx, cancel := context.WithCancel(q.ctx)
	job.cancel = cancel
	job.Status = JobRendering
	q.notify(job)
	q.mu.Unlock()

	doc, filename, err := q.driver.GenerateDocument(jobCtx, job.template, job.products, job.printCfg, job.opts)
	// Read before cancel(); afterwards jobCtx.Err() is always non-nil
	// and every failure would masquerade as a cancellation.
	cancelled := jobCtx.Err() != nil
	cancel()

	q.mu.Lock()
	defer q.mu.Unlock()

	job.CompletedAt = time.Now()
	switch {
	case err == nil:
		job.Status = JobCompleted
		job.Document = doc
		job.Filename = filename
	case cancelled:
		job.Status = JobCancelled
	default:
		job.Status = JobFailed
		job.Error = err.Error()
	}
	q.notify(job)
}

// notify must be called with the lock held. The callback gets a copy
// so slow consumers never race the worker.
func (q *Queue) notify(job *Job) {
	if q.onUpdate != nil {
		jobCopy := *job
		go q.onUpdate(&jobCopy)
	}
}

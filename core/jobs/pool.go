package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a background job.
type State string

const (
	StatePending State = "PENDING"
	StateDone    State = "SUCCESS"
	StateFailed  State = "FAILURE"
)

// Handler executes a job payload and returns its result. The job's own id is
// passed in so handlers can key artifacts by it.
type Handler func(jobID string, payload map[string]interface{}) (interface{}, error)

// Job is one unit of background work, identified by an opaque id.
type Job struct {
	ID      string
	Name    string
	Payload map[string]interface{}

	state  State
	result interface{}
	errMsg string
	done   chan struct{}
}

// defaultRetention is how long a terminal job stays observable through
// Status/Result before it is evicted.
const defaultRetention = 10 * time.Minute

// Pool runs named handlers on a fixed set of workers. Callers observe jobs
// through Status (polling) or Wait (push-based completion). Terminal jobs are
// evicted after retention so the map stays bounded.
type Pool struct {
	mu       sync.Mutex
	handlers map[string]Handler
	jobs     map[string]*Job
	queue    chan *Job

	workers   int
	retention time.Duration
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

var (
	defaultPool *Pool
	defaultOnce sync.Once
)

// Default returns the process-wide pool (2 workers, 64 queued jobs).
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = NewPool(2, 64)
	})
	return defaultPool
}

// NewPool creates a stopped pool with the given worker count and queue buffer.
func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 16
	}
	return &Pool{
		handlers:  make(map[string]Handler),
		jobs:      make(map[string]*Job),
		queue:     make(chan *Job, buffer),
		workers:   workers,
		retention: defaultRetention,
	}
}

// RegisterHandler binds a handler to a job name. Last registration wins.
func (p *Pool) RegisterHandler(name string, h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[name] = h
}

// Start launches the workers. Stop cancels them; queued jobs are abandoned.
func (p *Pool) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Stop cancels the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.queue:
			p.run(j)
		}
	}
}

func (p *Pool) run(j *Job) {
	defer func() {
		if r := recover(); r != nil {
			p.finish(j, StateFailed, nil, fmt.Sprintf("panic: %v", r))
		}
	}()
	p.mu.Lock()
	h := p.handlers[j.Name]
	p.mu.Unlock()

	res, err := h(j.ID, j.Payload)
	if err != nil {
		p.finish(j, StateFailed, nil, err.Error())
		return
	}
	p.finish(j, StateDone, res, "")
}

func (p *Pool) finish(j *Job, s State, result interface{}, errMsg string) {
	p.mu.Lock()
	j.state = s
	j.result = result
	j.errMsg = errMsg
	p.mu.Unlock()
	close(j.done)

	time.AfterFunc(p.retention, func() {
		p.mu.Lock()
		delete(p.jobs, j.ID)
		p.mu.Unlock()
	})
}

// Submit enqueues a job for a registered handler and returns its id.
func (p *Pool) Submit(name string, payload map[string]interface{}) (string, error) {
	p.mu.Lock()
	if _, ok := p.handlers[name]; !ok {
		p.mu.Unlock()
		return "", fmt.Errorf("jobs: no handler registered for %q", name)
	}
	j := &Job{
		ID:      uuid.NewString(),
		Name:    name,
		Payload: payload,
		state:   StatePending,
		done:    make(chan struct{}),
	}
	p.jobs[j.ID] = j
	p.mu.Unlock()

	select {
	case p.queue <- j:
		return j.ID, nil
	default:
		p.mu.Lock()
		delete(p.jobs, j.ID)
		p.mu.Unlock()
		return "", fmt.Errorf("jobs: queue full")
	}
}

// Status returns the current state of a job.
func (p *Pool) Status(id string) (State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	j, ok := p.jobs[id]
	if !ok {
		return "", false
	}
	return j.state, true
}

// Result returns the handler result and error text of a terminal job.
func (p *Pool) Result(id string) (interface{}, string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	j, ok := p.jobs[id]
	if !ok {
		return nil, "", false
	}
	return j.result, j.errMsg, true
}

// Wait blocks until the job reaches a terminal state or ctx expires.
// The returned error is non-nil only for unknown ids or ctx expiry; a failed
// job returns (StateFailed, nil).
func (p *Pool) Wait(ctx context.Context, id string) (State, error) {
	p.mu.Lock()
	j, ok := p.jobs[id]
	p.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("jobs: unknown job %q", id)
	}
	select {
	case <-j.done:
		s, _ := p.Status(id)
		return s, nil
	case <-ctx.Done():
		return StatePending, ctx.Err()
	}
}

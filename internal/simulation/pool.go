package simulation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/nvandessel/auralie/internal/models"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("simulation pool closed")

// JobStatus is a snapshot of one submitted simulation.
type JobStatus struct {
	JobID         string                `json:"job_id"`
	SimulationID  string                `json:"simulation_id,omitempty"`
	Person1ID     string                `json:"person1_id"`
	Person2ID     string                `json:"person2_id"`
	Status        models.Status         `json:"status"`
	CompletedDays int                   `json:"completed_days"`
	Compatibility *models.Compatibility `json:"compatibility,omitempty"`
	Error         string                `json:"error,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	FinishedAt    *time.Time            `json:"finished_at,omitempty"`
}

type job struct {
	status JobStatus
	orch   *Orchestrator
}

// Pool runs submitted simulations in the background, at most limit at a
// time, and keeps a status record per job.
type Pool struct {
	runner Runner
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	jobs   map[string]*job
	seq    uint64
	closed bool
}

// NewPool creates a pool that runs at most limit simulations concurrently.
func NewPool(runner Runner, limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		runner: runner,
		sem:    semaphore.NewWeighted(int64(limit)),
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*job),
	}
}

// Submit queues a simulation of a and b and returns its job ID.
func (p *Pool) Submit(a, b *models.Profile) (string, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return "", ErrPoolClosed
	}
	p.seq++
	id := uuid.NewString()
	j := &job{
		status: JobStatus{
			JobID:     id,
			Person1ID: a.ID,
			Person2ID: b.ID,
			Status:    models.StatusPending,
			CreatedAt: time.Now(),
		},
		orch: p.runner.New(p.seq * 1000),
	}
	p.jobs[id] = j
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(j, a, b)
	return id, nil
}

func (p *Pool) run(j *job, a, b *models.Profile) {
	defer p.wg.Done()

	if err := p.sem.Acquire(p.ctx, 1); err != nil {
		p.finish(j, nil, err)
		return
	}
	defer p.sem.Release(1)

	p.mu.Lock()
	j.status.Status = models.StatusInProgress
	p.mu.Unlock()

	res, err := j.orch.Run(p.ctx, a, b)
	p.finish(j, res, err)
}

func (p *Pool) finish(j *job, res *models.SimulationResult, err error) {
	now := time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()
	j.status.FinishedAt = &now
	if res != nil {
		j.status.SimulationID = res.ID
		j.status.CompletedDays = res.CompletedDays
		j.status.Compatibility = res.Compatibility
	}
	if err != nil {
		j.status.Status = models.StatusFailed
		j.status.Error = err.Error()
		return
	}
	j.status.Status = models.StatusCompleted
}

// Status returns the current snapshot of a job.
func (p *Pool) Status(id string) (JobStatus, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	j, ok := p.jobs[id]
	if !ok {
		return JobStatus{}, false
	}
	return p.snapshot(j), true
}

// List returns every job, oldest first.
func (p *Pool) List() []JobStatus {
	p.mu.RLock()
	out := make([]JobStatus, 0, len(p.jobs))
	for _, j := range p.jobs {
		out = append(out, p.snapshot(j))
	}
	p.mu.RUnlock()
	sort.Slice(out, func(i, k int) bool {
		if !out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].CreatedAt.Before(out[k].CreatedAt)
		}
		return out[i].JobID < out[k].JobID
	})
	return out
}

// snapshot must be called with p.mu held.
func (p *Pool) snapshot(j *job) JobStatus {
	s := j.status
	if s.SimulationID == "" {
		s.SimulationID = j.orch.ID()
	}
	return s
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close stops accepting jobs, cancels running ones, and waits for them.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	p.wg.Wait()
}

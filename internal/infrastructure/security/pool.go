package security

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

const jobBuffer = 64

// ErrPoolClosed is returned by Do once the pool has been closed.
var ErrPoolClosed = errors.New("hash pool closed")

type job struct {
	run  func()
	done chan struct{}
}

// Pool runs CPU-heavy password work on a fixed set of goroutines so a burst
// of logins cannot occupy every core at once.
type Pool struct {
	jobs      chan job
	quit      chan struct{}
	closeOnce sync.Once
	log       zerolog.Logger
}

// NewPool creates a Pool with numWorkers workers.
// If numWorkers <= 0, runtime.NumCPU() is used.
func NewPool(numWorkers int, log zerolog.Logger) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan job, jobBuffer), quit: make(chan struct{}), log: log}
	for i := 0; i < numWorkers; i++ {
		go p.runWorker(i)
	}
	return p
}

// Do runs fn on a worker and waits for it. It returns ctx.Err() if ctx ends
// before a worker picks the job up or before fn returns; in the latter case
// fn still runs to completion in the background. After Close, Do returns
// ErrPoolClosed.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	j := job{run: fn, done: make(chan struct{})}

	select {
	case <-p.quit:
		return ErrPoolClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolClosed
	case p.jobs <- j:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolClosed
	case <-j.done:
		return nil
	}
}

// Close stops the workers after their current job. Jobs still queued are
// abandoned and their callers get ErrPoolClosed. Close is idempotent.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.quit) })
}

func (p *Pool) runWorker(id int) {
	for {
		select {
		case <-p.quit:
			return
		case j := <-p.jobs:
			p.run(id, j)
		}
	}
}

func (p *Pool) run(id int, j job) {
	defer close(j.done)
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Int("worker_id", id).Msg("hash job panicked")
		}
	}()
	j.run()
}

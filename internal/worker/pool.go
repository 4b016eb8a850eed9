package worker

import "sync"

type task func()

// Pool runs background best-effort jobs (counter recounts and similar
// bookkeeping) on a fixed set of goroutines.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Submit enqueues a job, dropping it when the queue is full. Jobs here are
// best-effort by contract.
func (p *Pool) Submit(f task) {
	select {
	case p.jobs <- f:
	default:
	}
}

func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

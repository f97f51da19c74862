package worker

import "sync"

type task func()

// Pool runs background jobs (audit writes and other non-critical work)
// on a fixed number of goroutines. Submit blocks once the queue is full.
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

func (p *Pool) Submit(f task) { p.jobs <- f }

// Stop drains the queue and waits for in-flight jobs.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }

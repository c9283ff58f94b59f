package frame

import (
	"sync"
)

// Publisher owns the one frame that consumers read. Producers and consumers
// both copy whole frames under the same lock, so nobody ever sees half of one
// frame and half of another. The published buffer is allocated once and its
// address never changes.
type Publisher struct {
	mu        sync.Mutex
	published *Frame
	seq       uint64
}

func NewPublisher(width, height int) *Publisher {
	return &Publisher{published: New(width, height)}
}

// Publish copies a completed scratch frame into the published frame.
func (p *Publisher) Publish(scratch *Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.published.CopyFrom(scratch); nil != err {
		return err
	}
	p.seq++
	return nil
}

// CopyTo copies the published frame out and returns its sequence number.
// Sequence zero means nothing has been published yet.
func (p *Publisher) CopyTo(dst *Frame) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := dst.CopyFrom(p.published); nil != err {
		return 0, err
	}
	return p.seq, nil
}

// Sequence is the number of frames published so far.
func (p *Publisher) Sequence() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq
}

func (p *Publisher) Size() (int, int) {
	return p.published.Width, p.published.Height
}

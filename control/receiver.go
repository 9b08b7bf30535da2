// Package control buffers scalar control messages from an external transport
// until the update tick applies them.
package control

import (
	"fmt"
	"math"
	"sync"
)

const (
	AddrYaw   = "/yaw"
	AddrPitch = "/pitch"
	AddrRoll  = "/roll"
)

type Message struct {
	Address string
	Value   float64
}

// Receiver is written by the transport goroutine through Send and read by the
// tick through Drain and Value.
type Receiver struct {
	mu    sync.Mutex
	queue []Message

	values map[string]float64
}

func NewReceiver() *Receiver {
	return &Receiver{
		values: map[string]float64{
			AddrYaw:   0,
			AddrPitch: 0,
			AddrRoll:  0,
		},
	}
}

// Send queues a message. Unknown addresses and non-finite values are
// rejected.
func (r *Receiver) Send(address string, value float64) error {
	switch address {
	case AddrYaw, AddrPitch, AddrRoll:
	default:
		return fmt.Errorf("control: unknown address %q", address)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("control: %s: non-finite value %v", address, value)
	}
	r.mu.Lock()
	r.queue = append(r.queue, Message{Address: address, Value: value})
	r.mu.Unlock()
	return nil
}

// Drain applies every queued message in arrival order and returns how many
// there were. Only the tick may call it.
func (r *Receiver) Drain() int {
	r.mu.Lock()
	queued := r.queue
	r.queue = nil
	r.mu.Unlock()

	for _, m := range queued {
		r.values[m.Address] = m.Value
	}
	return len(queued)
}

// Value is the most recent applied value for address.
func (r *Receiver) Value(address string) float64 {
	return r.values[address]
}

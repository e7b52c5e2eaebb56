package input

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/hnterm/internal/logging"
	statepkg "github.com/kk-code-lab/hnterm/internal/state"
)

// DefaultPollInterval bounds input latency without spinning.
const DefaultPollInterval = 100 * time.Millisecond

const eventBufferSize = 128

// EventSource is the part of tcell.Screen the pump needs.
type EventSource interface {
	PollEvent() tcell.Event
}

// Pump forwards events from src into a buffered channel until src stops
// returning events (screen finalised) or ctx is done. The channel is closed
// when the pump exits.
func Pump(ctx context.Context, src EventSource) <-chan tcell.Event {
	out := make(chan tcell.Event, eventBufferSize)
	go func() {
		defer close(out)
		for {
			ev := src.PollEvent()
			if ev == nil {
				return
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Watcher turns buffered terminal events into actions on a fixed tick.
// While the gate is closed, events are read and thrown away.
type Watcher struct {
	events   <-chan tcell.Event
	gate     *Gate
	handler  *InputHandler
	queue    *statepkg.Queue
	interval time.Duration
}

// NewWatcher polls events every interval; a non-positive interval uses the default.
func NewWatcher(events <-chan tcell.Event, gate *Gate, handler *InputHandler, queue *statepkg.Queue, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		events:   events,
		gate:     gate,
		handler:  handler,
		queue:    queue,
		interval: interval,
	}
}

// Tick drains every pending event and returns the actions they map to.
// The gate is sampled once per tick.
func (w *Watcher) Tick() []statepkg.Action {
	enabled := w.gate.Enabled()
	var actions []statepkg.Action
	discarded := 0
	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				return actions
			}
			if !enabled {
				discarded++
				continue
			}
			if a := w.handler.Translate(ev); a != nil {
				actions = append(actions, a)
			}
		default:
			if discarded > 0 {
				logging.Debug("input discarded while suspended", "events", discarded)
			}
			return actions
		}
	}
}

// Run ticks until ctx is cancelled, dispatching translated actions in order.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, a := range w.Tick() {
				if !w.queue.Dispatch(ctx, a) {
					return
				}
			}
		}
	}
}

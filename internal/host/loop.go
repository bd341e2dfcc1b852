package host

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/armsim/internal/core/events/bus"
	"github.com/zeusync/armsim/internal/core/observability/log"
	"github.com/zeusync/armsim/internal/core/sim"
)

// EventFrame is the bus event type carrying a sim.Frame.
const EventFrame = "arm.frame"

// Source yields the input transitions due before a tick. Sources are polled
// on the loop goroutine; any cross-goroutine handoff is their business.
type Source interface {
	Poll(tick uint64) []sim.InputEvent
}

// SourceFunc adapts a function to Source.
type SourceFunc func(tick uint64) []sim.InputEvent

func (f SourceFunc) Poll(tick uint64) []sim.InputEvent { return f(tick) }

// Stats are counters for one Run. The publish counters come from the bus
// metrics gathered while the loop's observer is registered.
type Stats struct {
	Ticks         uint64
	Published     uint64
	Filtered      uint64
	PublishErrors uint64
	Elapsed       time.Duration
}

// FrameFilter decides whether a frame is handed to collaborators.
type FrameFilter func(sim.Frame) bool

// EveryNth passes the initial frame and every n-th tick after it.
func EveryNth(n uint64) FrameFilter {
	if n <= 1 {
		return func(sim.Frame) bool { return true }
	}
	return func(f sim.Frame) bool { return f.Tick%n == 0 }
}

// Loop drives a Simulator: wait for the scheduler, apply input, tick, then
// publish the frame. A tick is never interleaved with another.
type Loop struct {
	sim       *sim.Simulator
	scheduler Scheduler
	bus       bus.EventBus
	sources   []Source
	filters   []bus.EventFilter
	logger    log.Log

	running int32
	ticks   uint64

	mu       sync.Mutex
	baseline bus.EventBusMetrics
}

func NewLoop(s *sim.Simulator, scheduler Scheduler, b bus.EventBus, logger log.Log, sources ...Source) *Loop {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Loop{
		sim:       s,
		scheduler: scheduler,
		bus:       b,
		sources:   sources,
		logger:    logger.With(log.String("component", "loop")),
	}
}

// WithFrameFilter adds a filter applied to every published frame.
func (l *Loop) WithFrameFilter(fn FrameFilter) *Loop {
	l.filters = append(l.filters, func(e bus.Event) bool {
		f, ok := FrameOf(e)
		return !ok || fn(f)
	})
	return l
}

// Run blocks until the context is cancelled or the scheduler is exhausted.
// Exhaustion is a clean stop and returns nil.
func (l *Loop) Run(ctx context.Context) (Stats, error) {
	if !atomic.CompareAndSwapInt32(&l.running, 0, 1) {
		return Stats{}, ErrLoopRunning
	}
	defer atomic.StoreInt32(&l.running, 0)
	defer l.scheduler.Stop()

	if l.bus != nil {
		obs := &deliveryObserver{logger: l.logger}
		l.bus.AddObserver(obs)
		defer l.bus.RemoveObserver(obs)
		l.mu.Lock()
		l.baseline = l.bus.GetMetrics()
		l.mu.Unlock()
	}

	start := time.Now()
	l.logger.Info("Loop started")

	// Publish the initial pose so collaborators have something to show
	// before the first input.
	l.publish(l.sim.Frame())

	var runErr error
	for {
		if err := l.scheduler.Wait(ctx); err != nil {
			if !errors.Is(err, ErrSchedulerDone) {
				runErr = err
			}
			break
		}
		l.step()
	}

	stats := l.Stats()
	stats.Elapsed = time.Since(start)
	l.logger.Info("Loop stopped",
		log.Uint64("ticks", stats.Ticks),
		log.Uint64("published", stats.Published),
		log.Uint64("filtered", stats.Filtered),
		log.Uint64("publish_errors", stats.PublishErrors),
		log.Duration("elapsed", stats.Elapsed))
	return stats, runErr
}

func (l *Loop) step() {
	next := l.sim.Frame().Tick + 1
	for _, src := range l.sources {
		l.sim.Apply(src.Poll(next)...)
	}
	frame := l.sim.Tick()
	atomic.AddUint64(&l.ticks, 1)
	l.publish(frame)
}

func (l *Loop) publish(frame sim.Frame) {
	if l.bus == nil {
		return
	}
	if err := l.bus.PublishWithFilters(NewFrameEvent(frame), l.filters...); err != nil {
		l.logger.Warn("Frame collaborator failed",
			log.Uint64("tick", frame.Tick),
			log.Error(err))
	}
}

func (l *Loop) Stats() Stats {
	stats := Stats{Ticks: atomic.LoadUint64(&l.ticks)}
	if l.bus != nil {
		m := l.bus.GetMetrics()
		l.mu.Lock()
		defer l.mu.Unlock()
		stats.Published = m.Published - l.baseline.Published
		stats.Filtered = m.DroppedByFilters - l.baseline.DroppedByFilters
		stats.PublishErrors = m.Errors - l.baseline.Errors
	}
	return stats
}

// deliveryObserver logs how long collaborators took with each frame.
type deliveryObserver struct {
	logger log.Log
}

func (o *deliveryObserver) OnPublish(string, bus.Event) {}

func (o *deliveryObserver) OnDelivered(eventType string, handlers int, err error, d time.Duration) {
	if !o.logger.Enabled(log.LevelDebug) {
		return
	}
	o.logger.Debug("Frame delivered",
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Duration("duration", d),
		log.Bool("failed", err != nil))
}

type frameEvent struct {
	frame sim.Frame
	ts    time.Time
}

func NewFrameEvent(f sim.Frame) bus.Event {
	return frameEvent{frame: f, ts: time.Now()}
}

func (e frameEvent) Type() string         { return EventFrame }
func (e frameEvent) Source() string       { return "sim" }
func (e frameEvent) Timestamp() time.Time { return e.ts }
func (e frameEvent) Data() any            { return e.frame }

// FrameOf extracts the frame carried by a bus event.
func FrameOf(e bus.Event) (sim.Frame, bool) {
	f, ok := e.Data().(sim.Frame)
	return f, ok
}

// OnFrame subscribes fn to frame events.
func OnFrame(b bus.EventBus, fn func(sim.Frame) error) (bus.Subscription, error) {
	return b.Subscribe(EventFrame, func(e bus.Event) error {
		f, ok := FrameOf(e)
		if !ok {
			return nil
		}
		return fn(f)
	})
}

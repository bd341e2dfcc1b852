package terminal

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/zeusync/armsim/internal/core/sim"
)

// directions is the release order used when several keys expire together.
var directions = [...]sim.Key{sim.KeyUp, sim.KeyDown, sim.KeyLeft, sim.KeyRight}

// Keyboard collects decoded actions from a reader goroutine and hands them
// to the tick loop through Poll. It implements host.Source.
type Keyboard struct {
	actions   chan Action
	hold      time.Duration
	wristStep float64
	now       func() time.Time

	held map[sim.Key]time.Time

	quit     chan struct{}
	quitOnce sync.Once
}

func NewKeyboard(hold time.Duration, wristStep float64) *Keyboard {
	return &Keyboard{
		actions:   make(chan Action, 256),
		hold:      hold,
		wristStep: wristStep,
		now:       time.Now,
		held:      make(map[sim.Key]time.Time),
		quit:      make(chan struct{}),
	}
}

// Quit is closed once a quit key is read or the input ends.
func (k *Keyboard) Quit() <-chan struct{} {
	return k.quit
}

func (k *Keyboard) closeQuit() {
	k.quitOnce.Do(func() { close(k.quit) })
}

// ReadFrom decodes r until EOF, a read error, or ctx is done. A blocked Read
// is only noticed after it returns, so the caller should not wait on this
// for shutdown.
func (k *Keyboard) ReadFrom(ctx context.Context, r io.Reader) error {
	var dec Decoder
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, a := range dec.Feed(buf[:n]) {
			if a.Kind == ActionQuit {
				k.closeQuit()
				continue
			}
			select {
			case k.actions <- a:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err != nil {
			k.endOfInput()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// endOfInput releases whatever is held and signals quit. The release is
// dropped if the queue is full; the hold timeout covers that case.
func (k *Keyboard) endOfInput() {
	select {
	case k.actions <- Action{Kind: ActionReleaseAll}:
	default:
	}
	k.closeQuit()
}

// Push queues an action as if it had been read.
func (k *Keyboard) Push(a Action) {
	if a.Kind == ActionQuit {
		k.closeQuit()
		return
	}
	k.actions <- a
}

// Poll turns queued actions into input transitions and releases keys whose
// hold has lapsed.
func (k *Keyboard) Poll(uint64) []sim.InputEvent {
	now := k.now()
	var out []sim.InputEvent

	for {
		var a Action
		select {
		case a = <-k.actions:
		default:
			return append(out, k.expire(now)...)
		}

		switch a.Kind {
		case ActionKey:
			if a.Key == sim.KeyFlip {
				out = append(out, sim.Press(sim.KeyFlip))
				continue
			}
			if _, held := k.held[a.Key]; !held {
				out = append(out, sim.Press(a.Key))
			}
			k.held[a.Key] = now
			// The opposite key on the same axis no longer drives it.
			if opp := opposite(a.Key); opp != sim.KeyNone {
				delete(k.held, opp)
			}
		case ActionWristUp:
			out = append(out, sim.NudgeWrist(k.wristStep))
		case ActionWristDown:
			out = append(out, sim.NudgeWrist(-k.wristStep))
		case ActionReleaseAll:
			clear(k.held)
			out = append(out, sim.ReleaseAll())
		}
	}
}

func (k *Keyboard) expire(now time.Time) []sim.InputEvent {
	var out []sim.InputEvent
	for _, key := range directions {
		last, ok := k.held[key]
		if ok && now.Sub(last) >= k.hold {
			delete(k.held, key)
			out = append(out, sim.Release(key))
		}
	}
	return out
}

func opposite(k sim.Key) sim.Key {
	switch k {
	case sim.KeyUp:
		return sim.KeyDown
	case sim.KeyDown:
		return sim.KeyUp
	case sim.KeyLeft:
		return sim.KeyRight
	case sim.KeyRight:
		return sim.KeyLeft
	}
	return sim.KeyNone
}

package reveal

import (
	"context"
	"time"
)

// DefaultDelay is the pause between two narration lines.
const DefaultDelay = 300 * time.Millisecond

// Player emits the lines of a Sequence on a fixed cadence. The first line is
// emitted immediately, each following one after Delay.
type Player struct {
	Delay time.Duration
}

// NewPlayer returns a Player using delay, or DefaultDelay when delay is negative.
func NewPlayer(delay time.Duration) *Player {
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Player{Delay: delay}
}

// Play drains seq, calling emit with each line's index and text. It returns
// ctx.Err() if the context is cancelled before the last line. A partially
// drained sequence resumes after one Delay.
func (p *Player) Play(ctx context.Context, seq *Sequence, emit func(int, string)) error {
	var tick <-chan time.Time
	if p.Delay > 0 {
		ticker := time.NewTicker(p.Delay)
		defer ticker.Stop()
		tick = ticker.C
	}

	for seq.Remaining() > 0 {
		if seq.Position() > 0 {
			if err := p.wait(ctx, tick); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		idx := seq.Position()
		line, _ := seq.Next()
		emit(idx, line)
	}
	return nil
}

func (p *Player) wait(ctx context.Context, tick <-chan time.Time) error {
	if tick == nil {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}

// Reveal plays steps with p and then calls final exactly once, returning its
// result. A nil Player skips the narration and calls final straight away. If
// the narration is cancelled, final is not called.
func Reveal(ctx context.Context, p *Player, steps []string, emit func(int, string), final func() string) (string, error) {
	if p != nil {
		if err := p.Play(ctx, NewSequence(steps), emit); err != nil {
			return "", err
		}
	}
	return final(), nil
}

package backend

import (
	"context"
	"time"

	"git.sr.ht/~gioverse/skel/stream"
	"github.com/sirupsen/logrus"
)

// ReplayState is one step of a replay: the rows of a dataset up to and
// including its Step-th distinct time.
type ReplayState struct {
	Data        Dataset
	Step, Total int
	Done        bool
}

// Replayer plays datasets back one timestamp at a time, as if their rows
// were arriving live.
type Replayer struct {
	pool *stream.MutationPool[string, ReplayState]
}

func NewReplayer(mutator *stream.Mutator) *Replayer {
	return &Replayer{
		pool: stream.NewMutationPool[string, ReplayState](mutator),
	}
}

// Run starts replaying ds under the given id. If a replay with that id is
// already running, it is returned instead and isNew is false.
func (r *Replayer) Run(id string, ds Dataset, interval time.Duration) (mutation *stream.Mutation[ReplayState], isNew bool) {
	return stream.Mutate(r.pool, id, func(ctx context.Context) <-chan ReplayState {
		return Replay(ctx, ds, interval)
	})
}

// Replay emits growing prefixes of ds, one distinct time per interval. The
// first state is emitted immediately and the last one has Done set.
func Replay(ctx context.Context, ds Dataset, interval time.Duration) <-chan ReplayState {
	out := make(chan ReplayState)
	go func() {
		defer close(out)
		times := ds.Times()
		if len(times) == 0 {
			select {
			case out <- ReplayState{Data: ds, Done: true}:
			case <-ctx.Done():
			}
			return
		}
		log.WithFields(logrus.Fields{
			"steps":    len(times),
			"interval": interval,
		}).Debug("replaying dataset")
		ticker := time.NewTicker(max(interval, time.Millisecond))
		defer ticker.Stop()
		for i, t := range times {
			if i > 0 {
				select {
				case <-ticker.C:
				case <-ctx.Done():
					return
				}
			}
			state := ReplayState{
				Data:  ds.Until(t),
				Step:  i + 1,
				Total: len(times),
				Done:  i == len(times)-1,
			}
			select {
			case out <- state:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

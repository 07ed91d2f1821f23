package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-motion/internal/config"
	"github.com/grindlemire/go-motion/screen"
)

const defaultMaxFrames = 10000

func (c *CLI) traceCommand() *cobra.Command {
	var (
		realtime  bool
		maxFrames int
	)

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Replay the configured script and print every frame",
		Long: `Replays the [[steps]] of the configuration against its items and prints
the position offset and opacity of every row each frame, until the script
is done and every animation settled.

By default frames advance on a simulated clock, so the output is the same
on every run. --realtime plays the script on the wall clock instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if realtime {
				return c.traceRealtime(cmd.Context(), cfg, cmd.OutOrStdout())
			}
			frames, err := traceSimulated(cfg, cmd.OutOrStdout(), maxFrames)
			if err != nil {
				return err
			}
			c.Logger.Info("trace settled", "frames", frames)
			return nil
		},
	}

	cmd.Flags().BoolVar(&realtime, "realtime", false, "advance frames on the wall clock")
	cmd.Flags().IntVar(&maxFrames, "max-frames", defaultMaxFrames, "give up after this many simulated frames")
	return cmd
}

// traceSimulated replays cfg on a manual clock, one frame per tick, and
// returns the number of frames it took to settle.
func traceSimulated(cfg config.Config, out io.Writer, maxFrames int) (int, error) {
	clock := screen.NewManualClock(time.Time{})
	stage, list := newScene(cfg, screen.WithClock(clock))
	script := config.NewScript(cfg)
	frame := time.Second / time.Duration(cfg.FPS)

	script.Advance(0)
	if err := list.Set(rowsFor(script.Keys())); err != nil {
		return 0, err
	}
	writeFrame(out, 0, 0, stage.Snapshot())

	var elapsed time.Duration
	for i := 1; i <= maxFrames; i++ {
		clock.Advance(frame)
		elapsed += frame

		if err := step(stage, list); err != nil {
			return i, err
		}
		if script.Advance(elapsed) {
			if err := list.Set(rowsFor(script.Keys())); err != nil {
				return i, err
			}
		}
		writeFrame(out, i, elapsed, stage.Snapshot())

		if script.Done() && settled(stage, list) {
			return i, nil
		}
	}
	return maxFrames, fmt.Errorf("trace did not settle within %d frames", maxFrames)
}

// traceRealtime replays cfg on the wall clock. The frame loop and the
// script driver run side by side; script edits reach the loop through a
// watched channel.
func (c *CLI) traceRealtime(ctx context.Context, cfg config.Config, out io.Writer) error {
	stage, list := newScene(cfg)
	script := config.NewScript(cfg)
	script.Advance(0)
	if err := list.Set(rowsFor(script.Keys())); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := screen.NewLoop(stage, nil, screen.WithFPS(cfg.FPS))
	edits := make(chan edit)
	scriptDone := script.Done()

	var (
		start    = time.Now()
		frame    int
		frameErr error
	)
	frames := screen.OnFrame(loop.FrameDuration(), func() {
		frame++
		if err := step(stage, list); err != nil {
			frameErr = err
			loop.Stop()
			return
		}
		writeFrame(out, frame, time.Since(start), stage.Snapshot())
		if scriptDone && settled(stage, list) {
			loop.Stop()
		}
	})
	apply := screen.Watch(edits, func(e edit) {
		scriptDone = e.last
		if err := list.Set(rowsFor(e.keys)); err != nil {
			frameErr = err
			loop.Stop()
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return loop.Run(gctx, frames, apply)
	})
	g.Go(func() error {
		for {
			at, ok := script.NextAt()
			if !ok {
				return nil
			}
			select {
			case <-time.After(time.Until(start.Add(at))):
			case <-gctx.Done():
				return nil
			}
			script.Advance(time.Since(start))
			select {
			case edits <- edit{keys: script.Keys(), last: script.Done()}:
				c.Logger.Debug("script step", "keys", script.Keys())
			case <-gctx.Done():
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if frameErr != nil {
		return frameErr
	}
	c.Logger.Info("trace settled", "frames", frame, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// edit carries a script change from the driver to the loop.
type edit struct {
	keys []string
	last bool
}

// step advances the stage one frame and lays the list out again if a row
// left it.
func step(stage *screen.Stage, list *screen.List) error {
	stage.Tick()
	if list.NeedsPass() {
		return list.Refresh()
	}
	return nil
}

func settled(stage *screen.Stage, list *screen.List) bool {
	return stage.Idle() && !list.NeedsPass()
}

// writeFrame prints one line per frame:
//
//	0003 50ms a(y=0 dy=+0.50 op=1.00) b(...)
func writeFrame(out io.Writer, i int, elapsed time.Duration, rows []screen.RowState) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d %v", i, elapsed.Round(time.Millisecond))
	for _, r := range rows {
		fmt.Fprintf(&b, " %s(y=%d dy=%+.2f op=%.2f)", r.Key, r.Top, r.Offset.Y, r.Opacity)
	}
	b.WriteByte('\n')
	io.WriteString(out, b.String())
}

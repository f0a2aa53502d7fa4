package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tuannh982/boundedstack/utils/collections"

	log "github.com/sirupsen/logrus"
)

// maxLineBytes bounds a single scanned line. Anything past the element
// limit is rejected by the stack anyway.
const maxLineBytes = 1 << 20

type options struct {
	verbose        bool
	maxElementSize string
}

func (o *options) logger(out io.Writer) *log.Entry {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	logger.Level = log.InfoLevel
	if o.verbose {
		logger.Level = log.DebugLevel
	}
	return logger.WithFields(log.Fields{"app": "boundedstack"})
}

func (o *options) newStack(logger *log.Entry) (collections.Stack[[]byte], error) {
	size, err := humanize.ParseBytes(o.maxElementSize)
	if err != nil {
		return nil, fmt.Errorf("invalid --max-element-size %q: %w", o.maxElementSize, err)
	}
	if size == 0 || size > collections.MaxElementByteSize {
		return nil, fmt.Errorf("--max-element-size must be between 1B and %s, got %s",
			humanize.IBytes(collections.MaxElementByteSize), humanize.IBytes(size))
	}
	return collections.New(collections.Options[[]byte]{
		Owner:  collections.NewByteOwner(int(size)),
		Logger: logger.WithFields(log.Fields{"component": "stack"}),
	})
}

// capacityTracker follows a stack's capacity across operations.
type capacityTracker struct {
	last    int
	peak    int
	grows   int
	shrinks int
}

func newCapacityTracker(s collections.Stack[[]byte]) *capacityTracker {
	return &capacityTracker{last: s.Capacity(), peak: s.Capacity()}
}

func (t *capacityTracker) observe(s collections.Stack[[]byte]) {
	c := s.Capacity()
	switch {
	case c > t.last:
		t.grows++
	case c < t.last:
		t.shrinks++
	}
	if c > t.peak {
		t.peak = c
	}
	t.last = c
}

type fillResult struct {
	pushed      int
	skipped     int
	interrupted bool
}

// fill pushes every line of r onto s until r is exhausted, the stack is
// full, or done is closed.
func fill(s collections.Stack[[]byte], r io.Reader, done <-chan struct{}, tracker *capacityTracker, logger *log.Entry) (fillResult, error) {
	var res fillResult
	lines := make(chan []byte)
	errc := make(chan error, 1)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- []byte(scanner.Text()):
			case <-quit:
				return
			}
		}
		errc <- scanner.Err()
	}()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return res, <-errc
			}
			err := s.Push(line)
			if errors.Is(err, collections.ErrElementTooLarge) {
				res.skipped++
				logger.WithError(err).WithFields(log.Fields{"line": res.pushed + res.skipped}).Warn("skipping line")
				continue
			}
			if err != nil {
				return res, fmt.Errorf("push line %d: %w", res.pushed+res.skipped+1, err)
			}
			res.pushed++
			tracker.observe(s)
		case <-done:
			logger.Info("interrupted, flushing lines read so far")
			res.interrupted = true
			return res, nil
		}
	}
}

func drain(s collections.Stack[[]byte], w io.Writer, tracker *capacityTracker) error {
	for !s.IsEmpty() {
		line, err := s.Pop()
		if err != nil {
			return err
		}
		tracker.observe(s)
		if w == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}

type runner func(cmd *cobra.Command, s collections.Stack[[]byte], res fillResult, tracker *capacityTracker) error

func (o *options) run(cmd *cobra.Command, args []string, fn runner) error {
	logger := o.logger(cmd.ErrOrStderr())
	s, err := o.newStack(logger)
	if err != nil {
		return err
	}
	defer s.Destroy()
	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()
	done := make(chan struct{})
	go hookShutdownSignal(done)
	tracker := newCapacityTracker(s)
	res, err := fill(s, in, done, tracker, logger)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{"pushed": res.pushed, "skipped": res.skipped, "capacity": s.Capacity()}).Debug("input consumed")
	return fn(cmd, s, res, tracker)
}

func newReverseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse [file]",
		Short: "Print the lines of a file (or stdin) in reverse order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, func(cmd *cobra.Command, s collections.Stack[[]byte], _ fillResult, tracker *capacityTracker) error {
				return drain(s, cmd.OutOrStdout(), tracker)
			})
		},
	}
}

func newStatsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Report how the stack resized while holding the input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, func(cmd *cobra.Command, s collections.Stack[[]byte], res fillResult, tracker *capacityTracker) error {
				if err := drain(s, nil, tracker); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "pushed:         %s\n", humanize.Comma(int64(res.pushed)))
				fmt.Fprintf(out, "skipped:        %s\n", humanize.Comma(int64(res.skipped)))
				fmt.Fprintf(out, "peak capacity:  %s\n", humanize.Comma(int64(tracker.peak)))
				fmt.Fprintf(out, "grows:          %d\n", tracker.grows)
				fmt.Fprintf(out, "shrinks:        %d\n", tracker.shrinks)
				fmt.Fprintf(out, "final capacity: %s\n", humanize.Comma(int64(s.Capacity())))
				return nil
			})
		},
	}
}

//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevButtons reads key presses from every /dev/input/event* device.
type EvdevButtons struct {
	Glob   string
	Logger Logger

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewEvdevButtons(logger Logger) *EvdevButtons {
	return &EvdevButtons{Glob: "/dev/input/event*", Logger: logger, ch: make(chan Event, 16)}
}

func (b *EvdevButtons) Events() <-chan Event { return b.ch }

// Start is best-effort: without input devices it logs and returns nil.
func (b *EvdevButtons) Start(ctx context.Context) error {
	paths, err := filepath.Glob(b.Glob)
	if err != nil || len(paths) == 0 {
		b.infof("no evdev devices found")
		return nil
	}
	ctx, b.cancel = context.WithCancel(ctx)
	for _, path := range paths {
		b.wg.Add(1)
		go func(p string) {
			defer b.wg.Done()
			b.read(ctx, p)
		}(path)
	}
	return nil
}

func (b *EvdevButtons) Stop() error {
	b.once.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		b.wg.Wait()
		close(b.ch)
	})
	return nil
}

func (b *EvdevButtons) read(ctx context.Context, path string) {
	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		b.errorf("open %s: %v", path, err)
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 64*eventSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, e := range decode(buf[:n], tvSize) {
			select {
			case b.ch <- e:
			case <-ctx.Done():
				return
			}
		}
	}
}

// decode parses a run of input_event records.
func decode(buf []byte, tvSize int) []Event {
	eventSize := tvSize + 8
	var out []Event
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if e, ok := keyPress(typ, code, value); ok {
			out = append(out, e)
		}
	}
	return out
}

func (b *EvdevButtons) infof(format string, args ...interface{}) {
	if b.Logger != nil {
		b.Logger.Infof("input", format, args...)
	}
}

func (b *EvdevButtons) errorf(format string, args ...interface{}) {
	if b.Logger != nil {
		b.Logger.Errorf("input", format, args...)
	}
}

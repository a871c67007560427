package reader

import (
	"context"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/tuilog/logtail/internal/logline"
	"github.com/tuilog/logtail/internal/worker"
)

// PodReader streams one Docker container's stdout/stderr via
// ContainerLogs and treats each line as a candidate JSON record — the
// in-repo stand-in for a Kubernetes pod tailed with `oc logs -f`
// (spec §4.F, §6). The multiplexed-frame parsing below (8-byte header,
// big-endian size, growable buffer) is the same scheme the teacher's
// LogBroker.streamContainer used for raw terminal output; here it feeds
// logline.Parse instead of a renderer.
type PodReader struct {
	base
	client      *client.Client
	containerID string
}

// NewPodReader builds a PodReader for containerID, reporting as source
// podName.
func NewPodReader(dockerClient *client.Client, containerID, podName string, commands chan<- worker.Command) *PodReader {
	return &PodReader{
		base:        newBase(podName, commands),
		client:      dockerClient,
		containerID: containerID,
	}
}

const (
	podReadMinBuf = 8192
	podReadMaxBuf = 1024 * 1024
)

// Run streams until Stop is called, reconnecting on stream errors with a
// one-second backoff (mirrors the teacher's own reconnect pause); when the
// stream cannot be opened at all, the pause before the next attempt is two
// seconds.
func (p *PodReader) Run() {
	defer close(p.stopped)

	for !p.stop.Load() {
		p.streamOnce()
		if p.stop.Load() {
			return
		}
		time.Sleep(time.Second)
	}
}

func (p *PodReader) streamOnce() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs, err := p.client.ContainerLogs(ctx, p.containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
		Tail:       "0",
	})
	if err != nil {
		time.Sleep(time.Second)
		return
	}
	defer logs.Close()

	// A follow-mode Read blocks until the container writes again, so the
	// stop flag is polled every 100ms here and cancels the stream.
	go func() {
		for !p.stop.Load() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(100 * time.Millisecond):
			}
		}
		cancel()
	}()

	buf := make([]byte, podReadMinBuf)
	var incomplete []byte

	for !p.stop.Load() {
		n, err := logs.Read(buf)
		if n == 0 && err == nil {
			// Spec §4.F: zero bytes returned, sleep 100ms and retry.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		if n > 0 {
			data := append(incomplete, buf[:n]...)
			incomplete = nil
			offset := 0

			for offset < len(data) {
				if offset+8 > len(data) {
					incomplete = append([]byte(nil), data[offset:]...)
					break
				}

				size := int(data[offset+4])<<24 | int(data[offset+5])<<16 | int(data[offset+6])<<8 | int(data[offset+7])
				if size < 0 || size > podReadMaxBuf {
					// Corrupted frame: discard the rest of this chunk
					// rather than propagate (spec §7 parse-error policy).
					break
				}

				frameEnd := offset + 8 + size
				if frameEnd > len(data) {
					incomplete = append([]byte(nil), data[offset:]...)
					if len(incomplete)+podReadMinBuf > len(buf) && len(buf) < podReadMaxBuf {
						buf = make([]byte, min(len(buf)*2, podReadMaxBuf))
					}
					break
				}

				line := data[offset+8 : frameEnd]
				if record, ok := logline.Parse(line); ok {
					if !p.insert(record) {
						return
					}
				}
				offset = frameEnd
			}
		}

		if err != nil {
			return
		}
	}
}

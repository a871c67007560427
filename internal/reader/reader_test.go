package reader

import (
	"os/exec"
	"testing"
	"time"

	"github.com/tuilog/logtail/internal/logline"
	"github.com/tuilog/logtail/internal/worker"
)

func TestBaseInsertStampsSource(t *testing.T) {
	commands := make(chan worker.Command, 1)
	b := newBase("my-source", commands)

	ok := b.insert(logline.Record{Value: "hello"})
	if !ok {
		t.Fatal("insert() = false, want true on an open channel")
	}

	cmd := <-commands
	ins, ok := cmd.(worker.InsertJSON)
	if !ok {
		t.Fatalf("command type = %T, want worker.InsertJSON", cmd)
	}
	if ins.Record.Source != "my-source" {
		t.Errorf("Source = %q, want %q", ins.Record.Source, "my-source")
	}
}

func TestBaseInsertOnClosedChannelReportsDeadAndSetsStop(t *testing.T) {
	commands := make(chan worker.Command)
	close(commands)
	b := newBase("my-source", commands)

	if ok := b.insert(logline.Record{Value: "x"}); ok {
		t.Error("insert() on a closed channel should report false")
	}
	if !b.stop.Load() {
		t.Error("insert() on a closed channel should set the stop flag")
	}
}

func TestTopicReaderSourceIsSpaceJoined(t *testing.T) {
	r := NewTopicReader([]string{"orders", "payments"}, make(chan worker.Command, 1))
	if r.Source() != "orders payments" {
		t.Errorf("Source() = %q, want %q", r.Source(), "orders payments")
	}
}

func TestTopicReaderParsesAndForwardsRecords(t *testing.T) {
	commands := make(chan worker.Command, 16)
	r := &TopicReader{
		base: newBase("fake-topic", commands),
		buildCmd: func() *exec.Cmd {
			script := `printf '{"@timestamp":"2024-01-01T00:00:00Z","message":"one","level":"INFO","application":"svc"}\n'` +
				`; printf '{"@timestamp":"2024-01-01T00:00:01Z","message":"two","level":"WARN","application":"svc"}\n'`
			return exec.Command("sh", "-c", script)
		},
	}

	go r.Run()

	var got []logline.Record
	for len(got) < 2 {
		select {
		case cmd := <-commands:
			if ins, ok := cmd.(worker.InsertJSON); ok {
				got = append(got, ins.Record)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for records, got %d so far", len(got))
		}
	}
	r.Stop()

	if got[0].Value != "one" || got[0].Level != logline.INFO {
		t.Errorf("first record = %+v, want Value=one Level=INFO", got[0])
	}
	if got[1].Value != "two" || got[1].Level != logline.WARN {
		t.Errorf("second record = %+v, want Value=two Level=WARN", got[1])
	}
	for _, r := range got {
		if r.Source != "fake-topic" {
			t.Errorf("Source = %q, want %q", r.Source, "fake-topic")
		}
	}
}

func TestTopicReaderSkipsMalformedLines(t *testing.T) {
	commands := make(chan worker.Command, 16)
	r := &TopicReader{
		base: newBase("fake-topic", commands),
		buildCmd: func() *exec.Cmd {
			script := `printf 'not json at all\n'` +
				`; printf '{"@timestamp":"2024-01-01T00:00:00Z","message":"ok","level":"INFO","application":"svc"}\n'`
			return exec.Command("sh", "-c", script)
		},
	}

	go r.Run()
	defer r.Stop()

	select {
	case cmd := <-commands:
		ins, ok := cmd.(worker.InsertJSON)
		if !ok {
			t.Fatalf("command type = %T, want worker.InsertJSON", cmd)
		}
		if ins.Record.Value != "ok" {
			t.Errorf("Value = %q, want %q (malformed line should have been skipped)", ins.Record.Value, "ok")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the valid record")
	}
}

func TestTopicReaderStopTerminatesLongRunningChild(t *testing.T) {
	commands := make(chan worker.Command, 16)
	r := &TopicReader{
		base: newBase("fake-topic", commands),
		buildCmd: func() *exec.Cmd {
			return exec.Command("sh", "-c", "while true; do sleep 0.05; done")
		},
	}

	go r.Run()
	// Give the child a moment to actually start before asking it to stop.
	time.Sleep(50 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop() did not return in time; child process may not have been killed")
	}
}

package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/service"
)

func readUntil(t *testing.T, r *bufio.Reader, prefix string) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line)
		}
	}
}

func TestForwardStreamsBusEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := New()
	bus := service.NewEventBus()
	go h.Run(ctx)
	go h.Forward(ctx, bus)

	srv := httptest.NewServer(h)
	defer srv.Close()

	reqCtx, reqCancel := context.WithCancel(ctx)
	defer reqCancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	body := bufio.NewReader(resp.Body)
	readUntil(t, body, ": connected")

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	// Forward subscribes asynchronously; publish until an event arrives
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				bus.Publish(service.Event{Type: service.EventStatementsImported, Payload: 3})
			}
		}
	}()

	assert.Equal(t, "id: 1", readUntil(t, body, "id:"))
	assert.Equal(t, "event: statements_imported", readUntil(t, body, "event:"))
	assert.Equal(t, `data: {"type":"statements_imported","payload":3}`, readUntil(t, body, "data:"))
}

func TestRunClosesClientsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := New()
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	s := &subscriber{id: "test", frames: make(chan []byte, 1)}
	h.join <- s
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-stopped
	assert.Equal(t, 0, h.ClientCount())
	_, ok := <-s.frames
	assert.False(t, ok)

	// A stopped hub refuses new connections
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDispatchHonorsFilter(t *testing.T) {
	h := New()
	all := &subscriber{id: "all", frames: make(chan []byte, 4)}
	reloads := &subscriber{
		id:     "reloads",
		filter: parseFilter("ontology_reloaded, report_generated"),
		frames: make(chan []byte, 4),
	}
	h.subscribers[all] = struct{}{}
	h.subscribers[reloads] = struct{}{}

	h.dispatch(service.Event{Type: service.EventStatementsImported})
	h.dispatch(service.Event{Type: service.EventOntologyReloaded})

	assert.Len(t, all.frames, 2)
	require.Len(t, reloads.frames, 1)
	frame := string(<-reloads.frames)
	assert.True(t, strings.HasPrefix(frame, "id: 2\nevent: ontology_reloaded\n"), frame)
}

func TestParseFilter(t *testing.T) {
	assert.Nil(t, parseFilter(""))
	assert.Equal(t, map[service.EventType]bool{
		service.EventReportGenerated: true,
	}, parseFilter(" report_generated ,,"))
}

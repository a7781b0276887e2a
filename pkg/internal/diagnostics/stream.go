package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"nhooyr.io/websocket"
)

// StreamServer pushes quality snapshots to any number of websocket
// subscribers. It backs the bench-side live view used while tuning a
// calibration set: each completed engine run is published as one JSON text
// message.
//
// A subscriber that cannot keep up is dropped rather than allowed to stall
// the publisher.
type StreamServer struct {
	componentMetadata types.ComponentMetadata

	writeTimeout  time.Duration
	subscriberCap int

	mu          sync.Mutex
	subscribers map[chan []byte]struct{}

	loggersLock sync.Mutex
	loggers     []types.Logger
}

// StreamOption configures a StreamServer.
type StreamOption func(*StreamServer)

// StreamWithLogger attaches loggers to the stream server.
func StreamWithLogger(loggers ...types.Logger) StreamOption {
	return func(s *StreamServer) {
		s.loggersLock.Lock()
		defer s.loggersLock.Unlock()
		s.loggers = append(s.loggers, loggers...)
	}
}

// StreamWithWriteTimeout bounds how long a single subscriber write may block.
func StreamWithWriteTimeout(d time.Duration) StreamOption {
	return func(s *StreamServer) {
		s.writeTimeout = d
	}
}

// StreamWithComponentMetadata sets the name and ID used in log output.
func StreamWithComponentMetadata(name string, id string) StreamOption {
	return func(s *StreamServer) {
		s.componentMetadata.Name = name
		s.componentMetadata.ID = id
	}
}

// NewStreamServer creates a snapshot stream server.
func NewStreamServer(options ...StreamOption) *StreamServer {
	s := &StreamServer{
		componentMetadata: types.ComponentMetadata{
			Type: "STREAM_SERVER",
		},
		writeTimeout:  5 * time.Second,
		subscriberCap: 16,
		subscribers:   make(map[chan []byte]struct{}),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Publish encodes the snapshot and fans it out to every current subscriber.
// Subscribers whose buffers are full miss this snapshot.
func (s *StreamServer) Publish(snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- payload:
		default:
			s.notify(types.WarnLevel,
				"Subscriber buffer full, snapshot dropped",
				"component", s.componentMetadata,
				"event", "Publish",
			)
		}
	}
	return nil
}

// SubscriberCount reports the number of connected subscribers.
func (s *StreamServer) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// ServeHTTP upgrades the request to a websocket and streams snapshots to it
// until the client disconnects or a write fails.
func (s *StreamServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.notify(types.ErrorLevel,
			"Websocket accept failed",
			"component", s.componentMetadata,
			"event", "ServeHTTP",
			"error", err.Error(),
		)
		return
	}
	defer c.Close(websocket.StatusInternalError, "stream closed")

	ch := s.addSubscriber()
	defer s.removeSubscriber(ch)

	s.notify(types.InfoLevel,
		"Subscriber connected",
		"component", s.componentMetadata,
		"event", "ServeHTTP",
		"remoteAddr", r.RemoteAddr,
	)

	// CloseRead keeps the read side pumped so pings and the client close
	// frame are handled; the returned context ends when the client goes
	// away.
	ctx := c.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			c.Close(websocket.StatusNormalClosure, "")
			return
		case payload := <-ch:
			if err := s.write(ctx, c, payload); err != nil {
				s.notify(types.InfoLevel,
					"Subscriber write failed, dropping connection",
					"component", s.componentMetadata,
					"event", "ServeHTTP",
					"error", err.Error(),
				)
				return
			}
		}
	}
}

func (s *StreamServer) write(ctx context.Context, c *websocket.Conn, payload []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	return c.Write(writeCtx, websocket.MessageText, payload)
}

func (s *StreamServer) addSubscriber() chan []byte {
	ch := make(chan []byte, s.subscriberCap)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = struct{}{}
	return ch
}

func (s *StreamServer) removeSubscriber(ch chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, ch)
}

func (s *StreamServer) notify(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	s.loggersLock.Lock()
	loggers := make([]types.Logger, len(s.loggers))
	copy(loggers, s.loggers)
	s.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		}
	}
}

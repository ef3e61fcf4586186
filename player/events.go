package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/babua-dev/clipper/log"
)

// EventCallback receives mpv notifications. For property changes name is the
// property and data its new value; for other events name is the event type and
// data the reason string, if any.
type EventCallback func(name string, data any)

// observedProperties are the properties the clip engine derives state from.
var observedProperties = []string{
	"pause",
	"eof-reached",
	"paused-for-cache",
	"speed",
}

// EventListener holds a persistent IPC connection on which property
// observers are registered; mpv only notifies the client that asked.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
	}
}

// Start connects, registers the observers and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observedProperties {
		payload, err := json.Marshal(ipcCommand{
			Command:   []any{"observe_property", i + 1, name},
			RequestID: requestSeq.Add(1),
		})
		if err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true

	go el.readLoop()

	log.Infof("mpv event listener started on %s (observing: %v)", el.socketPath, observedProperties)
	return nil
}

// Stop terminates the event listener.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	reader := bufio.NewReader(el.conn)
	var partial []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		line, err := reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				// a line cut by the deadline continues on the next read
				partial = append(partial, line...)
				continue
			}
			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		if len(partial) > 0 {
			line = append(partial, line...)
			partial = nil
		}
		el.processEvent(line)
	}
}

// processEvent parses and dispatches a single mpv message. Command replies are ignored.
func (el *EventListener) processEvent(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil || msg.Event == "" || el.callback == nil {
		return
	}

	switch msg.Event {
	case "property-change":
		if msg.Name != "" {
			el.callback(msg.Name, msg.Data)
		}
	default:
		el.callback(msg.Event, msg.Reason)
	}
}

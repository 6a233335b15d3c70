// Package events publishes committed cell edits on a ZeroMQ PUB socket, so
// any number of subscribers (a notebook-style dashboard, a logging sidecar,
// a second terminal) can observe a sheet's activity without going through
// the websocket hub or the terminal itself.
//
// This is a narrowed descendant of the teacher's kernel package: the same
// zmq4 socket-construction pattern, stripped of the Jupyter five-socket
// wire protocol (heartbeat, shell, control, stdin, HMAC-signed frames) down
// to the one concern that generalizes to a spreadsheet core — a publish-only
// event feed.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-zeromq/zmq4"
)

// CellChanged is the JSON payload published after every committed edit.
type CellChanged struct {
	Cell      string `json:"cell"`
	Value     int32  `json:"value"`
	Timestamp string `json:"timestamp"`
}

// Publisher owns a single PUB socket; Publish adds no locking of its own
// around sends.
type Publisher struct {
	sock zmq4.Socket
}

// Listen binds a PUB socket at addr (e.g. "tcp://127.0.0.1:5555"). Callers
// attach the resulting Publisher to a Sheet via sheet.OnCommit.
func Listen(addr string) (*Publisher, error) {
	sock := zmq4.NewPub(context.Background())
	if err := sock.Listen(addr); err != nil {
		return nil, fmt.Errorf("events: failed to bind %s: %w", addr, err)
	}
	log.Printf("events: publishing on %s", addr)
	return &Publisher{sock: sock}, nil
}

// Publish sends one cell-changed event. Errors are logged, not returned:
// a stalled or absent subscriber must never block or fail a sheet edit.
func (p *Publisher) Publish(cellName string, value int32) {
	payload, err := json.Marshal(CellChanged{
		Cell:      cellName,
		Value:     value,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Printf("events: marshal failed: %v", err)
		return
	}
	if err := p.sock.Send(zmq4.NewMsg(payload)); err != nil {
		log.Printf("events: send failed: %v", err)
	}
}

// Close releases the underlying socket.
func (p *Publisher) Close() error { return p.sock.Close() }

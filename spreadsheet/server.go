package spreadsheet

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local dev / demo use only
	},
}

// Server is the websocket collaborator from spec §4.8, generalizing the
// teacher's spreadsheet/server.go hub to the Grid/Graph/Sheet core: clients
// submit raw "DST=EXPR" lines and receive cell_updated/reset broadcasts.
type Server struct {
	Sheet   *Sheet
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

// NewServer wires a websocket hub onto sheet, attaching itself as sheet's
// OnCommit hook so every committed edit broadcasts exactly the cells Recalc
// actually touched.
func NewServer(sheet *Sheet) *Server {
	s := &Server{
		Sheet:   sheet,
		clients: make(map[*websocket.Conn]bool),
	}
	sheet.OnCommit(s.broadcastAffected)
	return s
}

// UpdateRequest is a client-to-server message, per spec §4.8.
type UpdateRequest struct {
	Type string `json:"type"`
	Line string `json:"line,omitempty"`
}

// UpdateResponse is a server-to-client message, per spec §4.8.
type UpdateResponse struct {
	Type    string `json:"type"`
	Cell    string `json:"cell,omitempty"`
	Display string `json:"display,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error:", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	s.sendInitialState(conn)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var req UpdateRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			log.Println("json error:", err)
			continue
		}

		switch req.Type {
		case "update_cell":
			if err := s.Sheet.Submit(req.Line); err != nil {
				s.sendTo(conn, UpdateResponse{Type: "cell_updated", Error: err.Error()})
			}
			// on success, the OnCommit hook already broadcast the affected cells.
		case "clear":
			s.clearAll()
		}
	}
}

// clearAll reassigns every non-zero cell back to its zero constant and
// resets every client's view. There is no bulk-clear primitive in the core
// itself (spec §4 only ever exposes single-cell Submit), so this walks the
// grid cell by cell.
func (s *Server) clearAll() {
	rows, cols := s.Sheet.Rows(), s.Sheet.Cols()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			name := s.Sheet.Name(row, col)
			if s.Sheet.ValueAt(row, col) != 0 {
				_ = s.Sheet.Submit(name + "=0")
			}
		}
	}
	s.broadcastReset()
}

func (s *Server) sendInitialState(conn *websocket.Conn) {
	rows, cols := s.Sheet.Rows(), s.Sheet.Cols()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			resp := s.cellResponse(row, col)
			if err := conn.WriteJSON(resp); err != nil {
				log.Printf("initial state write failed: %v", err)
				return
			}
		}
	}
}

// broadcastAffected is installed as the Sheet's OnCommit hook: affected is
// the exact recalculation order Graph.Recalc computed for the edit that just
// committed, so every recalculated cell (and only those) gets re-sent, even
// one whose value came out the same.
func (s *Server) broadcastAffected(affected []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, idx := range affected {
		row, col := s.Sheet.grid.RowCol(idx)
		resp := s.cellResponse(row, col)
		for client := range s.clients {
			if err := client.WriteJSON(resp); err != nil {
				log.Printf("broadcast write failed: %v", err)
				_ = client.Close()
				delete(s.clients, client)
			}
		}
	}
}

func (s *Server) broadcastReset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	resetMsg := UpdateResponse{Type: "reset"}
	for client := range s.clients {
		if err := client.WriteJSON(resetMsg); err != nil {
			log.Printf("reset write failed: %v", err)
			_ = client.Close()
			delete(s.clients, client)
		}
	}
}

func (s *Server) sendTo(conn *websocket.Conn, resp UpdateResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("write failed: %v", err)
	}
}

func (s *Server) cellResponse(row, col int) UpdateResponse {
	return UpdateResponse{
		Type:    "cell_updated",
		Cell:    s.Sheet.Name(row, col),
		Display: s.Sheet.Display(row, col),
	}
}

// Start serves the websocket endpoint on addr. Unlike the teacher's hub,
// which serves a bundled Karl Sheets static UI, this binary ships no
// browser client (spec's expanded scope is the wire protocol and terminal
// console, not a web front end) — connect with any websocket client that
// speaks the UpdateRequest/UpdateResponse shapes above.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWebSocket)

	log.Printf("gridcalc websocket server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

package emulator

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/glintlab/glint/internal/logging"
	"github.com/glintlab/glint/internal/protocol"
)

// Server emulates one Yeelight-protocol bulb: it serves the TCP command
// protocol and can answer multicast search probes. Used by glint-emu
// for development and by package tests as a stub device.
type Server struct {
	// ID is the stable identity announced in discovery replies
	ID string

	// Model is the announced bulb model
	Model string

	// Name is the announced user-assigned name
	Name string

	// Group is the multicast group probes arrive on (default
	// discovery group when empty)
	Group string

	// ReplyDelay delays every command reply, for exercising client
	// deadlines
	ReplyDelay time.Duration

	mu    sync.Mutex
	power bool

	ln      net.Listener
	udp     *net.UDPConn
	closing chan struct{}
	wg      sync.WaitGroup
}

// New creates an emulated bulb with the given identity
func New(id, model string) *Server {
	return &Server{
		ID:      id,
		Model:   model,
		Name:    "glint-emu",
		closing: make(chan struct{}),
	}
}

// Power returns the emulated power state
func (s *Server) Power() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.power
}

// SetPower sets the emulated power state directly (test setup)
func (s *Server) SetPower(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.power = on
}

// Start begins serving the command protocol on addr (e.g. ":55443", or
// "127.0.0.1:0" to pick a free port). Non-blocking.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.ln = ln

	s.wg.Add(1)
	go s.acceptLoop()

	logging.Info("Emulated bulb listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("id", s.ID),
	)
	return nil
}

// Addr returns the actual command listener address, valid after Start
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Location returns the discovery location value for this bulb
func (s *Server) Location() string {
	return "yeelight://" + s.Addr()
}

// Close stops the listeners and waits for in-flight handlers
func (s *Server) Close() error {
	close(s.closing)
	if s.ln != nil {
		_ = s.ln.Close()
	}
	if s.udp != nil {
		_ = s.udp.Close()
	}
	s.wg.Wait()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.closing:
				return
			default:
				logging.Warn("Accept failed", zap.Error(err))
				return
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// handleConn serves newline-delimited JSON commands on one connection
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer func() { _ = conn.Close() }()

	remoteAddr := conn.RemoteAddr().String()
	logging.LogConnection(remoteAddr, "accepted")

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			logging.LogConnection(remoteAddr, "closed")
			return
		}

		var cmd protocol.Command
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &cmd); err != nil {
			logging.Warn("Unparsable command",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			continue
		}

		reply := s.execute(&cmd)

		if s.ReplyDelay > 0 {
			time.Sleep(s.ReplyDelay)
		}

		data, err := json.Marshal(reply)
		if err != nil {
			continue
		}
		data = append(data, '\r', '\n')
		if _, err := conn.Write(data); err != nil {
			return
		}
	}
}

// execute applies one command to the emulated state
func (s *Server) execute(cmd *protocol.Command) *protocol.Reply {
	switch cmd.Method {
	case protocol.MethodSetPower:
		if len(cmd.Params) < 1 {
			return errorReply(cmd.ID, -5001, "invalid params")
		}
		state, _ := cmd.Params[0].(string)
		if state != protocol.PowerOn && state != protocol.PowerOff {
			return errorReply(cmd.ID, -5001, "invalid params")
		}
		s.mu.Lock()
		s.power = state == protocol.PowerOn
		s.mu.Unlock()
		return &protocol.Reply{ID: cmd.ID, Result: []any{"ok"}}

	case protocol.MethodGetProp:
		s.mu.Lock()
		power := s.power
		s.mu.Unlock()

		result := make([]any, 0, len(cmd.Params))
		for _, p := range cmd.Params {
			prop, _ := p.(string)
			switch prop {
			case "power":
				if power {
					result = append(result, protocol.PowerOn)
				} else {
					result = append(result, protocol.PowerOff)
				}
			default:
				// Unknown properties answer with an empty string,
				// matching real firmware
				result = append(result, "")
			}
		}
		return &protocol.Reply{ID: cmd.ID, Result: result}

	default:
		return errorReply(cmd.ID, -1, "method not supported")
	}
}

func errorReply(id, code int, message string) *protocol.Reply {
	return &protocol.Reply{
		ID:    id,
		Error: &protocol.ReplyError{Code: code, Message: message},
	}
}

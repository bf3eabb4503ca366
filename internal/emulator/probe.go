package emulator

import (
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/glintlab/glint/internal/discovery"
	"github.com/glintlab/glint/internal/logging"
	"github.com/glintlab/glint/internal/protocol"
)

// ServeProbes joins the discovery multicast group and answers every
// matching M-SEARCH probe with this bulb's announcement. Non-blocking;
// Close stops the responder. Start must have been called first so the
// announced location is valid.
func (s *Server) ServeProbes() error {
	group := s.Group
	if group == "" {
		group = discovery.MulticastGroup
	}

	addr, err := net.ResolveUDPAddr("udp4", group)
	if err != nil {
		return fmt.Errorf("invalid multicast group %q: %w", group, err)
	}

	conn, err := net.ListenMulticastUDP("udp4", nil, addr)
	if err != nil {
		return fmt.Errorf("failed to join multicast group %s: %w", group, err)
	}
	s.udp = conn

	s.wg.Add(1)
	go s.probeLoop(conn)

	logging.Info("Emulated bulb answering probes", zap.String("group", group))
	return nil
}

func (s *Server) probeLoop(conn *net.UDPConn) {
	defer s.wg.Done()

	buf := make([]byte, 2048)
	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-s.closing:
			default:
				logging.Warn("Probe read failed", zap.Error(err))
			}
			return
		}

		if !isSearchProbe(string(buf[:n])) {
			continue
		}

		logging.Debug("Probe received", zap.String("remote_addr", src.String()))

		if _, err := conn.WriteToUDP([]byte(s.announcement()), src); err != nil {
			logging.Warn("Failed to answer probe",
				zap.String("remote_addr", src.String()),
				zap.Error(err),
			)
		}
	}
}

// isSearchProbe reports whether a datagram is an M-SEARCH for bulbs.
// The ST header must name the bulb service type; anything else on the
// group (e.g. generic SSDP traffic) is ignored.
func isSearchProbe(raw string) bool {
	if !strings.HasPrefix(raw, "M-SEARCH") {
		return false
	}
	headers := protocol.ParseHeaders(raw)
	return headers.Get("st") == discovery.SearchTarget
}

// announcement builds the discovery reply header block
func (s *Server) announcement() string {
	power := protocol.PowerOff
	if s.Power() {
		power = protocol.PowerOn
	}

	return "HTTP/1.1 200 OK\r\n" +
		"Cache-Control: max-age=3600\r\n" +
		"Location: " + s.Location() + "\r\n" +
		"Server: glint-emu\r\n" +
		"id: " + s.ID + "\r\n" +
		"model: " + s.Model + "\r\n" +
		"name: " + s.Name + "\r\n" +
		"power: " + power + "\r\n" +
		"support: get_prop set_power\r\n"
}

package discovery

import (
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/ipv4"

	"github.com/glintlab/glint/internal/logging"
	"github.com/glintlab/glint/internal/protocol"
)

const (
	// MulticastGroup is the well-known multicast address and port that
	// Yeelight-protocol bulbs listen on for search probes
	MulticastGroup = "239.255.255.250:1982"

	// LocalPort is the fixed local UDP port the scanner binds for
	// receiving replies
	LocalPort = 43210

	// SearchTarget is the service type announced in the probe's ST header
	SearchTarget = "wifi_bulb"

	// MulticastTTL is the outbound TTL on probe datagrams. Intentionally
	// generous for typical LAN topologies with a few routed segments.
	MulticastTTL = 128

	// DefaultWindow is the default reply-collection window, measured
	// from socket bind
	DefaultWindow = 1 * time.Second

	// maxDatagramSize is the receive buffer size per reply datagram
	maxDatagramSize = 8192
)

// Scanner performs one multicast discovery cycle per Scan call. Each
// cycle owns its socket exclusively; Scanners are cheap and need not be
// reused.
type Scanner struct {
	// Window is how long replies are collected, measured from socket
	// bind. A reply arriving before the probe is sent still counts,
	// since the socket is already listening.
	Window time.Duration

	// Group is the multicast "host:port" to probe (default MulticastGroup)
	Group string

	// Port is the local UDP receive port (default LocalPort)
	Port int
}

// NewScanner creates a scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Window: DefaultWindow,
		Group:  MulticastGroup,
		Port:   LocalPort,
	}
}

// Scan broadcasts one search probe and collects every reply that
// arrives before the window elapses. Returns the parsed records in
// arrival order; a bulb replying twice yields two records, and
// deduplication is left to reconciliation by identity.
//
// Bind, join, and send failures are returned as errors. An asynchronous
// socket error after replies have already arrived returns the partial
// records alongside the error: one network hiccup should not void
// replies already received.
//
// There is no external cancellation; the window is the only cutoff.
func (s *Scanner) Scan() ([]*Record, error) {
	group, err := net.ResolveUDPAddr("udp4", s.Group)
	if err != nil {
		return nil, fmt.Errorf("invalid multicast group %q: %w", s.Group, err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: s.Port})
	if err != nil {
		return nil, fmt.Errorf("failed to bind discovery socket on port %d: %w", s.Port, err)
	}
	defer func() { _ = conn.Close() }()

	// The window runs from bind, not from probe send
	deadline := time.Now().Add(s.Window)
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set collection window: %w", err)
	}

	if err := s.joinGroup(conn, group); err != nil {
		return nil, err
	}

	probe := probeMessage(s.Group)
	if _, err := conn.WriteToUDP([]byte(probe), group); err != nil {
		return nil, fmt.Errorf("failed to send discovery probe: %w", err)
	}

	logging.Debug("Discovery probe sent",
		zap.String("group", s.Group),
		zap.Duration("window", s.Window),
	)

	return s.collect(conn)
}

// joinGroup joins the multicast group on every eligible interface and
// sets the outbound multicast options. Joining succeeds if at least one
// interface accepts; the OS-default interface is the fallback. A
// unicast group (loopback testing against an emulator) needs no join.
func (s *Scanner) joinGroup(conn *net.UDPConn, group *net.UDPAddr) error {
	if !group.IP.IsMulticast() {
		return nil
	}

	pc := ipv4.NewPacketConn(conn)
	groupAddr := &net.UDPAddr{IP: group.IP}

	joined := false
	ifaces, err := net.Interfaces()
	if err == nil {
		for i := range ifaces {
			ifi := &ifaces[i]
			if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagMulticast == 0 {
				continue
			}
			if err := pc.JoinGroup(ifi, groupAddr); err != nil {
				logging.Debug("Multicast join failed on interface",
					zap.String("interface", ifi.Name),
					zap.Error(err),
				)
				continue
			}
			joined = true
		}
	}

	if !joined {
		if err := pc.JoinGroup(nil, groupAddr); err != nil {
			return fmt.Errorf("failed to join multicast group %s: %w", group.IP, err)
		}
	}

	// Best effort: some stacks reject these on a bound unicast socket
	_ = pc.SetMulticastTTL(MulticastTTL)
	_ = pc.SetMulticastLoopback(false)

	return nil
}

// collect reads reply datagrams until the window expires. Every
// datagram becomes one record; parsing never fails, it only yields a
// smaller header map.
func (s *Scanner) collect(conn *net.UDPConn) ([]*Record, error) {
	records := make([]*Record, 0)
	buf := make([]byte, maxDatagramSize)

	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if os.IsTimeout(err) {
				// Window expiry: the normal way a cycle ends
				return records, nil
			}
			// Async socket error: preserve what was already collected
			return records, fmt.Errorf("discovery socket error: %w", err)
		}

		logging.LogDatagram(src.String(), buf[:n])

		records = append(records, &Record{
			Headers:    protocol.ParseHeaders(string(buf[:n])),
			Addr:       src.String(),
			ReceivedAt: time.Now(),
		})
	}
}

// probeMessage builds the HTTP-style multicast search request
func probeMessage(group string) string {
	return "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: " + group + "\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"ST: " + SearchTarget + "\r\n"
}

// ScanForBulbs is a convenience function to run one discovery cycle
// with a custom window
func ScanForBulbs(window time.Duration) ([]*Record, error) {
	scanner := NewScanner()
	scanner.Window = window
	return scanner.Scan()
}

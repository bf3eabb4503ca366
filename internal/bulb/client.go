package bulb

import (
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/glintlab/glint/internal/logging"
	"github.com/glintlab/glint/internal/protocol"
)

const (
	// DefaultTimeout is the reply deadline, measured from connection open
	DefaultTimeout = 5 * time.Second

	// LocationScheme is the URL scheme bulbs advertise in their
	// discovery Location header
	LocationScheme = "yeelight"

	// maxReplySize is the receive buffer for one reply chunk
	maxReplySize = 8192
)

// Client issues commands to one bulb over transient TCP connections.
// Each Send opens a connection, writes one command, waits for one
// correlated reply, and tears the connection down. At most one
// outstanding command per connection; callers needing concurrency must
// serialize per device.
type Client struct {
	// Addr is the bulb's control endpoint as "host:port"
	Addr string

	// Timeout bounds the wait for a reply, from connection open
	Timeout time.Duration
}

// NewClient creates a client for the given location. The location is
// validated up front: a missing or unparsable value is a precondition
// failure, reported before any connection attempt.
func NewClient(location string) (*Client, error) {
	addr, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	return &Client{
		Addr:    addr,
		Timeout: DefaultTimeout,
	}, nil
}

// ParseLocation extracts "host:port" from a discovery location value.
// Accepts "yeelight://host:port" or a bare "host:port".
func ParseLocation(location string) (string, error) {
	if location == "" {
		return "", NewPreconditionError(location, "device has no control address")
	}

	addr := location
	if idx := strings.Index(addr, "://"); idx >= 0 {
		addr = addr[idx+3:]
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil || host == "" || port == "" {
		return "", NewPreconditionError(location, "control address is not host:port")
	}

	return net.JoinHostPort(host, port), nil
}

// readResult carries the first inbound chunk (or the read error) from
// the reader goroutine to the racing select
type readResult struct {
	data []byte
	err  error
}

// Send issues one command and waits for its reply.
//
// The reply wait races against the deadline: whichever fires first
// determines the outcome. A timer firing after the reply arrived has no
// effect; data arriving after the deadline closed the socket is
// discarded. The connection is closed exactly once on every exit path.
//
// The first inbound chunk is treated as the complete reply. A reply
// split across two TCP deliveries is not reassembled; in practice bulb
// replies fit one segment.
func (c *Client) Send(cmd *protocol.Command) (*protocol.Reply, error) {
	payload, err := cmd.Marshal()
	if err != nil {
		return nil, &CommandError{
			Type:    ErrTypePrecondition,
			Message: "command is not serializable",
			Addr:    c.Addr,
			Err:     err,
		}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	conn, err := net.DialTimeout("tcp", c.Addr, timeout)
	if err != nil {
		return nil, newConnectError(c.Addr, "failed to connect to device", err)
	}

	// Close-once guard: success, decode failure, and timeout paths all
	// release the same socket
	var once sync.Once
	closeConn := func() { once.Do(func() { _ = conn.Close() }) }
	defer closeConn()

	logging.Debug("Sending command",
		zap.String("addr", c.Addr),
		zap.String("method", cmd.Method),
		zap.Any("params", cmd.Params),
	)

	if _, err := conn.Write(payload); err != nil {
		return nil, newConnectError(c.Addr, "failed to write command", err)
	}

	// Reader goroutine delivers the first inbound chunk; buffered so a
	// late result after the deadline is dropped, not leaked
	replyCh := make(chan readResult, 1)
	go func() {
		buf := make([]byte, maxReplySize)
		n, err := conn.Read(buf)
		if err != nil {
			replyCh <- readResult{err: err}
			return
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		replyCh <- readResult{data: data}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-replyCh:
		if res.err != nil {
			return nil, newConnectError(c.Addr, "connection lost awaiting reply", res.err)
		}
		reply, perr := protocol.ParseReply(res.data)
		if perr != nil {
			return nil, newDecodeError(c.Addr, perr)
		}
		if reply.Error != nil {
			return reply, newDeviceError(c.Addr, reply.Error)
		}
		logging.Debug("Command reply",
			zap.String("addr", c.Addr),
			zap.String("method", cmd.Method),
			zap.Any("result", reply.Result),
		)
		return reply, nil

	case <-timer.C:
		// Deadline won the race: force-close so the reader unblocks.
		// Its late result lands in the buffered channel and is discarded.
		closeConn()
		logging.Warn("Command timed out",
			zap.String("addr", c.Addr),
			zap.String("method", cmd.Method),
			zap.Duration("timeout", timeout),
		)
		return nil, newTimeoutError(c.Addr, timeout)
	}
}

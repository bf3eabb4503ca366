package discovery

import (
	"fmt"
	"strings"
	"time"

	"github.com/glintlab/glint/internal/protocol"
)

// Record represents one discovery reply from a bulb, parsed into its
// header fields. Records are immutable after parse and live for one
// discovery cycle only; reconciliation consumes them immediately.
type Record struct {
	// Headers holds every parsed field of the reply
	Headers protocol.Headers

	// Addr is the UDP source address the reply arrived from
	Addr string

	// ReceivedAt is when the reply datagram arrived
	ReceivedAt time.Time
}

// ID returns the bulb's stable identity (e.g. "0x0000000007fb9200"),
// or an empty string if the reply carried none. A record without an id
// cannot be reconciled and is dropped before reconciliation.
func (r *Record) ID() string {
	return r.Headers.Get("id")
}

// Model returns the bulb model (e.g. "color", "mono", "stripe")
func (r *Record) Model() string {
	return r.Headers.Get("model")
}

// Location returns the control endpoint advertised by the bulb, in the
// form "yeelight://host:port"
func (r *Record) Location() string {
	return r.Headers.Get("location")
}

// Name returns the user-assigned bulb name, if any
func (r *Record) Name() string {
	return r.Headers.Get("name")
}

// Power returns the advertised power state ("on" or "off")
func (r *Record) Power() string {
	return r.Headers.Get("power")
}

// Support returns the list of methods the bulb advertises, parsed from
// the space-separated "support" header
func (r *Record) Support() []string {
	return strings.Fields(r.Headers.Get("support"))
}

// Supports reports whether the bulb advertises the given method
func (r *Record) Supports(method string) bool {
	for _, m := range r.Support() {
		if m == method {
			return true
		}
	}
	return false
}

// String returns a human-readable string representation of the record
func (r *Record) String() string {
	return fmt.Sprintf("Bulb %s (%s) at %s", r.ID(), r.Model(), r.Location())
}

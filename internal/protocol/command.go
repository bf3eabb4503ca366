package protocol

import (
	"encoding/json"
	"fmt"
)

// Command methods understood by Yeelight-protocol bulbs
const (
	// MethodSetPower switches the bulb on or off.
	// Params: ["on"|"off", effect, transition-ms]
	MethodSetPower = "set_power"

	// MethodGetProp queries named properties.
	// Params: property names, e.g. ["power"]
	MethodGetProp = "get_prop"
)

// Power state values used in set_power params and get_prop results
const (
	PowerOn  = "on"
	PowerOff = "off"
)

// EffectSmooth is the transition effect used for power changes
const EffectSmooth = "smooth"

// RequestID is the request identifier written on every command.
//
// The protocol carries an id for request/reply correlation, but the
// control channel permits at most one outstanding command per
// connection, so a constant id is sufficient. See bulb.Client.
const RequestID = 1

// Command is one control request: a method name plus an ordered
// parameter sequence. It serializes to a single JSON object terminated
// by CRLF.
type Command struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

// NewCommand creates a command with the fixed request id
func NewCommand(method string, params ...any) *Command {
	if params == nil {
		params = []any{}
	}
	return &Command{
		ID:     RequestID,
		Method: method,
		Params: params,
	}
}

// Marshal serializes the command to one JSON object followed by CRLF,
// ready to be written to the wire in a single send
func (c *Command) Marshal() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command %q: %w", c.Method, err)
	}
	return append(data, '\r', '\n'), nil
}

// String returns a debug representation of the command
func (c *Command) String() string {
	return fmt.Sprintf("Command{Method=%s, Params=%v}", c.Method, c.Params)
}

// ReplyError is the error object a bulb returns for a rejected command
type ReplyError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ReplyError) Error() string {
	return fmt.Sprintf("device error %d: %s", e.Code, e.Message)
}

// Reply is one decoded control reply. Exactly one of Result or Error is
// set on a well-formed reply; notifications from chatty firmware carry
// neither and are treated as empty results.
type Reply struct {
	ID     int         `json:"id"`
	Result []any       `json:"result,omitempty"`
	Error  *ReplyError `json:"error,omitempty"`
}

// ParseReply decodes a single JSON reply object. Trailing CRLF is
// tolerated. Returns an error if the payload is not valid JSON.
func ParseReply(data []byte) (*Reply, error) {
	var reply Reply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}
	return &reply, nil
}

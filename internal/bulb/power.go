package bulb

import (
	"time"

	"github.com/glintlab/glint/internal/protocol"
)

// DefaultTransition is the smooth-transition duration used for power
// changes when the caller has no preference
const DefaultTransition = 500 * time.Millisecond

// SetPower switches the bulb on or off with a smooth transition of the
// given duration
func (c *Client) SetPower(on bool, transition time.Duration) error {
	state := protocol.PowerOff
	if on {
		state = protocol.PowerOn
	}
	if transition <= 0 {
		transition = DefaultTransition
	}

	cmd := protocol.NewCommand(protocol.MethodSetPower,
		state, protocol.EffectSmooth, int(transition.Milliseconds()))
	_, err := c.Send(cmd)
	return err
}

// PowerState queries the bulb's power property. The reply's first
// result value "on" maps to true; any other value, or an absent result,
// maps to false.
func (c *Client) PowerState() (bool, error) {
	reply, err := c.Send(protocol.NewCommand(protocol.MethodGetProp, "power"))
	if err != nil {
		return false, err
	}
	if len(reply.Result) == 0 {
		return false, nil
	}
	value, _ := reply.Result[0].(string)
	return value == protocol.PowerOn, nil
}

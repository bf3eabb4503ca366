// Package bulb implements the control channel to one Yeelight-protocol
// bulb.
//
// A command invocation is a transient round-trip: open a TCP connection
// to the endpoint from the bulb's discovery Location header, write one
// CRLF-terminated JSON command, wait for one correlated reply, close
// the connection. The reply wait is bounded by a deadline (5 seconds
// from connection open by default) that races the first inbound chunk;
// whichever fires first decides the outcome, and the loser is
// suppressed.
//
// # Outcomes
//
// Every failure is a typed *CommandError:
//
//   - ErrTypePrecondition: address missing or unparsable; no socket
//     operation was attempted
//   - ErrTypeConnect: connection could not be established or was lost
//   - ErrTypeDecode: reply payload was not valid JSON
//   - ErrTypeTimeout: deadline fired before a reply chunk arrived
//   - ErrTypeDevice: the bulb answered with an error object
//
// The socket is released exactly once on every path. No retries; the
// caller decides what a failure means.
//
// # Usage Example
//
//	client, err := bulb.NewClient("yeelight://192.168.1.40:55443")
//	if err != nil {
//	    return err
//	}
//	if err := client.SetPower(true, 500*time.Millisecond); err != nil {
//	    return err
//	}
//	on, err := client.PowerState()
//
// # Limitations
//
// The first inbound TCP chunk is treated as the complete reply; replies
// split across deliveries are not reassembled. Commands on one client
// must be serialized by the caller: the request id is constant, so
// concurrent replies are not distinguishable.
package bulb

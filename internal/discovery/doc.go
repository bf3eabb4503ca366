// Package discovery locates Yeelight-protocol bulbs on the local network.
//
// Bulbs announce themselves via an SSDP-style protocol on the multicast
// group 239.255.255.250:1982. A discovery cycle binds a local UDP
// socket, joins the group, sends one HTTP-style M-SEARCH probe with the
// service type "wifi_bulb", and collects replies for a fixed window
// (1 second by default).
//
// # Discovery Process
//
//  1. Bind UDP port 43210 and join 239.255.255.250 on each eligible interface
//  2. Send one M-SEARCH probe (HOST, MAN, ST headers, CRLF line endings)
//  3. Parse each reply datagram into a Record (header key/value block)
//  4. Close the socket when the window elapses and return the records
//
// # Usage Example
//
//	records, err := discovery.ScanForBulbs(time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range records {
//	    fmt.Printf("Found: %s (%s) at %s\n", rec.ID(), rec.Model(), rec.Location())
//	}
//
// # Semantics
//
// The window is measured from socket bind, so a reply that races ahead
// of the probe still counts. Records are returned in arrival order and
// are not deduplicated here; a bulb that replies twice yields two
// records, and the accessory package collapses them by identity. An
// asynchronous socket error preserves the records already collected.
//
// # Network Requirements
//
//   - Multicast support on the network interface
//   - Bulbs on the same local network segment, with "LAN Control"
//     enabled in the vendor app
//   - Firewall must allow UDP 1982 (outbound) and 43210 (inbound)
package discovery

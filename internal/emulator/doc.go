// Package emulator implements a software stand-in for one
// Yeelight-protocol bulb.
//
// The emulator serves the CRLF-framed JSON command protocol (set_power,
// get_prop) over TCP and optionally answers discovery probes on the
// multicast group, so the full scan-then-control flow can be exercised
// without hardware. glint-emu wraps it as a binary; package tests use
// it as a stub device on a loopback port.
//
//	emu := emulator.New("0x0000000007fb9200", "color")
//	if err := emu.Start("127.0.0.1:0"); err != nil { ... }
//	defer emu.Close()
//	client, _ := bulb.NewClient(emu.Location())
//
// ReplyDelay makes the emulator answer slowly, which is how the
// client's deadline handling is tested.
package emulator

package bulb

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/glintlab/glint/internal/emulator"
	"github.com/glintlab/glint/internal/protocol"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
		wantErr  bool
	}{
		{
			name:     "scheme prefixed",
			location: "yeelight://192.168.1.40:55443",
			want:     "192.168.1.40:55443",
		},
		{
			name:     "bare host:port",
			location: "192.168.1.40:55443",
			want:     "192.168.1.40:55443",
		},
		{
			name:     "hostname with port",
			location: "yeelight://bulb.local:55443",
			want:     "bulb.local:55443",
		},
		{
			name:     "empty location",
			location: "",
			wantErr:  true,
		},
		{
			name:     "missing port",
			location: "yeelight://192.168.1.40",
			wantErr:  true,
		},
		{
			name:     "missing host",
			location: "yeelight://:55443",
			wantErr:  true,
		},
		{
			name:     "garbage",
			location: "yeelight://////",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.location)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLocation(%q) error = %v, wantErr %v", tt.location, err, tt.wantErr)
			}
			if tt.wantErr {
				// Unusable addresses are precondition failures
				if TypeOf(err) != ErrTypePrecondition {
					t.Errorf("ParseLocation(%q) error type = %v, want precondition", tt.location, TypeOf(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseLocation(%q) = %q, want %q", tt.location, got, tt.want)
			}
		})
	}
}

func startEmulator(t *testing.T) *emulator.Server {
	t.Helper()
	emu := emulator.New("0x0000000007fb9200", "color")
	if err := emu.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("failed to start emulator: %v", err)
	}
	t.Cleanup(func() { _ = emu.Close() })
	return emu
}

func TestClient_SetPowerAndPowerState(t *testing.T) {
	emu := startEmulator(t)

	client, err := NewClient(emu.Location())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if err := client.SetPower(true, 50*time.Millisecond); err != nil {
		t.Fatalf("SetPower(true) error = %v", err)
	}
	if !emu.Power() {
		t.Error("emulator power = off, want on")
	}

	on, err := client.PowerState()
	if err != nil {
		t.Fatalf("PowerState() error = %v", err)
	}
	if !on {
		t.Error("PowerState() = false, want true")
	}

	if err := client.SetPower(false, 50*time.Millisecond); err != nil {
		t.Fatalf("SetPower(false) error = %v", err)
	}
	on, err = client.PowerState()
	if err != nil {
		t.Fatalf("PowerState() error = %v", err)
	}
	if on {
		t.Error("PowerState() = true, want false")
	}
}

func TestClient_ReplyBeforeDeadlineSucceeds(t *testing.T) {
	emu := startEmulator(t)
	emu.ReplyDelay = 100 * time.Millisecond
	emu.SetPower(true)

	client, err := NewClient(emu.Location())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.Timeout = time.Second

	on, err := client.PowerState()
	if err != nil {
		t.Fatalf("PowerState() error = %v, want success for a reply inside the deadline", err)
	}
	if !on {
		t.Error("PowerState() = false, want true")
	}
}

func TestClient_DeadlineWinsRace(t *testing.T) {
	emu := startEmulator(t)
	emu.ReplyDelay = 400 * time.Millisecond

	client, err := NewClient(emu.Location())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.Timeout = 100 * time.Millisecond

	start := time.Now()
	_, err = client.Send(protocol.NewCommand(protocol.MethodGetProp, "power"))
	elapsed := time.Since(start)

	if !IsTimeout(err) {
		t.Fatalf("Send() error = %v, want timeout", err)
	}
	if elapsed >= 400*time.Millisecond {
		t.Errorf("Send() blocked %v, deadline should have fired at ~100ms", elapsed)
	}
}

func TestClient_ConnectFailure(t *testing.T) {
	// Grab a free port, then close the listener so nothing accepts
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	client, err := NewClient(addr)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.Timeout = 500 * time.Millisecond

	_, err = client.Send(protocol.NewCommand(protocol.MethodGetProp, "power"))
	if TypeOf(err) != ErrTypeConnect {
		t.Errorf("Send() error type = %v, want connect", TypeOf(err))
	}
}

// rawServer answers the first command line on each connection with a
// fixed payload, for exercising decode handling
func rawServer(t *testing.T, payload string) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start raw server: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				if _, err := bufio.NewReader(conn).ReadString('\n'); err != nil {
					return
				}
				_, _ = conn.Write([]byte(payload))
			}(conn)
		}
	}()

	return ln.Addr().String()
}

func TestClient_UnparsableReplyIsDecodeError(t *testing.T) {
	addr := rawServer(t, "this is not json\r\n")

	client, err := NewClient(addr)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.Timeout = time.Second

	_, err = client.Send(protocol.NewCommand(protocol.MethodGetProp, "power"))
	if TypeOf(err) != ErrTypeDecode {
		t.Errorf("Send() error type = %v, want decode", TypeOf(err))
	}
}

func TestClient_DeviceErrorReply(t *testing.T) {
	emu := startEmulator(t)

	client, err := NewClient(emu.Location())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	reply, err := client.Send(protocol.NewCommand("set_rgb", 255))
	if TypeOf(err) != ErrTypeDevice {
		t.Fatalf("Send() error type = %v, want device", TypeOf(err))
	}
	// The decoded reply is still available alongside the typed failure
	if reply == nil || reply.Error == nil {
		t.Error("Send() should return the decoded error reply")
	}
}

func TestNewClient_Precondition(t *testing.T) {
	_, err := NewClient("")
	if TypeOf(err) != ErrTypePrecondition {
		t.Errorf("NewClient(\"\") error type = %v, want precondition", TypeOf(err))
	}
}

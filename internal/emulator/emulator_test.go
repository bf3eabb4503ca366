package emulator

import (
	"bufio"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/glintlab/glint/internal/protocol"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	emu := New("0x0000000007fb9200", "color")
	if err := emu.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = emu.Close() })
	return emu
}

// roundTrip sends one command line and decodes the reply line
func roundTrip(t *testing.T, addr string, line string) *protocol.Reply {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(line + "\r\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	raw, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var reply protocol.Reply
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &reply); err != nil {
		t.Fatalf("reply %q is not JSON: %v", raw, err)
	}
	return &reply
}

func TestServer_SetPower(t *testing.T) {
	emu := startServer(t)

	reply := roundTrip(t, emu.Addr(), `{"id":1,"method":"set_power","params":["on","smooth",500]}`)
	if reply.Error != nil {
		t.Fatalf("set_power replied with error: %v", reply.Error)
	}
	if len(reply.Result) != 1 || reply.Result[0] != "ok" {
		t.Errorf("set_power result = %v, want [ok]", reply.Result)
	}
	if !emu.Power() {
		t.Error("emulator state should be on")
	}

	reply = roundTrip(t, emu.Addr(), `{"id":1,"method":"set_power","params":["off","smooth",500]}`)
	if reply.Error != nil {
		t.Fatalf("set_power off replied with error: %v", reply.Error)
	}
	if emu.Power() {
		t.Error("emulator state should be off")
	}
}

func TestServer_SetPower_InvalidParams(t *testing.T) {
	emu := startServer(t)

	reply := roundTrip(t, emu.Addr(), `{"id":1,"method":"set_power","params":["dim"]}`)
	if reply.Error == nil {
		t.Error("invalid power state should be rejected")
	}

	reply = roundTrip(t, emu.Addr(), `{"id":1,"method":"set_power","params":[]}`)
	if reply.Error == nil {
		t.Error("missing params should be rejected")
	}
}

func TestServer_GetProp(t *testing.T) {
	emu := startServer(t)
	emu.SetPower(true)

	reply := roundTrip(t, emu.Addr(), `{"id":1,"method":"get_prop","params":["power"]}`)
	if reply.Error != nil {
		t.Fatalf("get_prop replied with error: %v", reply.Error)
	}
	if len(reply.Result) != 1 || reply.Result[0] != "on" {
		t.Errorf("get_prop result = %v, want [on]", reply.Result)
	}

	// Unknown properties answer with an empty string
	reply = roundTrip(t, emu.Addr(), `{"id":1,"method":"get_prop","params":["power","bogus"]}`)
	if len(reply.Result) != 2 || reply.Result[1] != "" {
		t.Errorf("get_prop result = %v, want [on \"\"]", reply.Result)
	}
}

func TestServer_UnknownMethod(t *testing.T) {
	emu := startServer(t)

	reply := roundTrip(t, emu.Addr(), `{"id":1,"method":"set_rgb","params":[255]}`)
	if reply.Error == nil {
		t.Fatal("unknown method should reply with an error object")
	}
	if reply.Error.Message != "method not supported" {
		t.Errorf("error message = %q", reply.Error.Message)
	}
}

func TestServer_MultipleCommandsPerConnection(t *testing.T) {
	emu := startServer(t)

	conn, err := net.DialTimeout("tcp", emu.Addr(), time.Second)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	for i, line := range []string{
		`{"id":1,"method":"set_power","params":["on","smooth",500]}`,
		`{"id":1,"method":"get_prop","params":["power"]}`,
	} {
		if _, err := conn.Write([]byte(line + "\r\n")); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		if _, err := reader.ReadString('\n'); err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
	}
}

func TestIsSearchProbe(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "bulb search probe",
			raw:  "M-SEARCH * HTTP/1.1\r\nHOST: 239.255.255.250:1982\r\nMAN: \"ssdp:discover\"\r\nST: wifi_bulb\r\n",
			want: true,
		},
		{
			name: "generic ssdp probe is ignored",
			raw:  "M-SEARCH * HTTP/1.1\r\nHOST: 239.255.255.250:1900\r\nST: ssdp:all\r\n",
			want: false,
		},
		{
			name: "announcement is not a probe",
			raw:  "HTTP/1.1 200 OK\r\nST: wifi_bulb\r\n",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSearchProbe(tt.raw); got != tt.want {
				t.Errorf("isSearchProbe() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnnouncement(t *testing.T) {
	emu := startServer(t)
	emu.SetPower(true)

	headers := protocol.ParseHeaders(emu.announcement())

	if got := headers.Get("id"); got != "0x0000000007fb9200" {
		t.Errorf("announcement id = %q", got)
	}
	if got := headers.Get("model"); got != "color" {
		t.Errorf("announcement model = %q", got)
	}
	if got := headers.Get("power"); got != "on" {
		t.Errorf("announcement power = %q", got)
	}
	if got := headers.Get("location"); got != "yeelight://"+emu.Addr() {
		t.Errorf("announcement location = %q", got)
	}
	if !strings.Contains(headers.Get("support"), "set_power") {
		t.Errorf("announcement support = %q", headers.Get("support"))
	}
}

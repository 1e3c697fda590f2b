package zk

import (
	"net"
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeTerminal mensimulasikan mesin absensi di loopback UDP. handler dipanggil
// untuk tiap request dan mengembalikan daftar datagram balasan.
type fakeTerminal struct {
	t    *testing.T
	conn net.PacketConn
}

func newFakeTerminal(t *testing.T, handler func(req Frame) [][]byte) *fakeTerminal {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 65535)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			req, err := DecodeFrame(buf[:n])
			if err != nil {
				continue
			}
			for _, reply := range handler(req) {
				conn.WriteTo(reply, addr)
			}
		}
	}()

	return &fakeTerminal{t: t, conn: conn}
}

func (f *fakeTerminal) client() *Client {
	addr := f.conn.LocalAddr().(*net.UDPAddr)
	c := NewClient("127.0.0.1", addr.Port, "")
	c.timeout = 200 * time.Millisecond
	return c
}

func TestClientConnect(t *testing.T) {
	term := newFakeTerminal(t, func(req Frame) [][]byte {
		if req.Command == CmdConnect {
			return [][]byte{EncodeFrame(CmdAckOK, 77, 3, nil)}
		}
		return nil
	})

	c := term.client()
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Disconnect()

	if c.sessionID != 77 {
		t.Errorf("sessionID = %d, mau 77", c.sessionID)
	}
	if c.replyID != 3 {
		t.Errorf("replyID = %d, mau 3", c.replyID)
	}
}

func TestClientConnectRefused(t *testing.T) {
	term := newFakeTerminal(t, func(req Frame) [][]byte {
		// Balasan selain ACK_OK dianggap gagal
		return [][]byte{EncodeFrame(CmdExit, 0, 0, nil)}
	})

	c := term.client()
	if err := c.Connect(); err == nil {
		t.Fatal("Connect harus gagal kalau balasan bukan ACK_OK")
	}
}

func TestClientConnectTimeout(t *testing.T) {
	term := newFakeTerminal(t, func(req Frame) [][]byte {
		return nil // diam, tidak pernah membalas
	})

	c := term.client()
	if err := c.Connect(); err == nil {
		t.Fatal("Connect harus gagal saat perangkat tidak merespons")
	}
}

func TestClientFetchAttendanceReassembly(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2024, 5, 1, h, m, 0, 0, time.UTC)
	}

	// Tiga record dipecah ke dua datagram: satu setengah record di datagram
	// pertama, sisanya di datagram kedua, lalu frame kosong penutup.
	var payload []byte
	payload = append(payload, buildRecord(1, at(7, 58), 0, 0)...)
	payload = append(payload, buildRecord(2, at(8, 2), 0, 0)...)
	payload = append(payload, buildRecord(3, at(16, 3), 1, 0)...)
	split := RecordSize + RecordSize/2

	term := newFakeTerminal(t, func(req Frame) [][]byte {
		switch req.Command {
		case CmdConnect:
			return [][]byte{EncodeFrame(CmdAckOK, 1, 0, nil)}
		case CmdGetAttendance:
			return [][]byte{
				EncodeFrame(CmdAckOK, 1, 1, payload[:split]),
				EncodeFrame(CmdAckOK, 1, 2, payload[split:]),
				EncodeFrame(CmdAckOK, 1, 3, nil), // penutup
			}
		}
		return nil
	})

	c := term.client()
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Disconnect()

	records, failed, err := c.FetchAttendance(nil)
	if err != nil {
		t.Fatalf("FetchAttendance: %v", err)
	}
	if failed != 0 {
		t.Errorf("decode gagal = %d, mau 0", failed)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, mau 3", len(records))
	}
	for i, want := range []string{"1", "2", "3"} {
		if records[i].TerminalUserID != want {
			t.Errorf("records[%d].TerminalUserID = %q, mau %q", i, records[i].TerminalUserID, want)
		}
	}
	if records[2].PunchType != "out" {
		t.Errorf("records[2].PunchType = %q, mau out", records[2].PunchType)
	}
}

func TestClientFetchAttendanceSinceFilter(t *testing.T) {
	old := time.Date(2024, 4, 30, 17, 0, 0, 0, time.UTC)
	fresh := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	var payload []byte
	payload = append(payload, buildRecord(1, old, 1, 0)...)
	payload = append(payload, buildRecord(1, fresh, 0, 0)...)

	term := newFakeTerminal(t, func(req Frame) [][]byte {
		switch req.Command {
		case CmdConnect:
			return [][]byte{EncodeFrame(CmdAckOK, 1, 0, nil)}
		case CmdGetAttendance:
			return [][]byte{
				EncodeFrame(CmdAckOK, 1, 1, payload),
				EncodeFrame(CmdAckOK, 1, 2, nil),
			}
		}
		return nil
	})

	c := term.client()
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Disconnect()

	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	records, _, err := c.FetchAttendance(&since)
	if err != nil {
		t.Fatalf("FetchAttendance: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, mau 1 (punch lama terfilter)", len(records))
	}
	if !records[0].PunchTime.Equal(fresh) {
		t.Errorf("PunchTime = %v, mau %v", records[0].PunchTime, fresh)
	}
}

func TestClientFetchAttendanceBadChecksumCounted(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	good := EncodeFrame(CmdAckOK, 1, 1, buildRecord(1, at, 0, 0))

	bad := EncodeFrame(CmdAckOK, 1, 2, buildRecord(2, at, 0, 0))
	bad[len(bad)-1] ^= 0xFF // rusak checksum-nya

	term := newFakeTerminal(t, func(req Frame) [][]byte {
		switch req.Command {
		case CmdConnect:
			return [][]byte{EncodeFrame(CmdAckOK, 1, 0, nil)}
		case CmdGetAttendance:
			return [][]byte{good, bad, EncodeFrame(CmdAckOK, 1, 3, nil)}
		}
		return nil
	})

	c := term.client()
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Disconnect()

	records, failed, err := c.FetchAttendance(nil)
	if err != nil {
		t.Fatalf("FetchAttendance: %v", err)
	}
	if failed != 1 {
		t.Errorf("decode gagal = %d, mau 1", failed)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, mau 1", len(records))
	}
}

func TestClientFetchWithoutConnect(t *testing.T) {
	c := NewClient("127.0.0.1", 4370, "")
	if _, _, err := c.FetchAttendance(nil); err != ErrNotConnected {
		t.Fatalf("err = %v, mau ErrNotConnected", err)
	}
}

func TestClientSequenceAcrossCommands(t *testing.T) {
	// Reply id harus mengikuti nilai terakhir dari perangkat
	var mu sync.Mutex
	var lastSeen uint16
	term := newFakeTerminal(t, func(req Frame) [][]byte {
		mu.Lock()
		lastSeen = req.ReplyID
		mu.Unlock()
		switch req.Command {
		case CmdConnect:
			return [][]byte{EncodeFrame(CmdAckOK, 5, 9, nil)}
		case CmdGetDeviceInfo:
			return [][]byte{EncodeFrame(CmdAckOK, 5, 10, []byte("Ver 6.60 " + strconv.Itoa(int(req.SessionID))))}
		}
		return nil
	})

	c := term.client()
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Disconnect()

	info, err := c.GetDeviceInfo()
	if err != nil {
		t.Fatalf("GetDeviceInfo: %v", err)
	}
	if info != "Ver 6.60 5" {
		t.Errorf("info = %q", info)
	}
	mu.Lock()
	defer mu.Unlock()
	if lastSeen != 9 {
		t.Errorf("reply id yang dikirim = %d, mau 9 (dari handshake)", lastSeen)
	}
}

package zk

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"
)

var (
	ErrNotConnected = errors.New("zk: belum terhubung ke perangkat")
	ErrHandshake    = errors.New("zk: perangkat menolak koneksi")
)

// DefaultTimeout membatasi setiap operasi baca di socket.
const DefaultTimeout = 5 * time.Second

// Client berbicara dengan satu mesin absensi lewat satu socket UDP.
// Tidak aman dipakai dari banyak goroutine sekaligus: protokolnya stateful
// (session id dan reply id), jadi satu perangkat = satu Client = satu urutan
// connect -> fetch -> disconnect.
type Client struct {
	ip       string
	port     int
	password string
	timeout  time.Duration

	conn      net.Conn
	sessionID uint16
	replyID   uint16
	connected bool
}

func NewClient(ip string, port int, password string) *Client {
	return &Client{
		ip:       ip,
		port:     port,
		password: password,
		timeout:  DefaultTimeout,
	}
}

// Connect membuka socket dan melakukan handshake CONNECT. Session id dan
// reply id awal diambil dari balasan ACK perangkat.
func (c *Client) Connect() error {
	conn, err := net.DialTimeout("udp", fmt.Sprintf("%s:%d", c.ip, c.port), c.timeout)
	if err != nil {
		return fmt.Errorf("zk: gagal membuka socket ke %s:%d: %w", c.ip, c.port, err)
	}
	c.conn = conn

	reply, err := c.exchange(CmdConnect, nil)
	if err != nil {
		c.conn.Close()
		c.conn = nil
		return fmt.Errorf("zk: handshake ke %s:%d gagal: %w", c.ip, c.port, err)
	}
	if reply.Command != CmdAckOK {
		c.conn.Close()
		c.conn = nil
		return fmt.Errorf("zk: %w (balasan %d dari %s:%d)", ErrHandshake, reply.Command, c.ip, c.port)
	}

	c.sessionID = reply.SessionID
	c.replyID = reply.ReplyID
	c.connected = true
	return nil
}

// Disconnect mengirim frame EXIT lalu menutup socket. Kegagalan di sini
// ditelan: pembersihan tidak boleh menggagalkan proses sinkronisasi.
func (c *Client) Disconnect() {
	if c.conn == nil {
		return
	}
	if c.connected {
		if _, err := c.conn.Write(EncodeFrame(CmdExit, c.sessionID, c.replyID, nil)); err != nil {
			log.Printf("[ZK] kirim EXIT ke %s:%d gagal: %v", c.ip, c.port, err)
		}
	}
	c.conn.Close()
	c.conn = nil
	c.connected = false
}

// FetchAttendance meminta seluruh log absensi dari perangkat. Perangkat bisa
// memecah satu balasan menjadi beberapa datagram; payload tiap datagram
// digabung dulu baru diparse menjadi record 40 byte. Datagram dengan checksum
// rusak dilewati dan dihitung sebagai gagal decode. Filter since dilakukan di
// sisi klien karena protokolnya tidak punya query rentang waktu.
func (c *Client) FetchAttendance(since *time.Time) ([]RawPunchRecord, int, error) {
	if !c.connected {
		return nil, 0, ErrNotConnected
	}

	if _, err := c.conn.Write(EncodeFrame(CmdGetAttendance, c.sessionID, c.replyID, nil)); err != nil {
		return nil, 0, fmt.Errorf("zk: kirim GET_ATTENDANCE gagal: %w", err)
	}

	var all []byte
	decodeFailed := 0
	buf := make([]byte, 65535)
	for {
		c.conn.SetReadDeadline(time.Now().Add(c.timeout))
		n, err := c.conn.Read(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				break // tidak ada data lagi
			}
			return nil, decodeFailed, fmt.Errorf("zk: baca balasan gagal: %w", err)
		}
		if n <= HeaderSize {
			break // frame kosong menandai akhir data
		}

		frame, err := DecodeFrame(buf[:n])
		if err != nil {
			decodeFailed++
			continue
		}
		c.replyID = frame.ReplyID
		all = append(all, frame.Payload...)
	}

	records := ParseRecords(all)
	if since == nil {
		return records, decodeFailed, nil
	}

	filtered := records[:0]
	for _, r := range records {
		if !r.PunchTime.Before(*since) {
			filtered = append(filtered, r)
		}
	}
	return filtered, decodeFailed, nil
}

// GetDeviceInfo meminta info perangkat dan mengembalikan payload mentahnya.
func (c *Client) GetDeviceInfo() (string, error) {
	if !c.connected {
		return "", ErrNotConnected
	}

	reply, err := c.exchange(CmdGetDeviceInfo, nil)
	if err != nil {
		return "", fmt.Errorf("zk: ambil info perangkat gagal: %w", err)
	}
	return strings.TrimRight(string(reply.Payload), "\x00"), nil
}

// TestConnection mencoba connect, ambil info perangkat, lalu disconnect.
// Dipakai tombol "tes koneksi" di layar admin perangkat.
func (c *Client) TestConnection() (bool, string) {
	if err := c.Connect(); err != nil {
		return false, err.Error()
	}
	defer c.Disconnect()

	info, err := c.GetDeviceInfo()
	if err != nil {
		return false, err.Error()
	}
	if info == "" {
		return true, "terhubung"
	}
	return true, info
}

// exchange mengirim satu frame dan membaca satu balasan.
func (c *Client) exchange(command uint16, payload []byte) (Frame, error) {
	if _, err := c.conn.Write(EncodeFrame(command, c.sessionID, c.replyID, payload)); err != nil {
		return Frame{}, err
	}

	buf := make([]byte, 65535)
	c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	n, err := c.conn.Read(buf)
	if err != nil {
		return Frame{}, err
	}

	frame, err := DecodeFrame(buf[:n])
	if err != nil {
		return Frame{}, err
	}
	c.replyID = frame.ReplyID
	return frame, nil
}

package zk

import (
	"encoding/binary"
	"errors"
)

// Kode perintah protokol UDP ZKTeco
const (
	CmdConnect         = 1000
	CmdExit            = 1001
	CmdEnableDevice    = 1002
	CmdDisableDevice   = 1003
	CmdGetAttendance   = 1007
	CmdClearAttendance = 1008
	CmdGetUsers        = 9
	CmdGetDeviceInfo   = 11
	CmdGetTime         = 201
	CmdSetTime         = 202

	// Balasan sukses dari perangkat
	CmdAckOK = 2000
)

// Header frame: command, checksum, session id, reply id (masing-masing
// uint16 little-endian), lalu payload.
const HeaderSize = 8

var (
	ErrShortFrame = errors.New("zk: frame lebih pendek dari header")
	ErrChecksum   = errors.New("zk: checksum tidak cocok")
)

// Frame adalah satu pesan protokol, request maupun reply.
type Frame struct {
	Command   uint16
	Checksum  uint16
	SessionID uint16
	ReplyID   uint16
	Payload   []byte
}

// checksum menjumlahkan seluruh byte frame (field checksum di-nol-kan dulu)
// lalu dipotong modulo 65536.
func checksum(buf []byte) uint16 {
	var sum uint32
	for _, b := range buf {
		sum += uint32(b)
	}
	return uint16(sum & 0xFFFF)
}

// EncodeFrame menyusun frame lengkap dengan checksum terisi.
func EncodeFrame(command, sessionID, replyID uint16, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], command)
	// buf[2:4] checksum masih nol saat dihitung
	binary.LittleEndian.PutUint16(buf[4:6], sessionID)
	binary.LittleEndian.PutUint16(buf[6:8], replyID)
	copy(buf[HeaderSize:], payload)

	binary.LittleEndian.PutUint16(buf[2:4], checksum(buf))
	return buf
}

// DecodeFrame membongkar satu datagram dan memverifikasi checksum-nya.
func DecodeFrame(buf []byte) (Frame, error) {
	if len(buf) < HeaderSize {
		return Frame{}, ErrShortFrame
	}

	f := Frame{
		Command:   binary.LittleEndian.Uint16(buf[0:2]),
		Checksum:  binary.LittleEndian.Uint16(buf[2:4]),
		SessionID: binary.LittleEndian.Uint16(buf[4:6]),
		ReplyID:   binary.LittleEndian.Uint16(buf[6:8]),
	}
	if len(buf) > HeaderSize {
		f.Payload = append([]byte(nil), buf[HeaderSize:]...)
	}

	// Hitung ulang checksum dengan field checksum di-nol-kan
	check := make([]byte, len(buf))
	copy(check, buf)
	check[2], check[3] = 0, 0
	if checksum(check) != f.Checksum {
		return Frame{}, ErrChecksum
	}

	return f, nil
}

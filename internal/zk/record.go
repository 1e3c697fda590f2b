package zk

import (
	"encoding/binary"
	"strconv"
	"time"
)

// Satu record absensi di buffer balasan GET_ATTENDANCE selalu 40 byte.
const RecordSize = 40

// Timestamp perangkat dihitung dalam detik sejak 2000-01-01 UTC,
// bukan epoch Unix.
var recordEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// RawPunchRecord adalah satu punch hasil decode, belum disimpan ke database.
type RawPunchRecord struct {
	TerminalUserID string
	PunchTime      time.Time
	PunchType      string
	VerifyType     string
	Raw            []byte
}

var punchTypeNames = map[byte]string{
	0: "in",
	1: "out",
	2: "break_out",
	3: "break_in",
	4: "overtime_in",
	5: "overtime_out",
}

var verifyTypeNames = map[byte]string{
	0: "fingerprint",
	1: "password",
	2: "card",
	3: "face",
}

func punchTypeName(code byte) string {
	if name, ok := punchTypeNames[code]; ok {
		return name
	}
	return "in"
}

func verifyTypeName(code byte) string {
	if name, ok := verifyTypeNames[code]; ok {
		return name
	}
	return "fingerprint"
}

// ParseRecords memecah buffer payload gabungan menjadi record 40 byte.
// Sisa byte di ekor yang tidak genap satu record dibuang.
func ParseRecords(buf []byte) []RawPunchRecord {
	n := len(buf) / RecordSize
	records := make([]RawPunchRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, parseRecord(buf[i*RecordSize:(i+1)*RecordSize]))
	}
	return records
}

func parseRecord(b []byte) RawPunchRecord {
	userID := binary.LittleEndian.Uint16(b[0:2])
	seconds := binary.LittleEndian.Uint32(b[4:8])

	return RawPunchRecord{
		TerminalUserID: strconv.Itoa(int(userID)),
		PunchTime:      recordEpoch.Add(time.Duration(seconds) * time.Second),
		PunchType:      punchTypeName(b[8]),
		VerifyType:     verifyTypeName(b[9]),
		Raw:            append([]byte(nil), b...),
	}
}

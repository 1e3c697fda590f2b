package usecase

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"

	"hr-biometric-backend/internal/model"
	"hr-biometric-backend/internal/repository"
	"hr-biometric-backend/internal/zk"

	"gorm.io/datatypes"
)

// IngestResult merangkum hasil satu batch ingest.
type IngestResult struct {
	Fetched   int
	New       int
	Duplicate int
	Failed    int

	// ID log yang baru dibuat, untuk langsung direkonsiliasi
	NewLogIDs []uint
}

// Ingestion mengubah record mentah dari perangkat menjadi PunchLog yang
// tersimpan dan terdeduplikasi.
type Ingestion struct {
	logs     repository.PunchLogRepository
	resolver *MappingResolver
}

func NewIngestion(logs repository.PunchLogRepository, resolver *MappingResolver) *Ingestion {
	return &Ingestion{logs: logs, resolver: resolver}
}

// Ingest menyimpan batch record hasil fetch. Upsert idempoten di natural key
// (device, terminal user, punch time): record yang sudah ada dihitung
// duplikat dan dilewati tanpa efek samping. Record yang pegawainya belum
// bisa di-resolve tetap disimpan (employee_id NULL) supaya bisa diproses
// ulang setelah mapping ditambahkan.
func (s *Ingestion) Ingest(companyID uint, device *model.Device, records []zk.RawPunchRecord) IngestResult {
	result := IngestResult{Fetched: len(records)}

	for _, rec := range records {
		exists, err := s.logs.Exists(device.ID, rec.TerminalUserID, rec.PunchTime)
		if err != nil {
			result.Failed++
			log.Printf("[SYNC] cek duplikat gagal (device %d, user %s): %v", device.ID, rec.TerminalUserID, err)
			continue
		}
		if exists {
			result.Duplicate++
			continue
		}

		var employeeID *uint
		employee, err := s.resolver.Resolve(companyID, device.ID, rec.TerminalUserID)
		if err != nil {
			if errors.Is(err, ErrDuplicateMapping) {
				// Pelanggaran integritas data: jangan pilih salah satu,
				// simpan tanpa pegawai dan laporkan
				result.Failed++
				log.Printf("[SYNC] %v", err)
			} else {
				result.Failed++
				log.Printf("[SYNC] resolve pegawai gagal (user %s): %v", rec.TerminalUserID, err)
				continue
			}
		}
		if employee != nil {
			employeeID = &employee.ID
		}

		entry := &model.PunchLog{
			CompanyID:      companyID,
			DeviceID:       device.ID,
			EmployeeID:     employeeID,
			TerminalUserID: rec.TerminalUserID,
			PunchTime:      rec.PunchTime,
			PunchType:      rec.PunchType,
			VerifyType:     rec.VerifyType,
			RawData:        rawPayload(rec),
		}
		if err := s.logs.Create(entry); err != nil {
			// Bisa kalah balapan dengan worker lain di unique index:
			// kalau sekarang sudah ada, itu duplikat, bukan kegagalan
			if again, checkErr := s.logs.Exists(device.ID, rec.TerminalUserID, rec.PunchTime); checkErr == nil && again {
				result.Duplicate++
				continue
			}
			result.Failed++
			log.Printf("[SYNC] simpan punch log gagal (device %d, user %s): %v", device.ID, rec.TerminalUserID, err)
			continue
		}

		result.New++
		result.NewLogIDs = append(result.NewLogIDs, entry.ID)
	}

	return result
}

// rawPayload menyimpan byte mentah record sebagai blob audit. Tidak pernah
// diparse ulang oleh rekonsiliasi.
func rawPayload(rec zk.RawPunchRecord) datatypes.JSON {
	payload, err := json.Marshal(map[string]interface{}{
		"terminal_user_id": rec.TerminalUserID,
		"punch_time":       rec.PunchTime,
		"punch_type":       rec.PunchType,
		"verify_type":      rec.VerifyType,
		"raw_hex":          hex.EncodeToString(rec.Raw),
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(payload)
}

package usecase

import (
	"fmt"
	"math"
	"sync"
	"time"

	"hr-biometric-backend/internal/model"
	"hr-biometric-backend/internal/repository"
)

// Reconciler melipat punch log menjadi rekap harian per pegawai: check-in
// diambil yang paling awal, check-out yang paling akhir, sehingga hasil
// akhirnya sama tidak peduli urutan log masuk. Log yang sudah diproses
// dilewati, jadi menjalankan ulang rekonsiliasi adalah no-op.
type Reconciler struct {
	logs       repository.PunchLogRepository
	attendance repository.AttendanceRepository

	// Serialisasi per (pegawai, tanggal): dua perangkat bisa melaporkan
	// punch pegawai yang sama secara bersamaan dari worker berbeda
	locks sync.Map
}

func NewReconciler(logs repository.PunchLogRepository, attendance repository.AttendanceRepository) *Reconciler {
	return &Reconciler{logs: logs, attendance: attendance}
}

// ReconcileLog memproses satu punch log menjadi mutasi rekap harian.
// Mengembalikan rekapnya dan true kalau baris rekap baru dibuat.
func (s *Reconciler) ReconcileLog(entry *model.PunchLog) (*model.Attendance, bool, error) {
	if entry.IsProcessed {
		return nil, false, nil
	}
	if entry.EmployeeID == nil {
		return nil, false, nil
	}

	punchAt := entry.PunchTime.UTC()
	date := punchAt.Format("2006-01-02")
	timeOfDay := punchAt.Format("15:04:05")

	unlock := s.lock(*entry.EmployeeID, date)
	defer unlock()

	attendance, err := s.attendance.GetByEmployeeAndDate(*entry.EmployeeID, date)
	if err != nil {
		return nil, false, err
	}

	created := false
	if attendance == nil {
		attendance = &model.Attendance{
			CompanyID:  entry.CompanyID,
			EmployeeID: *entry.EmployeeID,
			Date:       date,
			Status:     "present",
			Source:     "biometric",
		}
		if err := s.attendance.Create(attendance); err != nil {
			return nil, false, err
		}
		created = true
	}

	// Format "15:04:05" fixed-width, jadi perbandingan string = kronologis
	switch entry.PunchType {
	case model.PunchTypeIn, model.PunchTypeOvertimeIn:
		if attendance.CheckIn == "" || timeOfDay < attendance.CheckIn {
			attendance.CheckIn = timeOfDay
		}
	case model.PunchTypeOut, model.PunchTypeOvertimeOut:
		if attendance.CheckOut == "" || timeOfDay > attendance.CheckOut {
			attendance.CheckOut = timeOfDay
		}
	default:
		// break_out/break_in tercatat di log tapi tidak menggeser
		// check-in/check-out
	}

	if attendance.CheckIn != "" && attendance.CheckOut != "" {
		attendance.WorkingHours = workingHours(attendance.CheckIn, attendance.CheckOut)
	}

	if err := s.attendance.Update(attendance); err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	if err := s.logs.MarkProcessed(entry.ID, attendance.ID, now); err != nil {
		return nil, false, err
	}
	entry.IsProcessed = true
	entry.ProcessedAt = &now
	entry.AttendanceID = &attendance.ID

	return attendance, created, nil
}

// ReconcileUnprocessed memproses semua log belum terproses yang sudah punya
// pegawai, urut waktu punch. Mengembalikan jumlah log yang diproses.
func (s *Reconciler) ReconcileUnprocessed(companyID uint) (int, error) {
	entries, err := s.logs.GetUnprocessed(companyID)
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range entries {
		if _, _, err := s.ReconcileLog(&entries[i]); err != nil {
			return processed, fmt.Errorf("rekonsiliasi log %d gagal: %w", entries[i].ID, err)
		}
		processed++
	}
	return processed, nil
}

func (s *Reconciler) lock(employeeID uint, date string) func() {
	key := fmt.Sprintf("%d|%s", employeeID, date)
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// workingHours menghitung selisih jam kerja dua digit desimal. Check-out
// lebih kecil dari check-in berarti shift lewat tengah malam: tambah 24 jam.
func workingHours(checkIn, checkOut string) float64 {
	in, err := time.Parse("15:04:05", checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse("15:04:05", checkOut)
	if err != nil {
		return 0
	}

	diff := out.Sub(in)
	if diff < 0 {
		diff += 24 * time.Hour
	}
	return math.Round(diff.Hours()*100) / 100
}

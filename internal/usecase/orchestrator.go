package usecase

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"hr-biometric-backend/internal/model"
	"hr-biometric-backend/internal/repository"
	"hr-biometric-backend/internal/zk"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Terminal adalah sisi klien protokol perangkat yang dibutuhkan orkestrator.
// Implementasi aslinya zk.Client; test memakai tiruan.
type Terminal interface {
	Connect() error
	FetchAttendance(since *time.Time) ([]zk.RawPunchRecord, int, error)
	Disconnect()
}

// TerminalFactory membuat klien untuk satu perangkat. Satu perangkat satu
// klien satu urutan connect -> fetch -> disconnect: protokolnya stateful dan
// tidak aman dipakai paralel di satu koneksi.
type TerminalFactory func(device *model.Device) Terminal

// DefaultTerminalFactory memakai klien UDP ZKTeco.
func DefaultTerminalFactory(device *model.Device) Terminal {
	return zk.NewClient(device.IPAddress, device.Port, device.Password)
}

// SyncFilter memilih perangkat mana yang ikut disinkronkan.
type SyncFilter struct {
	DeviceID  uint
	CompanyID uint
	AutoOnly  bool
	DueOnly   bool
	Force     bool
	SyncType  string // manual / scheduled
}

// DeviceResult adalah hasil sinkronisasi satu perangkat.
type DeviceResult struct {
	DeviceID      uint   `json:"device_id"`
	DeviceName    string `json:"device_name"`
	Status        string `json:"status"` // completed / partial / failed
	Fetched       int    `json:"fetched"`
	New           int    `json:"new"`
	Duplicate     int    `json:"duplicate"`
	Failed        int    `json:"failed"`
	NewAttendance int    `json:"new_attendance"`
	Error         string `json:"error,omitempty"`
}

// RunSummary adalah hasil gabungan satu invokasi.
type RunSummary struct {
	TotalDevices    int            `json:"total_devices"`
	Successful      int            `json:"successful"`
	Failed          int            `json:"failed"`
	TotalNewRecords int            `json:"total_new_records"`
	Devices         []DeviceResult `json:"devices"`
}

// Orchestrator menjalankan sinkronisasi lintas perangkat: memilih perangkat
// yang jatuh tempo, menjalankan pipeline per perangkat dengan paralelisme
// terbatas, dan menggabungkan ringkasannya. Kegagalan satu perangkat tidak
// menghentikan perangkat lain.
type Orchestrator struct {
	devices    repository.DeviceRepository
	runs       repository.SyncRunRepository
	logs       repository.PunchLogRepository
	ingestion  *Ingestion
	reconciler *Reconciler
	resolver   *MappingResolver
	factory    TerminalFactory
	workers    int
}

func NewOrchestrator(
	devices repository.DeviceRepository,
	runs repository.SyncRunRepository,
	logs repository.PunchLogRepository,
	ingestion *Ingestion,
	reconciler *Reconciler,
	resolver *MappingResolver,
	factory TerminalFactory,
	workers int,
) *Orchestrator {
	if factory == nil {
		factory = DefaultTerminalFactory
	}
	if workers <= 0 {
		workers = 4
	}
	return &Orchestrator{
		devices:    devices,
		runs:       runs,
		logs:       logs,
		ingestion:  ingestion,
		reconciler: reconciler,
		resolver:   resolver,
		factory:    factory,
		workers:    workers,
	}
}

// Run menyinkronkan semua perangkat yang lolos filter. Error hanya untuk
// kesalahan konfigurasi (perangkat tidak dikenal, query gagal); kegagalan
// per perangkat dilaporkan lewat ringkasan, bukan lewat error.
func (s *Orchestrator) Run(filter SyncFilter) (*RunSummary, error) {
	devices, err := s.selectDevices(filter)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{TotalDevices: len(devices)}
	if len(devices) == 0 {
		return summary, nil
	}

	syncType := filter.SyncType
	if syncType == "" {
		syncType = model.SyncTypeManual
	}

	// Worker pool terbatas; tiap worker mengembalikan hasilnya sendiri dan
	// ringkasan digabung setelah semua selesai
	results := make(chan DeviceResult, len(devices))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i := range devices {
		wg.Add(1)
		go func(device model.Device) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results <- s.syncDevice(&device, syncType)
		}(devices[i])
	}

	wg.Wait()
	close(results)

	for res := range results {
		summary.Devices = append(summary.Devices, res)
		if res.Status == model.SyncStatusFailed {
			summary.Failed++
		} else {
			summary.Successful++
			summary.TotalNewRecords += res.New
		}
	}

	return summary, nil
}

func (s *Orchestrator) selectDevices(filter SyncFilter) ([]model.Device, error) {
	if filter.DeviceID != 0 {
		device, err := s.devices.GetByID(filter.DeviceID)
		if err != nil || device == nil || !device.IsActive {
			return nil, fmt.Errorf("%w: id %d", ErrDeviceNotFound, filter.DeviceID)
		}
		if filter.CompanyID != 0 && device.CompanyID != filter.CompanyID {
			return nil, fmt.Errorf("%w: id %d", ErrDeviceNotFound, filter.DeviceID)
		}
		return []model.Device{*device}, nil
	}

	devices, err := s.devices.GetSyncable(filter.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("ambil daftar perangkat gagal: %w", err)
	}

	now := time.Now().UTC()
	selected := devices[:0]
	for _, device := range devices {
		if filter.AutoOnly && !device.AutoSync {
			continue
		}
		if filter.DueOnly && !filter.Force && !device.IsDue(now) {
			continue
		}
		selected = append(selected, device)
	}
	return selected, nil
}

// syncDevice menjalankan satu siklus connect -> fetch -> ingest ->
// reconcile -> disconnect untuk satu perangkat, dengan SyncRun sebagai
// catatan auditnya.
func (s *Orchestrator) syncDevice(device *model.Device, syncType string) DeviceResult {
	result := DeviceResult{DeviceID: device.ID, DeviceName: device.Name}
	now := time.Now().UTC()

	run := &model.SyncRun{
		RunID:     uuid.NewString(),
		CompanyID: device.CompanyID,
		DeviceID:  device.ID,
		SyncType:  syncType,
		Status:    model.SyncStatusRunning,
		StartedAt: &now,
	}
	if err := s.runs.Create(run); err != nil {
		result.Status = model.SyncStatusFailed
		result.Error = fmt.Sprintf("buat catatan sinkronisasi gagal: %v", err)
		log.Printf("[SYNC] %s: %s", device.Name, result.Error)
		return result
	}

	term := s.factory(device)
	if err := term.Connect(); err != nil {
		s.devices.UpdateStatus(device.ID, model.DeviceStatusOffline)
		result.Status = model.SyncStatusFailed
		result.Error = err.Error()
		s.finalizeRun(run, model.SyncStatusFailed, result, err.Error())
		log.Printf("[SYNC] %s: koneksi gagal: %v", device.Name, err)
		return result
	}
	defer term.Disconnect()

	s.devices.MarkConnected(device.ID, time.Now().UTC())

	records, decodeFailed, err := term.FetchAttendance(device.LastSync)
	if err != nil {
		s.devices.UpdateStatus(device.ID, model.DeviceStatusOffline)
		result.Status = model.SyncStatusFailed
		result.Error = err.Error()
		s.finalizeRun(run, model.SyncStatusFailed, result, err.Error())
		log.Printf("[SYNC] %s: fetch gagal: %v", device.Name, err)
		return result
	}

	ingest := s.ingestion.Ingest(device.CompanyID, device, records)
	result.Fetched = ingest.Fetched
	result.New = ingest.New
	result.Duplicate = ingest.Duplicate
	result.Failed = ingest.Failed + decodeFailed

	// Log yang baru masuk langsung direkonsiliasi
	newLogs, err := s.logs.GetUnprocessedByIDs(ingest.NewLogIDs)
	if err != nil {
		result.Failed++
		log.Printf("[SYNC] %s: ambil log baru gagal: %v", device.Name, err)
	}
	for i := range newLogs {
		_, created, err := s.reconciler.ReconcileLog(&newLogs[i])
		if err != nil {
			result.Failed++
			log.Printf("[SYNC] %s: rekonsiliasi log %d gagal: %v", device.Name, newLogs[i].ID, err)
			continue
		}
		if created {
			result.NewAttendance++
		}
	}

	s.devices.MarkSynced(device.ID, time.Now().UTC())

	status := model.SyncStatusCompleted
	if result.Failed > 0 {
		status = model.SyncStatusPartial
	}
	result.Status = status
	s.finalizeRun(run, status, result, "")

	log.Printf("[SYNC] %s: %d baru dari %d record (%d duplikat, %d gagal)",
		device.Name, result.New, result.Fetched, result.Duplicate, result.Failed)
	return result
}

func (s *Orchestrator) finalizeRun(run *model.SyncRun, status string, result DeviceResult, errMsg string) {
	done := time.Now().UTC()
	run.Status = status
	run.CompletedAt = &done
	run.RecordsFetched = result.Fetched
	run.RecordsProcessed = result.New
	run.RecordsFailed = result.Failed
	run.NewAttendance = result.NewAttendance
	run.ErrorMessage = errMsg

	if detail, err := json.Marshal(result); err == nil {
		run.Details = datatypes.JSON(detail)
	}

	if err := s.runs.Finalize(run); err != nil {
		log.Printf("[SYNC] finalisasi catatan %s gagal: %v", run.RunID, err)
	}
}

// ReprocessUnmatched mencoba lagi resolve pegawai untuk log yang tersimpan
// tanpa pegawai (dipanggil setelah mapping baru ditambahkan), lalu langsung
// merekonsiliasi log yang berhasil terhubung.
func (s *Orchestrator) ReprocessUnmatched(companyID uint) (int, error) {
	entries, err := s.logs.GetUnmatched(companyID)
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range entries {
		entry := &entries[i]

		employee, err := s.resolver.Resolve(entry.CompanyID, entry.DeviceID, entry.TerminalUserID)
		if err != nil {
			log.Printf("[SYNC] reproses log %d: %v", entry.ID, err)
			continue
		}
		if employee == nil {
			continue
		}

		if err := s.logs.AttachEmployee(entry.ID, employee.ID); err != nil {
			log.Printf("[SYNC] hubungkan log %d ke pegawai %d gagal: %v", entry.ID, employee.ID, err)
			continue
		}
		entry.EmployeeID = &employee.ID

		if _, _, err := s.reconciler.ReconcileLog(entry); err != nil {
			log.Printf("[SYNC] rekonsiliasi log %d gagal: %v", entry.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

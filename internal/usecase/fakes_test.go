package usecase

import (
	"errors"
	"sort"
	"sync"
	"time"

	"hr-biometric-backend/internal/model"
	"hr-biometric-backend/internal/zk"

	"gorm.io/gorm"
)

// Repositori tiruan in-memory untuk menguji alur usecase tanpa database.

func gormModel(id uint) gorm.Model { return gorm.Model{ID: id} }

type fakePunchLogs struct {
	mu     sync.Mutex
	nextID uint
	logs   []*model.PunchLog
}

func (f *fakePunchLogs) Create(entry *model.PunchLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logs {
		if l.DeviceID == entry.DeviceID && l.TerminalUserID == entry.TerminalUserID && l.PunchTime.Equal(entry.PunchTime) {
			return errors.New("duplicate entry for key idx_punch_natural")
		}
	}
	f.nextID++
	entry.ID = f.nextID
	clone := *entry
	f.logs = append(f.logs, &clone)
	return nil
}

func (f *fakePunchLogs) Exists(deviceID uint, terminalUserID string, punchTime time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logs {
		if l.DeviceID == deviceID && l.TerminalUserID == terminalUserID && l.PunchTime.Equal(punchTime) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePunchLogs) GetUnprocessed(companyID uint) ([]model.PunchLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PunchLog
	for _, l := range f.logs {
		if !l.IsProcessed && l.EmployeeID != nil && (companyID == 0 || l.CompanyID == companyID) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PunchTime.Before(out[j].PunchTime) })
	return out, nil
}

func (f *fakePunchLogs) GetUnprocessedByIDs(ids []uint) ([]model.PunchLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PunchLog
	for _, id := range ids {
		for _, l := range f.logs {
			if l.ID == id && !l.IsProcessed {
				out = append(out, *l)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PunchTime.Before(out[j].PunchTime) })
	return out, nil
}

func (f *fakePunchLogs) GetUnmatched(companyID uint) ([]model.PunchLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PunchLog
	for _, l := range f.logs {
		if l.EmployeeID == nil && !l.IsProcessed && (companyID == 0 || l.CompanyID == companyID) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PunchTime.Before(out[j].PunchTime) })
	return out, nil
}

func (f *fakePunchLogs) AttachEmployee(logID uint, employeeID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logs {
		if l.ID == logID {
			id := employeeID
			l.EmployeeID = &id
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePunchLogs) MarkProcessed(logID uint, attendanceID uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logs {
		if l.ID == logID {
			l.IsProcessed = true
			l.ProcessedAt = &at
			l.AttendanceID = &attendanceID
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePunchLogs) byID(id uint) *model.PunchLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logs {
		if l.ID == id {
			clone := *l
			return &clone
		}
	}
	return nil
}

type fakeAttendance struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*model.Attendance
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{rows: map[uint]*model.Attendance{}}
}

func (f *fakeAttendance) GetByEmployeeAndDate(employeeID uint, date string) (*model.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.EmployeeID == employeeID && a.Date == date {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendance) Create(attendance *model.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	attendance.ID = f.nextID
	clone := *attendance
	f.rows[attendance.ID] = &clone
	return nil
}

func (f *fakeAttendance) Update(attendance *model.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *attendance
	f.rows[attendance.ID] = &clone
	return nil
}

func (f *fakeAttendance) GetRange(employeeID uint, from, to string) ([]model.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Attendance
	for _, a := range f.rows {
		if a.EmployeeID != employeeID {
			continue
		}
		if from != "" && a.Date < from {
			continue
		}
		if to != "" && a.Date > to {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type fakeMappings struct {
	mappings []model.EmployeeMapping
}

func (f *fakeMappings) GetForDevice(companyID, deviceID uint, terminalUserID string) ([]model.EmployeeMapping, error) {
	var out []model.EmployeeMapping
	for _, m := range f.mappings {
		if m.CompanyID == companyID && m.DeviceID != nil && *m.DeviceID == deviceID &&
			m.TerminalUserID == terminalUserID && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMappings) GetCompanyWide(companyID uint, terminalUserID string) ([]model.EmployeeMapping, error) {
	var out []model.EmployeeMapping
	for _, m := range f.mappings {
		if m.CompanyID == companyID && m.DeviceID == nil &&
			m.TerminalUserID == terminalUserID && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeEmployees struct {
	employees map[uint]model.Employee
}

func (f *fakeEmployees) Lookup(companyID, employeeID uint) (*model.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok || e.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

type fakeDevices struct {
	mu      sync.Mutex
	devices map[uint]*model.Device
}

func newFakeDevices(devices ...*model.Device) *fakeDevices {
	f := &fakeDevices{devices: map[uint]*model.Device{}}
	for _, d := range devices {
		f.devices[d.ID] = d
	}
	return f
}

func (f *fakeDevices) Create(device *model.Device) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devices[device.ID] = device
	return nil
}

func (f *fakeDevices) GetByID(id uint) (*model.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.devices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDevices) GetAll(companyID uint) ([]model.Device, error) {
	return f.GetSyncable(companyID)
}

func (f *fakeDevices) GetSyncable(companyID uint) ([]model.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Device
	for _, d := range f.devices {
		if !d.IsActive || d.Status == model.DeviceStatusMaintenance {
			continue
		}
		if companyID != 0 && d.CompanyID != companyID {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDevices) Update(device *model.Device) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *device
	f.devices[device.ID] = &clone
	return nil
}

func (f *fakeDevices) UpdateStatus(id uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.devices[id]; ok {
		d.Status = status
	}
	return nil
}

func (f *fakeDevices) MarkConnected(id uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.devices[id]; ok {
		d.Status = model.DeviceStatusActive
		d.LastConnection = &at
	}
	return nil
}

func (f *fakeDevices) MarkSynced(id uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.devices[id]; ok {
		d.LastSync = &at
	}
	return nil
}

type fakeRuns struct {
	mu     sync.Mutex
	nextID uint
	runs   []*model.SyncRun
}

func (f *fakeRuns) Create(run *model.SyncRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	run.ID = f.nextID
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRuns) Finalize(run *model.SyncRun) error {
	return nil
}

func (f *fakeRuns) GetRecent(companyID uint, limit int) ([]model.SyncRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SyncRun
	for _, r := range f.runs {
		if companyID == 0 || r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// fakeTerminal meniru perangkat untuk orkestrator.
type fakeTerminal struct {
	connectErr error
	fetchErr   error
	records    []zk.RawPunchRecord

	connected    bool
	disconnected bool
	sinceSeen    *time.Time
}

func (f *fakeTerminal) Connect() error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeTerminal) FetchAttendance(since *time.Time) ([]zk.RawPunchRecord, int, error) {
	f.sinceSeen = since
	if f.fetchErr != nil {
		return nil, 0, f.fetchErr
	}
	return f.records, 0, nil
}

func (f *fakeTerminal) Disconnect() {
	f.disconnected = true
}

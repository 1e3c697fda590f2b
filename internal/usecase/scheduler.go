package usecase

import (
	"log"

	"hr-biometric-backend/internal/model"

	"github.com/robfig/cron/v3"
)

// Scheduler menjalankan sinkronisasi otomatis dari dalam proses API:
// tiap menit cek perangkat auto-sync yang sudah jatuh tempo.
type Scheduler struct {
	orchestrator *Orchestrator
	cron         *cron.Cron
}

func NewScheduler(orchestrator *Orchestrator) *Scheduler {
	return &Scheduler{orchestrator: orchestrator, cron: cron.New()}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@every 1m", func() {
		summary, err := s.orchestrator.Run(SyncFilter{
			AutoOnly: true,
			DueOnly:  true,
			SyncType: model.SyncTypeScheduled,
		})
		if err != nil {
			log.Printf("[SCHEDULER] sinkronisasi otomatis gagal: %v", err)
			return
		}
		if summary.TotalDevices > 0 {
			log.Printf("[SCHEDULER] %d perangkat: %d sukses, %d gagal, %d record baru",
				summary.TotalDevices, summary.Successful, summary.Failed, summary.TotalNewRecords)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("[SCHEDULER] sinkronisasi otomatis aktif (cek tiap menit)")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

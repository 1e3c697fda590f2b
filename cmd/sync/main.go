package main

import (
	"fmt"
	"os"

	"hr-biometric-backend/config"
	"hr-biometric-backend/internal/model"
	"hr-biometric-backend/internal/routes"
	"hr-biometric-backend/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// CLI sinkronisasi mesin absensi. Bisa dijalankan manual atau lewat cron:
//
//	sync                       # semua perangkat
//	sync --device-id 1         # satu perangkat
//	sync --company-id 1        # perangkat satu perusahaan
//	sync --auto-only           # hanya perangkat auto_sync
//	sync --due-only            # hanya yang sudah jatuh tempo
//	sync --force               # abaikan jadwal
//	sync --process-logs        # reproses log tanpa pegawai setelah sync
//
// Exit code 0 selama invokasinya valid, meskipun ada perangkat yang gagal:
// kegagalan per perangkat dilaporkan di ringkasan. Exit code 1 hanya untuk
// kesalahan konfigurasi.
func main() {
	deviceID := pflag.Uint("device-id", 0, "sinkronkan satu perangkat saja")
	companyID := pflag.Uint("company-id", 0, "batasi ke perangkat satu perusahaan")
	autoOnly := pflag.Bool("auto-only", false, "hanya perangkat dengan auto_sync")
	dueOnly := pflag.Bool("due-only", false, "hanya perangkat yang sudah jatuh tempo")
	force := pflag.Bool("force", false, "abaikan jadwal sinkronisasi")
	processLogs := pflag.Bool("process-logs", false, "reproses log tanpa pegawai setelah sinkronisasi")
	pflag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}
	config.ConnectDB()

	orchestrator := routes.BuildOrchestrator(config.DB)

	summary, err := orchestrator.Run(usecase.SyncFilter{
		DeviceID:  *deviceID,
		CompanyID: *companyID,
		AutoOnly:  *autoOnly,
		DueOnly:   *dueOnly,
		Force:     *force,
		SyncType:  model.SyncTypeManual,
	})
	if err != nil {
		// Error di sini berarti invokasinya salah (perangkat tidak dikenal,
		// query gagal), bukan kegagalan per perangkat
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if summary.TotalDevices == 0 {
		fmt.Println("Tidak ada perangkat untuk disinkronkan")
	}

	for _, res := range summary.Devices {
		switch res.Status {
		case model.SyncStatusFailed:
			fmt.Printf("  ✗ %s: %s\n", res.DeviceName, res.Error)
		default:
			fmt.Printf("  ✓ %s: %d baru dari %d record (%d duplikat, %d gagal)\n",
				res.DeviceName, res.New, res.Fetched, res.Duplicate, res.Failed)
		}
	}

	if *processLogs {
		count, err := orchestrator.ReprocessUnmatched(*companyID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning: reproses log gagal:", err)
		} else {
			fmt.Printf("Reproses: %d log terhubung dan terekonsiliasi\n", count)
		}
	}

	fmt.Println("==================================================")
	fmt.Printf("Ringkasan: %d perangkat, %d sukses, %d gagal, %d record baru\n",
		summary.TotalDevices, summary.Successful, summary.Failed, summary.TotalNewRecords)
}

package handler

import (
	"errors"

	"hr-biometric-backend/internal/model"
	"hr-biometric-backend/internal/repository"
	"hr-biometric-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	orchestrator *usecase.Orchestrator
	runs         repository.SyncRunRepository
}

func NewSyncHandler(orchestrator *usecase.Orchestrator, runs repository.SyncRunRepository) *SyncHandler {
	return &SyncHandler{orchestrator: orchestrator, runs: runs}
}

type SyncRequest struct {
	DeviceID  uint `json:"device_id"`
	CompanyID uint `json:"company_id"`
	AutoOnly  bool `json:"auto_only"`
	DueOnly   bool `json:"due_only"`
	Force     bool `json:"force"`
}

// Run menjalankan sinkronisasi sesuai filter. Perangkat yang gagal tetap
// dilaporkan di ringkasan, bukan sebagai error HTTP: hanya kesalahan
// konfigurasi (perangkat tidak dikenal) yang mengembalikan status error.
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}

	summary, err := h.orchestrator.Run(usecase.SyncFilter{
		DeviceID:  req.DeviceID,
		CompanyID: req.CompanyID,
		AutoOnly:  req.AutoOnly,
		DueOnly:   req.DueOnly,
		Force:     req.Force,
		SyncType:  model.SyncTypeManual,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrDeviceNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sinkronisasi selesai", "summary": summary})
}

// RunDevice menjalankan sinkronisasi satu perangkat dari path parameter.
func (h *SyncHandler) RunDevice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	summary, err := h.orchestrator.Run(usecase.SyncFilter{
		DeviceID: uint(id),
		Force:    true,
		SyncType: model.SyncTypeManual,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrDeviceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sinkronisasi selesai", "summary": summary})
}

// Reprocess mencoba lagi menghubungkan log tanpa pegawai (setelah mapping
// baru ditambahkan) lalu merekonsiliasinya.
func (h *SyncHandler) Reprocess(c *fiber.Ctx) error {
	companyID := uint(c.QueryInt("company_id", 0))

	count, err := h.orchestrator.ReprocessUnmatched(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Reproses selesai", "processed": count})
}

func (h *SyncHandler) GetRuns(c *fiber.Ctx) error {
	companyID := uint(c.QueryInt("company_id", 0))
	limit := c.QueryInt("limit", 50)

	runs, err := h.runs.GetRecent(companyID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil riwayat sinkronisasi"})
	}
	return c.JSON(fiber.Map{"data": runs})
}

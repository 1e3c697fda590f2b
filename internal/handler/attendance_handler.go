package handler

import (
	"hr-biometric-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	attendance repository.AttendanceRepository
	logs       repository.PunchLogRepository
}

func NewAttendanceHandler(attendance repository.AttendanceRepository, logs repository.PunchLogRepository) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, logs: logs}
}

// GetRange antarmuka baca untuk payroll: rekap harian satu pegawai di
// rentang tanggal.
func (h *AttendanceHandler) GetRange(c *fiber.Ctx) error {
	employeeID := uint(c.QueryInt("employee_id", 0))
	if employeeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "employee_id wajib diisi"})
	}
	from := c.Query("from")
	to := c.Query("to")

	list, err := h.attendance.GetRange(employeeID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil rekap kehadiran"})
	}
	return c.JSON(fiber.Map{"data": list})
}

// GetUnprocessedLogs menampilkan punch log yang belum direkonsiliasi,
// termasuk yang belum terhubung ke pegawai.
func (h *AttendanceHandler) GetUnprocessedLogs(c *fiber.Ctx) error {
	companyID := uint(c.QueryInt("company_id", 0))

	matched, err := h.logs.GetUnprocessed(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil log"})
	}
	unmatched, err := h.logs.GetUnmatched(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil log"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"pending_reconciliation": matched,
			"unmatched":              unmatched,
		},
	})
}

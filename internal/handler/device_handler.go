package handler

import (
	"hr-biometric-backend/internal/model"
	"hr-biometric-backend/internal/repository"
	"hr-biometric-backend/internal/zk"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type DeviceHandler struct {
	repo repository.DeviceRepository
}

func NewDeviceHandler(repo repository.DeviceRepository) *DeviceHandler {
	return &DeviceHandler{repo: repo}
}

type DeviceRequest struct {
	CompanyID    uint   `json:"company_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	DeviceType   string `json:"device_type" validate:"omitempty,oneof=zkteco hikvision suprema anviz"`
	SerialNumber string `json:"serial_number"`
	IPAddress    string `json:"ip_address" validate:"required,ip"`
	Port         int    `json:"port" validate:"omitempty,min=1,max=65535"`
	Password     string `json:"password"`
	Location     string `json:"location"`
	AutoSync     *bool  `json:"auto_sync"`
	SyncInterval int    `json:"sync_interval" validate:"omitempty,min=1"`
}

func (h *DeviceHandler) GetAll(c *fiber.Ctx) error {
	companyID := uint(c.QueryInt("company_id", 0))
	devices, err := h.repo.GetAll(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data perangkat"})
	}
	return c.JSON(fiber.Map{"data": devices})
}

func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}
	device, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Perangkat tidak ditemukan"})
	}
	return c.JSON(fiber.Map{"data": device})
}

func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var req DeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	device := model.Device{
		CompanyID:    req.CompanyID,
		Name:         req.Name,
		DeviceType:   req.DeviceType,
		SerialNumber: req.SerialNumber,
		IPAddress:    req.IPAddress,
		Port:         req.Port,
		Password:     req.Password,
		Location:     req.Location,
		Status:       model.DeviceStatusActive,
		IsActive:     true,
		AutoSync:     true,
		SyncInterval: req.SyncInterval,
	}
	if device.DeviceType == "" {
		device.DeviceType = "zkteco"
	}
	if device.Port == 0 {
		device.Port = 4370
	}
	if device.SyncInterval == 0 {
		device.SyncInterval = 15
	}
	if req.AutoSync != nil {
		device.AutoSync = *req.AutoSync
	}

	if err := h.repo.Create(&device); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan perangkat"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Perangkat tersimpan", "data": device})
}

func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}
	device, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Perangkat tidak ditemukan"})
	}

	var req DeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	device.Name = req.Name
	device.IPAddress = req.IPAddress
	if req.DeviceType != "" {
		device.DeviceType = req.DeviceType
	}
	if req.Port != 0 {
		device.Port = req.Port
	}
	if req.Password != "" {
		device.Password = req.Password
	}
	device.SerialNumber = req.SerialNumber
	device.Location = req.Location
	if req.SyncInterval != 0 {
		device.SyncInterval = req.SyncInterval
	}
	if req.AutoSync != nil {
		device.AutoSync = *req.AutoSync
	}

	if err := h.repo.Update(device); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan perubahan"})
	}
	return c.JSON(fiber.Map{"message": "Perangkat diperbarui", "data": device})
}

// TestConnection mencoba connect ke perangkat fisik dan mengembalikan
// hasilnya tanpa menyentuh data absensi.
func (h *DeviceHandler) TestConnection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}
	device, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Perangkat tidak ditemukan"})
	}

	client := zk.NewClient(device.IPAddress, device.Port, device.Password)
	ok, message := client.TestConnection()

	return c.JSON(fiber.Map{"success": ok, "message": message})
}

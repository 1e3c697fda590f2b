package usecase

import "errors"

var (
	// ErrDuplicateMapping berarti ada lebih dari satu mapping aktif untuk
	// kombinasi perangkat + nomor user yang sama. Ini pelanggaran integritas
	// data yang harus ditampilkan, bukan dipilih diam-diam salah satunya.
	ErrDuplicateMapping = errors.New("usecase: mapping pegawai ganda untuk terminal yang sama")

	// ErrDeviceNotFound dipakai saat filter menunjuk perangkat yang tidak
	// ada atau tidak aktif. Ini kesalahan konfigurasi yang fatal: seluruh
	// invokasi dibatalkan sebelum ada I/O jaringan.
	ErrDeviceNotFound = errors.New("usecase: perangkat tidak ditemukan atau tidak aktif")
)

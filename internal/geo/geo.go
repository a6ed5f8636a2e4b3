// Package geo models the device geolocation capability and the
// reverse-geocoding lookup of the map widget. Capture itself happens
// on the device; this side only classifies its failures and resolves
// coordinates to addresses.
package geo

import (
	"context"
	"fmt"

	"lapor/internal/model"
)

// ErrorCode classifies a geolocation failure.
type ErrorCode int

const (
	PermissionDenied ErrorCode = iota + 1
	PositionUnavailable
	Timeout
)

// Error is a cause-coded geolocation failure, surfaced to the user as
// a blocking alert with a specific message.
type Error struct {
	Code ErrorCode
}

func (e *Error) Error() string {
	const prefix = "Gagal mendapatkan lokasi. "
	switch e.Code {
	case PermissionDenied:
		return prefix + "Izin akses lokasi ditolak. Mohon aktifkan izin lokasi di pengaturan perangkat Anda."
	case PositionUnavailable:
		return prefix + "Informasi lokasi tidak tersedia. Pastikan GPS perangkat Anda aktif."
	case Timeout:
		return prefix + "Permintaan lokasi melewati batas waktu. Coba lagi nanti."
	default:
		return prefix + "Terjadi kesalahan yang tidak diketahui."
	}
}

// ReverseGeocoder resolves coordinates to a human-readable address.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, c model.Coordinates) (string, error)
}

// FallbackLabel formats raw coordinates as location text.
func FallbackLabel(c model.Coordinates) string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lng)
}

// Resolve looks up the address for c, falling back to the raw
// coordinate text when the geocoder is absent or fails.
func Resolve(ctx context.Context, rg ReverseGeocoder, c model.Coordinates) string {
	if rg == nil {
		return FallbackLabel(c)
	}
	addr, err := rg.ReverseGeocode(ctx, c)
	if err != nil || addr == "" {
		return FallbackLabel(c)
	}
	return addr
}

package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapor/internal/model"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want string
	}{
		{
			name: "permission denied",
			code: PermissionDenied,
			want: "Gagal mendapatkan lokasi. Izin akses lokasi ditolak. Mohon aktifkan izin lokasi di pengaturan perangkat Anda.",
		},
		{
			name: "position unavailable",
			code: PositionUnavailable,
			want: "Gagal mendapatkan lokasi. Informasi lokasi tidak tersedia. Pastikan GPS perangkat Anda aktif.",
		},
		{
			name: "timeout",
			code: Timeout,
			want: "Gagal mendapatkan lokasi. Permintaan lokasi melewati batas waktu. Coba lagi nanti.",
		},
		{
			name: "unknown code",
			code: ErrorCode(99),
			want: "Gagal mendapatkan lokasi. Terjadi kesalahan yang tidak diketahui.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &Error{Code: tt.code}
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestFallbackLabel(t *testing.T) {
	label := FallbackLabel(model.Coordinates{Lat: -6.192513, Lng: 106.882713})
	assert.Equal(t, "-6.192513, 106.882713", label)
}

func TestResolve_NilGeocoder(t *testing.T) {
	got := Resolve(context.Background(), nil, model.Coordinates{Lat: -6.19, Lng: 106.88})
	assert.Equal(t, "-6.190000, 106.880000", got)
}

func TestNominatim_ReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Jl. Pemuda No. 10, Rawamangun, Jakarta Timur"}`))
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL)
	addr, err := n.ReverseGeocode(context.Background(), model.Coordinates{Lat: -6.19, Lng: 106.88})
	require.NoError(t, err)
	assert.Equal(t, "Jl. Pemuda No. 10, Rawamangun, Jakarta Timur", addr)
}

func TestNominatim_ReverseGeocodeFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode ErrorCode
	}{
		{name: "forbidden maps to permission denied", status: http.StatusForbidden, wantCode: PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			n := NewNominatim(srv.URL)
			_, err := n.ReverseGeocode(context.Background(), model.Coordinates{})
			var geoErr *Error
			require.True(t, errors.As(err, &geoErr))
			assert.Equal(t, tt.wantCode, geoErr.Code)
		})
	}
}

func TestNominatim_ReverseGeocodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	n := NewNominatim(srv.URL)
	_, err := n.ReverseGeocode(ctx, model.Coordinates{})
	var geoErr *Error
	require.True(t, errors.As(err, &geoErr))
	assert.Equal(t, Timeout, geoErr.Code)
}

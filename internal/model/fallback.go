package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const fallbackBcryptCost = 10

// mustHash hashes a fallback credential at construction time so the
// built-in dataset never carries plain-text secrets.
func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), fallbackBcryptCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

// FallbackUsers is the built-in profile dataset used when the remote
// store is unreachable or empty on first run.
func FallbackUsers() []User {
	return []User{
		{
			ID:           "u1",
			PJLPNumber:   "50422231",
			Name:         "Annas Rizky",
			Role:         RolePetugas,
			IsActive:     true,
			Phone:        "081234567890",
			AvatarURL:    "https://picsum.photos/200",
			PasswordHash: mustHash("password123"),
		},
		{
			ID:           "u2",
			PJLPNumber:   "50422232",
			Name:         "Annaufal Arifa",
			Role:         RolePetugas,
			IsActive:     true,
			Phone:        "081234567891",
			AvatarURL:    "https://picsum.photos/201",
			PasswordHash: mustHash("password123"),
		},
		{
			ID:           "a1",
			PJLPNumber:   "admin",
			Name:         "Admin Kelurahan",
			Role:         RoleAdmin,
			IsActive:     true,
			AvatarURL:    "https://picsum.photos/202",
			PasswordHash: mustHash("admin"),
		},
	}
}

// FallbackReports is the built-in report dataset matching FallbackUsers.
func FallbackReports() []Report {
	now := time.Now()
	return []Report{
		{
			ID:          "r1",
			UserID:      "u1",
			UserName:    "Annas Rizky",
			Category:    CategoryKebersihan,
			Description: "Pembersihan sampah liar di Jl. Pemuda No. 10",
			Location:    "Jl. Pemuda No. 10, Rawamangun",
			ImageURL:    "https://picsum.photos/800/600",
			Status:      StatusPending,
			CreatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          "r2",
			UserID:      "u2",
			UserName:    "Annaufal Arifa",
			Category:    CategoryKerusakan,
			Description: "Trotoar amblas sedalam 10cm",
			Location:    "Jl. Balai Pustaka Timur",
			ImageURL:    "https://picsum.photos/800/601",
			Status:      StatusAccepted,
			CreatedAt:   now.Add(-48 * time.Hour),
		},
		{
			ID:          "r3",
			UserID:      "u1",
			UserName:    "Annas Rizky",
			Category:    CategorySaluran,
			Description: "Pembersihan got mampet karena lumpur",
			Location:    "RT 04 / RW 02",
			ImageURL:    "https://picsum.photos/800/602",
			Status:      StatusRejected,
			Feedback:    "Foto kurang jelas, tolong ambil ulang",
			CreatedAt:   now.Add(-72 * time.Hour),
		},
	}
}

package database

import (
	"log"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123456"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}
	admins := []model.User{
		{Email: "admin@damascus-guide.sy", Password: hashPassword, Role: constants.ROLE_ADMIN, IsVerified: true, Language: "ar"},
		{Email: "support@damascus-guide.sy", Password: hashPassword, Role: constants.ROLE_AGENT, IsVerified: true, Language: "ar"},
	}
	for _, admin := range admins {
		if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
			log.Println("failed to seed user:", admin.Email, "error:", err)
		}
	}

	places := []model.Place{
		{
			NameAr: "الجامع الأموي", NameEn: "Umayyad Mosque",
			Category: "mosque", EntryFee: 0,
			AddressAr: strPtr("دمشق القديمة"), AddressEn: strPtr("Old Damascus"),
			Latitude: f64Ptr(33.5118), Longitude: f64Ptr(36.3066),
			DescriptionAr: strPtr("أحد أقدم وأعظم المساجد في العالم الإسلامي"),
		},
		{
			NameAr: "سوق الحميدية", NameEn: "Al-Hamidiyah Souq",
			Category: "market", EntryFee: 0,
			AddressAr: strPtr("دمشق القديمة"), AddressEn: strPtr("Old Damascus"),
			Latitude: f64Ptr(33.5125), Longitude: f64Ptr(36.3031),
		},
		{
			NameAr: "قصر العظم", NameEn: "Azm Palace",
			Category: "museum", EntryFee: 5000,
			AddressAr: strPtr("البزورية، دمشق القديمة"), AddressEn: strPtr("Al-Buzuriyah, Old Damascus"),
			Latitude: f64Ptr(33.5102), Longitude: f64Ptr(36.3064),
		},
		{
			NameAr: "فندق بيت الوالي", NameEn: "Beit Al Wali Hotel",
			Category: "hotel", EntryFee: 150000,
			AddressAr: strPtr("باب توما، دمشق القديمة"), AddressEn: strPtr("Bab Touma, Old Damascus"),
			Latitude: f64Ptr(33.5139), Longitude: f64Ptr(36.3129),
		},
	}
	for _, place := range places {
		place.Slug = slug.Make(place.NameEn)
		if err := db.Where(model.Place{Slug: place.Slug}).FirstOrCreate(&place).Error; err != nil {
			log.Println("failed to seed place:", place.NameEn, "error:", err)
		}
	}
}

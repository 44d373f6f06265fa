package handler

import (
	"math"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetPlaces(c *fiber.Ctx) error {
	db := database.DB
	page, limit := utils.ParsePagination(c, 12)

	query := db.Model(&model.Place{}).Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name_ar ILIKE ? OR name_en ILIKE ?", like, like)
	}
	if minRating := c.QueryFloat("minRating", 0); minRating > 0 {
		query = query.Where("average_rating >= ?", minRating)
	}

	switch c.Query("sort") {
	case "rating":
		query = query.Order("average_rating DESC")
	case "popular":
		query = query.Order("views_count DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	var places []model.Place
	err := utils.ApplyPagination(query, limit, page).
		Preload("Images", "is_primary = ?", true).
		Find(&places).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"places":     places,
		"pagination": model.NewPagination(page, limit, count),
	})
}

// GetNearbyPlaces filters by straight-line distance from the given point.
// The catalog is small enough to distance-check in memory.
func GetNearbyPlaces(c *fiber.Ctx) error {
	db := database.DB
	lat := c.QueryFloat("lat", 0)
	lng := c.QueryFloat("lng", 0)
	radiusKm := c.QueryFloat("radius", 5)
	if lat == 0 || lng == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_NOT_FOUND, nil)
	}

	var places []model.Place
	err := db.Where("is_active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Find(&places).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	type placeWithDistance struct {
		model.Place
		DistanceKm float64 `json:"distanceKm"`
	}
	nearby := []placeWithDistance{}
	for _, p := range places {
		d := helper.HaversineKm(lat, lng, *p.Latitude, *p.Longitude)
		if d <= radiusKm {
			nearby = append(nearby, placeWithDistance{Place: p, DistanceKm: d})
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nearby)
}

type ratingBucket struct {
	Rating float64
	Count  int64
}

// ratingDistribution folds grouped rating rows into fixed 1..5 star buckets.
// Half-star ratings round to the nearest star.
func ratingDistribution(buckets []ratingBucket) map[int]int64 {
	dist := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, b := range buckets {
		star := int(math.Round(b.Rating))
		if star < 1 {
			star = 1
		}
		if star > 5 {
			star = 5
		}
		dist[star] += b.Count
	}
	return dist
}

// placeDetail assembles the full detail payload: the place itself, its
// rating breakdown, similar places, and what the caller already did here.
func placeDetail(c *fiber.Ctx, db *gorm.DB, place *model.Place) error {
	var buckets []ratingBucket
	db.Model(&model.Review{}).Where("place_id = ?", place.ID).
		Select("rating, COUNT(*) AS count").Group("rating").Scan(&buckets)

	var similar []model.Place
	db.Where("category = ? AND id <> ? AND is_active = ?", place.Category, place.ID, true).
		Order("average_rating DESC").Limit(6).
		Preload("Images", "is_primary = ?", true).
		Find(&similar)

	isFavorite := false
	var userReview *model.Review
	if claim, err := helper.GetUserFromToken(c); err == nil {
		var fav model.Favorite
		if db.Where("user_id = ? AND place_id = ?", claim.UserId, place.ID).First(&fav).Error == nil {
			isFavorite = true
		}
		var review model.Review
		if db.Where("user_id = ? AND place_id = ?", claim.UserId, place.ID).First(&review).Error == nil {
			userReview = &review
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"place":              place,
		"ratingDistribution": ratingDistribution(buckets),
		"similarPlaces":      similar,
		"isFavorite":         isFavorite,
		"userReview":         userReview,
	})
}

func GetPlaceBySlug(c *fiber.Ctx) error {
	db := database.DB
	slugParam := c.Params("slug")

	var place model.Place
	err := db.Where("slug = ? AND is_active = ?", slugParam, true).
		Preload("Images").
		First(&place).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_PLACE_NOT_FOUND, err)
	}

	db.Model(&place).UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	return placeDetail(c, db, &place)
}

func GetPlaceById(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)

	var place model.Place
	if err := db.Preload("Images").First(&place, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_PLACE_NOT_FOUND, err)
	}
	db.Model(&place).UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	return placeDetail(c, db, &place)
}

func CreatePlace(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	input, ok := c.Locals("CreatePlaceInput").(model.CreatePlaceInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	place := model.Place{
		NameAr:        input.NameAr,
		NameEn:        input.NameEn,
		Slug:          helper.GenerateUniquePlaceSlug(input.NameEn),
		DescriptionAr: utils.StringPtr(input.DescriptionAr),
		DescriptionEn: utils.StringPtr(input.DescriptionEn),
		Category:      input.Category,
		AddressAr:     utils.StringPtr(input.AddressAr),
		AddressEn:     utils.StringPtr(input.AddressEn),
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		OpeningHours:  utils.StringPtr(input.OpeningHours),
		EntryFee:      input.EntryFee,
		ContactPhone:  utils.StringPtr(input.ContactPhone),
		ContactEmail:  utils.StringPtr(input.ContactEmail),
		Website:       utils.StringPtr(input.Website),
		IsActive:      true,
	}
	for i, img := range input.Images {
		place.Images = append(place.Images, model.PlaceImage{
			ImageUrl:     img.Url,
			CaptionAr:    utils.StringPtr(img.CaptionAr),
			CaptionEn:    utils.StringPtr(img.CaptionEn),
			IsPrimary:    i == 0,
			DisplayOrder: i,
			UploadedBy:   claim.UserId,
		})
	}

	if err := db.Create(&place).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_PLACE_CREATED, place)
}

func UpdatePlace(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)

	var place model.Place
	if err := db.First(&place, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_PLACE_NOT_FOUND, err)
	}

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_PLACE_REQUIRED, err)
	}
	// Column whitelist; anything else in the payload is ignored.
	allowed := map[string]string{
		"nameAr": "name_ar", "nameEn": "name_en",
		"descriptionAr": "description_ar", "descriptionEn": "description_en",
		"category": "category", "addressAr": "address_ar", "addressEn": "address_en",
		"latitude": "latitude", "longitude": "longitude",
		"openingHours": "opening_hours", "entryFee": "entry_fee",
		"contactPhone": "contact_phone", "contactEmail": "contact_email",
		"website": "website", "featuredImage": "featured_image", "isActive": "is_active",
	}
	updates := map[string]interface{}{}
	for key, value := range fields {
		if column, ok := allowed[key]; ok {
			updates[column] = value
		}
	}
	if len(updates) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_PLACE_REQUIRED, nil)
	}

	if err := db.Model(&place).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_PLACE_UPDATED, place)
}

// DeletePlace deactivates rather than removes, so existing bookings and
// reviews keep their reference.
func DeletePlace(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)

	res := db.Model(&model.Place{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_PLACE_NOT_FOUND, nil)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_PLACE_DELETED, nil)
}

// UploadPlaceImage stores the file on Cloudinary and records the URL.
func UploadPlaceImage(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	var place model.Place
	if err := db.First(&place, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_PLACE_NOT_FOUND, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_PLACE_REQUIRED, err)
	}

	url, _, err := helper.UploadImage(c.Context(), file, "places")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	image := model.PlaceImage{
		PlaceId:    place.ID,
		ImageUrl:   url,
		UploadedBy: claim.UserId,
	}
	if err := db.Create(&image).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_PLACE_UPDATED, image)
}

// GetCategories lists the fixed place categories for client filters.
func GetCategories(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, constants.PlaceCategories)
}

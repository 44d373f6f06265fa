package handler

import (
	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetMyItineraries(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}

	var itineraries []model.Itinerary
	err = db.Where("user_id = ?", claim.UserId).
		Preload("Days.Items.Place").
		Order("created_at DESC").
		Find(&itineraries).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, itineraries)
}

// GetPublicItineraries lists the community feed.
func GetPublicItineraries(c *fiber.Ctx) error {
	db := database.DB
	page, limit := utils.ParsePagination(c, 12)

	query := db.Model(&model.Itinerary{}).Where("is_public = ?", true)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	var itineraries []model.Itinerary
	err := utils.ApplyPagination(query, limit, page).
		Preload("User").
		Order("likes_count DESC, created_at DESC").
		Find(&itineraries).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"itineraries": itineraries,
		"pagination":  model.NewPagination(page, limit, count),
	})
}

func GetItineraryById(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)

	var itinerary model.Itinerary
	err := db.Preload("Days", func(q *gorm.DB) *gorm.DB { return q.Order("day_number") }).
		Preload("Days.Items", func(q *gorm.DB) *gorm.DB { return q.Order("sort_order") }).
		Preload("Days.Items.Place").
		First(&itinerary, id).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_ITINERARY_NOT_FOUND, err)
	}

	if !itinerary.IsPublic {
		claim, err := helper.GetUserFromToken(c)
		if err != nil || claim.UserId != itinerary.UserId {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.MSG_FORBIDDEN, nil)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, itinerary)
}

func CreateItinerary(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	input, ok := c.Locals("CreateItineraryInput").(model.CreateItineraryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	durationDays := input.DurationDays
	if durationDays < 1 {
		durationDays = len(input.Days)
		if durationDays < 1 {
			durationDays = 1
		}
	}

	itinerary := model.Itinerary{
		UserId:        claim.UserId,
		TitleAr:       input.TitleAr,
		TitleEn:       utils.StringPtr(input.TitleEn),
		DescriptionAr: utils.StringPtr(input.DescriptionAr),
		DurationDays:  durationDays,
		IsPublic:      input.IsPublic,
	}
	for _, day := range input.Days {
		d := model.ItineraryDay{
			DayNumber: day.DayNumber,
			TitleAr:   utils.StringPtr(day.TitleAr),
		}
		for _, item := range day.Items {
			durationMin := item.DurationMin
			if durationMin <= 0 {
				durationMin = 60
			}
			d.Items = append(d.Items, model.ItineraryItem{
				PlaceId:     item.PlaceId,
				StartTime:   utils.StringPtr(item.StartTime),
				DurationMin: durationMin,
				Notes:       utils.StringPtr(item.Notes),
				SortOrder:   item.SortOrder,
			})
		}
		itinerary.Days = append(itinerary.Days, d)
	}

	if err := db.Create(&itinerary).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_ITINERARY_CREATED, itinerary)
}

func UpdateItinerary(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)
	input, ok := c.Locals("UpdateItineraryInput").(model.UpdateItineraryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	var itinerary model.Itinerary
	if err := db.Where("id = ? AND user_id = ?", id, claim.UserId).First(&itinerary).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_ITINERARY_NOT_FOUND, err)
	}

	if err := copier.CopyWithOption(&itinerary, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if err := db.Save(&itinerary).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_ITINERARY_UPDATED, itinerary)
}

// nextDayNumber picks the day number after the highest existing one.
func nextDayNumber(existing []int) int {
	next := 1
	for _, n := range existing {
		if n >= next {
			next = n + 1
		}
	}
	return next
}

// nextSortOrder appends after the highest existing order within a day.
func nextSortOrder(existing []int) int {
	next := 0
	for _, n := range existing {
		if n >= next {
			next = n + 1
		}
	}
	return next
}

// LikeItinerary bumps the like counter on a public itinerary.
func LikeItinerary(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	var itinerary model.Itinerary
	if err := db.First(&itinerary, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_ITINERARY_NOT_FOUND, err)
	}
	if !itinerary.IsPublic && itinerary.UserId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.MSG_FORBIDDEN, nil)
	}

	err = db.Model(&itinerary).UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"likesCount": itinerary.LikesCount + 1})
}

// AddItineraryDay appends a day; an explicit dayNumber is honored,
// otherwise the next free number is used.
func AddItineraryDay(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	var itinerary model.Itinerary
	if err := db.Where("id = ? AND user_id = ?", id, claim.UserId).First(&itinerary).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_ITINERARY_NOT_FOUND, err)
	}

	var body struct {
		DayNumber int    `json:"dayNumber"`
		TitleAr   string `json:"titleAr"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_INTERNAL_ERROR, err)
	}

	dayNumber := body.DayNumber
	if dayNumber < 1 {
		var existing []int
		db.Model(&model.ItineraryDay{}).Where("itinerary_id = ?", itinerary.ID).
			Pluck("day_number", &existing)
		dayNumber = nextDayNumber(existing)
	}

	day := model.ItineraryDay{
		ItineraryId: itinerary.ID,
		DayNumber:   dayNumber,
		TitleAr:     utils.StringPtr(body.TitleAr),
	}
	if err := db.Create(&day).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if dayNumber > itinerary.DurationDays {
		db.Model(&itinerary).Update("duration_days", dayNumber)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_ITINERARY_DAY_ADDED, day)
}

// AddItineraryItem appends a place to one day of the caller's itinerary.
func AddItineraryItem(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)
	dayID, err := c.ParamsInt("dayId")
	if err != nil || dayID < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_ITINERARY_DAY_NOT_FOUND, err)
	}

	var itinerary model.Itinerary
	if err := db.Where("id = ? AND user_id = ?", id, claim.UserId).First(&itinerary).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_ITINERARY_NOT_FOUND, err)
	}
	var day model.ItineraryDay
	if err := db.Where("id = ? AND itinerary_id = ?", dayID, itinerary.ID).First(&day).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_ITINERARY_DAY_NOT_FOUND, err)
	}

	var input model.ItineraryItemInput
	if err := c.BodyParser(&input); err != nil || input.PlaceId == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_PLACE_NOT_FOUND, err)
	}
	var place model.Place
	if err := db.First(&place, input.PlaceId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_PLACE_NOT_FOUND, err)
	}

	durationMin := input.DurationMin
	if durationMin <= 0 {
		durationMin = 60
	}
	sortOrder := input.SortOrder
	if sortOrder <= 0 {
		var existing []int
		db.Model(&model.ItineraryItem{}).Where("itinerary_day_id = ?", day.ID).
			Pluck("sort_order", &existing)
		sortOrder = nextSortOrder(existing)
	}

	item := model.ItineraryItem{
		ItineraryDayId: day.ID,
		PlaceId:        input.PlaceId,
		StartTime:      utils.StringPtr(input.StartTime),
		DurationMin:    durationMin,
		Notes:          utils.StringPtr(input.Notes),
		SortOrder:      sortOrder,
	}
	if err := db.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_ITINERARY_ITEM_ADDED, item)
}

func DeleteItinerary(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	var itinerary model.Itinerary
	if err := db.Where("id = ? AND user_id = ?", id, claim.UserId).First(&itinerary).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_ITINERARY_NOT_FOUND, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var dayIDs []uint
		if err := tx.Model(&model.ItineraryDay{}).
			Where("itinerary_id = ?", itinerary.ID).
			Pluck("id", &dayIDs).Error; err != nil {
			return err
		}
		if len(dayIDs) > 0 {
			if err := tx.Where("itinerary_day_id IN ?", dayIDs).Delete(&model.ItineraryItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("itinerary_id = ?", itinerary.ID).Delete(&model.ItineraryDay{}).Error; err != nil {
			return err
		}
		return tx.Delete(&itinerary).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_ITINERARY_DELETED, nil)
}

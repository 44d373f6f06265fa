package handler

import (
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// refreshPlaceRating recomputes the denormalized rating columns after any
// review write.
func refreshPlaceRating(db *gorm.DB, placeID uint) error {
	var result struct {
		Avg   float64
		Count int64
	}
	err := db.Model(&model.Review{}).
		Where("place_id = ?", placeID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&result).Error
	if err != nil {
		return err
	}
	return db.Model(&model.Place{}).Where("id = ?", placeID).Updates(map[string]interface{}{
		"average_rating": result.Avg,
		"total_reviews":  result.Count,
	}).Error
}

// reviewSortClause maps the sort query parameter onto an ORDER BY clause.
// Unknown values fall back to newest-first.
func reviewSortClause(sort string) string {
	switch sort {
	case "oldest":
		return "created_at ASC"
	case "highest":
		return "rating DESC, created_at DESC"
	case "lowest":
		return "rating ASC, created_at DESC"
	case "helpful":
		return "helpful_count DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

func GetPlaceReviews(c *fiber.Ctx) error {
	db := database.DB
	placeID, _ := c.Locals("inputId").(uint)
	page, limit := utils.ParsePagination(c, 10)

	query := db.Model(&model.Review{}).Where("place_id = ?", placeID)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	var reviews []model.Review
	err := utils.ApplyPagination(query, limit, page).
		Preload("User").
		Order(reviewSortClause(c.Query("sort"))).
		Find(&reviews).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"reviews":    reviews,
		"pagination": model.NewPagination(page, limit, count),
	})
}

// GetMyReviews lists the caller's own reviews across all places.
func GetMyReviews(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	page, limit := utils.ParsePagination(c, 10)

	query := db.Model(&model.Review{}).Where("user_id = ?", claim.UserId)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	var reviews []model.Review
	err = utils.ApplyPagination(query, limit, page).
		Preload("Place").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"reviews":    reviews,
		"pagination": model.NewPagination(page, limit, count),
	})
}

func CreateReview(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	placeID, _ := c.Locals("inputId").(uint)
	input, ok := c.Locals("CreateReviewInput").(model.CreateReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	var place model.Place
	if err := db.First(&place, placeID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_PLACE_NOT_FOUND, err)
	}

	var existing model.Review
	if err := db.Where("place_id = ? AND user_id = ?", placeID, claim.UserId).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.MSG_REVIEW_EXISTS, nil)
	}

	review := model.Review{
		PlaceId:   placeID,
		UserId:    claim.UserId,
		Rating:    input.Rating,
		CommentAr: utils.StringPtr(input.CommentAr),
		CommentEn: utils.StringPtr(input.CommentEn),
	}
	if input.VisitDate != "" {
		if t, err := time.Parse("2006-01-02", input.VisitDate); err == nil {
			review.VisitDate = &t
		}
	}

	// A completed booking at the place marks the review as a verified visit.
	var completed int64
	db.Model(&model.Booking{}).
		Where("user_id = ? AND place_id = ? AND status = ?", claim.UserId, placeID, constants.BOOKING_COMPLETED).
		Count(&completed)
	review.IsVerifiedVisit = completed > 0

	if err := db.Create(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if err := refreshPlaceRating(db, placeID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_REVIEW_CREATED, review)
}

func UpdateReview(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)
	input, ok := c.Locals("CreateReviewInput").(model.CreateReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	var review model.Review
	if err := db.Where("id = ? AND user_id = ?", id, claim.UserId).First(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_REVIEW_NOT_FOUND, err)
	}

	updates := map[string]interface{}{"rating": input.Rating}
	if input.CommentAr != "" {
		updates["comment_ar"] = input.CommentAr
	}
	if input.CommentEn != "" {
		updates["comment_en"] = input.CommentEn
	}
	if err := db.Model(&review).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if err := refreshPlaceRating(db, review.PlaceId); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_REVIEW_UPDATED, review)
}

func DeleteReview(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	var review model.Review
	query := db.Where("id = ?", id)
	if claim.Role != constants.ROLE_ADMIN {
		query = query.Where("user_id = ?", claim.UserId)
	}
	if err := query.First(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_REVIEW_NOT_FOUND, err)
	}

	if err := db.Delete(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if err := refreshPlaceRating(db, review.PlaceId); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_REVIEW_DELETED, nil)
}

// MarkReviewHelpful bumps the helpful counter.
func MarkReviewHelpful(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)

	res := db.Model(&model.Review{}).Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_REVIEW_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

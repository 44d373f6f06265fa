package handler

import (
	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
)

func GetMyFavorites(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	page, limit := utils.ParsePagination(c, 12)

	query := db.Model(&model.Favorite{}).Where("user_id = ?", claim.UserId)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	var favorites []model.Favorite
	err = utils.ApplyPagination(query, limit, page).
		Preload("Place").
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"favorites":  favorites,
		"pagination": model.NewPagination(page, limit, count),
	})
}

// AddFavorite upserts: saving a place already in the list updates its
// category/notes instead of failing the unique index.
func AddFavorite(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	placeID, _ := c.Locals("inputId").(uint)
	input, _ := c.Locals("FavoriteInput").(model.FavoriteInput)

	var place model.Place
	if err := db.First(&place, placeID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_PLACE_NOT_FOUND, err)
	}

	category := input.Category
	if category == "" {
		category = "favorite"
	}

	var favorite model.Favorite
	err = db.Where("user_id = ? AND place_id = ?", claim.UserId, placeID).First(&favorite).Error
	if err == nil {
		updates := map[string]interface{}{"category": category}
		if input.Notes != "" {
			updates["notes"] = input.Notes
		}
		if err := db.Model(&favorite).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
		}
		return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_FAVORITE_UPDATED, favorite)
	}

	favorite = model.Favorite{
		UserId:   claim.UserId,
		PlaceId:  placeID,
		Category: category,
		Notes:    utils.StringPtr(input.Notes),
	}
	if err := db.Create(&favorite).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_FAVORITE_ADDED, favorite)
}

func RemoveFavorite(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	placeID, _ := c.Locals("inputId").(uint)

	res := db.Where("user_id = ? AND place_id = ?", claim.UserId, placeID).Delete(&model.Favorite{})
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_FAVORITE_NOT_FOUND, nil)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_FAVORITE_REMOVED, nil)
}

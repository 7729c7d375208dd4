package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/initializers"
	"github.com/kamaumbugua/soko-api/models"
	"gorm.io/gorm"
)

func categoryNameTaken(name string, excludeId int) (bool, error) {
	var count int64
	query := initializers.DB.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeId > 0 {
		query = query.Where("id <> ?", excludeId)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	taken, err := categoryNameTaken(category.Name, 0)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to validate category name")
		return
	}
	if taken {
		sendErrorResponse(ctx, http.StatusBadRequest, "A category with this name already exists")
		return
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		log.Println("Category creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create category")
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := initializers.DB.Order("name asc").Find(&categories); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch categories")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

func GetCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve category")
		}
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func UpdateCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve category")
		}
		return
	}

	var update models.Category
	if err := ctx.ShouldBindJSON(&update); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	taken, err := categoryNameTaken(update.Name, categoryId)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to validate category name")
		return
	}
	if taken {
		sendErrorResponse(ctx, http.StatusBadRequest, "A category with this name already exists")
		return
	}

	category.Name = update.Name
	category.Description = update.Description
	category.Active = update.Active

	if err := initializers.DB.Save(&category).Error; err != nil {
		log.Println("Category update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update category")
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory refuses to delete a category that still has products.
func DeleteCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var productCount int64
	if err := initializers.DB.Model(&models.Product{}).
		Where("category_id = ?", categoryId).
		Count(&productCount).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to check category usage")
		return
	}
	if productCount > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Cannot delete a category that still has products")
		return
	}

	result := initializers.DB.Delete(&models.Category{}, categoryId)
	if result.Error != nil {
		log.Println("Category delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
}

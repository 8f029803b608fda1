package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const (
	msgCategoryNotFound = "Категория не найдена"
	msgCategoryConflict = "Категория с таким названием и типом уже существует."
)

func validateCategory(p payload) (models.Category, []string) {
	var errs []string
	category := models.Category{
		Name:  p.str("name"),
		Type:  models.TransactionType(p.str("type")),
		Icon:  p.str("icon"),
		Color: p.str("color"),
	}

	if category.Name == "" {
		errs = append(errs, "Название категории обязательно.")
	}
	if !category.Type.Valid() {
		errs = append(errs, `Тип категории должен быть "income" или "expense".`)
	}
	if category.Icon == "" {
		errs = append(errs, "Выберите иконку для категории.")
	}
	if !hexColor.MatchString(category.Color) {
		errs = append(errs, "Укажите корректный цвет категории в формате hex.")
	}
	return category, errs
}

// Получение всех категорий
func ListCategoriesHandler(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := store.ListCategories(c.Request.Context())
		if err != nil {
			respondInternal(c, "Ошибка при получении категорий", err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// Создание новой категории
func CreateCategoryHandler(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := readPayload(c)
		if err != nil {
			respondError(c, http.StatusBadRequest, msgBadPayload)
			return
		}
		category, errs := validateCategory(p)
		if len(errs) > 0 {
			respondError(c, http.StatusBadRequest, validationMessage(errs))
			return
		}

		if err := store.CreateCategory(c.Request.Context(), &category); err != nil {
			if errors.Is(err, database.ErrConflict) {
				respondError(c, http.StatusConflict, msgCategoryConflict)
				return
			}
			respondInternal(c, "Ошибка при создании категории", err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// Обновление категории
func UpdateCategoryHandler(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidID)
			return
		}
		p, err := readPayload(c)
		if err != nil {
			respondError(c, http.StatusBadRequest, msgBadPayload)
			return
		}
		category, errs := validateCategory(p)
		if len(errs) > 0 {
			respondError(c, http.StatusBadRequest, validationMessage(errs))
			return
		}
		category.ID = id

		err = store.UpdateCategory(c.Request.Context(), &category)
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(c, http.StatusNotFound, msgCategoryNotFound)
		case errors.Is(err, database.ErrConflict):
			respondError(c, http.StatusConflict, msgCategoryConflict)
		case err != nil:
			respondInternal(c, "Ошибка при обновлении категории", err)
		default:
			c.JSON(http.StatusOK, category)
		}
	}
}

// Удаление категории
func DeleteCategoryHandler(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidID)
			return
		}

		err := store.DeleteCategory(c.Request.Context(), id)
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(c, http.StatusNotFound, msgCategoryNotFound)
		case err != nil:
			respondInternal(c, "Ошибка при удалении категории", err)
		default:
			c.Status(http.StatusNoContent)
		}
	}
}

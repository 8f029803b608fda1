package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/goals"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const msgGoalNotFound = "Цель не найдена"

// validateGoal проверяет тело цели. Принимает и camelCase, и snake_case ключи.
func validateGoal(p payload) (models.GoalInput, []string) {
	var errs []string
	in := models.GoalInput{
		Name: p.str("name"),
		Type: models.TransactionType(p.str("type")),
	}

	if in.Name == "" {
		errs = append(errs, "Название цели обязательно.")
	}
	if !in.Type.Valid() {
		errs = append(errs, `Тип цели должен быть "income" или "expense".`)
	}

	target, ok := decimalValue(p.first("targetAmount", "target_amount"))
	switch {
	case !ok || !target.IsPositive():
		errs = append(errs, "Целевая сумма должна быть больше нуля.")
	case !models.AmountFits(target):
		errs = append(errs, "Целевая сумма должна содержать "+msgAmountRange)
	}
	in.TargetAmount = target

	start, err := models.ParseDate(p.str("startDate", "start_date"))
	if err != nil {
		errs = append(errs, "Некорректная начальная дата.")
	}
	in.StartDate = start

	interval, ok := positiveInt(p.first("intervalDays", "interval_days"))
	if !ok {
		errs = append(errs, "Укажите интервал обновления в днях (целое число больше нуля).")
	}
	in.IntervalDays = interval
	return in, errs
}

// respondGoalError переводит ошибки сервиса целей в ответ.
func respondGoalError(c *gin.Context, message string, err error) {
	var dateErr *goals.InvalidDateError
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(c, http.StatusNotFound, msgGoalNotFound)
	case errors.Is(err, database.ErrInvalidReference):
		respondError(c, http.StatusBadRequest, msgWalletNotFound)
	case errors.As(err, &dateErr):
		respondError(c, http.StatusBadRequest, "Некорректная начальная дата цели.")
	default:
		respondInternal(c, message, err)
	}
}

// ListGoalsHandler отдает цели кошелька с текущими периодами и прогрессом.
// Параметр asOf задает дату, на которую считаются периоды.
func ListGoalsHandler(service *goals.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := queryWalletID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidWallet)
			return
		}

		reference := service.Today()
		if asOf := c.Query("asOf"); asOf != "" {
			parsed, err := models.ParseDate(asOf)
			if err != nil {
				respondError(c, http.StatusBadRequest, "Некорректная дата asOf.")
				return
			}
			reference = parsed
		}

		views, err := service.ListAsOf(c.Request.Context(), walletID, reference)
		if err != nil {
			respondGoalError(c, "Ошибка при получении целей", err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetGoalHandler(service *goals.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidID)
			return
		}
		walletID, ok := queryWalletID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidWallet)
			return
		}

		view, err := service.Get(c.Request.Context(), id, walletID)
		if err != nil {
			respondGoalError(c, "Ошибка при получении цели", err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// readGoalInput разбирает кошелек и тело цели. Ошибка кошелька
// возвращается отдельно, без остальных сообщений.
func readGoalInput(c *gin.Context) (models.GoalInput, bool) {
	p, err := readPayload(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgBadPayload)
		return models.GoalInput{}, false
	}
	walletID, ok := positiveInt(p.first("walletId", "wallet_id"))
	if !ok {
		respondError(c, http.StatusBadRequest, msgInvalidWallet)
		return models.GoalInput{}, false
	}
	in, errs := validateGoal(p)
	if len(errs) > 0 {
		respondError(c, http.StatusBadRequest, validationMessage(errs))
		return models.GoalInput{}, false
	}
	in.WalletID = walletID
	return in, true
}

func CreateGoalHandler(store GoalStore, service *goals.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := readGoalInput(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		id, err := store.CreateGoal(ctx, in)
		if err != nil {
			respondGoalError(c, "Ошибка при создании цели", err)
			return
		}
		view, err := service.Get(ctx, id, in.WalletID)
		if err != nil {
			respondGoalError(c, "Ошибка при создании цели", err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

func UpdateGoalHandler(store GoalStore, service *goals.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidID)
			return
		}
		in, ok := readGoalInput(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		view, err := updateGoal(ctx, store, service, id, in)
		if err != nil {
			respondGoalError(c, "Ошибка при обновлении цели", err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func updateGoal(ctx context.Context, store GoalStore, service *goals.Service, id int, in models.GoalInput) (*models.GoalView, error) {
	if err := store.UpdateGoal(ctx, id, in); err != nil {
		return nil, err
	}
	return service.Get(ctx, id, in.WalletID)
}

func DeleteGoalHandler(store GoalStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidID)
			return
		}
		walletID, ok := queryWalletID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidWallet)
			return
		}

		if err := store.DeleteGoal(c.Request.Context(), id, walletID); err != nil {
			respondGoalError(c, "Ошибка при удалении цели", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/events"
	"github.com/valeriaulyamaeva/finance-tracker/internal/export"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const (
	msgTransactionNotFound = "Транзакция не найдена"

	codeCategoryNotFound     = "CATEGORY_NOT_FOUND"
	codeCategoryTypeMismatch = "CATEGORY_TYPE_MISMATCH"
)

// validateTransaction проверяет тело транзакции без кошелька.
func validateTransaction(p payload) (models.TransactionInput, []string) {
	var errs []string
	in := models.TransactionInput{
		Description: p.str("description"),
		Type:        models.TransactionType(p.str("type")),
	}

	if raw, ok := p["categories"]; ok && raw != nil {
		list, isList := raw.([]any)
		if !isList {
			errs = append(errs, "Категории должны передаваться списком ID.")
		} else {
			ids := make([]int, 0, len(list))
			for _, v := range list {
				id, valid := positiveInt(v)
				if !valid {
					errs = append(errs, "Категории должны содержать только целые положительные числа.")
					ids = nil
					break
				}
				ids = append(ids, id)
			}
			in.CategoryIDs = ids
		}
	}

	if in.Description == "" {
		errs = append(errs, "Описание обязательно.")
	}
	amount, ok := decimalValue(p.first("amount"))
	switch {
	case !ok || !amount.IsPositive():
		errs = append(errs, "Сумма должна быть числом больше нуля.")
	case !models.AmountFits(amount):
		errs = append(errs, "Сумма должна содержать "+msgAmountRange)
	}
	in.Amount = amount
	if !in.Type.Valid() {
		errs = append(errs, `Тип должен быть "income" или "expense".`)
	}
	date, err := models.ParseDate(p.str("date"))
	if err != nil {
		errs = append(errs, "Некорректная дата.")
	}
	in.Date = date
	return in, errs
}

// respondTransactionError переводит ошибки хранилища транзакций в ответ.
func respondTransactionError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(c, http.StatusNotFound, msgTransactionNotFound)
	case errors.Is(err, database.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Одна или несколько указанных категорий не найдены.",
			"code":    codeCategoryNotFound,
		})
	case errors.Is(err, database.ErrCategoryTypeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Категории должны совпадать по типу с транзакцией.",
			"code":    codeCategoryTypeMismatch,
		})
	case errors.Is(err, database.ErrInvalidReference):
		respondError(c, http.StatusBadRequest, msgWalletNotFound)
	default:
		respondInternal(c, message, err)
	}
}

// Получение транзакций кошелька
func ListTransactionsHandler(store TransactionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := queryWalletID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidWallet)
			return
		}

		transactions, err := store.ListTransactions(c.Request.Context(), walletID, 0)
		if err != nil {
			respondInternal(c, "Ошибка при получении транзакций", err)
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

// Создание транзакции
func CreateTransactionHandler(store TransactionStore, notifier Notifier) gin.HandlerFunc {
	notifier = notifierOrNop(notifier)
	return func(c *gin.Context) {
		p, err := readPayload(c)
		if err != nil {
			respondError(c, http.StatusBadRequest, msgBadPayload)
			return
		}
		in, errs := validateTransaction(p)
		walletID, ok := positiveInt(p.first("walletId"))
		if !ok {
			errs = append(errs, msgInvalidWallet)
		}
		if len(errs) > 0 {
			respondError(c, http.StatusBadRequest, validationMessage(errs))
			return
		}
		in.WalletID = walletID

		ctx := c.Request.Context()
		created, err := store.CreateTransaction(ctx, in)
		if err != nil {
			respondTransactionError(c, "Ошибка при создании транзакции", err)
			return
		}
		notifier.Notify(ctx, events.TransactionCreated, events.NewTransactionEvent(*created))
		c.JSON(http.StatusCreated, created)
	}
}

// Обновление транзакции
func UpdateTransactionHandler(store TransactionStore, notifier Notifier) gin.HandlerFunc {
	notifier = notifierOrNop(notifier)
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

		rawWallet := p.first("walletId")
		if rawWallet == nil {
			rawWallet = c.Query("walletId")
		}
		walletID, ok := positiveInt(rawWallet)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidWallet)
			return
		}

		in, errs := validateTransaction(p)
		if len(errs) > 0 {
			respondError(c, http.StatusBadRequest, validationMessage(errs))
			return
		}
		in.WalletID = walletID

		ctx := c.Request.Context()
		updated, err := store.UpdateTransaction(ctx, id, in)
		if err != nil {
			respondTransactionError(c, "Ошибка при обновлении транзакции", err)
			return
		}
		notifier.Notify(ctx, events.TransactionUpdated, events.NewTransactionEvent(*updated))
		c.JSON(http.StatusOK, updated)
	}
}

// Удаление транзакции
func DeleteTransactionHandler(store TransactionStore, notifier Notifier) gin.HandlerFunc {
	notifier = notifierOrNop(notifier)
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

		ctx := c.Request.Context()
		if err := store.DeleteTransaction(ctx, id, walletID); err != nil {
			respondTransactionError(c, "Ошибка при удалении транзакции", err)
			return
		}
		notifier.Notify(ctx, events.TransactionDeleted, events.TransactionEvent{
			TransactionID: id,
			WalletID:      walletID,
		})
		c.Status(http.StatusNoContent)
	}
}

// ExportTransactionsHandler отдает транзакции кошелька файлом Excel.
func ExportTransactionsHandler(wallets WalletStore, store TransactionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := queryWalletID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidWallet)
			return
		}
		if format := strings.ToLower(c.DefaultQuery("format", "xlsx")); format != "xlsx" {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Формат %q не поддерживается.", format))
			return
		}

		ctx := c.Request.Context()
		wallet, err := wallets.GetWallet(ctx, walletID)
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, msgWalletNotFound)
			return
		}
		if err != nil {
			respondInternal(c, "Ошибка при экспорте транзакций", err)
			return
		}

		transactions, err := store.ListTransactions(ctx, walletID, 0)
		if err != nil {
			respondInternal(c, "Ошибка при экспорте транзакций", err)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteTransactionsXLSX(&buf, *wallet, transactions); err != nil {
			respondInternal(c, "Ошибка при экспорте транзакций", err)
			return
		}

		fileName := export.FileName(walletID, models.Today())
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
		c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
	}
}

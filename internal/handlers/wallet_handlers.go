package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const (
	msgWalletNotFound = "Кошелек не найден"
	msgWalletConflict = "Кошелек с таким названием уже существует."
)

func validateWallet(p payload) (models.Wallet, []string) {
	var errs []string
	wallet := models.Wallet{
		Name:  p.str("name"),
		Icon:  p.str("icon"),
		Color: p.str("color"),
	}

	if wallet.Name == "" {
		errs = append(errs, "Название кошелька обязательно.")
	}
	if wallet.Icon == "" {
		errs = append(errs, "Выберите иконку для кошелька.")
	}
	if !hexColor.MatchString(wallet.Color) {
		errs = append(errs, "Укажите корректный цвет кошелька в формате hex.")
	}
	if description := p.str("description"); description != "" {
		wallet.Description = &description
	}
	return wallet, errs
}

func ListWalletsHandler(store WalletStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallets, err := store.ListWallets(c.Request.Context())
		if err != nil {
			respondInternal(c, "Ошибка при получении кошельков", err)
			return
		}
		c.JSON(http.StatusOK, wallets)
	}
}

func CreateWalletHandler(store WalletStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := readPayload(c)
		if err != nil {
			respondError(c, http.StatusBadRequest, msgBadPayload)
			return
		}
		wallet, errs := validateWallet(p)
		if len(errs) > 0 {
			respondError(c, http.StatusBadRequest, validationMessage(errs))
			return
		}

		if err := store.CreateWallet(c.Request.Context(), &wallet); err != nil {
			if errors.Is(err, database.ErrConflict) {
				respondError(c, http.StatusConflict, msgWalletConflict)
				return
			}
			respondInternal(c, "Ошибка при создании кошелька", err)
			return
		}
		c.JSON(http.StatusCreated, wallet)
	}
}

func UpdateWalletHandler(store WalletStore) gin.HandlerFunc {
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
		wallet, errs := validateWallet(p)
		if len(errs) > 0 {
			respondError(c, http.StatusBadRequest, validationMessage(errs))
			return
		}
		wallet.ID = id

		updated, err := store.UpdateWallet(c.Request.Context(), &wallet)
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(c, http.StatusNotFound, msgWalletNotFound)
		case errors.Is(err, database.ErrConflict):
			respondError(c, http.StatusConflict, msgWalletConflict)
		case err != nil:
			respondInternal(c, "Ошибка при обновлении кошелька", err)
		default:
			c.JSON(http.StatusOK, updated)
		}
	}
}

func DeleteWalletHandler(store WalletStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidID)
			return
		}

		err := store.DeleteWallet(c.Request.Context(), id)
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(c, http.StatusNotFound, msgWalletNotFound)
		case err != nil:
			respondInternal(c, "Ошибка при удалении кошелька", err)
		default:
			c.Status(http.StatusNoContent)
		}
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/goals"
	"github.com/valeriaulyamaeva/finance-tracker/models"
	"golang.org/x/sync/errgroup"
)

const recentTransactionsLimit = 5

type DashboardSources struct {
	Wallets      WalletStore
	Counter      EntityCounter
	Transactions TransactionStore
	Goals        *goals.Service
}

// DashboardHandler собирает сводку по кошельку, загружая разделы параллельно.
func DashboardHandler(src DashboardSources) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := queryWalletID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgInvalidWallet)
			return
		}

		today := src.Goals.Today()
		monthStart := models.NewDate(today.Year(), today.Month(), 1)
		monthEnd := models.DateOf(monthStart.AddDate(0, 1, -1))

		var (
			wallet      *models.Wallet
			dash        = models.Dashboard{WalletID: walletID}
			activeGoals []models.GoalView
		)

		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() error {
			var err error
			wallet, err = src.Wallets.GetWallet(ctx, walletID)
			return err
		})
		g.Go(func() error {
			var err error
			dash.WalletCount, dash.CategoryCount, err = src.Counter.CountEntities(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			dash.MonthTransactionCount, err = src.Transactions.CountTransactions(ctx, walletID, monthStart, monthEnd)
			return err
		})
		g.Go(func() error {
			var err error
			dash.RecentTransactions, err = src.Transactions.ListTransactions(ctx, walletID, recentTransactionsLimit)
			return err
		})
		g.Go(func() error {
			views, err := src.Goals.ListAsOf(ctx, walletID, today)
			if err != nil {
				return err
			}
			activeGoals = goals.Active(views)
			return nil
		})

		if err := g.Wait(); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				respondError(c, http.StatusNotFound, msgWalletNotFound)
				return
			}
			respondInternal(c, "Ошибка при получении сводки", err)
			return
		}

		dash.TotalIncome = wallet.TotalIncome
		dash.TotalExpense = wallet.TotalExpense
		dash.Balance = wallet.Balance
		dash.ActiveGoals = activeGoals
		if dash.RecentTransactions == nil {
			dash.RecentTransactions = []models.Transaction{}
		}
		c.JSON(http.StatusOK, dash)
	}
}

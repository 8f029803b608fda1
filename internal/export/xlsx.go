package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/valeriaulyamaeva/finance-tracker/models"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName       = "Транзакции"
)

var headers = []string{"Дата", "Описание", "Тип", "Сумма", "Категории"}

var typeLabels = map[models.TransactionType]string{
	models.TypeIncome:  "Доход",
	models.TypeExpense: "Расход",
}

// WriteTransactionsXLSX пишет транзакции кошелька в книгу Excel.
func WriteTransactionsXLSX(w io.Writer, wallet models.Wallet, transactions []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("ошибка создания листа: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for i, tr := range transactions {
		row := i + 2
		values := []any{
			tr.Date.String(),
			tr.Description,
			typeLabels[tr.Type],
			tr.Amount.InexactFloat64(),
			categoryNames(tr.Categories),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	totalRow := len(transactions) + 3
	summary := [][2]any{
		{"Кошелек", wallet.Name},
		{"Доходы", wallet.TotalIncome.InexactFloat64()},
		{"Расходы", wallet.TotalExpense.InexactFloat64()},
		{"Баланс", wallet.Balance.InexactFloat64()},
	}
	for i, pair := range summary {
		row := totalRow + i
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), pair[0])
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), pair[1])
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 32)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 30)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("ошибка записи книги: %w", err)
	}
	return nil
}

// FileName возвращает имя файла выгрузки для кошелька.
func FileName(walletID int, today models.Date) string {
	return fmt.Sprintf("transactions_%d_%s.xlsx", walletID, strings.ReplaceAll(today.String(), "-", ""))
}

func categoryNames(refs []models.CategoryRef) string {
	names := make([]string, len(refs))
	for i, c := range refs {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

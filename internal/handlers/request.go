package handlers

import (
	"bytes"
	"errors"
	"io"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/internal/log"
)

var (
	errBadPayload = errors.New("некорректный формат данных")
	hexColor      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

const (
	msgInvalidID     = "Некорректный ID."
	msgInvalidWallet = "Некорректный кошелек."
	msgBadPayload    = "Некорректный формат данных."
)

// payload — тело запроса в виде словаря. Числа остаются json.Number,
// чтобы не терять точность сумм.
type payload map[string]any

func readPayload(c *gin.Context) (payload, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errBadPayload
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, errBadPayload
	}
	if p == nil {
		p = payload{}
	}
	return p, nil
}

// first возвращает первое непустое значение среди ключей.
func (p payload) first(keys ...string) any {
	for _, key := range keys {
		if v, ok := p[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func (p payload) str(keys ...string) string {
	s, _ := p.first(keys...).(string)
	return strings.TrimSpace(s)
}

// positiveInt принимает целое число больше нуля в виде числа или строки.
func positiveInt(v any) (int, bool) {
	var f float64
	switch val := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = val
	default:
		return 0, false
	}
	if f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// decimalValue принимает сумму в виде числа или строки.
func decimalValue(v any) (decimal.Decimal, bool) {
	var raw string
	switch val := v.(type) {
	case json.Number:
		raw = val.String()
	case string:
		raw = strings.TrimSpace(val)
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

const msgAmountRange = "не более двух знаков после запятой и меньше 1000000000000."

func pathID(c *gin.Context) (int, bool) {
	return positiveInt(c.Param("id"))
}

func queryWalletID(c *gin.Context) (int, bool) {
	return positiveInt(c.Query("walletId"))
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondInternal пишет ошибку в лог запроса и отвечает 500 общим сообщением.
func respondInternal(c *gin.Context, message string, err error) {
	ctx := c.Request.Context()
	log.FromContext(ctx).ErrorContext(ctx, message, log.FieldError, err)
	respondError(c, http.StatusInternalServerError, message)
}

func validationMessage(errs []string) string {
	return strings.Join(errs, " ")
}

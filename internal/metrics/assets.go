// Package metrics computes the derived figures shown on operator dashboards.
// Every function is pure: it works on a snapshot already fetched from the
// platform and never performs I/O.
package metrics

import (
	"fmt"

	"backoffice/internal/schema"
	appErr "backoffice/pkg/errors"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type AssetProperty string

const (
	AvailableAmount AssetProperty = "availableAmount"
	TotalAmount     AssetProperty = "totalAmount"
	BlockedAmount   AssetProperty = "blockedAmount"
	AllocatedAmount AssetProperty = "allocatedAmount"
)

// AssetProperties lists every balance an asset total can be computed over.
var AssetProperties = []AssetProperty{AvailableAmount, TotalAmount, BlockedAmount, AllocatedAmount}

func ParseAssetProperty(s string) (AssetProperty, error) {
	switch p := AssetProperty(s); p {
	case AvailableAmount, TotalAmount, BlockedAmount, AllocatedAmount:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", appErr.ErrInvalidProperty, s)
}

func amountOf(a schema.CryptoAsset, p AssetProperty) string {
	switch p {
	case AvailableAmount:
		return a.AvailableAmount
	case TotalAmount:
		return a.TotalAmount
	case BlockedAmount:
		return a.BlockedAmount
	case AllocatedAmount:
		return a.AllocatedAmount
	}
	return ""
}

// TotalAssetValue sums amount(p) * exchangeRate over assets.
func TotalAssetValue(assets []schema.CryptoAsset, p AssetProperty) (decimal.Decimal, error) {
	if _, err := ParseAssetProperty(string(p)); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range assets {
		amount, err := decimal.NewFromString(amountOf(a, p))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s %s: %v", appErr.ErrMalformedAmount, a.Symbol, p, err)
		}
		rate, err := decimal.NewFromString(a.ExchangeRate)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s exchangeRate: %v", appErr.ErrMalformedAmount, a.Symbol, err)
		}
		total = total.Add(amount.Mul(rate))
	}
	return total, nil
}

var printer = message.NewPrinter(language.English)

// FormatCurrency renders d as US dollars rounded to cents, e.g. "$1,234.50".
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	units := rounded.Truncate(0)
	cents := rounded.Sub(units).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", units.IntPart()), cents)
}

// Package currency converts base-currency (USD) amounts into display
// currencies and formats them for presentation.
package currency

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Domenick1991/skywings/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const Base = "USD"

type Info struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

var defaultTable = []Info{
	{Code: "USD", Symbol: "$", Rate: 1},
	{Code: "EUR", Symbol: "€", Rate: 0.92},
	{Code: "GBP", Symbol: "£", Rate: 0.79},
	{Code: "NGN", Symbol: "₦", Rate: 1550},
	{Code: "JPY", Symbol: "¥", Rate: 149.50},
}

// Converter is safe for concurrent use; its table never changes after
// construction.
type Converter struct {
	table   map[string]Info
	printer *message.Printer
}

func NewConverter() *Converter {
	return NewConverterWithTable(defaultTable)
}

func NewConverterWithTable(infos []Info) *Converter {
	table := make(map[string]Info, len(infos))
	for _, info := range infos {
		table[strings.ToUpper(info.Code)] = info
	}
	return &Converter{
		table:   table,
		printer: message.NewPrinter(language.English),
	}
}

// Lookup normalizes code and fails with ErrUnsupportedCurrency when the
// code is not in the rate table.
func (c *Converter) Lookup(code string) (Info, error) {
	info, ok := c.table[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, code)
	}
	return info, nil
}

func (c *Converter) Convert(amountInBase float64, code string) (float64, error) {
	info, err := c.Lookup(code)
	if err != nil {
		return 0, err
	}
	return amountInBase * info.Rate, nil
}

// Format renders an amount already expressed in code, e.g. "€1,234.50".
func (c *Converter) Format(amount float64, code string) (string, error) {
	info, err := c.Lookup(code)
	if err != nil {
		return "", err
	}
	return info.Symbol + c.printer.Sprintf("%.2f", round2(amount)), nil
}

// Display converts a base amount and formats it in one step.
func (c *Converter) Display(amountInBase float64, code string) (string, error) {
	converted, err := c.Convert(amountInBase, code)
	if err != nil {
		return "", err
	}
	return c.Format(converted, code)
}

func (c *Converter) Supported() []Info {
	out := make([]Info, 0, len(c.table))
	for _, info := range c.table {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

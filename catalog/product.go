package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultImage marks products added through the form.
const DefaultImage = "📦"

// AlertInvalidPrice is shown to the user when a submitted price is rejected.
const AlertInvalidPrice = "Por favor, insira um preço válido e positivo."

var (
	// ErrInvalidPrice is returned when the price field is not a number
	// strictly greater than zero.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidProductID is returned when an id in the collection is not an
	// integer, so the next id cannot be derived.
	ErrInvalidProductID = errors.New("invalid product id")

	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("controller closed")
)

// Product is one catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// Source supplies the initial collection once the load delay elapses.
type Source func() []Product

// MockSource is the hard-coded catalog.
func MockSource() []Product {
	return MockProducts()
}

// MockProducts returns a fresh copy of the four mock products, in display
// order.
func MockProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "iPhone 15 Pro",
			Price:       decimal.NewFromInt(7999),
			Image:       "📱",
			Description: "O mais novo smartphone da Apple com câmera Pro.",
		},
		{
			ID:          "2",
			Name:        "PlayStation 5",
			Price:       decimal.NewFromInt(4500),
			Image:       "🎮",
			Description: "Console de última geração da Sony para jogos incríveis.",
		},
		{
			ID:          "3",
			Name:        "Fone Bluetooth XM5",
			Price:       decimal.NewFromInt(1800),
			Image:       "🎧",
			Description: "Fones de ouvido com cancelamento de ruído premium.",
		},
		{
			ID:          "4",
			Name:        `Smart TV 4K 65"`,
			Price:       decimal.NewFromInt(3200),
			Image:       "📺",
			Description: "Televisão inteligente 4K com tela grande para imersão total.",
		},
	}
}

// ParsePrice parses the raw price field. Surrounding spaces are ignored;
// anything else that is not a plain decimal, any value outside the finite
// float64 range, and any value not strictly positive, is rejected with
// ErrInvalidPrice. The result carries float64 precision.
func ParsePrice(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if _, err := decimal.NewFromString(trimmed); err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidPrice, "parse %q", raw)
	}

	// the decimal grammar admits exponents far past float64; those values
	// are not finite and would render arbitrarily long strings
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) {
		return decimal.Zero, errors.Wrapf(ErrInvalidPrice, "%q is out of range", raw)
	}
	if f <= 0 {
		return decimal.Zero, errors.Wrapf(ErrInvalidPrice, "%q is not positive", raw)
	}
	return decimal.NewFromFloat(f), nil
}

// NextID derives the id for a new product: the largest id in products plus
// one, or "1" for an empty collection.
func NextID(products []Product) (string, error) {
	if len(products) == 0 {
		return "1", nil
	}

	var highest int
	for i, p := range products {
		id, err := strconv.Atoi(p.ID)
		if err != nil {
			return "", errors.Wrapf(ErrInvalidProductID, "product at %d has id %q", i, p.ID)
		}
		if i == 0 || id > highest {
			highest = id
		}
	}
	if highest == math.MaxInt {
		return "", errors.Wrapf(ErrInvalidProductID, "id %d has no successor", highest)
	}

	return strconv.Itoa(highest + 1), nil
}

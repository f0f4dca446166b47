package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LoadingText replaces the listing while the catalog loads.
const LoadingText = "Carregando produtos..."

// Card is the display form of one product.
type Card struct {
	Key         string `json:"key"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// View is a rendered State.
type View struct {
	Loading     bool   `json:"loading"`
	LoadingText string `json:"loading_text,omitempty"`
	Cards       []Card `json:"cards"`
	Form        Form   `json:"form"`
}

// FormatPrice prefixes the currency and fixes two decimal places.
func FormatPrice(price decimal.Decimal) string {
	return "R$ " + price.StringFixed(2)
}

// RenderCard maps a product to its card.
func RenderCard(p Product) Card {
	return Card{
		Key:         p.ID,
		Image:       p.Image,
		Name:        p.Name,
		Price:       FormatPrice(p.Price),
		Description: p.Description,
	}
}

// Render maps a state to its view: the loading text alone while loading,
// otherwise one card per product in collection order.
func Render(s State) View {
	if s.Loading {
		return View{
			Loading:     true,
			LoadingText: LoadingText,
			Cards:       []Card{},
			Form:        s.Form,
		}
	}

	cards := make([]Card, 0, len(s.Products))
	for _, p := range s.Products {
		cards = append(cards, RenderCard(p))
	}

	return View{
		Cards: cards,
		Form:  s.Form,
	}
}

// RenderText writes a view as plain text.
func RenderText(v View) string {
	var sb strings.Builder

	sb.WriteString("=== Catálogo de Produtos ===\n")
	fmt.Fprintf(&sb, "form: name=%q price=%q description=%q\n", v.Form.Name, v.Form.Price, v.Form.Description)

	if v.Loading {
		sb.WriteString(v.LoadingText)
		sb.WriteString("\n")
		return sb.String()
	}

	for _, c := range v.Cards {
		fmt.Fprintf(&sb, "[%s] %s %s - %s\n", c.Key, c.Image, c.Name, c.Price)
		if c.Description != "" {
			fmt.Fprintf(&sb, "    %s\n", c.Description)
		}
	}
	return sb.String()
}

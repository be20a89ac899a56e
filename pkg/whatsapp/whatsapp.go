// Package whatsapp renders order hand-off messages and wa.me deep links.
// Everything here is pure: no clock, no randomness, no network.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency symbol is fixed for this deployment (Indian Rupee). Changing
// currency means changing this formatter, not its callers.
const currencySymbol = "₹"

const deepLinkBase = "https://wa.me/"

// Line is one order line ready for formatting: a resolved display name, a
// quantity and the unit price visible to the caller.
type Line struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// Subtotal returns price multiplied by quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// FormatOrderMessage renders the order hand-off text. Output is deterministic
// for identical inputs; the customer line is appended only when a contact was
// captured.
func FormatOrderMessage(businessName string, lines []Line, totalAmount decimal.Decimal, customerPhone string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛒 *New Order from %s*\n\n", businessName)
	b.WriteString("*Items:*\n")

	for _, line := range lines {
		fmt.Fprintf(&b, "• %s x %d = %s%s\n", line.Name, line.Quantity, currencySymbol, line.Subtotal().String())
	}

	fmt.Fprintf(&b, "\n*Total: %s%s*\n", currencySymbol, totalAmount.String())

	if customerPhone != "" {
		fmt.Fprintf(&b, "\nCustomer: %s\n", customerPhone)
	}

	return b.String()
}

// DeepLink builds a wa.me URL that opens WhatsApp with the message pre-filled.
// Every non-digit is stripped from the phone number; the message is encoded
// the way encodeURIComponent does it (space as %20, not +).
func DeepLink(phoneNumber, message string) string {
	digits := stripNonDigits(phoneNumber)
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return deepLinkBase + digits + "?text=" + encoded
}

func stripNonDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package whatsapp

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatOrderMessageOrdering(t *testing.T) {
	t.Parallel()

	lines := []Line{{Name: "Shirt", Quantity: 2, Price: decimal.NewFromInt(100)}}
	msg := FormatOrderMessage("Acme", lines, decimal.NewFromInt(200), "9998887777")

	wantInOrder := []string{"Acme", "Shirt", "x 2", "₹200", "*Total: ₹200*", "Customer: 9998887777"}
	idx := 0
	for _, want := range wantInOrder {
		pos := strings.Index(msg[idx:], want)
		if pos < 0 {
			t.Fatalf("expected %q after offset %d in message:\n%s", want, idx, msg)
		}
		idx += pos
	}
}

func TestFormatOrderMessageOmitsEmptyCustomer(t *testing.T) {
	t.Parallel()

	msg := FormatOrderMessage("Acme", nil, decimal.Zero, "")
	if strings.Contains(msg, "Customer:") {
		t.Fatalf("customer line should be omitted:\n%s", msg)
	}
	if !strings.HasPrefix(msg, "🛒 *New Order from Acme*\n\n*Items:*\n") {
		t.Fatalf("unexpected header:\n%s", msg)
	}
}

func TestFormatOrderMessageIsDeterministic(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{Name: "Saree", Quantity: 1, Price: decimal.NewFromFloat(499.50)},
		{Name: "துணி", Quantity: 3, Price: decimal.NewFromInt(75)},
	}
	first := FormatOrderMessage("Kumar Textiles", lines, decimal.NewFromFloat(724.5), "91234")
	second := FormatOrderMessage("Kumar Textiles", lines, decimal.NewFromFloat(724.5), "91234")
	if first != second {
		t.Fatal("formatter must be deterministic")
	}
	if !strings.Contains(first, "• Saree x 1 = ₹499.5\n") {
		t.Fatalf("unexpected line rendering:\n%s", first)
	}
}

func TestDeepLinkStripsAndEncodes(t *testing.T) {
	t.Parallel()

	link := DeepLink("+91 99988 87777", "hi there")
	want := "https://wa.me/919998887777?text=hi%20there"
	if link != want {
		t.Fatalf("expected %q, got %q", want, link)
	}
}

func TestDeepLinkStripsPunctuation(t *testing.T) {
	t.Parallel()

	link := DeepLink("(044) 123-4567", "order")
	if !strings.HasPrefix(link, "https://wa.me/0441234567?text=") {
		t.Fatalf("unexpected link %q", link)
	}
}

func TestLineSubtotal(t *testing.T) {
	t.Parallel()

	line := Line{Name: "Kurti", Quantity: 3, Price: decimal.NewFromFloat(149.99)}
	if got := line.Subtotal(); !got.Equal(decimal.NewFromFloat(449.97)) {
		t.Fatalf("unexpected subtotal %s", got)
	}
}

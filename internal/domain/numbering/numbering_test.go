package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sweetbite/bakery-api/internal/domain/numbering"
)

var day = time.Date(2026, 10, 18, 15, 4, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	assert.Equal(t, "SB202610180001", numbering.Format(numbering.PrefixOrder, day, 1))
	assert.Equal(t, "PO202610180123", numbering.Format(numbering.PrefixPurchaseOrder, day, 123))
	assert.Equal(t, "SB2026101812345", numbering.Format(numbering.PrefixOrder, day, 12345), "más de 4 dígitos no se trunca")
}

func TestParse(t *testing.T) {
	n, ok := numbering.Parse(numbering.PrefixOrder, day, "SB202610180042")
	assert.True(t, ok)
	assert.EqualValues(t, 42, n)

	_, ok = numbering.Parse(numbering.PrefixOrder, day, "SB202610170042")
	assert.False(t, ok, "otro día no corresponde")

	_, ok = numbering.Parse(numbering.PrefixPurchaseOrder, day, "SB202610180042")
	assert.False(t, ok, "otro prefijo no corresponde")
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "PO:20261018", numbering.DayKey(numbering.PrefixPurchaseOrder, day))
}

func TestHead(t *testing.T) {
	assert.Equal(t, "SB20261018", numbering.Head(numbering.PrefixOrder, day))
}

// Package numbering arma los números legibles de pedidos y órdenes de compra.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prefijos de documento.
const (
	PrefixOrder         = "SB"
	PrefixPurchaseOrder = "PO"
)

const dayLayout = "20060102"

// Format devuelve <prefijo><AAAAMMDD><n con 4 dígitos>, p. ej. SB202610180007.
func Format(prefix string, day time.Time, n int64) string {
	return fmt.Sprintf("%s%s%04d", prefix, day.Format(dayLayout), n)
}

// DayKey clave del contador diario.
func DayKey(prefix string, day time.Time) string {
	return prefix + ":" + day.Format(dayLayout)
}

// Head parte fija de los números de ese prefijo y día, p. ej. SB20261018.
func Head(prefix string, day time.Time) string {
	return prefix + day.Format(dayLayout)
}

// Parse extrae el contador de un número con el prefijo y día dados.
// Devuelve false si el número no corresponde a ese prefijo/día.
func Parse(prefix string, day time.Time, number string) (int64, bool) {
	head := Head(prefix, day)
	if !strings.HasPrefix(number, head) {
		return 0, false
	}
	n, err := strconv.ParseInt(number[len(head):], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatKwanza renders an integer amount of Kwanzas with thousand
// separators and the trailing currency marker, e.g. "10.000,00 Kz".
func FormatKwanza(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s,00 Kz", sign, formatThousand(amount))
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}

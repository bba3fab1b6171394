package workbook

import (
	"fmt"
	"strconv"
	"strings"
)

// Address formats a 1-based column and row as an A1 reference.
func Address(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

// ColumnName returns the letters of a 1-based column index.
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// ParseAddress splits an A1 reference into column and row.
func ParseAddress(addr string) (col, row int, err error) {
	addr = strings.ToUpper(strings.TrimSpace(addr))
	i := 0
	for i < len(addr) && addr[i] >= 'A' && addr[i] <= 'Z' {
		col = col*26 + int(addr[i]-'A'+1)
		i++
	}
	if i == 0 || i == len(addr) {
		return 0, 0, fmt.Errorf("invalid cell address %q", addr)
	}
	row, err = strconv.Atoi(addr[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("invalid cell address %q", addr)
	}
	return col, row, nil
}

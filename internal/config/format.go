package config

import (
	"fmt"
	"strings"
)

const (
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatTable = "table"
)

func NormalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		format = FormatTSV
	}
	switch format {
	case FormatTSV, FormatJSON, FormatTable:
		return format, nil
	case "text":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf(
			"invalid format %q (expected %s|%s|%s|text)",
			raw,
			FormatTSV,
			FormatJSON,
			FormatTable,
		)
	}
}

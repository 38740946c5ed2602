package client

import (
	"fmt"
	"strings"
)

// FormatBool serializes v the way the API expects booleans: "True" or
// "False". nil, false, zero numbers and the strings "false", "no", "0",
// "off" and "" map to "False"; every other value maps to "True".
func FormatBool(v any) string {
	switch b := v.(type) {
	case nil:
		return False
	case bool:
		return boolString(b)
	case string:
		return boolString(truthy(b))
	case fmt.Stringer:
		return boolString(truthy(b.String()))
	default:
		return boolString(truthy(fmt.Sprint(v)))
	}
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "no", "0", "off", "<nil>":
		return false
	default:
		return true
	}
}

func boolString(b bool) string {
	if b {
		return True
	}
	return False
}

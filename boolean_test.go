package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type flag bool

func (f flag) String() string {
	if f {
		return "yes"
	}
	return "no"
}

func TestFormatBool(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, False},
		{"true", true, True},
		{"false", false, False},
		{"empty string", "", False},
		{"blank string", "  ", False},
		{"false string", "FALSE", False},
		{"no", "no", False},
		{"off", "Off", False},
		{"zero string", "0", False},
		{"other string", "anything", True},
		{"zero int", 0, False},
		{"int", 3, True},
		{"stringer true", flag(true), True},
		{"stringer false", flag(false), False},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBool(tt.in))
		})
	}
}

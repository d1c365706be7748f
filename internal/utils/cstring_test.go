package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCString(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "no terminator", in: []byte("H5Fopen"), want: "H5Fopen"},
		{name: "terminator at end", in: []byte("H5Fopen\x00"), want: "H5Fopen"},
		{name: "terminator mid-buffer", in: []byte("H5F.c\x00garbage"), want: "H5F.c"},
		{name: "leading terminator", in: []byte("\x00H5F.c"), want: ""},
		{name: "empty", in: []byte{}, want: ""},
		{name: "nil", in: nil, want: ""},
		{name: "non-utf8 bytes pass through", in: []byte{0xff, 0xfe, 0x41}, want: "\xff\xfeA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CString(tt.in))
		})
	}
}

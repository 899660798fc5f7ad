package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEmptyEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name?", &out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword("Password: ", &out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected decimal.Decimal
		wantErr  bool
	}{
		{
			name:     "plain number",
			input:    "100.50\n",
			expected: decimal.RequireFromString("100.50"),
		},
		{
			name:     "dollar prefix stripped",
			input:    "$25\n",
			expected: decimal.NewFromInt(25),
		},
		{
			name:     "surrounding spaces trimmed",
			input:    "  42.00  \n",
			expected: decimal.NewFromInt(42),
		},
		{
			name:    "not a number",
			input:   "lots\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetAmount(rdr(tc.input), "Amount", &out)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, tc.expected.Equal(got), "got %s", got)
		})
	}
}

func TestGetConfirmation(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		got, err := GetConfirmation(rdr(tc.input), "Proceed?", &out)
		require.NoError(t, err)
		require.Equal(t, tc.expected, got, "input %q", tc.input)
	}
}

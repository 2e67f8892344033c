package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "yes", want: true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(context.Background(), strings.NewReader(tt.input), &out, "Delete everything?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete everything? [y/N]")
		})
	}
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}

func TestReadLine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadLine(ctx, bufio.NewReader(blockingReader{}))
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestTable(t *testing.T) {
	out := Table([]string{"Name", "Qty"}, [][]string{{"Slip Dress", "12"}})
	assert.Contains(t, out, "Slip Dress")
	assert.Contains(t, out, "Qty")

	assert.Contains(t, Table([]string{"Name"}, nil), "(none)")
}

func TestKeyValues(t *testing.T) {
	out := KeyValues([][2]string{{"Budget", "$1,000.00"}, {"Spent", "$800.00"}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "$1,000.00")
}

// File path: internal/quickpath/format_test.go
package quickpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBullets(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed markers", "- a\n• b\n\nc", []string{"a", "b", "c"}},
		{"star marker", "* first\n*second", []string{"first", "second"}},
		{"surrounding whitespace", "  •  spaced  \n\t- tabbed", []string{"spaced", "tabbed"}},
		{"blank lines dropped", "\n\n- only\n\n", []string{"only"}},
		{"marker only line dropped", "-\n- real", []string{"real"}},
		{"no markers", "plain line", []string{"plain line"}},
		{"empty input", "", nil},
		{"whitespace input", "  \n\t", nil},
		{"single marker stripped once", "-- double", []string{"- double"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatBullets(tc.in))
		})
	}
}

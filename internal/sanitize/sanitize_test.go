package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpcarvalho/clubledger/internal/sanitize"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Mensalidade março", sanitize.Text("Mensalidade março"))
	assert.Equal(t, "alert(1)", sanitize.Text("<script>alert(1)</script>"))
	assert.Equal(t, "bold", sanitize.Text("<b>bold</b>"))
	assert.Equal(t, "trimmed", sanitize.Text("  trimmed  "))
}

func TestForCSV(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  string
	}

	tests := []testCase{
		{name: "Formula", input: "=SUM(A1)", want: "'=SUM(A1)"},
		{name: "Plus", input: "+351 terms", want: "'+351 terms"},
		{name: "Minus", input: "-credit", want: "'-credit"},
		{name: "At", input: "@handle", want: "'@handle"},
		{name: "Plain", input: "Mensalidade", want: "Mensalidade"},
		{name: "Empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.ForCSV(tt.input))
		})
	}
}

package diag

import (
	"strings"
	"testing"

	"github.com/hassan/gibberishc/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSetsFatal(t *testing.T) {
	r := New()
	assert.False(t, r.HasFatal(), "fresh reporter should not be fatal")

	r.Report(lexer.Position{Line: 3, Column: 5}, "Multiply declared identifier")
	assert.True(t, r.HasFatal())
}

func TestWriteToFormat(t *testing.T) {
	r := New()
	r.Report(lexer.Position{Line: 1, Column: 1}, "No main function")
	r.Report(lexer.Position{Line: 4, Column: 12}, "Undeclared identifier")

	var buf strings.Builder
	require.NoError(t, r.WriteTo(&buf))

	want := "1:1: No main function\n4:12: Undeclared identifier\n"
	assert.Equal(t, want, buf.String())
}

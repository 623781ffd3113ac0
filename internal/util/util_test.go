package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCasing(t *testing.T) {
	tests := []struct {
		in                   string
		snake, pascal, camel string
	}{
		{"GetOrigin", "get_origin", "GetOrigin", "getOrigin"},
		{"HTTPServer", "http_server", "HTTPServer", "hTTPServer"},
		{"render_target", "render_target", "RenderTarget", "renderTarget"},
		{"get_Value", "get_value", "GetValue", "getValue"},
		{"ntt::render", "ntt::render", "NttRender", "nttRender"},
		{"zoom", "zoom", "Zoom", "zoom"},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.snake, ToSnakeCase(tt.in))
			assert.Equal(t, tt.pascal, ToPascalCase(tt.in))
			assert.Equal(t, tt.camel, ToCamelCase(tt.in))
		})
	}
}

func TestCleanCommentText(t *testing.T) {
	assert.Equal(t, []string{"Adds two integers."}, CleanCommentText("/// Adds two integers."))
	assert.Equal(t, []string{"Trailing."}, CleanCommentText("///< Trailing."))
	assert.Equal(t, []string{"a", "", "b"}, CleanCommentText("/**\n * a\n *\n * b\n */"))
	assert.Equal(t, []string{"inline"}, CleanCommentText("/* inline */"))
}

func TestBriefComment(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want string
	}{
		{"line", []string{"// Scale factor."}, "Scale factor."},
		{"consecutive lines", []string{"/// First line", "/// continues."}, "First line continues."},
		{"first paragraph", []string{"/**\n * Adds.\n *\n * Longer text.\n */"}, "Adds."},
		{"stops at command", []string{"/**\n * Adds.\n * @param a left\n */"}, "Adds."},
		{"brief command", []string{"/** Summary.\n * \\brief Real brief\n * spans.\n *\n * more */"}, "Real brief spans."},
		{"at brief", []string{"/// @brief Short one."}, "Short one."},
		{"empty", []string{"//"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BriefComment(tt.raw...))
		})
	}
}

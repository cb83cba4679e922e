package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain text", want: "plain text"},
		{in: "Tom & Jerry", want: "Tom & Jerry"},
		{in: "<b>bold</b> move", want: "bold move"},
		{in: `<a href="javascript:alert(1)">x</a>`, want: "x"},
		{in: "<script>alert(1)</script>", want: ""},
		{in: "line one\nline two", want: "line one\nline two"},
		{in: "&lt;script&gt;alert(1)&lt;/script&gt;", want: ""},
		{in: "&amp;lt;b&amp;gt;x&amp;lt;/b&amp;gt;", want: "x"},
		{in: "a < b && c > d", want: "a < b && c > d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}

func TestSanitize_Stable(t *testing.T) {
	inputs := []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"Tom &amp; Jerry",
		"if a < b { return }",
		"<p>hi</p>&lt;i&gt;there&lt;/i&gt;",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), in)
	}
}

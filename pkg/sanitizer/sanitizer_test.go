package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/pkg/sanitizer"
)

func TestMarkdown(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			input:    "**Banjir** di *Kemang*",
			contains: []string{"<strong>Banjir</strong>", "<em>Kemang</em>"},
		},
		{
			name:     "lists",
			input:    "- beras\n- air bersih\n",
			contains: []string{"<ul>", "<li>beras</li>", "<li>air bersih</li>"},
		},
		{
			name:     "raw script is dropped",
			input:    "hello <script>alert('xss')</script>",
			contains: []string{"hello"},
			excludes: []string{"<script", "</script>"},
		},
		{
			name:     "javascript link is neutralized",
			input:    "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name:     "links get nofollow",
			input:    "[donate](https://example.org/donate)",
			contains: []string{`href="https://example.org/donate"`, "nofollow", `target="_blank"`},
		},
		{
			name:     "strikethrough",
			input:    "~~closed~~",
			contains: []string{"<del>closed</del>"},
		},
		{
			name:     "images are removed",
			input:    "![x](https://example.org/x.png)",
			excludes: []string{"<img"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := sanitizer.Markdown(tc.input)
			require.NoError(t, err)
			for _, s := range tc.contains {
				require.Contains(t, out, s)
			}
			for _, s := range tc.excludes {
				require.NotContains(t, out, s)
			}
		})
	}
}

func TestMarkdown_Empty(t *testing.T) {
	t.Parallel()

	out, err := sanitizer.Markdown("")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Posko <b>Kemang</b>":                 "Posko Kemang",
		"  Jl. Raya  ":                        "Jl. Raya",
		"<script>alert(1)</script>Posko":      "Posko",
		`<a href="javascript:x()">click</a>`: "click",
		"":                                    "",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizer.PlainText(in), in)
	}
}

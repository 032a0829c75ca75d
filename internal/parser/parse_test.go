package parser_test

import (
	"testing"

	"bennypowers.dev/cssval/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCSSSupportedLanguage(t *testing.T) {
	supported := []string{
		"css",
		"html",
		"javascript",
		"javascriptreact",
		"typescript",
		"typescriptreact",
	}

	for _, lang := range supported {
		t.Run(lang, func(t *testing.T) {
			assert.True(t, parser.IsCSSSupportedLanguage(lang))
		})
	}

	unsupported := []string{
		"json",
		"yaml",
		"go",
		"python",
		"",
	}

	for _, lang := range unsupported {
		t.Run("unsupported_"+lang, func(t *testing.T) {
			assert.False(t, parser.IsCSSSupportedLanguage(lang))
		})
	}
}

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"styles/site.css", "css", true},
		{"INDEX.HTML", "html", true},
		{"src/card.ts", "typescript", true},
		{"src/App.tsx", "typescriptreact", true},
		{"lib/x.mjs", "javascript", true},
		{"tokens.json", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := parser.LanguageForPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDeclarationsCSS(t *testing.T) {
	result, err := parser.ParseDeclarations(`.button { box-shadow: none; }`, "css")
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Declarations, 1)
	assert.Equal(t, "box-shadow", result.Declarations[0].Property)
	assert.Equal(t, "none", result.Declarations[0].Value)
}

func TestParseDeclarationsHTML(t *testing.T) {
	result, err := parser.ParseDeclarations(`<style>.button { color: teal; }</style>`, "html")
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Declarations, 1)
	assert.Equal(t, "teal", result.Declarations[0].Value)
}

func TestParseDeclarationsJavaScript(t *testing.T) {
	content := "const s = css`\n  .button { clip-path: inset(10px); }\n`;"

	for _, lang := range []string{"javascript", "javascriptreact", "typescript", "typescriptreact"} {
		t.Run(lang, func(t *testing.T) {
			result, err := parser.ParseDeclarations(content, lang)
			require.NoError(t, err)
			require.NotNil(t, result)

			require.Len(t, result.Declarations, 1)
			assert.Equal(t, "inset(10px)", result.Declarations[0].Value)
		})
	}
}

func TestParseDeclarationsUnsupported(t *testing.T) {
	result, err := parser.ParseDeclarations("{}", "json")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

package parser

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/cssval/internal/parser/css"
	"bennypowers.dev/cssval/internal/parser/html"
	"bennypowers.dev/cssval/internal/parser/js"
)

// cssLanguages maps language IDs to the parser category they use.
// "css" → direct CSS, "html" → HTML parser, "js" → JS parser.
var cssLanguages = map[string]string{
	"css":             "css",
	"html":            "html",
	"javascript":      "js",
	"javascriptreact": "js",
	"typescript":      "js",
	"typescriptreact": "js",
}

// extensions maps file extensions to language IDs
var extensions = map[string]string{
	".css":  "css",
	".html": "html",
	".htm":  "html",
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".jsx":  "javascriptreact",
	".ts":   "typescript",
	".mts":  "typescript",
	".tsx":  "typescriptreact",
}

// IsCSSSupportedLanguage returns true if the language supports CSS extraction
func IsCSSSupportedLanguage(languageID string) bool {
	_, ok := cssLanguages[languageID]
	return ok
}

// LanguageForPath returns the language ID of a file from its extension
func LanguageForPath(path string) (string, bool) {
	id, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return id, ok
}

// ParseDeclarations extracts the declarations of any supported document type.
// Unsupported languages yield nil.
func ParseDeclarations(content, languageID string) (*css.ParseResult, error) {
	switch cssLanguages[languageID] {
	case "css":
		p := css.AcquireParser()
		defer css.ReleaseParser(p)
		return p.Parse(content)

	case "html":
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		return p.ParseCSS(content)

	case "js":
		p := js.AcquireParser()
		defer js.ReleaseParser(p)
		return p.ParseCSS(content)

	default:
		return nil, nil
	}
}

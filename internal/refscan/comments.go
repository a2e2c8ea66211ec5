// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refscan

import (
	"context"
	"errors"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// commentGrammars maps script extensions to the grammar used to locate
// comments. Extensions without a grammar use the lexical stripper.
var commentGrammars = map[string]*sitter.Language{
	".js":  javascript.GetLanguage(),
	".jsx": javascript.GetLanguage(),
	".mjs": javascript.GetLanguage(),
	".cjs": javascript.GetLanguage(),
	".ts":  typescript.GetLanguage(),
	".tsx": tsx.GetLanguage(),
}

const commentQuery = `(comment) @comment`

var (
	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	jsxComment  = regexp.MustCompile(`(?s)\{/\*.*?\*/\}`)
)

var errNoTree = errors.New("parser returned no tree")

// StripComments returns a copy of content with every comment replaced by
// spaces. Newlines are preserved so line numbers stay valid. Markdown
// files lose HTML and JSX block comments only.
func StripComments(ctx context.Context, content []byte, ext string) []byte {
	switch ext {
	case ".md", ".mdx":
		return stripMarkup(content)
	}
	if lang, ok := commentGrammars[ext]; ok {
		if out, err := stripWithGrammar(ctx, content, lang); err == nil {
			return out
		}
	}
	return stripLexical(content)
}

func stripWithGrammar(ctx context.Context, content []byte, lang *sitter.Language) ([]byte, error) {
	root, err := sitter.ParseCtx(ctx, content, lang)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errNoTree
	}

	q, err := sitter.NewQuery([]byte(commentQuery), lang)
	if err != nil {
		return nil, err
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	out := append([]byte(nil), content...)
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			blank(out, int(c.Node.StartByte()), int(c.Node.EndByte()))
		}
	}
	return out, nil
}

func stripMarkup(content []byte) []byte {
	out := append([]byte(nil), content...)
	for _, re := range []*regexp.Regexp{htmlComment, jsxComment} {
		for _, loc := range re.FindAllIndex(out, -1) {
			blank(out, loc[0], loc[1])
		}
	}
	return out
}

// Lexer states for stripLexical.
const (
	lexCode = iota
	lexLine
	lexBlock
	lexSingle
	lexDouble
	lexTemplate
)

// stripLexical blanks // and /* */ comments while skipping over string and
// template literals. It does not understand regex literals.
func stripLexical(content []byte) []byte {
	out := append([]byte(nil), content...)
	state := lexCode
	n := len(out)

	for i := 0; i < n; i++ {
		c := out[i]
		switch state {
		case lexCode:
			switch {
			case c == '/' && i+1 < n && out[i+1] == '/':
				out[i], out[i+1] = ' ', ' '
				i++
				state = lexLine
			case c == '/' && i+1 < n && out[i+1] == '*':
				out[i], out[i+1] = ' ', ' '
				i++
				state = lexBlock
			case c == '\'':
				state = lexSingle
			case c == '"':
				state = lexDouble
			case c == '`':
				state = lexTemplate
			}
		case lexLine:
			if c == '\n' {
				state = lexCode
			} else {
				out[i] = ' '
			}
		case lexBlock:
			if c == '*' && i+1 < n && out[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				state = lexCode
			} else if c != '\n' {
				out[i] = ' '
			}
		case lexSingle, lexDouble:
			quote := byte('\'')
			if state == lexDouble {
				quote = '"'
			}
			switch c {
			case '\\':
				i++
			case quote, '\n':
				state = lexCode
			}
		case lexTemplate:
			switch c {
			case '\\':
				i++
			case '`':
				state = lexCode
			}
		}
	}
	return out
}

// blank overwrites content[start:end] with spaces, keeping newlines.
func blank(content []byte, start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	for i := start; i < end; i++ {
		if content[i] != '\n' && content[i] != '\r' {
			content[i] = ' '
		}
	}
}

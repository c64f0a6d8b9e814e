package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/sokinpui/nbanswer/model"
)

// ParseMarkdown turns a markdown file into a document. Each top-level code
// block becomes a code unit (an empty fence is a marker); every other
// top-level block becomes a text unit holding its raw source lines.
func ParseMarkdown(source []byte, path string) (model.Document, error) {
	doc := model.Document{Path: path}
	root := newMarkdownParser().Parse(text.NewReader(source))

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.FencedCodeBlock:
			doc.Units = append(doc.Units, model.ContentUnit{Kind: model.KindCode, Raw: codeContent(n, source)})
		case *ast.CodeBlock:
			doc.Units = append(doc.Units, model.ContentUnit{Kind: model.KindCode, Raw: codeContent(n, source)})
		default:
			start, stop, ok := span(node)
			if !ok {
				continue
			}
			raw := strings.TrimSpace(string(source[lineStart(source, start):lineEnd(source, stop)]))
			doc.Units = append(doc.Units, model.ContentUnit{Kind: model.KindText, Raw: raw})
		}
	}
	return doc, nil
}

// newMarkdownParser returns goldmark's default parser, except that thematic
// breaks keep the source line they were read from.
func newMarkdownParser() parser.Parser {
	blocks := parser.DefaultBlockParsers()
	for i, v := range blocks {
		if v.Value == parser.NewThematicBreakParser() {
			blocks[i] = util.Prioritized(thematicBreakParser{parser.NewThematicBreakParser()}, v.Priority)
		}
	}
	return parser.NewParser(
		parser.WithBlockParsers(blocks...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

// thematicBreakParser records the line of each "---" so that it has a span.
type thematicBreakParser struct {
	parser.BlockParser
}

func (p thematicBreakParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	_, seg := reader.PeekLine()
	node, state := p.BlockParser.Open(parent, reader, pc)
	if node != nil {
		node.Lines().Append(seg)
	}
	return node, state
}

func codeContent(n ast.Node, source []byte) string {
	var content bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		content.Write(line.Value(source))
	}
	return content.String()
}

// span returns the byte range covered by the lines of node and its descendants.
func span(node ast.Node) (start, stop int, ok bool) {
	start = -1
	walker := func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	}
	_ = ast.Walk(node, walker)
	return start, stop, start != -1
}

func lineStart(source []byte, pos int) int {
	return bytes.LastIndexByte(source[:pos], '\n') + 1
}

func lineEnd(source []byte, pos int) int {
	if pos > 0 && source[pos-1] == '\n' {
		return pos
	}
	if i := bytes.IndexByte(source[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(source)
}

package importer

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"sectiontoc/internal/storage"
	"sectiontoc/internal/toc"
)

const (
	// LeafType is the element type of headings without nested headings.
	LeafType = "text"
	// DefaultContainerType is the element type of headings with nested headings.
	DefaultContainerType = "section_container"
	// ColumnPosition is the column position of every imported element, nested or not.
	ColumnPosition = 0
	// SortingStep is the distance between sorting values of consecutive elements.
	// Sorting rises through the whole document.
	SortingStep = 256

	classHidden  = "hidden"
	classNoIndex = "noindex"
)

// Document is the parsed form of one markdown file.
type Document struct {
	Title    string
	Elements []storage.ContentElement // parents precede children, linked by ParentRef
}

// Parser turns markdown headings into content elements.
type Parser struct {
	md            goldmark.Markdown
	containerType string
}

// NewParser creates a Parser. Headings with nested headings get containerType.
func NewParser(containerType string) *Parser {
	if containerType == "" {
		containerType = DefaultContainerType
	}
	return &Parser{
		md: goldmark.New(
			goldmark.WithParserOptions(parser.WithAttribute()),
		),
		containerType: containerType,
	}
}

// ContainerType returns the type given to headings with nested headings.
func (p *Parser) ContainerType() string {
	return p.containerType
}

type openHeading struct {
	level int
	ref   int // 1-based element position
}

// Parse extracts the page title and content elements of a document.
//
// The first level-1 heading is the page title. Every deeper heading becomes an
// element; a heading below a shallower one is nested in it. Heading attributes
// control the element: {#id} sets the anchor, {.hidden} hides the header and
// {.noindex} drops it from the section index.
func (p *Parser) Parse(content []byte, relPath string) Document {
	doc := p.md.Parser().Parse(text.NewReader(content))

	var (
		title    string
		elements []storage.ContentElement
		stack    []openHeading
		anchors  = map[string]int{}
	)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		headingText := extractTextFromNode(heading, content)
		if heading.Level == 1 {
			if title == "" {
				title = headingText
			}
			stack = stack[:0]
			return ast.WalkSkipChildren, nil
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= heading.Level {
			stack = stack[:len(stack)-1]
		}

		el := storage.ContentElement{
			Type:         LeafType,
			Title:        headingText,
			SectionIndex: true,
		}
		if len(stack) > 0 {
			el.ParentRef = stack[len(stack)-1].ref
			elements[el.ParentRef-1].Type = p.containerType
		}
		el.ColumnPosition = ColumnPosition
		el.Sorting = (len(elements) + 1) * SortingStep

		classes := strings.Fields(attrString(heading, "class"))
		for _, class := range classes {
			switch class {
			case classHidden:
				el.HeaderLayout = toc.HiddenHeaderLayout
			case classNoIndex:
				el.SectionIndex = false
			}
		}

		el.Anchor = uniqueAnchor(anchors, headingAnchor(heading, headingText))

		elements = append(elements, el)
		stack = append(stack, openHeading{level: heading.Level, ref: len(elements)})
		return ast.WalkSkipChildren, nil
	})

	if title == "" {
		title = titleFromFilename(relPath)
	}

	return Document{Title: title, Elements: elements}
}

// headingAnchor returns the explicit id attribute or a slug of the heading text.
func headingAnchor(heading *ast.Heading, headingText string) string {
	if id := strings.TrimSpace(attrString(heading, "id")); id != "" {
		return id
	}
	return slug.Make(headingText)
}

// uniqueAnchor suffixes repeated anchors with -2, -3, ...
func uniqueAnchor(seen map[string]int, anchor string) string {
	if anchor == "" {
		return ""
	}
	seen[anchor]++
	if n := seen[anchor]; n > 1 {
		return anchor + "-" + strconv.Itoa(n)
	}
	return anchor
}

func attrString(n ast.Node, name string) string {
	v, ok := n.AttributeString(name)
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return ""
	}
}

// extractTextFromNode concatenates the text below n.
func extractTextFromNode(n ast.Node, content []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			textBuilder.Write(v.Segment.Value(content))
			if v.SoftLineBreak() {
				textBuilder.WriteByte(' ')
			}
		case *ast.String:
			textBuilder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}

// titleFromFilename turns "getting-started.md" into "Getting Started".
func titleFromFilename(relPath string) string {
	name := filepath.Base(relPath)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

// Package workflow locates action references inside workflow documents and
// rewrites them in place. Documents are parsed structurally to find every
// uses: field, but rewriting works on byte spans of the raw text: YAML
// libraries don't round-trip comments, quoting, or key order, so the file
// is never re-serialized.
package workflow

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/gha-cli/gha-cli/pkg/action"
)

// Span is a byte range in the raw document text.
type Span struct {
	Start int
	End   int
}

func (s Span) Valid() bool {
	return s.Start >= 0 && s.End > s.Start
}

// Usage is one occurrence of an action reference in a document.
// Reference is nil and Err is set when the uses: value doesn't parse as an
// action reference. Span covers the literal uses: value in the raw text;
// an invalid span means the occurrence was found structurally but couldn't
// be located in the raw text (e.g. escaped quoting) and can't be patched.
type Usage struct {
	Reference *action.Reference
	Raw       string
	Line      int
	Span      Span
	Err       error
}

// Scan parses the document and yields every uses: occurrence in document
// order: job-level uses (reusable workflow calls), step-level uses, and
// steps of composite action files (runs.steps). Local composite actions are
// yielded too so they can be listed, with an unknown ref kind.
func Scan(content []byte) ([]*Usage, error) {
	file, err := parser.ParseBytes(content, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse the document as YAML: %w", err)
	}
	offsets := lineOffsets(content)
	var usages []*Usage
	for _, doc := range file.Docs {
		for _, root := range mappingValues(doc.Body) {
			key, ok := nodeKey(root)
			if !ok {
				continue
			}
			switch key {
			case "jobs":
				for _, job := range mappingValues(root.Value) {
					usages = append(usages, scanJob(content, offsets, job.Value)...)
				}
			case "runs":
				// composite action file
				usages = append(usages, scanSteps(content, offsets, root.Value)...)
			}
		}
	}
	return usages, nil
}

func scanJob(content []byte, offsets []int, job ast.Node) []*Usage {
	var usages []*Usage
	for _, field := range mappingValues(job) {
		key, ok := nodeKey(field)
		if !ok {
			continue
		}
		switch key {
		case "uses":
			if u := newUsage(content, offsets, field.Value); u != nil {
				usages = append(usages, u)
			}
		case "steps":
			usages = append(usages, stepUsages(content, offsets, field.Value)...)
		}
	}
	return usages
}

func scanSteps(content []byte, offsets []int, runs ast.Node) []*Usage {
	for _, field := range mappingValues(runs) {
		if key, ok := nodeKey(field); ok && key == "steps" {
			return stepUsages(content, offsets, field.Value)
		}
	}
	return nil
}

func stepUsages(content []byte, offsets []int, steps ast.Node) []*Usage {
	seq, ok := unwrap(steps).(*ast.SequenceNode)
	if !ok {
		return nil
	}
	var usages []*Usage
	for _, step := range seq.Values {
		for _, field := range mappingValues(step) {
			if key, ok := nodeKey(field); ok && key == "uses" {
				if u := newUsage(content, offsets, field.Value); u != nil {
					usages = append(usages, u)
				}
			}
		}
	}
	return usages
}

func newUsage(content []byte, offsets []int, value ast.Node) *Usage {
	sn, ok := unwrap(value).(*ast.StringNode)
	if !ok {
		return nil
	}
	raw := sn.Value
	if raw == "" {
		return nil
	}
	tk := sn.GetToken()
	line := 0
	if tk != nil && tk.Position != nil {
		line = tk.Position.Line
	}
	u := &Usage{
		Raw:  raw,
		Line: line,
		Span: findSpan(content, offsets, line, raw),
	}
	u.Reference, u.Err = action.ParseUses(raw)
	return u
}

// findSpan locates the literal uses: value on its line in the raw text.
// The structural parse gives the line; the raw text gives the exact byte
// range, keeping rewrites independent of the YAML library's rendering.
func findSpan(content []byte, offsets []int, line int, raw string) Span {
	if line < 1 || line > len(offsets) {
		return Span{Start: -1}
	}
	start := offsets[line-1]
	end := len(content)
	if line < len(offsets) {
		end = offsets[line]
	}
	idx := strings.Index(string(content[start:end]), raw)
	if idx < 0 {
		return Span{Start: -1}
	}
	return Span{Start: start + idx, End: start + idx + len(raw)}
}

// lineOffsets returns the byte offset of the start of each line.
func lineOffsets(content []byte) []int {
	offsets := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// mappingValues flattens a node into its mapping entries, tolerating
// anchors and single-pair mappings.
func mappingValues(node ast.Node) []*ast.MappingValueNode {
	switch n := unwrap(node).(type) {
	case *ast.MappingNode:
		return n.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}
	default:
		return nil
	}
}

func nodeKey(value *ast.MappingValueNode) (string, bool) {
	k, ok := unwrap(value.Key).(*ast.StringNode)
	if !ok {
		return "", false
	}
	return k.Value, true
}

// unwrap strips anchor and tag wrappers. Aliases are left as-is: the
// anchored occurrence is scanned where it is written, the alias has no
// text of its own to rewrite.
func unwrap(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.AnchorNode:
			node = n.Value
		case *ast.TagNode:
			node = n.Value
		default:
			return node
		}
	}
}

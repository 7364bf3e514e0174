package generator

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// SyntaxIssue is one location where a header failed to parse as C++.
// Line and Column are 1-based.
type SyntaxIssue struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Kind   string `json:"kind"`
}

func (i SyntaxIssue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Kind)
}

func newCppParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	return parser
}

// Verify parses src with the tree-sitter C++ grammar and reports every error
// or missing node. A nil slice means the header is syntactically valid.
func Verify(ctx context.Context, src []byte) ([]SyntaxIssue, error) {
	parser := newCppParser()
	defer parser.Close()

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	defer tree.Close()

	var issues []SyntaxIssue
	collectIssues(tree.RootNode(), &issues)
	return issues, nil
}

func collectIssues(node *sitter.Node, issues *[]SyntaxIssue) {
	if node == nil {
		return
	}
	switch {
	case node.IsMissing():
		*issues = append(*issues, issueAt(node, "missing "+node.Type()))
		return
	case node.Type() == "ERROR":
		*issues = append(*issues, issueAt(node, "unexpected syntax"))
	}
	if !node.HasError() {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectIssues(node.Child(i), issues)
	}
}

func issueAt(node *sitter.Node, kind string) SyntaxIssue {
	p := node.StartPoint()
	return SyntaxIssue{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Kind: kind}
}

// Package dtsparse implements spec.md §6.1's parser contract: a single
// exported Parse(path) that turns one .d.ts file into a *tree.ParsedFile.
// Grounded on the teacher's internal/parser.TreeSitterParser — a pooled,
// mutex-serialized *tree_sitter.Parser, since tree-sitter parsers are not
// thread-safe — generalized from the teacher's Go/Python/TypeScript source
// analysis to walking a TypeScript declaration file's top-level statements
// into this system's own AST (internal/tree) instead of collecting metrics.
//
// Every CodePath and JsLocation this package produces is left at its zero
// value (ident.NoPath / ident.JsZeroLoc): spec.md §6.1 hands the parser a
// bare path, not a library name, so it has nothing to build either from.
// internal/transform's Step 0 (setCodePaths) and Step 2 (setJsLocation) fill
// both in once a library name is known.
package dtsparse

import (
	"fmt"
	"os"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/tsdecl/tsconv/internal/tree"
)

// Parser holds one pooled Tree-sitter parser configured for the plain
// TypeScript grammar (.d.ts files never use JSX, so the TSX variant the
// teacher also pools has no home here). All parse operations are serialized
// via a mutex, matching the teacher's TreeSitterParser.
type Parser struct {
	mu sync.Mutex
	ts *tree_sitter.Parser
}

// New builds a Parser. Callers must call Close when done.
func New() (*Parser, error) {
	ts := tree_sitter.NewParser()
	lang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	if err := ts.SetLanguage(lang); err != nil {
		ts.Close()
		return nil, fmt.Errorf("set typescript language: %w", err)
	}
	return &Parser{ts: ts}, nil
}

// Close releases the underlying Tree-sitter parser.
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
	}
}

// Parse reads path and converts its contents into a *tree.ParsedFile.
func (p *Parser) Parse(path string) (*tree.ParsedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.ParseSource(content)
}

// ParseSource converts raw .d.ts file content into a *tree.ParsedFile,
// without touching the filesystem. Exposed separately so tests can exercise
// the converter against inline fixtures. This method is thread-safe;
// parsing is serialized internally.
func (p *Parser) ParseSource(content []byte) (*tree.ParsedFile, error) {
	p.mu.Lock()
	cst := p.ts.Parse(content, nil)
	p.mu.Unlock()
	if cst == nil {
		return nil, fmt.Errorf("tree-sitter parse returned nil")
	}
	defer cst.Close()

	root := cst.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter parse produced no root node")
	}

	c := &converter{content: content}
	pf := &tree.ParsedFile{
		Directives: scanDirectives(root, content),
		Members:    c.convertBlock(root),
	}
	pf.IsModule = containsImportOrExport(pf.Members)
	return pf, nil
}

// containsImportOrExport reports whether any top-level member is an import
// or export statement, the signal spec.md §6.1 uses to set ParsedFile's
// IsModule flag.
func containsImportOrExport(members []tree.Tree) bool {
	for _, m := range members {
		switch m.(type) {
		case *tree.Import, *tree.Export, *tree.ExportAsNamespace:
			return true
		}
	}
	return false
}

// converter carries the one piece of state every node-conversion method
// needs: the original source bytes, used to slice out identifier and
// literal text by byte offset.
type converter struct {
	content []byte
}

func (c *converter) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(c.content[n.StartByte():n.EndByte()])
}

// unquote strips the surrounding quote characters from a string literal's
// source text.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && last == first {
			return s[1 : len(s)-1]
		}
	}
	return s
}

package dtsparse

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/tree"
)

func newParser(t *testing.T) *Parser {
	t.Helper()
	p, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestParseSource_Directives(t *testing.T) {
	p := newParser(t)
	src := `/// <reference path="./other.d.ts" />
/// <reference types="node" />
/// <amd-module name="widget" />
export declare function noop(): void;
`
	pf, err := p.ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if len(pf.Directives) != 3 {
		t.Fatalf("Directives = %d, want 3: %#v", len(pf.Directives), pf.Directives)
	}
	if _, ok := pf.Directives[0].(tree.PathRef); !ok {
		t.Errorf("Directives[0] = %T, want tree.PathRef", pf.Directives[0])
	}
	if _, ok := pf.Directives[1].(tree.TypesRef); !ok {
		t.Errorf("Directives[1] = %T, want tree.TypesRef", pf.Directives[1])
	}
	if _, ok := pf.Directives[2].(tree.AmdModule); !ok {
		t.Errorf("Directives[2] = %T, want tree.AmdModule", pf.Directives[2])
	}
	if !pf.IsModule {
		t.Errorf("IsModule = false, want true (file has an export statement)")
	}
}

func TestParseSource_InterfaceWithComment(t *testing.T) {
	p := newParser(t)
	src := `
// Describes a point in 2D space.
export interface Point {
    x: number;
    y: number;
    readonly label?: string;
}
`
	pf, err := p.ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if len(pf.Members) != 1 {
		t.Fatalf("Members = %d, want 1", len(pf.Members))
	}
	exp, ok := pf.Members[0].(*tree.Export)
	if !ok {
		t.Fatalf("Members[0] = %T, want *tree.Export", pf.Members[0])
	}
	iface, ok := exp.Exported.Tree.(*tree.DeclInterface)
	if !ok {
		t.Fatalf("exported tree = %T, want *tree.DeclInterface", exp.Exported.Tree)
	}
	if iface.Name() != "Point" {
		t.Errorf("Name() = %q, want Point", iface.Name())
	}
	if len(iface.Members) != 3 {
		t.Fatalf("interface members = %d, want 3", len(iface.Members))
	}
	label, ok := iface.Members[2].(*tree.MemberProperty)
	if !ok {
		t.Fatalf("Members[2] = %T, want *tree.MemberProperty", iface.Members[2])
	}
	if !label.IsOptional || !label.IsReadOnly {
		t.Errorf("label optional=%v readonly=%v, want both true", label.IsOptional, label.IsReadOnly)
	}
}

func TestParseSource_TypeAliasUnion(t *testing.T) {
	p := newParser(t)
	src := `export type Status = "ok" | "error" | number;`
	pf, err := p.ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	exp := pf.Members[0].(*tree.Export)
	alias := exp.Exported.Tree.(*tree.DeclTypeAlias)
	union, ok := alias.Alias.(*tree.TypeUnion)
	if !ok {
		t.Fatalf("Alias = %T, want *tree.TypeUnion", alias.Alias)
	}
	if len(union.Types) != 3 {
		t.Fatalf("union members = %d, want 3", len(union.Types))
	}
}

func TestParseSource_ImportForms(t *testing.T) {
	p := newParser(t)
	src := `
import { a, b as c } from "mod-a";
import * as ns from "mod-b";
import x = require("mod-c");
`
	pf, err := p.ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if len(pf.Members) != 3 {
		t.Fatalf("Members = %d, want 3", len(pf.Members))
	}
	first, ok := pf.Members[0].(*tree.Import)
	if !ok {
		t.Fatalf("Members[0] = %T, want *tree.Import", pf.Members[0])
	}
	if len(first.Imported) != 2 || first.Imported[1].Name != "c" || first.Imported[1].From != "b" {
		t.Errorf("Imported = %+v, want [a, c(from b)]", first.Imported)
	}
	third := pf.Members[2].(*tree.Import)
	if third.From.Kind != tree.ImporteeRequired || third.From.Module != "mod-c" {
		t.Errorf("third import From = %+v, want ImporteeRequired of mod-c", third.From)
	}
}

func TestParseSource_NamespaceAndEnum(t *testing.T) {
	p := newParser(t)
	src := `
declare namespace NS {
    enum Color { Red, Green, Blue = 5 }
}
`
	pf, err := p.ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	ns, ok := pf.Members[0].(*tree.Namespace)
	if !ok {
		t.Fatalf("Members[0] = %T, want *tree.Namespace", pf.Members[0])
	}
	if ns.Name() != "NS" {
		t.Errorf("Name() = %q, want NS", ns.Name())
	}
	e, ok := ns.Members[0].(*tree.DeclEnum)
	if !ok {
		t.Fatalf("ns.Members[0] = %T, want *tree.DeclEnum", ns.Members[0])
	}
	if len(e.Members) != 3 {
		t.Fatalf("enum members = %d, want 3", len(e.Members))
	}
	if e.Members[2].Value == nil || e.Members[2].Value.Num != 5 {
		t.Errorf("enum member Blue value = %+v, want 5", e.Members[2].Value)
	}
}

func TestParseSource_AmbientFunctionIsDeclared(t *testing.T) {
	p := newParser(t)
	src := `declare function f(a: string, b?: number, ...rest: any[]): void;`
	pf, err := p.ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	fn, ok := pf.Members[0].(*tree.DeclFunction)
	if !ok {
		t.Fatalf("Members[0] = %T, want *tree.DeclFunction", pf.Members[0])
	}
	if !fn.Declared {
		t.Errorf("Declared = false, want true")
	}
	if len(fn.Sig.Params) != 3 {
		t.Fatalf("Params = %d, want 3", len(fn.Sig.Params))
	}
	if !fn.Sig.Params[1].Optional {
		t.Errorf("param b Optional = false, want true")
	}
	if !fn.Sig.Params[2].IsRest {
		t.Errorf("param rest IsRest = false, want true")
	}
}

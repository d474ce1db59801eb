// Package transform implements the fixed twenty-step visitor pipeline of
// spec.md §4.7: a ParsedFile goes in, a rewritten ParsedFile comes out, one
// step at a time, in the order the spec fixes. Grounded on the teacher's
// internal/pipeline.Pipeline (a struct with staged, numbered steps run in a
// fixed sequence, each stage independently named and testable) generalized
// from "discover -> parse -> analyze -> score -> output" to this system's
// twenty named passes.
package transform

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/merge"
	"github.com/tsdecl/tsconv/internal/phaseerr"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// Config carries the per-library knobs the pipeline's steps consult:
// whether to run ExpandTypeMappings (spec.md §4.7 steps 13-14, conditional
// on the library name), whether the library is React (ExtractClasses skips
// ExpandCallables for React, since its own abstraction leans on callable
// objects), and the pedantic flag, which is handed to every scope.Root the
// pipeline builds; no step reads it, so it makes no diagnostic fatal.
type Config struct {
	LibName              ident.LibraryName
	ExpandTypeMappings   func(lib ident.LibraryName) bool
	IsReact              bool
	Pedantic             bool
	TransitiveDeps       []*tree.ParsedFile
	Logger               scope.Logger
}

// DefaultConfig returns a Config that runs ExpandTypeMappings for every
// library and treats none as React.
func DefaultConfig(lib ident.LibraryName) Config {
	return Config{
		LibName:            lib,
		ExpandTypeMappings: func(ident.LibraryName) bool { return true },
	}
}

// PassCount is one entry of a Pipeline's optional per-step node-count
// trace: how many nodes pf held right after the named step ran, counted
// by countMembers across containers and class/interface bodies. Used by internal/report to chart how much each rewrite pass
// grows or shrinks the tree.
type PassCount struct {
	Step  string
	Count int
}

// Pipeline runs the twenty ordered steps of spec.md §4.7 over one
// ParsedFile. Problems the steps find (ResolveWarning, TypeMappingProblem)
// are appended to Diagnostics rather than aborting the run; no step ends
// the pipeline early.
type Pipeline struct {
	cfg         Config
	Diagnostics []error

	// TracePasses, when set before Run, makes Run append a PassCount after
	// every numbered step. Off by default: the trace is a diagnostic for
	// internal/report's --report flag, not something every conversion
	// needs to pay for.
	TracePasses bool
	PassCounts  []PassCount
}

// New builds a Pipeline for the given per-library configuration.
func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

func (p *Pipeline) warn(err error) {
	p.Diagnostics = append(p.Diagnostics, err)
}

func (p *Pipeline) trace(step string, pf *tree.ParsedFile) {
	if !p.TracePasses {
		return
	}
	p.PassCounts = append(p.PassCounts, PassCount{Step: step, Count: countMembers(pf)})
}

// countMembers counts every declaration in pf, recursing into containers
// and class/interface bodies via tree.Children.
func countMembers(pf *tree.ParsedFile) int {
	total := 0
	var walk func(tree.Tree)
	walk = func(t tree.Tree) {
		total++
		for _, c := range tree.Children(t) {
			walk(c)
		}
	}
	for _, m := range pf.Members {
		walk(m)
	}
	return total
}

// Run executes the twenty-step pipeline against pf and returns the
// transformed file as Ok; the diagnostics the steps record are left in
// p.Diagnostics.
func (p *Pipeline) Run(pf *tree.ParsedFile) phaseerr.PhaseRes[*tree.ParsedFile] {
	root := scope.Root(p.cfg.LibName, p.cfg.Pedantic, p.cfg.TransitiveDeps, p.cfg.Logger).Caching()

	// Step 0: every declaration gets its canonical, library-scoped
	// CodePath before anything else runs.
	pf = p.setCodePaths(pf)
	p.trace("SetCodePaths", pf)

	// Step 1: LibrarySpecific.
	pf = applyLibrarySpecific(p.cfg.LibName, pf)
	p.trace("LibrarySpecific", pf)

	// Step 2: SetJsLocation.
	pf = p.setJsLocation(pf)
	p.trace("SetJsLocation", pf)

	// Step 3: SimplifyParents ⋙ RemoveStubs ⋙ InferTypeFromExpr ⋙
	// InferEnumTypes ⋙ NormalizeFunctions ⋙ MoveStatics, under an
	// unqualified-lookup caching scope.
	step3Scope := root.Descend(pf).EnableUnqualifiedLookup()
	pf = p.simplifyParents(pf, step3Scope)
	pf = p.removeStubs(pf)
	pf = p.inferTypeFromExpr(pf, step3Scope)
	pf = p.inferEnumTypes(pf)
	pf = p.normalizeFunctions(pf)
	pf = p.moveStatics(pf)
	p.trace("SimplifyParents+RemoveStubs+InferTypeFromExpr+InferEnumTypes+NormalizeFunctions+MoveStatics", pf)

	// Step 4: HandleCommonJsModules ⋙ RewriteExportStarAs.
	pf = p.handleCommonJsModules(pf)
	pf = p.rewriteExportStarAs(pf)
	p.trace("HandleCommonJsModules+RewriteExportStarAs", pf)

	// Step 5: QualifyReferences(disableUnqualified=false).
	qualifyScope := root.Descend(pf)
	pf = p.qualifyReferences(pf, qualifyScope, false)
	p.trace("QualifyReferences", pf)

	// Step 6: AugmentModules.
	pf = p.augmentModules(pf)
	p.trace("AugmentModules", pf)

	// Step 7: ResolveTypeQueries.
	resolveScope := root.Descend(pf)
	pf = p.resolveTypeQueries(pf, resolveScope)
	p.trace("ResolveTypeQueries", pf)

	// Step 8: ReplaceExports(LoopDetector.initial).
	exportScope := root.Descend(pf)
	pf = p.replaceExports(pf, exportScope)
	p.trace("ReplaceExports", pf)

	// Step 9: ModuleAsGlobalNamespace.
	pf = p.moduleAsGlobalNamespace(pf)
	p.trace("ModuleAsGlobalNamespace", pf)

	// Step 10: MoveGlobals.
	pf = p.moveGlobals(pf)
	p.trace("MoveGlobals", pf)

	// Step 11: FlattenTrees.applySingle.
	pf = flattenSingle(pf)
	p.trace("FlattenSingle", pf)

	// Step 12: DefaultedTypeArguments ⋙ TypeAliasIntersection ⋙
	// RejiggerIntersections.
	pf = p.defaultedTypeArguments(pf)
	pf = p.typeAliasIntersection(pf)
	pf = p.rejiggerIntersections(pf)
	p.trace("DefaultedTypeArguments+TypeAliasIntersection+RejiggerIntersections", pf)

	// Steps 13-14: ExpandTypeMappings (+After), conditional on the library.
	if p.cfg.ExpandTypeMappings != nil && p.cfg.ExpandTypeMappings(p.cfg.LibName) {
		mappingScope := root.Descend(pf)
		pf = p.expandTypeMappings(pf, mappingScope)
		pf = p.expandTypeMappingsAfter(pf)
		p.trace("ExpandTypeMappings", pf)
	}

	// Step 15: TypeAliasToConstEnum ⋙ ForwardCtors ⋙ ExpandTypeParams ⋙
	// UnionTypesFromKeyOf ⋙ DropProperties ⋙ InferReturnTypes ⋙
	// RewriteTypeThis ⋙ InlineConstEnum ⋙ InlineTrivial.
	step15Scope := root.Descend(pf)
	pf = p.typeAliasToConstEnum(pf)
	pf = p.forwardCtors(pf)
	pf = p.expandTypeParams(pf)
	pf = p.unionTypesFromKeyOf(pf, step15Scope)
	pf = p.dropProperties(pf)
	pf = p.inferReturnTypes(pf)
	pf = p.rewriteTypeThis(pf)
	pf = p.inlineConstEnum(pf, step15Scope)
	pf = p.inlineTrivial(pf)
	p.trace("TypeAliasToConstEnum+ForwardCtors+ExpandTypeParams+UnionTypesFromKeyOf+DropProperties+InferReturnTypes+RewriteTypeThis+InlineConstEnum+InlineTrivial", pf)

	// Step 16: ResolveTypeLookups.
	lookupScope := root.Descend(pf)
	pf = p.resolveTypeLookups(pf, lookupScope)
	p.trace("ResolveTypeLookups", pf)

	// Step 17: PreferTypeAlias.
	pf = p.preferTypeAlias(pf)
	p.trace("PreferTypeAlias", pf)

	// Step 18: ExtractInterfaces(libName, "anon").
	pf = p.extractInterfaces(pf)
	p.trace("ExtractInterfaces", pf)

	// Step 19: ExtractClasses (+ExpandCallables unless React).
	pf = p.extractClasses(pf)
	p.trace("ExtractClasses", pf)

	// Step 20: SplitMethods ⋙ RemoveDifficultInheritance ⋙ VarToNamespace.
	pf = p.splitMethods(pf)
	pf = p.removeDifficultInheritance(pf)
	pf = p.varToNamespace(pf)
	p.trace("SplitMethods+RemoveDifficultInheritance+VarToNamespace", pf)

	return phaseerr.Ok(pf)
}

// flattenSingle re-normalizes pf against itself, collapsing any same-name
// members the prior rewrites (export expansion, module augmentation,
// global lifting) introduced side by side, via the same pairwise merge
// rules FlattenTrees applies across two files (spec.md §4.7 step 11).
func flattenSingle(pf *tree.ParsedFile) *tree.ParsedFile {
	return merge.FlattenTrees(pf, &tree.ParsedFile{IsModule: pf.IsModule})
}

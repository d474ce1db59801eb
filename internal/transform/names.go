package transform

import (
	"strconv"
	"strings"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// DeriveNonConflictingName implements spec.md §4.9: given a naming prefix
// and the members of the anonymous type being named, it enumerates
// candidate names -- built from short, then long, per-member "detail"
// fragments -- until tryCreate accepts one, falling back to prefix+0,
// prefix+1, ... if every detail-based candidate is rejected.
func DeriveNonConflictingName(prefix ident.SimpleIdent, members []tree.Member, tryCreate func(ident.SimpleIdent) bool) ident.SimpleIdent {
	shorts := make([]string, 0, len(members))
	longs := make([]string, 0, len(members))
	for _, m := range members {
		short, long := memberDetail(m, members)
		if short != "" {
			shorts = append(shorts, short)
			longs = append(longs, long)
		}
	}

	for _, details := range [][]string{shorts, longs} {
		for n := 1; n <= len(details); n++ {
			name := ident.SimpleIdent(string(prefix) + strings.Join(details[:n], ""))
			if tryCreate(name) {
				return name
			}
		}
	}

	for i := 0; ; i++ {
		name := ident.SimpleIdent(string(prefix) + strconv.Itoa(i))
		if tryCreate(name) {
			return name
		}
	}
}

func memberDetail(m tree.Member, all []tree.Member) (short, long string) {
	switch n := m.(type) {
	case *tree.MemberCall:
		return "Call", "Call" + longestOverloadParamNames(all)
	case *tree.MemberCtor:
		return "Instantiable", "Instantiable" + prettyType(n.Sig.ResultType)
	case *tree.MemberProperty:
		pretty := prettyName(n.NameV)
		return pretty, pretty + prettyType(n.TypeV)
	case *tree.MemberFunction:
		if n.MethodType != tree.MethodNormal {
			return "", ""
		}
		pretty := prettyName(n.NameV)
		return pretty, pretty
	case *tree.MemberIndex:
		if n.Indexing.IsDict {
			key := prettyName(n.Indexing.KeyName)
			return "Dict" + key, "Dict" + key + prettyType(n.Indexing.KeyType) + prettyType(n.ValueV)
		}
		return "", ""
	default:
		return "", ""
	}
}

func longestOverloadParamNames(members []tree.Member) string {
	var longest *tree.MemberCall
	for _, m := range members {
		if call, ok := m.(*tree.MemberCall); ok {
			if longest == nil || len(call.Sig.Params) > len(longest.Sig.Params) {
				longest = call
			}
		}
	}
	if longest == nil {
		return ""
	}
	var out string
	for _, param := range longest.Sig.Params {
		out += prettyName(param.Name)
	}
	return out
}

func prettyName(name ident.SimpleIdent) string {
	s := string(name)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// prettyType renders a short, name-safe fragment describing t, used only
// to build distinguishing candidate names -- not a full type printer.
func prettyType(t tree.Type) string {
	switch n := t.(type) {
	case nil:
		return ""
	case *tree.TypeRef:
		out := prettyName(n.QIdentV.Last())
		for _, p := range n.TParams {
			out += prettyType(p)
		}
		return out
	case *tree.TypeLiteral:
		switch n.Kind {
		case tree.LiteralString:
			return prettyName(ident.SimpleIdent(n.Str))
		case tree.LiteralNumber:
			return strconv.FormatFloat(n.Num, 'f', -1, 64)
		default:
			return "Bool"
		}
	case *tree.TypeUnion:
		return "Union"
	case *tree.TypeIntersect:
		return "Intersect"
	case *tree.TypeFunction:
		return "Fn"
	case *tree.TypeConstructor:
		return "Ctor"
	case *tree.TypeObject:
		return "Obj"
	case *tree.TypeTuple:
		return "Tuple"
	case *tree.TypeThis:
		return "This"
	default:
		return "Type"
	}
}

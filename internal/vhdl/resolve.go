package vhdl

import (
	"fmt"
)

// scope is one declarative region. Names made visible by use clauses are
// searched after the region's own declarations.
type scope struct {
	parent *scope
	decls  map[string][]*Node
	used   []*scope
	// spec is the package region a package body completes.
	spec *scope
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, decls: map[string][]*Node{}}
}

// declare makes d visible. Enumeration literals and physical units are
// declared along with their type.
func (s *scope) declare(d *Node) {
	if d.Ident == "" {
		return
	}
	name := d.Name()
	list := s.decls[name]
	for i, prev := range list {
		if prev.Kind == KTypeDecl && prev.Type != nil && prev.Type.Kind == KIncompleteTypeDef {
			list[i] = d
			s.declareLiterals(d)
			return
		}
	}
	s.decls[name] = append(list, d)
	s.declareLiterals(d)
}

func (s *scope) declareLiterals(d *Node) {
	if d.Kind != KTypeDecl || d.Type == nil {
		return
	}
	switch d.Type.Kind {
	case KEnumTypeDef, KPhysicalTypeDef:
		for _, lit := range d.Type.Literals {
			s.declare(lit)
		}
	}
}

// lookup returns the declarations visible under name. Inner regions hide
// outer ones.
func (s *scope) lookup(name string) []*Node {
	for sc := s; sc != nil; sc = sc.parent {
		if d := sc.decls[name]; len(d) > 0 {
			return d
		}
		var found []*Node
		for _, u := range sc.used {
			found = append(found, u.decls[name]...)
		}
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

// local returns the declarations of name in this region only.
func (s *scope) local(name string) []*Node { return s.decls[name] }

// Resolve analyzes a design unit: it binds names to their declarations,
// records unit dependencies and links subprogram bodies to their
// declarations. Units it depends on are analyzed first.
//
// Names that cannot be bound are left without Ref. Only unknown libraries,
// unknown units named by use clauses and secondary units of unknown primary
// units are errors.
func (l *Library) Resolve(du *Node) error {
	if du == nil || du.LibUnit == nil || du.Unit == nil {
		return nil
	}
	switch du.Unit.State {
	case UnitAnalyzed:
		return nil
	case UnitAnalyzing:
		return l.errorf(du.LibUnit, "circular dependency on %s", du.LibUnit.Ident)
	}
	du.Unit.State = UnitAnalyzing
	r := &resolver{lib: l, du: du}
	err := r.unit()
	du.Unit.State = UnitAnalyzed
	return err
}

func (l *Library) errorf(n *Node, format string, args ...any) error {
	return &Error{Loc: Locate(n), Msg: fmt.Sprintf(format, args...)}
}

type resolver struct {
	lib *Library
	du  *Node
	err error
}

// bailout unwinds the resolver on the first hard error.
type resolveBailout struct{}

func (r *resolver) fail(n *Node, format string, args ...any) {
	r.err = r.lib.errorf(n, format, args...)
	panic(resolveBailout{})
}

func (r *resolver) addDep(du *Node) {
	if du == nil || du == r.du {
		return
	}
	for _, d := range r.du.Unit.Deps {
		if d == du {
			return
		}
	}
	r.du.Unit.Deps = append(r.du.Unit.Deps, du)
}

// libraryName maps "work" to the library of the unit being analyzed.
func (r *resolver) libraryName(name string) string {
	if name == "work" {
		return r.du.Unit.Library
	}
	return name
}

// load returns the analyzed design unit lib.key, or nil.
func (r *resolver) load(lib, key string) *Node {
	du := r.lib.Lookup(r.libraryName(lib), key)
	if du == nil || du.LibUnit == nil {
		return nil
	}
	if err := r.lib.Resolve(du); err != nil {
		r.err = err
		panic(resolveBailout{})
	}
	return du
}

func (r *resolver) rootScope() *scope {
	root := newScope(nil)
	for _, name := range []string{LibStd, "work", r.du.Unit.Library} {
		root.decls[name] = []*Node{r.lib.libraryNode(name)}
	}
	if r.du.Unit.Library == LibStd && r.du.LibUnit.Name() == "standard" {
		return root
	}
	if std := r.load(LibStd, "standard"); std != nil {
		r.addDep(std)
		root.used = append(root.used, std.Unit.scope)
	}
	return root
}

func (r *resolver) unit() (err error) {
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(resolveBailout); !ok {
				panic(e)
			}
			err = r.err
		}
	}()
	lu := r.du.LibUnit
	root := r.rootScope()
	switch lu.Kind {
	case KEntity:
		ctx := r.context(root)
		region := newScope(ctx)
		r.du.Unit.scope = region
		r.interfaces(region, lu.Generics)
		r.interfaces(region, lu.Ports)
		r.declarations(region, lu.Decls)
		r.concurrent(region, lu.Stmts)
	case KArchitecture:
		ent := r.load(r.du.Unit.Library, lu.EntityName.Name())
		if ent == nil || ent.LibUnit.Kind != KEntity {
			r.fail(lu.EntityName, "entity %q not found for architecture %q", lu.EntityName.Ident, lu.Ident)
		}
		r.addDep(ent)
		lu.EntityName.Ref = ent.LibUnit
		ctx := r.context(r.chain(ent.Unit.scope, root))
		region := newScope(ctx)
		r.du.Unit.scope = region
		r.declarations(region, lu.Decls)
		r.concurrent(region, lu.Stmts)
	case KPackage:
		ctx := r.context(root)
		region := newScope(ctx)
		r.du.Unit.scope = region
		r.interfaces(region, lu.Generics)
		r.declarations(region, lu.Decls)
	case KPackageBody:
		pkg := r.load(r.du.Unit.Library, lu.Name())
		if pkg == nil || pkg.LibUnit.Kind != KPackage {
			r.fail(lu, "package %q not found for package body", lu.Ident)
		}
		r.addDep(pkg)
		ctx := r.context(r.chain(pkg.Unit.scope, root))
		region := newScope(ctx)
		region.spec = pkg.Unit.scope
		r.du.Unit.scope = region
		r.declarations(region, lu.Decls)
	case KConfiguration:
		ent := r.load(r.du.Unit.Library, lu.EntityName.Name())
		if ent == nil || ent.LibUnit.Kind != KEntity {
			r.fail(lu.EntityName, "entity %q not found for configuration %q", lu.EntityName.Ident, lu.Ident)
		}
		r.addDep(ent)
		lu.EntityName.Ref = ent.LibUnit
		ctx := r.context(r.chain(ent.Unit.scope, root))
		region := newScope(ctx)
		r.du.Unit.scope = region
		r.declarations(region, lu.Decls)
	}
	return nil
}

// chain returns inner when it exists, otherwise the fallback scope.
func (r *resolver) chain(inner, fallback *scope) *scope {
	if inner == nil {
		return fallback
	}
	return inner
}

// context processes the context clause of the unit into a new scope.
func (r *resolver) context(parent *scope) *scope {
	ctx := newScope(parent)
	for _, item := range r.du.Context {
		switch item.Kind {
		case KLibraryClause:
			if !r.lib.Exists(item.Name()) {
				r.fail(item, "library %q not found", item.Ident)
			}
			lib := r.lib.libraryNode(item.Name())
			item.Ref = lib
			ctx.decls[item.Name()] = []*Node{lib}
		case KUseClause:
			r.useClause(ctx, item)
		}
	}
	return ctx
}

func (r *resolver) useClause(sc *scope, uc *Node) {
	for _, name := range uc.Names {
		switch name.Kind {
		case KSelectedByAll:
			d := r.name(sc, name.Prefix, -1)
			if d == nil {
				if p := name.Prefix; p.Kind == KSelectedName && p.Prefix.Ref != nil && p.Prefix.Ref.Kind == KLibrary {
					r.fail(p, "unit %q not found in library %q", p.Ident, p.Prefix.Ref.Ident)
				}
				continue
			}
			if d.Kind == KPackage {
				if pdu := d.DesignUnit(); pdu != nil && pdu.Unit.scope != nil {
					sc.used = append(sc.used, pdu.Unit.scope)
				}
			}
		case KSelectedName:
			prefix := r.name(sc, name.Prefix, -1)
			if prefix == nil {
				continue
			}
			switch prefix.Kind {
			case KLibrary:
				r.name(sc, name, -1)
				if name.Ref == nil {
					r.fail(name, "unit %q not found in library %q", name.Ident, prefix.Ident)
				}
				sc.declare(name.Ref)
			case KPackage:
				pdu := prefix.DesignUnit()
				if pdu == nil || pdu.Unit.scope == nil {
					continue
				}
				items := pdu.Unit.scope.local(name.Name())
				if len(items) > 0 {
					name.Ref = items[0]
				}
				for _, it := range items {
					sc.declare(it)
				}
			}
		default:
			r.name(sc, name, -1)
		}
	}
}

func (r *resolver) interfaces(sc *scope, list []*Node) {
	for _, d := range list {
		if !d.SharedType {
			r.subtype(sc, d.Type)
			r.expr(sc, d.Expr)
		}
		sc.declare(d)
	}
}

// subtype resolves a subtype indication or a type mark.
func (r *resolver) subtype(sc *scope, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KSubtypeIndication:
		r.name(sc, n.Prefix, -1)
		r.subtype(sc, n.Type)
		r.expr(sc, n.Expr)
	case KCall:
		r.name(sc, n.Prefix, -1)
		for _, a := range n.Args {
			r.expr(sc, a.Formal)
			r.expr(sc, a.Actual)
		}
	default:
		r.expr(sc, n)
	}
}

func (r *resolver) declarations(sc *scope, decls []*Node) {
	for _, d := range decls {
		r.declaration(sc, d)
	}
}

func (r *resolver) declaration(sc *scope, d *Node) {
	switch d.Kind {
	case KSignalDecl, KConstantDecl, KVariableDecl:
		if !d.SharedType {
			r.subtype(sc, d.Type)
			r.expr(sc, d.Expr)
		}
		sc.declare(d)
	case KFileDecl:
		if !d.SharedType {
			r.subtype(sc, d.Type)
			r.expr(sc, d.Left)
			r.expr(sc, d.Expr)
		}
		sc.declare(d)
	case KTypeDecl:
		sc.declare(d)
		r.typeDefinition(sc, d)
	case KSubtypeDecl:
		r.subtype(sc, d.Type)
		sc.declare(d)
	case KComponentDecl:
		sc.declare(d)
		inner := newScope(sc)
		r.interfaces(inner, d.Generics)
		r.interfaces(inner, d.Ports)
	case KAttributeDecl:
		r.name(sc, d.Type, -1)
		sc.declare(d)
	case KAttributeSpec:
		d.Ref = firstOf(sc.lookup(d.Name()), KAttributeDecl)
		for _, n := range d.Names {
			if n.Kind == KSimpleName {
				n.Ref = pick(sc.lookup(n.Name()), -1)
			}
		}
		r.expr(sc, d.Expr)
	case KAliasDecl:
		r.subtype(sc, d.Type)
		r.expr(sc, d.Expr)
		if d.Right != nil {
			r.signature(sc, d.Right)
		}
		sc.declare(d)
	case KFunctionDecl, KProcedureDecl:
		sc.declare(d)
		inner := newScope(sc)
		r.interfaces(inner, d.Params)
		r.name(sc, d.Type, -1)
	case KFunctionBody, KProcedureBody:
		r.subprogramBody(sc, d)
	case KUseClause:
		r.useClause(sc, d)
	case KConfigSpec:
		r.name(sc, d.Target, -1)
		r.bindingIndication(sc, d)
	case KDisconnectSpec:
		for _, n := range d.Names {
			r.expr(sc, n)
		}
		r.name(sc, d.Type, -1)
		r.expr(sc, d.Expr)
	case KGroupTemplateDecl:
		sc.declare(d)
	case KGroupDecl:
		r.name(sc, d.Type, -1)
		for _, n := range d.Names {
			r.expr(sc, n)
		}
		sc.declare(d)
	}
}

func (r *resolver) signature(sc *scope, sig *Node) {
	for _, a := range sig.Args {
		r.name(sc, a, -1)
	}
	r.name(sc, sig.Type, -1)
}

func (r *resolver) typeDefinition(sc *scope, d *Node) {
	def := d.Type
	if def == nil {
		return
	}
	switch def.Kind {
	case KRangeTypeDef:
		r.expr(sc, def.Expr)
	case KPhysicalTypeDef:
		r.expr(sc, def.Expr)
		for _, u := range def.Literals {
			r.expr(sc, u.Expr)
		}
	case KArrayTypeDef:
		for _, idx := range def.Args {
			r.subtype(sc, idx)
		}
		r.subtype(sc, def.Type)
	case KRecordTypeDef:
		for _, e := range def.Elements {
			if !e.SharedType {
				r.subtype(sc, e.Type)
			}
		}
	case KAccessTypeDef, KFileTypeDef:
		r.subtype(sc, def.Type)
	case KProtectedTypeDecl:
		inner := newScope(sc)
		r.declarations(inner, def.Decls)
	case KProtectedTypeBody:
		inner := newScope(sc)
		for _, prev := range sc.lookup(d.Name()) {
			if prev != d && prev.Kind == KTypeDecl && prev.Type != nil && prev.Type.Kind == KProtectedTypeDecl {
				for _, m := range prev.Type.Decls {
					inner.declare(m)
				}
			}
		}
		r.declarations(inner, def.Decls)
	}
}

// subprogramBody links the body to an earlier declaration of the same
// region and resolves it. Parameters of a body with a declaration resolve
// to the declaration's parameters.
func (r *resolver) subprogramBody(sc *scope, d *Node) {
	specKind := KFunctionDecl
	if d.Kind == KProcedureBody {
		specKind = KProcedureDecl
	}
	candidates := sc.local(d.Name())
	if sc.spec != nil {
		candidates = append(append([]*Node(nil), candidates...), sc.spec.local(d.Name())...)
	}
	for _, prev := range candidates {
		if prev.Kind == specKind && len(prev.Params) == len(d.Params) {
			d.Spec = prev
			break
		}
	}
	params := d.Params
	if d.Spec == nil {
		sc.declare(d)
	} else {
		params = d.Spec.Params
	}
	inner := newScope(sc)
	if d.Spec == nil {
		r.interfaces(inner, params)
	} else {
		for i, p := range d.Params {
			if !p.SharedType {
				r.subtype(inner, p.Type)
				r.expr(inner, p.Expr)
			}
			inner.declare(params[i])
		}
	}
	r.name(sc, d.Type, -1)
	r.declarations(inner, d.Decls)
	r.sequential(inner, d.Stmts)
}

func (r *resolver) bindingIndication(sc *scope, n *Node) {
	var unit *Node
	if n.EntityName != nil {
		unit = r.name(sc, n.EntityName, -1)
		if unit != nil && unit.Kind == KEntity && n.Arch != nil {
			if adu := r.lib.Lookup(r.libraryName(unit.DesignUnit().Unit.Library), unit.Name()+"("+n.Arch.Name()+")"); adu != nil {
				n.Arch.Ref = adu.LibUnit
			}
		}
	}
	r.associations(sc, interfaceScope(unit), n.GenericMap)
	r.associations(sc, interfaceScope(unit), n.PortMap)
}

// interfaceScope returns a scope holding the generics and ports of an
// entity or component, or nil.
func interfaceScope(unit *Node) *scope {
	if unit == nil {
		return nil
	}
	switch unit.Kind {
	case KEntity, KComponentDecl, KBlockStmt:
	default:
		return nil
	}
	s := newScope(nil)
	for _, d := range unit.Generics {
		s.declare(d)
	}
	for _, d := range unit.Ports {
		s.declare(d)
	}
	return s
}

// associations resolves formals against the interface scope and actuals
// against sc.
func (r *resolver) associations(sc, iface *scope, list []*Node) {
	for _, a := range list {
		if a.Formal != nil {
			r.formal(sc, iface, a.Formal)
		}
		r.expr(sc, a.Actual)
	}
}

func (r *resolver) formal(sc, iface *scope, f *Node) {
	if iface == nil {
		r.expr(sc, f)
		return
	}
	switch f.Kind {
	case KSimpleName:
		f.Ref = pick(iface.local(f.Name()), -1)
	case KCall:
		if f.Prefix.Kind == KSimpleName {
			if d := pick(iface.local(f.Prefix.Name()), -1); d != nil {
				f.Prefix.Ref = d
				for _, a := range f.Args {
					r.expr(sc, a.Actual)
				}
				return
			}
		}
		// Conversion function applied to the formal.
		r.name(sc, f.Prefix, len(f.Args))
		for _, a := range f.Args {
			r.formal(sc, iface, a.Actual)
		}
	case KSelectedName:
		r.formal(sc, iface, f.Prefix)
		if t := r.recordType(f.Prefix); t != nil {
			f.Ref = recordElement(t, f.Name())
		}
	default:
		r.expr(sc, f)
	}
}

func firstOf(list []*Node, k Kind) *Node {
	for _, d := range list {
		if d.Kind == k {
			return d
		}
	}
	return nil
}

// pick chooses among overloaded declarations. nargs is the number of
// arguments of a call, or -1 when the name is not called.
func pick(list []*Node, nargs int) *Node {
	if len(list) == 0 {
		return nil
	}
	if len(list) == 1 {
		return list[0]
	}
	if nargs < 0 {
		for _, d := range list {
			if !d.IsSubprogram() {
				return d
			}
		}
		for _, d := range list {
			if requiredParams(d) == 0 {
				return d
			}
		}
		return list[0]
	}
	for _, d := range list {
		if d.IsSubprogram() && len(d.Params) == nargs {
			return d
		}
	}
	for _, d := range list {
		if d.IsSubprogram() && requiredParams(d) <= nargs && nargs <= len(d.Params) {
			return d
		}
	}
	for _, d := range list {
		if !d.IsSubprogram() {
			return d
		}
	}
	return list[0]
}

func requiredParams(d *Node) int {
	n := 0
	for _, p := range d.Params {
		if p.Expr == nil {
			n++
		}
	}
	return n
}

// name resolves a name and returns the declaration it denotes.
func (r *resolver) name(sc *scope, n *Node, nargs int) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KSimpleName, KCharLiteral:
		n.Ref = pick(sc.lookup(n.Name()), nargs)
		return n.Ref
	case KStringLiteral:
		// Operator symbol.
		n.Ref = pick(sc.lookup(n.Name()), nargs)
		return n.Ref
	case KSelectedName:
		prefix := r.name(sc, n.Prefix, -1)
		n.Ref = r.selected(sc, n, prefix, nargs)
		return n.Ref
	case KSelectedByAll:
		r.name(sc, n.Prefix, -1)
		return nil
	case KCall:
		d := r.name(sc, n.Prefix, len(n.Args))
		var params *scope
		if d != nil && d.IsSubprogram() {
			params = newScope(nil)
			for _, p := range subprogramParams(d) {
				params.declare(p)
			}
		}
		for _, a := range n.Args {
			if a.Formal != nil {
				if params != nil {
					r.formal(sc, params, a.Formal)
				} else {
					r.expr(sc, a.Formal)
				}
			}
			r.expr(sc, a.Actual)
		}
		return d
	case KAttributeName:
		r.name(sc, n.Prefix, -1)
		for _, a := range n.Args {
			r.expr(sc, a)
		}
		n.Ref = firstOf(sc.lookup(n.Name()), KAttributeDecl)
		return nil
	case KQualifiedExpr:
		r.name(sc, n.Prefix, -1)
		r.expr(sc, n.Expr)
		return nil
	}
	r.expr(sc, n)
	return nil
}

func subprogramParams(d *Node) []*Node {
	if d.Spec != nil {
		return d.Spec.Params
	}
	return d.Params
}

// selected resolves the suffix of an expanded name or a record element.
func (r *resolver) selected(sc *scope, n, prefix *Node, nargs int) *Node {
	if prefix == nil {
		if t := r.recordType(n.Prefix); t != nil {
			return recordElement(t, n.Name())
		}
		return nil
	}
	switch prefix.Kind {
	case KLibrary:
		du := r.load(prefix.Name(), n.Name())
		if du == nil {
			return nil
		}
		r.addDep(du)
		return du.LibUnit
	case KPackage, KEntity, KArchitecture:
		pdu := prefix.DesignUnit()
		if pdu == nil || pdu.Unit.scope == nil {
			return nil
		}
		return pick(pdu.Unit.scope.local(n.Name()), nargs)
	}
	if t := r.recordType(n.Prefix); t != nil {
		return recordElement(t, n.Name())
	}
	return nil
}

// recordType returns the record type definition of the object a name
// denotes, looking through array element types.
func (r *resolver) recordType(n *Node) *Node {
	t := objectType(n)
	if t == nil {
		return nil
	}
	if t.Kind == KRecordTypeDef {
		return t
	}
	return nil
}

// objectType returns the type definition of the value a name denotes.
func objectType(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KSimpleName, KSelectedName:
		d := n.Ref
		if d == nil {
			return nil
		}
		switch d.Kind {
		case KSignalDecl, KConstantDecl, KVariableDecl, KInterfaceConstant,
			KInterfaceSignal, KInterfaceVariable, KElementDecl, KAliasDecl:
			return TypeDefinition(d.Type)
		case KFunctionDecl, KFunctionBody:
			return TypeDefinition(d.Type)
		}
	case KCall:
		t := objectType(n.Prefix)
		if t == nil {
			if n.Prefix.Ref != nil && n.Prefix.Ref.IsSubprogram() {
				return TypeDefinition(n.Prefix.Ref.Type)
			}
			return nil
		}
		if t.Kind == KArrayTypeDef {
			return TypeDefinition(t.Type)
		}
		return t
	}
	return nil
}

// TypeDeclaration returns the type declaration a subtype indication
// finally denotes, following subtype declarations.
func TypeDeclaration(ind *Node) *Node {
	for i := 0; i < 32; i++ {
		mark := TypeMark(ind)
		if mark == nil || mark.Ref == nil {
			return nil
		}
		switch mark.Ref.Kind {
		case KTypeDecl:
			return mark.Ref
		case KSubtypeDecl:
			ind = mark.Ref.Type
		default:
			return nil
		}
	}
	return nil
}

// TypeDefinition returns the type definition behind a subtype indication.
func TypeDefinition(ind *Node) *Node {
	if td := TypeDeclaration(ind); td != nil {
		return td.Type
	}
	return nil
}

func recordElement(rec *Node, name string) *Node {
	for _, e := range rec.Elements {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// expr resolves every name in an expression.
func (r *resolver) expr(sc *scope, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KSimpleName, KSelectedName, KSelectedByAll, KCall, KAttributeName,
		KQualifiedExpr, KCharLiteral:
		r.name(sc, n, -1)
	case KStringLiteral:
	case KBinary:
		r.expr(sc, n.Left)
		r.expr(sc, n.Right)
	case KUnary, KParenExpr, KAllocator:
		r.expr(sc, n.Expr)
	case KRange:
		r.expr(sc, n.Left)
		r.expr(sc, n.Right)
	case KAggregate:
		for _, e := range n.Elements {
			for _, c := range e.Choices {
				r.expr(sc, c)
			}
			r.expr(sc, e.Actual)
		}
	case KAssociation:
		r.expr(sc, n.Formal)
		r.expr(sc, n.Actual)
	case KPhysicalLiteral:
		r.name(sc, n.Prefix, -1)
	case KSubtypeIndication:
		r.subtype(sc, n)
	case KWaveformElement:
		r.expr(sc, n.Expr)
		r.expr(sc, n.Right)
	}
}

func (r *resolver) waveforms(sc *scope, alts []*Node) {
	for _, alt := range alts {
		for _, w := range alt.Waveform {
			r.expr(sc, w)
		}
		r.expr(sc, alt.Expr)
		for _, c := range alt.Choices {
			r.expr(sc, c)
		}
	}
}

func (r *resolver) concurrent(sc *scope, stmts []*Node) {
	for _, s := range stmts {
		r.concurrentStatement(sc, s)
	}
}

func (r *resolver) concurrentStatement(sc *scope, s *Node) {
	switch s.Kind {
	case KProcessStmt:
		for _, n := range s.Sensitivity {
			r.expr(sc, n)
		}
		inner := newScope(sc)
		r.declarations(inner, s.Decls)
		r.sequential(inner, s.Stmts)
	case KBlockStmt:
		r.expr(sc, s.Expr)
		inner := newScope(sc)
		r.interfaces(inner, s.Generics)
		r.associations(sc, interfaceScope(s), s.GenericMap)
		r.interfaces(inner, s.Ports)
		r.associations(sc, interfaceScope(s), s.PortMap)
		r.declarations(inner, s.Decls)
		r.concurrent(inner, s.Stmts)
	case KInstanceStmt:
		r.instance(sc, s)
	case KConcurrentAssign:
		r.expr(sc, s.Target)
		r.expr(sc, s.Right)
		r.waveforms(sc, s.Alts)
	case KSelectedAssign:
		r.expr(sc, s.Expr)
		r.expr(sc, s.Target)
		r.expr(sc, s.Right)
		r.waveforms(sc, s.Alts)
	case KConcurrentAssert:
		r.expr(sc, s.Expr)
		r.expr(sc, s.Left)
		r.expr(sc, s.Right)
	case KConcurrentCall:
		r.call(sc, s.Expr)
	case KForGenerate:
		inner := newScope(sc)
		r.expr(sc, s.Param.Expr)
		inner.declare(s.Param)
		r.declarations(inner, s.Decls)
		r.concurrent(inner, s.Stmts)
	case KIfGenerate:
		for alt := s; alt != nil; alt = alt.Else {
			r.expr(sc, alt.Expr)
			inner := newScope(sc)
			r.declarations(inner, alt.Decls)
			r.concurrent(inner, alt.Stmts)
		}
	case KCaseGenerate:
		r.expr(sc, s.Expr)
		for _, alt := range s.Alts {
			for _, c := range alt.Choices {
				r.expr(sc, c)
			}
			inner := newScope(sc)
			r.declarations(inner, alt.Decls)
			r.concurrent(inner, alt.Stmts)
		}
	}
}

// call resolves a procedure call, given as a name or a call.
func (r *resolver) call(sc *scope, n *Node) {
	if n != nil && n.Kind != KCall {
		r.name(sc, n, 0)
		return
	}
	r.name(sc, n, -1)
}

func (r *resolver) instance(sc *scope, s *Node) {
	var unit *Node
	switch s.Aspect {
	case "entity":
		unit = r.name(sc, s.Target, -1)
		if unit != nil && unit.Kind == KEntity && s.Arch != nil {
			lib := unit.DesignUnit().Unit.Library
			if adu := r.lib.Lookup(lib, unit.Name()+"("+s.Arch.Name()+")"); adu != nil {
				s.Arch.Ref = adu.LibUnit
			}
		}
	default:
		unit = r.name(sc, s.Target, -1)
	}
	iface := interfaceScope(unit)
	r.associations(sc, iface, s.GenericMap)
	r.associations(sc, iface, s.PortMap)
}

func (r *resolver) sequential(sc *scope, stmts []*Node) {
	for _, s := range stmts {
		r.sequentialStatement(sc, s)
	}
}

func (r *resolver) sequentialStatement(sc *scope, s *Node) {
	switch s.Kind {
	case KIfStmt:
		for alt := s; alt != nil; alt = alt.Else {
			r.expr(sc, alt.Expr)
			r.sequential(sc, alt.Stmts)
		}
	case KCaseStmt:
		r.expr(sc, s.Expr)
		for _, alt := range s.Alts {
			for _, c := range alt.Choices {
				r.expr(sc, c)
			}
			r.sequential(sc, alt.Stmts)
		}
	case KLoopStmt:
		inner := newScope(sc)
		if s.HasLabel() {
			inner.declare(s)
		}
		if s.Param != nil {
			r.expr(sc, s.Param.Expr)
			inner.declare(s.Param)
		}
		r.expr(inner, s.Expr)
		r.sequential(inner, s.Stmts)
	case KNextStmt, KExitStmt:
		if s.Target != nil {
			s.Target.Ref = firstOf(sc.lookup(s.Target.Name()), KLoopStmt)
		}
		r.expr(sc, s.Expr)
	case KReturnStmt:
		r.expr(sc, s.Expr)
	case KWaitStmt:
		for _, n := range s.Sensitivity {
			r.expr(sc, n)
		}
		r.expr(sc, s.Expr)
		r.expr(sc, s.Right)
	case KAssertStmt, KReportStmt:
		r.expr(sc, s.Expr)
		r.expr(sc, s.Left)
		r.expr(sc, s.Right)
	case KSignalAssign:
		r.expr(sc, s.Target)
		r.expr(sc, s.Right)
		for _, w := range s.Waveform {
			r.expr(sc, w)
		}
		r.waveforms(sc, s.Alts)
	case KVariableAssign:
		r.expr(sc, s.Target)
		r.expr(sc, s.Expr)
		r.waveforms(sc, s.Alts)
	case KCallStmt:
		r.call(sc, s.Expr)
	}
}

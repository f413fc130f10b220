package synthrules

import (
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// SynthProcesses requires processes to have a sensitivity list. A process
// made of a single if statement on a clock edge must be sensitive to the
// clock only. Any other process must be sensitive to every signal it
// reads.
func SynthProcesses() *engine.Rule {
	return engine.NewSynthesisUnit("SynthProcesses", "sensitivity lists of synthesized processes",
		func(rep engine.Reporter, in *engine.Input, du *vhdl.Node) {
			vhdl.Walk(du.LibUnit, func(n *vhdl.Node) bool {
				switch n.Kind {
				case vhdl.KProcessStmt:
					checkProcess(rep, n)
					return false
				case vhdl.KFunctionBody, vhdl.KProcedureBody:
					return false
				}
				return true
			})
		})
}

func checkProcess(rep engine.Reporter, proc *vhdl.Node) {
	if proc.SensAll {
		return
	}
	if len(proc.Sensitivity) == 0 {
		rep.Report(engine.NodeLocation(proc), "non-sentized process not allowed in synth unit")
		return
	}
	list := sensitivity(proc.Sensitivity)
	if len(proc.Stmts) == 1 && proc.Stmts[0].Kind == vhdl.KIfStmt {
		if clk := edgeClock(proc.Stmts[0].Expr); clk != nil {
			if sig, path := signalPath(clk); sig == nil || !list.covers(sig, path) {
				rep.Report(engine.NodeLocation(proc), "clock not in sensitivity list")
			}
			if len(proc.Sensitivity) != 1 {
				rep.Report(engine.NodeLocation(proc), "too many signals in sensitivity list")
			}
			return
		}
	}
	r := &reads{}
	r.statements(proc.Stmts)
	for _, rd := range r.list {
		if !list.covers(rd.sig, rd.path) {
			rep.Report(engine.NodeLocation(rd.name), "signal not in sensitivity list")
		}
	}
}

// edgeClock returns the signal argument of a rising_edge or falling_edge
// call from ieee.std_logic_1164, or nil.
func edgeClock(cond *vhdl.Node) *vhdl.Node {
	for cond != nil && cond.Kind == vhdl.KParenExpr {
		cond = cond.Expr
	}
	if cond == nil || cond.Kind != vhdl.KCall || len(cond.Args) != 1 {
		return nil
	}
	f := cond.Prefix.Ref
	if f == nil || !f.IsSubprogram() {
		return nil
	}
	switch f.Name() {
	case "rising_edge", "falling_edge":
	default:
		return nil
	}
	du := f.DesignUnit()
	if du == nil || du.Unit.Library != vhdl.LibIEEE || du.LibUnit.Name() != "std_logic_1164" {
		return nil
	}
	return cond.Args[0].Actual
}

func isSignal(d *vhdl.Node) bool {
	return d != nil && (d.Kind == vhdl.KSignalDecl || d.Kind == vhdl.KInterfaceSignal)
}

// signalPath returns the signal a name denotes and the record elements or
// indexes selected from it. Indexes and slices are recorded as "()".
func signalPath(n *vhdl.Node) (*vhdl.Node, []string) {
	switch n.Kind {
	case vhdl.KSimpleName:
		if isSignal(n.Ref) {
			return n.Ref, nil
		}
	case vhdl.KSelectedName:
		if isSignal(n.Ref) {
			return n.Ref, nil
		}
		if sig, path := signalPath(n.Prefix); sig != nil {
			return sig, append(path, n.Name())
		}
	case vhdl.KCall:
		if sig, path := signalPath(n.Prefix); sig != nil {
			return sig, append(path, "()")
		}
	}
	return nil, nil
}

type sensEntry struct {
	sig  *vhdl.Node
	path []string
}

type sensList []sensEntry

func sensitivity(names []*vhdl.Node) sensList {
	var out sensList
	for _, n := range names {
		if sig, path := signalPath(n); sig != nil {
			out = append(out, sensEntry{sig: sig, path: path})
		}
	}
	return out
}

// covers reports whether the list holds the signal or one of the prefixes
// of path.
func (l sensList) covers(sig *vhdl.Node, path []string) bool {
	for _, e := range l {
		if e.sig != sig || len(e.path) > len(path) {
			continue
		}
		if strings.Join(e.path, ".") == strings.Join(path[:len(e.path)], ".") {
			return true
		}
	}
	return false
}

// signalAttrs are the attributes whose value depends on the prefix signal.
var signalAttrs = map[string]bool{
	"event": true, "active": true, "last_event": true, "last_active": true,
	"last_value": true, "stable": true, "quiet": true, "delayed": true,
	"transaction": true, "driving": true, "driving_value": true,
}

type read struct {
	name *vhdl.Node
	sig  *vhdl.Node
	path []string
}

// reads collects the signals a sequence of statements reads, once per
// signal path.
type reads struct {
	list []read
	seen map[*vhdl.Node][]string
}

func (r *reads) add(n, sig *vhdl.Node, path []string) {
	if r.seen == nil {
		r.seen = map[*vhdl.Node][]string{}
	}
	key := strings.Join(path, ".")
	for _, p := range r.seen[sig] {
		if p == key {
			return
		}
	}
	r.seen[sig] = append(r.seen[sig], key)
	r.list = append(r.list, read{name: n, sig: sig, path: path})
}

func (r *reads) statements(stmts []*vhdl.Node) {
	for _, s := range stmts {
		r.statement(s)
	}
}

func (r *reads) statement(s *vhdl.Node) {
	switch s.Kind {
	case vhdl.KSignalAssign, vhdl.KVariableAssign:
		r.target(s.Target)
		r.expr(s.Expr)
		r.expr(s.Right)
		for _, w := range s.Waveform {
			r.expr(w)
		}
		r.alternatives(s.Alts)
	case vhdl.KIfStmt:
		for alt := s; alt != nil; alt = alt.Else {
			r.expr(alt.Expr)
			r.statements(alt.Stmts)
		}
	case vhdl.KCaseStmt:
		r.expr(s.Expr)
		for _, alt := range s.Alts {
			r.statements(alt.Stmts)
		}
	case vhdl.KLoopStmt:
		if s.Param != nil {
			r.expr(s.Param.Expr)
		}
		r.expr(s.Expr)
		r.statements(s.Stmts)
	case vhdl.KNextStmt, vhdl.KExitStmt, vhdl.KReturnStmt:
		r.expr(s.Expr)
	case vhdl.KAssertStmt, vhdl.KReportStmt:
		r.expr(s.Expr)
		r.expr(s.Left)
		r.expr(s.Right)
	case vhdl.KCallStmt:
		r.call(s.Expr)
	}
}

func (r *reads) alternatives(alts []*vhdl.Node) {
	for _, alt := range alts {
		for _, w := range alt.Waveform {
			r.expr(w)
		}
		r.expr(alt.Expr)
	}
}

// target collects the signals read by the indexes of an assignment target.
func (r *reads) target(n *vhdl.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case vhdl.KCall:
		r.target(n.Prefix)
		for _, a := range n.Args {
			r.expr(a.Actual)
		}
	case vhdl.KSelectedName:
		r.target(n.Prefix)
	case vhdl.KAggregate:
		for _, e := range n.Elements {
			r.target(e.Actual)
		}
	}
}

// call collects the actuals of a procedure call, except those associated
// with out parameters.
func (r *reads) call(n *vhdl.Node) {
	if n == nil || n.Kind != vhdl.KCall {
		return
	}
	var params []*vhdl.Node
	if d := n.Prefix.Ref; d != nil && d.IsSubprogram() {
		params = d.Params
		if d.Spec != nil {
			params = d.Spec.Params
		}
	}
	for i, a := range n.Args {
		var p *vhdl.Node
		switch {
		case a.Formal != nil:
			if a.Formal.Kind == vhdl.KSimpleName {
				p = a.Formal.Ref
			}
		case i < len(params):
			p = params[i]
		}
		if p != nil && p.Mode == vhdl.ModeOut {
			r.target(a.Actual)
			continue
		}
		r.expr(a.Actual)
	}
}

func (r *reads) expr(n *vhdl.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case vhdl.KSimpleName, vhdl.KSelectedName:
		if sig, path := signalPath(n); sig != nil {
			r.add(n, sig, path)
			return
		}
		if n.Kind == vhdl.KSelectedName {
			r.expr(n.Prefix)
		}
	case vhdl.KCall:
		if sig, path := signalPath(n); sig != nil {
			r.add(n, sig, path)
		} else {
			r.expr(n.Prefix)
		}
		for _, a := range n.Args {
			r.expr(a.Actual)
		}
	case vhdl.KAttributeName:
		if signalAttrs[strings.ToLower(n.Ident)] {
			r.expr(n.Prefix)
		}
		for _, a := range n.Args {
			r.expr(a)
		}
	case vhdl.KBinary, vhdl.KRange:
		r.expr(n.Left)
		r.expr(n.Right)
	case vhdl.KUnary, vhdl.KParenExpr, vhdl.KQualifiedExpr, vhdl.KWaveformElement:
		r.expr(n.Expr)
	case vhdl.KAggregate:
		for _, e := range n.Elements {
			r.expr(e.Actual)
		}
	case vhdl.KAssociation:
		r.expr(n.Actual)
	}
}

func synthProcessesTests() []engine.TestCase {
	r := SynthProcesses()
	return []engine.TestCase{
		engine.OK("Simple FF", r, "--synth", "synthproc1.vhdl"),
		engine.Fail("Non-sensitized process", r, "--synth", "synthproc2.vhdl"),
		engine.OK("Simple combinational", r, "--synth", "synthproc3.vhdl"),
		engine.Fail("Missing signal in sensitivity list", r, "--synth", "synthproc4.vhdl"),
		engine.Fail("Too many signals for a FF", r, "--synth", "synthproc5.vhdl"),
		engine.OK("Not a synthesis unit", r, "--tb", "synthproc2.vhdl"),
	}
}

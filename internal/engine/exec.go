package engine

// =============================================================================
// PHASES
// =============================================================================
//
// Execute drives every listed file through five phases. Each phase runs over
// the whole batch before the next one starts, because the semantic phase
// needs every unit of every file in the library before resolving any of them.
//
//   0. intake     read files, run whole-file rules
//   1. lexical    scan with comments, index comments by line, token rules
//   2. syntax     parse with extended locations, syntax rules
//   3. semantic   move units into the library, resolve, semantic rules
//   4. synthesis  synthesis rules on inputs tagged synth
//
// Phases 2 to 4 are skipped when no rule needs them. Files tagged import take
// part in every phase but are never checked.
// =============================================================================

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Options configures an Exec. Zero values select the defaults.
type Options struct {
	// Quiet suppresses diagnostics; they are still counted.
	Quiet bool
	// Stdout receives the report and test titles, Stderr the diagnostics.
	Stdout io.Writer
	Stderr io.Writer
	// Logger receives operational traces. Defaults to a discarding logger.
	Logger logrus.FieldLogger
	// ReadFile loads a listed file. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
	// MaxParallel bounds concurrent file reads during intake.
	MaxParallel int
	// Import reports whether a file must be treated as if listed after
	// --import.
	Import func(name string) bool
	// TimingPath overrides where phase timings are written.
	TimingPath string
}

// Exec holds the registered rules and runs them over a list of files.
type Exec struct {
	fe     *vhdl.Frontend
	opts   Options
	sink   *Sink
	log    logrus.FieldLogger
	rules  [kindCount][]*Rule
	inputs []*Input
	files  int

	timing   *timingRecorder
	noTiming bool
}

// New returns an Exec sharing the front-end (and so the library) fe.
func New(fe *vhdl.Frontend, opts Options) *Exec {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = runtime.GOMAXPROCS(0)
	}
	return &Exec{
		fe:   fe,
		opts: opts,
		sink: NewSink(opts.Stderr, opts.Quiet),
		log:  opts.Logger,
	}
}

// Frontend returns the front-end the rules run against.
func (e *Exec) Frontend() *vhdl.Frontend { return e.fe }

// Add registers a rule. A rule without a check matching its kind is a
// configuration error.
func (e *Exec) Add(r *Rule) error {
	if !r.valid() {
		name := "<nil>"
		if r != nil {
			name = r.Name
		}
		return &ConfigError{Msg: fmt.Sprintf("unknown class for rule %s", name)}
	}
	e.rules[r.Kind] = append(e.rules[r.Kind], r)
	return nil
}

// Rules returns the registered rules of a kind.
func (e *Exec) Rules(k Kind) []*Rule { return e.rules[k] }

// Errors returns the number of diagnostics so far.
func (e *Exec) Errors() int { return e.sink.Count() }

// Files returns the number of files checked.
func (e *Exec) Files() int { return e.files }

// Inputs returns the inputs of the last run.
func (e *Exec) Inputs() []*Input { return e.inputs }

func (e *Exec) reporter(r *Rule) Reporter { return NewReporter(r.Name, e.sink) }

func (e *Exec) needs(kinds ...Kind) bool {
	for _, k := range kinds {
		if len(e.rules[k]) > 0 {
			return true
		}
	}
	return false
}

// Execute runs every phase over args, a list of file names and property
// switches. Lint violations are counted, not returned; the returned error
// is a configuration or front-end fault that aborted the run.
func (e *Exec) Execute(ctx context.Context, args []string) error {
	start := time.Now()
	if !e.noTiming {
		e.timing = newTimingRecorder(start, timingPath(e.opts.TimingPath))
		defer e.timing.Close()
		if err := e.timing.Err(); err != nil {
			e.log.WithError(err).Warn("timing output disabled")
		}
	}
	e.inputs = nil
	e.files = 0

	if err := e.phase("intake", func() error { return e.intake(ctx, args) }); err != nil {
		return err
	}
	if err := e.phase("lexical", e.lexical); err != nil {
		return err
	}
	if !e.needs(KindSyntaxUnit, KindSyntaxNode, KindSemanticUnit, KindSemanticNode, KindSynthesisUnit) {
		e.timing.RecordPhase("total", start, "ok")
		return nil
	}
	if err := e.phase("syntax", e.syntax); err != nil {
		return err
	}
	if e.needs(KindSemanticUnit, KindSemanticNode, KindSynthesisUnit) {
		if err := e.phase("semantic", e.semantic); err != nil {
			return err
		}
		if err := e.phase("synthesis", e.synthesis); err != nil {
			return err
		}
	}
	e.timing.RecordPhase("total", start, "ok")
	return nil
}

func (e *Exec) phase(name string, fn func() error) error {
	start := time.Now()
	log := e.log.WithField("phase", name)
	log.Debug("phase start")
	err := fn()
	status := "ok"
	if err != nil {
		status = "error"
		log.WithError(err).Debug("phase failed")
	}
	e.timing.RecordPhase(name, start, status)
	log.WithField("errors", e.sink.Count()).Debug("phase end")
	return err
}

type fetched struct {
	buf []byte
	err error
}

func (e *Exec) intake(ctx context.Context, args []string) error {
	// Buffers are read concurrently and consumed in argument order, so the
	// first bad argument in the list is the one reported.
	bufs := make([]fetched, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.MaxParallel)
	for i, arg := range args {
		if IsSwitch(arg) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			buf, err := e.opts.ReadFile(arg)
			bufs[i] = fetched{buf: buf, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	props := DefaultProps
	for i, arg := range args {
		if IsSwitch(arg) {
			p, ok := SwitchProps(arg)
			if !ok {
				return fmt.Errorf("%w '%s'", ErrUnknownSwitch, arg)
			}
			props = p
			continue
		}
		if bufs[i].err != nil {
			return &FatalError{Msg: "cannot open " + arg, Err: bufs[i].err}
		}
		in := &Input{
			Name:     arg,
			Src:      vhdl.NewSourceFile(arg, bufs[i].buf),
			Props:    props,
			Comments: map[int]vhdl.Span{},
			Library:  e.fe.Library,
		}
		if e.opts.Import != nil && e.opts.Import(arg) {
			in.Props = PropImport
		}
		e.inputs = append(e.inputs, in)
		e.log.WithFields(logrus.Fields{"file": arg, "props": in.Props.String()}).Debug("input")
		if !in.Checked() {
			continue
		}
		e.files++
		start := time.Now()
		lines := in.Src.Lines()
		loc := FileLocation(arg)
		for _, r := range e.rules[KindWholeFile] {
			r.wholeFile(e.reporter(r), loc, lines)
		}
		e.timing.RecordFile("intake", arg, start)
	}
	return nil
}

func (e *Exec) lexical() error {
	for _, in := range e.inputs {
		start := time.Now()
		sc := e.fe.Tokenize(in.Src, true)
		checked := in.Checked()
		for {
			tok := sc.Next()
			if err := sc.Err(); err != nil {
				return &FatalError{Err: err}
			}
			line, col := in.Src.Position(tok.Span.Start)
			loc := TokenLocation{
				Location: Location{File: in.Name, Line: line, Col: col},
				Start:    tok.Span.Start,
				End:      tok.Span.End,
			}
			if tok.Kind == vhdl.TokComment {
				in.Comments[line] = tok.Span
			}
			if checked {
				for _, r := range e.rules[KindToken] {
					r.token(e.reporter(r), loc, in.Src.Buf, tok.Kind)
				}
			}
			if tok.Kind == vhdl.TokEOF {
				break
			}
		}
		e.timing.RecordFile("lexical", in.Name, start)
	}
	return nil
}

func (e *Exec) syntax() error {
	mode := vhdl.ParseMode{ExtendedLocations: true, KeepParentheses: true}
	for _, in := range e.inputs {
		start := time.Now()
		file, err := e.fe.Parse(in.Src, mode)
		if err != nil {
			return &FatalError{Err: err}
		}
		in.File = file
		if in.Checked() {
			for _, r := range e.rules[KindSyntaxUnit] {
				r.syntaxUnit(e.reporter(r), in, file)
			}
			e.walk(in, file, e.rules[KindSyntaxNode])
		}
		e.timing.RecordFile("syntax", in.Name, start)
	}
	return nil
}

func (e *Exec) walk(in *Input, root *vhdl.Node, rules []*Rule) {
	if len(rules) == 0 {
		return
	}
	vhdl.Walk(root, func(n *vhdl.Node) bool {
		for _, r := range rules {
			r.node(e.reporter(r), in, n)
		}
		return true
	})
}

func (e *Exec) semantic() error {
	// Every unit of every input is in the library before any is resolved,
	// so references across files resolve whatever the argument order.
	for _, in := range e.inputs {
		in.Units = e.fe.Analyze(in.File)
	}
	for _, in := range e.inputs {
		if !in.Checked() {
			continue
		}
		start := time.Now()
		for _, du := range in.Units {
			if du.LibUnit == nil {
				continue
			}
			if err := e.fe.Resolve(du); err != nil {
				return &FatalError{Err: err}
			}
			e.log.WithFields(logrus.Fields{"file": in.Name, "unit": du.LibUnit.Ident}).Debug("resolved")
			for _, r := range e.rules[KindSemanticUnit] {
				r.unit(e.reporter(r), in, du)
			}
			e.walk(in, du, e.rules[KindSemanticNode])
		}
		e.timing.RecordFile("semantic", in.Name, start)
	}
	return nil
}

func (e *Exec) synthesis() error {
	if len(e.rules[KindSynthesisUnit]) == 0 {
		return nil
	}
	for _, in := range e.inputs {
		if !in.Props.Has(PropSynth) {
			continue
		}
		for _, du := range in.Units {
			if du.LibUnit == nil {
				continue
			}
			for _, r := range e.rules[KindSynthesisUnit] {
				r.unit(e.reporter(r), in, du)
			}
		}
	}
	return nil
}

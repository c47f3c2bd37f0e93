package nql

import (
	"fmt"
	"strings"

	"github.com/ezrec/nql/compiler"
)

// Compile lowers the program onto compiler parts and returns the
// instantiation of main. The caller is expected to lay it out ahead of
// a halt slot; falling off the end of main stops the machine.
func (prog *Program) Compile(b *compiler.Builder) (*compiler.Subroutine, error) {
	lw := &lowerer{b: b, prog: prog}
	line := 0
	if proc, ok := prog.Procs["main"]; ok {
		line = proc.Line
	}
	return lw.instantiate("main", nil, line)
}

type lowerer struct {
	b    *compiler.Builder
	prog *Program
}

// instantiate lowers one procedure body against one argument tuple.
// Instantiations are shared by (name, arguments); a request for a pair
// still being lowered is recursion, which the counter layout cannot
// express.
func (lw *lowerer) instantiate(name string, args []string, line int) (*compiler.Subroutine, error) {
	key := name + "(" + strings.Join(args, ",") + ")"
	return compiler.Memo(lw.b, "instantiate", key, func() (sub *compiler.Subroutine, err error) {
		proc, ok := lw.prog.Procs[name]
		if !ok {
			err = ErrSymbol{Line: line, Name: name}
			return
		}
		if len(args) != len(proc.Params) {
			err = ErrArity{Line: line, Proc: name, Want: len(proc.Params), Got: len(args)}
			return
		}

		em := &emitter{lw: lw, binding: map[string]string{}}
		for i, param := range proc.Params {
			em.binding[param] = args[i]
		}

		em.stmt(proc.Body)
		em.closeReturn()
		if em.err != nil {
			err = em.err
			return
		}

		return lw.b.Makesub(key, em.parts...)
	})
}

// emitter accumulates the part list for one instantiation. The first
// failure sticks; emission after it is a no-op.
type emitter struct {
	lw      *lowerer
	binding map[string]string // parameter to caller register name
	parts   []compiler.Part
	err     error

	scratchNext int
	free        []*compiler.Register

	returnLabel string
}

func (em *emitter) label(name string) {
	if em.err != nil {
		return
	}
	em.parts = append(em.parts, compiler.Label(name))
}

func (em *emitter) jump(name string) {
	if em.err != nil {
		return
	}
	em.parts = append(em.parts, compiler.Goto(name))
}

func (em *emitter) inc(reg *compiler.Register) {
	if em.err != nil {
		return
	}
	em.parts = append(em.parts, reg.Inc)
}

func (em *emitter) dec(reg *compiler.Register) {
	if em.err != nil {
		return
	}
	em.parts = append(em.parts, reg.Dec)
}

func (em *emitter) noop() {
	if em.err != nil {
		return
	}
	sub, err := em.lw.b.Noop(0)
	if err != nil {
		em.err = err
		return
	}
	em.parts = append(em.parts, sub)
}

func (em *emitter) xfer(source *compiler.Register, targets ...*compiler.Register) {
	if em.err != nil {
		return
	}
	sub, err := em.lw.b.Transfer(source, targets...)
	if err != nil {
		em.err = err
		return
	}
	em.parts = append(em.parts, sub)
}

func (em *emitter) gensym() string {
	return em.lw.b.Gensym()
}

// resolve maps a source name to its register: a bound parameter first,
// otherwise a declared global.
func (em *emitter) resolve(name string, line int) *compiler.Register {
	if em.err != nil {
		return nil
	}
	target := name
	if bound, ok := em.binding[name]; ok {
		target = bound
	} else {
		if _, ok := em.prog().Globals[name]; !ok {
			em.err = ErrSymbol{Line: line, Name: name}
			return nil
		}
		target = "_G" + name
	}
	reg, err := em.lw.b.Register(target)
	if err != nil {
		em.err = err
		return nil
	}
	return reg
}

func (em *emitter) prog() *Program {
	return em.lw.prog
}

// getTemp returns a zero scratch register. Scratch registers are
// shared across instantiations; every emission sequence leaves its
// temporaries zero again before putTemp.
func (em *emitter) getTemp() *compiler.Register {
	if em.err != nil {
		return nil
	}
	if n := len(em.free); n > 0 {
		reg := em.free[n-1]
		em.free = em.free[:n-1]
		return reg
	}
	em.scratchNext++
	reg, err := em.lw.b.Register(fmt.Sprintf("_scratch_%d", em.scratchNext))
	if err != nil {
		em.err = err
		return nil
	}
	return reg
}

func (em *emitter) putTemp(reg *compiler.Register) {
	if em.err != nil {
		return
	}
	em.free = append(em.free, reg)
}

func (em *emitter) emitReturn() {
	if em.returnLabel == "" {
		em.returnLabel = em.gensym()
	}
	em.jump(em.returnLabel)
}

func (em *emitter) closeReturn() {
	if em.returnLabel != "" {
		em.label(em.returnLabel)
	}
}

func (em *emitter) stmt(s *Stmt) {
	if em.err != nil {
		return
	}
	switch s.Kind {
	case STMT_BLOCK:
		for _, child := range s.Body {
			em.stmt(child)
		}

	case STMT_ASSIGN:
		temp := em.getTemp()
		em.natInto(s.Expr, temp)
		lhs := em.resolve(s.Name, s.Line)
		em.xfer(lhs)
		em.xfer(temp, lhs)
		em.putTemp(temp)

	case STMT_WHILE:
		exit := em.gensym()
		again := em.gensym()
		em.label(again)
		em.test(s.Cond, exit, true)
		for _, child := range s.Body {
			em.stmt(child)
		}
		em.jump(again)
		em.label(exit)

	case STMT_IF:
		lElse := em.gensym()
		lThen := em.gensym()
		em.test(s.Cond, lElse, true)
		for _, child := range s.Body {
			em.stmt(child)
		}
		em.jump(lThen)
		em.label(lElse)
		em.label(lThen)

	case STMT_CALL:
		names := make([]string, 0, len(s.Args))
		for _, arg := range s.Args {
			reg := em.resolve(arg, s.Line)
			if em.err != nil {
				return
			}
			names = append(names, reg.Name)
		}
		sub, err := em.lw.instantiate(s.Name, names, s.Line)
		if err != nil {
			em.err = err
			return
		}
		em.parts = append(em.parts, sub)

	case STMT_RETURN:
		em.emitReturn()
	}
}

// natInto evaluates a numeric expression into target, which the
// caller guarantees is zero. Every path leaves the temporaries zero.
func (em *emitter) natInto(e *NatExpr, target *compiler.Register) {
	if em.err != nil {
		return
	}
	switch e.Kind {
	case NAT_LIT:
		for i := 0; i < e.Value; i++ {
			em.inc(target)
		}

	case NAT_REG:
		// Read without consuming: drain into both the target and a
		// save register, then drain the save back.
		save := em.getTemp()
		reg := em.resolve(e.Name, e.Line)
		em.xfer(reg, target, save)
		em.xfer(save, reg)
		em.putTemp(save)

	case NAT_ADD:
		lhs := em.getTemp()
		em.natInto(e.Left, lhs)
		rhs := em.getTemp()
		em.natInto(e.Right, rhs)
		em.xfer(lhs, target)
		em.xfer(rhs, target)
		em.putTemp(lhs)
		em.putTemp(rhs)

	case NAT_MONUS:
		lhs := em.getTemp()
		em.natInto(e.Left, lhs)
		rhs := em.getTemp()
		em.natInto(e.Right, rhs)
		em.xfer(lhs, target)
		loop := em.gensym()
		done := em.gensym()
		em.label(loop)
		em.dec(rhs)
		em.jump(done)
		em.dec(target)
		em.noop()
		em.jump(loop)
		em.label(done)
		em.putTemp(lhs)
		em.putTemp(rhs)

	case NAT_MUL:
		lhs := em.getTemp()
		em.natInto(e.Left, lhs)
		rhs := em.getTemp()
		em.natInto(e.Right, rhs)
		save := em.getTemp()
		again := em.gensym()
		done := em.gensym()
		em.label(again)
		em.dec(lhs)
		em.jump(done)
		em.xfer(rhs, save, target)
		em.xfer(save, rhs)
		em.jump(again)
		em.label(done)
		em.xfer(rhs)
		em.putTemp(save)
		em.putTemp(lhs)
		em.putTemp(rhs)

	case NAT_DIV:
		dividend := em.getTemp()
		divisor := em.getTemp()
		loopQuotient := em.gensym()
		loopDivisor := em.gensym()
		exhausted := em.gensym()
		fullDivisor := em.gensym()

		em.natInto(e.Left, dividend)
		em.label(loopQuotient)
		em.natInto(e.Right, divisor)
		em.label(loopDivisor)
		em.dec(divisor)
		em.jump(fullDivisor)
		em.dec(dividend)
		em.jump(exhausted)
		em.jump(loopDivisor)
		em.label(fullDivisor)
		em.inc(target)
		em.jump(loopQuotient)
		em.label(exhausted)
		em.xfer(divisor)
		em.putTemp(dividend)
		em.putTemp(divisor)
	}
}

// test jumps to target when the expression holds, with invert flipping
// the sense. Short-circuiting falls out of the jump structure.
func (em *emitter) test(e *BoolExpr, target string, invert bool) {
	if em.err != nil {
		return
	}
	switch e.Kind {
	case BOOL_NOT:
		em.test(e.X, target, !invert)

	case BOOL_AND:
		if invert {
			em.test(e.X, target, true)
			em.test(e.Y, target, true)
		} else {
			skip := em.gensym()
			em.test(e.X, skip, true)
			em.test(e.Y, target, false)
			em.label(skip)
		}

	case BOOL_OR:
		if invert {
			skip := em.gensym()
			em.test(e.X, skip, false)
			em.test(e.Y, target, true)
			em.label(skip)
		} else {
			em.test(e.X, target, false)
			em.test(e.Y, target, false)
		}

	default:
		lhs := em.getTemp()
		em.natInto(e.Left, lhs)
		rhs := em.getTemp()
		em.natInto(e.Right, rhs)
		em.compare(e.Kind, target, invert, lhs, rhs)
		em.putTemp(lhs)
		em.putTemp(rhs)
	}
}

// compare decides a comparison by repeated paired decrement, consuming
// both operand registers.
func (em *emitter) compare(kind BoolKind, target string, invert bool, lhs, rhs *compiler.Register) {
	var jumpLT, jumpEQ, jumpGT bool
	switch kind {
	case BOOL_LESS:
		jumpLT = true
	case BOOL_GREATER:
		jumpGT = true
	case BOOL_LESS_EQUAL:
		jumpLT, jumpEQ = true, true
	case BOOL_GREATER_EQUAL:
		jumpEQ, jumpGT = true, true
	case BOOL_EQUAL:
		jumpEQ = true
	case BOOL_NOT_EQUAL:
		jumpLT, jumpGT = true, true
	}

	monus := em.gensym()
	notLess := em.gensym()
	isLess := em.gensym()
	noJump := em.gensym()

	pick := func(jump bool) string {
		if jump != invert {
			return target
		}
		return noJump
	}

	em.label(monus)
	em.dec(rhs)
	em.jump(notLess)
	em.dec(lhs)
	em.jump(isLess)
	em.jump(monus)

	em.label(notLess)
	if jumpEQ != jumpGT {
		// lhs equal to rhs exactly when lhs already ran out
		em.dec(lhs)
		em.jump(pick(jumpEQ))
	}
	em.xfer(lhs)
	em.jump(pick(jumpGT))

	em.label(isLess)
	em.xfer(rhs)
	em.jump(pick(jumpLT))

	em.label(noJump)
}

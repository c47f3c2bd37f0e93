package nql

import (
	"fmt"
	"io"
)

//go:generate go tool stringer -linecomment -type=NatKind

// NatKind tags a natural number expression.
type NatKind int

const (
	NAT_LIT   NatKind = iota // lit
	NAT_REG                  // reg
	NAT_ADD                  // +
	NAT_MONUS                // -
	NAT_MUL                  // *
	NAT_DIV                  // /
)

// NatExpr is a natural number expression.
type NatExpr struct {
	Kind NatKind
	Line int

	Value int    // NAT_LIT
	Name  string // NAT_REG

	Left  *NatExpr
	Right *NatExpr
}

//go:generate go tool stringer -linecomment -type=BoolKind

// BoolKind tags a boolean test expression.
type BoolKind int

const (
	BOOL_LESS          BoolKind = iota // <
	BOOL_GREATER                       // >
	BOOL_LESS_EQUAL                    // <=
	BOOL_GREATER_EQUAL                 // >=
	BOOL_EQUAL                         // ==
	BOOL_NOT_EQUAL                     // !=
	BOOL_NOT                           // !
	BOOL_AND                           // &&
	BOOL_OR                            // ||
)

// BoolExpr is a boolean test expression. Comparisons hold Left and
// Right; the connectives hold X (and Y).
type BoolExpr struct {
	Kind BoolKind
	Line int

	Left  *NatExpr
	Right *NatExpr

	X *BoolExpr
	Y *BoolExpr
}

//go:generate go tool stringer -linecomment -type=StmtKind

// StmtKind tags a statement.
type StmtKind int

const (
	STMT_BLOCK  StmtKind = iota // block
	STMT_ASSIGN                 // assign
	STMT_WHILE                  // while
	STMT_IF                     // if
	STMT_CALL                   // call
	STMT_RETURN                 // return
)

// Stmt is a statement.
type Stmt struct {
	Kind StmtKind
	Line int

	Name string   // assign target, call procedure
	Expr *NatExpr // assign value
	Cond *BoolExpr
	Args []string // call arguments, register names
	Body []*Stmt
}

// Proc is a procedure definition.
type Proc struct {
	Name   string
	Params []string
	Body   *Stmt
	Line   int
}

// Program is a parsed program: global register declarations and
// procedure definitions.
type Program struct {
	Globals map[string]int // name to declaration line
	Procs   map[string]*Proc
	Names   []string // declaration order
}

func NewProgram() *Program {
	return &Program{
		Globals: map[string]int{},
		Procs:   map[string]*Proc{},
	}
}

func (e *NatExpr) dump(w io.Writer) {
	switch e.Kind {
	case NAT_LIT:
		fmt.Fprintf(w, "%d", e.Value)
	case NAT_REG:
		fmt.Fprintf(w, "%s", e.Name)
	default:
		fmt.Fprintf(w, "(%v ", e.Kind)
		e.Left.dump(w)
		fmt.Fprint(w, " ")
		e.Right.dump(w)
		fmt.Fprint(w, ")")
	}
}

func (e *BoolExpr) dump(w io.Writer) {
	switch e.Kind {
	case BOOL_NOT:
		fmt.Fprintf(w, "(%v ", e.Kind)
		e.X.dump(w)
		fmt.Fprint(w, ")")
	case BOOL_AND, BOOL_OR:
		fmt.Fprintf(w, "(%v ", e.Kind)
		e.X.dump(w)
		fmt.Fprint(w, " ")
		e.Y.dump(w)
		fmt.Fprint(w, ")")
	default:
		fmt.Fprintf(w, "(%v ", e.Kind)
		e.Left.dump(w)
		fmt.Fprint(w, " ")
		e.Right.dump(w)
		fmt.Fprint(w, ")")
	}
}

func (s *Stmt) dump(w io.Writer, indent string) {
	fmt.Fprint(w, indent)
	switch s.Kind {
	case STMT_BLOCK:
		fmt.Fprintln(w, "block")
	case STMT_ASSIGN:
		fmt.Fprintf(w, "assign %s ", s.Name)
		s.Expr.dump(w)
		fmt.Fprintln(w)
	case STMT_WHILE, STMT_IF:
		fmt.Fprintf(w, "%v ", s.Kind)
		s.Cond.dump(w)
		fmt.Fprintln(w)
	case STMT_CALL:
		fmt.Fprintf(w, "call %s%v\n", s.Name, s.Args)
	case STMT_RETURN:
		fmt.Fprintln(w, "return")
	}
	for _, child := range s.Body {
		child.dump(w, indent+"  ")
	}
}

// Dump writes an indented listing of the program tree.
func (prog *Program) Dump(w io.Writer) {
	for _, name := range prog.Names {
		if proc, ok := prog.Procs[name]; ok {
			fmt.Fprintf(w, "proc %s%v\n", proc.Name, proc.Params)
			for _, child := range proc.Body.Body {
				child.dump(w, "  ")
			}
			continue
		}
		if _, ok := prog.Globals[name]; ok {
			fmt.Fprintf(w, "global %s\n", name)
		}
	}
}

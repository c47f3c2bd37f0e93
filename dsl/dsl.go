package dsl

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/nql/nql"
)

// Load executes a Starlark script and returns the program it defines.
// src may be nil to read the named file, or a string or []byte holding
// the script text.
func Load(name string, src any) (*nql.Program, error) {
	ld := &loader{prog: nql.NewProgram()}

	thread := &starlark.Thread{Name: name}
	opts := syntax.FileOptions{}
	_, err := starlark.ExecFileOptions(&opts, thread, name, src, ld.builtins())
	if err != nil {
		return nil, err
	}
	return ld.prog, nil
}

type loader struct {
	prog *nql.Program
}

func (ld *loader) builtins() starlark.StringDict {
	dict := starlark.StringDict{
		"lit":  starlark.NewBuiltin("lit", builtinLit),
		"read": starlark.NewBuiltin("read", builtinRead),

		"add":   natBinop("add", nql.NAT_ADD),
		"monus": natBinop("monus", nql.NAT_MONUS),
		"mul":   natBinop("mul", nql.NAT_MUL),
		"div":   natBinop("div", nql.NAT_DIV),

		"less":          compareOp("less", nql.BOOL_LESS),
		"greater":       compareOp("greater", nql.BOOL_GREATER),
		"less_equal":    compareOp("less_equal", nql.BOOL_LESS_EQUAL),
		"greater_equal": compareOp("greater_equal", nql.BOOL_GREATER_EQUAL),
		"equal":         compareOp("equal", nql.BOOL_EQUAL),
		"not_equal":     compareOp("not_equal", nql.BOOL_NOT_EQUAL),

		"not_": starlark.NewBuiltin("not_", builtinNot),
		"and_": boolBinop("and_", nql.BOOL_AND),
		"or_":  boolBinop("or_", nql.BOOL_OR),

		"assign":  starlark.NewBuiltin("assign", builtinAssign),
		"while_":  blockStmt("while_", nql.STMT_WHILE),
		"if_":     blockStmt("if_", nql.STMT_IF),
		"block":   starlark.NewBuiltin("block", builtinBlock),
		"call":    starlark.NewBuiltin("call", builtinCall),
		"return_": starlark.NewBuiltin("return_", builtinReturn),

		"proc":    starlark.NewBuiltin("proc", ld.builtinProc),
		"global_": starlark.NewBuiltin("global_", ld.builtinGlobal),
	}
	return dict
}

// natValue wraps a numeric expression as a Starlark value.
type natValue struct {
	expr *nql.NatExpr
}

func (natValue) Type() string         { return "nat" }
func (natValue) Freeze()              {}
func (natValue) Truth() starlark.Bool { return starlark.True }
func (v natValue) String() string     { return fmt.Sprintf("nat<%v>", v.expr.Kind) }
func (v natValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: nat")
}

// boolValue wraps a test expression as a Starlark value.
type boolValue struct {
	expr *nql.BoolExpr
}

func (boolValue) Type() string         { return "test" }
func (boolValue) Freeze()              {}
func (boolValue) Truth() starlark.Bool { return starlark.True }
func (v boolValue) String() string     { return fmt.Sprintf("test<%v>", v.expr.Kind) }
func (v boolValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: test")
}

// stmtValue wraps a statement as a Starlark value.
type stmtValue struct {
	stmt *nql.Stmt
}

func (stmtValue) Type() string         { return "stmt" }
func (stmtValue) Freeze()              {}
func (stmtValue) Truth() starlark.Bool { return starlark.True }
func (v stmtValue) String() string     { return fmt.Sprintf("stmt<%v>", v.stmt.Kind) }
func (v stmtValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: stmt")
}

func natArg(builtin string, v starlark.Value) (*nql.NatExpr, error) {
	switch v := v.(type) {
	case natValue:
		return v.expr, nil
	case starlark.Int:
		value, ok := v.Int64()
		if !ok || value < 0 {
			return nil, ErrBuiltin{Builtin: builtin, Err: ErrNatValue}
		}
		return &nql.NatExpr{Kind: nql.NAT_LIT, Value: int(value)}, nil
	case starlark.String:
		return &nql.NatExpr{Kind: nql.NAT_REG, Name: string(v)}, nil
	}
	return nil, ErrBuiltin{Builtin: builtin, Err: ErrNatValue}
}

func boolArg(builtin string, v starlark.Value) (*nql.BoolExpr, error) {
	if b, ok := v.(boolValue); ok {
		return b.expr, nil
	}
	return nil, ErrBuiltin{Builtin: builtin, Err: ErrBoolValue}
}

func nameArg(builtin string, v starlark.Value) (string, error) {
	if s, ok := starlark.AsString(v); ok {
		return s, nil
	}
	return "", ErrBuiltin{Builtin: builtin, Err: ErrNameValue}
}

func stmtArgs(builtin string, vals []starlark.Value) ([]*nql.Stmt, error) {
	stmts := make([]*nql.Stmt, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(stmtValue)
		if !ok {
			return nil, ErrBuiltin{Builtin: builtin, Err: ErrStmtValue}
		}
		stmts = append(stmts, s.stmt)
	}
	return stmts, nil
}

func noKwargs(builtin string, kwargs []starlark.Tuple) error {
	if len(kwargs) > 0 {
		return fmt.Errorf("%s: unexpected keyword arguments", builtin)
	}
	return nil
}

func builtinLit(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "value", &value); err != nil {
		return nil, err
	}
	if value < 0 {
		return nil, ErrBuiltin{Builtin: fn.Name(), Err: ErrNatValue}
	}
	return natValue{&nql.NatExpr{Kind: nql.NAT_LIT, Value: value}}, nil
}

func builtinRead(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	return natValue{&nql.NatExpr{Kind: nql.NAT_REG, Name: name}}, nil
}

func natBinop(name string, kind nql.NatKind) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var xv, yv starlark.Value
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "x", &xv, "y", &yv); err != nil {
			return nil, err
		}
		x, err := natArg(fn.Name(), xv)
		if err != nil {
			return nil, err
		}
		y, err := natArg(fn.Name(), yv)
		if err != nil {
			return nil, err
		}
		return natValue{&nql.NatExpr{Kind: kind, Left: x, Right: y}}, nil
	})
}

func compareOp(name string, kind nql.BoolKind) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var xv, yv starlark.Value
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "x", &xv, "y", &yv); err != nil {
			return nil, err
		}
		x, err := natArg(fn.Name(), xv)
		if err != nil {
			return nil, err
		}
		y, err := natArg(fn.Name(), yv)
		if err != nil {
			return nil, err
		}
		return boolValue{&nql.BoolExpr{Kind: kind, Left: x, Right: y}}, nil
	})
}

func boolBinop(name string, kind nql.BoolKind) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var xv, yv starlark.Value
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "x", &xv, "y", &yv); err != nil {
			return nil, err
		}
		x, err := boolArg(fn.Name(), xv)
		if err != nil {
			return nil, err
		}
		y, err := boolArg(fn.Name(), yv)
		if err != nil {
			return nil, err
		}
		return boolValue{&nql.BoolExpr{Kind: kind, X: x, Y: y}}, nil
	})
}

func builtinNot(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var xv starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "x", &xv); err != nil {
		return nil, err
	}
	x, err := boolArg(fn.Name(), xv)
	if err != nil {
		return nil, err
	}
	return boolValue{&nql.BoolExpr{Kind: nql.BOOL_NOT, X: x}}, nil
}

func builtinAssign(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var vv starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "value", &vv); err != nil {
		return nil, err
	}
	value, err := natArg(fn.Name(), vv)
	if err != nil {
		return nil, err
	}
	return stmtValue{&nql.Stmt{Kind: nql.STMT_ASSIGN, Name: name, Expr: value}}, nil
}

func blockStmt(name string, kind nql.StmtKind) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noKwargs(fn.Name(), kwargs); err != nil {
			return nil, err
		}
		if len(args) < 1 {
			return nil, ErrBuiltin{Builtin: fn.Name(), Err: ErrBoolValue}
		}
		cond, err := boolArg(fn.Name(), args[0])
		if err != nil {
			return nil, err
		}
		body, err := stmtArgs(fn.Name(), args[1:])
		if err != nil {
			return nil, err
		}
		return stmtValue{&nql.Stmt{Kind: kind, Cond: cond, Body: body}}, nil
	})
}

func builtinBlock(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noKwargs(fn.Name(), kwargs); err != nil {
		return nil, err
	}
	body, err := stmtArgs(fn.Name(), args)
	if err != nil {
		return nil, err
	}
	return stmtValue{&nql.Stmt{Kind: nql.STMT_BLOCK, Body: body}}, nil
}

func builtinCall(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noKwargs(fn.Name(), kwargs); err != nil {
		return nil, err
	}
	if len(args) < 1 {
		return nil, ErrBuiltin{Builtin: fn.Name(), Err: ErrNameValue}
	}
	name, err := nameArg(fn.Name(), args[0])
	if err != nil {
		return nil, err
	}
	regs := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		reg, rerr := nameArg(fn.Name(), arg)
		if rerr != nil {
			return nil, rerr
		}
		regs = append(regs, reg)
	}
	return stmtValue{&nql.Stmt{Kind: nql.STMT_CALL, Name: name, Args: regs}}, nil
}

func builtinReturn(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return stmtValue{&nql.Stmt{Kind: nql.STMT_RETURN}}, nil
}

func (ld *loader) builtinProc(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noKwargs(fn.Name(), kwargs); err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, ErrBuiltin{Builtin: fn.Name(), Err: ErrNameValue}
	}
	name, err := nameArg(fn.Name(), args[0])
	if err != nil {
		return nil, err
	}

	list, ok := args[1].(*starlark.List)
	if !ok {
		return nil, ErrBuiltin{Builtin: fn.Name(), Err: ErrNameValue}
	}
	params := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		param, perr := nameArg(fn.Name(), list.Index(i))
		if perr != nil {
			return nil, perr
		}
		params = append(params, param)
	}

	body, err := stmtArgs(fn.Name(), args[2:])
	if err != nil {
		return nil, err
	}

	if _, ok := ld.prog.Procs[name]; ok {
		return nil, ErrBuiltin{Builtin: fn.Name(), Err: ErrDuplicate}
	}
	ld.prog.Procs[name] = &nql.Proc{
		Name:   name,
		Params: params,
		Body:   &nql.Stmt{Kind: nql.STMT_BLOCK, Body: body},
	}
	ld.prog.Names = append(ld.prog.Names, name)
	return starlark.None, nil
}

func (ld *loader) builtinGlobal(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	if _, ok := ld.prog.Globals[name]; ok {
		return nil, ErrBuiltin{Builtin: fn.Name(), Err: ErrDuplicate}
	}
	ld.prog.Globals[name] = 0
	ld.prog.Names = append(ld.prog.Names, name)
	return starlark.None, nil
}

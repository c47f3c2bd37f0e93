package nql

// parser is a single-lookahead recursive descent parser.
type parser struct {
	lx  *lexer
	tok Token
}

// Parse parses NQL source text into a Program.
func Parse(src string) (prog *Program, err error) {
	p := &parser{lx: newLexer(src)}
	err = p.advance()
	if err != nil {
		return
	}

	prog = NewProgram()
	for p.tok.Kind != EOF {
		switch p.tok.Kind {
		case KW_GLOBAL:
			err = p.advance()
			if err != nil {
				return
			}
			var name Token
			name, err = p.expect(IDENT)
			if err != nil {
				return
			}
			_, err = p.expect(SEMI)
			if err != nil {
				return
			}
			prog.Globals[name.Text] = name.Line
			prog.Names = append(prog.Names, name.Text)

		case KW_PROC:
			var proc *Proc
			proc, err = p.procDef()
			if err != nil {
				return
			}
			prog.Procs[proc.Name] = proc
			prog.Names = append(prog.Names, proc.Name)

		default:
			err = ErrToken{Line: p.tok.Line, Got: p.tok.Text, Want: "proc or global"}
			return
		}
	}
	return
}

func (p *parser) advance() (err error) {
	p.tok, err = p.lx.next()
	return
}

func (p *parser) expect(kind Kind) (tok Token, err error) {
	if p.tok.Kind != kind {
		err = ErrToken{Line: p.tok.Line, Got: p.tok.Text, Want: kind.String()}
		return
	}
	tok = p.tok
	err = p.advance()
	return
}

func (p *parser) procDef() (proc *Proc, err error) {
	line := p.tok.Line
	err = p.advance()
	if err != nil {
		return
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return
	}
	params, err := p.identList()
	if err != nil {
		return
	}
	body, err := p.block()
	if err != nil {
		return
	}
	proc = &Proc{Name: name.Text, Params: params, Body: body, Line: line}
	return
}

// identList parses a parenthesized, comma-delimited and possibly
// empty list of identifiers.
func (p *parser) identList() (names []string, err error) {
	_, err = p.expect(LPAREN)
	if err != nil {
		return
	}
	names = []string{}
	for p.tok.Kind == IDENT {
		names = append(names, p.tok.Text)
		err = p.advance()
		if err != nil {
			return
		}
		if p.tok.Kind != COMMA {
			break
		}
		err = p.advance()
		if err != nil {
			return
		}
	}
	_, err = p.expect(RPAREN)
	return
}

func (p *parser) block() (blk *Stmt, err error) {
	open, err := p.expect(LBRACE)
	if err != nil {
		return
	}
	blk = &Stmt{Kind: STMT_BLOCK, Line: open.Line}
	for p.tok.Kind != RBRACE {
		var st *Stmt
		st, err = p.stmt()
		if err != nil {
			return
		}
		blk.Body = append(blk.Body, st)
	}
	err = p.advance()
	return
}

func (p *parser) stmt() (st *Stmt, err error) {
	line := p.tok.Line
	switch p.tok.Kind {
	case KW_WHILE, KW_IF:
		kind := STMT_WHILE
		if p.tok.Kind == KW_IF {
			kind = STMT_IF
		}
		err = p.advance()
		if err != nil {
			return
		}
		_, err = p.expect(LPAREN)
		if err != nil {
			return
		}
		var cond *BoolExpr
		cond, err = p.boolExpr()
		if err != nil {
			return
		}
		_, err = p.expect(RPAREN)
		if err != nil {
			return
		}
		var body *Stmt
		body, err = p.block()
		if err != nil {
			return
		}
		st = &Stmt{Kind: kind, Line: line, Cond: cond, Body: body.Body}
		return

	case KW_RETURN:
		err = p.advance()
		if err != nil {
			return
		}
		_, err = p.expect(SEMI)
		if err != nil {
			return
		}
		st = &Stmt{Kind: STMT_RETURN, Line: line}
		return

	case LBRACE:
		return p.block()

	case IDENT:
		name := p.tok
		err = p.advance()
		if err != nil {
			return
		}
		switch p.tok.Kind {
		case ASSIGN:
			err = p.advance()
			if err != nil {
				return
			}
			var value *NatExpr
			value, err = p.natExpr()
			if err != nil {
				return
			}
			_, err = p.expect(SEMI)
			if err != nil {
				return
			}
			st = &Stmt{Kind: STMT_ASSIGN, Line: line, Name: name.Text, Expr: value}
			return
		case LPAREN:
			var args []string
			args, err = p.identList()
			if err != nil {
				return
			}
			_, err = p.expect(SEMI)
			if err != nil {
				return
			}
			st = &Stmt{Kind: STMT_CALL, Line: line, Name: name.Text, Args: args}
			return
		}
		err = ErrToken{Line: p.tok.Line, Got: p.tok.Text, Want: "= or ("}
		return
	}

	err = ErrToken{Line: line, Got: p.tok.Text, Want: "statement"}
	return
}

// exprVal carries whichever expression class a subparse produced.
type exprVal struct {
	nat *NatExpr
	b   *BoolExpr
}

func (v exprVal) natOnly(line int) (*NatExpr, error) {
	if v.nat == nil {
		return nil, ErrSyntax{Line: line, Err: ErrNatExpected}
	}
	return v.nat, nil
}

func (v exprVal) boolOnly(line int) (*BoolExpr, error) {
	if v.b == nil {
		return nil, ErrSyntax{Line: line, Err: ErrBoolExpected}
	}
	return v.b, nil
}

// boolExpr parses a full expression that must be a test.
func (p *parser) boolExpr() (*BoolExpr, error) {
	line := p.tok.Line
	v, err := p.expr()
	if err != nil {
		return nil, err
	}
	return v.boolOnly(line)
}

// natExpr parses a full expression that must be a number.
func (p *parser) natExpr() (*NatExpr, error) {
	line := p.tok.Line
	v, err := p.expr()
	if err != nil {
		return nil, err
	}
	return v.natOnly(line)
}

// expr is the loosest level: zero or more "!" applied to an or
// expression.
func (p *parser) expr() (v exprVal, err error) {
	line := p.tok.Line
	nots := 0
	for p.tok.Kind == NOT {
		nots++
		err = p.advance()
		if err != nil {
			return
		}
	}

	v, err = p.orExpr()
	if err != nil {
		return
	}
	if nots > 0 {
		var inner *BoolExpr
		inner, err = v.boolOnly(line)
		if err != nil {
			return
		}
		for ; nots > 0; nots-- {
			inner = &BoolExpr{Kind: BOOL_NOT, Line: line, X: inner}
		}
		v = exprVal{b: inner}
	}
	return
}

func (p *parser) orExpr() (v exprVal, err error) {
	v, err = p.andExpr()
	if err != nil {
		return
	}
	for p.tok.Kind == OR {
		line := p.tok.Line
		err = p.advance()
		if err != nil {
			return
		}
		var lhs *BoolExpr
		lhs, err = v.boolOnly(line)
		if err != nil {
			return
		}
		var rhs exprVal
		rhs, err = p.andExpr()
		if err != nil {
			return
		}
		var right *BoolExpr
		right, err = rhs.boolOnly(line)
		if err != nil {
			return
		}
		v = exprVal{b: &BoolExpr{Kind: BOOL_OR, Line: line, X: lhs, Y: right}}
	}
	return
}

func (p *parser) andExpr() (v exprVal, err error) {
	v, err = p.relExpr()
	if err != nil {
		return
	}
	for p.tok.Kind == AND {
		line := p.tok.Line
		err = p.advance()
		if err != nil {
			return
		}
		var lhs *BoolExpr
		lhs, err = v.boolOnly(line)
		if err != nil {
			return
		}
		var rhs exprVal
		rhs, err = p.relExpr()
		if err != nil {
			return
		}
		var right *BoolExpr
		right, err = rhs.boolOnly(line)
		if err != nil {
			return
		}
		v = exprVal{b: &BoolExpr{Kind: BOOL_AND, Line: line, X: lhs, Y: right}}
	}
	return
}

var relOps = map[Kind]BoolKind{
	LT: BOOL_LESS,
	GT: BOOL_GREATER,
	LE: BOOL_LESS_EQUAL,
	GE: BOOL_GREATER_EQUAL,
	EQ: BOOL_EQUAL,
	NE: BOOL_NOT_EQUAL,
}

func (p *parser) relExpr() (v exprVal, err error) {
	v, err = p.addExpr()
	if err != nil {
		return
	}

	kind, ok := relOps[p.tok.Kind]
	if !ok {
		return
	}
	line := p.tok.Line
	err = p.advance()
	if err != nil {
		return
	}

	left, err := v.natOnly(line)
	if err != nil {
		return
	}
	rhs, err := p.addExpr()
	if err != nil {
		return
	}
	right, err := rhs.natOnly(line)
	if err != nil {
		return
	}

	if _, again := relOps[p.tok.Kind]; again {
		err = ErrSyntax{Line: p.tok.Line, Err: ErrNonAssociative}
		return
	}

	v = exprVal{b: &BoolExpr{Kind: kind, Line: line, Left: left, Right: right}}
	return
}

func (p *parser) addExpr() (v exprVal, err error) {
	v, err = p.mulExpr()
	if err != nil {
		return
	}
	for p.tok.Kind == PLUS || p.tok.Kind == MINUS {
		kind := NAT_ADD
		if p.tok.Kind == MINUS {
			kind = NAT_MONUS
		}
		line := p.tok.Line
		err = p.advance()
		if err != nil {
			return
		}
		var left *NatExpr
		left, err = v.natOnly(line)
		if err != nil {
			return
		}
		var rhs exprVal
		rhs, err = p.mulExpr()
		if err != nil {
			return
		}
		var right *NatExpr
		right, err = rhs.natOnly(line)
		if err != nil {
			return
		}
		v = exprVal{nat: &NatExpr{Kind: kind, Line: line, Left: left, Right: right}}
	}
	return
}

func (p *parser) mulExpr() (v exprVal, err error) {
	v, err = p.primary()
	if err != nil {
		return
	}
	for p.tok.Kind == STAR || p.tok.Kind == SLASH {
		kind := NAT_MUL
		if p.tok.Kind == SLASH {
			kind = NAT_DIV
		}
		line := p.tok.Line
		err = p.advance()
		if err != nil {
			return
		}
		var left *NatExpr
		left, err = v.natOnly(line)
		if err != nil {
			return
		}
		var rhs exprVal
		rhs, err = p.primary()
		if err != nil {
			return
		}
		var right *NatExpr
		right, err = rhs.natOnly(line)
		if err != nil {
			return
		}
		v = exprVal{nat: &NatExpr{Kind: kind, Line: line, Left: left, Right: right}}
	}
	return
}

func (p *parser) primary() (v exprVal, err error) {
	switch p.tok.Kind {
	case INTEGER:
		v = exprVal{nat: &NatExpr{Kind: NAT_LIT, Line: p.tok.Line, Value: p.tok.Value}}
		err = p.advance()
		return
	case IDENT:
		v = exprVal{nat: &NatExpr{Kind: NAT_REG, Line: p.tok.Line, Name: p.tok.Text}}
		err = p.advance()
		return
	case LPAREN:
		err = p.advance()
		if err != nil {
			return
		}
		v, err = p.expr()
		if err != nil {
			return
		}
		_, err = p.expect(RPAREN)
		return
	}
	err = ErrToken{Line: p.tok.Line, Got: p.tok.Text, Want: "expression"}
	return
}

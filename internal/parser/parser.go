// Package parser implements a recursive-descent parser for C‑‑, producing
// the tagged-variant AST of internal/parser/ast. Expressions below the
// assignment level use precedence climbing over the table in
// precedence.go.
//
// ERROR HANDLING STRATEGY: accumulate errors and recover at statement
// boundaries rather than stopping at the first mistake, the same
// "continue and accumulate" policy the rest of the pipeline uses.
package parser

import (
	"strconv"

	"github.com/hassan/cmm/internal/lexer"
	"github.com/hassan/cmm/internal/parser/ast"
)

// Parser converts a token stream into a Program.
type Parser struct {
	lexer     *lexer.Lexer
	current   lexer.Token
	previous  lexer.Token
	errors    []error
	panicMode bool
}

// New creates a parser over l and primes it with the first token.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}
	p.advance()
	return p
}

// ParseProgram parses a whole source file into a Program plus any errors
// found. Parsing never stops at the first error: it recovers at
// declaration and statement boundaries so later errors are still found.
func (p *Parser) ParseProgram() (*ast.Program, []error) {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		decl := p.parseTopDecl()
		if decl != nil {
			prog.Decls = append(prog.Decls, decl)
		}
	}
	return prog, p.errors
}

func (p *Parser) parseTopDecl() ast.Decl {
	if p.panicMode {
		p.synchronizeTop()
	}
	if p.check(lexer.TokenStruct) {
		return p.parseStructDecl()
	}
	typeExpr := p.parseTypeExpr()
	nameTok := p.expect(lexer.TokenIdentifier, "expected a name after type")
	if p.check(lexer.TokenLParen) {
		return p.parseFuncDecl(typeExpr, nameTok)
	}
	p.expect(lexer.TokenSemicolon, "expected ';' after variable declaration")
	return &ast.VarDecl{Type: typeExpr, Name: identFrom(nameTok)}
}

func (p *Parser) parseTypeExpr() ast.TypeExpr {
	switch p.current.Type {
	case lexer.TokenInt:
		pos := p.current.Position
		p.advance()
		return &ast.IntTypeExpr{KeywordPos: pos}
	case lexer.TokenBool:
		pos := p.current.Position
		p.advance()
		return &ast.BoolTypeExpr{KeywordPos: pos}
	case lexer.TokenVoid:
		pos := p.current.Position
		p.advance()
		return &ast.VoidTypeExpr{KeywordPos: pos}
	case lexer.TokenStruct:
		pos := p.current.Position
		p.advance()
		tagTok := p.expect(lexer.TokenIdentifier, "expected a struct tag after 'struct'")
		return &ast.StructTypeExpr{KeywordPos: pos, Tag: identFrom(tagTok)}
	default:
		p.error(p.current.Position, "expected a type")
		pos := p.current.Position
		p.advance()
		return &ast.IntTypeExpr{KeywordPos: pos}
	}
}

func (p *Parser) parseFuncDecl(retType ast.TypeExpr, nameTok lexer.Token) *ast.FuncDecl {
	fn := &ast.FuncDecl{FuncPos: retType.Pos(), ReturnType: retType, Name: identFrom(nameTok)}
	p.expect(lexer.TokenLParen, "expected '(' after function name")
	fn.Formals = p.parseFormals()
	p.expect(lexer.TokenRParen, "expected ')' after parameters")
	p.expect(lexer.TokenLCurly, "expected '{' to start function body")

	for p.startsType() {
		fn.Locals = append(fn.Locals, p.parseLocalVarDecl())
	}
	for !p.check(lexer.TokenRCurly) && !p.isAtEnd() {
		if stmt := p.parseStmt(); stmt != nil {
			fn.Body = append(fn.Body, stmt)
		}
	}
	p.expect(lexer.TokenRCurly, "expected '}' to close function body")
	return fn
}

func (p *Parser) parseLocalVarDecl() *ast.VarDecl {
	typeExpr := p.parseTypeExpr()
	nameTok := p.expect(lexer.TokenIdentifier, "expected a variable name")
	p.expect(lexer.TokenSemicolon, "expected ';' after local variable declaration")
	return &ast.VarDecl{Type: typeExpr, Name: identFrom(nameTok)}
}

func (p *Parser) parseFormals() []*ast.FormalDecl {
	var formals []*ast.FormalDecl
	if p.check(lexer.TokenRParen) {
		return formals
	}
	for {
		typeExpr := p.parseTypeExpr()
		nameTok := p.expect(lexer.TokenIdentifier, "expected a parameter name")
		formals = append(formals, &ast.FormalDecl{Type: typeExpr, Name: identFrom(nameTok)})
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	return formals
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.current.Position
	p.expect(lexer.TokenStruct, "expected 'struct'")
	nameTok := p.expect(lexer.TokenIdentifier, "expected a struct tag")
	p.expect(lexer.TokenLCurly, "expected '{' to start struct body")
	decl := &ast.StructDecl{StructPos: pos, Name: identFrom(nameTok)}
	for !p.check(lexer.TokenRCurly) && !p.isAtEnd() {
		fieldType := p.parseTypeExpr()
		fieldTok := p.expect(lexer.TokenIdentifier, "expected a field name")
		p.expect(lexer.TokenSemicolon, "expected ';' after field declaration")
		decl.Fields = append(decl.Fields, &ast.VarDecl{Type: fieldType, Name: identFrom(fieldTok)})
	}
	p.expect(lexer.TokenRCurly, "expected '}' to close struct body")
	p.expect(lexer.TokenSemicolon, "expected ';' after struct declaration")
	return decl
}

// startsType reports whether the current token can begin a type
// expression, used to decide when a function body's local-declaration
// prefix has ended.
func (p *Parser) startsType() bool {
	switch p.current.Type {
	case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenStruct:
		return true
	default:
		return false
	}
}

func (p *Parser) parseStmt() ast.Stmt {
	if p.panicMode {
		p.synchronizeStmt()
	}
	switch p.current.Type {
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenRepeat:
		return p.parseRepeat()
	case lexer.TokenCin:
		return p.parseRead()
	case lexer.TokenCout:
		return p.parseWrite()
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenIdentifier:
		return p.parseIdentifierStmt()
	default:
		p.error(p.current.Position, "expected a statement")
		p.advance()
		return nil
	}
}

func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(lexer.TokenLCurly, "expected '{'")
	var stmts []ast.Stmt
	for !p.check(lexer.TokenRCurly) && !p.isAtEnd() {
		if stmt := p.parseStmt(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(lexer.TokenRCurly, "expected '}'")
	return stmts
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.current.Position
	p.advance()
	p.expect(lexer.TokenLParen, "expected '(' after 'if'")
	cond := p.parseExpr()
	p.expect(lexer.TokenRParen, "expected ')' after if condition")
	then := p.parseBlock()
	if p.match(lexer.TokenElse) {
		els := p.parseBlock()
		return &ast.IfElseStmt{IfPos: pos, Cond: cond, Then: then, Else: els}
	}
	return &ast.IfStmt{IfPos: pos, Cond: cond, Then: then}
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.current.Position
	p.advance()
	p.expect(lexer.TokenLParen, "expected '(' after 'while'")
	cond := p.parseExpr()
	p.expect(lexer.TokenRParen, "expected ')' after while condition")
	body := p.parseBlock()
	return &ast.WhileStmt{WhilePos: pos, Cond: cond, Body: body}
}

func (p *Parser) parseRepeat() ast.Stmt {
	pos := p.current.Position
	p.advance()
	p.expect(lexer.TokenLParen, "expected '(' after 'repeat'")
	cond := p.parseExpr()
	p.expect(lexer.TokenRParen, "expected ')' after repeat clause")
	body := p.parseBlock()
	return &ast.RepeatStmt{RepeatPos: pos, Cond: cond, Body: body}
}

func (p *Parser) parseRead() ast.Stmt {
	pos := p.current.Position
	p.advance()
	p.expect(lexer.TokenRead, "expected '>>' after 'cin'")
	target := p.parseLValue()
	p.expect(lexer.TokenSemicolon, "expected ';' after read statement")
	return &ast.ReadStmt{CinPos: pos, Target: target}
}

func (p *Parser) parseWrite() ast.Stmt {
	pos := p.current.Position
	p.advance()
	p.expect(lexer.TokenWrite, "expected '<<' after 'cout'")
	value := p.parseExpr()
	p.expect(lexer.TokenSemicolon, "expected ';' after write statement")
	return &ast.WriteStmt{CoutPos: pos, Value: value}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.current.Position
	p.advance()
	if p.match(lexer.TokenSemicolon) {
		return &ast.ReturnStmt{ReturnPos: pos}
	}
	val := p.parseExpr()
	p.expect(lexer.TokenSemicolon, "expected ';' after return value")
	return &ast.ReturnStmt{ReturnPos: pos, Value: val}
}

// parseIdentifierStmt handles the three statement forms that start with an
// identifier: a call, an assignment (possibly through a dot-access chain),
// or a post-increment/decrement.
func (p *Parser) parseIdentifierStmt() ast.Stmt {
	idTok := p.current
	p.advance()
	ident := identFrom(idTok)

	if p.check(lexer.TokenLParen) {
		call := p.parseCallTail(ident)
		semi := p.current.Position
		p.expect(lexer.TokenSemicolon, "expected ';' after call")
		return &ast.CallStmt{Call: call, Semi: semi}
	}

	var target ast.Expr = ident
	for p.check(lexer.TokenDot) {
		target = p.parseDotTail(target)
	}

	switch p.current.Type {
	case lexer.TokenAssign:
		p.advance()
		rhs := p.parseExpr()
		p.expect(lexer.TokenSemicolon, "expected ';' after assignment")
		return &ast.AssignStmt{Assign: &ast.AssignExpr{LHS: target, RHS: rhs}}
	case lexer.TokenPlusPlus:
		opPos := p.current.Position
		p.advance()
		p.expect(lexer.TokenSemicolon, "expected ';' after '++'")
		return &ast.PostIncStmt{Target: target, OpPos: opPos}
	case lexer.TokenMinusMinus:
		opPos := p.current.Position
		p.advance()
		p.expect(lexer.TokenSemicolon, "expected ';' after '--'")
		return &ast.PostDecStmt{Target: target, OpPos: opPos}
	default:
		p.error(p.current.Position, "expected '=', '++', '--', or a call after identifier")
		return nil
	}
}

// parseLValue parses an identifier or dot-access chain used as the target
// of a read or assignment.
func (p *Parser) parseLValue() ast.Expr {
	idTok := p.expect(lexer.TokenIdentifier, "expected a variable or field")
	var target ast.Expr = identFrom(idTok)
	for p.check(lexer.TokenDot) {
		target = p.parseDotTail(target)
	}
	return target
}

func (p *Parser) parseDotTail(left ast.Expr) ast.Expr {
	dotPos := p.current.Position
	p.advance()
	fieldTok := p.expect(lexer.TokenIdentifier, "expected a field name after '.'")
	return &ast.DotAccessExpr{Loc: left, DotPos: dotPos, Field: identFrom(fieldTok)}
}

func (p *Parser) parseCallTail(callee *ast.IdentExpr) *ast.CallExpr {
	lparen := p.current
	p.advance()
	call := &ast.CallExpr{Callee: callee, LParen: lparen}
	if !p.check(lexer.TokenRParen) {
		for {
			call.Args = append(call.Args, p.parseExpr())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	call.RParen = p.current
	p.expect(lexer.TokenRParen, "expected ')' after call arguments")
	return call
}

// Expression parsing: precedence climbing for the binary operators, with
// assignment handled separately since it is right-associative and can
// nest anywhere an expression can.

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseBinary(PrecOr)
	if p.check(lexer.TokenAssign) {
		p.advance()
		right := p.parseAssignment()
		return &ast.AssignExpr{LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseBinary(minPrec Precedence) ast.Expr {
	left := p.parseUnary()
	for {
		prec := getPrecedence(p.current.Type)
		if prec < minPrec || prec == PrecNone {
			break
		}
		op, ok := binOpFor(p.current.Type)
		if !ok {
			break
		}
		opPos := p.current.Position
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{Left: left, Op: op, OpPos: opPos, Right: right}
	}
	return left
}

func binOpFor(tt lexer.TokenType) (ast.BinaryOp, bool) {
	switch tt {
	case lexer.TokenPlus:
		return ast.BinPlus, true
	case lexer.TokenMinus:
		return ast.BinMinus, true
	case lexer.TokenTimes:
		return ast.BinTimes, true
	case lexer.TokenDivide:
		return ast.BinDivide, true
	case lexer.TokenAnd:
		return ast.BinAnd, true
	case lexer.TokenOr:
		return ast.BinOr, true
	case lexer.TokenEquals:
		return ast.BinEq, true
	case lexer.TokenNotEquals:
		return ast.BinNeq, true
	case lexer.TokenLess:
		return ast.BinLt, true
	case lexer.TokenGreater:
		return ast.BinGt, true
	case lexer.TokenLessEq:
		return ast.BinLe, true
	case lexer.TokenGreaterEq:
		return ast.BinGe, true
	default:
		return 0, false
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.current.Type {
	case lexer.TokenMinus:
		pos := p.current.Position
		p.advance()
		return &ast.UnaryExpr{OpPos: pos, Op: ast.UnaryMinus, Operand: p.parseUnary()}
	case lexer.TokenNot:
		pos := p.current.Position
		p.advance()
		return &ast.UnaryExpr{OpPos: pos, Op: ast.UnaryNot, Operand: p.parseUnary()}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.current.Type {
	case lexer.TokenIntLiteral:
		tok := p.current
		p.advance()
		value, _ := strconv.Atoi(tok.Lexeme)
		return &ast.IntLitExpr{LitPos: tok.Position, Value: value}
	case lexer.TokenStringLiteral:
		tok := p.current
		p.advance()
		return &ast.StringLitExpr{LitPos: tok.Position, Value: tok.Lexeme}
	case lexer.TokenTrue:
		tok := p.current
		p.advance()
		return &ast.TrueExpr{LitPos: tok.Position}
	case lexer.TokenFalse:
		tok := p.current
		p.advance()
		return &ast.FalseExpr{LitPos: tok.Position}
	case lexer.TokenLParen:
		p.advance()
		e := p.parseExpr()
		p.expect(lexer.TokenRParen, "expected ')' to close parenthesized expression")
		return e
	case lexer.TokenIdentifier:
		idTok := p.current
		p.advance()
		ident := identFrom(idTok)
		var result ast.Expr = ident
		if p.check(lexer.TokenLParen) {
			result = p.parseCallTail(ident)
		}
		for p.check(lexer.TokenDot) {
			result = p.parseDotTail(result)
		}
		return result
	default:
		p.error(p.current.Position, "expected an expression")
		pos := p.current.Position
		p.advance()
		return &ast.IntLitExpr{LitPos: pos, Value: 0}
	}
}

func identFrom(tok lexer.Token) *ast.IdentExpr {
	return &ast.IdentExpr{IdPos: tok.Position, Name: tok.Lexeme}
}

// Token-stream plumbing.

func (p *Parser) advance() {
	p.previous = p.current
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			p.errors = append(p.errors, err)
			if tok.Type == lexer.TokenInvalid {
				continue
			}
		}
		p.current = tok
		return
	}
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current.Type == tt
}

func (p *Parser) match(tt lexer.TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(tt lexer.TokenType, message string) lexer.Token {
	if p.check(tt) {
		tok := p.current
		p.advance()
		return tok
	}
	p.error(p.current.Position, message)
	return p.current
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

func (p *Parser) error(pos lexer.Position, message string) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: message})
	p.panicMode = true
}

// synchronizeStmt skips tokens until a likely statement boundary, so one
// malformed statement doesn't cascade into spurious errors for the rest of
// the function body.
func (p *Parser) synchronizeStmt() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon {
			return
		}
		switch p.current.Type {
		case lexer.TokenIf, lexer.TokenWhile, lexer.TokenRepeat, lexer.TokenCin,
			lexer.TokenCout, lexer.TokenReturn, lexer.TokenRCurly:
			return
		}
		p.advance()
	}
}

// synchronizeTop skips tokens until a likely top-level declaration
// boundary.
func (p *Parser) synchronizeTop() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon || p.previous.Type == lexer.TokenRCurly {
			return
		}
		switch p.current.Type {
		case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenStruct:
			return
		}
		p.advance()
	}
}

// ParseError is a parse-time diagnostic.
type ParseError struct {
	Pos     lexer.Position
	Message string
}

func (e *ParseError) Error() string {
	return e.Pos.String() + ": " + e.Message
}

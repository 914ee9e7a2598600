package narsese

import (
	"strconv"
	"strings"

	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

// DefaultBeliefTruth and DefaultGoalTruth are the implied truth values
// when a belief or goal line omits an explicit %f;c% (spec §6).
var (
	DefaultBeliefTruth, _ = truth.New(1.0, 0.9)
	DefaultGoalTruth, _   = truth.New(1.0, 0.9)
)

// Parser parses Narsese surface syntax into task builders, interning
// every term through in.
type Parser struct {
	in *term.Interner
}

// New builds a parser over the given interner. Pass term.Default to
// share the process-wide canonical term table.
func New(in *term.Interner) *Parser {
	return &Parser{in: in}
}

// Parse is the package-level convenience the kernel's input operation
// uses (spec §6 "input(narsese)"): parse a single line against the
// default interner.
func Parse(lineNo int, id, line string) (*task.Builder, error) {
	return New(term.Default).ParseLine(lineNo, id, line)
}

type parseState struct {
	toks []token
	pos  int
	line int
}

func (p *parseState) peek() token  { return p.toks[p.pos] }
func (p *parseState) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parseState) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, &ParseError{Line: p.line, Col: t.col, Reason: "expected " + what + ", got " + t.text}
	}
	return p.advance(), nil
}

// ParseLine parses a single Narsese input line into a task builder. id
// is the caller-assigned identifier seeded into the resulting builder.
func (p *Parser) ParseLine(lineNo int, id, line string) (*task.Builder, error) {
	trimmed := strings.TrimSpace(trimLine(line))
	if trimmed == "" {
		return nil, &ParseError{Line: lineNo, Col: 1, Reason: "empty line"}
	}

	lx := newLexer(lineNo, trimmed)
	toks, err := lx.tokenize()
	if err != nil {
		return nil, err
	}

	ps := &parseState{toks: toks, line: lineNo}
	t, err := p.parseTerm(ps)
	if err != nil {
		return nil, err
	}

	punctTok := ps.peek()
	var punct task.Punctuation
	switch punctTok.kind {
	case tokPunctBelief:
		punct = task.Belief
	case tokPunctQuestion:
		punct = task.Question
	case tokPunctGoal:
		punct = task.Goal
	default:
		return nil, &ParseError{Line: lineNo, Col: punctTok.col, Reason: "expected punctuation . ? !"}
	}
	ps.advance()

	b := task.New(id).Term(t).Punctuation(punct)

	if ps.peek().kind == tokPercent {
		tr, err := p.parseTruth(ps)
		if err != nil {
			return nil, err
		}
		b = b.Truth(tr)
	} else if punct == task.Belief {
		b = b.Truth(DefaultBeliefTruth)
	} else if punct == task.Goal {
		b = b.Truth(DefaultGoalTruth)
	}

	if ps.peek().kind != tokEOF {
		t := ps.peek()
		return nil, &ParseError{Line: lineNo, Col: t.col, Reason: "unexpected trailing input: " + t.text}
	}

	return b, nil
}

// parseTruth consumes the %f;c% suffix: percent, a frequency number,
// a semicolon, a confidence number, and a closing percent.
func (p *Parser) parseTruth(ps *parseState) (truth.Truth, error) {
	if _, err := ps.expect(tokPercent, "%"); err != nil {
		return truth.Truth{}, err
	}
	freqTok, err := ps.expect(tokNumber, "frequency")
	if err != nil {
		return truth.Truth{}, err
	}
	f, ferr := strconv.ParseFloat(freqTok.text, 64)
	if ferr != nil {
		return truth.Truth{}, &ParseError{Line: ps.line, Col: freqTok.col, Reason: "invalid frequency: " + freqTok.text}
	}
	if _, err := ps.expect(tokSemicolon, ";"); err != nil {
		return truth.Truth{}, err
	}
	confTok, err := ps.expect(tokNumber, "confidence")
	if err != nil {
		return truth.Truth{}, err
	}
	c, cerr := strconv.ParseFloat(confTok.text, 64)
	if cerr != nil {
		return truth.Truth{}, &ParseError{Line: ps.line, Col: confTok.col, Reason: "invalid confidence: " + confTok.text}
	}
	if _, err := ps.expect(tokPercent, "%"); err != nil {
		return truth.Truth{}, err
	}
	tr, ok := truth.New(f, c)
	if !ok {
		return truth.Truth{}, &ParseError{Line: ps.line, Col: freqTok.col, Reason: "frequency/confidence out of [0,1]"}
	}
	return tr, nil
}

func (p *Parser) parseTerm(ps *parseState) (*term.Term, error) {
	tok := ps.peek()
	switch tok.kind {
	case tokLAngle:
		return p.parseAngle(ps)
	case tokLParen:
		return p.parseParen(ps)
	case tokIdent:
		ps.advance()
		return p.in.Atom(tok.text), nil
	case tokVarIndep:
		ps.advance()
		return p.in.Variable(term.VarIndependent, tok.text), nil
	case tokVarDep:
		ps.advance()
		return p.in.Variable(term.VarDependent, tok.text), nil
	case tokVarQuery:
		ps.advance()
		return p.in.Variable(term.VarQuery, tok.text), nil
	default:
		return nil, &ParseError{Line: ps.line, Col: tok.col, Reason: "expected a term, got " + tok.text}
	}
}

func (p *Parser) parseAngle(ps *parseState) (*term.Term, error) {
	if _, err := ps.expect(tokLAngle, "<"); err != nil {
		return nil, err
	}
	left, err := p.parseTerm(ps)
	if err != nil {
		return nil, err
	}
	opTok := ps.peek()
	op, ok := angleOperator(opTok.text)
	if !ok {
		return nil, &ParseError{Line: ps.line, Col: opTok.col, Reason: "expected a binary connective, got " + opTok.text}
	}
	ps.advance()
	right, err := p.parseTerm(ps)
	if err != nil {
		return nil, err
	}
	if _, err := ps.expect(tokRAngle, ">"); err != nil {
		return nil, err
	}
	t, cerr := p.in.Compound(op, []*term.Term{left, right})
	if cerr != nil {
		return nil, &ParseError{Line: ps.line, Col: opTok.col, Reason: cerr.Error()}
	}
	return t, nil
}

func (p *Parser) parseParen(ps *parseState) (*term.Term, error) {
	if _, err := ps.expect(tokLParen, "("); err != nil {
		return nil, err
	}

	// Prefix forms: (--, S) and (*, a, b, ...).
	if ps.peek().kind == tokOp && (ps.peek().text == "--" || ps.peek().text == "*") {
		opText := ps.advance().text
		if _, err := ps.expect(tokComma, ","); err != nil {
			return nil, err
		}
		var comps []*term.Term
		for {
			c, err := p.parseTerm(ps)
			if err != nil {
				return nil, err
			}
			comps = append(comps, c)
			if ps.peek().kind == tokComma {
				ps.advance()
				continue
			}
			break
		}
		if _, err := ps.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		var op term.Operator
		if opText == "--" {
			op = term.OpNegation
		} else {
			op = term.OpProduct
		}
		t, cerr := p.in.Compound(op, comps)
		if cerr != nil {
			return nil, &ParseError{Line: ps.line, Col: ps.peek().col, Reason: cerr.Error()}
		}
		return t, nil
	}

	// Infix forms: (S & T), (S | T), (S <~> T), and the implication and
	// equivalence operators ==>, <=>, =/>, =|>, =\> (see parenOperator).
	left, err := p.parseTerm(ps)
	if err != nil {
		return nil, err
	}
	opTok := ps.peek()
	op, ok := parenOperator(opTok.text)
	if !ok {
		return nil, &ParseError{Line: ps.line, Col: opTok.col, Reason: "expected an infix operator (& | <~> ==> <=> =/> =|> =\\>) inside parentheses, got " + opTok.text}
	}
	ps.advance()
	right, err := p.parseTerm(ps)
	if err != nil {
		return nil, err
	}
	if _, err := ps.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	t, cerr := p.in.Compound(op, []*term.Term{left, right})
	if cerr != nil {
		return nil, &ParseError{Line: ps.line, Col: opTok.col, Reason: cerr.Error()}
	}
	return t, nil
}

func angleOperator(s string) (term.Operator, bool) {
	switch s {
	case "-->":
		return term.OpInheritance, true
	case "<->":
		return term.OpSimilarity, true
	case "==>":
		return term.OpImplication, true
	case "<=>":
		return term.OpEquivalence, true
	case "=/>":
		return term.OpTemporalPredictive, true
	case "=|>":
		return term.OpTemporalConcurrent, true
	case `=\>`:
		return term.OpTemporalRetrospective, true
	default:
		return term.OpNone, false
	}
}

func parenOperator(s string) (term.Operator, bool) {
	switch s {
	case "&":
		return term.OpConjunction, true
	case "|":
		return term.OpDisjunction, true
	case "<~>":
		return term.OpDifference, true
	case "==>":
		return term.OpImplication, true
	case "<=>":
		return term.OpEquivalence, true
	case "=/>":
		return term.OpTemporalPredictive, true
	case "=|>":
		return term.OpTemporalConcurrent, true
	case `=\>`:
		return term.OpTemporalRetrospective, true
	default:
		return term.OpNone, false
	}
}

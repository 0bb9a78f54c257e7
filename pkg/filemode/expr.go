// SPDX-License-Identifier: MPL-2.0

package filemode

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	// WhoUser selects the owner class.
	WhoUser Who = 1 << iota
	// WhoGroup selects the group class.
	WhoGroup
	// WhoOther selects everyone else.
	WhoOther

	// WhoAll is what "a" and an empty who-list expand to.
	WhoAll = WhoUser | WhoGroup | WhoOther
)

const (
	// OpAdd is "+".
	OpAdd Op = '+'
	// OpRemove is "-".
	OpRemove Op = '-'
	// OpAssign is "=".
	OpAssign Op = '='
)

const (
	// PermRead is "r".
	PermRead Perm = 1 << iota
	// PermWrite is "w".
	PermWrite
	// PermExecute is "x".
	PermExecute
	// PermSetID is "s": setuid for the user class, setgid for the group class.
	PermSetID
	// PermSticky is "t": only meaningful for the other class.
	PermSticky
)

var octalPattern = regexp.MustCompile(`^0?[0-7]+$`)

type (
	// Who is a set of permission classes.
	Who uint8

	// Op is the operator of a symbolic clause.
	Op byte

	// Perm is a set of permission letters.
	Perm uint8

	// Clause is one comma-separated segment of a symbolic expression.
	Clause struct {
		Who   Who
		Op    Op
		Perms Perm
	}

	// Expr is a parsed mode expression, either octal or symbolic.
	// The zero value is not useful; build one with Parse.
	Expr struct {
		spec    string
		octal   bool
		value   Mode
		clauses []Clause
	}
)

// Has reports whether every class in o is also in w.
func (w Who) Has(o Who) bool { return w&o == o }

// String renders w the way it is written in a clause ("ugo" for all).
func (w Who) String() string {
	var sb strings.Builder
	if w.Has(WhoUser) {
		sb.WriteByte('u')
	}
	if w.Has(WhoGroup) {
		sb.WriteByte('g')
	}
	if w.Has(WhoOther) {
		sb.WriteByte('o')
	}
	return sb.String()
}

// String renders p as permission letters in rwxst order.
func (p Perm) String() string {
	var sb strings.Builder
	for _, l := range []struct {
		bit    Perm
		letter byte
	}{{PermRead, 'r'}, {PermWrite, 'w'}, {PermExecute, 'x'}, {PermSetID, 's'}, {PermSticky, 't'}} {
		if p&l.bit != 0 {
			sb.WriteByte(l.letter)
		}
	}
	return sb.String()
}

// String renders c in canonical form, e.g. "ug+rx".
func (c Clause) String() string {
	return c.Who.String() + string(c.Op) + c.Perms.String()
}

// Bits returns the mode bits c's permission letters address for c's classes.
// Set-ID bits are only produced for user and group; the sticky bit only
// for other.
func (c Clause) Bits() Mode {
	var m Mode
	for _, class := range []struct {
		who   Who
		shift uint
	}{{WhoUser, 6}, {WhoGroup, 3}, {WhoOther, 0}} {
		if !c.Who.Has(class.who) {
			continue
		}
		if c.Perms&PermRead != 0 {
			m |= 0o4 << class.shift
		}
		if c.Perms&PermWrite != 0 {
			m |= 0o2 << class.shift
		}
		if c.Perms&PermExecute != 0 {
			m |= 0o1 << class.shift
		}
	}
	if c.Perms&PermSetID != 0 {
		if c.Who.Has(WhoUser) {
			m |= ModeSetuid
		}
		if c.Who.Has(WhoGroup) {
			m |= ModeSetgid
		}
	}
	if c.Perms&PermSticky != 0 && c.Who.Has(WhoOther) {
		m |= ModeSticky
	}
	return m
}

// Apply returns cur with c applied.
func (c Clause) Apply(cur Mode) Mode {
	bits := c.Bits()
	switch c.Op {
	case OpAdd:
		cur |= bits
	case OpRemove:
		cur &^= bits
	case OpAssign:
		// Only the rwx triads of the named classes are reset; special bits
		// change only when s or t is spelled out.
		var reset Mode
		if c.Who.Has(WhoUser) {
			reset |= 0o700
		}
		if c.Who.Has(WhoGroup) {
			reset |= 0o070
		}
		if c.Who.Has(WhoOther) {
			reset |= 0o007
		}
		cur = cur&^reset | bits
	}
	return cur & ModeMask
}

// Compile translates spec into a concrete mode. Octal specs are returned as
// written; symbolic specs are applied to Baseline.
func Compile(spec string) (Mode, error) {
	e, err := Parse(spec)
	if err != nil {
		return 0, err
	}
	return e.Apply(Baseline), nil
}

// Octal returns the absolute expression that sets exactly m, as if m had
// been written in octal. Bits outside ModeMask are dropped.
func Octal(m Mode) *Expr {
	m &= ModeMask
	return &Expr{spec: m.String(), octal: true, value: m}
}

// Parse classifies spec as octal or symbolic and parses it. The returned
// error is always a *ParseError.
func Parse(spec string) (*Expr, error) {
	if octalPattern.MatchString(spec) {
		v, err := strconv.ParseUint(spec, 8, 32)
		if err != nil || Mode(v)&^ModeMask != 0 {
			return nil, &ParseError{Spec: spec, Reason: "octal value out of range"}
		}
		return &Expr{spec: spec, octal: true, value: Mode(v)}, nil
	}

	if spec == "" {
		return nil, &ParseError{Spec: spec, Reason: "empty mode"}
	}

	var clauses []Clause
	offset := 0
	for _, raw := range strings.Split(spec, ",") {
		c, err := parseClause(spec, raw, offset)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
		offset += len(raw) + 1
	}

	return &Expr{spec: spec, clauses: clauses}, nil
}

// parseClause parses one segment of spec. offset is where raw starts in
// spec and is only used for error reporting.
func parseClause(spec, raw string, offset int) (Clause, error) {
	lead := len(raw) - len(strings.TrimLeft(raw, " \t"))
	text := strings.TrimSpace(raw)
	offset += lead
	if text == "" {
		return Clause{}, &ParseError{Spec: spec, Offset: offset, Reason: "empty clause"}
	}

	var c Clause
	i := 0
scanWho:
	for ; i < len(text); i++ {
		switch text[i] {
		case 'u':
			c.Who |= WhoUser
		case 'g':
			c.Who |= WhoGroup
		case 'o':
			c.Who |= WhoOther
		case 'a':
			c.Who |= WhoAll
		default:
			break scanWho
		}
	}
	if c.Who == 0 {
		c.Who = WhoAll
	}

	if i >= len(text) {
		return Clause{}, &ParseError{Spec: spec, Offset: offset + i, Reason: "missing operator"}
	}
	switch op := Op(text[i]); op {
	case OpAdd, OpRemove, OpAssign:
		c.Op = op
	default:
		return Clause{}, &ParseError{Spec: spec, Offset: offset + i, Reason: "invalid operator " + strconv.QuoteRune(rune(op))}
	}
	i++

	// "o=" clears a class; "+" and "-" need something to add or remove.
	if i >= len(text) && c.Op != OpAssign {
		return Clause{}, &ParseError{Spec: spec, Offset: offset + i, Reason: "missing permissions"}
	}
	for ; i < len(text); i++ {
		switch text[i] {
		case 'r':
			c.Perms |= PermRead
		case 'w':
			c.Perms |= PermWrite
		case 'x':
			c.Perms |= PermExecute
		case 's':
			c.Perms |= PermSetID
		case 't':
			c.Perms |= PermSticky
		default:
			return Clause{}, &ParseError{Spec: spec, Offset: offset + i, Reason: "invalid permission " + strconv.QuoteRune(rune(text[i]))}
		}
	}

	return c, nil
}

// IsOctal reports whether e was written as an octal number.
func (e *Expr) IsOctal() bool { return e.octal }

// Clauses returns a copy of the symbolic clauses (nil for octal expressions).
func (e *Expr) Clauses() []Clause { return slices.Clone(e.clauses) }

// String returns the expression as it was written.
func (e *Expr) String() string { return e.spec }

// Apply evaluates e against base. Octal expressions ignore base.
func (e *Expr) Apply(base Mode) Mode {
	if e.octal {
		return e.value
	}
	cur := base & ModeMask
	for _, c := range e.clauses {
		cur = c.Apply(cur)
	}
	return cur
}

package finance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// This file implements the text format used to persist a ledger.
//
// It is made of three sections, each one introduced by its count:
//
//	<N>
//	<I|E> <amount> <description> <day> <month> <year> <category>   (N lines)
//	<M>
//	<SIP|FD> <amount> <years> <day> <month> <year> [<monthly>]     (M lines)
//	<K>
//	<PAY|INV> <amount> <description> <day> <month> <year>          (K lines)
//
// Descriptions are written as Go quoted strings. A description made of a single
// unquoted token is also accepted on read. The obligations section is optional.

const (
	tagIncome      = "I"
	tagExpenditure = "E"
	tagSIP         = "SIP"
	tagFD          = "FD"
	tagPayment     = "PAY"
	tagInvestment  = "INV"
)

// Encode writes s to w in the text format.
func Encode(w io.Writer, s State) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(s.Records))
	for _, r := range s.Records {
		if err := encodeRecord(bw, r); err != nil {
			return err
		}
	}
	fmt.Fprintln(bw, len(s.Investments))
	for _, inv := range s.Investments {
		if err := encodeInvestment(bw, inv); err != nil {
			return err
		}
	}
	fmt.Fprintln(bw, len(s.Obligations))
	for _, o := range s.Obligations {
		tag := tagPayment
		if o.Investment {
			tag = tagInvestment
		}
		fmt.Fprintf(bw, "%s %s %s %s\n", tag, o.Amount, strconv.Quote(o.Description), encodeDate(o.Due))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("cannot write ledger: %w", err)
	}
	return nil
}

func encodeDate(d Date) string { return fmt.Sprintf("%d %d %d", d.Day(), d.Month(), d.Year()) }

func encodeRecord(w io.Writer, r Record) error {
	var tag string
	switch r.(type) {
	case Income:
		tag = tagIncome
	case Expenditure:
		tag = tagExpenditure
	default:
		return fmt.Errorf("unsupported record type %T", r)
	}
	_, err := fmt.Fprintf(w, "%s %s %s %s %s\n", tag, r.Value(), strconv.Quote(r.Memo()), encodeDate(r.When()), r.Group())
	return err
}

func encodeInvestment(w io.Writer, inv Investment) error {
	var err error
	switch v := inv.(type) {
	case SIP:
		_, err = fmt.Fprintf(w, "%s %s %d %s %s\n", tagSIP, v.Principal, v.Duration, encodeDate(v.StartDate), v.Monthly)
	case FD:
		_, err = fmt.Fprintf(w, "%s %s %d %s\n", tagFD, v.Principal, v.Duration, encodeDate(v.StartDate))
	default:
		return fmt.Errorf("unsupported investment type %T", inv)
	}
	return err
}

// Decode reads a State from r in the text format.
//
// Any problem in the content is reported as an error wrapping ErrMalformed with
// the line number.
func Decode(r io.Reader) (State, error) {
	d := decoder{r: bufio.NewReader(r)}
	var s State

	n, err := d.count("records")
	if err != nil {
		return State{}, err
	}
	for range n {
		rec, err := d.record()
		if err != nil {
			return State{}, err
		}
		s.Records = append(s.Records, rec)
	}

	m, err := d.count("investments")
	if err != nil {
		return State{}, err
	}
	for range m {
		inv, err := d.investment()
		if err != nil {
			return State{}, err
		}
		s.Investments = append(s.Investments, inv)
	}

	// Files written before obligations were persisted stop here.
	if _, err := d.peek(); errors.Is(err, io.EOF) {
		return s, nil
	} else if err != nil {
		return State{}, err
	}
	k, err := d.count("obligations")
	if err != nil {
		return State{}, err
	}
	for range k {
		o, err := d.obligation()
		if err != nil {
			return State{}, err
		}
		s.Obligations = append(s.Obligations, o)
	}

	if tokens, err := d.peek(); err == nil {
		return State{}, d.errorf("unexpected content %q after the last section", strings.Join(tokens, " "))
	} else if !errors.Is(err, io.EOF) {
		return State{}, err
	}
	return s, nil
}

// decoder reads non blank lines as lists of tokens, keeping track of line numbers.
type decoder struct {
	r      *bufio.Reader
	line   int
	peeked []string
}

func (d *decoder) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, d.line, fmt.Sprintf(format, args...))
}

// peek returns the tokens of the next non blank line without consuming it, or io.EOF.
func (d *decoder) peek() ([]string, error) {
	if d.peeked != nil {
		return d.peeked, nil
	}
	for {
		txt, err := d.r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("cannot read ledger: %w", err)
		}
		if txt == "" && err != nil {
			break
		}
		d.line++
		txt = strings.TrimSpace(txt)
		if txt == "" {
			continue
		}
		tokens, terr := tokenize(txt)
		if terr != nil {
			return nil, d.errorf("%v", terr)
		}
		d.peeked = tokens
		return tokens, nil
	}
	return nil, io.EOF
}

// next consumes the next non blank line. want is the expected number of tokens.
func (d *decoder) next(what string, want ...int) ([]string, error) {
	tokens, err := d.peek()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: line %d: missing %s", ErrMalformed, d.line+1, what)
	}
	if err != nil {
		return nil, err
	}
	d.peeked = nil
	for _, n := range want {
		if len(tokens) == n {
			return tokens, nil
		}
	}
	return nil, d.errorf("%s: got %d fields want %v", what, len(tokens), want)
}

func (d *decoder) count(what string) (int, error) {
	tokens, err := d.next(what+" count", 1)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tokens[0])
	if err != nil || n < 0 {
		return 0, d.errorf("invalid %s count %q", what, tokens[0])
	}
	return n, nil
}

func (d *decoder) amount(s string) (decimal.Decimal, error) {
	a, err := decimal.NewFromString(s)
	if err != nil {
		return a, d.errorf("invalid amount %q", s)
	}
	if !a.IsPositive() {
		return a, d.errorf("%v: got %s", ErrInvalidAmount, s)
	}
	return a, nil
}

// date parses the three tokens day month year.
func (d *decoder) date(tokens []string) (Date, error) {
	var v [3]int
	for i, t := range tokens[:3] {
		n, err := strconv.Atoi(t)
		if err != nil {
			return Date{}, d.errorf("invalid date %q", strings.Join(tokens[:3], " "))
		}
		v[i] = n
	}
	return NewDate(v[2], time.Month(v[1]), v[0]), nil
}

func (d *decoder) record() (Record, error) {
	tokens, err := d.next("record", 7)
	if err != nil {
		return nil, err
	}
	amount, err := d.amount(tokens[1])
	if err != nil {
		return nil, err
	}
	on, err := d.date(tokens[3:6])
	if err != nil {
		return nil, err
	}
	e := entry{Amount: amount, Description: tokens[2], Date: on, Category: CategoryFromString(tokens[6])}
	switch tokens[0] {
	case tagIncome:
		return Income{e}, nil
	case tagExpenditure:
		return NewExpenditure(e.Date, e.Amount, e.Description, e.Category), nil
	default:
		return nil, d.errorf("unknown record type %q", tokens[0])
	}
}

func (d *decoder) investment() (Investment, error) {
	tokens, err := d.next("investment", 6, 7)
	if err != nil {
		return nil, err
	}
	principal, err := d.amount(tokens[1])
	if err != nil {
		return nil, err
	}
	years, err := strconv.Atoi(tokens[2])
	if err != nil || years <= 0 {
		return nil, d.errorf("%v: got %q", ErrInvalidDuration, tokens[2])
	}
	on, err := d.date(tokens[3:6])
	if err != nil {
		return nil, err
	}
	switch {
	case tokens[0] == tagSIP && len(tokens) == 7:
		monthly, err := d.amount(tokens[6])
		if err != nil {
			return nil, err
		}
		return NewSIP(on, principal, years, monthly), nil
	case tokens[0] == tagFD && len(tokens) == 6:
		return NewFD(on, principal, years), nil
	case tokens[0] == tagSIP || tokens[0] == tagFD:
		return nil, d.errorf("%s investment: unexpected number of fields %d", tokens[0], len(tokens))
	default:
		return nil, d.errorf("unknown investment type %q", tokens[0])
	}
}

func (d *decoder) obligation() (Obligation, error) {
	tokens, err := d.next("obligation", 6)
	if err != nil {
		return Obligation{}, err
	}
	amount, err := d.amount(tokens[1])
	if err != nil {
		return Obligation{}, err
	}
	due, err := d.date(tokens[3:6])
	if err != nil {
		return Obligation{}, err
	}
	o := Obligation{Due: due, Description: tokens[2], Amount: amount}
	switch tokens[0] {
	case tagPayment:
	case tagInvestment:
		o.Investment = true
	default:
		return Obligation{}, d.errorf("unknown obligation type %q", tokens[0])
	}
	return o, nil
}

// tokenize splits a line on blanks. A token starting with a double quote is
// read as a Go quoted string and may contain blanks.
func tokenize(line string) ([]string, error) {
	var tokens []string
	for {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			return tokens, nil
		}
		if line[0] == '"' {
			quoted, err := strconv.QuotedPrefix(line)
			if err != nil {
				return nil, fmt.Errorf("invalid quoted string in %q", line)
			}
			s, _ := strconv.Unquote(quoted) // QuotedPrefix guarantees a valid literal.
			tokens = append(tokens, s)
			line = line[len(quoted):]
			continue
		}
		i := strings.IndexAny(line, " \t")
		if i < 0 {
			i = len(line)
		}
		tokens = append(tokens, line[:i])
		line = line[i:]
	}
}

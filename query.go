package finance

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

func marshalRecord(r Record) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", r.What())
	w.Append("date", r.When())
	w.Append("amount", r.Value())
	w.Optional("description", r.Memo())
	w.Append("category", r.Group().String())
	return w.MarshalJSON()
}

func (i Income) MarshalJSON() ([]byte, error)      { return marshalRecord(i) }
func (e Expenditure) MarshalJSON() ([]byte, error) { return marshalRecord(e) }

func marshalInvestment(inv Investment) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", inv.What())
	w.Append("start", inv.When())
	w.Append("principal", inv.Value())
	w.Append("years", inv.Years())
	if sip, ok := inv.(SIP); ok {
		w.Append("monthly", sip.Monthly)
	}
	w.Append("maturity", MaturityAmount(inv).Round(2))
	return w.MarshalJSON()
}

func (s SIP) MarshalJSON() ([]byte, error) { return marshalInvestment(s) }
func (f FD) MarshalJSON() ([]byte, error)  { return marshalInvestment(f) }

func (o Obligation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", o.Type())
	w.Append("due", o.Due)
	w.Append("amount", o.Amount)
	w.Optional("description", o.Description)
	return w.MarshalJSON()
}

// MarshalJSON returns the whole ledger as a JSON object with the fields
// "balance", "records", "investments" and "obligations". Each record carries
// its identifier in the "id" field.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	records := make([]json.RawMessage, 0, len(l.records))
	for id, r := range l.Records() {
		var w jsonObjectWriter
		w.Append("id", id)
		w.EmbedFrom(r)
		raw, err := w.MarshalJSON()
		if err != nil {
			return nil, err
		}
		records = append(records, raw)
	}
	investments := l.investments
	if investments == nil {
		investments = []Investment{}
	}

	var w jsonObjectWriter
	w.Append("balance", l.Balance())
	w.Append("records", records)
	w.Append("investments", investments)
	w.Append("obligations", l.Upcoming())
	return w.MarshalJSON()
}

// Query evaluates a JSONPath expression, like "$.records[?(@.category=='Food')].amount",
// against the JSON representation of the ledger.
func (l *Ledger) Query(expr string) (any, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal ledger: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("cannot unmarshal ledger: %w", err)
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	return v, nil
}

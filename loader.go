package finance

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// DefaultUser is the user name used when none is given.
const DefaultUser = "default"

// DataFile returns the path of the text file holding the ledger of username in dir.
func DataFile(dir, username string) string {
	if username == "" {
		username = DefaultUser
	}
	return filepath.Join(dir, username+"_finance_data.txt")
}

// Storage reads and writes the whole State of a ledger.
//
// Read must return an error wrapping fs.ErrNotExist when nothing was ever
// written, so that callers can start from an empty ledger.
type Storage interface {
	Read(ctx context.Context) (State, error)
	Write(ctx context.Context, s State) error
}

// FileStorage stores a ledger in a text file.
type FileStorage struct {
	Path string
}

func (f FileStorage) Read(ctx context.Context) (State, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return State{}, fmt.Errorf("could not open ledger file %q: %w", f.Path, err)
	}
	defer file.Close()

	s, err := Decode(file)
	if err != nil {
		return State{}, fmt.Errorf("could not decode ledger file %q: %w", f.Path, err)
	}
	return s, nil
}

func (f FileStorage) Write(ctx context.Context, s State) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", f.Path, err)
	}
	file, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", f.Path, err)
	}
	if err := Encode(file, s); err != nil {
		file.Close()
		return fmt.Errorf("could not encode ledger file %q: %w", f.Path, err)
	}
	return file.Close()
}

// SaveTo writes the whole ledger content to st.
func (l *Ledger) SaveTo(ctx context.Context, st Storage) error {
	s := l.State()
	if err := st.Write(ctx, s); err != nil {
		return err
	}
	slog.Debug("save-ledger", "records", len(s.Records), "investments", len(s.Investments), "obligations", len(s.Obligations))
	return nil
}

// LoadFrom replaces the ledger content with the one read from st, and adds to
// balance the change implied by the loaded records and investments.
//
// On error neither the ledger nor the balance is modified. A ledger that was
// never saved reports an error wrapping fs.ErrNotExist.
func (l *Ledger) LoadFrom(ctx context.Context, st Storage, balance *decimal.Decimal) error {
	s, err := st.Read(ctx)
	if err != nil {
		return err
	}
	if err := l.Replace(s); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if balance != nil {
		*balance = balance.Add(BalanceDelta(s))
	}
	slog.Debug("load-ledger", "records", len(s.Records), "investments", len(s.Investments), "obligations", len(s.Obligations))
	return nil
}

// Save writes the ledger to the text file at path.
func (l *Ledger) Save(path string) error {
	return l.SaveTo(context.Background(), FileStorage{Path: path})
}

// Load replaces the ledger content with the text file at path. See LoadFrom.
func (l *Ledger) Load(path string, balance *decimal.Decimal) error {
	return l.LoadFrom(context.Background(), FileStorage{Path: path}, balance)
}

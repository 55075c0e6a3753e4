package sqlite

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleState() finance.State {
	return finance.State{
		Records: []finance.Record{
			finance.NewIncome(finance.NewDate(2024, 3, 1), dec("500"), "March salary"),
			finance.NewExpenditure(finance.NewDate(2024, 3, 5), dec("200.25"), `Cinema "Dune" & popcorn`, finance.CategoryEntertainment),
		},
		Investments: []finance.Investment{
			finance.NewSIP(finance.NewDate(2024, 2, 1), dec("1000"), 1, dec("100")),
			finance.NewFD(finance.NewDate(2024, 1, 1), dec("1000"), 3),
		},
		Obligations: []finance.Obligation{
			{Due: finance.NewDate(2024, 5, 1), Description: "Rent", Amount: dec("800")},
			{Due: finance.NewDate(2024, 6, 1), Description: "SIP top up", Amount: dec("100"), Investment: true},
		},
	}
}

func TestStore_ReadEmpty(t *testing.T) {
	// GIVEN a brand new database
	store := newTestStore(t)

	// WHEN reading it
	_, err := store.Read(context.Background())

	// THEN it reports that there is no ledger yet
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	want := sampleState()

	require.NoError(t, store.Write(ctx, want))
	got, err := store.Read(ctx)
	require.NoError(t, err)

	require.Len(t, got.Records, len(want.Records))
	for i := range want.Records {
		assert.True(t, got.Records[i].Equal(want.Records[i]), "record #%d = %v, want %v", i, got.Records[i], want.Records[i])
	}
	require.Len(t, got.Investments, len(want.Investments))
	for i := range want.Investments {
		assert.True(t, got.Investments[i].Equal(want.Investments[i]), "investment #%d = %v, want %v", i, got.Investments[i], want.Investments[i])
	}
	require.Len(t, got.Obligations, len(want.Obligations))
	for i := range want.Obligations {
		assert.True(t, got.Obligations[i].Equal(want.Obligations[i]), "obligation #%d = %v, want %v", i, got.Obligations[i], want.Obligations[i])
	}
}

func TestStore_WriteReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// GIVEN a database already written once
	require.NoError(t, store.Write(ctx, sampleState()))

	// WHEN writing a smaller ledger
	small := finance.State{Records: []finance.Record{
		finance.NewIncome(finance.NewDate(2024, 7, 1), dec("1"), "tip"),
	}}
	require.NoError(t, store.Write(ctx, small))

	// THEN only the last content remains, and both writes are recorded
	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Records, 1)
	assert.Empty(t, got.Investments)
	assert.Empty(t, got.Obligations)

	n, err := store.Snapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, sampleState()))
	require.NoError(t, store.Close())

	// Migrations are idempotent.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Records, 2)
}

func TestStore_Account(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// GIVEN a fresh account on the sqlite store
	a, err := finance.OpenAccount(ctx, store, "dave", finance.InitialBalance)
	require.NoError(t, err)
	assert.True(t, a.Fresh)

	// WHEN recording and saving
	_, err = a.RecordIncome(finance.NewDate(2024, 3, 1), dec("250"), "bonus")
	require.NoError(t, err)
	require.NoError(t, a.Invest(finance.NewFD(finance.NewDate(2024, 3, 2), dec("1000"), 2)))
	require.NoError(t, a.Save(ctx))

	// THEN reopening gives back the same balance
	b, err := finance.OpenAccount(ctx, store, "dave", finance.InitialBalance)
	require.NoError(t, err)
	assert.False(t, b.Fresh)
	assert.True(t, b.Balance.Equal(dec("1250")), "balance = %s", b.Balance)
}

func TestStore_SameRecordsAsTextFile(t *testing.T) {
	// GIVEN a text ledger with an expenditure in the Income category
	ctx := context.Background()
	text, err := finance.Decode(strings.NewReader("1\nE 10 \"refund\" 1 3 2024 Income\n0\n"))
	require.NoError(t, err)

	// WHEN moving it to sqlite
	store := newTestStore(t)
	require.NoError(t, store.Write(ctx, text))
	got, err := store.Read(ctx)
	require.NoError(t, err)

	// THEN both backends hold the same record
	require.Len(t, got.Records, 1)
	assert.True(t, got.Records[0].Equal(text.Records[0]), "sqlite %v, text %v", got.Records[0], text.Records[0])
	assert.Equal(t, finance.CategoryOther, got.Records[0].Group())
}

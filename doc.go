// Package finance records the income, expenditures and investments of a
// single user, and answers the questions a personal budget needs.
//
// The core functionalities include:
//   - Ledger: an append only list of records (Income, Expenditure) and
//     investments (SIP, FD). Every record gets an identifier like "TXN1".
//   - Reports: monthly totals per category, and maturity amounts of investments.
//   - Suggestions: every recorded description can be searched by prefix.
//   - Schedule: pending payments and investment due dates, soonest first.
//   - Persistence: a line oriented text format, see Encode, and the Storage
//     interface for other backends.
//
// The balance is not part of the Ledger: it is owned by the caller, usually an
// Account, and derived from the loaded content.
//
// This package serves as the foundational logic for the `fms` command-line tool.
package finance

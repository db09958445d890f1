// Package message defines the wire-level types that the test kit shares with
// the account runtime it drives: account identities, messages, calling
// contexts, the handler capability, and the system error conditions that
// dispatch logic matches on.
//
// The types here are deliberately minimal. Payloads are opaque byte slices;
// whatever codec a handler uses to interpret them is outside this layer.
package message

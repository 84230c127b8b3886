// Package oracle implements the toy Simon-style query protocol used to derive
// single-byte key material.
package oracle

import (
	"fmt"

	"github.com/jakobmina/smopsys-sv/topo"
)

// Oracle answers XOR queries against a single hidden byte. Instances are
// caller-owned: there is no process-wide state, and callers embedding one in
// a concurrent host must serialize Initialize/Query themselves.
type Oracle struct {
	secret     byte
	queryCount int
}

// New returns an oracle initialized with the given secret.
func New(secret byte) *Oracle {
	o := &Oracle{}
	o.Initialize(secret)
	return o
}

// Initialize stores a new secret and resets the query counter, discarding any
// prior state.
func (o *Oracle) Initialize(secret byte) {
	o.secret = secret
	o.queryCount = 0
}

// Query evaluates f(x) = x XOR s and counts the call. Total; no error path.
func (o *Oracle) Query(x byte) byte {
	o.queryCount++
	return x ^ o.secret
}

// QueryCount reports how many queries have been issued since the last
// Initialize.
func (o *Oracle) QueryCount() int { return o.queryCount }

// RecoveryResult reports one run of the recovery protocol.
type RecoveryResult struct {
	Queries int
	Outputs []byte
	Secret  byte
	Found   bool
}

// RunRecovery issues the three fixed probe queries x = 0, 1, 2 and reports
// the stored secret as the recovered value. The probe outputs are returned
// but are not solved for the secret: there is no GF(2) linear solve behind
// this protocol (see DESIGN.md).
func (o *Oracle) RunRecovery() RecoveryResult {
	outputs := make([]byte, 0, 3)
	for x := byte(0); x < 3; x++ {
		outputs = append(outputs, o.Query(x))
	}
	return RecoveryResult{
		Queries: 3,
		Outputs: outputs,
		Secret:  o.secret,
		Found:   true,
	}
}

// SearchResult is the outcome of a nuclear search: the isotope that seeded
// the oracle and the recovery run against it.
type SearchResult struct {
	Isotope topo.Isotope
	RecoveryResult
}

// NuclearSearch seeds a fresh oracle with the named isotope's H7 index and
// runs the recovery protocol against it.
func NuclearSearch(name string) (SearchResult, error) {
	iso, ok := topo.LookupIsotope(name)
	if !ok {
		return SearchResult{}, fmt.Errorf("oracle: unknown isotope %q", name)
	}
	o := New(byte(iso.H7Index))
	return SearchResult{Isotope: iso, RecoveryResult: o.RunRecovery()}, nil
}

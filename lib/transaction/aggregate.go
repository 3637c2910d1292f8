// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transaction

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

// aggregateAlignment pads every embedded transaction, the last one
// included, to a multiple of this many bytes.
const aggregateAlignment = 8

var aggregateLayout = layout.MustDescriptor("aggregate",
	layout.Fixed("transactions_hash", HashSize),
	layout.Size("payload_size", 4, "transactions"),
	layout.Reserved("aggregate_transaction_header_reserved_1", 4),
	layout.SizedArray("transactions", entity.Codec{Embedded: true}, aggregateAlignment),
)

// AggregateBody bundles embedded transactions so they apply together.
// Complete and bonded aggregates share the layout and differ only in
// type.
type AggregateBody struct {
	body
}

// NewAggregateBody builds an aggregate of the given type (complete or
// bonded) around transactions, which must all be embeddable. The
// transactions hash is derived from their encodings.
func NewAggregateBody(kind entity.Type, transactions []*entity.Entity) (AggregateBody, error) {
	if kind != AggregateCompleteType && kind != AggregateBondedType {
		return AggregateBody{}, fmt.Errorf("building aggregate body: %s is not an aggregate type", kind)
	}
	hash, err := TransactionsHash(transactions)
	if err != nil {
		return AggregateBody{}, fmt.Errorf("building aggregate body: %w", err)
	}
	elements := make([]any, len(transactions))
	for i, transaction := range transactions {
		elements[i] = transaction
	}
	value, err := aggregateLayout.New(layout.Record{
		"transactions_hash": hash[:],
		"transactions":      elements,
	})
	if err != nil {
		return AggregateBody{}, fmt.Errorf("building aggregate body: %w", err)
	}
	return AggregateBody{body{kind: kind, value: value}}, nil
}

// NewAggregateComplete builds a complete aggregate.
func NewAggregateComplete(transactions []*entity.Entity) (AggregateBody, error) {
	return NewAggregateBody(AggregateCompleteType, transactions)
}

// NewAggregateBonded builds a bonded aggregate.
func NewAggregateBonded(transactions []*entity.Entity) (AggregateBody, error) {
	return NewAggregateBody(AggregateBondedType, transactions)
}

func aggregateDecoder(kind entity.Type) entity.BodyDecoder {
	return func(cursor *wire.Cursor) (entity.Body, error) {
		decoded, err := decodeBody(kind, aggregateLayout, cursor)
		if err != nil {
			return nil, err
		}
		return AggregateBody{decoded}, nil
	}
}

// TransactionsHash returns the hash carried on the wire. Decoded
// aggregates keep whatever the input held; see
// [AggregateBody.VerifyTransactionsHash].
func (b AggregateBody) TransactionsHash() Hash {
	var hash Hash
	copy(hash[:], b.value.Bytes("transactions_hash"))
	return hash
}

// Transactions returns the embedded transactions in wire order.
func (b AggregateBody) Transactions() []*entity.Entity {
	elements := b.value.Elements("transactions")
	transactions := make([]*entity.Entity, len(elements))
	for i, element := range elements {
		transactions[i] = element.(*entity.Entity)
	}
	return transactions
}

// VerifyTransactionsHash recomputes the transactions hash and compares
// it with the carried one.
func (b AggregateBody) VerifyTransactionsHash() error {
	computed, err := TransactionsHash(b.Transactions())
	if err != nil {
		return err
	}
	carried := b.TransactionsHash()
	if !bytes.Equal(computed[:], carried[:]) {
		return fmt.Errorf("transactions hash mismatch: carried %s, computed %s",
			hex.EncodeToString(carried[:]), hex.EncodeToString(computed[:]))
	}
	return nil
}

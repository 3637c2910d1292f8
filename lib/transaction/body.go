// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transaction

import (
	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

// Body types.
const (
	TransferType          entity.Type = 0x4154
	VotingKeyLinkType     entity.Type = 0x4143
	AggregateCompleteType entity.Type = 0x4141
	AggregateBondedType   entity.Type = 0x4241
)

// body is the shared implementation of entity.Body over a layout.Value.
type body struct {
	kind  entity.Type
	value layout.Value
}

func (b body) Type() entity.Type { return b.kind }

func (b body) Size() int { return b.value.Size() }

func (b body) AppendBinary(buffer []byte) ([]byte, error) { return b.value.AppendBinary(buffer) }

func (b body) Value() layout.Value { return b.value }

func decodeBody(kind entity.Type, descriptor *layout.Descriptor, cursor *wire.Cursor) (body, error) {
	value, err := descriptor.DecodeValue(cursor)
	if err != nil {
		return body{}, err
	}
	return body{kind: kind, value: value}, nil
}

func init() {
	entity.MustRegister(TransferType, entity.Binding{
		Name:       "transfer",
		Version:    1,
		Embeddable: true,
		Decode:     decodeTransfer,
	})
	entity.MustRegister(VotingKeyLinkType, entity.Binding{
		Name:       "voting_key_link",
		Version:    1,
		Embeddable: true,
		Decode:     decodeVotingKeyLink,
	})
	entity.MustRegister(AggregateCompleteType, entity.Binding{
		Name:    "aggregate_complete",
		Version: 2,
		Decode:  aggregateDecoder(AggregateCompleteType),
	})
	entity.MustRegister(AggregateBondedType, entity.Binding{
		Name:    "aggregate_bonded",
		Version: 2,
		Decode:  aggregateDecoder(AggregateBondedType),
	})
}

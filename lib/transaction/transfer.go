// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transaction

import (
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/address"
	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

// MosaicID identifies a mosaic (token) definition.
type MosaicID uint64

func (id MosaicID) String() string {
	return fmt.Sprintf("%016X", uint64(id))
}

// Mosaic is an amount of a mosaic.
type Mosaic struct {
	ID     MosaicID `json:"id"`
	Amount uint64   `json:"amount"`
}

var mosaicLayout = layout.MustDescriptor("mosaic",
	layout.Scalar("mosaic_id", 8),
	layout.Scalar("amount", 8),
)

func (m Mosaic) record() layout.Record {
	return layout.Record{"mosaic_id": uint64(m.ID), "amount": m.Amount}
}

// The two reserved fields keep the mosaics array 8-byte aligned
// relative to the start of the body.
var transferLayout = layout.MustDescriptor("transfer",
	layout.Fixed("recipient_address", address.Size),
	layout.Size("message_size", 2, "message"),
	layout.Size("mosaics_count", 1, "mosaics"),
	layout.Reserved("transfer_body_reserved_1", 4),
	layout.Reserved("transfer_body_reserved_2", 1),
	layout.Array("mosaics", mosaicLayout),
	layout.Buffer("message"),
)

// TransferBody moves mosaics to a recipient with an optional message.
type TransferBody struct {
	body
}

// NewTransferBody builds a transfer body. Mosaics keep the order given.
// Returns a wire.RangeError when there are more than 255 mosaics or
// the message is longer than 65535 bytes.
func NewTransferBody(recipient address.Address, mosaics []Mosaic, message []byte) (TransferBody, error) {
	elements := make([]any, len(mosaics))
	for i, mosaic := range mosaics {
		elements[i] = mosaic.record()
	}
	value, err := transferLayout.New(layout.Record{
		"recipient_address": recipient[:],
		"mosaics":           elements,
		"message":           message,
	})
	if err != nil {
		return TransferBody{}, fmt.Errorf("building transfer body: %w", err)
	}
	return TransferBody{body{kind: TransferType, value: value}}, nil
}

func decodeTransfer(cursor *wire.Cursor) (entity.Body, error) {
	decoded, err := decodeBody(TransferType, transferLayout, cursor)
	if err != nil {
		return nil, err
	}
	return TransferBody{decoded}, nil
}

// RecipientAddress returns the recipient.
func (b TransferBody) RecipientAddress() address.Address {
	var recipient address.Address
	copy(recipient[:], b.value.Bytes("recipient_address"))
	return recipient
}

// Mosaics returns the transferred mosaics in wire order.
func (b TransferBody) Mosaics() []Mosaic {
	elements := b.value.Elements("mosaics")
	mosaics := make([]Mosaic, len(elements))
	for i, element := range elements {
		record := element.(layout.Record)
		mosaics[i] = Mosaic{ID: MosaicID(record.Uint("mosaic_id")), Amount: record.Uint("amount")}
	}
	return mosaics
}

// Message returns a copy of the message bytes.
func (b TransferBody) Message() []byte {
	return b.value.Bytes("message")
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transaction

import (
	"bytes"
	"sync"
	"testing"

	"github.com/bureau-foundation/txcodec/lib/address"
	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/registry"
	"github.com/bureau-foundation/txcodec/lib/testutil"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

func signer(fill byte) entity.PublicKey {
	var key entity.PublicKey
	for i := range key {
		key[i] = fill
	}
	return key
}

func newEntity(t *testing.T, body entity.Body) *entity.Entity {
	t.Helper()
	result, err := entity.New(entity.Header{Signer: signer(0x5a), Network: entity.Testnet}, body)
	if err != nil {
		t.Fatalf("entity.New: %v", err)
	}
	return result
}

func newTransfer(t *testing.T, message string, mosaics ...Mosaic) TransferBody {
	t.Helper()
	recipient := address.FromPublicKey(entity.Testnet, signer(0x01))
	body, err := NewTransferBody(recipient, mosaics, []byte(message))
	if err != nil {
		t.Fatalf("NewTransferBody: %v", err)
	}
	return body
}

func TestTransferBody_Scenario(t *testing.T) {
	body, err := NewTransferBody(address.Address{}, nil, []byte("hi"))
	if err != nil {
		t.Fatalf("NewTransferBody error: %v", err)
	}

	want := testutil.DecodeHex(t, `
		000000000000000000000000000000000000000000000000
		0200
		00
		00000000
		00
		6869`)
	got := body.Value().Serialize()
	if !bytes.Equal(got, want) {
		t.Errorf("encoding = %x, want %x", got, want)
	}
	if body.Size() != 34 {
		t.Errorf("Size = %d, want 34", body.Size())
	}

	decoded, err := decodeTransfer(wire.NewCursor(got))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	transfer := decoded.(TransferBody)
	if !transfer.RecipientAddress().IsZero() {
		t.Errorf("recipient = %x, want zero", transfer.RecipientAddress())
	}
	if len(transfer.Mosaics()) != 0 {
		t.Errorf("mosaics = %v, want none", transfer.Mosaics())
	}
	if string(transfer.Message()) != "hi" {
		t.Errorf("message = %q, want hi", transfer.Message())
	}
}

func TestTransferBody_MessageSizeDerived(t *testing.T) {
	body := newTransfer(t, "hello")
	if got := body.Value().Uint("message_size"); got != 5 {
		t.Errorf("message_size = %d, want 5", got)
	}
	encoded := body.Value().Serialize()
	if encoded[24] != 5 || encoded[25] != 0 {
		t.Errorf("message_size bytes = %x, want 0500", encoded[24:26])
	}
}

func TestTransferBody_MosaicOrder(t *testing.T) {
	mosaics := []Mosaic{
		{ID: 0x300, Amount: 1},
		{ID: 0x100, Amount: 2},
		{ID: 0x200, Amount: 3},
	}
	original := newEntity(t, newTransfer(t, "", mosaics...))
	encoded, err := original.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	decoded, _, err := entity.Load(encoded)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	got := decoded.Body().(TransferBody).Mosaics()
	if len(got) != len(mosaics) {
		t.Fatalf("decoded %d mosaics, want %d", len(got), len(mosaics))
	}
	for i := range mosaics {
		if got[i] != mosaics[i] {
			t.Errorf("mosaics[%d] = %+v, want %+v", i, got[i], mosaics[i])
		}
	}

	again, err := decoded.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again, encoded) {
		t.Error("re-encoding changed the bytes")
	}
}

func TestTransferBody_Limits(t *testing.T) {
	recipient := address.Address{}
	_, err := NewTransferBody(recipient, make([]Mosaic, 256), nil)
	rangeErr := testutil.RequireErrorAs[*wire.RangeError](t, err)
	if rangeErr.Value != 256 || rangeErr.Width != 1 {
		t.Errorf("256 mosaics: RangeError = %+v, want value 256 width 1", *rangeErr)
	}
	if _, err := NewTransferBody(recipient, nil, make([]byte, 1<<16)); !wire.IsRange(err) {
		t.Errorf("64KiB message: error = %v, want RangeError", err)
	}
	if _, err := NewTransferBody(recipient, make([]Mosaic, 255), make([]byte, 1<<16-1)); err != nil {
		t.Errorf("maximum sizes: error = %v", err)
	}
}

func TestTransferBody_GettersReturnCopies(t *testing.T) {
	body := newTransfer(t, "abc", Mosaic{ID: 1, Amount: 1})
	body.Message()[0] = 'X'
	body.Mosaics()[0].Amount = 99
	if string(body.Message()) != "abc" || body.Mosaics()[0].Amount != 1 {
		t.Error("getter results alias the body")
	}
}

func TestVotingKeyLinkBody(t *testing.T) {
	body, err := NewVotingKeyLinkBody(signer(0xc3), 10, 360, Link)
	if err != nil {
		t.Fatalf("NewVotingKeyLinkBody error: %v", err)
	}
	want := append(bytes.Repeat([]byte{0xc3}, 32), testutil.DecodeHex(t, "0a000000 68010000 01")...)
	if got := body.Value().Serialize(); !bytes.Equal(got, want) {
		t.Errorf("encoding = %x, want %x", got, want)
	}

	original := newEntity(t, body)
	encoded, err := original.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	decoded, consumed, err := entity.Load(encoded)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if consumed != entity.HeaderSize+41 {
		t.Errorf("consumed = %d, want %d", consumed, entity.HeaderSize+41)
	}
	link := decoded.Body().(VotingKeyLinkBody)
	if link.LinkedPublicKey() != signer(0xc3) || link.StartEpoch() != 10 || link.EndEpoch() != 360 || link.LinkAction() != Link {
		t.Errorf("decoded link = %s %d..%d %s", link.LinkedPublicKey(), link.StartEpoch(), link.EndEpoch(), link.LinkAction())
	}
}

func TestAggregate(t *testing.T) {
	first := newEntity(t, newTransfer(t, "a", Mosaic{ID: 1, Amount: 10}))
	link, err := NewVotingKeyLinkBody(signer(0x77), 1, 2, Unlink)
	if err != nil {
		t.Fatal(err)
	}
	second := newEntity(t, link)

	for _, build := range []func([]*entity.Entity) (AggregateBody, error){NewAggregateComplete, NewAggregateBonded} {
		body, err := build([]*entity.Entity{first, second})
		if err != nil {
			t.Fatalf("building aggregate: %v", err)
		}
		if err := body.VerifyTransactionsHash(); err != nil {
			t.Errorf("fresh aggregate: %v", err)
		}

		// Embedded sizes: transfer 36+49 -> 88, link 36+41 -> 80.
		if got := body.Value().Uint("payload_size"); got != 168 {
			t.Errorf("payload_size = %d, want 168", got)
		}

		aggregate := newEntity(t, body)
		if aggregate.Version() != 2 {
			t.Errorf("aggregate version = %d, want 2", aggregate.Version())
		}
		encoded, err := aggregate.Serialize()
		if err != nil {
			t.Fatal(err)
		}
		if len(encoded) != entity.HeaderSize+40+168 {
			t.Errorf("encoded length = %d, want %d", len(encoded), entity.HeaderSize+40+168)
		}

		decoded, consumed, err := entity.Load(encoded)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if consumed != len(encoded) {
			t.Errorf("consumed = %d of %d", consumed, len(encoded))
		}
		if !decoded.Equal(aggregate) {
			t.Error("decoded aggregate differs")
		}
		inner := decoded.Body().(AggregateBody).Transactions()
		if len(inner) != 2 || !inner[0].Equal(first) || !inner[1].Equal(second) {
			t.Error("embedded transactions not preserved in order")
		}
		if err := decoded.Body().(AggregateBody).VerifyTransactionsHash(); err != nil {
			t.Errorf("decoded aggregate: %v", err)
		}
	}
}

func TestAggregate_ConcurrentDecode(t *testing.T) {
	link, err := NewVotingKeyLinkBody(signer(0x77), 1, 2, Link)
	if err != nil {
		t.Fatal(err)
	}
	transactions := []*entity.Entity{
		newEntity(t, newTransfer(t, "a", Mosaic{ID: 1, Amount: 10})),
		newEntity(t, link),
		newEntity(t, newTransfer(t, "bc", Mosaic{ID: 2, Amount: 20}, Mosaic{ID: 3, Amount: 30})),
	}
	body, err := NewAggregateComplete(transactions)
	if err != nil {
		t.Fatal(err)
	}
	aggregate := newEntity(t, body)
	encoded, err := aggregate.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	original := bytes.Clone(encoded)

	// Every goroutine decodes the same input buffer and re-encodes its
	// own result; the input must come through untouched.
	const workers = 16
	var wait sync.WaitGroup
	for range workers {
		wait.Add(1)
		go func() {
			defer wait.Done()
			for range 50 {
				decoded, consumed, err := entity.Load(encoded)
				if err != nil {
					t.Errorf("Load error: %v", err)
					return
				}
				if consumed != len(encoded) {
					t.Errorf("consumed = %d of %d", consumed, len(encoded))
					return
				}
				if err := decoded.Body().(AggregateBody).VerifyTransactionsHash(); err != nil {
					t.Error(err)
					return
				}
				again, err := decoded.Serialize()
				if err != nil {
					t.Errorf("Serialize error: %v", err)
					return
				}
				if !bytes.Equal(again, original) {
					t.Error("re-encoding differs from the input")
					return
				}
				if _, err := aggregate.Serialize(); err != nil {
					t.Errorf("Serialize of shared entity: %v", err)
					return
				}
			}
		}()
	}
	wait.Wait()

	if !bytes.Equal(encoded, original) {
		t.Error("decoding modified the input buffer")
	}
}

func TestAggregate_TamperedHash(t *testing.T) {
	body, err := NewAggregateComplete([]*entity.Entity{newEntity(t, newTransfer(t, "x"))})
	if err != nil {
		t.Fatal(err)
	}
	encoded := body.Value().Serialize()
	encoded[0] ^= 0xff

	decoded, err := aggregateDecoder(AggregateCompleteType)(wire.NewCursor(encoded))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if err := decoded.(AggregateBody).VerifyTransactionsHash(); err == nil {
		t.Error("tampered transactions hash verified")
	}
}

func TestAggregate_RejectsNesting(t *testing.T) {
	inner, err := NewAggregateComplete(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewAggregateBonded([]*entity.Entity{newEntity(t, inner)}); !entity.IsNotEmbeddable(err) {
		t.Errorf("aggregate in aggregate: error = %v, want NotEmbeddableError", err)
	}
	if _, err := NewAggregateBody(TransferType, nil); err == nil {
		t.Error("NewAggregateBody accepted a transfer type")
	}
}

func TestTransactionsHash(t *testing.T) {
	a := newEntity(t, newTransfer(t, "a"))
	b := newEntity(t, newTransfer(t, "b"))
	c := newEntity(t, newTransfer(t, "c"))

	empty, err := TransactionsHash(nil)
	if err != nil || empty != (Hash{}) {
		t.Errorf("empty root = %s, %v, want zero", empty, err)
	}

	single, err := TransactionsHash([]*entity.Entity{a})
	if err != nil {
		t.Fatal(err)
	}
	leaf, err := EntityHash(a)
	if err != nil {
		t.Fatal(err)
	}
	if single != leaf {
		t.Error("single-transaction root is not the entity hash")
	}

	// An odd level duplicates its last node, so [a b c] and [a b c c]
	// share a root.
	odd, err := TransactionsHash([]*entity.Entity{a, b, c})
	if err != nil {
		t.Fatal(err)
	}
	padded, err := TransactionsHash([]*entity.Entity{a, b, c, c})
	if err != nil {
		t.Fatal(err)
	}
	if odd != padded {
		t.Error("odd level did not duplicate its last node")
	}

	swapped, err := TransactionsHash([]*entity.Entity{b, a, c})
	if err != nil {
		t.Fatal(err)
	}
	if swapped == odd {
		t.Error("root does not depend on order")
	}
}

func TestRegisteredBodies_RoundTripAndTruncation(t *testing.T) {
	transfer := newEntity(t, newTransfer(t, "hello", Mosaic{ID: 7, Amount: 1}, Mosaic{ID: 8, Amount: 2}))
	link, err := NewVotingKeyLinkBody(signer(0x10), 5, 6, Link)
	if err != nil {
		t.Fatal(err)
	}
	linkEntity := newEntity(t, link)
	aggregate, err := NewAggregateBonded([]*entity.Entity{transfer, linkEntity})
	if err != nil {
		t.Fatal(err)
	}

	entities := map[string]*entity.Entity{
		"transfer":        transfer,
		"voting_key_link": linkEntity,
		"aggregate":       newEntity(t, aggregate),
	}
	for name, original := range entities {
		t.Run(name, func(t *testing.T) {
			encoded, err := original.Serialize()
			if err != nil {
				t.Fatal(err)
			}
			if len(encoded) != original.Size() {
				t.Errorf("len(Serialize) = %d, Size = %d", len(encoded), original.Size())
			}
			decoded, consumed, err := entity.Load(encoded)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if consumed != original.Size() || !decoded.Equal(original) {
				t.Errorf("round trip failed: consumed %d of %d, equal %v", consumed, original.Size(), decoded.Equal(original))
			}
			for length := 0; length < len(encoded); length++ {
				if _, _, err := entity.Load(encoded[:length]); !wire.IsTruncated(err) {
					t.Errorf("Load of %d/%d bytes: error = %v, want TruncatedInputError", length, len(encoded), err)
				}
			}
		})
	}
}

func TestUnknownType(t *testing.T) {
	header := append(bytes.Repeat([]byte{0}, 32), 0x01, 0x98, 0xff, 0xff)
	_, _, err := entity.Load(append(header, 0xaa, 0xbb))
	if !registry.IsUnknownType(err) {
		t.Errorf("Load error = %v, want UnknownTypeError", err)
	}
}

func TestRegisteredNames(t *testing.T) {
	for name, want := range map[string]entity.Type{
		"transfer":           TransferType,
		"voting_key_link":    VotingKeyLinkType,
		"aggregate_complete": AggregateCompleteType,
		"aggregate_bonded":   AggregateBondedType,
	} {
		got, err := entity.TypeByName(name)
		if err != nil || got != want {
			t.Errorf("TypeByName(%q) = %s, %v, want %s", name, got, err, want)
		}
	}
}

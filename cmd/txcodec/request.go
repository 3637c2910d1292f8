// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/txcodec/lib/address"
	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/transaction"
)

// entityRequest describes an entity to encode. Request files are JSON
// with comments and trailing commas allowed:
//
//	{
//	  "signer": "3B6A27BC...",
//	  "network": "testnet",   // defaults to the configured network
//	  "type": "aggregate_complete",
//	  "transactions": [
//	    {"type": "transfer", "transfer": {"recipient": "TB6Q...", "message": "hi"}},
//	  ],
//	}
//
// Embedded transactions inherit signer and network when they omit them.
type entityRequest struct {
	Signer        string                `json:"signer"`
	Network       string                `json:"network,omitempty"`
	Type          string                `json:"type"`
	Transfer      *transferRequest      `json:"transfer,omitempty"`
	VotingKeyLink *votingKeyLinkRequest `json:"voting_key_link,omitempty"`
	Transactions  []entityRequest       `json:"transactions,omitempty"`
}

type transferRequest struct {
	Recipient  string          `json:"recipient"`
	Mosaics    []mosaicRequest `json:"mosaics,omitempty"`
	Message    string          `json:"message,omitempty"`
	MessageHex string          `json:"message_hex,omitempty"`
}

type mosaicRequest struct {
	ID     string `json:"id"`
	Amount uint64 `json:"amount"`
}

type votingKeyLinkRequest struct {
	LinkedPublicKey string `json:"linked_public_key"`
	StartEpoch      uint32 `json:"start_epoch"`
	EndEpoch        uint32 `json:"end_epoch"`
	Action          string `json:"action"`
}

func loadRequest(path string) (*entityRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}
	var request entityRequest
	if err := json.Unmarshal(jsonc.ToJSON(data), &request); err != nil {
		return nil, fmt.Errorf("parsing request %s: %w", path, err)
	}
	return &request, nil
}

// build encodes the request into an entity. defaultNetwork applies
// when the request names none.
func (r *entityRequest) build(defaultNetwork entity.NetworkType) (*entity.Entity, error) {
	network := defaultNetwork
	if r.Network != "" {
		parsed, err := entity.ParseNetwork(r.Network)
		if err != nil {
			return nil, err
		}
		network = parsed
	}
	signer, err := entity.ParsePublicKey(r.Signer)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}

	kind, err := entity.TypeByName(r.Type)
	if err != nil {
		return nil, err
	}
	var body entity.Body
	switch kind {
	case transaction.TransferType:
		if r.Transfer == nil {
			return nil, fmt.Errorf("transfer request has no transfer section")
		}
		body, err = r.Transfer.build()
	case transaction.VotingKeyLinkType:
		if r.VotingKeyLink == nil {
			return nil, fmt.Errorf("voting_key_link request has no voting_key_link section")
		}
		body, err = r.VotingKeyLink.build()
	case transaction.AggregateCompleteType, transaction.AggregateBondedType:
		body, err = r.buildAggregate(kind, network)
	default:
		return nil, fmt.Errorf("type %s cannot be built from a request", r.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Type, err)
	}
	return entity.New(entity.Header{Signer: signer, Network: network}, body)
}

func (r *entityRequest) buildAggregate(kind entity.Type, network entity.NetworkType) (entity.Body, error) {
	transactions := make([]*entity.Entity, len(r.Transactions))
	for i := range r.Transactions {
		embedded := r.Transactions[i]
		if embedded.Signer == "" {
			embedded.Signer = r.Signer
		}
		built, err := embedded.build(network)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		transactions[i] = built
	}
	return transaction.NewAggregateBody(kind, transactions)
}

func (t *transferRequest) build() (entity.Body, error) {
	recipient, err := parseRecipient(t.Recipient)
	if err != nil {
		return nil, err
	}
	mosaics := make([]transaction.Mosaic, len(t.Mosaics))
	for i, mosaic := range t.Mosaics {
		id, err := parseMosaicID(mosaic.ID)
		if err != nil {
			return nil, fmt.Errorf("mosaic %d: %w", i, err)
		}
		mosaics[i] = transaction.Mosaic{ID: id, Amount: mosaic.Amount}
	}
	message := []byte(t.Message)
	if t.MessageHex != "" {
		if t.Message != "" {
			return nil, fmt.Errorf("message and message_hex are mutually exclusive")
		}
		if message, err = hex.DecodeString(t.MessageHex); err != nil {
			return nil, fmt.Errorf("message_hex: %w", err)
		}
	}
	return transaction.NewTransferBody(recipient, mosaics, message)
}

func (v *votingKeyLinkRequest) build() (entity.Body, error) {
	key, err := entity.ParsePublicKey(v.LinkedPublicKey)
	if err != nil {
		return nil, fmt.Errorf("linked_public_key: %w", err)
	}
	action, err := transaction.ParseLinkAction(v.Action)
	if err != nil {
		return nil, err
	}
	return transaction.NewVotingKeyLinkBody(key, v.StartEpoch, v.EndEpoch, action)
}

// parseRecipient accepts the base32 address form or 48 hex digits.
func parseRecipient(text string) (address.Address, error) {
	if len(text) == 2*address.Size {
		if decoded, err := hex.DecodeString(text); err == nil {
			return address.FromBytes(decoded)
		}
	}
	return address.Parse(text)
}

func parseMosaicID(text string) (transaction.MosaicID, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(text, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("mosaic id %q: %w", text, err)
	}
	return transaction.MosaicID(id), nil
}

// parseMosaicFlag parses "ID:AMOUNT" with a hex id and decimal amount.
func parseMosaicFlag(text string) (mosaicRequest, error) {
	id, amount, found := strings.Cut(text, ":")
	if !found {
		return mosaicRequest{}, fmt.Errorf("mosaic %q: want ID:AMOUNT", text)
	}
	if _, err := parseMosaicID(id); err != nil {
		return mosaicRequest{}, err
	}
	parsed, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		return mosaicRequest{}, fmt.Errorf("mosaic %q amount: %w", text, err)
	}
	return mosaicRequest{ID: id, Amount: parsed}, nil
}

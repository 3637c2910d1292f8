// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transaction

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

// LinkAction says whether a key link is being created or removed.
type LinkAction uint8

const (
	Unlink LinkAction = 0
	Link   LinkAction = 1
)

func (a LinkAction) String() string {
	switch a {
	case Unlink:
		return "unlink"
	case Link:
		return "link"
	}
	return fmt.Sprintf("link_action(%d)", uint8(a))
}

// ParseLinkAction accepts "link" or "unlink".
func ParseLinkAction(text string) (LinkAction, error) {
	switch strings.ToLower(text) {
	case "link":
		return Link, nil
	case "unlink":
		return Unlink, nil
	}
	return 0, fmt.Errorf("unknown link action %q (expected link or unlink)", text)
}

var votingKeyLinkLayout = layout.MustDescriptor("voting_key_link",
	layout.Fixed("linked_public_key", 32),
	layout.Scalar("start_epoch", 4),
	layout.Scalar("end_epoch", 4),
	layout.Scalar("link_action", 1),
)

// VotingKeyLinkBody links or unlinks a voting key for a range of
// finalization epochs.
type VotingKeyLinkBody struct {
	body
}

// NewVotingKeyLinkBody builds a voting key link body.
func NewVotingKeyLinkBody(key entity.PublicKey, startEpoch, endEpoch uint32, action LinkAction) (VotingKeyLinkBody, error) {
	value, err := votingKeyLinkLayout.New(layout.Record{
		"linked_public_key": key[:],
		"start_epoch":       uint64(startEpoch),
		"end_epoch":         uint64(endEpoch),
		"link_action":       uint64(action),
	})
	if err != nil {
		return VotingKeyLinkBody{}, fmt.Errorf("building voting key link body: %w", err)
	}
	return VotingKeyLinkBody{body{kind: VotingKeyLinkType, value: value}}, nil
}

func decodeVotingKeyLink(cursor *wire.Cursor) (entity.Body, error) {
	decoded, err := decodeBody(VotingKeyLinkType, votingKeyLinkLayout, cursor)
	if err != nil {
		return nil, err
	}
	return VotingKeyLinkBody{decoded}, nil
}

// LinkedPublicKey returns the voting key.
func (b VotingKeyLinkBody) LinkedPublicKey() entity.PublicKey {
	var key entity.PublicKey
	copy(key[:], b.value.Bytes("linked_public_key"))
	return key
}

// StartEpoch returns the first epoch of the link.
func (b VotingKeyLinkBody) StartEpoch() uint32 {
	return uint32(b.value.Uint("start_epoch"))
}

// EndEpoch returns the last epoch of the link.
func (b VotingKeyLinkBody) EndEpoch() uint32 {
	return uint32(b.value.Uint("end_epoch"))
}

// LinkAction returns whether the key is linked or unlinked.
func (b VotingKeyLinkBody) LinkAction() LinkAction {
	return LinkAction(b.value.Uint("link_action"))
}

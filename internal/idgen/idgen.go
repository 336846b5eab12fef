// Package idgen generates GroupID and PieceID values for the demo sender
// harness, using github.com/rs/xid the same way runZeroInc-sockstats uses
// it to mint correlation ids for sockets it is tracking. Only the 3-byte
// counter component of each xid is kept, so ids are distinct within one
// process until that 24-bit counter wraps; they are not globally unique.
package idgen

import (
	"github.com/rs/xid"

	"github.com/warpmatrix/ccdemo/internal/ccpacket"
)

// NewGroupID returns a fresh GroupID for one burst of packets sent
// together.
func NewGroupID() ccpacket.GroupID {
	return ccpacket.GroupID(xid.New().Counter())
}

// NewPieceID returns a fresh PieceID for one application-level piece of
// data.
func NewPieceID() ccpacket.PieceID {
	return ccpacket.PieceID(xid.New().Counter())
}

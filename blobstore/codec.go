package blobstore

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/fossil-light/accumulator/mmr"
)

// MMRBlob is the serialized form of one batch's MMR state: every node the
// store holds, plus the counts needed to reconstruct peaks without
// replaying every append.
type MMRBlob struct {
	ElementsCount uint64        `cbor:"elements_count"`
	LeavesCount   uint64        `cbor:"leaves_count"`
	Nodes         []MMRBlobNode `cbor:"nodes"`
}

// MMRBlobNode is one (position, hash) pair.
type MMRBlobNode struct {
	Position uint64   `cbor:"position"`
	Hash     [32]byte `cbor:"hash"`
}

// EncodeMMR serializes an MMR's full node set to CBOR, the same compact
// self-describing format the reference blob-storage layer uses for its own
// massif state.
func EncodeMMR(elementsCount, leavesCount uint64, entries []mmr.NodeEntry) ([]byte, error) {
	blob := MMRBlob{
		ElementsCount: elementsCount,
		LeavesCount:   leavesCount,
		Nodes:         make([]MMRBlobNode, len(entries)),
	}
	for i, e := range entries {
		blob.Nodes[i] = MMRBlobNode{Position: e.Position, Hash: [32]byte(e.Hash)}
	}
	return cbor.Marshal(blob)
}

// DecodeMMR parses a previously encoded blob back into a NodeStore ready
// for further appends.
func DecodeMMR(data []byte) (*mmr.MemoryStore, uint64, error) {
	var blob MMRBlob
	if err := cbor.Unmarshal(data, &blob); err != nil {
		return nil, 0, err
	}
	store := mmr.NewMemoryStore()
	for _, node := range blob.Nodes {
		if err := store.Set(node.Position, mmr.Hash(node.Hash)); err != nil {
			return nil, 0, err
		}
	}
	return store, blob.LeavesCount, nil
}

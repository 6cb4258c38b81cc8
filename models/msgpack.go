package models

import (
	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgPackContentType is negotiated through the Accept header
const MsgPackContentType = "application/msgpack"

// EncodeBoxSummary encodes a summary for clients that asked for msgpack.
func EncodeBoxSummary(sum BoxSummary) ([]byte, error) {
	b, err := msgpack.Marshal(sum)
	if err != nil {
		return nil, serr.Wrap(err, "failed to msgpack encode box summary")
	}
	return b, nil
}

// DecodeBoxSummary is the inverse of EncodeBoxSummary
func DecodeBoxSummary(data []byte) (BoxSummary, error) {
	var sum BoxSummary
	if err := msgpack.Unmarshal(data, &sum); err != nil {
		return sum, serr.Wrap(err, "failed to unmarshal msgpack box summary")
	}
	return sum, nil
}

//go:build linux

package buttons

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestDecode(t *testing.T) {
	const tvSize = 16
	var buf []byte
	buf = append(buf, record(tvSize, evKey, keyRight, 1)...)
	buf = append(buf, record(tvSize, 0, 0, 0)...) // SYN_REPORT
	buf = append(buf, record(tvSize, evKey, keyRight, 0)...)
	buf = append(buf, record(tvSize, evKey, keyEnter, 1)...)
	buf = append(buf, 0x01, 0x02) // partial trailing record

	assert.Equal(t, []Event{Right, Select}, decode(buf, tvSize))
}

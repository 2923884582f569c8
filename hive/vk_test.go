package hive

import (
	"testing"

	"github.com/regcore/nthive/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVKRejectsBadSignature(t *testing.T) {
	payload := make([]byte, format.VKFixedHeaderSize)
	payload[0], payload[1] = 'x', 'x'
	_, err := ParseVK(payload)
	require.Error(t, err)
	var sigErr *format.InvalidTwoByteSignature
	require.ErrorAs(t, err, &sigErr)
}

func TestVKUnsupportedDataType(t *testing.T) {
	var fb fixtureBuilder
	payload := buildVK(vkFields{name: "x", asciiName: true, dataType: 999, inlineData: []byte{1, 2, 3, 4}})
	vk, err := ParseVK(payload)
	require.NoError(t, err)
	_, err = vk.StringData(fb.finish(0))
	require.Error(t, err)
	var typeErr *format.UnsupportedKeyValueDataType
	require.ErrorAs(t, err, &typeErr)
}

func TestVKDWordRequiresFourBytes(t *testing.T) {
	var fb fixtureBuilder
	off := fb.addCell([]byte{1, 2, 3}) // declared small cell, only 3 bytes
	payload := buildVK(vkFields{name: "x", asciiName: true, dataType: format.RegDWord, smallDataOff: off, smallData: []byte{1, 2, 3}})
	blob := fb.finish(0)
	vk, err := ParseVK(payload)
	require.NoError(t, err)
	_, err = vk.DWordData(blob)
	require.Error(t, err)
	var sizeErr *format.InvalidDataSize
	require.ErrorAs(t, err, &sizeErr)
}

func TestVKNameEmptyMeansDefaultValue(t *testing.T) {
	payload := buildVK(vkFields{name: "", asciiName: true, dataType: format.RegSZ, inlineData: []byte{}})
	vk, err := ParseVK(payload)
	require.NoError(t, err)
	n, err := vk.Name()
	require.NoError(t, err)
	assert.True(t, n.IsEmpty())
}

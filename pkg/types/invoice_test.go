package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItems_RoundTrip(t *testing.T) {
	payload, err := EncodeLineItems([]LineItem{
		{Description: "Session fee", Amount: 750},
		{Description: "Per diem", Amount: 60.5},
	})
	require.NoError(t, err)

	items, err := DecodeLineItems(payload)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Session fee", items[0].Description)
	assert.Equal(t, 60.5, items[1].Amount)
}

func TestLineItems_EmptyPayload(t *testing.T) {
	items, err := DecodeLineItems("")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	payload, err := EncodeLineItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", payload)
}

func TestLineItems_MalformedPayload(t *testing.T) {
	_, err := DecodeLineItems("{not json")
	assert.Error(t, err)
}

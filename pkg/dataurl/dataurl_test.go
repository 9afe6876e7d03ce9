package dataurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	encoded := Encode("image/png", payload)
	assert.Equal(t, "data:image/png;base64,iVBORwD/", encoded)

	mimeType, data, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, payload, data)
}

func TestDecode(t *testing.T) {
	t.Run("MIMEの追加パラメータは無視されるのだ", func(t *testing.T) {
		mimeType, data, err := Decode("data:image/jpeg;name=a.jpg;base64,AQID")
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mimeType)
		assert.Equal(t, []byte{1, 2, 3}, data)
	})

	malformed := []struct {
		name  string
		input string
	}{
		{"空文字列", ""},
		{"スキームなし", "image/png;base64,AQID"},
		{"カンマなし", "data:image/png;base64AQID"},
		{"base64指定なし", "data:text/plain,hello"},
		{"不正なbase64", "data:image/png;base64,!!!"},
		{"空ペイロード", "data:image/png;base64,"},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.input)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

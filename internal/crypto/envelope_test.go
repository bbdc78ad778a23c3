package crypto

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// counterRandom yields 0, 1, 2, ... so every draw differs but runs repeat.
type counterRandom struct{ next byte }

func (r *counterRandom) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.next
		r.next++
	}
	return len(p), nil
}

func newTestCodec() EnvelopeSealer {
	return NewEnvelopeCodec(NewCipher(), &counterRandom{})
}

// ── Seal / Open ─────────────────────────────────────────────────────────────

func TestEnvelope_RoundTrip(t *testing.T) {
	d := NewKeyDeriver(WithIterations(1000))
	salt := bytes.Repeat([]byte{0x42}, SaltLength)
	key, err := d.DeriveKey("P1", salt)
	require.NoError(t, err)

	codec := NewEnvelopeCodec(NewCipher(), SystemRandom())
	tests := []struct{ title, body string }{
		{"Day 1", "Had soup"},
		{"", ""},
		{"Ünïcødé ✓", "line one\nline two\t\"quoted\""},
		{"long", string(bytes.Repeat([]byte("x"), 64*1024))},
	}
	for _, tt := range tests {
		sealed, err := codec.Seal(tt.title, tt.body, key)
		require.NoError(t, err)

		again, err := d.DeriveKey("P1", salt)
		require.NoError(t, err)
		title, body, err := codec.Open(sealed, again)
		require.NoError(t, err)
		assert.Equal(t, tt.title, title)
		assert.Equal(t, tt.body, body)
	}
}

func TestEnvelope_WrongSecretFails(t *testing.T) {
	d := NewKeyDeriver(WithIterations(1000))
	salt := bytes.Repeat([]byte{0x42}, SaltLength)
	k1, _ := d.DeriveKey("P1", salt)
	k2, _ := d.DeriveKey("P2", salt)

	codec := newTestCodec()
	sealed, err := codec.Seal("Day 1", "Had soup", k1)
	require.NoError(t, err)

	_, _, err = codec.Open(sealed, k2)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestEnvelope_NonceNeverRepeats(t *testing.T) {
	codec := NewEnvelopeCodec(NewCipher(), SystemRandom())
	key := testKey(7)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		sealed, err := codec.Seal("t", "b", key)
		require.NoError(t, err)
		require.Len(t, sealed.Nonce, NonceSize)
		require.Len(t, sealed.EntrySalt, EntrySaltLength)

		_, dup := seen[string(sealed.Nonce)]
		require.False(t, dup, "nonce reused at call %d", i)
		seen[string(sealed.Nonce)] = struct{}{}
	}
}

func TestEnvelope_TitleAndBodyShareOneCiphertext(t *testing.T) {
	codec := newTestCodec()
	sealed, err := codec.Seal("Day 1", "Had soup", testKey(1))
	require.NoError(t, err)

	assert.NotContains(t, string(sealed.Ciphertext), "Day 1")
	assert.NotContains(t, string(sealed.Ciphertext), "Had soup")
	// {"title":"Day 1","content":"Had soup"} plus the tag
	assert.Len(t, sealed.Ciphertext, len(`{"title":"Day 1","content":"Had soup"}`)+TagSize)
}

func TestEnvelope_AuthenticNonJSONPayloadFails(t *testing.T) {
	key := testKey(3)
	nonce := testNonce(4)
	ct, err := NewCipher().Encrypt(key, nonce, []byte("not json"))
	require.NoError(t, err)

	_, _, err = newTestCodec().Open(SealedEnvelope{Ciphertext: ct, Nonce: nonce}, key)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestEnvelope_SealFailsOnExhaustedRandom(t *testing.T) {
	codec := NewEnvelopeCodec(NewCipher(), bytes.NewReader(make([]byte, NonceSize)))
	_, err := codec.Seal("t", "b", testKey(1))
	assert.Error(t, err)
}

// ── Encode / Decode ─────────────────────────────────────────────────────────

func TestEncode_Sealed(t *testing.T) {
	sealed, err := newTestCodec().Seal("Day 1", "Had soup", testKey(1))
	require.NoError(t, err)

	fields := Encode(sealed)
	assert.True(t, fields.IsEncrypted)
	assert.Equal(t, EncryptedTitle, fields.Title)
	assert.Empty(t, fields.Body)
	assert.Equal(t, base64.StdEncoding.EncodeToString(sealed.Nonce), fields.Nonce)

	decoded, err := Decode(fields)
	require.NoError(t, err)
	assert.Equal(t, sealed, decoded)
}

func TestEncode_Public(t *testing.T) {
	fields := Encode(PublicEnvelope{Title: "Notice", Body: "Hello world"})
	assert.Equal(t, models.EnvelopeFields{Title: "Notice", Body: "Hello world"}, fields)

	decoded, err := Decode(fields)
	require.NoError(t, err)
	assert.Equal(t, PublicEnvelope{Title: "Notice", Body: "Hello world"}, decoded)
}

func TestDecode_Malformed(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString
	valid := models.EnvelopeFields{
		IsEncrypted: true,
		Title:       EncryptedTitle,
		Ciphertext:  b64(make([]byte, 20)),
		Nonce:       b64(make([]byte, NonceSize)),
		EntrySalt:   b64(make([]byte, EntrySaltLength)),
	}
	_, err := Decode(valid)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(f *models.EnvelopeFields)
	}{
		{"ciphertext not base64", func(f *models.EnvelopeFields) { f.Ciphertext = "***" }},
		{"ciphertext missing", func(f *models.EnvelopeFields) { f.Ciphertext = "" }},
		{"ciphertext shorter than tag", func(f *models.EnvelopeFields) { f.Ciphertext = b64(make([]byte, TagSize-1)) }},
		{"nonce not base64", func(f *models.EnvelopeFields) { f.Nonce = "%%" }},
		{"nonce wrong length", func(f *models.EnvelopeFields) { f.Nonce = b64(make([]byte, 16)) }},
		{"entry salt missing", func(f *models.EnvelopeFields) { f.EntrySalt = "" }},
		{"real title leaked", func(f *models.EnvelopeFields) { f.Title = "Day 1" }},
		{"plaintext body leaked", func(f *models.EnvelopeFields) { f.Body = "Had soup" }},
		{"public with nonce", func(f *models.EnvelopeFields) { f.IsEncrypted = false; f.Ciphertext = ""; f.EntrySalt = "" }},
		{"public with ciphertext", func(f *models.EnvelopeFields) { f.IsEncrypted = false; f.Nonce = ""; f.EntrySalt = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			_, err := Decode(f)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

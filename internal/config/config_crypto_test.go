package config_test

import (
	"os"
	"testing"

	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", "short-key")
		assert.Panics(t, func() { config.InitCrypto() })
	})

	t.Run("ValidKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", testKey)
		assert.NotPanics(t, func() { config.InitCrypto() })
	})
}

func TestEncryptDecrypt(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	config.InitCrypto()

	t.Run("RoundTrip", func(t *testing.T) {
		plaintext := "provider-refresh-token"

		ciphertext, err := config.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := config.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)

		ciphertext2, err := config.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, ciphertext, ciphertext2, "nonce must randomize ciphertexts")
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		require.NoError(t, err)

		decrypted, err := config.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "", decrypted)
	})

	t.Run("Tampered", func(t *testing.T) {
		_, err := config.Decrypt("bm90LXZhbGlkLWNpcGhlcnRleHQ=")
		assert.Error(t, err)
	})
}

func TestQuizRetryInterval(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		os.Unsetenv("RETRY_INTERVAL_SECONDS")
		assert.Equal(t, 86400, config.QuizRetryInterval())
	})

	t.Run("FromEnv", func(t *testing.T) {
		os.Setenv("RETRY_INTERVAL_SECONDS", "3600")
		defer os.Unsetenv("RETRY_INTERVAL_SECONDS")
		assert.Equal(t, 3600, config.QuizRetryInterval())
	})

	t.Run("Invalid", func(t *testing.T) {
		os.Setenv("RETRY_INTERVAL_SECONDS", "-1")
		defer os.Unsetenv("RETRY_INTERVAL_SECONDS")
		assert.Panics(t, func() { config.QuizRetryInterval() })
	})
}

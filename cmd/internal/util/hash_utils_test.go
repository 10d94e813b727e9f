package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== Тесты для хеширования секретов ==========

func TestHashSecret(t *testing.T) {
	t.Run("успешное хеширование секрета", func(t *testing.T) {
		secret := "mysecretvalue123"

		hash, err := HashSecret(secret)

		require.NoError(t, err, "хеширование не должно возвращать ошибку")
		assert.NotEmpty(t, hash, "хеш не должен быть пустым")
		assert.NotEqual(t, secret, hash, "хеш не должен совпадать с исходным секретом")
		assert.True(t, strings.HasPrefix(hash, "$2a$"), "хеш должен начинаться с префикса bcrypt")
	})

	t.Run("разные секреты дают разные хеши", func(t *testing.T) {
		hash1, err1 := HashSecret("secret1")
		hash2, err2 := HashSecret("secret2")

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, hash1, hash2, "разные секреты должны давать разные хеши")
	})

	t.Run("один и тот же секрет дает разные соли", func(t *testing.T) {
		secret := "samesecret"

		hash1, err1 := HashSecret(secret)
		hash2, err2 := HashSecret(secret)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, hash1, hash2, "bcrypt должен генерировать разные соли для одного секрета")
	})
}

func TestCheckSecretHash(t *testing.T) {
	t.Run("корректный секрет проходит проверку", func(t *testing.T) {
		secret := "correctsecret"
		hash, err := HashSecret(secret)
		require.NoError(t, err)

		assert.True(t, CheckSecretHash(secret, hash), "правильный секрет должен пройти проверку")
	})

	t.Run("неверный секрет не проходит проверку", func(t *testing.T) {
		hash, err := HashSecret("correctsecret")
		require.NoError(t, err)

		assert.False(t, CheckSecretHash("wrongsecret", hash), "неверный секрет не должен пройти проверку")
	})

	t.Run("пустой секрет не проходит проверку с реальным хешем", func(t *testing.T) {
		hash, err := HashSecret("realsecret")
		require.NoError(t, err)

		assert.False(t, CheckSecretHash("", hash), "пустой секрет не должен пройти проверку")
	})

	t.Run("проверка с невалидным хешем", func(t *testing.T) {
		assert.False(t, CheckSecretHash("anysecret", "not-a-valid-bcrypt-hash"), "невалидный хеш должен вернуть false")
	})

	t.Run("проверка с пустым хешем", func(t *testing.T) {
		assert.False(t, CheckSecretHash("anysecret", ""), "пустой хеш должен вернуть false")
	})
}

// ========== Тесты для hash_utils.go ==========

func TestGetSHA256Hash(t *testing.T) {
	t.Run("успешное хеширование", func(t *testing.T) {
		hash := GetSHA256Hash([]byte("test bytes for hashing"))

		assert.NotEmpty(t, hash, "хеш не должен быть пустым")
		assert.Equal(t, 64, len(hash), "SHA-256 хеш должен быть 64 символа в hex формате")
	})

	t.Run("одинаковые данные дают одинаковые хеши", func(t *testing.T) {
		data := []byte("consistent data")

		assert.Equal(t, GetSHA256Hash(data), GetSHA256Hash(data), "одинаковые данные должны давать одинаковые хеши")
	})

	t.Run("разные данные дают разные хеши", func(t *testing.T) {
		hash1 := GetSHA256Hash([]byte("data one"))
		hash2 := GetSHA256Hash([]byte("data two"))

		assert.NotEqual(t, hash1, hash2, "разные данные должны давать разные хеши")
	})

	t.Run("пустые данные", func(t *testing.T) {
		hash := GetSHA256Hash(nil)

		// Известный хеш пустого входа в SHA-256
		expectedEmptyHash := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		assert.Equal(t, expectedEmptyHash, hash, "хеш пустого входа должен соответствовать известному значению")
	})

	t.Run("большой вход", func(t *testing.T) {
		data := []byte(strings.Repeat("a", 10000))

		hash := GetSHA256Hash(data)

		assert.Equal(t, 64, len(hash), "хеш большого входа должен быть той же длины")
	})

	t.Run("данные с юникодом", func(t *testing.T) {
		hash := GetSHA256Hash([]byte("Привет мир! 你好世界 🌍"))

		assert.Equal(t, 64, len(hash))
	})
}

// ========== Бенчмарки ==========

func BenchmarkHashSecret(b *testing.B) {
	secret := "benchmarksecret123"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = HashSecret(secret)
	}
}

func BenchmarkGetSHA256Hash(b *testing.B) {
	data := []byte(strings.Repeat("a", 10000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetSHA256Hash(data)
	}
}

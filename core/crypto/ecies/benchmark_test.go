package ecies

import (
	"crypto/rand"
	"fmt"
	"testing"
)

func benchmarkConfigs() map[string]Config {
	return map[string]Config{
		"aes-gcm":    DefaultConfig(),
		"xchacha":    {Cipher: CipherXChaCha20Poly1305},
		"compressed": {EphemeralKeyCompressed: true, HKDFKeyCompressed: true},
	}
}

// BenchmarkEncrypt benchmarks encryption per cipher and payload size
func BenchmarkEncrypt(b *testing.B) {
	privateKey := mustGenerateKey(b)
	defer privateKey.Destroy()

	for name, config := range benchmarkConfigs() {
		engine, err := New(config)
		if err != nil {
			b.Fatalf("New failed: %v", err)
		}

		for _, size := range []int{64, 1024, 64 * 1024, 1024 * 1024} {
			plaintext := make([]byte, size)
			rand.Read(plaintext)

			b.Run(fmt.Sprintf("%s/%s", name, formatSize(size)), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ReportAllocs()

				for b.Loop() {
					if _, err := engine.Encrypt(privateKey.Public(), plaintext); err != nil {
						b.Fatalf("Encryption failed: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkDecrypt benchmarks decryption per cipher and payload size
func BenchmarkDecrypt(b *testing.B) {
	privateKey := mustGenerateKey(b)
	defer privateKey.Destroy()

	for name, config := range benchmarkConfigs() {
		engine, err := New(config)
		if err != nil {
			b.Fatalf("New failed: %v", err)
		}

		for _, size := range []int{64, 1024, 64 * 1024, 1024 * 1024} {
			plaintext := make([]byte, size)
			rand.Read(plaintext)

			ciphertext, err := engine.Encrypt(privateKey.Public(), plaintext)
			if err != nil {
				b.Fatalf("Encryption failed: %v", err)
			}

			b.Run(fmt.Sprintf("%s/%s", name, formatSize(size)), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ReportAllocs()

				for b.Loop() {
					if _, err := engine.Decrypt(privateKey, ciphertext); err != nil {
						b.Fatalf("Decryption failed: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkKeyGeneration benchmarks key pair generation
func BenchmarkKeyGeneration(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		key, err := GenerateKey()
		if err != nil {
			b.Fatalf("Key generation failed: %v", err)
		}
		key.Destroy()
	}
}

// BenchmarkDerivePublicKey benchmarks secret to public key derivation
func BenchmarkDerivePublicKey(b *testing.B) {
	privateKey := mustGenerateKey(b)
	secret := privateKey.Bytes()
	privateKey.Destroy()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := DerivePublicKey(secret); err != nil {
			b.Fatalf("DerivePublicKey failed: %v", err)
		}
	}
}

func formatSize(bytes int) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%dMB", bytes/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%dKB", bytes/1024)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

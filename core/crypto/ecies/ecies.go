// Package ecies implements ECIES over secp256k1.
//
// Envelopes interoperate with eciespy and the ecies Rust crate:
//
//	ephemeral_public_key || nonce || tag || ciphertext
//
// The symmetric key is HKDF-SHA256 over ephemeral_public_key || shared_point
// and seals with AES-256-GCM (16-byte nonce by default) or XChaCha20-Poly1305.
//
//	key, err := ecies.GenerateKey()
//	if err != nil {
//		return err
//	}
//	defer key.Destroy()
//
//	envelope, err := ecies.Encrypt(key.Public(), []byte("hello"))
//	if err != nil {
//		return err
//	}
//	plaintext, err := ecies.Decrypt(key, envelope)
//
// Other layouts go through an Engine:
//
//	engine, err := ecies.New(ecies.Config{
//		Cipher:      ecies.CipherXChaCha20Poly1305,
//		NonceLength: ecies.XChaCha20NonceSize,
//	})
package ecies

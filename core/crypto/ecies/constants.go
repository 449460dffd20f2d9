package ecies

// Curve parameters for the secp256k1 elliptic curve
const (
	// CurvePointSize is the size in bytes of each coordinate (X or Y) on secp256k1
	CurvePointSize = 32

	// SecretKeySize is the size of a serialized secret scalar
	SecretKeySize = 32

	// Point compression prefixes
	UncompressedPointTag = 0x04 // Uncompressed point format: 0x04 || X || Y
	CompressedEvenTag    = 0x02 // Compressed point with even Y coordinate
	CompressedOddTag     = 0x03 // Compressed point with odd Y coordinate
)

// Public key encodings
const (
	// PublicKeyBytes is the size of an uncompressed public key in bytes
	// Format: [tag:1][X:32][Y:32]
	PublicKeyBytes = 1 + CurvePointSize + CurvePointSize // 65 bytes

	// CompressedPublicKeyBytes is the size of a compressed public key in bytes
	// Format: [tag:1][X:32]
	CompressedPublicKeyBytes = 1 + CurvePointSize // 33 bytes
)

// Symmetric encryption parameters
const (
	// SymmetricKeySize is the size of the derived AEAD key
	SymmetricKeySize = 32 // 256 bits

	// AESGCMNonceSize is the default AES-GCM nonce (IV) size
	AESGCMNonceSize = 16 // 128 bits

	// AESGCMStandardNonceSize is the 96-bit nonce accepted as an alternative
	AESGCMStandardNonceSize = 12

	// XChaCha20NonceSize is the XChaCha20-Poly1305 nonce size
	XChaCha20NonceSize = 24

	// TagSize is the authentication tag size of both supported AEADs
	TagSize = 16 // 128 bits
)

// maxKeyDraws bounds rejection sampling when generating a scalar. A healthy
// entropy source needs more than one draw with probability below 2^-127.
const maxKeyDraws = 8

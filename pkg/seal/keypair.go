package seal

import (
	"crypto/ed25519"
	"io"

	"github.com/tyler-smith/go-bip39"
)

// Keypair is a wallet's private key and its public key.
type Keypair struct {
	Private *PrivateKey
	Public  PublicKey
}

// NewKeypair generates a random keypair, reading entropy from rand.
func NewKeypair(rand io.Reader) (*Keypair, error) {
	_, k, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, err
	}

	return NewKeypairFromSeed(k.Seed())
}

// NewKeypairFromSeed returns the keypair for the given 32-byte seed.
func NewKeypairFromSeed(seed []byte) (*Keypair, error) {
	pk, err := NewPrivateKeyFromSeed(seed)
	if err != nil {
		return nil, err
	}

	return &Keypair{Private: pk, Public: pk.PublicKey()}, nil
}

// NewMnemonic returns a new BIP-39 mnemonic with the given bits of entropy, which must be a
// multiple of 32 between 128 and 256.
func NewMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", err
	}

	return bip39.NewMnemonic(entropy)
}

// KeypairFromMnemonic derives a keypair from a BIP-39 mnemonic and optional passphrase. The seed
// of the keypair is the first 32 bytes of the BIP-39 seed, matching wallets that derive a key
// without a derivation path.
func KeypairFromMnemonic(mnemonic, passphrase string) (*Keypair, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, invalidKey("invalid mnemonic", err)
	}

	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()

	return NewKeypairFromSeed(seed[:SeedSize])
}

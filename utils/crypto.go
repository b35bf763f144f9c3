package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// AddressFromSigningKey derives the wallet address controlled by a hex
// encoded ECDSA signing key. The key itself must never be logged.
func AddressFromSigningKey(signingKey string) (common.Address, error) {
	privKey, err := crypto.HexToECDSA(strings.TrimPrefix(signingKey, "0x"))
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(privKey.PublicKey), nil
}

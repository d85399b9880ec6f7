package generator

import (
	"math/big"
	"math/rand"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"golang.org/x/crypto/sha3"

	"ABIProbe/schema"
)

// Fixed values used on the safe path. These must stay stable: repeated
// synthesis of the same schema has to produce identical argument
// values.
var (
	safeAmount  = new(big.Int).SetUint64(params.Ether) // one token unit at 18 decimals
	safeAddress = common.HexToAddress("0x0000000000000000000000000000000000000001")
)

const safeString = "test"

const fuzzTokenChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// keccak hashes data with the same Keccak-256 the chain uses.
func keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// safeValue returns a conservative, deterministic argument for the
// given type tag. Unrecognized tags fail closed to the "0" placeholder
// rather than erroring.
func safeValue(tag schema.TypeTag) interface{} {
	switch tag.Kind {
	case schema.KindUint:
		if tag.Bits <= 8 {
			return big.NewInt(1)
		}
		if tag.Bits >= 64 {
			return new(big.Int).Set(safeAmount)
		}
		return big.NewInt(1)
	case schema.KindInt:
		return big.NewInt(1)
	case schema.KindAddress:
		return safeAddress
	case schema.KindBool:
		return true
	case schema.KindString:
		return safeString
	case schema.KindFixedBytes:
		b := make([]byte, tag.Size)
		b[0] = 0x01
		return b
	case schema.KindDynamicBytes:
		return keccak([]byte(safeString))
	default:
		return "0"
	}
}

// boundaryValue returns the extreme representable value for integer
// tags: zero / signed minimum on the min pass, the maximum for the
// declared width on the max pass. Non-integer tags fall back to the
// safe value regardless of pass.
func boundaryValue(tag schema.TypeTag, max bool) interface{} {
	switch tag.Kind {
	case schema.KindUint:
		if max {
			return maxUint(tag.Bits)
		}
		return big.NewInt(0)
	case schema.KindInt:
		if max {
			return maxInt(tag.Bits)
		}
		return minInt(tag.Bits)
	default:
		return safeValue(tag)
	}
}

// maxUint computes 2^bits - 1.
func maxUint(bits int) *big.Int {
	v := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return v.Sub(v, big.NewInt(1))
}

// maxInt computes 2^(bits-1) - 1.
func maxInt(bits int) *big.Int {
	v := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	return v.Sub(v, big.NewInt(1))
}

// minInt computes -2^(bits-1).
func minInt(bits int) *big.Int {
	v := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	return v.Neg(v)
}

// fuzzValue returns a freshly sampled argument for the given type tag.
// This path is intentionally non-deterministic.
func fuzzValue(tag schema.TypeTag, rng *rand.Rand) interface{} {
	switch tag.Kind {
	case schema.KindUint:
		if tag.Bits <= 8 {
			return big.NewInt(rng.Int63n(256))
		}
		// Unit scaling needs about 70 bits of headroom, so narrower
		// widths take the raw sample to stay inside their range.
		if tag.Bits >= 128 {
			v := big.NewInt(rng.Int63n(1000))
			return v.Mul(v, new(big.Int).SetUint64(params.Ether))
		}
		return big.NewInt(rng.Int63n(1000))
	case schema.KindInt:
		bound := int64(1000)
		if tag.Bits <= 8 {
			bound = 128
		}
		return big.NewInt(rng.Int63n(2*bound) - bound)
	case schema.KindAddress:
		return randomAddress(rng)
	case schema.KindBool:
		return rng.Intn(2) == 0
	case schema.KindString:
		return randomToken(rng, 8)
	case schema.KindFixedBytes:
		if tag.Size == 32 {
			return keccak(randomBytes(rng, 16))
		}
		return randomBytes(rng, tag.Size)
	case schema.KindDynamicBytes:
		return randomBytes(rng, 32)
	default:
		return "0"
	}
}

// randomAddress derives an address from a fresh secp256k1 key so the
// result is a well-formed account address, not just random bytes.
func randomAddress(rng *rand.Rand) common.Address {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		var addr common.Address
		rng.Read(addr[:])
		return addr
	}
	return crypto.PubkeyToAddress(priv.ToECDSA().PublicKey)
}

func randomToken(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = fuzzTokenChars[rng.Intn(len(fuzzTokenChars))]
	}
	return string(b)
}

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

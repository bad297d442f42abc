package domain

import (
	"fmt"
	"strings"
)

// AssetKind discriminates the two ways value can move: the chain-native
// currency, or a fungible token contract.
type AssetKind string

const (
	AssetKindNative AssetKind = "NATIVE"
	AssetKindToken  AssetKind = "TOKEN"
)

// nativeSymbol is the canonical string form of the native asset.
const nativeSymbol = "native"

// Asset is a tagged variant: either the native currency or a fungible
// token identified by its contract address. Keeping the two cases apart
// at the type level confines the native/token branch to the transfer
// adapter.
type Asset struct {
	Kind    AssetKind `json:"kind"`
	Address string    `json:"address,omitempty"` // Empty for native
}

// NativeAsset returns the native currency asset.
func NativeAsset() Asset {
	return Asset{Kind: AssetKindNative}
}

// TokenAsset returns a fungible token asset for the given contract address.
func TokenAsset(address string) Asset {
	return Asset{Kind: AssetKindToken, Address: strings.ToLower(address)}
}

// ParseAsset parses the canonical string form: "native" or a token address.
func ParseAsset(s string) (Asset, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Asset{}, fmt.Errorf("empty asset identifier")
	}
	if s == nativeSymbol {
		return NativeAsset(), nil
	}
	return TokenAsset(s), nil
}

// IsZeroAddress reports whether a bridge account string is absent or
// the all-zero placeholder. Such addresses never receive funds.
func IsZeroAddress(addr string) bool {
	addr = strings.TrimSpace(strings.ToLower(addr))
	if addr == "" {
		return true
	}
	trimmed := strings.TrimPrefix(addr, "0x")
	if trimmed == "" {
		return true
	}
	return strings.Trim(trimmed, "0") == ""
}

// IsNative reports whether the asset is the native currency.
func (a Asset) IsNative() bool {
	return a.Kind == AssetKindNative
}

// String returns the canonical string form, used as the storage key.
func (a Asset) String() string {
	if a.IsNative() {
		return nativeSymbol
	}
	return a.Address
}

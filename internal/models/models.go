package models

// ChainKey identifies a supported blockchain in the static chain table.
// Keys are lowercase and match what users type when prompted for a chain.
type ChainKey string

const (
	Ethereum ChainKey = "ethereum"
	BSC      ChainKey = "bsc"
	Polygon  ChainKey = "polygon"
	Bitcoin  ChainKey = "bitcoin"
)

func (c ChainKey) String() string {
	return string(c)
}

// ChainKind selects the balance-query wire shape for a chain.
type ChainKind string

const (
	// KindNativeCoin is a blockchair-style explorer returning a nested
	// minor-unit integer balance (e.g. satoshis).
	KindNativeCoin ChainKind = "native"

	// KindAccount is an etherscan-style explorer returning a flat
	// minor-unit integer string (e.g. wei).
	KindAccount ChainKind = "account"
)

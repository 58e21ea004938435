package common

type Network string

const (
	NetworkMainnet  Network = "mainnet"
	NetworkDevnet   Network = "devnet"
	NetworkLocalnet Network = "localnet"
)

var supportedNetworks = map[Network]struct{}{
	NetworkMainnet:  {},
	NetworkDevnet:   {},
	NetworkLocalnet: {},
}

func (n Network) IsSupported() bool {
	_, ok := supportedNetworks[n]
	return ok
}

func (n Network) String() string {
	return string(n)
}

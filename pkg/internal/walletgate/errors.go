package walletgate

import "fmt"

// WalletError is the device-level error taxonomy shared with the wallet
// storage layer. Only RNG failure originates here, but the full set is
// defined in one place so the host-device layer maps every code uniformly.
type WalletError uint8

const (
	WalletNoError WalletError = iota
	WalletFull
	WalletEmpty
	WalletReadError
	WalletWriteError
	WalletAddressNotFound
	WalletNotThere
	WalletNotLoaded
	WalletInvalidHandle
	WalletBackupError
	WalletRNGFailure
	WalletInvalidWalletNum
	WalletInvalidOperation
	WalletAlreadyExists
)

var walletErrorText = map[WalletError]string{
	WalletNoError:          "no error",
	WalletFull:             "insufficient space on non-volatile storage",
	WalletEmpty:            "no addresses in wallet",
	WalletReadError:        "error reading from non-volatile storage",
	WalletWriteError:       "error writing to non-volatile storage",
	WalletAddressNotFound:  "address not in wallet",
	WalletNotThere:         "no wallet at the specified location",
	WalletNotLoaded:        "no wallet loaded",
	WalletInvalidHandle:    "invalid address handle",
	WalletBackupError:      "backup seed could not be written",
	WalletRNGFailure:       "problem with random number generation system",
	WalletInvalidWalletNum: "invalid wallet number",
	WalletInvalidOperation: "operation not allowed on this wallet type",
	WalletAlreadyExists:    "wallet already exists at the specified location",
}

// Error implements the error interface; WalletNoError still formats, but is
// never returned as an error value.
func (e WalletError) Error() string {
	if s, ok := walletErrorText[e]; ok {
		return s
	}
	return fmt.Sprintf("unknown wallet error %d", uint8(e))
}

// ErrRNGFailure is the sentinel returned whenever key generation is refused
// because the noise source failed its statistical acceptance. Callers use
// errors.Is against it; the wrapped message names the failing test.
var ErrRNGFailure error = WalletRNGFailure

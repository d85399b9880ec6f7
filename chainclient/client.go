// Package chainclient abstracts the transport used to exercise a
// deployed contract: submit a call, await its confirmation, probe for
// code. Execution logic only ever sees this narrow surface, so a
// deterministic in-memory implementation can stand in for a live node.
package chainclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"ABIProbe/schema"
)

// Handle tracks one submitted call until confirmation. Read-only calls
// complete at submit time; write calls carry the transaction hash to
// await.
type Handle struct {
	TxHash common.Hash
	Done   bool
}

// Client is the chain-client capability. One client is bound to one
// endpoint and one target contract interface at a time.
type Client interface {
	// SubmitCall packs and submits a contract call. For read-only
	// methods the call is evaluated immediately; for mutating methods
	// a signed transaction is broadcast.
	SubmitCall(ctx context.Context, to common.Address, method string, args []interface{}) (*Handle, error)

	// AwaitConfirmation blocks until the submitted call is finalized
	// or faults. Cancellation arrives through ctx.
	AwaitConfirmation(ctx context.Context, h *Handle) error

	// GetCode returns the deployed bytecode at addr, used for
	// existence probing.
	GetCode(ctx context.Context, addr common.Address) ([]byte, error)

	// Close releases the underlying connection.
	Close()
}

// BuildABI assembles a go-ethereum ABI from successfully parsed
// function descriptors. Building from the parsed form rather than the
// raw input keeps entries that were skipped during parsing from
// breaking packing later.
func BuildABI(fns []schema.FunctionDescriptor) (abi.ABI, error) {
	type abiInput struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	type abiEntry struct {
		Type            string     `json:"type"`
		Name            string     `json:"name"`
		StateMutability string     `json:"stateMutability"`
		Inputs          []abiInput `json:"inputs"`
	}

	entries := make([]abiEntry, 0, len(fns))
	for _, fd := range fns {
		e := abiEntry{
			Type:            "function",
			Name:            fd.Name,
			StateMutability: fd.StateMutability,
			Inputs:          []abiInput{},
		}
		for _, in := range fd.Inputs {
			e.Inputs = append(e.Inputs, abiInput{Name: in.Name, Type: in.Type})
		}
		entries = append(entries, e)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to assemble interface: %w", err)
	}
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse assembled interface: %w", err)
	}
	return parsed, nil
}

// coerceArgs converts generated argument values into the shapes the
// abi encoder expects: byte slices into fixed-size arrays, placeholder
// strings into zero integers. Anything it cannot coerce is passed
// through and surfaces as a pack error, which the executor records as
// a step fault.
func coerceArgs(method abi.Method, args []interface{}) []interface{} {
	out := make([]interface{}, len(args))
	for i, arg := range args {
		if i < len(method.Inputs) {
			out[i] = coerceArg(method.Inputs[i].Type, arg)
		} else {
			out[i] = arg
		}
	}
	return out
}

func coerceArg(t abi.Type, v interface{}) interface{} {
	switch t.T {
	case abi.FixedBytesTy:
		if b, ok := v.([]byte); ok {
			arr := reflect.New(t.GetType()).Elem()
			reflect.Copy(arr, reflect.ValueOf(b))
			return arr.Interface()
		}
	case abi.UintTy, abi.IntTy:
		b, ok := v.(*big.Int)
		if !ok {
			s, sok := v.(string)
			if !sok {
				return v
			}
			if b, ok = new(big.Int).SetString(s, 10); !ok {
				b = big.NewInt(0)
			}
		}
		return coerceInt(t, b)
	}
	return v
}

// coerceInt shapes a big integer into the native Go type the encoder
// expects for the declared width: the encoder takes *big.Int only for
// widths above 64 bits (and the in-between widths like uint24), native
// uint8/int32/uint64/... below that. Values that do not fit the native
// type are passed through unchanged and surface as a pack error.
func coerceInt(t abi.Type, b *big.Int) interface{} {
	rt := t.GetType()
	if rt.Kind() == reflect.Ptr {
		return b
	}
	val := reflect.New(rt).Elem()
	switch rt.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if b.Sign() < 0 || !b.IsUint64() || val.OverflowUint(b.Uint64()) {
			return b
		}
		val.SetUint(b.Uint64())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !b.IsInt64() || val.OverflowInt(b.Int64()) {
			return b
		}
		val.SetInt(b.Int64())
	default:
		return b
	}
	return val.Interface()
}

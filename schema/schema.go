package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TagKind classifies a parameter type into the vocabulary the value
// generators understand.
type TagKind int

const (
	KindUnknown TagKind = iota
	KindUint
	KindInt
	KindAddress
	KindBool
	KindString
	KindFixedBytes
	KindDynamicBytes
)

// TypeTag is the resolved classification of a Solidity type string.
// Bits is the declared width for integer kinds, Size the byte length
// for fixed-bytes kinds.
type TypeTag struct {
	Kind TagKind
	Bits int
	Size int
}

// IsInteger reports whether the tag is a signed or unsigned integer.
func (t TypeTag) IsInteger() bool {
	return t.Kind == KindUint || t.Kind == KindInt
}

// InputParameter describes one function input as declared in the
// contract interface.
type InputParameter struct {
	Name string
	Type string
	Tag  TypeTag
}

// FunctionDescriptor describes one callable function of the contract.
// It is immutable once parsed.
type FunctionDescriptor struct {
	Name            string
	StateMutability string
	Inputs          []InputParameter
}

// ReadOnly reports whether calling the function cannot change state.
func (fd FunctionDescriptor) ReadOnly() bool {
	return fd.StateMutability == "view" || fd.StateMutability == "pure"
}

// HasIntegerInput reports whether any input is integer-typed.
func (fd FunctionDescriptor) HasIntegerInput() bool {
	for _, in := range fd.Inputs {
		if in.Tag.IsInteger() {
			return true
		}
	}
	return false
}

// Signature returns the canonical method signature, e.g.
// "transfer(address,uint256)".
func (fd FunctionDescriptor) Signature() string {
	types := make([]string, len(fd.Inputs))
	for i, in := range fd.Inputs {
		types[i] = in.Type
	}
	return fmt.Sprintf("%s(%s)", fd.Name, strings.Join(types, ","))
}

// ParseResult carries the usable functions plus the reasons for any
// entries that had to be skipped.
type ParseResult struct {
	Functions []FunctionDescriptor
	Skipped   []string
}

// rawEntry mirrors one element of the JSON interface description.
type rawEntry struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	StateMutability string `json:"stateMutability"`
	Inputs          []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"inputs"`
}

// Parse decodes a contract interface description into function
// descriptors. The input must be a JSON array; anything else is a
// fatal parse error. Individual entries are decoded independently:
// non-function entries are ignored and malformed entries are skipped
// with a recorded reason, so one bad entry never loses the rest.
func Parse(raw []byte) (*ParseResult, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("interface description is not a JSON array: %w", err)
	}

	result := &ParseResult{}
	for i, data := range entries {
		var e rawEntry
		if err := json.Unmarshal(data, &e); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		if e.Type != "function" {
			continue
		}
		if e.Name == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("entry %d: function without a name", i))
			continue
		}
		fd, err := toDescriptor(e)
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("entry %d (%s): %v", i, e.Name, err))
			continue
		}
		result.Functions = append(result.Functions, fd)
	}
	return result, nil
}

func toDescriptor(e rawEntry) (FunctionDescriptor, error) {
	fd := FunctionDescriptor{
		Name:            e.Name,
		StateMutability: e.StateMutability,
	}
	if fd.StateMutability == "" {
		fd.StateMutability = "nonpayable"
	}
	for i, in := range e.Inputs {
		if in.Type == "" {
			return FunctionDescriptor{}, fmt.Errorf("input %d has no type tag", i)
		}
		fd.Inputs = append(fd.Inputs, InputParameter{
			Name: in.Name,
			Type: in.Type,
			Tag:  ParseTypeTag(in.Type),
		})
	}
	return fd, nil
}

// ParseTypeTag resolves a Solidity type string to a TypeTag. Types
// outside the supported vocabulary resolve to KindUnknown so that
// value generation can fail closed instead of erroring.
func ParseTypeTag(typ string) TypeTag {
	switch typ {
	case "address":
		return TypeTag{Kind: KindAddress}
	case "bool":
		return TypeTag{Kind: KindBool}
	case "string":
		return TypeTag{Kind: KindString}
	case "bytes":
		return TypeTag{Kind: KindDynamicBytes}
	case "uint":
		return TypeTag{Kind: KindUint, Bits: 256}
	case "int":
		return TypeTag{Kind: KindInt, Bits: 256}
	}

	if n, ok := parseSized(typ, "uint"); ok && validBits(n) {
		return TypeTag{Kind: KindUint, Bits: n}
	}
	if n, ok := parseSized(typ, "int"); ok && validBits(n) {
		return TypeTag{Kind: KindInt, Bits: n}
	}
	if n, ok := parseSized(typ, "bytes"); ok && n >= 1 && n <= 32 {
		return TypeTag{Kind: KindFixedBytes, Size: n}
	}
	return TypeTag{Kind: KindUnknown}
}

func parseSized(typ, prefix string) (int, bool) {
	if !strings.HasPrefix(typ, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(typ[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}

func validBits(n int) bool {
	return n >= 8 && n <= 256 && n%8 == 0
}

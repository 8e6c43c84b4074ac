// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the distinct ways a class file can fail to parse.
type ErrorKind int

const (
	// KindUnexpectedEOF is returned when fewer bytes remain than a read requires.
	KindUnexpectedEOF ErrorKind = iota
	KindInvalidMagicNumber
	KindUnsupportedMajorVersion
	KindUnsupportedMinorVersion
	KindTagNotSupported
	KindUnknownOpcode
	KindInvalidStackMapFrameType
	KindInvalidVerificationType
	KindInvalidAttributeSize
	KindInvalidSourceFileString
	KindNoOpeningBracket
	KindNoClosingBracket
	KindNoSemicolon
	KindInvalidDescriptor
	KindIndexOutOfBounds
	KindUnusableConstant
	KindUnexpectedConstant
	KindMismatchedConstantType
	KindCesu8DecodingError
)

// Errors with no payload beyond a fixed message use plain sentinels.
var (
	ErrUnexpectedEOF          = errors.New("end of file encountered unexpectedly")
	ErrNoOpeningBracket       = errors.New("method descriptor is missing its opening bracket")
	ErrNoClosingBracket       = errors.New("method descriptor is missing its closing bracket")
	ErrNoSemicolon            = errors.New("object descriptor is missing its terminating semicolon")
	ErrUnexpectedEndOfStream  = errors.New("descriptor stream ended before a type could be parsed")
)

// ClassFormatError is returned for every condition that carries identifying
// payload (an offending byte, index, or name) alongside its Kind.
type ClassFormatError struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e *ClassFormatError) Error() string { return e.msg }

func (e *ClassFormatError) Unwrap() error { return e.err }

func newErr(kind ErrorKind, format string, args ...interface{}) *ClassFormatError {
	return &ClassFormatError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapErr(kind ErrorKind, err error, format string, args ...interface{}) *ClassFormatError {
	return &ClassFormatError{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func errInvalidMagicNumber(actual uint32) error {
	return newErr(KindInvalidMagicNumber, "invalid magic number: 0x%08X", actual)
}

func errUnsupportedMajorVersion(major uint16) error {
	return newErr(KindUnsupportedMajorVersion, "unsupported major version %d", major)
}

func errUnsupportedMinorVersion(major, minor uint16) error {
	return newErr(KindUnsupportedMinorVersion, "unsupported minor version %d for major version %d", minor, major)
}

func errTagNotSupported(tag uint8) error {
	return newErr(KindTagNotSupported, "constant pool tag not supported: %d", tag)
}

func errUnknownOpcode(opcode uint8) error {
	return newErr(KindUnknownOpcode, "unknown opcode: 0x%02X", opcode)
}

func errInvalidStackMapFrameType(frameType uint8) error {
	return newErr(KindInvalidStackMapFrameType, "frame type %d is not supported", frameType)
}

func errInvalidVerificationType(tag uint8) error {
	return newErr(KindInvalidVerificationType, "invalid verification type tag %d", tag)
}

func errInvalidAttributeSize(actual, expected uint32) error {
	return newErr(KindInvalidAttributeSize, "invalid attribute data size %d, expected %d", actual, expected)
}

func errInvalidSourceFileString(actual string) error {
	return newErr(KindInvalidSourceFileString,
		"sourcefile_index of the SourceFile attribute must refer to a Utf8 constant: %s", actual)
}

func errInvalidDescriptor(r rune) error {
	return newErr(KindInvalidDescriptor, "invalid descriptor character: %q", r)
}

func errIndexOutOfBounds(index uint16) error {
	return newErr(KindIndexOutOfBounds, "constant pool index out of bounds: %d", index)
}

func errUnusableConstant(index uint16) error {
	return newErr(KindUnusableConstant, "constant pool index %d refers to the trailing half of a long or double", index)
}

func errUnexpectedConstant(expected, actual string) error {
	return newErr(KindUnexpectedConstant, "unexpected constant: expected %s, found %s", expected, actual)
}

func errMismatchedConstantType(fieldType string, index uint16) error {
	return newErr(KindMismatchedConstantType, "mismatched constant type for field type %s at index %d", fieldType, index)
}

func errCesu8Decoding(cause error) error {
	return wrapErr(KindCesu8DecodingError, cause, "error reading modified utf-8 bytes: %v", cause)
}

// ContextualError wraps the first error encountered during a parse with a
// snippet of the bytes around the cursor's position when it failed.
type ContextualError struct {
	Err     error
	Snippet []byte
}

func (e *ContextualError) Error() string {
	return fmt.Sprintf("%v (near bytes % X)", e.Err, e.Snippet)
}

func (e *ContextualError) Unwrap() error { return e.Err }

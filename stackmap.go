// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Verification type tags, JVMS 4.7.4.
const (
	VerifTop               uint8 = 0
	VerifInteger           uint8 = 1
	VerifFloat             uint8 = 2
	VerifDouble            uint8 = 3
	VerifLong              uint8 = 4
	VerifNull              uint8 = 5
	VerifUninitializedThis uint8 = 6
	VerifObject            uint8 = 7
	VerifUninitialized     uint8 = 8
)

// VerificationTypeInfo describes the type of one local variable or operand
// stack entry within a stack map frame.
type VerificationTypeInfo struct {
	Tag uint8

	// CPoolIndex is populated only when Tag == VerifObject, naming the
	// class of the object.
	CPoolIndex uint16

	// Offset is populated only when Tag == VerifUninitialized, giving
	// the bytecode offset of the "new" instruction that created the
	// not-yet-initialized object.
	Offset uint16
}

func readVerificationTypeInfo(c *ByteCursor) (VerificationTypeInfo, error) {
	tag, err := c.ReadU8()
	if err != nil {
		return VerificationTypeInfo{}, err
	}
	switch tag {
	case VerifTop, VerifInteger, VerifFloat, VerifDouble, VerifLong, VerifNull, VerifUninitializedThis:
		return VerificationTypeInfo{Tag: tag}, nil
	case VerifObject:
		idx, err := c.ReadU16()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Tag: tag, CPoolIndex: idx}, nil
	case VerifUninitialized:
		off, err := c.ReadU16()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Tag: tag, Offset: off}, nil
	default:
		return VerificationTypeInfo{}, errInvalidVerificationType(tag)
	}
}

// StackMapFrame is one entry of a StackMapTable attribute, JVMS 4.7.4. Only
// the fields relevant to FrameType's category are populated.
type StackMapFrame struct {
	FrameType uint8

	// OffsetDelta is explicit for every frame type except SameFrame
	// (0-63), where it equals FrameType itself, and
	// SameLocals1StackItemFrame (64-127), where it equals FrameType - 64.
	OffsetDelta uint16

	// Locals is populated for AppendFrame and FullFrame.
	Locals []VerificationTypeInfo

	// Stack is populated for SameLocals1StackItemFrame(Extended) and
	// FullFrame.
	Stack []VerificationTypeInfo
}

// Frame type ranges, JVMS 4.7.4.
const (
	frameSameMax                       = 63
	frameSameLocals1StackItemMin       = 64
	frameSameLocals1StackItemMax       = 127
	frameSameLocals1StackItemExtended  = 247
	frameChopMin                       = 248
	frameChopMax                       = 250
	frameSameFrameExtended             = 251
	frameAppendMin                     = 252
	frameAppendMax                     = 254
	frameFull                          = 255
)

func readStackMapFrame(c *ByteCursor) (*StackMapFrame, error) {
	frameType, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	switch {
	case frameType <= frameSameMax:
		return &StackMapFrame{FrameType: frameType, OffsetDelta: uint16(frameType)}, nil

	case frameType >= frameSameLocals1StackItemMin && frameType <= frameSameLocals1StackItemMax:
		item, err := readVerificationTypeInfo(c)
		if err != nil {
			return nil, err
		}
		return &StackMapFrame{
			FrameType:   frameType,
			OffsetDelta: uint16(frameType) - frameSameLocals1StackItemMin,
			Stack:       []VerificationTypeInfo{item},
		}, nil

	case frameType == frameSameLocals1StackItemExtended:
		delta, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		item, err := readVerificationTypeInfo(c)
		if err != nil {
			return nil, err
		}
		return &StackMapFrame{FrameType: frameType, OffsetDelta: delta, Stack: []VerificationTypeInfo{item}}, nil

	case frameType >= frameChopMin && frameType <= frameChopMax:
		delta, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		return &StackMapFrame{FrameType: frameType, OffsetDelta: delta}, nil

	case frameType == frameSameFrameExtended:
		delta, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		return &StackMapFrame{FrameType: frameType, OffsetDelta: delta}, nil

	case frameType >= frameAppendMin && frameType <= frameAppendMax:
		delta, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		count := int(frameType) - frameAppendMin + 1
		locals := make([]VerificationTypeInfo, count)
		for i := range locals {
			locals[i], err = readVerificationTypeInfo(c)
			if err != nil {
				return nil, err
			}
		}
		return &StackMapFrame{FrameType: frameType, OffsetDelta: delta, Locals: locals}, nil

	case frameType == frameFull:
		delta, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		numLocals, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		locals := make([]VerificationTypeInfo, numLocals)
		for i := range locals {
			locals[i], err = readVerificationTypeInfo(c)
			if err != nil {
				return nil, err
			}
		}
		numStack, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		stack := make([]VerificationTypeInfo, numStack)
		for i := range stack {
			stack[i], err = readVerificationTypeInfo(c)
			if err != nil {
				return nil, err
			}
		}
		return &StackMapFrame{FrameType: frameType, OffsetDelta: delta, Locals: locals, Stack: stack}, nil

	default:
		return nil, errInvalidStackMapFrameType(frameType)
	}
}

func readStackMapTable(c *ByteCursor) ([]*StackMapFrame, error) {
	count, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	frames := make([]*StackMapFrame, count)
	for i := range frames {
		frames[i], err = readStackMapFrame(c)
		if err != nil {
			return nil, err
		}
	}
	return frames, nil
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Attribute is the sum type of every attribute_info entry a class, field,
// method, or Code attribute can carry, JVMS 4.7.
type Attribute interface {
	attributeName() string
}

func readAttributes(c *ByteCursor, cp *ConstantPool, opts *Options) ([]Attribute, error) {
	count, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, count)
	for i := range attrs {
		attrs[i], err = readAttribute(c, cp, opts)
		if err != nil {
			return nil, err
		}
	}
	return attrs, nil
}

// isDebugAttribute reports whether name is one of the attributes whose only
// consumer is a source-level debugger.
func isDebugAttribute(name string) bool {
	switch name {
	case AttrLineNumberTable, AttrLocalVariableTable, AttrLocalVariableTypeTable:
		return true
	default:
		return false
	}
}

func readAttribute(c *ByteCursor, cp *ConstantPool, opts *Options) (Attribute, error) {
	nameIndex, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	name, err := cp.Utf8At(nameIndex)
	if err != nil {
		return nil, err
	}
	length, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if opts.MaxAttributeLength != 0 && length > opts.MaxAttributeLength {
		return nil, errInvalidAttributeSize(length, opts.MaxAttributeLength)
	}
	if opts.SkipDebugAttributes && isDebugAttribute(name) {
		return readRawAttribute(c, name, length)
	}
	start := c.Pos()

	var attr Attribute
	switch name {
	case AttrConstantValue:
		idx, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		attr = ConstantValueAttribute{ConstantValueIndex: idx}

	case AttrCode:
		if opts.SkipCode {
			return readRawAttribute(c, name, length)
		}
		attr, err = readCodeAttribute(c, cp, opts)
		if err != nil {
			return nil, err
		}

	case AttrStackMapTable:
		entries, err := readStackMapTable(c)
		if err != nil {
			return nil, err
		}
		attr = StackMapTableAttribute{Entries: entries}

	case AttrLineNumberTable:
		n, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		entries := make([]LineNumberEntry, n)
		for i := range entries {
			startPC, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			line, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			entries[i] = LineNumberEntry{StartPC: startPC, LineNumber: line}
		}
		attr = LineNumberTableAttribute{Entries: entries}

	case AttrLocalVariableTable:
		n, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		entries := make([]LocalVariableEntry, n)
		for i := range entries {
			entries[i], err = readLocalVariableEntry(c)
			if err != nil {
				return nil, err
			}
		}
		attr = LocalVariableTableAttribute{Entries: entries}

	case AttrLocalVariableTypeTable:
		n, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		entries := make([]LocalVariableTypeEntry, n)
		for i := range entries {
			startPC, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			l, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			nameIdx, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			sigIdx, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			index, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			entries[i] = LocalVariableTypeEntry{
				StartPC: startPC, Length: l, NameIndex: nameIdx,
				SignatureIndex: sigIdx, Index: index,
			}
		}
		attr = LocalVariableTypeTableAttribute{Entries: entries}

	case AttrBootstrapMethods:
		n, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		methods := make([]BootstrapMethod, n)
		for i := range methods {
			ref, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			argc, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			args := make([]uint16, argc)
			for j := range args {
				args[j], err = c.ReadU16()
				if err != nil {
					return nil, err
				}
			}
			methods[i] = BootstrapMethod{MethodRefIndex: ref, Arguments: args}
		}
		attr = BootstrapMethodsAttribute{Methods: methods}

	case AttrNestHost:
		idx, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		attr = NestHostAttribute{HostClassIndex: idx}

	case AttrNestMembers:
		classes, err := readU16List(c)
		if err != nil {
			return nil, err
		}
		attr = NestMembersAttribute{Classes: classes}

	case AttrPermittedSubclasses:
		classes, err := readU16List(c)
		if err != nil {
			return nil, err
		}
		attr = PermittedSubclassesAttribute{Classes: classes}

	case AttrSourceFile:
		idx, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		if _, err := cp.Utf8At(idx); err != nil {
			return nil, errInvalidSourceFileString(err.Error())
		}
		attr = SourceFileAttribute{SourceFileIndex: idx}

	default:
		return readRawAttribute(c, name, length)
	}

	consumed := uint32(c.Pos() - start)
	if consumed != length {
		return nil, errInvalidAttributeSize(consumed, length)
	}
	return attr, nil
}

// readRawAttribute reads length body bytes verbatim into a RawAttribute
// holding its own copy of them.
func readRawAttribute(c *ByteCursor, name string, length uint32) (Attribute, error) {
	data, err := c.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return RawAttribute{Name: name, Data: owned}, nil
}

func readLocalVariableEntry(c *ByteCursor) (LocalVariableEntry, error) {
	startPC, err := c.ReadU16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	length, err := c.ReadU16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	nameIdx, err := c.ReadU16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	descIdx, err := c.ReadU16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	index, err := c.ReadU16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	return LocalVariableEntry{
		StartPC: startPC, Length: length, NameIndex: nameIdx,
		DescriptorIndex: descIdx, Index: index,
	}, nil
}

func readU16List(c *ByteCursor) ([]uint16, error) {
	n, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	list := make([]uint16, n)
	for i := range list {
		list[i], err = c.ReadU16()
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// readCodeAttribute decodes a Code attribute's body, JVMS 4.7.3: max_stack,
// max_locals, a code_length-bounded run of instructions, the exception
// table, and a nested attribute list (which may itself carry a
// StackMapTable, LineNumberTable, and LocalVariable(Type)Table).
func readCodeAttribute(c *ByteCursor, cp *ConstantPool, opts *Options) (CodeAttribute, error) {
	maxStack, err := c.ReadU16()
	if err != nil {
		return CodeAttribute{}, err
	}
	maxLocals, err := c.ReadU16()
	if err != nil {
		return CodeAttribute{}, err
	}
	codeLength, err := c.ReadU32()
	if err != nil {
		return CodeAttribute{}, err
	}
	codeBytes, err := c.ReadBytes(int(codeLength))
	if err != nil {
		return CodeAttribute{}, err
	}
	// Decode from a cursor over the code array alone, so each Offset and the
	// tableswitch/lookupswitch padding count from the array's first byte.
	code := NewByteCursor(codeBytes)
	var instructions []*Instruction
	for code.Remaining() > 0 {
		instr, err := readInstruction(code)
		if err != nil {
			return CodeAttribute{}, err
		}
		instructions = append(instructions, instr)
	}

	excCount, err := c.ReadU16()
	if err != nil {
		return CodeAttribute{}, err
	}
	exceptions := make([]ExceptionTableEntry, excCount)
	for i := range exceptions {
		startPC, err := c.ReadU16()
		if err != nil {
			return CodeAttribute{}, err
		}
		endPC, err := c.ReadU16()
		if err != nil {
			return CodeAttribute{}, err
		}
		handlerPC, err := c.ReadU16()
		if err != nil {
			return CodeAttribute{}, err
		}
		catchType, err := c.ReadU16()
		if err != nil {
			return CodeAttribute{}, err
		}
		exceptions[i] = ExceptionTableEntry{
			StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType,
		}
	}

	nestedAttrs, err := readAttributes(c, cp, opts)
	if err != nil {
		return CodeAttribute{}, err
	}

	return CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           instructions,
		ExceptionTable: exceptions,
		Attributes:     nestedAttrs,
	}, nil
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Recognized attribute names, JVMS 4.7.
const (
	AttrConstantValue          = "ConstantValue"
	AttrCode                   = "Code"
	AttrStackMapTable          = "StackMapTable"
	AttrLineNumberTable        = "LineNumberTable"
	AttrLocalVariableTable     = "LocalVariableTable"
	AttrLocalVariableTypeTable = "LocalVariableTypeTable"
	AttrBootstrapMethods       = "BootstrapMethods"
	AttrNestHost               = "NestHost"
	AttrNestMembers            = "NestMembers"
	AttrPermittedSubclasses    = "PermittedSubclasses"
	AttrSourceFile             = "SourceFile"
)

// ExceptionTableEntry is one protected region of a Code attribute, JVMS 4.7.3.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16

	// CatchType is a constant pool index of a ConstantClass, or 0 to
	// catch every exception (used to implement finally).
	CatchType uint16
}

// LineNumberEntry maps a bytecode offset back to a source line, JVMS 4.7.12.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LocalVariableEntry describes one local variable's scope and descriptor,
// JVMS 4.7.13.
type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

// LocalVariableTypeEntry is LocalVariableEntry's generic-signature
// counterpart, JVMS 4.7.14.
type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

// BootstrapMethod is one entry of a BootstrapMethods attribute, JVMS 4.7.23.
type BootstrapMethod struct {
	MethodRefIndex uint16
	Arguments      []uint16
}

// CodeAttribute is a method body, JVMS 4.7.3.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []*Instruction
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute
}

// ConstantValueAttribute gives a static field's compile-time constant,
// JVMS 4.7.2.
type ConstantValueAttribute struct{ ConstantValueIndex uint16 }

// StackMapTableAttribute holds a method's verification frames, JVMS 4.7.4.
type StackMapTableAttribute struct{ Entries []*StackMapFrame }

// LineNumberTableAttribute maps code offsets to source lines, JVMS 4.7.12.
type LineNumberTableAttribute struct{ Entries []LineNumberEntry }

// LocalVariableTableAttribute describes local variable scopes, JVMS 4.7.13.
type LocalVariableTableAttribute struct{ Entries []LocalVariableEntry }

// LocalVariableTypeTableAttribute is the generic-signature counterpart of
// LocalVariableTableAttribute, JVMS 4.7.14.
type LocalVariableTypeTableAttribute struct{ Entries []LocalVariableTypeEntry }

// BootstrapMethodsAttribute lists the bootstrap methods invokedynamic and
// dynamic constants refer to, JVMS 4.7.23.
type BootstrapMethodsAttribute struct{ Methods []BootstrapMethod }

// NestHostAttribute names a nest's host class, JVMS 4.7.28.
type NestHostAttribute struct{ HostClassIndex uint16 }

// NestMembersAttribute lists the members of a nest whose host is this class,
// JVMS 4.7.29.
type NestMembersAttribute struct{ Classes []uint16 }

// PermittedSubclassesAttribute lists the classes permitted to extend or
// implement a sealed class or interface, JVMS 4.7.31.
type PermittedSubclassesAttribute struct{ Classes []uint16 }

// SourceFileAttribute names the source file a class was compiled from,
// JVMS 4.7.10.
type SourceFileAttribute struct{ SourceFileIndex uint16 }

// RawAttribute is the fallback for any attribute name this reader does not
// model explicitly, preserving its bytes uninterpreted.
type RawAttribute struct {
	Name string
	Data []byte
}

func (ConstantValueAttribute) attributeName() string          { return AttrConstantValue }
func (CodeAttribute) attributeName() string                   { return AttrCode }
func (StackMapTableAttribute) attributeName() string           { return AttrStackMapTable }
func (LineNumberTableAttribute) attributeName() string         { return AttrLineNumberTable }
func (LocalVariableTableAttribute) attributeName() string      { return AttrLocalVariableTable }
func (LocalVariableTypeTableAttribute) attributeName() string  { return AttrLocalVariableTypeTable }
func (BootstrapMethodsAttribute) attributeName() string        { return AttrBootstrapMethods }
func (NestHostAttribute) attributeName() string                { return AttrNestHost }
func (NestMembersAttribute) attributeName() string             { return AttrNestMembers }
func (PermittedSubclassesAttribute) attributeName() string     { return AttrPermittedSubclasses }
func (SourceFileAttribute) attributeName() string              { return AttrSourceFile }
func (r RawAttribute) attributeName() string                   { return r.Name }

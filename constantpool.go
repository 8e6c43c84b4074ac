// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// Constant pool tag values, JVMS Table 4.4-A.
const (
	TagUtf8               uint8 = 1
	TagInteger            uint8 = 3
	TagFloat              uint8 = 4
	TagLong               uint8 = 5
	TagDouble             uint8 = 6
	TagClass              uint8 = 7
	TagString             uint8 = 8
	TagFieldref           uint8 = 9
	TagMethodref          uint8 = 10
	TagInterfaceMethodref uint8 = 11
	TagNameAndType        uint8 = 12
	TagMethodHandle       uint8 = 15
	TagMethodType         uint8 = 16
	TagDynamic            uint8 = 17
	TagInvokeDynamic      uint8 = 18
	TagModule             uint8 = 19
	TagPackage            uint8 = 20
)

// Constant is the sum type of every entry the constant pool can hold.
// Concrete implementations are the Constant* structs below, plus the
// Unusable sentinel occupying the slot after a Long or Double.
type Constant interface {
	constantName() string
}

// Unusable occupies the pool slot immediately following a Long or Double,
// per JVMS 4.4.5: these entries are double-width and the second index must
// never be dereferenced.
type Unusable struct{}

func (Unusable) constantName() string { return "Unusable" }

// ConstantUtf8 holds a decoded modified UTF-8 string.
type ConstantUtf8 struct{ Value string }

func (ConstantUtf8) constantName() string { return "Utf8" }

// ConstantInteger holds a 32-bit two's-complement integer.
type ConstantInteger struct{ Value int32 }

func (ConstantInteger) constantName() string { return "Integer" }

// ConstantFloat holds an IEEE 754 single-precision float.
type ConstantFloat struct{ Value float32 }

func (ConstantFloat) constantName() string { return "Float" }

// ConstantLong holds a 64-bit two's-complement integer. It occupies two
// consecutive pool slots; the second is an Unusable.
type ConstantLong struct{ Value int64 }

func (ConstantLong) constantName() string { return "Long" }

// ConstantDouble holds an IEEE 754 double-precision float. It occupies two
// consecutive pool slots; the second is an Unusable.
type ConstantDouble struct{ Value float64 }

func (ConstantDouble) constantName() string { return "Double" }

// ConstantClass refers by name index to a class or interface's binary name.
type ConstantClass struct{ NameIndex uint16 }

func (ConstantClass) constantName() string { return "Class" }

// ConstantString refers by index to a Utf8 constant giving the string's value.
type ConstantString struct{ StringIndex uint16 }

func (ConstantString) constantName() string { return "String" }

// ConstantFieldref refers to a field of a class or interface.
type ConstantFieldref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantFieldref) constantName() string { return "Fieldref" }

// ConstantMethodref refers to a method of a class.
type ConstantMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantMethodref) constantName() string { return "Methodref" }

// ConstantInterfaceMethodref refers to a method of an interface.
type ConstantInterfaceMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantInterfaceMethodref) constantName() string { return "InterfaceMethodref" }

// ConstantNameAndType gives a field or method's name and descriptor, without
// indicating which class or interface it belongs to.
type ConstantNameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (ConstantNameAndType) constantName() string { return "NameAndType" }

// ReferenceKind enumerates the nine MethodHandle kinds, JVMS Table 5.4.3.5-A.
type ReferenceKind uint8

const (
	RefGetField ReferenceKind = 1 + iota
	RefGetStatic
	RefPutField
	RefPutStatic
	RefInvokeVirtual
	RefInvokeStatic
	RefInvokeSpecial
	RefNewInvokeSpecial
	RefInvokeInterface
)

// ConstantMethodHandle refers to a field accessor, method, or constructor.
type ConstantMethodHandle struct {
	ReferenceKind  ReferenceKind
	ReferenceIndex uint16
}

func (ConstantMethodHandle) constantName() string { return "MethodHandle" }

// ConstantMethodType refers to a method descriptor.
type ConstantMethodType struct{ DescriptorIndex uint16 }

func (ConstantMethodType) constantName() string { return "MethodType" }

// ConstantDynamic refers to a dynamically-computed constant, bootstrapped by
// a method in the enclosing class's BootstrapMethods attribute.
type ConstantDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (ConstantDynamic) constantName() string { return "Dynamic" }

// ConstantInvokeDynamic refers to a call site bootstrapped the same way as
// ConstantDynamic.
type ConstantInvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (ConstantInvokeDynamic) constantName() string { return "InvokeDynamic" }

// ConstantModule refers by name index to a module's name.
type ConstantModule struct{ NameIndex uint16 }

func (ConstantModule) constantName() string { return "Module" }

// ConstantPackage refers by name index to a package's binary name.
type ConstantPackage struct{ NameIndex uint16 }

func (ConstantPackage) constantName() string { return "Package" }

// ConstantPool is the 1-indexed table of constants a class file declares.
// Index 0 is never valid; an entry following a Long or Double is Unusable.
type ConstantPool struct {
	entries []Constant
}

// Len reports the number of entries, including index 0 and Unusable slots.
func (cp *ConstantPool) Len() int { return len(cp.entries) }

// At returns the constant at a 1-based index, validating bounds and the
// Unusable sentinel.
func (cp *ConstantPool) At(index uint16) (Constant, error) {
	if index == 0 || int(index) >= len(cp.entries) {
		return nil, errIndexOutOfBounds(index)
	}
	c := cp.entries[index]
	if _, ok := c.(Unusable); ok {
		return nil, errUnusableConstant(index)
	}
	return c, nil
}

// Utf8At resolves index to a ConstantUtf8's string value.
func (cp *ConstantPool) Utf8At(index uint16) (string, error) {
	c, err := cp.At(index)
	if err != nil {
		return "", err
	}
	utf8, ok := c.(ConstantUtf8)
	if !ok {
		return "", errUnexpectedConstant("Utf8", c.constantName())
	}
	return utf8.Value, nil
}

// ClassNameAt resolves index to a ConstantClass and then its binary name.
func (cp *ConstantPool) ClassNameAt(index uint16) (string, error) {
	c, err := cp.At(index)
	if err != nil {
		return "", err
	}
	cls, ok := c.(ConstantClass)
	if !ok {
		return "", errUnexpectedConstant("Class", c.constantName())
	}
	return cp.Utf8At(cls.NameIndex)
}

func readConstantPool(c *ByteCursor) (*ConstantPool, error) {
	count, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	entries := make([]Constant, count)
	for i := 1; i < int(count); i++ {
		constant, wide, err := readConstant(c)
		if err != nil {
			return nil, err
		}
		entries[i] = constant
		if wide {
			if i+1 >= int(count) {
				return nil, errIndexOutOfBounds(uint16(i + 1))
			}
			entries[i+1] = Unusable{}
			i++
		}
	}
	return &ConstantPool{entries: entries}, nil
}

// readConstant decodes one constant pool entry. wide reports whether the
// entry occupies two pool slots (Long and Double do).
func readConstant(c *ByteCursor) (constant Constant, wide bool, err error) {
	tag, err := c.ReadU8()
	if err != nil {
		return nil, false, err
	}
	switch tag {
	case TagUtf8:
		length, err := c.ReadU16()
		if err != nil {
			return nil, false, err
		}
		s, err := c.ReadUTF8(int(length))
		if err != nil {
			return nil, false, err
		}
		return ConstantUtf8{Value: s}, false, nil
	case TagInteger:
		v, err := c.ReadI32()
		return ConstantInteger{Value: v}, false, err
	case TagFloat:
		v, err := c.ReadF32()
		return ConstantFloat{Value: v}, false, err
	case TagLong:
		v, err := c.ReadI64()
		return ConstantLong{Value: v}, true, err
	case TagDouble:
		v, err := c.ReadF64()
		return ConstantDouble{Value: v}, true, err
	case TagClass:
		v, err := c.ReadU16()
		return ConstantClass{NameIndex: v}, false, err
	case TagString:
		v, err := c.ReadU16()
		return ConstantString{StringIndex: v}, false, err
	case TagFieldref:
		ci, err := c.ReadU16()
		if err != nil {
			return nil, false, err
		}
		nt, err := c.ReadU16()
		return ConstantFieldref{ClassIndex: ci, NameAndTypeIndex: nt}, false, err
	case TagMethodref:
		ci, err := c.ReadU16()
		if err != nil {
			return nil, false, err
		}
		nt, err := c.ReadU16()
		return ConstantMethodref{ClassIndex: ci, NameAndTypeIndex: nt}, false, err
	case TagInterfaceMethodref:
		ci, err := c.ReadU16()
		if err != nil {
			return nil, false, err
		}
		nt, err := c.ReadU16()
		return ConstantInterfaceMethodref{ClassIndex: ci, NameAndTypeIndex: nt}, false, err
	case TagNameAndType:
		ni, err := c.ReadU16()
		if err != nil {
			return nil, false, err
		}
		di, err := c.ReadU16()
		return ConstantNameAndType{NameIndex: ni, DescriptorIndex: di}, false, err
	case TagMethodHandle:
		kind, err := c.ReadU8()
		if err != nil {
			return nil, false, err
		}
		ri, err := c.ReadU16()
		return ConstantMethodHandle{ReferenceKind: ReferenceKind(kind), ReferenceIndex: ri}, false, err
	case TagMethodType:
		di, err := c.ReadU16()
		return ConstantMethodType{DescriptorIndex: di}, false, err
	case TagDynamic:
		bi, err := c.ReadU16()
		if err != nil {
			return nil, false, err
		}
		nt, err := c.ReadU16()
		return ConstantDynamic{BootstrapMethodAttrIndex: bi, NameAndTypeIndex: nt}, false, err
	case TagInvokeDynamic:
		bi, err := c.ReadU16()
		if err != nil {
			return nil, false, err
		}
		nt, err := c.ReadU16()
		return ConstantInvokeDynamic{BootstrapMethodAttrIndex: bi, NameAndTypeIndex: nt}, false, err
	case TagModule:
		ni, err := c.ReadU16()
		return ConstantModule{NameIndex: ni}, false, err
	case TagPackage:
		ni, err := c.ReadU16()
		return ConstantPackage{NameIndex: ni}, false, err
	default:
		return nil, false, errTagNotSupported(tag)
	}
}

func (k ReferenceKind) String() string {
	switch k {
	case RefGetField:
		return "GetField"
	case RefGetStatic:
		return "GetStatic"
	case RefPutField:
		return "PutField"
	case RefPutStatic:
		return "PutStatic"
	case RefInvokeVirtual:
		return "InvokeVirtual"
	case RefInvokeStatic:
		return "InvokeStatic"
	case RefInvokeSpecial:
		return "InvokeSpecial"
	case RefNewInvokeSpecial:
		return "NewInvokeSpecial"
	case RefInvokeInterface:
		return "InvokeInterface"
	default:
		return fmt.Sprintf("ReferenceKind(%d)", uint8(k))
	}
}

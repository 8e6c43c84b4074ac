// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Class access and property flags, JVMS Table 4.1-A.
const (
	AccPublic     uint16 = 0x0001
	AccFinal      uint16 = 0x0010
	AccSuper      uint16 = 0x0020
	AccInterface  uint16 = 0x0200
	AccAbstract   uint16 = 0x0400
	AccSynthetic  uint16 = 0x1000
	AccAnnotation uint16 = 0x2000
	AccEnum       uint16 = 0x4000
	AccModule     uint16 = 0x8000
)

// Field access and property flags, JVMS Table 4.5-A.
const (
	AccFieldPublic    uint16 = 0x0001
	AccFieldPrivate   uint16 = 0x0002
	AccFieldProtected uint16 = 0x0004
	AccFieldStatic    uint16 = 0x0008
	AccFieldFinal     uint16 = 0x0010
	AccFieldVolatile  uint16 = 0x0040
	AccFieldTransient uint16 = 0x0080
	AccFieldSynthetic uint16 = 0x1000
	AccFieldEnum      uint16 = 0x4000
)

// Method access and property flags, JVMS Table 4.6-A.
const (
	AccMethodPublic       uint16 = 0x0001
	AccMethodPrivate      uint16 = 0x0002
	AccMethodProtected    uint16 = 0x0004
	AccMethodStatic       uint16 = 0x0008
	AccMethodFinal        uint16 = 0x0010
	AccMethodSynchronized uint16 = 0x0020
	AccMethodBridge       uint16 = 0x0040
	AccMethodVarargs      uint16 = 0x0080
	AccMethodNative       uint16 = 0x0100
	AccMethodAbstract     uint16 = 0x0400
	AccMethodStrict       uint16 = 0x0800
	AccMethodSynthetic    uint16 = 0x1000
)

// ClassAccessFlags is a bitmask of Acc* class flags.
type ClassAccessFlags uint16

// Has reports whether every bit in mask is set.
func (f ClassAccessFlags) Has(mask uint16) bool { return uint16(f)&mask == mask }

// FieldAccessFlags is a bitmask of AccField* flags.
type FieldAccessFlags uint16

// Has reports whether every bit in mask is set.
func (f FieldAccessFlags) Has(mask uint16) bool { return uint16(f)&mask == mask }

// MethodAccessFlags is a bitmask of AccMethod* flags.
type MethodAccessFlags uint16

// Has reports whether every bit in mask is set.
func (f MethodAccessFlags) Has(mask uint16) bool { return uint16(f)&mask == mask }

func readClassAccessFlags(c *ByteCursor) (ClassAccessFlags, error) {
	v, err := c.ReadU16()
	return ClassAccessFlags(v), err
}

func readFieldAccessFlags(c *ByteCursor) (FieldAccessFlags, error) {
	v, err := c.ReadU16()
	return FieldAccessFlags(v), err
}

func readMethodAccessFlags(c *ByteCursor) (MethodAccessFlags, error) {
	v, err := c.ReadU16()
	return MethodAccessFlags(v), err
}

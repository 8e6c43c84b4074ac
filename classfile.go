// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/mod/semver"

	"github.com/javaclass/classfile/log"
)

// ClassMagic is the fixed four-byte signature every class file begins with,
// JVMS 4.1.
const ClassMagic uint32 = 0xCAFEBABE

// FieldInfo is one field_info entry, JVMS 4.5.
type FieldInfo struct {
	AccessFlags     FieldAccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Name            string
	Descriptor      FieldType
	Attributes      []Attribute
}

// MethodInfo is one method_info entry, JVMS 4.6.
type MethodInfo struct {
	AccessFlags     MethodAccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Name            string
	Descriptor      *MethodDescriptor
	Attributes      []Attribute
}

// Code returns the method's Code attribute, or nil if it has none (true of
// every abstract or native method).
func (m *MethodInfo) Code() *CodeAttribute {
	for _, a := range m.Attributes {
		if code, ok := a.(CodeAttribute); ok {
			return &code
		}
	}
	return nil
}

// ClassFile is the fully decoded result of parsing a .class file, JVMS 4.1.
// this_class, super_class, and each interfaces entry are constant-pool
// indices in the wire format, but are resolved and denormalized to their
// binary class names at parse time, since that is the only thing any
// consumer ever wants from them.
type ClassFile struct {
	Version        ClassFileVersion
	ConstantPool   *ConstantPool
	AccessFlags    ClassAccessFlags
	ThisClassName  string
	SuperClassName string
	Interfaces     []string
	Fields         []FieldInfo
	Methods        []MethodInfo
	Attributes     []Attribute

	// Anomalies collects non-fatal observations made while parsing (see
	// anomaly.go) that don't by themselves make the class file invalid.
	Anomalies []string

	// SignerInfo is populated when the class carries an
	// X-PKCS7Signature attribute (signature.go); nil otherwise.
	SignerInfo *SignerInfo

	data   []byte
	mapped mmap.MMap
	f      *os.File
	opts   *Options
	logger *log.Helper
}

// Options configures how a ClassFile is parsed.
type Options struct {
	// SkipCode skips decoding a method's Code attribute body into
	// instructions, keeping only the raw bytes as a RawAttribute. Useful
	// for tools that only need metadata (fields, method signatures).
	SkipCode bool

	// SkipDebugAttributes skips decoding LineNumberTable,
	// LocalVariableTable, and LocalVariableTypeTable into typed entries,
	// keeping only their raw bytes as a RawAttribute, since debuggers are
	// the only consumers of this data.
	SkipDebugAttributes bool

	// MaxAttributeLength rejects any attribute_info whose declared
	// length exceeds it, guarding against a corrupt length field
	// driving an enormous allocation. Zero means unlimited.
	MaxAttributeLength uint32

	// MaxMajorVersion caps the accepted major version below the
	// format's own ceiling (JavaSE23), letting a caller restrict
	// parsing to, say, class files no newer than a particular JVMS
	// release it has been validated against. Zero means unlimited,
	// comparison performed with golang.org/x/mod/semver by mapping each
	// major version to a "vMAJOR.0.0" string.
	MaxMajorVersion uint16

	// Logger receives non-fatal diagnostics. Defaults to a stdout
	// logger filtered to LevelError.
	Logger log.Logger
}

func versionString(major uint16) string { return fmt.Sprintf("v%d.0.0", major) }

// resolveClassName resolves a this_class/super_class/interfaces constant
// pool index to its binary class name. Index 0 means "absent" (the only
// class with no superclass, java/lang/Object, encodes it this way) and
// resolves to the empty string without touching the pool.
func resolveClassName(cp *ConstantPool, index uint16) (string, error) {
	if index == 0 {
		return "", nil
	}
	return cp.ClassNameAt(index)
}

func defaultLogger(opts *Options) *log.Helper {
	if opts.Logger != nil {
		return log.NewHelper(opts.Logger)
	}
	base := log.NewStdLogger(os.Stdout)
	return log.NewHelper(log.NewFilter(base, log.FilterLevel(log.LevelError)))
}

// New parses a class file already held in memory.
func New(data []byte, opts *Options) (*ClassFile, error) {
	if opts == nil {
		opts = &Options{}
	}
	cf := &ClassFile{data: data, opts: opts, logger: defaultLogger(opts)}
	if err := cf.Parse(); err != nil {
		return nil, err
	}
	return cf, nil
}

// NewFile memory-maps the named file and parses it.
func NewFile(name string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}
	cf := &ClassFile{data: mapped, mapped: mapped, f: f, opts: opts, logger: defaultLogger(opts)}
	if err := cf.Parse(); err != nil {
		cf.Close()
		return nil, err
	}
	return cf, nil
}

// Close releases the memory-mapped file backing a ClassFile opened with
// NewFile. It is a no-op for a ClassFile built with New.
func (cf *ClassFile) Close() error {
	if cf.mapped != nil {
		_ = cf.mapped.Unmap()
	}
	if cf.f != nil {
		return cf.f.Close()
	}
	return nil
}

// Parse runs the full decode sequence over cf.data, JVMS 4.1: magic,
// version, constant pool, access flags, this/super class, interfaces,
// fields, methods, and class-level attributes. The first error encountered
// is wrapped in a ContextualError carrying a snippet of the offending bytes.
func (cf *ClassFile) Parse() error {
	c := NewByteCursor(cf.data)
	if err := cf.parse(c); err != nil {
		return &ContextualError{Err: err, Snippet: c.Snippet()}
	}
	return nil
}

func (cf *ClassFile) parse(c *ByteCursor) error {
	magic, err := c.ReadU32()
	if err != nil {
		return err
	}
	if magic != ClassMagic {
		return errInvalidMagicNumber(magic)
	}

	version, err := readVersion(c)
	if err != nil {
		return err
	}
	if cf.opts.MaxMajorVersion != 0 &&
		semver.Compare(versionString(version.Major), versionString(cf.opts.MaxMajorVersion)) > 0 {
		return errUnsupportedMajorVersion(version.Major)
	}
	cf.Version = version

	cp, err := readConstantPool(c)
	if err != nil {
		return err
	}
	cf.ConstantPool = cp

	accessFlags, err := readClassAccessFlags(c)
	if err != nil {
		return err
	}
	cf.AccessFlags = accessFlags

	thisClass, err := c.ReadU16()
	if err != nil {
		return err
	}
	thisClassName, err := resolveClassName(cp, thisClass)
	if err != nil {
		return err
	}
	cf.ThisClassName = thisClassName

	superClass, err := c.ReadU16()
	if err != nil {
		return err
	}
	superClassName, err := resolveClassName(cp, superClass)
	if err != nil {
		return err
	}
	cf.SuperClassName = superClassName

	interfaceIndices, err := readU16List(c)
	if err != nil {
		return err
	}
	interfaces := make([]string, len(interfaceIndices))
	for i, idx := range interfaceIndices {
		name, err := resolveClassName(cp, idx)
		if err != nil {
			return err
		}
		interfaces[i] = name
	}
	cf.Interfaces = interfaces

	fields, err := cf.readFields(c)
	if err != nil {
		return err
	}
	cf.Fields = fields

	methods, err := cf.readMethods(c)
	if err != nil {
		return err
	}
	cf.Methods = methods

	attrs, err := readAttributes(c, cp, cf.opts)
	if err != nil {
		return err
	}
	cf.Attributes = attrs

	signer, err := findSignerInfo(attrs)
	if err != nil {
		cf.logger.Warnf("failed to decode PKCS7 signature attribute: %v", err)
	} else {
		cf.SignerInfo = signer
	}

	cf.collectAnomalies()
	return nil
}

// validateConstantValue checks that the pool entry a field's ConstantValue
// attribute points at has the kind JVMS 4.7.2 requires for the field's
// descriptor: Int/Short/Char/Byte/Boolean take an Integer, Float takes a
// Float, Long takes a Long, Double takes a Double, and a java/lang/String
// field takes a Utf8 (the raw string bytes, not a ConstantString). Any other
// descriptor shape has no valid ConstantValue kind.
func validateConstantValue(descriptor FieldType, cp *ConstantPool, index uint16) error {
	constant, err := cp.At(index)
	if err != nil {
		return err
	}

	var ok bool
	switch d := descriptor.(type) {
	case BaseFieldType:
		switch d.Type {
		case BaseInt, BaseShort, BaseChar, BaseByte, BaseBoolean:
			_, ok = constant.(ConstantInteger)
		case BaseFloat:
			_, ok = constant.(ConstantFloat)
		case BaseLong:
			_, ok = constant.(ConstantLong)
		case BaseDouble:
			_, ok = constant.(ConstantDouble)
		}
	case ObjectFieldType:
		if d.ClassName == "java/lang/String" {
			_, ok = constant.(ConstantUtf8)
		}
	}
	if !ok {
		return errMismatchedConstantType(descriptor.descriptorString(), index)
	}
	return nil
}

func (cf *ClassFile) readFields(c *ByteCursor) ([]FieldInfo, error) {
	count, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	fields := make([]FieldInfo, count)
	for i := range fields {
		flags, err := readFieldAccessFlags(c)
		if err != nil {
			return nil, err
		}
		nameIdx, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		descIdx, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		attrs, err := readAttributes(c, cf.ConstantPool, cf.opts)
		if err != nil {
			return nil, err
		}
		name, err := cf.ConstantPool.Utf8At(nameIdx)
		if err != nil {
			return nil, err
		}
		descStr, err := cf.ConstantPool.Utf8At(descIdx)
		if err != nil {
			return nil, err
		}
		descriptor, err := ParseFieldDescriptor(descStr)
		if err != nil {
			return nil, err
		}
		for _, a := range attrs {
			cva, ok := a.(ConstantValueAttribute)
			if !ok {
				continue
			}
			if err := validateConstantValue(descriptor, cf.ConstantPool, cva.ConstantValueIndex); err != nil {
				return nil, err
			}
		}
		fields[i] = FieldInfo{
			AccessFlags: flags, NameIndex: nameIdx, DescriptorIndex: descIdx,
			Name: name, Descriptor: descriptor, Attributes: attrs,
		}
	}
	return fields, nil
}

func (cf *ClassFile) readMethods(c *ByteCursor) ([]MethodInfo, error) {
	count, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	methods := make([]MethodInfo, count)
	for i := range methods {
		flags, err := readMethodAccessFlags(c)
		if err != nil {
			return nil, err
		}
		nameIdx, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		descIdx, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		attrs, err := readAttributes(c, cf.ConstantPool, cf.opts)
		if err != nil {
			return nil, err
		}
		name, err := cf.ConstantPool.Utf8At(nameIdx)
		if err != nil {
			return nil, err
		}
		descStr, err := cf.ConstantPool.Utf8At(descIdx)
		if err != nil {
			return nil, err
		}
		descriptor, err := ParseMethodDescriptor(descStr)
		if err != nil {
			return nil, err
		}
		methods[i] = MethodInfo{
			AccessFlags: flags, NameIndex: nameIdx, DescriptorIndex: descIdx,
			Name: name, Descriptor: descriptor, Attributes: attrs,
		}
	}
	return methods, nil
}

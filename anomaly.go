// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Anomaly messages describe structural observations that don't by
// themselves make a class file invalid, but that a well-behaved compiler
// would never produce.
const (
	AnoZeroSuperclassOnNonObject     = "super_class is 0 but this_class does not name java/lang/Object"
	AnoInterfaceWithoutAbstractFlag  = "class has ACC_INTERFACE set without ACC_ABSTRACT"
	AnoEmptyNestMembers              = "NestMembers attribute present but declares zero classes"
	AnoFieldDeclaredFinalAndVolatile = "field is declared both ACC_FINAL and ACC_VOLATILE"
	AnoBridgeMethodWithoutSynthetic  = "method has ACC_BRIDGE set without ACC_SYNTHETIC"
	AnoDuplicateAttribute            = "attribute name appears more than once on the same member"
)

// collectAnomalies walks the already-parsed ClassFile for conditions that
// are legal per JVMS but that javac never emits, appending a message for
// each to cf.Anomalies. It runs once at the end of Parse and never itself
// fails the parse.
func (cf *ClassFile) collectAnomalies() {
	if cf.SuperClassName == "" && cf.ThisClassName != "java/lang/Object" {
		cf.addAnomaly(AnoZeroSuperclassOnNonObject)
	}

	if cf.AccessFlags.Has(AccInterface) && !cf.AccessFlags.Has(AccAbstract) {
		cf.addAnomaly(AnoInterfaceWithoutAbstractFlag)
	}

	for _, attr := range cf.Attributes {
		if nm, ok := attr.(NestMembersAttribute); ok && len(nm.Classes) == 0 {
			cf.addAnomaly(AnoEmptyNestMembers)
		}
	}

	for _, f := range cf.Fields {
		if f.AccessFlags.Has(AccFieldFinal) && f.AccessFlags.Has(AccFieldVolatile) {
			cf.addAnomaly(AnoFieldDeclaredFinalAndVolatile)
		}
		if hasDuplicateAttributeName(f.Attributes) {
			cf.addAnomaly(AnoDuplicateAttribute)
		}
	}

	for _, m := range cf.Methods {
		if m.AccessFlags.Has(AccMethodBridge) && !m.AccessFlags.Has(AccMethodSynthetic) {
			cf.addAnomaly(AnoBridgeMethodWithoutSynthetic)
		}
		if hasDuplicateAttributeName(m.Attributes) {
			cf.addAnomaly(AnoDuplicateAttribute)
		}
	}
}

func hasDuplicateAttributeName(attrs []Attribute) bool {
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		name := a.attributeName()
		if seen[name] {
			return true
		}
		seen[name] = true
	}
	return false
}

// addAnomaly appends anomaly to cf.Anomalies unless it is already present.
func (cf *ClassFile) addAnomaly(anomaly string) {
	if stringInSlice(anomaly, cf.Anomalies) {
		return
	}
	cf.Anomalies = append(cf.Anomalies, anomaly)
}

func stringInSlice(needle string, haystack []string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

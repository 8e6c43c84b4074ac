// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

func TestAddAnomalyDeduplicates(t *testing.T) {
	cf := &ClassFile{}
	cf.addAnomaly(AnoEmptyNestMembers)
	cf.addAnomaly(AnoEmptyNestMembers)
	if len(cf.Anomalies) != 1 {
		t.Fatalf("len(Anomalies) = %d; want 1 after duplicate addAnomaly calls", len(cf.Anomalies))
	}
}

func TestCollectAnomaliesInterfaceWithoutAbstract(t *testing.T) {
	cf := &ClassFile{
		ConstantPool: &ConstantPool{},
		AccessFlags:  ClassAccessFlags(AccInterface),
	}
	cf.collectAnomalies()
	if !stringInSlice(AnoInterfaceWithoutAbstractFlag, cf.Anomalies) {
		t.Fatalf("Anomalies = %v; want it to contain %q", cf.Anomalies, AnoInterfaceWithoutAbstractFlag)
	}
}

func TestCollectAnomaliesFieldFinalAndVolatile(t *testing.T) {
	cf := &ClassFile{
		ConstantPool: &ConstantPool{},
		AccessFlags:  ClassAccessFlags(AccSuper),
		SuperClassName: "java/lang/Object",
		Fields: []FieldInfo{
			{AccessFlags: FieldAccessFlags(AccFieldFinal | AccFieldVolatile)},
		},
	}
	cf.collectAnomalies()
	if !stringInSlice(AnoFieldDeclaredFinalAndVolatile, cf.Anomalies) {
		t.Fatalf("Anomalies = %v; want it to contain %q", cf.Anomalies, AnoFieldDeclaredFinalAndVolatile)
	}
}

func TestCollectAnomaliesBridgeWithoutSynthetic(t *testing.T) {
	cf := &ClassFile{
		ConstantPool: &ConstantPool{},
		SuperClassName: "java/lang/Object",
		Methods: []MethodInfo{
			{AccessFlags: MethodAccessFlags(AccMethodBridge)},
		},
	}
	cf.collectAnomalies()
	if !stringInSlice(AnoBridgeMethodWithoutSynthetic, cf.Anomalies) {
		t.Fatalf("Anomalies = %v; want it to contain %q", cf.Anomalies, AnoBridgeMethodWithoutSynthetic)
	}
}

func TestCollectAnomaliesNoFalsePositives(t *testing.T) {
	cf := &ClassFile{
		ConstantPool: &ConstantPool{},
		SuperClassName: "java/lang/Object",
		AccessFlags:  ClassAccessFlags(AccSuper | AccPublic),
		Fields: []FieldInfo{
			{AccessFlags: FieldAccessFlags(AccFieldFinal)},
		},
		Methods: []MethodInfo{
			{AccessFlags: MethodAccessFlags(AccMethodBridge | AccMethodSynthetic)},
		},
	}
	cf.collectAnomalies()
	if len(cf.Anomalies) != 0 {
		t.Fatalf("Anomalies = %v; want none", cf.Anomalies)
	}
}

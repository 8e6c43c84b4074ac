package classfile

import "testing"

func TestParseFieldDescriptorBase(t *testing.T) {
	ft, err := ParseFieldDescriptor("I")
	if err != nil {
		t.Fatalf("ParseFieldDescriptor() error: %v", err)
	}
	base, ok := ft.(BaseFieldType)
	if !ok || base.Type != BaseInt {
		t.Fatalf("ParseFieldDescriptor() = %#v; want BaseFieldType{I}", ft)
	}
}

func TestParseFieldDescriptorObject(t *testing.T) {
	ft, err := ParseFieldDescriptor("Ljava/lang/String;")
	if err != nil {
		t.Fatalf("ParseFieldDescriptor() error: %v", err)
	}
	obj, ok := ft.(ObjectFieldType)
	if !ok || obj.ClassName != "java/lang/String" {
		t.Fatalf("ParseFieldDescriptor() = %#v; want java/lang/String", ft)
	}
}

func TestParseFieldDescriptorArray(t *testing.T) {
	ft, err := ParseFieldDescriptor("[[I")
	if err != nil {
		t.Fatalf("ParseFieldDescriptor() error: %v", err)
	}
	outer, ok := ft.(ArrayFieldType)
	if !ok {
		t.Fatalf("ParseFieldDescriptor() = %#v; want ArrayFieldType", ft)
	}
	inner, ok := outer.ElementType.(ArrayFieldType)
	if !ok {
		t.Fatalf("element = %#v; want nested ArrayFieldType", outer.ElementType)
	}
	if _, ok := inner.ElementType.(BaseFieldType); !ok {
		t.Fatalf("innermost element = %#v; want BaseFieldType", inner.ElementType)
	}
}

func TestParseFieldDescriptorMissingSemicolon(t *testing.T) {
	if _, err := ParseFieldDescriptor("Ljava/lang/String"); err != ErrNoSemicolon {
		t.Fatalf("err = %v; want ErrNoSemicolon", err)
	}
}

func TestParseMethodDescriptorVoidNoArgs(t *testing.T) {
	m, err := ParseMethodDescriptor("()V")
	if err != nil {
		t.Fatalf("ParseMethodDescriptor() error: %v", err)
	}
	if len(m.ParameterTypes) != 0 || m.ReturnType != nil {
		t.Fatalf("ParseMethodDescriptor() = %#v; want empty void", m)
	}
}

func TestParseMethodDescriptorMixed(t *testing.T) {
	m, err := ParseMethodDescriptor("(Ljava/lang/String;I)Z")
	if err != nil {
		t.Fatalf("ParseMethodDescriptor() error: %v", err)
	}
	if len(m.ParameterTypes) != 2 {
		t.Fatalf("len(ParameterTypes) = %d; want 2", len(m.ParameterTypes))
	}
	if m.String() != "(Ljava/lang/String;I)Z" {
		t.Fatalf("String() = %q", m.String())
	}
}

func TestParseMethodDescriptorMissingOpeningBracket(t *testing.T) {
	if _, err := ParseMethodDescriptor("Ljava/lang/String;)V"); err != ErrNoOpeningBracket {
		t.Fatalf("err = %v; want ErrNoOpeningBracket", err)
	}
}

func TestParseMethodDescriptorMissingClosingBracket(t *testing.T) {
	if _, err := ParseMethodDescriptor("(I"); err != ErrNoClosingBracket {
		t.Fatalf("err = %v; want ErrNoClosingBracket", err)
	}
}

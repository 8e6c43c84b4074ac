package classfile

import "testing"

func TestReadStackMapFrameSame(t *testing.T) {
	c := NewByteCursor([]byte{10})
	f, err := readStackMapFrame(c)
	if err != nil || f.FrameType != 10 || f.OffsetDelta != 10 {
		t.Fatalf("readStackMapFrame() = %+v, %v; want same frame delta 10", f, err)
	}
}

func TestReadStackMapFrameSameLocals1StackItem(t *testing.T) {
	c := NewByteCursor([]byte{64, VerifInteger})
	f, err := readStackMapFrame(c)
	if err != nil {
		t.Fatalf("readStackMapFrame() error: %v", err)
	}
	if f.OffsetDelta != 0 || len(f.Stack) != 1 || f.Stack[0].Tag != VerifInteger {
		t.Fatalf("readStackMapFrame() = %+v", f)
	}
}

func TestReadStackMapFrameChop(t *testing.T) {
	c := NewByteCursor([]byte{248, 0x00, 0x05})
	f, err := readStackMapFrame(c)
	if err != nil || f.OffsetDelta != 5 {
		t.Fatalf("readStackMapFrame() chop = %+v, %v", f, err)
	}
}

func TestReadStackMapFrameAppend(t *testing.T) {
	c := NewByteCursor([]byte{252, 0x00, 0x03, VerifInteger, VerifFloat})
	f, err := readStackMapFrame(c)
	if err != nil {
		t.Fatalf("readStackMapFrame() error: %v", err)
	}
	if len(f.Locals) != 1 || f.Locals[0].Tag != VerifInteger {
		t.Fatalf("readStackMapFrame() append = %+v", f)
	}
}

func TestReadStackMapFrameFull(t *testing.T) {
	data := []byte{
		255,
		0x00, 0x01, // offset delta
		0x00, 0x01, VerifInteger, // 1 local: Integer
		0x00, 0x01, VerifObject, 0x00, 0x05, // 1 stack item: Object, cpool index 5
	}
	c := NewByteCursor(data)
	f, err := readStackMapFrame(c)
	if err != nil {
		t.Fatalf("readStackMapFrame() error: %v", err)
	}
	if len(f.Locals) != 1 || len(f.Stack) != 1 || f.Stack[0].CPoolIndex != 5 {
		t.Fatalf("readStackMapFrame() full = %+v", f)
	}
}

func TestReadVerificationTypeInfoInvalidTag(t *testing.T) {
	c := NewByteCursor([]byte{9})
	if _, err := readVerificationTypeInfo(c); err == nil {
		t.Fatalf("readVerificationTypeInfo() want error for tag 9, got nil")
	}
}

func TestReadStackMapTable(t *testing.T) {
	data := []byte{0x00, 0x02, 10, 20}
	c := NewByteCursor(data)
	frames, err := readStackMapTable(c)
	if err != nil {
		t.Fatalf("readStackMapTable() error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d; want 2", len(frames))
	}
}

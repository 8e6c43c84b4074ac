package classfile

import "testing"

func TestReadInstructionNoOperand(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpIadd)})
	instr, err := readInstruction(c)
	if err != nil || instr.Opcode != OpIadd {
		t.Fatalf("readInstruction() = %+v, %v; want iadd", instr, err)
	}
}

func TestReadInstructionBipush(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpBipush), 0xFF}) // -1
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.IntOperand != -1 {
		t.Fatalf("IntOperand = %d; want -1", instr.IntOperand)
	}
}

func TestReadInstructionGoto(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpGoto), 0x00, 0x05})
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.Opcode != OpGoto || instr.BranchOffset != 5 {
		t.Fatalf("readInstruction() = %+v; want goto +5", instr)
	}
}

func TestReadInstructionGotoW(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpGotoW), 0x00, 0x00, 0x01, 0x00})
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.Opcode != OpGotoW || instr.BranchOffset != 256 {
		t.Fatalf("readInstruction() = %+v; want goto_w +256", instr)
	}
}

func TestReadInstructionJsrAndJsrW(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpJsr), 0x00, 0x03})
	instr, err := readInstruction(c)
	if err != nil || instr.Opcode != OpJsr || instr.BranchOffset != 3 {
		t.Fatalf("readInstruction() jsr = %+v, %v", instr, err)
	}
	c2 := NewByteCursor([]byte{byte(OpJsrW), 0x00, 0x00, 0x00, 0x03})
	instr2, err := readInstruction(c2)
	if err != nil || instr2.Opcode != OpJsrW || instr2.BranchOffset != 3 {
		t.Fatalf("readInstruction() jsr_w = %+v, %v", instr2, err)
	}
}

func TestReadInstructionNewarray(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpNewarray), byte(ArrayTypeInt)})
	instr, err := readInstruction(c)
	if err != nil || instr.ArrayType != ArrayTypeInt {
		t.Fatalf("readInstruction() newarray = %+v, %v", instr, err)
	}
}

func TestReadInstructionWideIload(t *testing.T) {
	// wide iload #300
	c := NewByteCursor([]byte{byte(OpWide), byte(OpIload), 0x01, 0x2C})
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.Opcode != OpIload || !instr.Wide || instr.Index != 300 {
		t.Fatalf("readInstruction() wide iload = %+v", instr)
	}
}

func TestReadInstructionWideIinc(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpWide), byte(OpIinc), 0x00, 0x01, 0xFF, 0xFF}) // index=1, const=-1
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.Opcode != OpIinc || instr.Index != 1 || instr.IntOperand != -1 {
		t.Fatalf("readInstruction() wide iinc = %+v", instr)
	}
}

func TestReadInstructionTableswitch(t *testing.T) {
	// offset 0: opcode at 0, 3 padding bytes -> aligned to 4 at byte 4.
	data := []byte{
		byte(OpTableswitch), 0, 0, 0, // opcode + padding
		0, 0, 0, 10, // default
		0, 0, 0, 0, // low
		0, 0, 0, 1, // high
		0, 0, 0, 100, // offsets[0]
		0, 0, 0, 200, // offsets[1]
	}
	c := NewByteCursor(data)
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.Default != 10 || instr.Low != 0 || instr.High != 1 || len(instr.Offsets) != 2 {
		t.Fatalf("readInstruction() tableswitch = %+v", instr)
	}
	if instr.Offsets[0] != 100 || instr.Offsets[1] != 200 {
		t.Fatalf("Offsets = %v", instr.Offsets)
	}
}

func TestReadInstructionLookupswitch(t *testing.T) {
	data := []byte{
		byte(OpLookupswitch), 0, 0, 0,
		0, 0, 0, 20, // default
		0, 0, 0, 2, // npairs
		0, 0, 0, 1, 0, 0, 0, 50, // pair 0
		0, 0, 0, 2, 0, 0, 0, 60, // pair 1
	}
	c := NewByteCursor(data)
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.Default != 20 || len(instr.LookupPairs) != 2 {
		t.Fatalf("readInstruction() lookupswitch = %+v", instr)
	}
	if instr.LookupPairs[1].Match != 2 || instr.LookupPairs[1].Offset != 60 {
		t.Fatalf("LookupPairs = %+v", instr.LookupPairs)
	}
}

func TestReadInstructionInvokeinterface(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpInvokeinterface), 0x00, 0x05, 0x02, 0x00})
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.Index != 5 || instr.InterfaceMethodCount != 2 {
		t.Fatalf("readInstruction() invokeinterface = %+v", instr)
	}
}

func TestReadInstructionMultianewarray(t *testing.T) {
	c := NewByteCursor([]byte{byte(OpMultianewarray), 0x00, 0x07, 0x02})
	instr, err := readInstruction(c)
	if err != nil {
		t.Fatalf("readInstruction() error: %v", err)
	}
	if instr.Index != 7 || instr.Dimensions != 2 {
		t.Fatalf("readInstruction() multianewarray = %+v", instr)
	}
}

func TestReadInstructionUnknownOpcode(t *testing.T) {
	c := NewByteCursor([]byte{0xFE})
	if _, err := readInstruction(c); err == nil {
		t.Fatalf("readInstruction() want error for reserved opcode 0xFE, got nil")
	}
}

func TestMnemonic(t *testing.T) {
	if OpInvokevirtual.Mnemonic() != "invokevirtual" {
		t.Fatalf("Mnemonic() = %q", OpInvokevirtual.Mnemonic())
	}
}

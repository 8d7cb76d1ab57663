// Package asm implements the MIPS assembly emitter: a stateful sink with
// .data/.text section discipline, string-literal interning, a monotonic
// label counter, and helpers for the push/pop stack-machine convention
// codegen relies on.
package asm

import (
	"bytes"
	"fmt"
	"io"
)

type section int

const (
	sectionNone section = iota
	sectionData
	sectionText
)

// Emitter accumulates assembly text in two internal buffers (.data and
// .text), flushed by the caller once codegen completes.
//
// DESIGN CHOICE: two buffers, not one shared stream written in section
// order. Codegen discovers string literals while walking function bodies
// — i.e. while .text is being emitted — but those literals belong in
// .data. Two buffers let callers write to whichever section is logically
// current (Data()/Text() just select the active buffer) without caring
// about interleaving order; the final .data/.text text is assembled once,
// at WriteTo/String time, with globals and interned strings (both written
// to the data buffer as they're seen) preceding the function bodies.
type Emitter struct {
	dataBuf bytes.Buffer
	textBuf bytes.Buffer
	active  *bytes.Buffer
	section section

	labels  int
	strings map[string]string // literal content -> label
	order   []string          // labels in first-seen order, for deterministic .data emission
}

// New creates an empty Emitter.
func New() *Emitter {
	e := &Emitter{strings: make(map[string]string)}
	e.active = &e.dataBuf
	e.section = sectionData
	return e
}

// Data switches subsequent Line/Label calls to the .data buffer.
func (e *Emitter) Data() {
	e.section = sectionData
	e.active = &e.dataBuf
}

// Text switches subsequent Line/Label calls to the .text buffer.
func (e *Emitter) Text() {
	e.section = sectionText
	e.active = &e.textBuf
}

// Line appends one already-formatted line of assembly (sans trailing
// newline) to the currently active section's buffer.
func (e *Emitter) Line(format string, args ...any) {
	fmt.Fprintf(e.active, format, args...)
	e.active.WriteByte('\n')
}

// Label emits a bare label line, e.g. "_main:", to the active section.
func (e *Emitter) Label(name string) {
	e.active.WriteString(name)
	e.active.WriteString(":\n")
}

// NewLabel returns a fresh, process-wide-for-this-compilation unique
// internal label.
func (e *Emitter) NewLabel() string {
	l := fmt.Sprintf("L%d", e.labels)
	e.labels++
	return l
}

// GlobalData reserves 4 bytes for a global variable under label "_name",
// written directly to the data buffer regardless of the active section.
func (e *Emitter) GlobalData(name string) {
	fmt.Fprintf(&e.dataBuf, "_%s: .word 0\n", name)
}

// InternString interns a string literal's content, writing its .asciiz
// directive to the data buffer the first time it is seen and returning its
// label on every call. Repeated identical literals share a label.
func (e *Emitter) InternString(content string) string {
	if label, ok := e.strings[content]; ok {
		return label
	}
	label := fmt.Sprintf("_str%d", len(e.order))
	e.strings[content] = label
	e.order = append(e.order, content)
	fmt.Fprintf(&e.dataBuf, "%s: .asciiz %q\n", label, content)
	return label
}

// Push emits code to push a 4-byte register value onto the runtime stack.
func (e *Emitter) Push(reg string) {
	e.Line("subu $sp, $sp, 4")
	e.Line("sw %s, 0($sp)", reg)
}

// Pop emits code to pop a 4-byte value off the runtime stack into reg.
func (e *Emitter) Pop(reg string) {
	e.Line("lw %s, 0($sp)", reg)
	e.Line("addu $sp, $sp, 4")
}

// LoadGlobal emits code to load the value of global "_name" into reg.
func (e *Emitter) LoadGlobal(reg, name string) {
	e.Line("lw %s, _%s", reg, name)
}

// AddrGlobal emits code to load the address of global "_name" into reg.
func (e *Emitter) AddrGlobal(reg, name string) {
	e.Line("la %s, _%s", reg, name)
}

// LoadFrame emits code to load the value at offset(FP) into reg.
func (e *Emitter) LoadFrame(reg string, offset int) {
	e.Line("lw %s, %d($fp)", reg, offset)
}

// AddrFrame emits code to load the address offset(FP) into reg.
func (e *Emitter) AddrFrame(reg string, offset int) {
	e.Line("la %s, %d($fp)", reg, offset)
}

// Jump emits an unconditional jump to label.
func (e *Emitter) Jump(label string) {
	e.Line("j %s", label)
}

// BranchEqZero emits a branch to label if reg == 0.
func (e *Emitter) BranchEqZero(reg, label string) {
	e.Line("beq %s, $zero, %s", reg, label)
}

// BranchNeZero emits a branch to label if reg != 0.
func (e *Emitter) BranchNeZero(reg, label string) {
	e.Line("bne %s, $zero, %s", reg, label)
}

// Syscall codes used by cin/cout and program exit.
const (
	SyscallReadInt  = 5
	SyscallPrintInt = 1
	SyscallPrintStr = 4
	SyscallExit     = 10
)

// Syscall emits `li $v0, code` followed by `syscall`.
func (e *Emitter) Syscall(code int) {
	e.Line("li $v0, %d", code)
	e.Line("syscall")
}

// WriteTo assembles the final output — ".data" followed by the data
// buffer, then ".text" followed by the text buffer — and writes it to w.
func (e *Emitter) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}

// String returns the full assembled assembly text.
func (e *Emitter) String() string {
	var buf bytes.Buffer
	buf.WriteString(".data\n")
	buf.Write(e.dataBuf.Bytes())
	buf.WriteString(".text\n")
	buf.Write(e.textBuf.Bytes())
	return buf.String()
}

package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saffronjam/nativedb/internal/common"
)

const indent = "    "

// FunctionHeader is the signature line of one emitted native wrapper.
type FunctionHeader struct {
	ReturnType string
	Name       string
	Parameters []common.Param
}

// InvokeCall is the single statement in a wrapper body.
type InvokeCall struct {
	Token      string
	Hash       string
	ReturnType string
	Args       []string
}

// Writer accumulates a header document. Every method appends exactly the
// lines of one construct, so the output layout is decided here and nowhere
// else.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Preamble(product string) {
	w.buf.WriteString("#pragma once\n")
	w.buf.WriteString("#include <cstdint>\n\n")
	fmt.Fprintf(&w.buf, "// Generated by %s Native DB\n\n", product)
}

func (w *Writer) Vector3Struct() {
	w.buf.WriteString("struct Vector3 {\n")
	w.buf.WriteString(indent + "float x, y, z;\n")
	w.buf.WriteString("};\n\n")
}

func (w *Writer) OpenNamespace(name string) {
	fmt.Fprintf(&w.buf, "namespace %s {\n", name)
}

func (w *Writer) CloseNamespace() {
	w.buf.WriteString("}\n\n")
}

// Comment writes the "// <name> | <hash>" line above a wrapper.
func (w *Writer) Comment(name, hash string) {
	fmt.Fprintf(&w.buf, "%s// %s | %s\n", indent, name, hash)
}

func (w *Writer) FunctionHeader(h FunctionHeader) {
	params := make([]string, len(h.Parameters))
	for i, p := range h.Parameters {
		params[i] = p.Type + " " + p.Name
	}
	fmt.Fprintf(&w.buf, "%sstatic %s %s(%s) {\n", indent, h.ReturnType, h.Name, strings.Join(params, ", "))
}

// Invoke writes the body statement. Void natives get neither a return keyword
// nor a return type template argument.
func (w *Writer) Invoke(c InvokeCall) {
	args := strings.Join(c.Args, ", ")
	if common.IsVoidReturnType(c.ReturnType) {
		fmt.Fprintf(&w.buf, "%s%s%s<%s>(%s);\n", indent, indent, c.Token, c.Hash, args)
		return
	}
	fmt.Fprintf(&w.buf, "%s%sreturn %s<%s, %s>(%s);\n", indent, indent, c.Token, c.Hash, c.ReturnType, args)
}

func (w *Writer) CloseFunction() {
	w.buf.WriteString(indent + "}\n\n")
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteToFile writes the document, creating parent directories as needed.
func (w *Writer) WriteToFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, w.buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

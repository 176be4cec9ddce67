// Command machgoc is a worked example of the jit façade: it builds the
// "JIT-calc" function from spec.md §8 scenario S3 — mov rax, 0; add
// rax, k for each k in -k; ret — JITs it into executable memory, and
// prints the int32 result. It is a thin smoke-test driver, not part of
// the library's own import graph (assembling from text remains
// explicitly out of scope per spec.md §1).
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"j5.nz/machgo/buffer"
	"j5.nz/machgo/jit"
)

func main() {
	target := flag.String("target", "x86-64", "JIT target (x86-64, armv8-aarch64, mips32)")
	ks := flag.String("k", "3,4,5", "comma-separated constants to add")
	flag.Parse()

	if err := run(*target, *ks); err != nil {
		fmt.Fprintln(os.Stderr, "machgoc:", err)
		os.Exit(1)
	}
}

func run(target, ks string) error {
	c, err := jit.For(target)
	if err != nil {
		return fmt.Errorf("select target: %w", err)
	}

	var constants []int64
	for _, field := range strings.Split(ks, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		k, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return fmt.Errorf("parse constant %q: %w", field, err)
		}
		constants = append(constants, k)
	}

	if err := c.Enter(); err != nil {
		return err
	}
	if err := c.Mov(jit.Reg(jit.W64, 0), jit.Imm(jit.W64, 0)); err != nil {
		return err
	}
	for _, k := range constants {
		if err := c.Add(jit.Reg(jit.W64, 0), jit.Imm(jit.W64, uint64(k))); err != nil {
			return err
		}
	}
	if err := c.Leave(); err != nil {
		return err
	}
	if err := c.Ret(); err != nil {
		return err
	}

	src := &sliceSink{b: c.Bytes()}
	exe, err := buffer.NewExecutableFromSink(src)
	if err != nil {
		return fmt.Errorf("commit to executable memory: %w", err)
	}
	defer exe.Close()

	result := buffer.Execute[int32](exe)
	fmt.Println(result)
	return nil
}

// sliceSink adapts an already-assembled byte slice to buffer.DataSink
// so it can be copied into a buffer.Executable.
type sliceSink struct{ b []byte }

func (s *sliceSink) Append(byte) error        { panic("ICE: sliceSink is read-only") }
func (s *sliceSink) AppendBytes([]byte) error { panic("ICE: sliceSink is read-only") }
func (s *sliceSink) Size() int                { return len(s.b) }
func (s *sliceSink) Data() []byte             { return s.b }

// Command libplist builds a libplist-compatible C library.
// Build with: go build -buildmode=c-shared -o libplist.so ./cmd/libplist
package main

/*
#include <stdlib.h>
#include <stdint.h>
*/
import "C"

import (
	"log/slog"
	"os"
	"unsafe"

	"github.com/feather-lang/plist"
	"github.com/feather-lang/plist/internal/capi"
)

// reg holds every handle issued to C callers.
var reg = capi.New(capi.WithLogger(newLogger()))

// newLogger logs warnings to stderr; PLIST_DEBUG=1 lowers the level to debug.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("PLIST_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("component", "libplist")
}

func handle(h C.size_t) capi.Handle { return capi.Handle(h) }

func code(err error) C.int { return C.int(plist.CodeOf(err)) }

const codeInvalid = C.int(plist.CodeInvalidArg)

// export copies buf into C memory the caller releases with plist_mem_free.
// The copy is NUL-terminated; n receives the length without the terminator.
func export(buf []byte, dst **C.char, n *C.uint32_t) {
	p := C.malloc(C.size_t(len(buf) + 1))
	s := unsafe.Slice((*byte)(p), len(buf)+1)
	copy(s, buf)
	s[len(buf)] = 0
	*dst = (*C.char)(p)
	if n != nil {
		*n = C.uint32_t(len(buf))
	}
}

func goBytes(p *C.char, n C.uint32_t) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(p), C.int(n))
}

//export plist_mem_free
func plist_mem_free(ptr unsafe.Pointer) {
	C.free(ptr)
}

func main() {}

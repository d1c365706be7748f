// Command h5diag exercises the error bridge end to end against the in-memory
// fake native library: it registers a custom error class, creates major and
// minor codes under it, forces a failing native call, and renders the
// decoded diagnostic.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/scigolib/hdf5c"
	"github.com/scigolib/hdf5c/internal/native"
	"github.com/scigolib/hdf5c/internal/nativetest"
)

func main() {
	verbose := flag.Bool("v", false, "dump the full decoded error stack")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))

	fake := nativetest.New()
	native.SetActive(fake)

	cls, err := hdf5c.RegisterClass([]byte("demo"), []byte("h5diag"), []byte("0.1.0"))
	if err != nil {
		logger.Error("class registration failed", "err", err)
		os.Exit(1)
	}
	logger.Info("registered error class", "class_id", cls.ID())

	maj, err := hdf5c.NewMajor(cls, []byte("Demonstration subsystem"))
	if err != nil {
		logger.Error("major code creation failed", "err", err)
		os.Exit(1)
	}
	min, err := hdf5c.NewMinor(cls, []byte("Synthetic failure requested"))
	if err != nil {
		logger.Error("minor code creation failed", "err", err)
		os.Exit(1)
	}
	logger.Info("created message codes", "major", maj.Num, "minor", min.Num)

	// A stand-in for any fallible native operation: it pushes two frames
	// onto the thread's error stack and reports failure through its status.
	_, err = hdf5c.Check(func() hdf5c.Status {
		fake.Raise(
			native.Entry{
				ClassID:  native.Hid(cls.ID()),
				MajNum:   native.Hid(maj.Num),
				MinNum:   native.Hid(min.Num),
				Line:     42,
				FuncName: []byte("demo_inner"),
				FileName: []byte("demo.c"),
				Desc:     []byte("inner operation rejected the request"),
			},
			nativetest.Frame("outer wrapper saw the failure",
				nativetest.Builtin().MajInternal, nativetest.Builtin().MinCantInit),
		)
		return -1
	})
	if err == nil {
		logger.Error("expected the scripted call to fail")
		os.Exit(1)
	}

	var stackErr *hdf5c.Error
	if !errors.As(err, &stackErr) {
		logger.Error("unexpected error type", "err", err)
		os.Exit(1)
	}
	logger.Warn("native call failed", "err", err, "frames", len(stackErr.Records()))

	if *verbose {
		fmt.Print(stackErr.Details())
	}

	if err := hdf5c.ReleaseMinor(min); err != nil {
		logger.Error("minor release failed", "err", err)
	}
	if err := hdf5c.ReleaseMajor(maj); err != nil {
		logger.Error("major release failed", "err", err)
	}
	if err := hdf5c.UnregisterClass(cls); err != nil {
		logger.Error("class unregistration failed", "err", err)
	}
	logger.Info("registry cleaned up", "native_calls", fake.TotalCalls())
}

// SPDX-License-Identifier: MPL-2.0

package jsshell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsdoc/jsdocrun/pkg/types"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
)

// install defines the shell globals on vm.
func (s *shell) install(vm *goja.Runtime, script string, args []string) error {
	// Relative load() and readFile() paths resolve against the working
	// directory; require() additionally searches next to the script.
	registry := require.NewRegistry(
		require.WithGlobalFolders(filepath.Join(baseDir(script), "node_modules")),
	)
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(&printer{stdout: s.stdout, stderr: s.stderr}))
	registry.Enable(vm)
	console.Enable(vm)

	argv := make([]any, len(args))
	for i, a := range args {
		argv[i] = a
	}

	var stdin *bufio.Reader
	if s.stdin != nil {
		stdin = bufio.NewReader(s.stdin)
	}

	globals := map[string]any{
		"arguments":   vm.NewArray(argv...),
		"environment": s.environment(vm),
		"print":       s.print,
		"version":     func() string { return s.version },
		"quit": func(call goja.FunctionCall) goja.Value {
			code := types.ExitSuccess
			if arg := call.Argument(0); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
				code = types.ExitCode(arg.ToInteger()).Clamp()
			}
			vm.Interrupt(quitRequest{code: code})
			return goja.Undefined()
		},
		"readFile": func(call goja.FunctionCall) goja.Value {
			path := call.Argument(0).String()
			data, err := os.ReadFile(path)
			if err != nil {
				panic(vm.NewGoError(err))
			}
			return vm.ToValue(string(data))
		},
		"readline": func(call goja.FunctionCall) goja.Value {
			if prompt := call.Argument(0); !goja.IsUndefined(prompt) {
				fmt.Fprint(s.stdout, prompt.String())
			}
			if stdin == nil {
				return goja.Null()
			}
			line, err := stdin.ReadString('\n')
			if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
				return goja.Null()
			}
			return vm.ToValue(strings.TrimRight(line, "\r\n"))
		},
		"load": func(call goja.FunctionCall) goja.Value {
			for _, arg := range call.Arguments {
				s.load(vm, arg.String())
			}
			return goja.Undefined()
		},
	}

	for name, value := range globals {
		if err := vm.Set(name, value); err != nil {
			return fmt.Errorf("define %s: %w", name, err)
		}
	}
	return nil
}

// print writes its arguments separated by spaces and ends the line.
func (s *shell) print(call goja.FunctionCall) goja.Value {
	parts := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		parts[i] = arg.String()
	}
	fmt.Fprintln(s.stdout, strings.Join(parts, " "))
	return goja.Undefined()
}

// load evaluates another file in the global scope. Exceptions propagate to
// the caller; an interrupt (quit or cancellation) stays pending on the VM and
// unwinds the outer script as well.
func (s *shell) load(vm *goja.Runtime, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		panic(vm.NewGoError(fmt.Errorf("couldn't open file %q: %w", path, err)))
	}

	s.logger.Debug("loading script", "path", path)
	if _, err := vm.RunScript(path, string(src)); err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			vm.Interrupt(interrupted.Value())
			return
		}
		var exception *goja.Exception
		if errors.As(err, &exception) {
			panic(exception)
		}
		panic(vm.NewGoError(err))
	}
}

// environment builds a plain object from the KEY=VALUE list.
func (s *shell) environment(vm *goja.Runtime) *goja.Object {
	obj := vm.NewObject()
	for _, kv := range s.env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		_ = obj.Set(k, v) // Plain objects accept any string key.
	}
	return obj
}

// printer routes console output to the shell streams.
type printer struct {
	stdout io.Writer
	stderr io.Writer
}

func (p *printer) Log(msg string)   { fmt.Fprintln(p.stdout, msg) }
func (p *printer) Warn(msg string)  { fmt.Fprintln(p.stderr, msg) }
func (p *printer) Error(msg string) { fmt.Fprintln(p.stderr, msg) }

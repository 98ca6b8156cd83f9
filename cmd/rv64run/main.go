// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command rv64run loads an ELF binary and executes it on the RV64 core,
// the way the teacher's main.go drives its VM, rearranged around a Cobra
// command tree (github.com/spf13/cobra, matching the oisee-z80-optimizer
// CLI's root-plus-subcommand shape) instead of a single flag.Parse call.
package main

import (
	"debug/elf"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"rv64core/internal/flatmem"
	"rv64core/pkg/decoder"
	"rv64core/pkg/dispatch"
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
	"rv64core/pkg/trace"
	"rv64core/pkg/vmconfig"
)

func main() {
	var (
		configPath string
		maxSteps   uint64
		verbose    bool
		traceOut   string
	)

	rootCmd := &cobra.Command{
		Use:   "rv64run",
		Short: "Run RV64IMC+A+Zb*+Mop ELF binaries on the rv64core VM",
	}

	runCmd := &cobra.Command{
		Use:   "run [elf-binary]",
		Short: "Load and execute an ELF binary to completion or a step limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if maxSteps > 0 {
				cfg.Execution.MaxCycles = maxSteps
			}

			sink, closeSink, err := buildSink(verbose, traceOut)
			if err != nil {
				return err
			}
			defer closeSink()

			return runELF(args[0], cfg, sink)
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a TOML config file (defaults to the platform config path)")
	runCmd.Flags().Uint64Var(&maxSteps, "max-steps", 0, "Override the configured cycle limit (0 keeps the config value)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every call/return/jump/syscall event")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write trace events to this file instead of stderr")

	configCmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file to the platform config path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := vmconfig.DefaultConfig()
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Printf("Wrote default config to %s\n", vmconfig.GetConfigPath())
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, configCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string) (*vmconfig.Config, error) {
	if path == "" {
		return vmconfig.Load()
	}
	return vmconfig.LoadFrom(path)
}

func buildSink(verbose bool, traceOut string) (trace.Sink, func(), error) {
	if !verbose && traceOut == "" {
		return trace.NullSink{}, func() {}, nil
	}

	out := os.Stderr
	closeFn := func() {}
	if traceOut != "" {
		f, err := os.Create(traceOut)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create trace output: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}
	return trace.NewLogSink(log.New(out, "", log.LstdFlags)), closeFn, nil
}

// runELF loads prog's allocatable ELF sections into a flat 64-bit memory
// and runs it to an ECALL/EBREAK, a fault, or the configured cycle limit —
// the same three outcomes the teacher's VM.Run loop recognizes, just
// routed through pkg/dispatch instead of a hand-inlined loop.
func runELF(prog string, cfg *vmconfig.Config, sink trace.Sink) error {
	f, err := elf.Open(prog)
	if err != nil {
		return fmt.Errorf("can't read program: %w", err)
	}
	defer f.Close()

	mem := flatmem.New[reg.Reg64](cfg.Execution.MemorySize)
	raw := mem.Load()
	for _, s := range f.Sections {
		if s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		if s.Addr+s.Size > uint64(len(raw)) {
			return fmt.Errorf("section %s (addr %#x size %d) exceeds configured memory_size %d", s.Name, s.Addr, s.Size, len(raw))
		}
		if s.Type == elf.SHT_NOBITS {
			continue
		}
		if _, err := s.ReadAt(raw[s.Addr:s.Addr+s.Size], 0); err != nil {
			return fmt.Errorf("can't load section %s (addr %#x): %w", s.Name, s.Addr, err)
		}
	}

	m := machine.New[reg.Reg64](mem, reg.Reg64(f.Entry))
	m.SetReg(machine.SP, reg.Reg64(cfg.Execution.MemorySize-cfg.Execution.StackSize))

	dec := decoder.New(cfg.DecoderExtensions(), cfg.DecoderVersion())
	loop := dispatch.New[reg.Reg64](m, dec, sink, cfg.Execution.MaxCycles, cfg.Execution.DecodeCache)

	err = loop.Run(^uint64(0))
	if merr, ok := err.(*machine.Error); ok && merr.Kind == machine.ExternalRequest {
		return nil
	}
	return err
}

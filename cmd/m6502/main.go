// Command m6502 assembles, benchmarks, validates and interactively
// monitors programs on top of the mos6502 core.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/bdwalton/m6502/assembler"
	"github.com/bdwalton/m6502/mos6502"
	"github.com/bdwalton/m6502/monitor"
	"gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:  "m6502",
		Usage: "a cycle-counted MOS 6502 core, assembler and monitor",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "disassemble",
				Usage: "disassemble the instruction at $1000 (opcode handlers are not disassembled)",
			},
			&cli.BoolFlag{
				Name:    "check-opcodes",
				Aliases: []string{"O"},
				Usage:   "run the opcode-coverage check",
			},
			&cli.BoolFlag{
				Name:    "benchmarks",
				Aliases: []string{"B"},
				Usage:   "run the built-in benchmarks",
			},
			&cli.BoolFlag{
				Name:    "full-test",
				Aliases: []string{"F"},
				Usage:   "run the external 6502 validation binary",
			},
			&cli.StringFlag{
				Name:    "full-test-bin",
				Aliases: []string{"T"},
				Usage:   "path to the Klaus Dormann functional test binary",
				Value:   "testdata/6502_functional_test.bin",
			},
			&cli.BoolFlag{
				Name:    "monitor",
				Aliases: []string{"m"},
				Usage:   "enter the interactive monitor after assembly",
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	mem := mos6502.NewDirectMemory()
	cpu := mos6502.New(mem)
	asm := assembler.New(mem)
	asm.AttachCPU(cpu)

	if path := c.Args().First(); path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("reading %s: %v", path, err), 1)
		}
		if _, err := asm.Assemble(0x1000, string(src)); err != nil {
			return cli.Exit(fmt.Sprintf("assembly failed: %v", err), 1)
		}
		if err := writeDump(mem, asm.HighWaterMark()); err != nil {
			log.Printf("dump.dat not written: %v", err)
		}
	}

	if c.Bool("disassemble") {
		for _, addr := range []uint16{0x1000} {
			text, _ := mos6502.Disassemble(mem, addr)
			fmt.Printf("%04x: %s\n", addr, text)
		}
	}

	if c.Bool("check-opcodes") {
		documented, undefined := mos6502.CoverageReport()
		fmt.Printf("opcode coverage: %d documented, %d undefined (deterministic no-op)\n", documented, undefined)
	}

	if c.Bool("benchmarks") {
		runBenchmark(cpu)
	}

	if c.Bool("full-test") {
		if err := runFullTest(cpu, c.String("full-test-bin")); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if c.Bool("monitor") {
		mon := monitor.New(cpu, asm)
		return monitor.Loop(mon, monitor.NewTUI())
	}

	return nil
}

func writeDump(mem mos6502.Memory, highWater uint16) error {
	if highWater < 0x1000 {
		return nil
	}
	buf := make([]byte, 0, int(highWater)-0x1000+1)
	for addr := uint16(0x1000); addr <= highWater; addr++ {
		buf = append(buf, mem.Read(addr))
	}
	return os.WriteFile("dump.dat", buf, 0644)
}

func runBenchmark(cpu *mos6502.CPU) {
	cpu.LoadMem(0x1000, []uint8{0xA9, 0x00, 0xE8, 0x4C, 0x02, 0x10}) // LDA #0 / loop: INX / JMP loop
	cpu.SetPC(0x1000)
	start := time.Now()
	const n = 5_000_000
	cpu.Run(n)
	elapsed := time.Since(start)
	fmt.Printf("%d cycles in %s (%.1f MHz effective)\n", n, elapsed, float64(n)/elapsed.Seconds()/1e6)
}

func runFullTest(cpu *mos6502.CPU, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading validation binary: %w", err)
	}
	cpu.LoadMem(0, data)
	cpu.Write(0x3b91, 0x60) // patch the documented success loop to RTS
	cpu.SetPC(0x1000)
	cpu.Run(1_000_000_000)
	// Run exits via stack-wrap termination at the patched success RTS
	// (PC still pointing at it) on success; running out of cycles stuck
	// in an unrelated failure trap leaves PC parked somewhere else.
	if cpu.PC() != 0x3b91 {
		return fmt.Errorf("validation stalled at $%04x", cpu.PC())
	}
	fmt.Println("validation complete")
	return nil
}

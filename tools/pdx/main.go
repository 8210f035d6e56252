// Package pdx packages a compiled game into a runnable pdx bundle and runs
// it in the Playdate Simulator.
//
// The pdc compiler from the official SDK does the actual packaging; this tool
// stages the build artifacts into the pdx source layout, invokes pdc and
// optionally launches the result.
package pdx

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

var (
	flags = flag.NewFlagSet("pdx", flag.ExitOnError)

	run  = flags.Bool("run", false, "run the pdx in the simulator after packaging")
	name = flags.String("name", "", "pdx name, defaults to $PDX_NAME or the source dir's base name")
)

const usageString = `Game binary to pdx bundle packager.

Usage: %s [flags] <binary>

The binary is staged as pdex.bin into the pdx source dir and compiled with
the SDK's pdc. Directories are taken from $PDX_SOURCE_DIR and $PDX_OUT_DIR,
the SDK location from $PLAYDATE_SDK_PATH.

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "pdx")
	flags.PrintDefaults()
}

// Config locates the SDK and the pdx source and output directories. All
// values come from the environment; see ConfigFromEnv.
type Config struct {
	SDKPath   string
	SourceDir string
	OutDir    string
	Name      string
}

// ConfigFromEnv reads the packaging configuration from the environment.
// PLAYDATE_SDK_PATH is required; PDX_SOURCE_DIR and PDX_OUT_DIR default to
// "pdx_source" and "pdx_out", and PDX_NAME to the source dir's base name.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		SDKPath:   os.Getenv("PLAYDATE_SDK_PATH"),
		SourceDir: os.Getenv("PDX_SOURCE_DIR"),
		OutDir:    os.Getenv("PDX_OUT_DIR"),
		Name:      os.Getenv("PDX_NAME"),
	}
	if cfg.SDKPath == "" {
		return cfg, fmt.Errorf("pdx: PLAYDATE_SDK_PATH is not set")
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = "pdx_source"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "pdx_out"
	}
	if cfg.Name == "" {
		cfg.Name = filepath.Base(cfg.SourceDir)
	}
	return cfg, nil
}

// Compiler returns the path of the SDK's pdc binary.
func (c Config) Compiler() string {
	return filepath.Join(c.SDKPath, "bin", "pdc")
}

// Bundle returns the path of the packaged pdx bundle.
func (c Config) Bundle() string {
	return filepath.Join(c.OutDir, c.Name+".pdx")
}

// Build packages the staged source dir into a pdx bundle with pdc.
func Build(cfg Config) error {
	if err := os.MkdirAll(cfg.OutDir, 0o775); err != nil {
		return err
	}
	cmd := exec.Command(cfg.Compiler(), "-sdkpath", cfg.SDKPath, cfg.SourceDir, cfg.Bundle())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pdc: %w", err)
	}
	return nil
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}

	cfg, err := ConfigFromEnv()
	if err != nil {
		log.Fatalln(err)
	}
	if *name != "" {
		cfg.Name = *name
	}

	if err := Stage(cfg, flags.Arg(0)); err != nil {
		log.Fatalln("stage:", err)
	}
	if err := Build(cfg); err != nil {
		log.Fatalln(err)
	}

	if *run {
		code, err := RunSimulator(cfg, cfg.Bundle())
		if err != nil {
			log.Fatalln("simulator:", err)
		}
		os.Exit(code)
	}
}

// Stage copies the compiled game binary into the pdx source dir under the
// name pdc expects. Assets already in the source dir are left alone.
func Stage(cfg Config, binary string) error {
	if err := os.MkdirAll(cfg.SourceDir, 0o775); err != nil {
		return err
	}
	src, err := os.Open(binary)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(cfg.SourceDir, "pdex.bin"))
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

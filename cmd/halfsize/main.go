package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/halfsize"
	"github.com/bodgit/halfsize/tga"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// Exit codes, stable for scripts to branch on
const (
	exitOK          = 0
	exitUsage       = 3
	exitInputFile   = 4
	exitOutputFile  = 5
	exitBadFormat   = 6
	exitUnsupported = 7
)

const (
	usage     = "usage: halfsize <input.tga> <output.tga>"
	infoUsage = "usage: halfsize --info <file.tga>"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, halfsize.ErrOpenInput):
		return exitInputFile
	case errors.Is(err, halfsize.ErrOpenOutput), errors.Is(err, halfsize.ErrWrite):
		return exitOutputFile
	case errors.Is(err, tga.ErrUnsupported):
		return exitUnsupported
	default:
		return exitBadFormat
	}
}

func exitError(err error) error {
	if err == nil {
		return nil
	}
	return cli.NewExitError(err, exitCode(err))
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

type report struct {
	File   string      `yaml:"file"`
	Header tga.Header  `yaml:"header"`
	Type   string      `yaml:"type"`
	Footer *tga.Footer `yaml:"footer,omitempty"`
	Error  string      `yaml:"error,omitempty"`
}

func info(w io.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("%w: %v", halfsize.ErrOpenInput, err)
	}
	defer f.Close()

	h, err := tga.ReadHeader(f)
	if err != nil {
		return err
	}

	r := report{
		File:   file,
		Header: h,
		Type:   h.ImageType.String(),
	}

	// Still describe a rejected file, but exit with its category
	invalid := h.Validate()
	if invalid != nil {
		r.Error = invalid.Error()
	}

	if r.Footer, err = tga.ReadFooter(f); err != nil {
		return err
	}

	b, err := yaml.Marshal(&r)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: %v", halfsize.ErrWrite, err)
	}

	return invalid
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "halfsize"
	app.Usage = "Halve the resolution of uncompressed TGA images"
	app.Version = "1.0.0"
	app.ArgsUsage = "INPUT OUTPUT"

	// Positional arguments always name files, never commands
	app.HideHelp = true

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:  "info",
			Usage: "print the header and footer of `FILE` as YAML instead of converting",
		},
	}

	app.Action = func(c *cli.Context) error {
		if file := c.String("info"); file != "" {
			if c.NArg() != 0 {
				cli.ShowAppHelp(c)
				return cli.NewExitError(infoUsage, exitUsage)
			}

			return exitError(info(c.App.Writer, file))
		}

		if c.NArg() != 2 {
			cli.ShowAppHelp(c)
			return cli.NewExitError(usage, exitUsage)
		}

		h := halfsize.New(newLogger(c))

		return exitError(h.ConvertFile(c.Args().Get(0), c.Args().Get(1)))
	}

	return app
}

func main() {
	// Errors carrying an exit code are handled by the app itself
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

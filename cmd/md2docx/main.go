package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdConvert = "convert"
	cmdCheck   = "check"
	cmdConfig  = "config"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// ErrUnknownCommand is returned for an unrecognized first argument.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && looksLikeMarkdown(cmd) {
		cmd, rest = cmdConvert, args[1:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case cmdConvert:
		err = runConvertCmd(ctx, rest, env)
	case cmdCheck:
		err = runCheck(ctx, rest, env)
	case cmdConfig:
		err = runConfigCmd(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "md2docx %s\n", Version)
	case cmdHelp, "-h", "--help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether arg names a command.
func isCommand(arg string) bool {
	switch arg {
	case cmdConvert, cmdCheck, cmdConfig, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// looksLikeMarkdown reports whether arg is a markdown file name,
// allowing `md2docx notes.md` as a shorthand for convert.
func looksLikeMarkdown(arg string) bool {
	return !strings.HasPrefix(arg, "-") && fileutil.IsMarkdown(arg)
}

// hintFor returns an actionable hint for well-known failures, or "".
func hintFor(err error) string {
	var batch *batchError
	var hinted *hintedError
	var element *md2docx.UnsupportedElementError
	switch {
	case errors.As(err, &batch):
		return "" // per-file hints are printed with each FAILED line
	case errors.As(err, &hinted):
		return hinted.hint
	case errors.As(err, &element):
		return hints.ForUnsupportedElement(element.Kind)
	case errors.Is(err, md2docx.ErrUnsupportedElement):
		return hints.ForUnsupportedElement("")
	case errors.Is(err, md2docx.ErrUnrecognizedResourceType):
		return hints.ForUnrecognizedImage()
	case errors.Is(err, md2docx.ErrRemoteImageDisabled):
		return hints.ForRemoteImage()
	case errors.Is(err, md2docx.ErrTemplateNotFound):
		return hints.ForTemplateNotFound([]string{md2docx.DefaultTemplate})
	case errors.Is(err, ErrWriteDocx):
		return hints.ForOutputDirectory()
	}
	return ""
}

package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to DOCX")
	fmt.Fprintln(w, "  check      List markdown constructs that will not convert")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A markdown file given without a command is converted.")
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to DOCX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output .docx file or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "  -t, --template <s>          Template name or .docx path")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory holding templates/{name}.docx")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --tab-width <n>         Spaces per tab (1-16, default: 4)")
	fmt.Fprintln(w, "      --icon-marker <s>       Shortcode stripped from text (repeatable)")
	fmt.Fprintln(w, "      --quotes <mode>         Block quotes: error (default), skip")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code:")
	fmt.Fprintln(w, "      --highlight             Colour fenced code blocks")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style name (implies --highlight)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --allow-remote-images   Fetch http(s) images")
	fmt.Fprintln(w, "      --dpi <f>               Resolution for images without one (default: 96)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show timing and warnings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2DOCX_CONFIG, MD2DOCX_TEMPLATE, MD2DOCX_ASSET_PATH, MD2DOCX_INPUT_DIR,")
	fmt.Fprintln(w, "  MD2DOCX_OUTPUT_DIR, MD2DOCX_TAB_WIDTH, MD2DOCX_HIGHLIGHT_STYLE")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx check <input.md>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the blocks convert rejects (block quotes, broken image references)")
	fmt.Fprintln(w, "and the constructs it renders as plain text (tables, links, ...).")
	fmt.Fprintln(w, "Exits 4 when convert would fail on at least one file.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration convert would use, as YAML.")
	fmt.Fprintln(w, "The output can be saved and edited as a starting config file.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdCheck:
		printCheckUsage(env.Stdout)
	case cmdConfig:
		printConfigUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: md2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: md2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}

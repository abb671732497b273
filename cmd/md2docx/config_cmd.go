package main

import (
	"errors"

	flag "github.com/spf13/pflag"
)

// runConfigCmd prints the effective configuration as YAML: the named config
// (or defaults) with MD2DOCX_* values applied.
func runConfigCmd(args []string, env *Environment) error {
	flags, _, err := parseCommonFlags(cmdConfig, args)
	if errors.Is(err, flag.ErrHelp) {
		printConfigUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.config, loadEnvSettings(env.Getenv))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}

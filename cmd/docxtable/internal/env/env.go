// Package env maps DOCXTABLE_* environment variables onto command flags.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// GlobalPrefix is the environment prefix of the root command. Subcommand
// flags are read from GlobalPrefix_<COMMAND>_<FLAG>.
const GlobalPrefix = "docxtable"

const errorMessagePrefix = "error mapping environment variables to command flags"

// Prefix returns the environment prefix for command
func Prefix(command *cobra.Command) string {
	if !command.HasParent() {
		return GlobalPrefix
	}
	return fmt.Sprintf("%s_%s", GlobalPrefix, strings.ReplaceAll(command.Name(), "-", "_"))
}

// CheckEnvironmentVariables sets every flag of command that was not given
// on the command line from its environment variable, if present
func CheckEnvironmentVariables(command *cobra.Command) error {
	var errs []string
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(Prefix(command))

	apply := func(f *pflag.Flag) {
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			if err := f.Value.Set(fmt.Sprintf("%v", val)); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", f.Name, err))
				return
			}
			f.Changed = true
		}
	}
	command.LocalNonPersistentFlags().VisitAll(apply)
	if !command.HasParent() {
		command.PersistentFlags().VisitAll(apply)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}

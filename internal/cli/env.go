package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "termtable"

// checkEnvironmentVariables fills every flag not given on the command line
// from TERMTABLE_<FLAG>, with dashes in the flag name read as underscores.
func checkEnvironmentVariables(cmd *cobra.Command) error {
	var errs []string
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")
		if f.Changed || !v.IsSet(name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(name))); err != nil {
			errs = append(errs, fmt.Sprintf("%s_%s: %s", strings.ToUpper(envPrefix), strings.ToUpper(name), err))
		}
	})
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("mapping environment variables to flags: %s", strings.Join(errs, "; "))
}

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"claimboard/internal/core/version"
	perr "claimboard/internal/platform/errors"
)

// app carries resolved settings for one invocation
type app struct {
	v   *viper.Viper
	out io.Writer
	cfg string
}

func (a *app) client() *Client {
	return NewClient(a.v.GetString("server"), a.v.GetString("token"), a.v.GetDuration("timeout"))
}

func (a *app) printer() printer {
	return printer{w: a.out, format: a.v.GetString("output")}
}

// NewRootCmd builds the command tree writing results to out
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:   "claimboardctl",
		Short: "Operate a claimboard api",
		Long: `claimboardctl drives the claimboard operator endpoints: engine state,
leaderboard, member directory, claim ledger and marker maintenance.

Settings resolve from flags, then CLAIMBOARD_* environment variables,
then ~/.claimboard/config.yaml.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg, "config", "", "config file (default: $HOME/.claimboard/config.yaml)")
	pf.String("server", "http://localhost:8080", "api base url")
	pf.String("token", "", "admin bearer token")
	pf.StringP("output", "o", FormatTable, "output format: table, json or yaml")
	pf.Duration("timeout", 10*time.Second, "request timeout")
	for _, k := range []string{"server", "token", "output", "timeout"} {
		_ = a.v.BindPFlag(k, pf.Lookup(k))
	}

	root.AddCommand(
		versionCmd(a),
		engineCmd(a),
		leaderboardCmd(a),
		memberCmd(a),
		ledgerCmd(a),
		markersCmd(a),
	)
	return root
}

// initConfig reads the config file and environment
func (a *app) initConfig() error {
	a.v.SetEnvPrefix("CLAIMBOARD")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfg != "" {
		a.v.SetConfigFile(a.cfg)
		if err := a.v.ReadInConfig(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read config %s", a.cfg)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	a.v.AddConfigPath(filepath.Join(home, ".claimboard"))
	a.v.SetConfigType("yaml")
	a.v.SetConfigName("config")
	if err := a.v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing {
			return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read config")
		}
	}
	return nil
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := version.Info()
			_, err := fmt.Fprintf(a.out, "claimboardctl %s (%s)\n", v.Version, v.Commit)
			return err
		},
	}
}

// Execute runs the cli against os.Args
func Execute() error {
	return NewRootCmd(os.Stdout).Execute()
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"onthisday/internal/app"
	"onthisday/internal/config"
	appErrors "onthisday/internal/errors"
	"onthisday/internal/infra/webdav"
	"onthisday/internal/logging"
)

// cliContext is shared by all subcommands and filled in PersistentPreRunE.
type cliContext struct {
	v        *viper.Viper
	cfgFile  string
	verbose  bool
	logFile  string
	logger   logging.Logger
	closeLog func()
}

func (c *cliContext) engine() *app.Engine {
	return &app.Engine{
		Client: &webdav.Client{Logger: c.logger},
		Parser: webdav.Parser{},
		Logger: c.logger,
	}
}

func (c *cliContext) source() config.Source {
	return config.ViperSource{V: c.v}
}

func newRootCmd() *cobra.Command {
	cc := &cliContext{v: config.NewViper(), closeLog: func() {}}

	rootCmd := &cobra.Command{
		Use:           "onthisday",
		Short:         "Find photos on a Nextcloud/ownCloud server taken on this day in past years",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(cc.v, cc.cfgFile); err != nil {
				return appErrors.Wrap(appErrors.ConfigurationIncomplete, "config", cc.cfgFile, err)
			}
			logger, closeLog, err := logging.New(os.Stderr, cc.verbose, cc.logFile)
			if err != nil {
				return appErrors.Wrap(appErrors.IOFailure, "log", cc.logFile, err)
			}
			cc.logger = logger
			cc.closeLog = closeLog
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			cc.closeLog()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cc.cfgFile, "config", "", "config file (default is $HOME/.onthisday.yaml)")
	flags.BoolVarP(&cc.verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&cc.logFile, "log-file", "", "append a debug log to this file")
	flags.String("server", "", "server address, e.g. https://cloud.example.com")
	flags.String("user", "", "user name")
	flags.String("password", "", "password or app token")
	flags.String("target", "", "folder to check, relative to the user's files")
	flags.Duration("timeout", config.DefaultTimeout, "request timeout")

	bindings := map[string]string{
		config.KeyServerAddress: "server",
		config.KeyUsername:      "user",
		config.KeyPassword:      "password",
		config.KeyTargetPath:    "target",
		config.KeyTimeout:       "timeout",
	}
	for key, flag := range bindings {
		_ = cc.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newFoldersCmd(cc), newCheckCmd(cc), newFetchCmd(cc))
	return rootCmd
}

package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "unich",
		Short:         "Unich multi-account mining scheduler",
		Long:          "unich keeps a mining cycle running for every account in the credential file, routing each account through its assigned proxy and showing live state in a terminal dashboard.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/unich/config.toml, then ./config.toml)")

	load := func() (*app, error) {
		return wireApp(configPath)
	}

	runCmd := newRunCmd(load)
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	rootCmd.AddCommand(
		newVersionCmd(),
		runCmd,
		newCheckCmd(load),
		newAccountCmd(load),
		newProxyCmd(load),
		newConfigCmd(&configPath),
	)

	return rootCmd
}

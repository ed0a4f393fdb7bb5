// Package main implements didctl, a small CLI driving the enrollment
// pipeline over JSON fixtures for local testing and demos.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	FlagNetwork       = "network"
	FlagWallet        = "wallet"
	FlagTemplates     = "templates"
	FlagHelpers       = "helpers"
	FlagDid           = "did"
	FlagEnrolledCount = "enrolled-count"
	FlagLogLevel      = "log-level"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "didctl",
		Short: "Drive the biometric-to-DID enrollment pipeline over JSON fixtures",
		Long: `didctl exercises enrollment and verification against
locally stored finger-template and helper-data fixtures. It does not talk to
any ledger or network service; it is a development and demo tool.`,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.didctl.yaml)")
	rootCmd.PersistentFlags().String(FlagNetwork, "testnet", "DID network (mainnet, testnet)")
	rootCmd.PersistentFlags().String(FlagLogLevel, "info", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag(FlagNetwork, rootCmd.PersistentFlags().Lookup(FlagNetwork))
	_ = viper.BindPFlag(FlagLogLevel, rootCmd.PersistentFlags().Lookup(FlagLogLevel))

	rootCmd.AddCommand(enrollCmd())
	rootCmd.AddCommand(verifyIdentityCmd())
	rootCmd.AddCommand(verifyPresenceCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".didctl")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DIDCTL")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("didctl")
			fmt.Println("  Version: 0.1.0")
		},
	}
}

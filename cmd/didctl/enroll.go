package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func enrollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Run enrollment over a finger-template fixture and print the resulting record",
		RunE: func(cmd *cobra.Command, args []string) error {
			templatesPath := viper.GetString(FlagTemplates)
			wallet := viper.GetString(FlagWallet)
			if templatesPath == "" || wallet == "" {
				return cmd.Help()
			}

			templates, err := loadTemplates(templatesPath)
			if err != nil {
				return err
			}

			coord, err := newCoordinator(newLogger())
			if err != nil {
				return err
			}

			record, err := coord.Enroll(templates, wallet, time.Now().UTC())
			if err != nil {
				return err
			}
			return writeJSON(record)
		},
	}
	cmd.Flags().String(FlagTemplates, "", "path to a JSON finger-template fixture")
	cmd.Flags().String(FlagWallet, "", "controller wallet address")
	_ = viper.BindPFlag(FlagTemplates, cmd.Flags().Lookup(FlagTemplates))
	_ = viper.BindPFlag(FlagWallet, cmd.Flags().Lookup(FlagWallet))
	return cmd
}

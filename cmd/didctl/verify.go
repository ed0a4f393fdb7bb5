package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FractionEstate/decentralized-did/pkg/fuzzyextractor"
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
)

func verifyIdentityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-identity",
		Short: "Reproduce the master key from presented fingers and check it against a DID",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, helpers, err := loadVerifyFixtures()
			if err != nil {
				return err
			}
			expectedDID := viper.GetString(FlagDid)
			if expectedDID == "" {
				return cmd.Help()
			}

			coord, err := newCoordinator(newLogger())
			if err != nil {
				return err
			}

			ok, err := coord.VerifyIdentity(templates, helpers, expectedDID)
			if err != nil {
				return err
			}
			return writeJSON(map[string]any{"did": expectedDID, "match": ok})
		},
	}
	bindVerifyFlags(cmd)
	cmd.Flags().String(FlagDid, "", "expected DID to check against")
	_ = viper.BindPFlag(FlagDid, cmd.Flags().Lookup(FlagDid))
	return cmd
}

func verifyPresenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-presence",
		Short: "Aggregate presented fingers under fallback rules without checking a DID",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, helpers, err := loadVerifyFixtures()
			if err != nil {
				return err
			}
			enrolledCount := viper.GetInt(FlagEnrolledCount)
			if enrolledCount == 0 {
				return cmd.Help()
			}

			coord, err := newCoordinator(newLogger())
			if err != nil {
				return err
			}

			result, err := coord.VerifyPresence(templates, helpers, enrolledCount)
			if err != nil {
				return err
			}
			return writeJSON(map[string]any{
				"tier":             result.Tier(),
				"fallback_mode":    result.FallbackMode,
				"fingers_used":     result.FingersUsed,
				"average_quality":  result.AverageQuality,
				"fingers_enrolled": result.FingersEnrolled,
			})
		},
	}
	bindVerifyFlags(cmd)
	cmd.Flags().Int(FlagEnrolledCount, 0, "number of fingers originally enrolled")
	_ = viper.BindPFlag(FlagEnrolledCount, cmd.Flags().Lookup(FlagEnrolledCount))
	return cmd
}

func bindVerifyFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagTemplates, "", "path to a JSON finger-template fixture")
	cmd.Flags().String(FlagHelpers, "", "path to a JSON helper-data fixture")
	_ = viper.BindPFlag(FlagTemplates, cmd.Flags().Lookup(FlagTemplates))
	_ = viper.BindPFlag(FlagHelpers, cmd.Flags().Lookup(FlagHelpers))
}

func loadVerifyFixtures() ([]minutia.FingerTemplate, map[minutia.FingerID]fuzzyextractor.Helper, error) {
	templates, err := loadTemplates(viper.GetString(FlagTemplates))
	if err != nil {
		return nil, nil, err
	}
	helpers, err := loadHelpers(viper.GetString(FlagHelpers))
	if err != nil {
		return nil, nil, err
	}
	return templates, helpers, nil
}

package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/FractionEstate/decentralized-did/internal/auditlog"
	"github.com/FractionEstate/decentralized-did/pkg/did"
	"github.com/FractionEstate/decentralized-did/pkg/enrollment"
	"github.com/FractionEstate/decentralized-did/pkg/ledgermem"
)

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(viper.GetString(FlagLogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func newCoordinator(logger zerolog.Logger) (*enrollment.Coordinator, error) {
	network := did.Network(viper.GetString(FlagNetwork))
	if !network.Valid() {
		return nil, fmt.Errorf("invalid --%s: %q", FlagNetwork, network)
	}
	return enrollment.New(enrollment.Config{
		Network: network,
		Ledger:  ledgermem.New(),
		RNG:     rand.Reader,
		Logger:  logger,
		Audit:   auditlog.New(logger, 0),
	}), nil
}

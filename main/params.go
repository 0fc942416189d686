// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/avalanchego/database/leveldb"
	"github.com/ava-labs/contractvm/contracts"
	"github.com/ava-labs/contractvm/contractvm"

	log "github.com/inconshreveable/log15"
)

const (
	dataDirKey  = "data-dir"
	logLevelKey = "log-level"

	envPrefix = "CVM"

	ledgerDirName = "ledger"
)

// config carries the settings shared by every subcommand.
type config struct {
	dataDir  string
	logLevel string
}

// getViper binds the given flags and CVM_-prefixed environment variables
// into one config source. Flags win over environment, environment over
// defaults.
func getViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

func (c *config) load(fs *pflag.FlagSet) error {
	v, err := getViper(fs)
	if err != nil {
		return err
	}
	c.dataDir = v.GetString(dataDirKey)
	c.logLevel = v.GetString(logLevelKey)
	return nil
}

func (c *config) setupLogging() error {
	lvl, err := log.LvlFromString(c.logLevel)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", c.logLevel, err)
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat())))
	return nil
}

// openRuntime opens the sandbox ledger under the data directory and builds
// a runtime with the built-in catalog over it. The caller owns Close.
func (c *config) openRuntime() (*contractvm.Runtime, error) {
	dbPath := filepath.Join(c.dataDir, ledgerDirName)
	db, err := leveldb.New(dbPath, nil, logging.NoLog{}, "", prometheus.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("couldn't open ledger at %s: %w", dbPath, err)
	}

	rt, err := contractvm.New(db, contracts.Catalog())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return rt, nil
}

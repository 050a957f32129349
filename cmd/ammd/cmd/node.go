package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
)

// GenesisDoc is the file written by init and loaded on first start.
type GenesisDoc struct {
	GenesisTime time.Time        `json:"genesis_time"`
	ChainID     string           `json:"chain_id"`
	AppState    app.GenesisState `json:"app_state"`
}

func genesisPath(home string) string {
	return filepath.Join(home, configDirName, genesisName)
}

func readGenesis(home string) (*GenesisDoc, error) {
	bz, err := os.ReadFile(genesisPath(home))
	if err != nil {
		return nil, fmt.Errorf("read genesis: %w", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, fmt.Errorf("decode genesis: %w", err)
	}
	if doc.ChainID != app.ChainID {
		return nil, fmt.Errorf("genesis chain id %q, expected %q", doc.ChainID, app.ChainID)
	}
	return &doc, nil
}

func writeGenesis(home string, doc *GenesisDoc) error {
	bz, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	path := genesisPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o644)
}

// openApp opens the node database, loading genesis.json on first use.
func openApp(cmd *cobra.Command) (*app.AMMApp, error) {
	nc, err := getNodeContext(cmd)
	if err != nil {
		return nil, err
	}

	dataDir := filepath.Join(nc.home, dataDirName)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	db, err := dbm.NewDB(applicationDB, nc.config.DBBackend, dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	amm, err := app.NewAMMApp(nc.logger, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if amm.LastHeight() > 0 {
		return amm, nil
	}

	doc, err := readGenesis(nc.home)
	if err != nil {
		amm.Close()
		return nil, err
	}
	if err := amm.InitChain(doc.AppState, doc.GenesisTime); err != nil {
		amm.Close()
		return nil, err
	}
	return amm, nil
}

// nextBlockTime is the wall clock, clamped to the last block time.
func nextBlockTime(amm *app.AMMApp) time.Time {
	t := time.Now().UTC()
	if last := amm.LastBlockTime(); t.Before(last) {
		return last
	}
	return t
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

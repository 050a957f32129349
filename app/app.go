// Package app wires the AMM keepers onto a committed multistore.
package app

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authcodec "github.com/cosmos/cosmos-sdk/x/auth/codec"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	pairkeeper "github.com/paw-chain/amm/x/pair/keeper"
	pairtypes "github.com/paw-chain/amm/x/pair/types"
	registrykeeper "github.com/paw-chain/amm/x/registry/keeper"
	registrytypes "github.com/paw-chain/amm/x/registry/types"
	routerkeeper "github.com/paw-chain/amm/x/router/keeper"
	routertypes "github.com/paw-chain/amm/x/router/types"
	tokenkeeper "github.com/paw-chain/amm/x/token/keeper"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// ChainID is stamped on every block header.
const ChainID = "amm-1"

const metaStoreKey = "meta"

var lastBlockTimeKey = []byte("last_block_time")

var (
	// ErrNotInitialized is returned by Exec and Query before InitChain.
	ErrNotInitialized = errors.New("app: chain not initialized")
	// ErrAlreadyInitialized is returned by InitChain on a non-empty database.
	ErrAlreadyInitialized = errors.New("app: chain already initialized")
	// ErrBlockTimeRegression is returned when Exec is asked to go back in time.
	ErrBlockTimeRegression = errors.New("app: block time before last block")
)

// maccPerms lists the module accounts the AMM uses. None of them mint or
// burn native coin.
var maccPerms = map[string][]string{
	registrytypes.ModuleName: nil,
	routertypes.ModuleName:   nil,
}

// AMMApp owns the multistore and the keepers. Every state transition runs
// through Exec, which serialises them and commits one version per call.
type AMMApp struct {
	logger   log.Logger
	db       dbm.DB
	cms      storetypes.CommitMultiStore
	appCodec codec.Codec
	keys     map[string]*storetypes.KVStoreKey
	tracer   *Tracer

	mu sync.RWMutex

	AccountKeeper  authkeeper.AccountKeeper
	BankKeeper     bankkeeper.BaseKeeper
	TokenKeeper    *tokenkeeper.Keeper
	PairKeeper     *pairkeeper.Keeper
	RegistryKeeper *registrykeeper.Keeper
	RouterKeeper   *routerkeeper.Keeper
}

// NewAMMApp mounts one IAVL store per module on db and loads the latest
// committed version.
func NewAMMApp(logger log.Logger, db dbm.DB) (*AMMApp, error) {
	SetConfig()

	encodingConfig := MakeEncodingConfig()
	appCodec := encodingConfig.Codec

	keys := storetypes.NewKVStoreKeys(
		authtypes.StoreKey,
		banktypes.StoreKey,
		tokentypes.StoreKey,
		pairtypes.StoreKey,
		registrytypes.StoreKey,
		routertypes.StoreKey,
		metaStoreKey,
	)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("NewAMMApp: load latest version: %w", err)
	}

	app := &AMMApp{
		logger:   logger.With("module", "app"),
		db:       db,
		cms:      cms,
		appCodec: appCodec,
		keys:     keys,
		tracer:   NewTracer(),
	}

	authority := authtypes.NewModuleAddress(Name).String()
	app.AccountKeeper = authkeeper.NewAccountKeeper(
		appCodec, runtime.NewKVStoreService(keys[authtypes.StoreKey]), authtypes.ProtoBaseAccount, maccPerms,
		authcodec.NewBech32Codec(Bech32PrefixAccAddr), Bech32PrefixAccAddr, authority,
	)
	app.BankKeeper = bankkeeper.NewBaseKeeper(
		appCodec, runtime.NewKVStoreService(keys[banktypes.StoreKey]), app.AccountKeeper, map[string]bool{}, authority, logger,
	)

	// The pair keeper reads the protocol fee recipient from the registry, and
	// the registry instantiates pairs through the pair keeper.
	app.TokenKeeper = tokenkeeper.NewKeeper(keys[tokentypes.StoreKey], app.BankKeeper)
	app.PairKeeper = pairkeeper.NewKeeper(keys[pairtypes.StoreKey], app.TokenKeeper)
	app.RegistryKeeper = registrykeeper.NewKeeper(keys[registrytypes.StoreKey], app.TokenKeeper, app.PairKeeper)
	app.PairKeeper.SetRegistryKeeper(app.RegistryKeeper)
	app.RouterKeeper = routerkeeper.NewKeeper(
		keys[routertypes.StoreKey],
		app.TokenKeeper,
		app.TokenKeeper,
		app.PairKeeper,
		app.RegistryKeeper,
		app.BankKeeper,
	)

	return app, nil
}

// Logger returns the application logger.
func (app *AMMApp) Logger() log.Logger {
	return app.logger
}

// AppCodec returns the codec used by the auth and bank stores.
func (app *AMMApp) AppCodec() codec.Codec {
	return app.appCodec
}

// LastHeight is the last committed version.
func (app *AMMApp) LastHeight() int64 {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cms.LastCommitID().Version
}

// LastBlockTime is the block time of the last committed version.
func (app *AMMApp) LastBlockTime() time.Time {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.lastBlockTime(app.cms.CacheMultiStore())
}

func (app *AMMApp) lastBlockTime(ms storetypes.MultiStore) time.Time {
	bz := ms.GetKVStore(app.keys[metaStoreKey]).Get(lastBlockTimeKey)
	if len(bz) != 8 {
		return time.Time{}
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(bz))).UTC()
}

func (app *AMMApp) newContext(ms storetypes.MultiStore, height int64, blockTime time.Time) sdk.Context {
	header := cmtproto.Header{ChainID: ChainID, Height: height, Time: blockTime}
	return sdk.NewContext(ms, header, false, app.logger)
}

// Exec runs fn as the next block at blockTime and commits the result. The
// state fn leaves behind is committed even when fn fails: keepers roll back
// their own failed steps, and what survives a failure (pending refunds, for
// example) must persist.
func (app *AMMApp) Exec(blockTime time.Time, fn func(ctx sdk.Context) error) (sdk.Events, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	last := app.cms.LastCommitID().Version
	if last == 0 {
		return nil, ErrNotInitialized
	}
	return app.commitBlock(last+1, blockTime, true, fn)
}

func (app *AMMApp) commitBlock(height int64, blockTime time.Time, commitOnError bool, fn func(ctx sdk.Context) error) (sdk.Events, error) {
	blockTime = blockTime.UTC()
	cache := app.cms.CacheMultiStore()
	if prev := app.lastBlockTime(cache); blockTime.Before(prev) {
		return nil, fmt.Errorf("%w: %s < %s", ErrBlockTimeRegression, blockTime, prev)
	}

	ctx := app.newContext(cache, height, blockTime)
	span := app.tracer.StartBlock(ctx, height)
	err := fn(ctx)
	span.End(err)
	if err != nil && !commitOnError {
		return nil, err
	}

	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(blockTime.UnixNano()))
	cache.GetKVStore(app.keys[metaStoreKey]).Set(lastBlockTimeKey, bz)
	cache.Write()
	commitID := app.cms.Commit()

	app.logger.Debug("block committed", "height", commitID.Version, "hash", fmt.Sprintf("%X", commitID.Hash), "failed", err != nil)
	return ctx.EventManager().Events(), err
}

// Query runs fn read-only against the last committed state.
func (app *AMMApp) Query(fn func(ctx sdk.Context) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()

	last := app.cms.LastCommitID().Version
	if last == 0 {
		return ErrNotInitialized
	}
	cache := app.cms.CacheMultiStore()
	return fn(app.newContext(cache, last, app.lastBlockTime(cache)))
}

// CheckInvariants runs the pair invariants against the committed state.
func (app *AMMApp) CheckInvariants() error {
	return app.Query(func(ctx sdk.Context) error {
		msg, broken := pairkeeper.AllInvariants(*app.PairKeeper)(ctx)
		if broken {
			return fmt.Errorf("invariant broken: %s", msg)
		}
		return nil
	})
}

// Close releases the database.
func (app *AMMApp) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.db.Close()
}

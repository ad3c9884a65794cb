package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/chains/thor"
	"github.com/sisu-network/thortx/chains/thor/tx"
	"github.com/sisu-network/thortx/client"
	"github.com/sisu-network/thortx/config"
	"github.com/sisu-network/thortx/core"
	"github.com/sisu-network/thortx/database"
	"github.com/sisu-network/thortx/network"
	"github.com/sisu-network/thortx/server"
	"github.com/sisu-network/thortx/utils"
	"github.com/sisu-network/thortx/wallet"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "thortx.toml",
		Usage:   "path of the toml config",
	}

	serveCommand = &cli.Command{
		Name:   "serve",
		Usage:  "run the dispatcher and the gas payer json-rpc server",
		Flags:  []cli.Flag{configFlag},
		Action: serve,
	}

	decodeCommand = &cli.Command{
		Name:      "decode",
		Usage:     "decode a raw transaction into json",
		ArgsUsage: "<raw hex>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "unsigned", Usage: "the raw tx has no signature field"},
		},
		Action: decode,
	}

	gasCommand = &cli.Command{
		Name:      "gas",
		Usage:     "compute the intrinsic gas of a json list of clauses",
		ArgsUsage: `'[{"to":"0x..","value":"1","data":"0x"}]'`,
		Action:    intrinsicGas,
	}

	fundCommand = &cli.Command{
		Name:      "fund",
		Usage:     "send VET or VTHO from a mnemonic account",
		ArgsUsage: "<address=amount>...",
		Flags: []cli.Flag{
			configFlag,
			&cli.UintFlag{Name: "index", Usage: "account index of the sender"},
			&cli.StringFlag{Name: "token", Value: string(wallet.TokenVET), Usage: "VET or VTHO"},
			&cli.BoolFlag{Name: "delegated", Usage: "let the configured delegator pay the gas"},
		},
		Action: fund,
	}

	configCommand = &cli.Command{
		Name:  "config",
		Usage: "write a sample config",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "thortx.toml", Usage: "output path"},
		},
		Action: writeConfig,
	}

	mnemonicCommand = &cli.Command{
		Name:   "mnemonic",
		Usage:  "generate a new mnemonic",
		Action: newMnemonic,
	}
)

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	return hexutil.Decode(s)
}

func printJson(v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(bz))
	return nil
}

// resolveChainTag asks the node for the chain tag unless the config sets one.
func resolveChainTag(ctx context.Context, cfg *config.Chain, thorClient thor.ThorClient) error {
	if cfg.ChainTag >= 0 {
		return nil
	}

	tag, err := thorClient.ChainTag(ctx)
	if err != nil {
		return fmt.Errorf("cannot get chain tag from %s: %w", cfg.NodeUrl, err)
	}

	log.Infof("Chain tag of %s is 0x%02x", cfg.Chain, tag)
	cfg.ChainTag = int(tag)
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	var delegatorKey []byte
	if cfg.DelegatorKey != "" {
		delegatorKey, err = decodeHex(cfg.DelegatorKey)
		if err != nil {
			return fmt.Errorf("invalid delegator key: %w", err)
		}
	}

	db := database.NewDb(cfg.Db)
	if err := db.Init(); err != nil {
		return err
	}
	defer db.Close()

	thorClient := thor.NewThorClient(cfg.Chain.NodeUrl, network.NewHttp())
	if err := resolveChainTag(c.Context, &cfg.Chain, thorClient); err != nil {
		return err
	}

	processor := core.NewProcessor(cfg.Chain, db, thorClient)
	processor.Start()
	defer processor.Stop()

	api, err := server.NewApi(cfg.Chain.Chain, cfg.Chain.ChainTag, processor, delegatorKey)
	if err != nil {
		return err
	}

	handler, err := server.NewRpcHandler(api)
	if err != nil {
		return err
	}

	srv := server.NewServer(handler, cfg.ServerPort)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("Shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Failed to shut down server, err = ", err)
		}
	}()

	return srv.Run()
}

func decode(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one raw tx")
	}

	raw, err := decodeHex(c.Args().First())
	if err != nil {
		return err
	}

	t, err := tx.Decode(raw, !c.Bool("unsigned"))
	if err != nil {
		return err
	}

	return printJson(t)
}

func intrinsicGas(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected a json list of clauses")
	}

	var clauses []tx.RawClause
	if err := json.Unmarshal([]byte(c.Args().First()), &clauses); err != nil {
		return err
	}

	gas, err := tx.IntrinsicGasOf(clauses)
	if err != nil {
		return err
	}

	fmt.Println(gas)
	return nil
}

func parseTransfers(args []string) ([]wallet.Transfer, error) {
	transfers := make([]wallet.Transfer, 0, len(args))
	for _, arg := range args {
		addr, amount, ok := strings.Cut(arg, "=")
		if !ok || !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid transfer %q, expected <address=amount>", arg)
		}

		wei, err := utils.ToWei(amount)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, wallet.Transfer{To: common.HexToAddress(addr), Amount: wei})
	}

	return transfers, nil
}

func fund(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if cfg.Mnemonic == "" {
		return fmt.Errorf("mnemonic is not configured")
	}

	transfers, err := parseTransfers(c.Args().Slice())
	if err != nil {
		return err
	}

	thorClient := thor.NewThorClient(cfg.Chain.NodeUrl, network.NewHttp())
	if err := resolveChainTag(c.Context, &cfg.Chain, thorClient); err != nil {
		return err
	}

	var delegator client.DelegatorClient
	delegated := c.Bool("delegated")
	if delegated {
		if cfg.DelegatorUrl == "" {
			return fmt.Errorf("delegator_url is not configured")
		}
		delegator = client.NewDelegatorClient(cfg.DelegatorUrl)
		delegator.TryDial()
	}

	w, err := wallet.NewWallet(cfg.Chain, cfg.Mnemonic, thorClient,
		thor.NewDispatcher(cfg.Chain.Chain, thorClient, nil), delegator)
	if err != nil {
		return err
	}

	result, err := w.Fund(c.Context, uint32(c.Uint("index")), wallet.Token(strings.ToUpper(c.String("token"))),
		transfers, delegated)
	if err != nil {
		return err
	}

	if err := printJson(result); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("dispatch failed: %s", result.Err)
	}

	return nil
}

func writeConfig(c *cli.Context) error {
	path := c.String("out")
	if err := config.Write(path, config.Default()); err != nil {
		return err
	}

	log.Info("Config is written to ", path)
	return nil
}

func newMnemonic(c *cli.Context) error {
	mnemonic, err := wallet.NewMnemonic()
	if err != nil {
		return err
	}

	fmt.Println(mnemonic)
	return nil
}

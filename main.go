package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"ABIProbe/account"
	"ABIProbe/chainclient"
	"ABIProbe/config"
	"ABIProbe/executor"
	"ABIProbe/generator"
	"ABIProbe/schema"
	"ABIProbe/utils"
)

func main() {
	app := &cli.App{
		Name:  "abiprobe",
		Usage: "derive test cases from a contract interface and run them against a live network",
		Flags: []cli.Flag{
			configFlag,
			abiFlag,
			targetFlag,
			networkFlag,
			seedFlag,
			skipValidationFlag,
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "abiprobe: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := utils.NewLogger(cfg.Log.Directory)
	if err != nil {
		return err
	}
	defer logger.Close()

	cfg.PrintConfig()

	raw, err := os.ReadFile(c.String("abi"))
	if err != nil {
		return fmt.Errorf("failed to read interface description: %w", err)
	}
	parsed, err := schema.Parse(raw)
	if err != nil {
		return err
	}
	for _, reason := range parsed.Skipped {
		logger.Warn("skipped interface entry: %s", reason)
	}
	if len(parsed.Functions) == 0 {
		return fmt.Errorf("interface description contains no usable functions")
	}
	logger.Info("parsed %d functions (%d entries skipped)", len(parsed.Functions), len(parsed.Skipped))

	targetHex := c.String("target")
	if !common.IsHexAddress(targetHex) {
		return fmt.Errorf("invalid target address %q", targetHex)
	}
	target := common.HexToAddress(targetHex)

	syn := generator.New()
	if seed := c.Int64("seed"); seed != 0 {
		syn = generator.NewWithSeed(seed)
	}
	cases := syn.Synthesize(parsed.Functions, target)
	logger.Info("derived %d test cases", len(cases))
	utils.PrintCases(cases)

	contractABI, err := chainclient.BuildABI(parsed.Functions)
	if err != nil {
		return err
	}
	signer, err := account.NewManager(cfg.SignerKey())
	if err != nil {
		return err
	}

	exec := executor.New(cfg, signer, contractABI, logger)
	if err := exec.ConfigureNetwork(c.String("network")); err != nil {
		return err
	}

	if ok, advisory := exec.ValidateTarget(ctx, targetHex); !ok {
		if !c.Bool("skip-validation") {
			return fmt.Errorf("target validation failed: %s", advisory)
		}
		logger.Warn("target validation failed (%s), continuing anyway", advisory)
	}

	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	resultPath := filepath.Join(cfg.Output.Directory, cfg.Output.ResultFile)
	if err := utils.InitResultFile(resultPath, fmt.Sprintf("run against %s on %s", targetHex, exec.Network())); err != nil {
		return err
	}

	for update := range exec.ExecuteBatch(ctx, cases) {
		if update.Result == nil {
			logger.Info("running case %d/%d: %s", update.Index+1, len(cases), update.Case.Name)
			continue
		}
		utils.PrintCaseResult(update.Index, update.Case)
		lines := []string{fmt.Sprintf("%s case=%s status=%s result=%q",
			update.Result.CompletedAt.Format("2006-01-02T15:04:05"),
			update.Case.Name, update.Case.Status, update.Case.ActualResult)}
		lines = append(lines, update.Result.Logs...)
		if err := utils.AppendResultLines(resultPath, lines); err != nil {
			logger.Error("failed to record result: %v", err)
		}
	}

	utils.PrintSummary(cases)
	return nil
}

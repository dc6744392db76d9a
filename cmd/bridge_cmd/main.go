package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/dashpay/asset-lock-bridge/bridgelog"
	"github.com/dashpay/asset-lock-bridge/bridgestate"
	"github.com/dashpay/asset-lock-bridge/config"
	"github.com/dashpay/asset-lock-bridge/hdwallet"
	"github.com/dashpay/asset-lock-bridge/insightclient"
	"github.com/dashpay/asset-lock-bridge/islockclient"
)

const envConfigFilePath = "BRIDGE_CONFIG"

func main() {
	bridgelog.ConfigInfoLogger()

	viper.AutomaticEnv()
	configFile := viper.GetString(envConfigFilePath)
	fmt.Printf("Bridge configuration file = %s\n", configFile)

	if !config.FileExists(configFile) {
		fmt.Printf("Bridge configuration file not found: %s\n", configFile)
		return
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Printf("Error loading bridge configuration: %s\n", err)
		return
	}
	bridgelog.ConfigureFromStrings(cfg.LogLevel, cfg.LogFormat, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		captured := <-sig
		fmt.Printf("\nReceived interrupt signal, shutting down... %v\n", captured)
		cancel()
		os.Exit(0)
	}()

	fmt.Println(strings.Repeat("=", 30))
	fmt.Println("Welcome to the Dash asset-lock bridge command line tool.")
	fmt.Printf("Network: %s\n", cfg.Network.Name)

	mode := promptMode()

	progress := make(chan *bridgestate.State, 8)
	go func() {
		for s := range progress {
			if s.Retry.IsRetrying {
				fmt.Printf("[retry %d/%d] %s\n", s.Retry.Attempt, s.Retry.MaxAttempts, s.Step)
			} else {
				fmt.Printf("[state] step=%s\n", s.Step)
			}
		}
	}()

	insight := insightclient.NewClient(insightclient.Config{BaseURL: cfg.InsightURL})
	islock := islockclient.NewClient(islockclient.Config{RPCURL: cfg.IslockURL})
	driver := bridgestate.NewDriver(bridgestate.Collaborators{
		Insight:      insight,
		Islock:       islock,
		Platform:     unconfiguredPlatform{},
		MinUTXOValue: cfg.MinUTXOValue,
	}, progress)

	s := bridgestate.NewState(cfg.Network, mode)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			close(progress)
			return
		default:
		}

		fmt.Println()
		fmt.Printf("Mode: %s, step: %s\n", s.Mode, s.Step)
		fmt.Println("What to do:")
		fmt.Println("1) Generate keys")
		fmt.Println("2) Wait for deposit")
		fmt.Println("3) Recheck deposit")
		fmt.Println("4) Show key backup")
		fmt.Println("5) Run pipeline to completion")
		fmt.Println("6) Quit")
		fmt.Print("Type option and press Enter: ")

		if !scanner.Scan() {
			break
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			s, err = generateKeys(driver, s)
			reportError(err)
		case "2":
			s, err = waitForDeposit(ctx, driver, s)
			reportError(err)
		case "3":
			s, err = waitForDeposit(ctx, driver, s)
			reportError(err)
		case "4":
			showBackup(s)
		case "5":
			s, err = runToCompletion(ctx, driver, s)
			reportError(err)
		case "6":
			close(progress)
			return
		default:
			fmt.Println("Unknown option, try again.")
		}
	}
}

func promptMode() bridgestate.Mode {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Select a mode:")
	fmt.Println("1) create   - derive a new HD identity and fund it")
	fmt.Println("2) topup    - add credits to an existing identity")
	fmt.Println("3) fundAddress - fund a platform address you control")
	fmt.Println("4) sendToAddress - fund a third party's platform address")
	fmt.Println("5) dpns     - register a DPNS username")
	fmt.Println("6) manage   - add/disable identity keys")
	fmt.Print("Type option and press Enter: ")
	scanner.Scan()
	switch strings.TrimSpace(scanner.Text()) {
	case "2":
		return bridgestate.ModeTopUp
	case "3":
		return bridgestate.ModeFundAddress
	case "4":
		return bridgestate.ModeSendToAddress
	case "5":
		return bridgestate.ModeDPNS
	case "6":
		return bridgestate.ModeManage
	default:
		return bridgestate.ModeCreate
	}
}

func generateKeys(d *bridgestate.Driver, s *bridgestate.State) (*bridgestate.State, error) {
	s = s.EnterConfigureKeys()
	if s.Mode == bridgestate.ModeCreate {
		next, err := d.GenerateKeysForCreate(s, "", hdwallet.Strength12Words)
		if err != nil {
			return s, err
		}
		fmt.Printf("Deposit address: %s\n", next.DepositAddress)
		fmt.Printf("Mnemonic (write this down, shown once): %s\n", next.Mnemonic)
		return next, nil
	}
	next, err := d.GenerateOneTimeAssetLockKey(s)
	if err != nil {
		return s, err
	}
	fmt.Printf("Deposit address: %s\n", next.DepositAddress)
	return next, nil
}

func waitForDeposit(ctx context.Context, d *bridgestate.Driver, s *bridgestate.State) (*bridgestate.State, error) {
	if s.DepositAddress == "" {
		return s, fmt.Errorf("generate keys first")
	}
	next, err := d.WaitForDeposit(ctx, s, 5*time.Minute, 5*time.Second)
	if err != nil {
		return s, err
	}
	if next.DepositTimedOut {
		fmt.Println("No deposit detected yet; observed total:", next.DetectedDepositAmount)
	} else {
		fmt.Printf("Deposit detected: %d duffs (txid %s)\n", next.DetectedDepositAmount, next.DetectedUTXO.TxID)
	}
	return next, nil
}

func runToCompletion(ctx context.Context, d *bridgestate.Driver, s *bridgestate.State) (*bridgestate.State, error) {
	switch s.Mode {
	case bridgestate.ModeDPNS:
		return runDPNS(ctx, d, s)
	case bridgestate.ModeManage:
		return runManage(ctx, d, s)
	}

	var err error
	if s.AssetLockKeyPair == nil {
		s, err = generateKeys(d, s)
		if err != nil {
			return s, err
		}
	}
	for s.DetectedUTXO == nil {
		s, err = d.WaitForDeposit(ctx, s, 10*time.Minute, 5*time.Second)
		if err != nil {
			return s, err
		}
		if s.DepositTimedOut {
			fmt.Println("Still waiting for deposit, polling again...")
		}
	}
	s, err = d.BuildAndSignTransaction(s)
	if err != nil {
		return s, err
	}
	s, err = d.Broadcast(ctx, s)
	if err != nil {
		return s, err
	}
	fmt.Printf("Broadcast txid: %s\n", s.BroadcastTxID)
	s, err = d.WaitForIslock(ctx, s, 60*time.Second, 2*time.Second)
	if err != nil {
		return s, err
	}
	fmt.Printf("Identity id (from proof): %s\n", s.AssetLockProof.CreateIdentityID())

	s, err = d.FinalStep(ctx, s)
	if err != nil {
		return s, err
	}
	fmt.Printf("Pipeline complete: step=%s\n", s.Step)
	return s, nil
}

func runDPNS(ctx context.Context, d *bridgestate.Driver, s *bridgestate.State) (*bridgestate.State, error) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter your existing identity id: ")
	scanner.Scan()
	identityID := strings.TrimSpace(scanner.Text())

	fmt.Print("Enter the WIF of your AUTHENTICATION key (CRITICAL or HIGH): ")
	scanner.Scan()
	wif := strings.TrimSpace(scanner.Text())

	fmt.Print("Enter the DPNS label to register: ")
	scanner.Scan()
	label := strings.TrimSpace(scanner.Text())

	next, err := d.EnterDPNSWithKey(ctx, s, identityID, wif, label)
	if err != nil {
		return s, err
	}
	next, err = d.RegisterDPNSName(ctx, next)
	if err != nil {
		return next, err
	}
	fmt.Printf("DPNS registration complete: step=%s\n", next.Step)
	return next, nil
}

func runManage(ctx context.Context, d *bridgestate.Driver, s *bridgestate.State) (*bridgestate.State, error) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter your existing identity id: ")
	scanner.Scan()
	identityID := strings.TrimSpace(scanner.Text())

	fmt.Print("Enter the WIF of your MASTER key: ")
	scanner.Scan()
	wif := strings.TrimSpace(scanner.Text())

	fmt.Print("Enter key id to disable (0 to skip): ")
	scanner.Scan()
	var disable []uint32
	if id, err := parseKeyID(scanner.Text()); err == nil && id != 0 {
		disable = []uint32{id}
	}

	next, err := d.EnterManageWithKey(ctx, s, identityID, wif, nil, disable)
	if err != nil {
		return s, err
	}
	next, err = d.UpdateIdentity(ctx, next)
	if err != nil {
		return next, err
	}
	fmt.Printf("Identity update complete: step=%s\n", next.Step)
	return next, nil
}

func parseKeyID(text string) (uint32, error) {
	var id uint32
	_, err := fmt.Sscanf(strings.TrimSpace(text), "%d", &id)
	return id, err
}

func showBackup(s *bridgestate.State) {
	backup, err := bridgestate.BuildKeyBackup(s, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		fmt.Printf("Error building backup: %s\n", err)
		return
	}
	raw, err := backup.ToJSON()
	if err != nil {
		fmt.Printf("Error encoding backup: %s\n", err)
		return
	}
	fmt.Printf("Suggested filename: %s\n", backup.Filename())
	fmt.Println(string(raw))
}

func reportError(err error) {
	if err != nil {
		fmt.Printf("Error: %s\n", err)
	}
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/chains/evm/transactor/gas"
	"github.com/sygmaprotocol/sygma-core/chains/evm/transactor/signAndSend"
	"github.com/sygmaprotocol/sygma-core/chains/evm/transactor/transaction"
	"github.com/sygmaprotocol/sygma-core/crypto/secp256k1"
	"github.com/sygmaprotocol/sygma-core/observability"

	"github.com/sproutly-tech/sproutly-bridging/api"
	"github.com/sproutly-tech/sproutly-bridging/api/handlers"
	"github.com/sproutly-tech/sproutly-bridging/bridge"
	"github.com/sproutly-tech/sproutly-bridging/chains/evm"
	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/contracts"
	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/events"
	"github.com/sproutly-tech/sproutly-bridging/config"
	"github.com/sproutly-tech/sproutly-bridging/health"
	"github.com/sproutly-tech/sproutly-bridging/metrics"
	"github.com/sproutly-tech/sproutly-bridging/staking"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
	"github.com/sproutly-tech/sproutly-bridging/wizard"
)

var Version string

type chainRuntime struct {
	config *evm.EVMConfig
	client *client.EVMClient
}

func Run() error {
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)

	var configuration *config.Config
	if strings.ToLower(configFlag) == "env" {
		configuration, err = config.GetConfigFromENV(nil)
		panicOnError(err)
	} else {
		configuration, err = config.GetConfigFromFile(configFlag, nil)
		panicOnError(err)
	}

	logLevel, err := zerolog.ParseLevel(configuration.ServiceConfig.LogLevel)
	panicOnError(err)
	observability.ConfigureLogger(logLevel, os.Stdout)

	log.Info().Msg("Successfully loaded configuration")

	if addr := viper.GetString(config.ApiAddrFlagName); addr != "" {
		configuration.ServiceConfig.ApiAddr = addr
	}
	if port := viper.GetUint16(config.HealthPortFlagName); port != 0 {
		configuration.ServiceConfig.HealthPort = port
	}

	go health.StartHealthEndpoint(configuration.ServiceConfig.HealthPort)

	mp, err := observability.InitMetricProvider(context.Background(), configuration.ServiceConfig.OpenTelemetryCollectorURL)
	panicOnError(err)
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error().Msgf("Error shutting down meter provider: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sproutlyMetrics, err := metrics.NewSproutlyMetrics(
		ctx,
		mp.Meter("sproutly-metric-provider"),
		configuration.ServiceConfig.Env,
		configuration.ServiceConfig.Id,
		Version,
	)
	panicOnError(err)

	var source, destination *chainRuntime
	for _, chainConfig := range configuration.ChainConfigs {
		switch chainConfig["type"] {
		case "evm":
			{
				cfg, err := evm.NewEVMConfig(chainConfig)
				panicOnError(err)

				kp, err := secp256k1.NewKeypairFromString(cfg.GeneralChainConfig.Key)
				panicOnError(err)

				c, err := client.NewEVMClient(cfg.GeneralChainConfig.Endpoint, kp)
				panicOnError(err)

				log.Info().
					Uint64("chain", *cfg.GeneralChainConfig.Id).
					Str("role", cfg.GeneralChainConfig.Role).
					Msgf("Registering EVM chain")

				runtime := &chainRuntime{config: cfg, client: c}
				if cfg.GeneralChainConfig.Role == "source" {
					source = runtime
				} else {
					destination = runtime
				}
			}
		default:
			panic(fmt.Errorf("type '%s' not recognized", chainConfig["type"]))
		}
	}
	if source == nil || destination == nil {
		panic(fmt.Errorf("both a source and a destination chain must be configured"))
	}

	account := source.client.From()
	conn := wallet.NewStaticConnection(
		account,
		*source.config.GeneralChainConfig.Id,
		[]uint64{*source.config.GeneralChainConfig.Id, *destination.config.GeneralChainConfig.Id},
	)

	sourceGasPricer := gas.NewStaticGasPriceDeterminant(source.client, nil)
	sourceTransactor := signAndSend.NewSignAndSendTransactor(transaction.NewTransaction, sourceGasPricer, source.client)
	destinationGasPricer := gas.NewStaticGasPriceDeterminant(destination.client, nil)
	destinationTransactor := signAndSend.NewSignAndSendTransactor(transaction.NewTransaction, destinationGasPricer, destination.client)

	sourceToken := contracts.NewERC20Contract(source.client, source.config.Token.Address, sourceTransactor)
	destinationToken := contracts.NewERC20Contract(destination.client, destination.config.Token.Address, destinationTransactor)
	bridgeContract := contracts.NewBridgeContract(source.client, source.config.Bridge, sourceTransactor)
	vestingContract := contracts.NewVestingContract(destination.client, destination.config.Vesting, destinationTransactor)

	withdrawalListener := events.NewWithdrawalListener(destination.client, destination.config.Bridge, destination.config.Vault)

	orchestrator := bridge.NewOrchestrator(
		conn,
		sourceToken,
		bridgeContract,
		source.client,
		withdrawalListener,
		bridge.Config{
			SourceChainID: *source.config.GeneralChainConfig.Id,
			BridgeAddress: source.config.Bridge,
			TokenDecimals: source.config.Token.Decimals,
			ExtraGas:      source.config.ExtraGas,
		},
		sproutlyMetrics,
	)

	estimator := staking.NewEstimator(
		vestingContract,
		func(address common.Address) staking.RatioCalculator {
			return contracts.NewRatioContract(destination.client, address)
		},
		destination.config.Token.Decimals,
	)
	staker := staking.NewStaker(conn, destinationToken, vestingContract, destination.config.Vesting, destination.config.Token.Decimals)
	locksReader := staking.NewLocksReader(vestingContract, destination.config.Token.Decimals, sproutlyMetrics)
	releaser := staking.NewReleaser(conn, vestingContract)

	minStake := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(destination.config.Token.Decimals)), nil)
	flow := wizard.NewWizard(conn, orchestrator, destinationToken, minStake)

	go api.Serve(ctx, configuration.ServiceConfig.ApiAddr, api.Handlers{
		Bridge:   handlers.NewBridgeHandler(orchestrator),
		Stake:    handlers.NewStakeHandler(conn, staker, locksReader, flow),
		Locks:    handlers.NewLocksHandler(locksReader),
		Release:  handlers.NewReleaseHandler(conn, releaser, locksReader),
		Estimate: handlers.NewEstimateHandler(estimator),
		Wizard:   handlers.NewWizardHandler(flow),
	})

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	log.Info().Msgf("Started Sproutly bridging service for account %s. Version: v%s", account.Hex(), Version)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	return nil
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	DefaultNetwork string             `yaml:"default_network"`
	Networks       map[string]Network `yaml:"networks"`
	Signer         SignerConfig       `yaml:"signer"`
	Execution      ExecutionConfig    `yaml:"execution"`
	Log            LogConfig          `yaml:"log"`
	Output         OutputConfig       `yaml:"output"`
}

// Network describes one named chain endpoint
type Network struct {
	RPCURL  string `yaml:"rpc_url"`
	ChainID int64  `yaml:"chain_id"`
}

// SignerConfig selects the signing identity for state-changing calls.
// PrivateKey wins when set; otherwise AccountIndex picks one of the
// predefined development accounts.
type SignerConfig struct {
	PrivateKey   string `yaml:"private_key"`
	AccountIndex int    `yaml:"account_index"`
}

// ExecutionConfig holds step execution knobs
type ExecutionConfig struct {
	PollInterval  int    `yaml:"poll_interval"`  // seconds between receipt probes
	ConfirmBlocks uint64 `yaml:"confirm_blocks"` // extra blocks to wait after mining
}

// LogConfig holds logging configuration
type LogConfig struct {
	Directory string `yaml:"directory"`
}

// OutputConfig holds result output configuration
type OutputConfig struct {
	Directory  string `yaml:"directory"`
	ResultFile string `yaml:"result_file"`
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a configuration that works against a local
// ethereum-package development network without any config file.
func DefaultConfig() *Config {
	return &Config{
		DefaultNetwork: "local",
		Networks: map[string]Network{
			"local":   {RPCURL: "http://127.0.0.1:8545", ChainID: 3151908},
			"sepolia": {RPCURL: "https://rpc.sepolia.org", ChainID: 11155111},
			"holesky": {RPCURL: "https://ethereum-holesky-rpc.publicnode.com", ChainID: 17000},
		},
		Execution: ExecutionConfig{
			PollInterval:  2,
			ConfirmBlocks: 0,
		},
		Log: LogConfig{
			Directory: "logs",
		},
		Output: OutputConfig{
			Directory:  "output",
			ResultFile: "results.log",
		},
	}
}

// GetNetwork resolves a network selection by name. Unrecognized names
// fall back to the configured default endpoint; the resolved name is
// returned alongside the network so callers can report the fallback.
func (c *Config) GetNetwork(name string) (Network, string) {
	if net, ok := c.Networks[name]; ok {
		return net, name
	}
	if net, ok := c.Networks[c.DefaultNetwork]; ok {
		return net, c.DefaultNetwork
	}
	return Network{}, ""
}

// SignerKey returns the hex private key selected by the signer
// configuration.
func (c *Config) SignerKey() string {
	if c.Signer.PrivateKey != "" {
		return c.Signer.PrivateKey
	}
	acct, ok := GetAccount(c.Signer.AccountIndex)
	if !ok {
		acct = PredefinedAccounts[0]
	}
	return acct.PrivateKey
}

// PrintConfig prints the current configuration (for debugging)
func (c *Config) PrintConfig() {
	fmt.Println("=== ABIProbe Configuration ===")
	fmt.Printf("Default Network: %s\n", c.DefaultNetwork)
	for name, net := range c.Networks {
		fmt.Printf("Network %s: %s (chain %d)\n", name, net.RPCURL, net.ChainID)
	}
	fmt.Printf("Poll Interval: %ds\n", c.Execution.PollInterval)
	fmt.Printf("Confirm Blocks: %d\n", c.Execution.ConfirmBlocks)
	fmt.Printf("Log Directory: %s\n", c.Log.Directory)
	fmt.Printf("Output Directory: %s\n", c.Output.Directory)
	fmt.Println("==============================")
}

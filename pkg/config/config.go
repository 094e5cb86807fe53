package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/forge"
	ConfigFileName    = "forge.yml"
)

// ForgeConfig holds all Fantasy Forge API configuration settings
type ForgeConfig struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// ImagesDir is the directory served by the image endpoints
	ImagesDir string `yaml:"images_dir" json:"images_dir"`

	// APIResourceListLimitDefault is the page size applied when a listing
	// request does not specify a limit
	APIResourceListLimitDefault int `yaml:"api_resource_list_limit_default" json:"api_resource_list_limit_default"`

	// APIResourceListLimitMax caps the limit a listing request may ask for
	APIResourceListLimitMax int `yaml:"api_resource_list_limit_max" json:"api_resource_list_limit_max"`

	// SessionTokenTTL is the TTL for issued session tokens in seconds
	SessionTokenTTL int `yaml:"session_token_ttl" json:"session_token_ttl"`

	// AuditToDatabase persists audit events to the messages table in
	// addition to stdout
	AuditToDatabase bool `yaml:"audit_to_database" json:"audit_to_database"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *ForgeConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *ForgeConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *ForgeConfig {
	return &ForgeConfig{
		TrustedProxies:              []string{},
		ImagesDir:                   "images",
		APIResourceListLimitDefault: 100,
		APIResourceListLimitMax:     1000,
		SessionTokenTTL:             480,
		AuditToDatabase:             false,
		sources:                     make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*ForgeConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("FORGE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig ForgeConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "images_dir",
		"api_resource_list_limit_default", "api_resource_list_limit_max",
		"session_token_ttl", "audit_to_database",
	}
}

func (c *ForgeConfig) applyFileConfig(file *ForgeConfig) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.ImagesDir != "" {
		c.ImagesDir = file.ImagesDir
		c.sources["images_dir"] = "file"
	}
	if file.APIResourceListLimitDefault != 0 {
		c.APIResourceListLimitDefault = file.APIResourceListLimitDefault
		c.sources["api_resource_list_limit_default"] = "file"
	}
	if file.APIResourceListLimitMax != 0 {
		c.APIResourceListLimitMax = file.APIResourceListLimitMax
		c.sources["api_resource_list_limit_max"] = "file"
	}
	if file.SessionTokenTTL != 0 {
		c.SessionTokenTTL = file.SessionTokenTTL
		c.sources["session_token_ttl"] = "file"
	}
	if file.AuditToDatabase {
		c.AuditToDatabase = true
		c.sources["audit_to_database"] = "file"
	}
}

func (c *ForgeConfig) applyEnvConfig() {
	if val := os.Getenv("FORGE_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("FORGE_IMAGES_DIR"); val != "" {
		c.ImagesDir = val
		c.sources["images_dir"] = "environment"
	}
	if val := os.Getenv("FORGE_API_RESOURCE_LIST_LIMIT_DEFAULT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIResourceListLimitDefault = i
			c.sources["api_resource_list_limit_default"] = "environment"
		}
	}
	if val := os.Getenv("FORGE_API_RESOURCE_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIResourceListLimitMax = i
			c.sources["api_resource_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("FORGE_SESSION_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTokenTTL = i
			c.sources["session_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("FORGE_AUDIT_TO_DATABASE"); val != "" {
		c.AuditToDatabase = val == "true" || val == "1"
		c.sources["audit_to_database"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *ForgeConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *ForgeConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the session token TTL as a duration
func (c *ForgeConfig) TokenTTL() time.Duration {
	return time.Duration(c.SessionTokenTTL) * time.Second
}

// ClampLimit applies the default and maximum page size to a requested limit.
func (c *ForgeConfig) ClampLimit(limit int) int {
	if limit <= 0 {
		limit = c.APIResourceListLimitDefault
	}
	if c.APIResourceListLimitMax > 0 && limit > c.APIResourceListLimitMax {
		limit = c.APIResourceListLimitMax
	}
	return limit
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *ForgeConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *ForgeConfig) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.APIResourceListLimitDefault < 0 {
		return fmt.Errorf("api_resource_list_limit_default must be non-negative")
	}
	if c.APIResourceListLimitMax < 0 {
		return fmt.Errorf("api_resource_list_limit_max must be non-negative")
	}
	if c.APIResourceListLimitMax > 0 && c.APIResourceListLimitDefault > c.APIResourceListLimitMax {
		return fmt.Errorf("api_resource_list_limit_default exceeds api_resource_list_limit_max")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *ForgeConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "images_dir", Value: c.ImagesDir, Source: c.Source("images_dir")},
		{Name: "api_resource_list_limit_default", Value: strconv.Itoa(c.APIResourceListLimitDefault), Source: c.Source("api_resource_list_limit_default")},
		{Name: "api_resource_list_limit_max", Value: strconv.Itoa(c.APIResourceListLimitMax), Source: c.Source("api_resource_list_limit_max")},
		{Name: "session_token_ttl", Value: strconv.Itoa(c.SessionTokenTTL), Source: c.Source("session_token_ttl")},
		{Name: "audit_to_database", Value: strconv.FormatBool(c.AuditToDatabase), Source: c.Source("audit_to_database")},
	}
}

// FormatText returns a text representation of the configuration
func (c *ForgeConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *ForgeConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

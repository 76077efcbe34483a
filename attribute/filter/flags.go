// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"flag"

	"github.com/spf13/viper"

	"github.com/pulseapm/go-agent/internal/config"
)

const (
	attributesEnabled = "attributes.enabled"
	attributesInclude = "attributes.include"
	attributesExclude = "attributes.exclude"

	prefixTransactionEvents = "transaction-events"
	prefixTransactionTraces = "transaction-traces"
	prefixErrorEvents       = "error-events"
	prefixErrorTraces       = "error-traces"
	prefixBrowserMonitoring = "browser-monitoring"

	suffixEnabled = ".attributes.enabled"
	suffixInclude = ".attributes.include"
	suffixExclude = ".attributes.exclude"
)

// AddFlags adds flags for Options.
func AddFlags(flagSet *flag.FlagSet) {
	defaults := DefaultOptions()
	flagSet.Bool(attributesEnabled, defaults.Enabled,
		"Master switch for attribute reporting. When false no attribute reaches any destination.")
	flagSet.Var(&config.StringSlice{}, attributesInclude,
		"Attribute key pattern to include in every destination. A trailing '*' matches by prefix. Flag can be repeated.")
	flagSet.Var(&config.StringSlice{}, attributesExclude,
		"Attribute key pattern to exclude from every destination. A trailing '*' matches by prefix. Flag can be repeated.")

	addScopeFlags(flagSet, prefixTransactionEvents, defaults.TransactionEvents)
	addScopeFlags(flagSet, prefixTransactionTraces, defaults.TransactionTraces)
	addScopeFlags(flagSet, prefixErrorEvents, defaults.ErrorEvents)
	addScopeFlags(flagSet, prefixErrorTraces, defaults.ErrorTraces)
	addScopeFlags(flagSet, prefixBrowserMonitoring, defaults.BrowserMonitoring)
}

func addScopeFlags(flagSet *flag.FlagSet, prefix string, defaults ScopeOptions) {
	flagSet.Bool(prefix+suffixEnabled, defaults.Enabled,
		"Enables the "+prefix+" destination for attributes.")
	flagSet.Var(&config.StringSlice{}, prefix+suffixInclude,
		"Attribute key pattern to include in the "+prefix+" destination. Flag can be repeated.")
	flagSet.Var(&config.StringSlice{}, prefix+suffixExclude,
		"Attribute key pattern to exclude from the "+prefix+" destination. Flag can be repeated.")
}

// InitFromViper initializes Options with properties from viper.
func (opts *Options) InitFromViper(v *viper.Viper) *Options {
	opts.Enabled = v.GetBool(attributesEnabled)
	opts.Include = v.GetStringSlice(attributesInclude)
	opts.Exclude = v.GetStringSlice(attributesExclude)
	opts.TransactionEvents.initFromViper(v, prefixTransactionEvents)
	opts.TransactionTraces.initFromViper(v, prefixTransactionTraces)
	opts.ErrorEvents.initFromViper(v, prefixErrorEvents)
	opts.ErrorTraces.initFromViper(v, prefixErrorTraces)
	opts.BrowserMonitoring.initFromViper(v, prefixBrowserMonitoring)
	return opts
}

func (opts *ScopeOptions) initFromViper(v *viper.Viper, prefix string) {
	opts.Enabled = v.GetBool(prefix + suffixEnabled)
	opts.Include = v.GetStringSlice(prefix + suffixInclude)
	opts.Exclude = v.GetStringSlice(prefix + suffixExclude)
}

package main

import (
	"github.com/sirupsen/logrus"

	"dxread/internal/dex"
)

func buildConfig() dex.Config {
	var flags uint32
	if flagSkipDebug {
		flags |= dex.FlagSkipDebug
	}
	if flagSkipCode {
		flags |= dex.FlagSkipCode
	}
	if flagSkipAnnotation {
		flags |= dex.FlagSkipAnnotation
	}
	if flagSkipFieldConstant {
		flags |= dex.FlagSkipFieldConstant
	}
	if flagIgnoreReadExc {
		flags |= dex.FlagIgnoreReadException
	}
	if flagKeepAllMethods {
		flags |= dex.FlagKeepAllMethods
	}
	cfg := dex.Config{Flags: flags}
	if flagVerbose {
		flags |= dex.FlagEnableDebugLog
		cfg.Flags = flags
		cfg.Logger = log
		log.SetLevel(logrus.WarnLevel)
	}
	return cfg
}

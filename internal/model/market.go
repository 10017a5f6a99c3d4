package model

import (
	"fmt"
	"strings"
)

// Market identifies which equity market a symbol trades in.
type Market string

const (
	MarketUS Market = "US"
	MarketHK Market = "HK"
)

// ParseMarket validates a market selector string.
func ParseMarket(s string) (Market, error) {
	switch Market(strings.ToUpper(strings.TrimSpace(s))) {
	case MarketUS:
		return MarketUS, nil
	case MarketHK:
		return MarketHK, nil
	case "":
		return "", fmt.Errorf("market is required")
	default:
		return "", fmt.Errorf("unknown market %q (supported: US, HK)", s)
	}
}

// Method selects the valuation methodology.
type Method string

const (
	MethodPEG           Method = "peg"
	MethodEarningsTrack Method = "earnings-track"
	MethodAssetBased    Method = "asset-based"
)

// ParseMethod validates a method string. Empty selects the PEG default.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return MethodPEG, nil
	case MethodPEG:
		return MethodPEG, nil
	case MethodEarningsTrack:
		return MethodEarningsTrack, nil
	case MethodAssetBased:
		return MethodAssetBased, nil
	default:
		return "", fmt.Errorf("unknown method %q (supported: peg, earnings-track, asset-based)", s)
	}
}

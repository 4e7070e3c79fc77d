package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeServerTXT creates TXT records for a QOTD endpoint.
func EncodeServerTXT(info *ServerInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	txt[TXTKeyVersion] = TXTVersion
	txt[TXTKeyMaxLen] = strconv.Itoa(info.MaxQuoteLength)
	if info.Encoding != "" {
		txt[TXTKeyEncoding] = info.Encoding
	}

	return txt
}

// DecodeServerTXT parses TXT records from a browsed QOTD endpoint.
func DecodeServerTXT(txt TXTRecordMap) (*ServerInfo, error) {
	info := &ServerInfo{}

	lenStr, ok := txt[TXTKeyMaxLen]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyMaxLen)
	}
	maxLen, err := strconv.Atoi(lenStr)
	if err != nil || maxLen <= 0 {
		return nil, ErrInvalidMaxLen
	}
	info.MaxQuoteLength = maxLen

	// Encoding is optional; absent means UTF-8.
	info.Encoding = txt[TXTKeyEncoding]

	return info, nil
}

// TXTRecordsToStrings converts a TXT record map to "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	strs := make([]string, 0, len(txt))
	for k, v := range txt {
		strs = append(strs, k+"="+v)
	}
	return strs
}

// StringsToTXTRecords parses "key=value" strings into a TXT record map.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap, len(strs))
	for _, s := range strs {
		k, v, found := strings.Cut(s, "=")
		if !found {
			continue
		}
		txt[k] = v
	}
	return txt
}

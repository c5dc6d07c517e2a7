package url

// SchemeType classifies URL schemes. Every type except [SchemeNotSpecial]
// is a special scheme with its own parsing rules.
type SchemeType uint8

const (
	SchemeNotSpecial SchemeType = iota
	SchemeHTTP
	SchemeHTTPS
	SchemeWS
	SchemeWSS
	SchemeFTP
	SchemeFile
)

var schemeNames = [...]string{
	SchemeNotSpecial: "not special",
	SchemeHTTP:       "http",
	SchemeHTTPS:      "https",
	SchemeWS:         "ws",
	SchemeWSS:        "wss",
	SchemeFTP:        "ftp",
	SchemeFile:       "file",
}

var defaultPorts = [...]uint16{
	SchemeHTTP:  80,
	SchemeHTTPS: 443,
	SchemeWS:    80,
	SchemeWSS:   443,
	SchemeFTP:   21,
	SchemeFile:  0,
}

func (t SchemeType) String() string {
	if int(t) < len(schemeNames) {
		return schemeNames[t]
	}
	return "unknown"
}

// IsSpecial reports whether t is one of the special schemes.
func (t SchemeType) IsSpecial() bool { return t != SchemeNotSpecial }

// DefaultPort returns the default port of the scheme, 0 if it has none.
func (t SchemeType) DefaultPort() uint16 {
	if int(t) < len(defaultPorts) {
		return defaultPorts[t]
	}
	return 0
}

// SchemeTypeOf returns the type of the lowercase scheme s.
func SchemeTypeOf(s string) SchemeType {
	switch s {
	case "http":
		return SchemeHTTP
	case "https":
		return SchemeHTTPS
	case "ws":
		return SchemeWS
	case "wss":
		return SchemeWSS
	case "ftp":
		return SchemeFTP
	case "file":
		return SchemeFile
	default:
		return SchemeNotSpecial
	}
}

package dogescan

type NetworkAnalysis struct {
	Index         int           `json:"index"`
	Network       NetworkRecord `json:"network"`
	SecurityLevel SecurityLevel `json:"securityLevel"`
	Quality       int           `json:"quality"`
	Band          string        `json:"band"`
	Findings      []string      `json:"findings"`
}

// Analyze builds the report shown when a client inspects a network.
func Analyze(index int, n NetworkRecord) NetworkAnalysis {
	a := NetworkAnalysis{
		Index:         index,
		Network:       n,
		SecurityLevel: n.SecurityLevel(),
		Quality:       SignalQuality(n.RSSI),
		Band:          Band(n.Channel),
		Findings:      []string{},
	}

	switch n.Encryption {
	case EncryptionOpen:
		a.Findings = append(a.Findings, "open network: traffic is not encrypted")
	case EncryptionWEP:
		a.Findings = append(a.Findings, "WEP is broken and can be recovered in minutes")
	case EncryptionWPA, EncryptionWPAWPA2:
		a.Findings = append(a.Findings, "WPA (TKIP) is deprecated")
	case EncryptionUnknown:
		a.Findings = append(a.Findings, "encryption could not be determined")
	}

	if n.Hidden {
		a.Findings = append(a.Findings, "hidden SSID: still discoverable from probe traffic")
	}
	if n.RSSI <= mediumSignal {
		a.Findings = append(a.Findings, "weak signal")
	}
	if n.Count > 1 {
		a.Findings = append(a.Findings, "reported more than once in the last scan")
	}

	return a
}

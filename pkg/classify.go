package dogescan

type SecurityLevel string

const (
	SecurityNone   SecurityLevel = "NONE"
	SecurityWeak   SecurityLevel = "WEAK"
	SecurityMedium SecurityLevel = "MEDIUM"
	SecurityStrong SecurityLevel = "STRONG"
)

// signal thresholds (dBm) for ClassifySecurity
const (
	strongSignal = -70
	mediumSignal = -80
)

var encryptionLabels = map[EncryptionType]string{
	EncryptionOpen:           "Open",
	EncryptionWEP:            "WEP",
	EncryptionWPA:            "WPA",
	EncryptionWPA2:           "WPA2",
	EncryptionWPAWPA2:        "WPA/WPA2",
	EncryptionWPA2Enterprise: "WPA2-Enterprise",
	EncryptionWPA3:           "WPA3",
	EncryptionWPA2WPA3:       "WPA2/WPA3",
}

func (e EncryptionType) String() string {
	label, ok := encryptionLabels[e]
	if !ok {
		return "Unknown"
	}
	return label
}

// ClassifySecurity is a coarse rating from the encryption category
// and signal strength. It is not a cryptographic assessment.
func ClassifySecurity(enc EncryptionType, rssi int) SecurityLevel {
	switch {
	case enc == EncryptionOpen:
		return SecurityNone
	case rssi > strongSignal:
		return SecurityStrong
	case rssi > mediumSignal:
		return SecurityMedium
	default:
		return SecurityWeak
	}
}

// SignalQuality maps dBm onto 0-100 (-100 dBm or less is 0, -50 or more is 100)
func SignalQuality(rssi int) int {
	q := 2 * (rssi + 100)
	if q < 0 {
		return 0
	}
	if q > 100 {
		return 100
	}
	return q
}

func Band(channel int) string {
	switch {
	case channel >= 1 && channel <= 14:
		return "2.4GHz"
	case channel >= 32 && channel <= 177:
		return "5GHz"
	default:
		return "unknown"
	}
}

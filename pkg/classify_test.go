package dogescan

import "testing"

func TestClassifySecurityBoundaries(t *testing.T) {
	cases := []struct {
		enc  EncryptionType
		rssi int
		want SecurityLevel
	}{
		{EncryptionOpen, -30, SecurityNone},
		{EncryptionOpen, -95, SecurityNone},
		{EncryptionWPA2, -69, SecurityStrong},
		{EncryptionWPA2, -70, SecurityMedium},
		{EncryptionWPA2, -71, SecurityMedium},
		{EncryptionWPA2, -79, SecurityMedium},
		{EncryptionWPA2, -80, SecurityWeak},
		{EncryptionWPA2, -81, SecurityWeak},
		{EncryptionWEP, -40, SecurityStrong},
		{EncryptionUnknown, -90, SecurityWeak},
	}
	for _, c := range cases {
		got := ClassifySecurity(c.enc, c.rssi)
		if got != c.want {
			t.Errorf("ClassifySecurity(%s, %d): got %s want %s", c.enc, c.rssi, got, c.want)
		}
	}
}

func TestSignalQualityClamps(t *testing.T) {
	cases := map[int]int{
		-120: 0,
		-100: 0,
		-75:  50,
		-50:  100,
		-20:  100,
	}
	for rssi, want := range cases {
		if got := SignalQuality(rssi); got != want {
			t.Errorf("SignalQuality(%d): got %d want %d", rssi, got, want)
		}
	}
}

func TestEncryptionLabels(t *testing.T) {
	if got := EncryptionWPAWPA2.String(); got != "WPA/WPA2" {
		t.Fatalf("mismatch: got %q", got)
	}
	if got := EncryptionType(99).String(); got != "Unknown" {
		t.Fatalf("unmapped type: got %q want Unknown", got)
	}
}

func TestBand(t *testing.T) {
	for ch, want := range map[int]string{1: "2.4GHz", 14: "2.4GHz", 36: "5GHz", 165: "5GHz", 0: "unknown", 200: "unknown"} {
		if got := Band(ch); got != want {
			t.Errorf("Band(%d): got %s want %s", ch, got, want)
		}
	}
}
